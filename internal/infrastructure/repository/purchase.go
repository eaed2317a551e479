package repository

import (
	"context"
	"errors"

	"gorm.io/gorm"

	"github.com/folionet/folionet/internal/domain"
	"github.com/folionet/folionet/internal/infrastructure/database/models"
)

type PurchaseRepository struct {
	db *gorm.DB
}

func NewPurchaseRepository(db *gorm.DB) *PurchaseRepository {
	return &PurchaseRepository{db: db}
}

func (r *PurchaseRepository) Create(ctx context.Context, purchase domain.Purchase) (domain.Purchase, error) {
	model := models.Purchase{
		ID:            purchase.ID,
		UserID:        purchase.UserID,
		InvestmentID:  purchase.InvestmentID,
		PurchasePrice: purchase.PurchasePrice,
	}

	err := r.db.WithContext(ctx).Omit("User", "Investment").Create(&model).Error
	if err != nil {
		return domain.Purchase{}, err
	}

	return purchaseToDomain(model), nil
}

func (r *PurchaseRepository) ListByUser(ctx context.Context, userID string) ([]domain.Purchase, error) {
	var rows []models.Purchase
	err := r.db.WithContext(ctx).
		Preload("Investment").
		Where("user_id = ?", userID).
		Order("cdate DESC").
		Find(&rows).Error
	if err != nil {
		return nil, err
	}

	purchases := make([]domain.Purchase, 0, len(rows))
	for _, row := range rows {
		purchase := purchaseToDomain(row)
		investment := investmentToDomain(row.Investment)
		purchase.Investment = &investment
		purchases = append(purchases, purchase)
	}
	return purchases, nil
}

func purchaseToDomain(model models.Purchase) domain.Purchase {
	return domain.Purchase{
		ID:            model.ID,
		UserID:        model.UserID,
		InvestmentID:  model.InvestmentID,
		PurchasePrice: model.PurchasePrice,
		CreatedAt:     model.CDate,
	}
}

type TransactionRepository struct {
	db *gorm.DB
}

func NewTransactionRepository(db *gorm.DB) *TransactionRepository {
	return &TransactionRepository{db: db}
}

func (r *TransactionRepository) Create(ctx context.Context, transaction domain.Transaction) (domain.Transaction, error) {
	model := models.Transaction{
		TxHash: transaction.TxHash,
		Type:   transaction.Type,
		Status: transaction.Status,
	}

	err := r.db.WithContext(ctx).Create(&model).Error
	if err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return domain.Transaction{}, domain.ConflictError{Message: "transaction already tracked"}
		}
		return domain.Transaction{}, err
	}

	return domain.Transaction{TxHash: model.TxHash, Type: model.Type, Status: model.Status}, nil
}

func (r *TransactionRepository) UpdateStatus(ctx context.Context, txHash string, status string) (domain.Transaction, error) {
	var model models.Transaction
	err := r.db.WithContext(ctx).First(&model, "tx_hash = ?", txHash).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return domain.Transaction{}, domain.NotFoundError{Resource: "transaction"}
		}
		return domain.Transaction{}, err
	}

	err = r.db.WithContext(ctx).Model(&model).Update("status", status).Error
	if err != nil {
		return domain.Transaction{}, err
	}

	return domain.Transaction{TxHash: model.TxHash, Type: model.Type, Status: status}, nil
}
