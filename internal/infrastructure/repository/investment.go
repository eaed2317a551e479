package repository

import (
	"context"
	"errors"

	"gorm.io/gorm"

	"github.com/folionet/folionet/internal/domain"
	"github.com/folionet/folionet/internal/infrastructure/database/models"
)

type InvestmentRepository struct {
	db *gorm.DB
}

func NewInvestmentRepository(db *gorm.DB) *InvestmentRepository {
	return &InvestmentRepository{db: db}
}

// Create persists the investment and its allocations in one transaction so
// a partially written breakdown can never be observed.
func (r *InvestmentRepository) Create(ctx context.Context, investment domain.Investment) (domain.Investment, error) {
	model := models.Investment{
		ID:                   investment.ID,
		ProtectedDataAddress: investment.ProtectedDataAddress,
		CollectionID:         investment.CollectionID,
		Name:                 investment.Name,
		Description:          investment.Description,
		Price:                investment.Price,
		CreatorID:            investment.CreatorID,
	}

	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Omit("Allocations", "Creator").Create(&model).Error; err != nil {
			return err
		}

		for i, allocation := range investment.Allocations {
			row := models.TokenAllocation{
				InvestmentID: model.ID,
				Position:     i,
				Symbol:       allocation.Symbol,
				Percentage:   allocation.Percentage,
			}
			if err := tx.Create(&row).Error; err != nil {
				return err
			}
		}

		return nil
	})
	if err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return domain.Investment{}, domain.ConflictError{Message: "protected data address already listed"}
		}
		return domain.Investment{}, err
	}

	created := investmentToDomain(model)
	created.Allocations = investment.Allocations
	return created, nil
}

// List returns every investment with its creator and purchase count, in
// storage-natural order.
func (r *InvestmentRepository) List(ctx context.Context) ([]domain.Investment, error) {
	var rows []models.Investment
	err := r.db.WithContext(ctx).
		Preload("Creator").
		Preload("Allocations", func(db *gorm.DB) *gorm.DB {
			return db.Order("token_allocations.position ASC")
		}).
		Find(&rows).Error
	if err != nil {
		return nil, err
	}

	counts, err := r.purchaseCounts(ctx)
	if err != nil {
		return nil, err
	}

	investments := make([]domain.Investment, 0, len(rows))
	for _, row := range rows {
		investment := investmentToDomain(row)
		creator := userToDomain(row.Creator)
		investment.Creator = &creator
		investment.Allocations = allocationsToDomain(row.Allocations)
		investment.PurchaseCount = counts[row.ID]
		investments = append(investments, investment)
	}
	return investments, nil
}

func (r *InvestmentRepository) GetByID(ctx context.Context, id string) (domain.Investment, error) {
	var model models.Investment
	err := r.db.WithContext(ctx).First(&model, "id = ?", id).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return domain.Investment{}, domain.NotFoundError{Resource: "investment"}
		}
		return domain.Investment{}, err
	}
	return investmentToDomain(model), nil
}

func (r *InvestmentRepository) GetByProtectedDataAddress(ctx context.Context, address string) (domain.Investment, error) {
	var model models.Investment
	err := r.db.WithContext(ctx).
		Preload("Creator").
		Preload("Allocations", func(db *gorm.DB) *gorm.DB {
			return db.Order("token_allocations.position ASC")
		}).
		First(&model, "protected_data_address = ?", address).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return domain.Investment{}, domain.NotFoundError{Resource: "investment"}
		}
		return domain.Investment{}, err
	}

	investment := investmentToDomain(model)
	creator := userToDomain(model.Creator)
	investment.Creator = &creator
	investment.Allocations = allocationsToDomain(model.Allocations)
	return investment, nil
}

func (r *InvestmentRepository) purchaseCounts(ctx context.Context) (map[string]int64, error) {
	type countRow struct {
		InvestmentID string
		Count        int64
	}

	var rows []countRow
	err := r.db.WithContext(ctx).
		Model(&models.Purchase{}).
		Select("investment_id, count(*) as count").
		Group("investment_id").
		Scan(&rows).Error
	if err != nil {
		return nil, err
	}

	counts := make(map[string]int64, len(rows))
	for _, row := range rows {
		counts[row.InvestmentID] = row.Count
	}
	return counts, nil
}

func investmentToDomain(model models.Investment) domain.Investment {
	return domain.Investment{
		ID:                   model.ID,
		ProtectedDataAddress: model.ProtectedDataAddress,
		CollectionID:         model.CollectionID,
		Name:                 model.Name,
		Description:          model.Description,
		Price:                model.Price,
		CreatorID:            model.CreatorID,
	}
}

func allocationsToDomain(rows []models.TokenAllocation) []domain.TokenAllocation {
	if len(rows) == 0 {
		return nil
	}
	allocations := make([]domain.TokenAllocation, 0, len(rows))
	for _, row := range rows {
		allocations = append(allocations, domain.TokenAllocation{
			Symbol:     row.Symbol,
			Percentage: row.Percentage,
		})
	}
	return allocations
}
