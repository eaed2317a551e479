package usecase

import (
	"context"

	"github.com/folionet/folionet/internal/domain"
)

type TransactionUsecase struct {
	transactions TransactionRepository
}

func NewTransactionUsecase(transactions TransactionRepository) *TransactionUsecase {
	return &TransactionUsecase{transactions: transactions}
}

// Track records an external blockchain transaction in PENDING state.
func (uc *TransactionUsecase) Track(ctx context.Context, txHash string, txType string) (domain.Transaction, error) {
	if txHash == "" || txType == "" {
		return domain.Transaction{}, domain.ValidationError{Message: "txHash and type are required"}
	}

	return uc.transactions.Create(ctx, domain.Transaction{
		TxHash: txHash,
		Type:   txType,
		Status: domain.TransactionStatusPending,
	})
}

// UpdateStatus moves a tracked transaction to a new state.
func (uc *TransactionUsecase) UpdateStatus(ctx context.Context, txHash string, status string) (domain.Transaction, error) {
	if txHash == "" {
		return domain.Transaction{}, domain.ValidationError{Message: "txHash is required"}
	}
	if !domain.IsValidTransactionStatus(status) {
		return domain.Transaction{}, domain.ValidationError{Message: "invalid transaction status"}
	}

	return uc.transactions.UpdateStatus(ctx, txHash, status)
}
