package usecase

import (
	"context"
	"errors"
	"testing"

	"github.com/folionet/folionet/internal/domain"
)

type mockTransactionRepo struct {
	byHash map[string]domain.Transaction
}

func newMockTransactionRepo() *mockTransactionRepo {
	return &mockTransactionRepo{byHash: map[string]domain.Transaction{}}
}

func (m *mockTransactionRepo) Create(ctx context.Context, transaction domain.Transaction) (domain.Transaction, error) {
	if _, ok := m.byHash[transaction.TxHash]; ok {
		return domain.Transaction{}, domain.ConflictError{Message: "transaction already tracked"}
	}
	m.byHash[transaction.TxHash] = transaction
	return transaction, nil
}

func (m *mockTransactionRepo) UpdateStatus(ctx context.Context, txHash string, status string) (domain.Transaction, error) {
	transaction, ok := m.byHash[txHash]
	if !ok {
		return domain.Transaction{}, domain.NotFoundError{Resource: "transaction"}
	}
	transaction.Status = status
	m.byHash[txHash] = transaction
	return transaction, nil
}

func TestTrackStartsPending(t *testing.T) {
	uc := NewTransactionUsecase(newMockTransactionRepo())

	transaction, err := uc.Track(context.Background(), "0xhash", "GRANT_ACCESS")
	if err != nil {
		t.Fatalf("track failed: %v", err)
	}
	if transaction.Status != domain.TransactionStatusPending {
		t.Fatalf("expected PENDING, got %s", transaction.Status)
	}
}

func TestTrackValidatesFields(t *testing.T) {
	uc := NewTransactionUsecase(newMockTransactionRepo())
	ctx := context.Background()

	if _, err := uc.Track(ctx, "", "GRANT_ACCESS"); !errors.Is(err, domain.ErrInvalid) {
		t.Fatalf("expected ValidationError for missing hash, got %v", err)
	}
	if _, err := uc.Track(ctx, "0xhash", ""); !errors.Is(err, domain.ErrInvalid) {
		t.Fatalf("expected ValidationError for missing type, got %v", err)
	}
}

func TestUpdateStatusTransitions(t *testing.T) {
	repo := newMockTransactionRepo()
	uc := NewTransactionUsecase(repo)
	ctx := context.Background()

	if _, err := uc.Track(ctx, "0xhash", "GRANT_ACCESS"); err != nil {
		t.Fatalf("track failed: %v", err)
	}

	transaction, err := uc.UpdateStatus(ctx, "0xhash", domain.TransactionStatusConfirmed)
	if err != nil {
		t.Fatalf("update failed: %v", err)
	}
	if transaction.Status != domain.TransactionStatusConfirmed {
		t.Fatalf("expected CONFIRMED, got %s", transaction.Status)
	}

	if _, err := uc.UpdateStatus(ctx, "0xhash", "SOMETHING"); !errors.Is(err, domain.ErrInvalid) {
		t.Fatalf("expected ValidationError for unknown status, got %v", err)
	}

	if _, err := uc.UpdateStatus(ctx, "0xother", domain.TransactionStatusFailed); !errors.Is(err, domain.ErrNotFound) {
		t.Fatalf("expected NotFoundError for unknown hash, got %v", err)
	}
}
