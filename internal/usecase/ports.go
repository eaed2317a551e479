package usecase

import (
	"context"

	"github.com/folionet/folionet"
	"github.com/folionet/folionet/internal/domain"
)

// UserRepository defines persistence/lookup for registered wallet users.
// Addresses passed in are already normalized.
type UserRepository interface {
	Create(ctx context.Context, user domain.User) (domain.User, error)
	GetByAddress(ctx context.Context, address string) (domain.User, error)
	GetByID(ctx context.Context, id string) (domain.User, error)
}

// InvestmentRepository defines storage operations for investment listings.
type InvestmentRepository interface {
	Create(ctx context.Context, investment domain.Investment) (domain.Investment, error)
	List(ctx context.Context) ([]domain.Investment, error)
	GetByID(ctx context.Context, id string) (domain.Investment, error)
	GetByProtectedDataAddress(ctx context.Context, address string) (domain.Investment, error)
}

// PurchaseRepository defines storage operations for the purchase ledger.
type PurchaseRepository interface {
	Create(ctx context.Context, purchase domain.Purchase) (domain.Purchase, error)
	ListByUser(ctx context.Context, userID string) ([]domain.Purchase, error)
}

// TransactionRepository defines storage operations for tracked blockchain
// transactions.
type TransactionRepository interface {
	Create(ctx context.Context, transaction domain.Transaction) (domain.Transaction, error)
	UpdateStatus(ctx context.Context, txHash string, status string) (domain.Transaction, error)
}

// ListingCache caches the full marketplace listing between writes.
type ListingCache interface {
	Get(ctx context.Context) ([]domain.Investment, bool)
	Set(ctx context.Context, investments []domain.Investment)
	Invalidate(ctx context.Context)
}

// ProtectedDataResolver checks that a protected data address exists on the
// confidential data-protection network.
type ProtectedDataResolver interface {
	Exists(ctx context.Context, protectedDataAddress string) (bool, error)
}

// EventPublisher broadcasts marketplace events to realtime subscribers.
type EventPublisher interface {
	Publish(ctx context.Context, channel string, event folionet.Event) error
}
