package usecase

import (
	"context"
	"log/slog"
	"time"

	"github.com/google/uuid"

	"github.com/folionet/folionet"
	"github.com/folionet/folionet/internal/domain"
)

type PurchaseUsecase struct {
	purchases   PurchaseRepository
	investments InvestmentRepository
	cache       ListingCache
	events      EventPublisher
}

func NewPurchaseUsecase(
	purchases PurchaseRepository,
	investments InvestmentRepository,
	cache ListingCache,
	events EventPublisher,
) *PurchaseUsecase {
	return &PurchaseUsecase{
		purchases:   purchases,
		investments: investments,
		cache:       cache,
		events:      events,
	}
}

// Purchase records the caller's purchase of an investment. The recorded
// price is the investment's listed price; a client-supplied price is never
// trusted. Repeated purchases of the same investment are allowed.
func (uc *PurchaseUsecase) Purchase(ctx context.Context, caller domain.User, investmentID string) (domain.Purchase, error) {
	if caller.Role != domain.RoleUser {
		return domain.Purchase{}, domain.AuthorizationError{Message: "only users can purchase"}
	}
	if investmentID == "" {
		return domain.Purchase{}, domain.ValidationError{Message: "investment ID is required"}
	}

	investment, err := uc.investments.GetByID(ctx, investmentID)
	if err != nil {
		return domain.Purchase{}, err
	}

	purchase, err := uc.purchases.Create(ctx, domain.Purchase{
		ID:            uuid.NewString(),
		UserID:        caller.ID,
		InvestmentID:  investment.ID,
		PurchasePrice: investment.Price,
	})
	if err != nil {
		return domain.Purchase{}, err
	}

	if uc.cache != nil {
		uc.cache.Invalidate(ctx)
	}
	if uc.events != nil {
		event := folionet.Event{
			Type:      folionet.EventTypePurchaseCreated,
			Body:      purchase,
			Timestamp: time.Now().UTC(),
		}
		if err := uc.events.Publish(ctx, folionet.ChannelPurchases, event); err != nil {
			slog.ErrorContext(ctx, "failed to publish event",
				slog.String("error", err.Error()),
				slog.String("type", folionet.EventTypePurchaseCreated),
			)
		}
	}

	return purchase, nil
}

// ListByUser returns the caller's own purchases, most recent first.
func (uc *PurchaseUsecase) ListByUser(ctx context.Context, caller domain.User) ([]domain.Purchase, error) {
	return uc.purchases.ListByUser(ctx, caller.ID)
}
