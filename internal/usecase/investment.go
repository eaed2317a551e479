package usecase

import (
	"context"
	"log/slog"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/folionet/folionet"
	"github.com/folionet/folionet/internal/domain"
)

type CreateInvestmentInput struct {
	ProtectedDataAddress string
	CollectionID         string
	Name                 string
	Description          *string
	Price                decimal.Decimal
	Allocations          []domain.TokenAllocation
}

type InvestmentUsecase struct {
	investments InvestmentRepository
	cache       ListingCache
	resolver    ProtectedDataResolver
	events      EventPublisher
}

// NewInvestmentUsecase wires the investment operations. cache, resolver
// and events may be nil; the corresponding behavior is skipped.
func NewInvestmentUsecase(
	investments InvestmentRepository,
	cache ListingCache,
	resolver ProtectedDataResolver,
	events EventPublisher,
) *InvestmentUsecase {
	return &InvestmentUsecase{
		investments: investments,
		cache:       cache,
		resolver:    resolver,
		events:      events,
	}
}

func (uc *InvestmentUsecase) Create(ctx context.Context, caller domain.User, input CreateInvestmentInput) (domain.Investment, error) {
	if caller.Role != domain.RoleInvestor {
		return domain.Investment{}, domain.AuthorizationError{Message: "not an investor"}
	}

	if input.ProtectedDataAddress == "" || input.CollectionID == "" || input.Name == "" {
		return domain.Investment{}, domain.ValidationError{Message: "missing required fields"}
	}
	if input.Price.IsNegative() {
		return domain.Investment{}, domain.ValidationError{Message: "price must not be negative"}
	}

	if err := validateAllocations(input.Allocations); err != nil {
		return domain.Investment{}, err
	}

	if uc.resolver != nil {
		exists, err := uc.resolver.Exists(ctx, input.ProtectedDataAddress)
		if err != nil {
			return domain.Investment{}, err
		}
		if !exists {
			return domain.Investment{}, domain.ValidationError{Message: "protected data address does not resolve"}
		}
	}

	investment := domain.Investment{
		ID:                   uuid.NewString(),
		ProtectedDataAddress: input.ProtectedDataAddress,
		CollectionID:         input.CollectionID,
		Name:                 input.Name,
		Description:          input.Description,
		Price:                input.Price,
		CreatorID:            caller.ID,
		Allocations:          input.Allocations,
	}

	created, err := uc.investments.Create(ctx, investment)
	if err != nil {
		return domain.Investment{}, err
	}

	if uc.cache != nil {
		uc.cache.Invalidate(ctx)
	}
	uc.publish(ctx, folionet.ChannelInvestments, folionet.EventTypeInvestmentCreated, created)

	return created, nil
}

func (uc *InvestmentUsecase) List(ctx context.Context) ([]domain.Investment, error) {
	if uc.cache != nil {
		if cached, ok := uc.cache.Get(ctx); ok {
			return cached, nil
		}
	}

	investments, err := uc.investments.List(ctx)
	if err != nil {
		return nil, err
	}

	if uc.cache != nil {
		uc.cache.Set(ctx, investments)
	}
	return investments, nil
}

func (uc *InvestmentUsecase) GetByProtectedDataAddress(ctx context.Context, address string) (domain.Investment, error) {
	if address == "" {
		return domain.Investment{}, domain.ValidationError{Message: "missing protected data address"}
	}
	return uc.investments.GetByProtectedDataAddress(ctx, address)
}

func (uc *InvestmentUsecase) publish(ctx context.Context, channel string, eventType string, body any) {
	if uc.events == nil {
		return
	}
	event := folionet.Event{
		Type:      eventType,
		Body:      body,
		Timestamp: time.Now().UTC(),
	}
	if err := uc.events.Publish(ctx, channel, event); err != nil {
		slog.ErrorContext(ctx, "failed to publish event",
			slog.String("error", err.Error()),
			slog.String("type", eventType),
		)
	}
}

var hundred = decimal.NewFromInt(100)

// validateAllocations enforces the per-slice percentage range, catalog
// membership of the symbol, and that a present breakdown covers exactly
// the whole portfolio.
func validateAllocations(allocations []domain.TokenAllocation) error {
	if len(allocations) == 0 {
		return nil
	}

	sum := decimal.Zero
	for _, allocation := range allocations {
		if allocation.Symbol == "" {
			return domain.ValidationError{Message: "allocation symbol is required"}
		}
		if _, ok := folionet.GetTokenInfo(allocation.Symbol); !ok {
			return domain.ValidationError{Message: "unknown token symbol: " + allocation.Symbol}
		}
		if allocation.Percentage.IsNegative() || allocation.Percentage.GreaterThan(hundred) {
			return domain.ValidationError{Message: "allocation percentage must be between 0 and 100"}
		}
		sum = sum.Add(allocation.Percentage)
	}

	if !sum.Equal(hundred) {
		return domain.ValidationError{Message: "allocation percentages must sum to 100"}
	}
	return nil
}
