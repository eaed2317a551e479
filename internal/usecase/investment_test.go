package usecase

import (
	"context"
	"errors"
	"testing"

	"github.com/shopspring/decimal"

	"github.com/folionet/folionet"
	"github.com/folionet/folionet/internal/domain"
)

type mockInvestmentRepo struct {
	created   []domain.Investment
	listCalls int
	byAddress map[string]domain.Investment
}

func newMockInvestmentRepo() *mockInvestmentRepo {
	return &mockInvestmentRepo{byAddress: map[string]domain.Investment{}}
}

func (m *mockInvestmentRepo) Create(ctx context.Context, investment domain.Investment) (domain.Investment, error) {
	if _, ok := m.byAddress[investment.ProtectedDataAddress]; ok {
		return domain.Investment{}, domain.ConflictError{Message: "protected data address already listed"}
	}
	m.created = append(m.created, investment)
	m.byAddress[investment.ProtectedDataAddress] = investment
	return investment, nil
}

func (m *mockInvestmentRepo) List(ctx context.Context) ([]domain.Investment, error) {
	m.listCalls++
	return m.created, nil
}

func (m *mockInvestmentRepo) GetByID(ctx context.Context, id string) (domain.Investment, error) {
	for _, investment := range m.created {
		if investment.ID == id {
			return investment, nil
		}
	}
	return domain.Investment{}, domain.NotFoundError{Resource: "investment"}
}

func (m *mockInvestmentRepo) GetByProtectedDataAddress(ctx context.Context, address string) (domain.Investment, error) {
	investment, ok := m.byAddress[address]
	if !ok {
		return domain.Investment{}, domain.NotFoundError{Resource: "investment"}
	}
	return investment, nil
}

type mockListingCache struct {
	stored      []domain.Investment
	hasValue    bool
	invalidated int
}

func (m *mockListingCache) Get(ctx context.Context) ([]domain.Investment, bool) {
	if !m.hasValue {
		return nil, false
	}
	return m.stored, true
}

func (m *mockListingCache) Set(ctx context.Context, investments []domain.Investment) {
	m.stored = investments
	m.hasValue = true
}

func (m *mockListingCache) Invalidate(ctx context.Context) {
	m.stored = nil
	m.hasValue = false
	m.invalidated++
}

type mockPublisher struct {
	events []folionet.Event
}

func (m *mockPublisher) Publish(ctx context.Context, channel string, event folionet.Event) error {
	m.events = append(m.events, event)
	return nil
}

type mockResolver struct {
	known map[string]bool
}

func (m *mockResolver) Exists(ctx context.Context, address string) (bool, error) {
	return m.known[address], nil
}

var investor = domain.User{ID: "u-1", Address: "0xaaa", Role: domain.RoleInvestor, Name: "Alice"}
var buyer = domain.User{ID: "u-2", Address: "0xbbb", Role: domain.RoleUser, Name: "Bob"}

func TestCreateInvestmentRequiresInvestorRole(t *testing.T) {
	uc := NewInvestmentUsecase(newMockInvestmentRepo(), nil, nil, nil)

	input := CreateInvestmentInput{ProtectedDataAddress: "pd1", CollectionID: "1", Name: "Growth"}
	_, err := uc.Create(context.Background(), buyer, input)
	if !errors.Is(err, domain.ErrUnauthorized) {
		t.Fatalf("expected AuthorizationError for USER role, got %v", err)
	}
}

func TestCreateInvestmentValidatesRequiredFields(t *testing.T) {
	uc := NewInvestmentUsecase(newMockInvestmentRepo(), nil, nil, nil)
	ctx := context.Background()

	cases := []CreateInvestmentInput{
		{CollectionID: "1", Name: "Growth"},
		{ProtectedDataAddress: "pd1", Name: "Growth"},
		{ProtectedDataAddress: "pd1", CollectionID: "1"},
	}
	for _, input := range cases {
		if _, err := uc.Create(ctx, investor, input); !errors.Is(err, domain.ErrInvalid) {
			t.Fatalf("expected ValidationError for %+v, got %v", input, err)
		}
	}

	negative := CreateInvestmentInput{
		ProtectedDataAddress: "pd1",
		CollectionID:         "1",
		Name:                 "Growth",
		Price:                decimal.NewFromInt(-1),
	}
	if _, err := uc.Create(ctx, investor, negative); !errors.Is(err, domain.ErrInvalid) {
		t.Fatalf("expected ValidationError for negative price, got %v", err)
	}
}

func TestCreateInvestmentAllocationRules(t *testing.T) {
	uc := NewInvestmentUsecase(newMockInvestmentRepo(), nil, nil, nil)
	ctx := context.Background()

	base := CreateInvestmentInput{ProtectedDataAddress: "pd1", CollectionID: "1", Name: "Growth"}

	short := base
	short.Allocations = []domain.TokenAllocation{
		{Symbol: "ETH", Percentage: decimal.NewFromInt(60)},
		{Symbol: "USDC", Percentage: decimal.NewFromInt(30)},
	}
	if _, err := uc.Create(ctx, investor, short); !errors.Is(err, domain.ErrInvalid) {
		t.Fatalf("expected ValidationError when allocations sum to 90, got %v", err)
	}

	unknown := base
	unknown.Allocations = []domain.TokenAllocation{
		{Symbol: "DOGE", Percentage: decimal.NewFromInt(100)},
	}
	if _, err := uc.Create(ctx, investor, unknown); !errors.Is(err, domain.ErrInvalid) {
		t.Fatalf("expected ValidationError for unknown symbol, got %v", err)
	}

	valid := base
	valid.Allocations = []domain.TokenAllocation{
		{Symbol: "eth", Percentage: decimal.NewFromInt(70)},
		{Symbol: "USDC", Percentage: decimal.NewFromInt(30)},
	}
	created, err := uc.Create(ctx, investor, valid)
	if err != nil {
		t.Fatalf("create failed: %v", err)
	}
	if len(created.Allocations) != 2 {
		t.Fatalf("expected allocations preserved, got %d", len(created.Allocations))
	}
	if created.CreatorID != investor.ID {
		t.Fatalf("expected creator %s, got %s", investor.ID, created.CreatorID)
	}
}

func TestCreateInvestmentVerifiesProtectedData(t *testing.T) {
	resolver := &mockResolver{known: map[string]bool{"pd-known": true}}
	uc := NewInvestmentUsecase(newMockInvestmentRepo(), nil, resolver, nil)
	ctx := context.Background()

	bad := CreateInvestmentInput{ProtectedDataAddress: "pd-unknown", CollectionID: "1", Name: "Growth"}
	if _, err := uc.Create(ctx, investor, bad); !errors.Is(err, domain.ErrInvalid) {
		t.Fatalf("expected ValidationError for unresolvable protected data, got %v", err)
	}

	good := CreateInvestmentInput{ProtectedDataAddress: "pd-known", CollectionID: "1", Name: "Growth"}
	if _, err := uc.Create(ctx, investor, good); err != nil {
		t.Fatalf("create failed: %v", err)
	}
}

func TestCreateInvestmentInvalidatesCacheAndPublishes(t *testing.T) {
	cache := &mockListingCache{}
	publisher := &mockPublisher{}
	uc := NewInvestmentUsecase(newMockInvestmentRepo(), cache, nil, publisher)

	input := CreateInvestmentInput{ProtectedDataAddress: "pd1", CollectionID: "1", Name: "Growth"}
	if _, err := uc.Create(context.Background(), investor, input); err != nil {
		t.Fatalf("create failed: %v", err)
	}

	if cache.invalidated != 1 {
		t.Fatalf("expected cache invalidation, got %d", cache.invalidated)
	}
	if len(publisher.events) != 1 || publisher.events[0].Type != folionet.EventTypeInvestmentCreated {
		t.Fatalf("expected investment.created event, got %+v", publisher.events)
	}
}

func TestListUsesCache(t *testing.T) {
	repo := newMockInvestmentRepo()
	cache := &mockListingCache{}
	uc := NewInvestmentUsecase(repo, cache, nil, nil)
	ctx := context.Background()

	input := CreateInvestmentInput{ProtectedDataAddress: "pd1", CollectionID: "1", Name: "Growth"}
	if _, err := uc.Create(ctx, investor, input); err != nil {
		t.Fatalf("create failed: %v", err)
	}

	first, err := uc.List(ctx)
	if err != nil {
		t.Fatalf("list failed: %v", err)
	}
	second, err := uc.List(ctx)
	if err != nil {
		t.Fatalf("second list failed: %v", err)
	}

	if repo.listCalls != 1 {
		t.Fatalf("expected second list to be served from cache, repo hit %d times", repo.listCalls)
	}
	if len(first) != len(second) {
		t.Fatalf("expected identical listings, got %d and %d", len(first), len(second))
	}
}
