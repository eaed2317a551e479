package usecase

import (
	"context"
	"errors"

	"github.com/google/uuid"

	"github.com/folionet/folionet"
	"github.com/folionet/folionet/internal/domain"
)

const (
	CheckStatusAuthenticated        = "AUTHENTICATED"
	CheckStatusRegistrationRequired = "REGISTRATION_REQUIRED"
)

type RegisterInput struct {
	Address string
	Role    string
	Name    string
	Email   *string
}

type CheckResult struct {
	Status  string
	User    *domain.User
	Address string
}

type AuthUsecase struct {
	users        UserRepository
	registration string
}

func NewAuthUsecase(users UserRepository, registration string) *AuthUsecase {
	return &AuthUsecase{users: users, registration: registration}
}

// Register creates a user for a wallet address. A concurrent duplicate
// registration loses to the unique index on users.address and surfaces as
// a ConflictError.
func (uc *AuthUsecase) Register(ctx context.Context, input RegisterInput) (domain.User, error) {
	if uc.registration == "close" {
		return domain.User{}, domain.AuthorizationError{Message: "registration is closed"}
	}
	if input.Address == "" || input.Role == "" || input.Name == "" {
		return domain.User{}, domain.ValidationError{Message: "missing required fields"}
	}
	if !domain.IsValidRole(input.Role) {
		return domain.User{}, domain.ValidationError{Message: "invalid role"}
	}

	address := folionet.NormalizeAddress(input.Address)

	_, err := uc.users.GetByAddress(ctx, address)
	if err == nil {
		return domain.User{}, domain.ConflictError{Message: "user already exists"}
	}
	if !errors.Is(err, domain.ErrNotFound) {
		return domain.User{}, err
	}

	return uc.users.Create(ctx, domain.User{
		ID:      uuid.NewString(),
		Address: address,
		Role:    input.Role,
		Name:    input.Name,
		Email:   input.Email,
	})
}

// Check resolves an address to either an authenticated user or a prompt to
// register. An unregistered address is a normal outcome, not an error.
func (uc *AuthUsecase) Check(ctx context.Context, address string) (CheckResult, error) {
	if address == "" {
		return CheckResult{}, domain.ValidationError{Message: "missing address"}
	}

	normalized := folionet.NormalizeAddress(address)

	user, err := uc.users.GetByAddress(ctx, normalized)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return CheckResult{Status: CheckStatusRegistrationRequired, Address: normalized}, nil
		}
		return CheckResult{}, err
	}

	return CheckResult{Status: CheckStatusAuthenticated, User: &user}, nil
}

// Resolve is the authentication gate: it maps the caller-supplied address
// to a user record. Absence of an identity and absence of a registration
// both yield an AuthorizationError; infrastructure failures pass through
// so they surface as 500s instead of being mistaken for "not registered".
func (uc *AuthUsecase) Resolve(ctx context.Context, address string) (domain.User, error) {
	if address == "" {
		return domain.User{}, domain.AuthorizationError{Message: "no wallet address provided"}
	}

	user, err := uc.users.GetByAddress(ctx, folionet.NormalizeAddress(address))
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return domain.User{}, domain.AuthorizationError{Message: "no user found for address"}
		}
		return domain.User{}, err
	}

	return user, nil
}
