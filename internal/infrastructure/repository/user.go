package repository

import (
	"context"
	"errors"

	"gorm.io/gorm"

	"github.com/folionet/folionet/internal/domain"
	"github.com/folionet/folionet/internal/infrastructure/database/models"
)

type UserRepository struct {
	db *gorm.DB
}

func NewUserRepository(db *gorm.DB) *UserRepository {
	return &UserRepository{db: db}
}

func (r *UserRepository) Create(ctx context.Context, user domain.User) (domain.User, error) {
	model := models.User{
		ID:      user.ID,
		Address: user.Address,
		Role:    user.Role,
		Name:    user.Name,
		Email:   user.Email,
	}

	err := r.db.WithContext(ctx).Create(&model).Error
	if err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return domain.User{}, domain.ConflictError{Message: "user already exists"}
		}
		return domain.User{}, err
	}

	return userToDomain(model), nil
}

func (r *UserRepository) GetByAddress(ctx context.Context, address string) (domain.User, error) {
	var model models.User
	err := r.db.WithContext(ctx).First(&model, "address = ?", address).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return domain.User{}, domain.NotFoundError{Resource: "user"}
		}
		return domain.User{}, err
	}
	return userToDomain(model), nil
}

func (r *UserRepository) GetByID(ctx context.Context, id string) (domain.User, error) {
	var model models.User
	err := r.db.WithContext(ctx).First(&model, "id = ?", id).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return domain.User{}, domain.NotFoundError{Resource: "user"}
		}
		return domain.User{}, err
	}
	return userToDomain(model), nil
}

func userToDomain(model models.User) domain.User {
	return domain.User{
		ID:      model.ID,
		Address: model.Address,
		Role:    model.Role,
		Name:    model.Name,
		Email:   model.Email,
	}
}
