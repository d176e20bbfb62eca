package repository

import (
	"context"
	"errors"

	"gorm.io/gorm"

	"github.com/MarcsonSantos/lu-estilo/internal/apperr"
	"github.com/MarcsonSantos/lu-estilo/internal/model"
)

// UserRepository provides data access for User entities.
type UserRepository struct {
	db *gorm.DB
}

// NewUserRepository creates a UserRepository over the given database handle.
func NewUserRepository(db *gorm.DB) *UserRepository {
	return &UserRepository{db: db}
}

// FindByID returns the user with the given id.
func (r *UserRepository) FindByID(ctx context.Context, id uint) (*model.User, error) {
	var user model.User
	err := r.db.WithContext(ctx).Preload("Client").First(&user, id).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperr.NotFound("user not found")
		}
		return nil, apperr.Internal(err)
	}
	return &user, nil
}

// FindByEmail returns the user with the given email.
func (r *UserRepository) FindByEmail(ctx context.Context, email string) (*model.User, error) {
	var user model.User
	err := r.db.WithContext(ctx).Preload("Client").Where("email = ?", email).First(&user).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperr.NotFound("user not found")
		}
		return nil, apperr.Internal(err)
	}
	return &user, nil
}

// FindByCPF returns the user with the given cpf.
func (r *UserRepository) FindByCPF(ctx context.Context, cpf string) (*model.User, error) {
	var user model.User
	err := r.db.WithContext(ctx).Preload("Client").Where("cpf = ?", cpf).First(&user).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperr.NotFound("user not found")
		}
		return nil, apperr.Internal(err)
	}
	return &user, nil
}

// List returns users with offset/limit pagination.
func (r *UserRepository) List(ctx context.Context, page Page) ([]model.User, error) {
	var users []model.User
	err := r.db.WithContext(ctx).
		Offset(page.Offset).
		Limit(page.Limit).
		Order("id").
		Find(&users).Error
	if err != nil {
		return nil, apperr.Internal(err)
	}
	return users, nil
}

// Create persists a new user. Duplicate email or cpf is a conflict and
// leaves the table unchanged.
func (r *UserRepository) Create(ctx context.Context, user *model.User) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var count int64
		if err := tx.Model(&model.User{}).Where("email = ?", user.Email).Count(&count).Error; err != nil {
			return apperr.Internal(err)
		}
		if count > 0 {
			return apperr.Conflict("email already registered")
		}
		if err := tx.Model(&model.User{}).Where("cpf = ?", user.CPF).Count(&count).Error; err != nil {
			return apperr.Internal(err)
		}
		if count > 0 {
			return apperr.Conflict("cpf already registered")
		}
		if err := tx.Create(user).Error; err != nil {
			return apperr.Internal(err)
		}
		return nil
	})
}
