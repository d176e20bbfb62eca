package repository

import (
	"context"
	"errors"

	"gorm.io/gorm"

	"github.com/MarcsonSantos/lu-estilo/internal/apperr"
	"github.com/MarcsonSantos/lu-estilo/internal/model"
)

// ClientRepository provides data access for Client entities.
type ClientRepository struct {
	db *gorm.DB
}

// NewClientRepository creates a ClientRepository over the given database handle.
func NewClientRepository(db *gorm.DB) *ClientRepository {
	return &ClientRepository{db: db}
}

// ClientPatch carries a partial update. Nil fields are left untouched.
type ClientPatch struct {
	Name        *string `json:"name,omitempty"`
	Address     *string `json:"address,omitempty"`
	PhoneNumber *string `json:"phone_number,omitempty"`
}

// FindByID returns the client with the given id, with its backing user.
func (r *ClientRepository) FindByID(ctx context.Context, id uint) (*model.Client, error) {
	var client model.Client
	err := r.db.WithContext(ctx).Preload("User").First(&client, id).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperr.NotFound("client not found")
		}
		return nil, apperr.Internal(err)
	}
	return &client, nil
}

// List returns clients with offset/limit pagination.
func (r *ClientRepository) List(ctx context.Context, page Page) ([]model.Client, error) {
	var clients []model.Client
	err := r.db.WithContext(ctx).
		Preload("User").
		Offset(page.Offset).
		Limit(page.Limit).
		Order("id").
		Find(&clients).Error
	if err != nil {
		return nil, apperr.Internal(err)
	}
	return clients, nil
}

// CreateWithUser registers a client together with its backing user in one
// transaction: either both rows land or neither does. Duplicate email or cpf
// is a conflict.
func (r *ClientRepository) CreateWithUser(ctx context.Context, user *model.User, client *model.Client) error {
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
		client.UserID = user.ID
		if err := tx.Create(client).Error; err != nil {
			return apperr.Internal(err)
		}
		return nil
	})
}

// Update applies a partial update; only fields present in the patch touch the
// row. Returns the refreshed client.
func (r *ClientRepository) Update(ctx context.Context, id uint, patch ClientPatch) (*model.Client, error) {
	client, err := r.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}

	updates := map[string]interface{}{}
	if patch.Name != nil {
		updates["name"] = *patch.Name
	}
	if patch.Address != nil {
		updates["address"] = *patch.Address
	}
	if patch.PhoneNumber != nil {
		updates["phone_number"] = *patch.PhoneNumber
	}
	if len(updates) == 0 {
		return client, nil
	}

	if err := r.db.WithContext(ctx).Model(client).Updates(updates).Error; err != nil {
		return nil, apperr.Internal(err)
	}
	return client, nil
}

// Delete removes a client. The backing user is kept: clients are deleted
// independently of their users.
func (r *ClientRepository) Delete(ctx context.Context, id uint) error {
	result := r.db.WithContext(ctx).Delete(&model.Client{}, id)
	if result.Error != nil {
		return apperr.Internal(result.Error)
	}
	if result.RowsAffected == 0 {
		return apperr.NotFound("client not found")
	}
	return nil
}
