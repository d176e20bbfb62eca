package repository

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"

	"github.com/MarcsonSantos/lu-estilo/internal/apperr"
	"github.com/MarcsonSantos/lu-estilo/internal/model"
)

func seedClient(t *testing.T, db *gorm.DB, email string) *model.Client {
	t.Helper()

	user := seedUser(t, db, email, "cpf-"+email)
	client := &model.Client{
		Name:        "Test Client",
		Address:     "Rua A, 1",
		PhoneNumber: "+5511999999999",
		UserID:      user.ID,
	}
	require.NoError(t, db.Create(client).Error)
	return client
}

func TestClientRepository_CreateWithUser(t *testing.T) {
	db := setupTestDB(t)
	repo := NewClientRepository(db)
	ctx := context.Background()

	user := &model.User{
		Email:          "c@b.com",
		CPF:            "333",
		HashedPassword: "digest",
		IsActive:       true,
	}
	client := &model.Client{
		Name:        "Maria",
		Address:     "Rua B, 2",
		PhoneNumber: "+5511888888888",
	}
	require.NoError(t, repo.CreateWithUser(ctx, user, client))
	require.NotZero(t, client.ID)
	assert.Equal(t, user.ID, client.UserID)

	found, err := repo.FindByID(ctx, client.ID)
	require.NoError(t, err)
	require.NotNil(t, found.User)
	assert.Equal(t, "c@b.com", found.User.Email)
}

func TestClientRepository_CreateWithUserIsAtomic(t *testing.T) {
	db := setupTestDB(t)
	repo := NewClientRepository(db)
	ctx := context.Background()
	seedUser(t, db, "taken@b.com", "111")

	user := &model.User{Email: "taken@b.com", CPF: "999", HashedPassword: "digest"}
	client := &model.Client{Name: "X", Address: "Y", PhoneNumber: "Z"}
	err := repo.CreateWithUser(ctx, user, client)
	assert.Equal(t, apperr.KindConflict, apperr.From(err).Kind)

	// Neither a second user nor an orphan client may exist.
	var users, clients int64
	require.NoError(t, db.Model(&model.User{}).Count(&users).Error)
	require.NoError(t, db.Model(&model.Client{}).Count(&clients).Error)
	assert.Equal(t, int64(1), users)
	assert.Zero(t, clients)
}

func TestClientRepository_UpdateIsAPatch(t *testing.T) {
	db := setupTestDB(t)
	repo := NewClientRepository(db)
	ctx := context.Background()
	client := seedClient(t, db, "c@b.com")

	newName := "Renamed"
	updated, err := repo.Update(ctx, client.ID, ClientPatch{Name: &newName})
	require.NoError(t, err)

	// Absent fields stay untouched.
	assert.Equal(t, "Renamed", updated.Name)
	assert.Equal(t, client.Address, updated.Address)
	assert.Equal(t, client.PhoneNumber, updated.PhoneNumber)
}

func TestClientRepository_UpdateMissingClient(t *testing.T) {
	db := setupTestDB(t)
	repo := NewClientRepository(db)

	name := "X"
	_, err := repo.Update(context.Background(), 404, ClientPatch{Name: &name})
	assert.Equal(t, apperr.KindNotFound, apperr.From(err).Kind)
}

func TestClientRepository_DeleteKeepsUser(t *testing.T) {
	db := setupTestDB(t)
	repo := NewClientRepository(db)
	ctx := context.Background()
	client := seedClient(t, db, "c@b.com")

	require.NoError(t, repo.Delete(ctx, client.ID))

	_, err := repo.FindByID(ctx, client.ID)
	assert.Equal(t, apperr.KindNotFound, apperr.From(err).Kind)

	// The backing user is deleted independently, not with the client.
	var users int64
	require.NoError(t, db.Model(&model.User{}).Count(&users).Error)
	assert.Equal(t, int64(1), users)

	assert.Equal(t, apperr.KindNotFound, apperr.From(repo.Delete(ctx, client.ID)).Kind)
}
