package repository

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestUserRepository_FindByEmail(t *testing.T) {
	db := newTestDB(t)
	ctx := context.Background()
	repo := NewUserRepository(db)

	alice := createUser(t, db, "a@example.com")

	found, err := repo.FindByEmail(ctx, "a@example.com")
	require.NoError(t, err)
	require.NotNil(t, found)
	assert.Equal(t, alice.ID, found.ID)

	missing, err := repo.FindByEmail(ctx, "nobody@example.com")
	require.NoError(t, err)
	assert.Nil(t, missing)
}

func TestUserRepository_UpdateName(t *testing.T) {
	db := newTestDB(t)
	ctx := context.Background()
	repo := NewUserRepository(db)

	alice := createUser(t, db, "a@example.com")

	updated, err := repo.UpdateName(ctx, alice.ID, "New Name")
	require.NoError(t, err)
	require.NotNil(t, updated)
	assert.Equal(t, "New Name", updated.Name)
	// Only the display name changes.
	assert.Equal(t, alice.Email, updated.Email)
	assert.Equal(t, alice.PasswordHash, updated.PasswordHash)

	missing, err := repo.UpdateName(ctx, 9999, "Ghost")
	require.NoError(t, err)
	assert.Nil(t, missing)
}
