// Copyright 2025 Les Gardiens de la Légende
// Licensed under the EUPL-1.2

package repository_test

import (
	"context"
	"testing"

	"codeberg.org/lesgardiens/boardclub/internal/models"
	"codeberg.org/lesgardiens/boardclub/internal/repository"
	"codeberg.org/lesgardiens/boardclub/internal/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newUser(pseudo, email string) *models.User {
	return &models.User{
		Pseudo:       pseudo,
		EmailAddress: email,
		PasswordHash: "not-a-real-hash",
		FirstName:    "Daisy",
		LastName:     "Duck",
		Role:         models.RoleMember,
	}
}

func TestCreateUser(t *testing.T) {
	_, repo := testutil.NewTestDB(t)
	ctx := context.Background()

	user := newUser("daisy", "daisy@example.org")
	err := repo.CreateUser(ctx, user)

	require.NoError(t, err)
	assert.NotZero(t, user.ID)
}

func TestCreateUser_DuplicatePseudo(t *testing.T) {
	_, repo := testutil.NewTestDB(t)
	ctx := context.Background()

	require.NoError(t, repo.CreateUser(ctx, newUser("daisy", "daisy@example.org")))

	err := repo.CreateUser(ctx, newUser("daisy", "other@example.org"))

	assert.ErrorIs(t, err, repository.ErrDuplicate)
}

func TestCreateUser_DuplicateEmail(t *testing.T) {
	_, repo := testutil.NewTestDB(t)
	ctx := context.Background()

	require.NoError(t, repo.CreateUser(ctx, newUser("daisy", "daisy@example.org")))

	err := repo.CreateUser(ctx, newUser("donald", "daisy@example.org"))

	assert.ErrorIs(t, err, repository.ErrDuplicate)
}

func TestGetUserByPseudo(t *testing.T) {
	_, repo := testutil.NewTestDB(t)
	ctx := context.Background()

	created := newUser("daisy", "daisy@example.org")
	require.NoError(t, repo.CreateUser(ctx, created))

	retrieved, err := repo.GetUserByPseudo(ctx, "daisy")

	require.NoError(t, err)
	assert.Equal(t, created.ID, retrieved.ID)
	assert.Equal(t, "daisy@example.org", retrieved.EmailAddress)
	assert.False(t, retrieved.EmailVerified)
}

func TestGetUserByPseudo_NotFound(t *testing.T) {
	_, repo := testutil.NewTestDB(t)

	_, err := repo.GetUserByPseudo(context.Background(), "nobody")

	assert.ErrorIs(t, err, repository.ErrNotFound)
}

func TestGetUserByID_NotFound(t *testing.T) {
	_, repo := testutil.NewTestDB(t)

	_, err := repo.GetUserByID(context.Background(), 999)

	assert.ErrorIs(t, err, repository.ErrNotFound)
}

func TestMarkEmailVerified(t *testing.T) {
	_, repo := testutil.NewTestDB(t)
	ctx := context.Background()

	user := newUser("daisy", "daisy@example.org")
	require.NoError(t, repo.CreateUser(ctx, user))

	require.NoError(t, repo.MarkEmailVerified(ctx, user.ID))

	retrieved, err := repo.GetUserByID(ctx, user.ID)
	require.NoError(t, err)
	assert.True(t, retrieved.EmailVerified)
}

func TestUpdateUser(t *testing.T) {
	_, repo := testutil.NewTestDB(t)
	ctx := context.Background()

	user := newUser("daisy", "daisy@example.org")
	require.NoError(t, repo.CreateUser(ctx, user))

	user.FirstName = "Marguerite"
	avatar := "/avatars/daisy.png"
	user.Avatar = &avatar
	require.NoError(t, repo.UpdateUser(ctx, user))

	retrieved, err := repo.GetUserByID(ctx, user.ID)
	require.NoError(t, err)
	assert.Equal(t, "Marguerite", retrieved.FirstName)
	require.NotNil(t, retrieved.Avatar)
	assert.Equal(t, "/avatars/daisy.png", *retrieved.Avatar)
}

func TestUpdateUser_NotFound(t *testing.T) {
	_, repo := testutil.NewTestDB(t)

	ghost := newUser("ghost", "ghost@example.org")
	ghost.ID = 999

	err := repo.UpdateUser(context.Background(), ghost)

	assert.ErrorIs(t, err, repository.ErrNotFound)
}

func TestDeleteUser(t *testing.T) {
	_, repo := testutil.NewTestDB(t)
	ctx := context.Background()

	user := newUser("daisy", "daisy@example.org")
	require.NoError(t, repo.CreateUser(ctx, user))

	require.NoError(t, repo.DeleteUser(ctx, user.ID))

	_, err := repo.GetUserByID(ctx, user.ID)
	assert.ErrorIs(t, err, repository.ErrNotFound)
}

func TestListUsers(t *testing.T) {
	_, repo := testutil.NewTestDB(t)
	ctx := context.Background()

	require.NoError(t, repo.CreateUser(ctx, newUser("daisy", "daisy@example.org")))
	require.NoError(t, repo.CreateUser(ctx, newUser("donald", "donald@example.org")))

	users, err := repo.ListUsers(ctx)

	require.NoError(t, err)
	assert.Len(t, users, 2)

	count, err := repo.CountUsers(ctx)
	require.NoError(t, err)
	assert.Equal(t, int64(2), count)
}
