// Copyright 2025 Les Gardiens de la Légende
// Licensed under the EUPL-1.2

package repository_test

import (
	"context"
	"testing"
	"time"

	"codeberg.org/lesgardiens/boardclub/internal/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRevokeToken(t *testing.T) {
	_, repo := testutil.NewTestDB(t)
	ctx := context.Background()

	err := repo.RevokeToken(ctx, "daisy_123456", time.Now().Add(3*time.Hour))
	require.NoError(t, err)

	revoked, err := repo.IsTokenRevoked(ctx, "daisy_123456")
	require.NoError(t, err)
	assert.True(t, revoked)
}

func TestRevokeToken_Idempotent(t *testing.T) {
	_, repo := testutil.NewTestDB(t)
	ctx := context.Background()

	exp := time.Now().Add(3 * time.Hour)
	require.NoError(t, repo.RevokeToken(ctx, "daisy_123456", exp))
	require.NoError(t, repo.RevokeToken(ctx, "daisy_123456", exp))

	revoked, err := repo.IsTokenRevoked(ctx, "daisy_123456")
	require.NoError(t, err)
	assert.True(t, revoked)
}

func TestIsTokenRevoked_Unknown(t *testing.T) {
	_, repo := testutil.NewTestDB(t)

	revoked, err := repo.IsTokenRevoked(context.Background(), "unknown_000000")

	require.NoError(t, err)
	assert.False(t, revoked)
}

func TestIsTokenRevoked_ExpiredEntry(t *testing.T) {
	_, repo := testutil.NewTestDB(t)
	ctx := context.Background()

	require.NoError(t, repo.RevokeToken(ctx, "daisy_123456", time.Now().Add(-time.Minute)))

	revoked, err := repo.IsTokenRevoked(ctx, "daisy_123456")
	require.NoError(t, err)
	assert.False(t, revoked, "an entry past the token expiry no longer counts")
}

func TestPurgeExpiredTokens(t *testing.T) {
	_, repo := testutil.NewTestDB(t)
	ctx := context.Background()

	require.NoError(t, repo.RevokeToken(ctx, "old_000001", time.Now().Add(-time.Hour)))
	require.NoError(t, repo.RevokeToken(ctx, "fresh_000002", time.Now().Add(time.Hour)))

	purged, err := repo.PurgeExpiredTokens(ctx)
	require.NoError(t, err)
	assert.Equal(t, int64(1), purged)

	revoked, err := repo.IsTokenRevoked(ctx, "fresh_000002")
	require.NoError(t, err)
	assert.True(t, revoked)
}
