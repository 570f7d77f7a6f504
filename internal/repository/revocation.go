// Copyright 2025 Les Gardiens de la Légende
// Licensed under the EUPL-1.2

package repository

import (
	"context"
	"time"
)

// RevokeToken records a token id in the revocation registry. The write must
// be durable before the logout response is returned, so no buffering here.
// Revoking an already revoked jti is a no-op.
func (r *Repository) RevokeToken(ctx context.Context, jti string, expiresAt time.Time) error {
	_, err := r.db.ExecContext(ctx,
		`INSERT INTO revoked_tokens (jti, expires_at) VALUES (?, ?)
		 ON CONFLICT (jti) DO NOTHING`,
		jti, expiresAt.UTC())
	return wrapError(err)
}

// IsTokenRevoked reports whether a token id has been revoked. Entries past
// their natural expiry no longer count; the signature check rejects those
// tokens anyway.
func (r *Repository) IsTokenRevoked(ctx context.Context, jti string) (bool, error) {
	var count int64
	err := r.db.GetContext(ctx, &count,
		`SELECT count(*) FROM revoked_tokens WHERE jti = ? AND expires_at > ?`,
		jti, time.Now().UTC())
	if err != nil {
		return false, wrapError(err)
	}
	return count > 0, nil
}

// PurgeExpiredTokens removes revocation entries whose tokens have expired.
func (r *Repository) PurgeExpiredTokens(ctx context.Context) (int64, error) {
	res, err := r.db.ExecContext(ctx,
		`DELETE FROM revoked_tokens WHERE expires_at <= ?`, time.Now().UTC())
	if err != nil {
		return 0, wrapError(err)
	}
	return res.RowsAffected()
}
