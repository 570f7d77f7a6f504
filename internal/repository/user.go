// Copyright 2025 Les Gardiens de la Légende
// Licensed under the EUPL-1.2

package repository

import (
	"context"
	"time"

	"codeberg.org/lesgardiens/boardclub/internal/models"
)

// CreateUser inserts a new user and fills in its store-assigned id.
func (r *Repository) CreateUser(ctx context.Context, user *models.User) error {
	res, err := r.db.ExecContext(ctx,
		`INSERT INTO users (pseudo, email_address, password_hash, first_name, last_name, avatar, role, email_verified)
		 VALUES (?, ?, ?, ?, ?, ?, ?, ?)`,
		user.Pseudo, user.EmailAddress, user.PasswordHash, user.FirstName, user.LastName,
		user.Avatar, user.Role, user.EmailVerified)
	if err != nil {
		return wrapError(err)
	}
	id, err := res.LastInsertId()
	if err != nil {
		return err
	}
	user.ID = id
	return nil
}

// GetUserByID retrieves a user by their ID.
func (r *Repository) GetUserByID(ctx context.Context, id int64) (*models.User, error) {
	var user models.User
	err := r.db.GetContext(ctx, &user, `SELECT * FROM users WHERE id = ?`, id)
	if err != nil {
		return nil, wrapError(err)
	}
	return &user, nil
}

// GetUserByPseudo retrieves a user by their pseudo.
func (r *Repository) GetUserByPseudo(ctx context.Context, pseudo string) (*models.User, error) {
	var user models.User
	err := r.db.GetContext(ctx, &user, `SELECT * FROM users WHERE pseudo = ?`, pseudo)
	if err != nil {
		return nil, wrapError(err)
	}
	return &user, nil
}

// GetUserByEmail retrieves a user by their email address.
func (r *Repository) GetUserByEmail(ctx context.Context, email string) (*models.User, error) {
	var user models.User
	err := r.db.GetContext(ctx, &user, `SELECT * FROM users WHERE email_address = ?`, email)
	if err != nil {
		return nil, wrapError(err)
	}
	return &user, nil
}

// UpdateUser overwrites the mutable fields of an existing user.
func (r *Repository) UpdateUser(ctx context.Context, user *models.User) error {
	res, err := r.db.ExecContext(ctx,
		`UPDATE users SET pseudo = ?, email_address = ?, password_hash = ?, first_name = ?,
		 last_name = ?, avatar = ?, updated_at = ? WHERE id = ?`,
		user.Pseudo, user.EmailAddress, user.PasswordHash, user.FirstName,
		user.LastName, user.Avatar, time.Now().UTC(), user.ID)
	if err != nil {
		return wrapError(err)
	}
	affected, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if affected == 0 {
		return ErrNotFound
	}
	return nil
}

// MarkEmailVerified flips the email_verified flag. The flag never goes back.
func (r *Repository) MarkEmailVerified(ctx context.Context, id int64) error {
	res, err := r.db.ExecContext(ctx,
		`UPDATE users SET email_verified = 1, updated_at = ? WHERE id = ?`, time.Now().UTC(), id)
	if err != nil {
		return wrapError(err)
	}
	affected, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if affected == 0 {
		return ErrNotFound
	}
	return nil
}

// DeleteUser deletes a user by their ID.
func (r *Repository) DeleteUser(ctx context.Context, id int64) error {
	res, err := r.db.ExecContext(ctx, `DELETE FROM users WHERE id = ?`, id)
	if err != nil {
		return wrapError(err)
	}
	affected, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if affected == 0 {
		return ErrNotFound
	}
	return nil
}

// ListUsers returns all users ordered by creation date (newest first).
func (r *Repository) ListUsers(ctx context.Context) ([]models.User, error) {
	var users []models.User
	err := r.db.SelectContext(ctx, &users, `SELECT * FROM users ORDER BY created_at DESC`)
	if err != nil {
		return nil, wrapError(err)
	}
	return users, nil
}

// CountUsers returns the total number of users.
func (r *Repository) CountUsers(ctx context.Context) (int64, error) {
	var count int64
	err := r.db.GetContext(ctx, &count, `SELECT count(*) FROM users`)
	if err != nil {
		return 0, wrapError(err)
	}
	return count, nil
}
