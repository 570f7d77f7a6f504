// Copyright 2025 Les Gardiens de la Légende
// Licensed under the EUPL-1.2

package models

import "time"

// Club roles as stored in the users table.
const (
	RoleMember    = "Membre"
	RoleAdmin     = "Administrateur"
	RoleModerator = "Modérateur"
)

// User is a club member account. The password hash never leaves the API.
type User struct { //nolint:govet // fieldalignment: readability over optimization
	ID            int64      `db:"id" json:"id"`
	Pseudo        string     `db:"pseudo" json:"pseudo"`
	EmailAddress  string     `db:"email_address" json:"emailAddress"`
	PasswordHash  string     `db:"password_hash" json:"-"`
	FirstName     string     `db:"first_name" json:"firstName"`
	LastName      string     `db:"last_name" json:"lastName"`
	Avatar        *string    `db:"avatar" json:"avatar,omitempty"`
	Role          string     `db:"role" json:"role"`
	EmailVerified bool       `db:"email_verified" json:"emailVerified"`
	CreatedAt     time.Time  `db:"created_at" json:"createdAt"`
	UpdatedAt     time.Time  `db:"updated_at" json:"updatedAt"`
}

// IsAdmin reports whether the user carries the administrator role.
func (u *User) IsAdmin() bool {
	return u.Role == RoleAdmin
}
