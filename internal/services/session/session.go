// Copyright 2025 Les Gardiens de la Légende
// Licensed under the EUPL-1.2

// Package session writes a signed server-side snapshot of the logged-in
// user alongside the bearer token.
package session

import (
	"encoding/hex"
	"fmt"
	"net/http"

	"codeberg.org/lesgardiens/boardclub/internal/config"
	"codeberg.org/lesgardiens/boardclub/internal/models"
	"github.com/gorilla/securecookie"
)

// Snapshot is the user data stored in the session cookie.
type Snapshot struct {
	UserID    int64  `json:"userId"`
	Pseudo    string `json:"pseudo"`
	FirstName string `json:"firstname"`
	LastName  string `json:"lastname"`
	Email     string `json:"email"`
	Role      string `json:"role"`
	IsAdmin   bool   `json:"isAdmin"`
}

// Manager signs and reads session snapshot cookies.
type Manager struct {
	codec      *securecookie.SecureCookie
	cookieName string
	maxAge     int
	secure     bool
}

// NewManager creates a session manager from the configured keys. The hash
// key is required; the block key enables encryption and is optional.
func NewManager(cfg *config.SessionConfig, secure bool) (*Manager, error) {
	hashKey, err := hex.DecodeString(cfg.HashKey)
	if err != nil || len(hashKey) == 0 {
		return nil, fmt.Errorf("session hash key must be a non-empty hex string")
	}

	var blockKey []byte
	if cfg.BlockKey != "" {
		blockKey, err = hex.DecodeString(cfg.BlockKey)
		if err != nil {
			return nil, fmt.Errorf("session block key must be a hex string")
		}
	}

	codec := securecookie.New(hashKey, blockKey)
	codec.MaxAge(cfg.MaxAge)

	return &Manager{
		codec:      codec,
		cookieName: cfg.CookieName,
		maxAge:     cfg.MaxAge,
		secure:     secure,
	}, nil
}

// Create builds the session cookie for a freshly logged-in user.
func (m *Manager) Create(user *models.User) (*http.Cookie, error) {
	snapshot := Snapshot{
		UserID:    user.ID,
		Pseudo:    user.Pseudo,
		FirstName: user.FirstName,
		LastName:  user.LastName,
		Email:     user.EmailAddress,
		Role:      user.Role,
		IsAdmin:   user.IsAdmin(),
	}

	encoded, err := m.codec.Encode(m.cookieName, snapshot)
	if err != nil {
		return nil, fmt.Errorf("failed to encode session: %w", err)
	}

	return &http.Cookie{
		Name:     m.cookieName,
		Value:    encoded,
		Path:     "/",
		MaxAge:   m.maxAge,
		HttpOnly: true,
		Secure:   m.secure,
		SameSite: http.SameSiteLaxMode,
	}, nil
}

// Read decodes the session cookie from a request. Returns nil when absent
// or invalid; the bearer token is the authority, the snapshot is a bonus.
func (m *Manager) Read(r *http.Request) *Snapshot {
	cookie, err := r.Cookie(m.cookieName)
	if err != nil {
		return nil
	}

	var snapshot Snapshot
	if err := m.codec.Decode(m.cookieName, cookie.Value, &snapshot); err != nil {
		return nil
	}
	return &snapshot
}

// Clear builds an expired cookie that removes the session snapshot.
func (m *Manager) Clear() *http.Cookie {
	return &http.Cookie{
		Name:     m.cookieName,
		Value:    "",
		Path:     "/",
		MaxAge:   -1,
		HttpOnly: true,
		Secure:   m.secure,
		SameSite: http.SameSiteLaxMode,
	}
}
