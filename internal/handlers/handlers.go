// Copyright 2025 Les Gardiens de la Légende
// Licensed under the EUPL-1.2

package handlers

import (
	"net/http"

	"codeberg.org/lesgardiens/boardclub/internal/repository"
	"codeberg.org/lesgardiens/boardclub/internal/services/auth"
	"codeberg.org/lesgardiens/boardclub/internal/services/session"
	"github.com/labstack/echo/v4"
)

// Handlers contains all HTTP handlers.
type Handlers struct {
	repo     *repository.Repository
	auth     *auth.Service
	sessions *session.Manager
}

// New creates a new Handlers instance.
func New(repo *repository.Repository, authService *auth.Service, sessions *session.Manager) *Handlers {
	return &Handlers{repo: repo, auth: authService, sessions: sessions}
}

// Health returns the health status.
func (h *Handlers) Health(c echo.Context) error {
	return c.JSON(http.StatusOK, map[string]string{
		"status": "ok",
	})
}
