// Copyright 2025 Les Gardiens de la Légende
// Licensed under the EUPL-1.2

package handlers

import (
	"net/http"

	"codeberg.org/lesgardiens/boardclub/internal/services/auth"
	validation "github.com/go-ozzo/ozzo-validation"
	"github.com/labstack/echo/v4"
)

type updateUserRequest struct {
	CurrentPassword    string  `json:"password"`
	Pseudo             *string `json:"pseudo"`
	EmailAddress       *string `json:"emailAddress"`
	FirstName          *string `json:"firstName"`
	LastName           *string `json:"lastName"`
	Avatar             *string `json:"avatar"`
	NewPassword        *string `json:"newPassword"`
	NewPasswordConfirm *string `json:"newPasswordConfirm"`
}

func (r updateUserRequest) Validate() error {
	return validation.ValidateStruct(&r,
		validation.Field(&r.CurrentPassword, validation.Required),
	)
}

// UpdateUser applies a partial profile update. The caller must resend their
// current password; absent fields keep their stored values.
func (h *Handlers) UpdateUser(c echo.Context) error {
	id, err := pathID(c)
	if err != nil {
		return err
	}

	var req updateUserRequest
	if err := c.Bind(&req); err != nil {
		return jsonError(c, http.StatusBadRequest, "Requête invalide.")
	}
	if err := req.Validate(); err != nil {
		return jsonError(c, http.StatusBadRequest, err.Error())
	}

	user, err := h.auth.UpdateProfile(c.Request().Context(), id, auth.UpdateParams{
		CurrentPassword:    req.CurrentPassword,
		Pseudo:             req.Pseudo,
		EmailAddress:       req.EmailAddress,
		FirstName:          req.FirstName,
		LastName:           req.LastName,
		Avatar:             req.Avatar,
		NewPassword:        req.NewPassword,
		NewPasswordConfirm: req.NewPasswordConfirm,
	})
	if err != nil {
		return serviceError(c, err)
	}

	// The snapshot recorded at login is stale now; refresh it for clients
	// that carry one.
	if snapshot := h.sessions.Read(c.Request()); snapshot != nil && snapshot.UserID == user.ID {
		if cookie, err := h.sessions.Create(user); err == nil {
			c.SetCookie(cookie)
		}
	}

	return c.JSON(http.StatusOK, user)
}

// ListUsers returns every member account. Admin only.
func (h *Handlers) ListUsers(c echo.Context) error {
	users, err := h.repo.ListUsers(c.Request().Context())
	if err != nil {
		return serviceError(c, err)
	}
	return c.JSON(http.StatusOK, users)
}

// GetUser returns one member account. Admin only.
func (h *Handlers) GetUser(c echo.Context) error {
	id, err := pathID(c)
	if err != nil {
		return err
	}

	user, err := h.repo.GetUserByID(c.Request().Context(), id)
	if err != nil {
		return serviceError(c, err)
	}
	return c.JSON(http.StatusOK, user)
}

// DeleteUser removes a member account. Admin only.
func (h *Handlers) DeleteUser(c echo.Context) error {
	id, err := pathID(c)
	if err != nil {
		return err
	}

	if err := h.repo.DeleteUser(c.Request().Context(), id); err != nil {
		return serviceError(c, err)
	}
	return c.JSON(http.StatusOK, map[string]string{
		"message": "L'utilisateur a bien été supprimé.",
	})
}
