// Copyright 2025 Les Gardiens de la Légende
// Licensed under the EUPL-1.2

package handlers

import (
	"net/http"

	validation "github.com/go-ozzo/ozzo-validation"
	"github.com/labstack/echo/v4"
)

type participantRequest struct {
	EventID int64 `json:"eventId"`
	UserID  int64 `json:"userId"`
}

func (r participantRequest) Validate() error {
	return validation.ValidateStruct(&r,
		validation.Field(&r.EventID, validation.Required, validation.Min(1)),
		validation.Field(&r.UserID, validation.Required, validation.Min(1)),
	)
}

// AddParticipant registers a member for an event. Re-registering after a
// cancellation confirms the participation again.
func (h *Handlers) AddParticipant(c echo.Context) error {
	var req participantRequest
	if err := c.Bind(&req); err != nil {
		return jsonError(c, http.StatusBadRequest, "Requête invalide.")
	}
	if err := req.Validate(); err != nil {
		return jsonError(c, http.StatusBadRequest, err.Error())
	}

	if err := h.repo.AddParticipant(c.Request().Context(), req.EventID, req.UserID); err != nil {
		return serviceError(c, err)
	}
	return c.JSON(http.StatusOK, map[string]string{
		"message": "Votre participation est enregistrée.",
	})
}

// CancelParticipant marks a participation as cancelled.
func (h *Handlers) CancelParticipant(c echo.Context) error {
	var req participantRequest
	if err := c.Bind(&req); err != nil {
		return jsonError(c, http.StatusBadRequest, "Requête invalide.")
	}
	if err := req.Validate(); err != nil {
		return jsonError(c, http.StatusBadRequest, err.Error())
	}

	if err := h.repo.CancelParticipant(c.Request().Context(), req.EventID, req.UserID); err != nil {
		return serviceError(c, err)
	}
	return c.JSON(http.StatusOK, map[string]string{
		"message": "Votre participation est annulée.",
	})
}

// ListParticipants returns the participants of an event.
func (h *Handlers) ListParticipants(c echo.Context) error {
	id, err := pathID(c)
	if err != nil {
		return err
	}

	participants, err := h.repo.ListParticipants(c.Request().Context(), id)
	if err != nil {
		return serviceError(c, err)
	}
	return c.JSON(http.StatusOK, participants)
}
