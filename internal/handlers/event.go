// Copyright 2025 Les Gardiens de la Légende
// Licensed under the EUPL-1.2

package handlers

import (
	"fmt"
	"net/http"

	"codeberg.org/lesgardiens/boardclub/internal/models"
	validation "github.com/go-ozzo/ozzo-validation"
	"github.com/labstack/echo/v4"
)

type eventResponse struct {
	ID          int64   `json:"id"`
	Title       string  `json:"title"`
	Description string  `json:"description"`
	EventDate   string  `json:"eventDate"`
	CreatorID   int64   `json:"creatorId"`
	Tag         string  `json:"tag"`
	EventGames  string  `json:"eventGames"`
	CreatedDate string  `json:"createdDate"`
	UpdateDate  *string `json:"updateDate,omitempty"`
}

func toEventResponse(e *models.Event) eventResponse {
	resp := eventResponse{
		ID:          e.ID,
		Title:       e.Title,
		Description: e.Description,
		EventDate:   formatDate(e.EventDate),
		CreatorID:   e.CreatorID,
		Tag:         e.Tag,
		EventGames:  e.EventGames,
		CreatedDate: formatDate(e.CreatedAt),
	}
	if e.UpdatedAt != nil {
		formatted := formatDate(*e.UpdatedAt)
		resp.UpdateDate = &formatted
	}
	return resp
}

// ListEvents returns all events with formatted dates.
func (h *Handlers) ListEvents(c echo.Context) error {
	events, err := h.repo.ListEvents(c.Request().Context())
	if err != nil {
		return serviceError(c, err)
	}

	resp := make([]eventResponse, len(events))
	for i := range events {
		resp[i] = toEventResponse(&events[i])
	}
	return c.JSON(http.StatusOK, resp)
}

// GetEvent returns one event.
func (h *Handlers) GetEvent(c echo.Context) error {
	id, err := pathID(c)
	if err != nil {
		return err
	}

	event, err := h.repo.GetEventByID(c.Request().Context(), id)
	if err != nil {
		return serviceError(c, err)
	}
	return c.JSON(http.StatusOK, toEventResponse(event))
}

type eventRequest struct {
	Title       string `json:"title"`
	Description string `json:"description"`
	EventDate   string `json:"eventDate"`
	CreatorID   int64  `json:"creatorId"`
	Tag         string `json:"tag"`
	EventGames  string `json:"eventGames"`
}

func (r eventRequest) Validate() error {
	return validation.ValidateStruct(&r,
		validation.Field(&r.Title, validation.Required, validation.Length(1, 200)),
		validation.Field(&r.Description, validation.Required, validation.Length(15, 0)),
		validation.Field(&r.EventDate, validation.Required),
		validation.Field(&r.CreatorID, validation.Required),
	)
}

// CreateEvent inserts a new event. The event date arrives in the
// frontend's day-first format and is stored as a time.
func (h *Handlers) CreateEvent(c echo.Context) error {
	var req eventRequest
	if err := c.Bind(&req); err != nil {
		return jsonError(c, http.StatusBadRequest, "Requête invalide.")
	}
	if err := req.Validate(); err != nil {
		return jsonError(c, http.StatusBadRequest, err.Error())
	}

	eventDate, err := parseClientDate(req.EventDate)
	if err != nil {
		return jsonError(c, http.StatusBadRequest, "Date d'évènement invalide.")
	}

	event := &models.Event{
		Title:       req.Title,
		Description: req.Description,
		EventDate:   eventDate,
		CreatorID:   req.CreatorID,
		Tag:         req.Tag,
		EventGames:  req.EventGames,
	}
	if err := h.repo.CreateEvent(c.Request().Context(), event); err != nil {
		return serviceError(c, err)
	}
	return c.JSON(http.StatusOK, toEventResponse(event))
}

type eventPatchRequest struct {
	Title       *string `json:"title"`
	Description *string `json:"description"`
	EventDate   *string `json:"eventDate"`
	Tag         *string `json:"tag"`
	EventGames  *string `json:"eventGames"`
}

// UpdateEvent applies a partial update; absent fields keep their values.
func (h *Handlers) UpdateEvent(c echo.Context) error {
	id, err := pathID(c)
	if err != nil {
		return err
	}

	var req eventPatchRequest
	if err := c.Bind(&req); err != nil {
		return jsonError(c, http.StatusBadRequest, "Requête invalide.")
	}

	event, err := h.repo.GetEventByID(c.Request().Context(), id)
	if err != nil {
		return serviceError(c, err)
	}

	if req.Title != nil {
		event.Title = *req.Title
	}
	if req.Description != nil {
		event.Description = *req.Description
	}
	if req.EventDate != nil {
		eventDate, err := parseClientDate(*req.EventDate)
		if err != nil {
			return jsonError(c, http.StatusBadRequest, "Date d'évènement invalide.")
		}
		event.EventDate = eventDate
	}
	if req.Tag != nil {
		event.Tag = *req.Tag
	}
	if req.EventGames != nil {
		event.EventGames = *req.EventGames
	}

	if err := h.repo.UpdateEvent(c.Request().Context(), event); err != nil {
		return serviceError(c, err)
	}
	return c.JSON(http.StatusOK, toEventResponse(event))
}

// DeleteEvent removes an event and, through the store's cascade, its
// participants.
func (h *Handlers) DeleteEvent(c echo.Context) error {
	id, err := pathID(c)
	if err != nil {
		return err
	}

	if err := h.repo.DeleteEvent(c.Request().Context(), id); err != nil {
		return serviceError(c, err)
	}
	return c.JSON(http.StatusOK, fmt.Sprintf("L'évènement avec l'id %d a été supprimé", id))
}
