// Copyright 2025 Les Gardiens de la Légende
// Licensed under the EUPL-1.2

package handlers

import (
	"encoding/json"
	"fmt"
	"net/http"

	"codeberg.org/lesgardiens/boardclub/internal/models"
	validation "github.com/go-ozzo/ozzo-validation"
	"github.com/labstack/echo/v4"
)

type gameResponse struct {
	ID            int64  `json:"id"`
	Title         string `json:"title"`
	MinPlayer     int    `json:"minPlayer"`
	MaxPlayer     int    `json:"maxPlayer"`
	MinAge        int    `json:"minAge"`
	Duration      int    `json:"duration"`
	Quantity      int    `json:"quantity"`
	Creator       string `json:"creator"`
	Editor        string `json:"editor"`
	Description   string `json:"description"`
	Preview       string `json:"preview,omitempty"`
	Year          int    `json:"year"`
	Type          string `json:"type"`
	PurchasedDate string `json:"purchasedDate,omitempty"`
}

func toGameResponse(g *models.Game, withPreview bool) gameResponse {
	resp := gameResponse{
		ID:          g.ID,
		Title:       g.Title,
		MinPlayer:   g.MinPlayer,
		MaxPlayer:   g.MaxPlayer,
		MinAge:      g.MinAge,
		Duration:    g.Duration,
		Quantity:    g.Quantity,
		Creator:     g.Creator,
		Editor:      g.Editor,
		Description: g.Description,
		Year:        g.Year,
		Type:        g.Type,
	}
	if g.PurchasedAt != nil {
		resp.PurchasedDate = formatDate(*g.PurchasedAt)
	}
	if withPreview {
		resp.Preview = preview(g.Description)
	}
	return resp
}

// ListGames returns the club's game library, ordered by title.
func (h *Handlers) ListGames(c echo.Context) error {
	games, err := h.repo.ListGames(c.Request().Context())
	if err != nil {
		return serviceError(c, err)
	}

	resp := make([]gameResponse, len(games))
	for i := range games {
		resp[i] = toGameResponse(&games[i], true)
	}
	return c.JSON(http.StatusOK, resp)
}

// GetGame returns one game.
func (h *Handlers) GetGame(c echo.Context) error {
	id, err := pathID(c)
	if err != nil {
		return err
	}

	game, err := h.repo.GetGameByID(c.Request().Context(), id)
	if err != nil {
		return serviceError(c, err)
	}
	return c.JSON(http.StatusOK, toGameResponse(game, false))
}

// gameDuration accepts the two forms the frontend sends for a play time:
// a plain number of minutes or an {hours, minutes} object.
type gameDuration struct {
	Minutes int
}

func (d *gameDuration) UnmarshalJSON(data []byte) error {
	var minutes int
	if err := json.Unmarshal(data, &minutes); err == nil {
		d.Minutes = minutes
		return nil
	}

	var split struct {
		Hours   int `json:"hours"`
		Minutes int `json:"minutes"`
	}
	if err := json.Unmarshal(data, &split); err != nil {
		return err
	}
	d.Minutes = 60*split.Hours + split.Minutes
	return nil
}

type gameRequest struct {
	Title         string       `json:"title"`
	MinPlayer     int          `json:"minPlayer"`
	MaxPlayer     int          `json:"maxPlayer"`
	MinAge        int          `json:"minAge"`
	Duration      gameDuration `json:"duration"`
	Quantity      int          `json:"quantity"`
	Creator       string       `json:"creator"`
	Editor        string       `json:"editor"`
	Description   string       `json:"description"`
	Year          int          `json:"year"`
	Type          string       `json:"type"`
	PurchasedDate string       `json:"purchasedDate"`
}

func (r gameRequest) Validate() error {
	return validation.ValidateStruct(&r,
		validation.Field(&r.Title, validation.Required, validation.Length(1, 200)),
		validation.Field(&r.MinPlayer, validation.Required, validation.Min(1)),
		validation.Field(&r.MaxPlayer, validation.Required, validation.Min(1)),
	)
}

// CreateGame inserts a new game into the library.
func (h *Handlers) CreateGame(c echo.Context) error {
	var req gameRequest
	if err := c.Bind(&req); err != nil {
		return jsonError(c, http.StatusBadRequest, "Requête invalide.")
	}
	if err := req.Validate(); err != nil {
		return jsonError(c, http.StatusBadRequest, err.Error())
	}

	game := &models.Game{
		Title:       req.Title,
		MinPlayer:   req.MinPlayer,
		MaxPlayer:   req.MaxPlayer,
		MinAge:      req.MinAge,
		Duration:    req.Duration.Minutes,
		Quantity:    req.Quantity,
		Creator:     req.Creator,
		Editor:      req.Editor,
		Description: req.Description,
		Year:        req.Year,
		Type:        req.Type,
	}
	if req.PurchasedDate != "" {
		purchasedAt, err := parseClientDate(req.PurchasedDate)
		if err != nil {
			return jsonError(c, http.StatusBadRequest, "Date d'achat invalide.")
		}
		game.PurchasedAt = &purchasedAt
	}

	if err := h.repo.CreateGame(c.Request().Context(), game); err != nil {
		return serviceError(c, err)
	}
	return c.JSON(http.StatusOK, toGameResponse(game, false))
}

type gamePatchRequest struct {
	Title         *string       `json:"title"`
	MinPlayer     *int          `json:"minPlayer"`
	MaxPlayer     *int          `json:"maxPlayer"`
	MinAge        *int          `json:"minAge"`
	Duration      *gameDuration `json:"duration"`
	Quantity      *int          `json:"quantity"`
	Creator       *string       `json:"creator"`
	Editor        *string       `json:"editor"`
	Description   *string       `json:"description"`
	Year          *int          `json:"year"`
	Type          *string       `json:"type"`
	PurchasedDate *string       `json:"purchasedDate"`
}

// UpdateGame applies a partial update; absent fields keep their values.
func (h *Handlers) UpdateGame(c echo.Context) error {
	id, err := pathID(c)
	if err != nil {
		return err
	}

	var req gamePatchRequest
	if err := c.Bind(&req); err != nil {
		return jsonError(c, http.StatusBadRequest, "Requête invalide.")
	}

	game, err := h.repo.GetGameByID(c.Request().Context(), id)
	if err != nil {
		return serviceError(c, err)
	}

	if req.Title != nil {
		game.Title = *req.Title
	}
	if req.MinPlayer != nil {
		game.MinPlayer = *req.MinPlayer
	}
	if req.MaxPlayer != nil {
		game.MaxPlayer = *req.MaxPlayer
	}
	if req.MinAge != nil {
		game.MinAge = *req.MinAge
	}
	if req.Duration != nil {
		game.Duration = req.Duration.Minutes
	}
	if req.Quantity != nil {
		game.Quantity = *req.Quantity
	}
	if req.Creator != nil {
		game.Creator = *req.Creator
	}
	if req.Editor != nil {
		game.Editor = *req.Editor
	}
	if req.Description != nil {
		game.Description = *req.Description
	}
	if req.Year != nil {
		game.Year = *req.Year
	}
	if req.Type != nil {
		game.Type = *req.Type
	}
	if req.PurchasedDate != nil {
		purchasedAt, err := parseClientDate(*req.PurchasedDate)
		if err != nil {
			return jsonError(c, http.StatusBadRequest, "Date d'achat invalide.")
		}
		game.PurchasedAt = &purchasedAt
	}

	if err := h.repo.UpdateGame(c.Request().Context(), game); err != nil {
		return serviceError(c, err)
	}
	return c.JSON(http.StatusOK, toGameResponse(game, false))
}

// DeleteGame removes a game from the library.
func (h *Handlers) DeleteGame(c echo.Context) error {
	id, err := pathID(c)
	if err != nil {
		return err
	}

	if err := h.repo.DeleteGame(c.Request().Context(), id); err != nil {
		return serviceError(c, err)
	}
	return c.JSON(http.StatusOK, fmt.Sprintf("Le jeu avec l'id %d a été supprimé", id))
}
