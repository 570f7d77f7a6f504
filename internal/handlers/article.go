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

// articleResponse reshapes an article for the frontend: dates in French
// long form, and on list pages a shortened description.
type articleResponse struct {
	ID          int64   `json:"id"`
	Title       string  `json:"title"`
	Description string  `json:"description"`
	Preview     string  `json:"preview,omitempty"`
	AuthorID    int64   `json:"authorId"`
	Tag         string  `json:"tag"`
	CreatedDate string  `json:"createdDate"`
	UpdateDate  *string `json:"updateDate,omitempty"`
}

func toArticleResponse(a *models.Article, withPreview bool) articleResponse {
	resp := articleResponse{
		ID:          a.ID,
		Title:       a.Title,
		Description: a.Description,
		AuthorID:    a.AuthorID,
		Tag:         a.Tag,
		CreatedDate: formatDate(a.CreatedAt),
	}
	if a.UpdatedAt != nil {
		formatted := formatDate(*a.UpdatedAt)
		resp.UpdateDate = &formatted
	}
	if withPreview {
		resp.Preview = preview(a.Description)
	}
	return resp
}

// ListArticles returns all articles with formatted dates and a short
// description preview.
func (h *Handlers) ListArticles(c echo.Context) error {
	articles, err := h.repo.ListArticles(c.Request().Context())
	if err != nil {
		return serviceError(c, err)
	}

	resp := make([]articleResponse, len(articles))
	for i := range articles {
		resp[i] = toArticleResponse(&articles[i], true)
	}
	return c.JSON(http.StatusOK, resp)
}

// GetArticle returns one article.
func (h *Handlers) GetArticle(c echo.Context) error {
	id, err := pathID(c)
	if err != nil {
		return err
	}

	article, err := h.repo.GetArticleByID(c.Request().Context(), id)
	if err != nil {
		return serviceError(c, err)
	}
	return c.JSON(http.StatusOK, toArticleResponse(article, false))
}

type articleRequest struct {
	Title       string `json:"title"`
	Description string `json:"description"`
	AuthorID    int64  `json:"authorId"`
	Tag         string `json:"tag"`
}

func (r articleRequest) Validate() error {
	return validation.ValidateStruct(&r,
		validation.Field(&r.Title, validation.Required, validation.Length(1, 200)),
		validation.Field(&r.Description, validation.Required),
		validation.Field(&r.AuthorID, validation.Required),
	)
}

// CreateArticle inserts a new article.
func (h *Handlers) CreateArticle(c echo.Context) error {
	var req articleRequest
	if err := c.Bind(&req); err != nil {
		return jsonError(c, http.StatusBadRequest, "Requête invalide.")
	}
	if err := req.Validate(); err != nil {
		return jsonError(c, http.StatusBadRequest, err.Error())
	}

	article := &models.Article{
		Title:       req.Title,
		Description: req.Description,
		AuthorID:    req.AuthorID,
		Tag:         req.Tag,
	}
	if err := h.repo.CreateArticle(c.Request().Context(), article); err != nil {
		return serviceError(c, err)
	}
	return c.JSON(http.StatusOK, toArticleResponse(article, false))
}

type articlePatchRequest struct {
	Title       *string `json:"title"`
	Description *string `json:"description"`
	AuthorID    *int64  `json:"authorId"`
	Tag         *string `json:"tag"`
}

// UpdateArticle applies a partial update; absent fields keep their values.
func (h *Handlers) UpdateArticle(c echo.Context) error {
	id, err := pathID(c)
	if err != nil {
		return err
	}

	var req articlePatchRequest
	if err := c.Bind(&req); err != nil {
		return jsonError(c, http.StatusBadRequest, "Requête invalide.")
	}

	article, err := h.repo.GetArticleByID(c.Request().Context(), id)
	if err != nil {
		return serviceError(c, err)
	}

	if req.Title != nil {
		article.Title = *req.Title
	}
	if req.Description != nil {
		article.Description = *req.Description
	}
	if req.AuthorID != nil {
		article.AuthorID = *req.AuthorID
	}
	if req.Tag != nil {
		article.Tag = *req.Tag
	}

	if err := h.repo.UpdateArticle(c.Request().Context(), article); err != nil {
		return serviceError(c, err)
	}
	return c.JSON(http.StatusOK, toArticleResponse(article, false))
}

// DeleteArticle removes an article.
func (h *Handlers) DeleteArticle(c echo.Context) error {
	id, err := pathID(c)
	if err != nil {
		return err
	}

	if err := h.repo.DeleteArticle(c.Request().Context(), id); err != nil {
		return serviceError(c, err)
	}
	return c.JSON(http.StatusOK, fmt.Sprintf("L'article avec l'id %d a été supprimé", id))
}
