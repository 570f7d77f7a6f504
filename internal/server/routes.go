// Copyright 2025 Les Gardiens de la Légende
// Licensed under the EUPL-1.2

package server

import (
	"net/http"

	"codeberg.org/lesgardiens/boardclub/internal/handlers"
	appmw "codeberg.org/lesgardiens/boardclub/internal/middleware"
	"codeberg.org/lesgardiens/boardclub/internal/models"
	"codeberg.org/lesgardiens/boardclub/internal/repository"
	"codeberg.org/lesgardiens/boardclub/internal/services/token"
	"github.com/labstack/echo/v4"
)

func setupRoutes(e *echo.Echo, h *handlers.Handlers, tokens *token.Service, repo *repository.Repository) {
	e.GET("/health", h.Health)
	e.RouteNotFound("/*", func(c echo.Context) error {
		return c.JSON(http.StatusNotFound, map[string]string{
			"error": "La route choisie n'existe pas.",
		})
	})

	v1 := e.Group("/v1")

	// Public routes.
	v1.POST("/connexion", h.Login)
	v1.POST("/inscription", h.Signup)
	v1.GET("/verifyEmail", h.VerifyEmail)
	v1.GET("/articles", h.ListArticles)
	v1.GET("/articles/:id", h.GetArticle)
	v1.GET("/jeux", h.ListGames)
	v1.GET("/jeux/:id", h.GetGame)
	v1.GET("/evenements", h.ListEvents)
	v1.GET("/evenements/:id", h.GetEvent)

	// Routes below require a valid, non-revoked token.
	authed := v1.Group("", appmw.RequireAuth(tokens, repo))
	authed.GET("/deconnexion", h.Logout)
	authed.PATCH("/user/:id", h.UpdateUser)

	authed.POST("/articles", h.CreateArticle)
	authed.PATCH("/articles/:id", h.UpdateArticle)
	authed.DELETE("/articles/:id", h.DeleteArticle)

	authed.POST("/jeux", h.CreateGame)
	authed.PATCH("/jeux/:id", h.UpdateGame)
	authed.DELETE("/jeux/:id", h.DeleteGame)

	authed.POST("/evenements", h.CreateEvent)
	authed.PATCH("/evenements/:id", h.UpdateEvent)
	authed.DELETE("/evenements/:id", h.DeleteEvent)

	authed.GET("/evenements/:id/participants", h.ListParticipants)
	authed.POST("/participants", h.AddParticipant)
	authed.PATCH("/participants", h.CancelParticipant)

	// Administrator only.
	admin := authed.Group("", appmw.RequireRole(models.RoleAdmin))
	admin.GET("/user", h.ListUsers)
	admin.GET("/user/:id", h.GetUser)
	admin.DELETE("/user/:id", h.DeleteUser)
}
