// Copyright 2025 Les Gardiens de la Légende
// Licensed under the EUPL-1.2

package handlers

import (
	"errors"
	"log/slog"
	"net/http"
	"strconv"

	"codeberg.org/lesgardiens/boardclub/internal/repository"
	"codeberg.org/lesgardiens/boardclub/internal/services/auth"
	"github.com/labstack/echo/v4"
)

// errorResponse is the JSON body of every error answer.
type errorResponse struct {
	Error string `json:"error"`
}

func jsonError(c echo.Context, code int, message string) error {
	return c.JSON(code, errorResponse{Error: message})
}

// serviceError maps auth service sentinels to their HTTP answers. Anything
// unmapped is logged and answered with a generic 500.
func serviceError(c echo.Context, err error) error {
	switch {
	case errors.Is(err, auth.ErrUserNotFound):
		return jsonError(c, http.StatusNotFound, "Aucun utilisateur avec ce pseudo.")
	case errors.Is(err, repository.ErrNotFound):
		return jsonError(c, http.StatusNotFound, "La ressource demandée n'existe pas.")
	case errors.Is(err, auth.ErrInvalidCredentials):
		return jsonError(c, http.StatusForbidden, "Mot de passe incorrect.")
	case errors.Is(err, auth.ErrEmailNotVerified):
		return jsonError(c, http.StatusUnauthorized, "Merci de valider votre adresse email avant de vous connecter.")
	case errors.Is(err, auth.ErrDuplicateEmail):
		return jsonError(c, http.StatusBadRequest, "Cette adresse email est déjà utilisée.")
	case errors.Is(err, auth.ErrDuplicatePseudo):
		return jsonError(c, http.StatusBadRequest, "Ce pseudo est déjà utilisé.")
	case errors.Is(err, auth.ErrPasswordMismatch):
		return jsonError(c, http.StatusBadRequest, "La confirmation du mot de passe ne correspond pas.")
	case errors.Is(err, auth.ErrInvalidEmail):
		return jsonError(c, http.StatusBadRequest, "Adresse email invalide.")
	case errors.Is(err, auth.ErrInvalidToken):
		return jsonError(c, http.StatusUnauthorized, "Lien de vérification invalide ou expiré.")
	}

	var passwordErr *auth.PasswordValidationError
	if errors.As(err, &passwordErr) {
		return jsonError(c, http.StatusBadRequest, passwordErr.Error())
	}

	slog.Error("request_failed", "method", c.Request().Method, "path", c.Path(), "error", err)
	return jsonError(c, http.StatusInternalServerError, "Une erreur est survenue.")
}

// pathID parses the :id route parameter as a positive integer.
func pathID(c echo.Context) (int64, error) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil || id <= 0 {
		return 0, jsonError(c, http.StatusBadRequest, "Identifiant invalide.")
	}
	return id, nil
}
