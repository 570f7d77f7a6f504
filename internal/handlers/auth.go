// Copyright 2025 Les Gardiens de la Légende
// Licensed under the EUPL-1.2

package handlers

import (
	"log/slog"
	"net/http"
	"strconv"

	"codeberg.org/lesgardiens/boardclub/internal/middleware"
	"codeberg.org/lesgardiens/boardclub/internal/services/auth"
	validation "github.com/go-ozzo/ozzo-validation"
	"github.com/go-ozzo/ozzo-validation/is"
	"github.com/labstack/echo/v4"
)

type loginRequest struct {
	Pseudo   string `json:"pseudo"`
	Password string `json:"password"`
}

func (r loginRequest) Validate() error {
	return validation.ValidateStruct(&r,
		validation.Field(&r.Pseudo, validation.Required, validation.Length(3, 40)),
		validation.Field(&r.Password, validation.Required),
	)
}

// Login authenticates a member and answers with the signed token, the
// profile fields the frontend shows, and a session snapshot cookie.
func (h *Handlers) Login(c echo.Context) error {
	var req loginRequest
	if err := c.Bind(&req); err != nil {
		return jsonError(c, http.StatusBadRequest, "Requête invalide.")
	}
	if err := req.Validate(); err != nil {
		return jsonError(c, http.StatusBadRequest, err.Error())
	}

	result, err := h.auth.Login(c.Request().Context(), req.Pseudo, req.Password)
	if err != nil {
		return serviceError(c, err)
	}

	if cookie, cookieErr := h.sessions.Create(result.User); cookieErr == nil {
		c.SetCookie(cookie)
	} else {
		slog.Error("session_cookie_failed", "user_id", result.User.ID, "error", cookieErr)
	}

	return c.JSON(http.StatusOK, map[string]any{
		"logged":    true,
		"token":     result.Token,
		"pseudo":    result.User.Pseudo,
		"firstname": result.User.FirstName,
		"lastname":  result.User.LastName,
		"email":     result.User.EmailAddress,
		"role":      result.User.Role,
		"id":        result.User.ID,
	})
}

type signupRequest struct {
	Pseudo          string  `json:"pseudo"`
	EmailAddress    string  `json:"emailAddress"`
	Password        string  `json:"password"`
	PasswordConfirm string  `json:"passwordConfirm"`
	FirstName       string  `json:"firstName"`
	LastName        string  `json:"lastName"`
	Avatar          *string `json:"avatar"`
}

func (r signupRequest) Validate() error {
	return validation.ValidateStruct(&r,
		validation.Field(&r.Pseudo, validation.Required, validation.Length(3, 40)),
		validation.Field(&r.EmailAddress, validation.Required, is.Email),
		validation.Field(&r.Password, validation.Required),
		validation.Field(&r.PasswordConfirm, validation.Required),
		validation.Field(&r.FirstName, validation.Required, validation.Length(2, 100)),
		validation.Field(&r.LastName, validation.Required, validation.Length(2, 100)),
	)
}

// Signup registers a new member and prompts them to verify their email.
func (h *Handlers) Signup(c echo.Context) error {
	var req signupRequest
	if err := c.Bind(&req); err != nil {
		return jsonError(c, http.StatusBadRequest, "Requête invalide.")
	}
	if err := req.Validate(); err != nil {
		return jsonError(c, http.StatusBadRequest, err.Error())
	}

	user, err := h.auth.Signup(c.Request().Context(), auth.SignupParams{
		Pseudo:          req.Pseudo,
		EmailAddress:    req.EmailAddress,
		Password:        req.Password,
		PasswordConfirm: req.PasswordConfirm,
		FirstName:       req.FirstName,
		LastName:        req.LastName,
		Avatar:          req.Avatar,
	})
	if err != nil {
		return serviceError(c, err)
	}

	return c.JSON(http.StatusOK, map[string]any{
		"pseudo":    user.Pseudo,
		"firstName": user.FirstName,
		"lastName":  user.LastName,
		"message":   "Merci de valider votre email en cliquant sur le lien envoyé avant de vous connecter.",
	})
}

// VerifyEmail consumes the link sent by the verification mail. Verifying
// an already-verified account answers 200 without inspecting the token.
func (h *Handlers) VerifyEmail(c echo.Context) error {
	userID, err := strconv.ParseInt(c.QueryParam("userId"), 10, 64)
	if err != nil || userID <= 0 {
		return jsonError(c, http.StatusBadRequest, "Identifiant invalide.")
	}
	tokenString := c.QueryParam("token")
	if tokenString == "" {
		return jsonError(c, http.StatusBadRequest, "Lien de vérification incomplet.")
	}

	already, err := h.auth.VerifyEmail(c.Request().Context(), userID, tokenString)
	if err != nil {
		return serviceError(c, err)
	}

	if already {
		return c.JSON(http.StatusOK, map[string]string{
			"message": "Votre adresse email est déjà validée.",
		})
	}
	return c.JSON(http.StatusOK, map[string]string{
		"message": "Votre adresse email est validée, vous pouvez vous connecter.",
	})
}

// Logout revokes the presented token and clears the session cookie. The
// revocation is durable before the response goes out.
func (h *Handlers) Logout(c echo.Context) error {
	claims := middleware.Claims(c)
	if claims == nil {
		return jsonError(c, http.StatusUnauthorized, "Token invalide, merci de vous connecter.")
	}

	if err := h.auth.Logout(c.Request().Context(), claims); err != nil {
		return serviceError(c, err)
	}

	c.SetCookie(h.sessions.Clear())
	return c.JSON(http.StatusOK, map[string]string{
		"message": "Vous êtes bien déconnecté.",
	})
}
