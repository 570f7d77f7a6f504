// Copyright 2025 Les Gardiens de la Légende
// Licensed under the EUPL-1.2

package middleware

import (
	"log/slog"
	"net/http"
	"strings"

	"codeberg.org/lesgardiens/boardclub/internal/services/token"
	"github.com/labstack/echo/v4"
)

// claimsKey is the echo context key carrying the authenticated claims.
const claimsKey = "auth.claims"

// Claims returns the claims stored by RequireAuth, or nil on an
// unauthenticated request.
func Claims(c echo.Context) *token.Claims {
	claims, _ := c.Get(claimsKey).(*token.Claims)
	return claims
}

// RequireAuth parses the bearer token, checks it against the revocation
// registry and stores the claims in the request context. Requests with a
// missing, malformed or expired token get 401; requests replaying a
// revoked token get 403.
func RequireAuth(tokens *token.Service, revoker token.Revoker) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			tokenString, ok := bearerToken(c.Request().Header.Get(echo.HeaderAuthorization))
			if !ok {
				return echo.NewHTTPError(http.StatusUnauthorized, "Token invalide, merci de vous connecter.")
			}

			claims, err := tokens.Parse(tokenString)
			if err != nil {
				return echo.NewHTTPError(http.StatusUnauthorized, "Token invalide, merci de vous connecter.")
			}

			revoked, err := revoker.IsTokenRevoked(c.Request().Context(), claims.ID)
			if err != nil {
				slog.Error("revocation_check_failed", "jti", claims.ID, "error", err)
				return echo.NewHTTPError(http.StatusInternalServerError, "Une erreur est survenue.")
			}
			if revoked {
				return echo.NewHTTPError(http.StatusForbidden, "Vous êtes déconnecté, merci de vous reconnecter.")
			}

			c.Set(claimsKey, claims)
			return next(c)
		}
	}
}

// RequireRole rejects authenticated requests whose claims do not carry the
// given role. Must run after RequireAuth.
func RequireRole(role string) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			claims := Claims(c)
			if claims == nil || !claims.HasRole(role) {
				return echo.NewHTTPError(http.StatusForbidden, "Accès non autorisé.")
			}
			return next(c)
		}
	}
}

func bearerToken(header string) (string, bool) {
	const prefix = "Bearer "
	if len(header) <= len(prefix) || !strings.EqualFold(header[:len(prefix)], prefix) {
		return "", false
	}
	return strings.TrimSpace(header[len(prefix):]), true
}
