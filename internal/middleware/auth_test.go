// Copyright 2025 Les Gardiens de la Légende
// Licensed under the EUPL-1.2

package middleware_test

import (
	"context"
	"net/http"
	"testing"
	"time"

	"codeberg.org/lesgardiens/boardclub/internal/middleware"
	"codeberg.org/lesgardiens/boardclub/internal/models"
	"codeberg.org/lesgardiens/boardclub/internal/services/token"
	"codeberg.org/lesgardiens/boardclub/internal/testutil"
	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func okHandler(c echo.Context) error {
	return c.NoContent(http.StatusOK)
}

func assertHTTPError(t *testing.T, err error, code int, message string) {
	t.Helper()
	var httpErr *echo.HTTPError
	require.ErrorAs(t, err, &httpErr)
	assert.Equal(t, code, httpErr.Code)
	assert.Equal(t, message, httpErr.Message)
}

func TestRequireAuth_MissingHeader(t *testing.T) {
	_, repo := testutil.NewTestDB(t)
	tokens := token.NewService("test-signing-key", 3*time.Hour, 24*time.Hour)
	e := echo.New()

	c, _ := testutil.NewEchoContext(e, http.MethodGet, "/v1/articles", nil)
	err := middleware.RequireAuth(tokens, repo)(okHandler)(c)
	assertHTTPError(t, err, http.StatusUnauthorized, "Token invalide, merci de vous connecter.")
}

func TestRequireAuth_MalformedHeader(t *testing.T) {
	_, repo := testutil.NewTestDB(t)
	tokens := token.NewService("test-signing-key", 3*time.Hour, 24*time.Hour)
	e := echo.New()

	c, _ := testutil.NewEchoContextWithHeaders(e, http.MethodGet, "/v1/articles", nil, map[string]string{
		echo.HeaderAuthorization: "Basic abc123",
	})
	err := middleware.RequireAuth(tokens, repo)(okHandler)(c)
	assertHTTPError(t, err, http.StatusUnauthorized, "Token invalide, merci de vous connecter.")
}

func TestRequireAuth_InvalidToken(t *testing.T) {
	_, repo := testutil.NewTestDB(t)
	tokens := token.NewService("test-signing-key", 3*time.Hour, 24*time.Hour)
	e := echo.New()

	c, _ := testutil.NewEchoContextWithHeaders(e, http.MethodGet, "/v1/articles", nil, map[string]string{
		echo.HeaderAuthorization: "Bearer not-a-token",
	})
	err := middleware.RequireAuth(tokens, repo)(okHandler)(c)
	assertHTTPError(t, err, http.StatusUnauthorized, "Token invalide, merci de vous connecter.")
}

func TestRequireAuth_StoresClaims(t *testing.T) {
	_, repo := testutil.NewTestDB(t)
	tokens := token.NewService("test-signing-key", 3*time.Hour, 24*time.Hour)
	user := testutil.NewTestUser(t, repo, "daisy", "Str0ng!Pass")
	e := echo.New()

	tok, err := tokens.Issue(user)
	require.NoError(t, err)

	var seen *token.Claims
	handler := func(c echo.Context) error {
		seen = middleware.Claims(c)
		return c.NoContent(http.StatusOK)
	}

	c, rec := testutil.NewEchoContextWithHeaders(e, http.MethodGet, "/v1/articles", nil, map[string]string{
		echo.HeaderAuthorization: "Bearer " + tok,
	})
	require.NoError(t, middleware.RequireAuth(tokens, repo)(handler)(c))
	assert.Equal(t, http.StatusOK, rec.Code)
	require.NotNil(t, seen)
	assert.Equal(t, user.ID, seen.UserID)
}

func TestRequireAuth_RevokedToken(t *testing.T) {
	_, repo := testutil.NewTestDB(t)
	tokens := token.NewService("test-signing-key", 3*time.Hour, 24*time.Hour)
	user := testutil.NewTestUser(t, repo, "daisy", "Str0ng!Pass")
	e := echo.New()

	tok, err := tokens.Issue(user)
	require.NoError(t, err)
	claims, err := tokens.Parse(tok)
	require.NoError(t, err)
	require.NoError(t, repo.RevokeToken(context.Background(), claims.ID, claims.ExpiresAt.Time))

	c, _ := testutil.NewEchoContextWithHeaders(e, http.MethodGet, "/v1/articles", nil, map[string]string{
		echo.HeaderAuthorization: "Bearer " + tok,
	})
	err = middleware.RequireAuth(tokens, repo)(okHandler)(c)
	assertHTTPError(t, err, http.StatusForbidden, "Vous êtes déconnecté, merci de vous reconnecter.")
}

func TestRequireRole_DeniesMember(t *testing.T) {
	_, repo := testutil.NewTestDB(t)
	tokens := token.NewService("test-signing-key", 3*time.Hour, 24*time.Hour)
	user := testutil.NewTestUser(t, repo, "daisy", "Str0ng!Pass")
	e := echo.New()

	tok, err := tokens.Issue(user)
	require.NoError(t, err)

	c, _ := testutil.NewEchoContextWithHeaders(e, http.MethodGet, "/v1/user", nil, map[string]string{
		echo.HeaderAuthorization: "Bearer " + tok,
	})
	guarded := middleware.RequireAuth(tokens, repo)(middleware.RequireRole(models.RoleAdmin)(okHandler))
	err = guarded(c)
	assertHTTPError(t, err, http.StatusForbidden, "Accès non autorisé.")
}

func TestRequireRole_AllowsAdmin(t *testing.T) {
	_, repo := testutil.NewTestDB(t)
	tokens := token.NewService("test-signing-key", 3*time.Hour, 24*time.Hour)
	admin := testutil.NewTestAdmin(t, repo, "chief", "Str0ng!Pass")
	e := echo.New()

	tok, err := tokens.Issue(admin)
	require.NoError(t, err)

	c, rec := testutil.NewEchoContextWithHeaders(e, http.MethodGet, "/v1/user", nil, map[string]string{
		echo.HeaderAuthorization: "Bearer " + tok,
	})
	guarded := middleware.RequireAuth(tokens, repo)(middleware.RequireRole(models.RoleAdmin)(okHandler))
	require.NoError(t, guarded(c))
	assert.Equal(t, http.StatusOK, rec.Code)
}

func TestRequireRole_WithoutAuthDenies(t *testing.T) {
	e := echo.New()
	c, _ := testutil.NewEchoContext(e, http.MethodGet, "/v1/user", nil)
	err := middleware.RequireRole(models.RoleAdmin)(okHandler)(c)
	assertHTTPError(t, err, http.StatusForbidden, "Accès non autorisé.")
}
