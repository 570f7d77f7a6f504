// Copyright 2025 Les Gardiens de la Légende
// Licensed under the EUPL-1.2

package handlers_test

import (
	"context"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"codeberg.org/lesgardiens/boardclub/internal/middleware"
	"codeberg.org/lesgardiens/boardclub/internal/testutil"
	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLogout_RevokesTokenAndClearsSession(t *testing.T) {
	f := newFixture(t)
	user := testutil.NewTestUser(t, f.repo, "daisy", strongPassword)

	tok, err := f.tokens.Issue(user)
	require.NoError(t, err)

	guarded := middleware.RequireAuth(f.tokens, f.repo)(f.handlers.Logout)

	c, rec := testutil.NewEchoContextWithHeaders(f.echo, http.MethodGet, "/v1/deconnexion", nil, map[string]string{
		echo.HeaderAuthorization: "Bearer " + tok,
	})
	require.NoError(t, guarded(c))
	assert.Equal(t, http.StatusOK, rec.Code)

	cookies := rec.Result().Cookies()
	require.Len(t, cookies, 1)
	assert.Equal(t, -1, cookies[0].MaxAge)

	// A replayed token is rejected by the route guard.
	c, _ = testutil.NewEchoContextWithHeaders(f.echo, http.MethodGet, "/v1/deconnexion", nil, map[string]string{
		echo.HeaderAuthorization: "Bearer " + tok,
	})
	err = guarded(c)
	var httpErr *echo.HTTPError
	require.ErrorAs(t, err, &httpErr)
	assert.Equal(t, http.StatusForbidden, httpErr.Code)
}

func TestUpdateUser_PartialPatch(t *testing.T) {
	f := newFixture(t)
	user := testutil.NewTestUser(t, f.repo, "daisy", strongPassword)

	body := jsonBody(t, map[string]string{
		"password":  strongPassword,
		"firstName": "Marguerite",
	})
	c, rec := testutil.NewEchoContext(f.echo, http.MethodPatch, "/v1/user/:id", body)
	c.SetParamNames("id")
	c.SetParamValues(fmt.Sprintf("%d", user.ID))
	require.NoError(t, f.handlers.UpdateUser(c))

	assert.Equal(t, http.StatusOK, rec.Code)
	resp := decodeBody(t, rec.Body.String())
	assert.Equal(t, "Marguerite", resp["firstName"])
	assert.Equal(t, "daisy", resp["pseudo"])
	assert.NotContains(t, rec.Body.String(), strongPassword)

	require.Len(t, f.mailer.messages, 1)
	assert.Empty(t, rec.Result().Cookies(), "no session cookie to refresh")
}

func TestUpdateUser_RefreshesSessionSnapshot(t *testing.T) {
	f := newFixture(t)
	user := testutil.NewTestUser(t, f.repo, "daisy", strongPassword)

	cookie, err := f.sessions.Create(user)
	require.NoError(t, err)

	body := jsonBody(t, map[string]string{
		"password":  strongPassword,
		"firstName": "Marguerite",
	})
	c, rec := testutil.NewEchoContext(f.echo, http.MethodPatch, "/v1/user/:id", body)
	c.Request().AddCookie(cookie)
	c.SetParamNames("id")
	c.SetParamValues(fmt.Sprintf("%d", user.ID))
	require.NoError(t, f.handlers.UpdateUser(c))
	require.Equal(t, http.StatusOK, rec.Code)

	cookies := rec.Result().Cookies()
	require.Len(t, cookies, 1)

	replay := httptest.NewRequest(http.MethodGet, "/", nil)
	replay.AddCookie(cookies[0])
	snapshot := f.sessions.Read(replay)
	require.NotNil(t, snapshot)
	assert.Equal(t, "Marguerite", snapshot.FirstName)
	assert.Equal(t, user.ID, snapshot.UserID)
}

func TestUpdateUser_WrongCurrentPasswordIs403(t *testing.T) {
	f := newFixture(t)
	user := testutil.NewTestUser(t, f.repo, "daisy", strongPassword)

	body := jsonBody(t, map[string]string{
		"password":  "Wr0ng!Pass",
		"firstName": "Marguerite",
	})
	c, rec := testutil.NewEchoContext(f.echo, http.MethodPatch, "/v1/user/:id", body)
	c.SetParamNames("id")
	c.SetParamValues(fmt.Sprintf("%d", user.ID))
	require.NoError(t, f.handlers.UpdateUser(c))
	assert.Equal(t, http.StatusForbidden, rec.Code)

	stored, err := f.repo.GetUserByID(context.Background(), user.ID)
	require.NoError(t, err)
	assert.Equal(t, "Test", stored.FirstName)
}

func TestUpdateUser_MissingCurrentPasswordIs400(t *testing.T) {
	f := newFixture(t)
	user := testutil.NewTestUser(t, f.repo, "daisy", strongPassword)

	body := jsonBody(t, map[string]string{"firstName": "Marguerite"})
	c, rec := testutil.NewEchoContext(f.echo, http.MethodPatch, "/v1/user/:id", body)
	c.SetParamNames("id")
	c.SetParamValues(fmt.Sprintf("%d", user.ID))
	require.NoError(t, f.handlers.UpdateUser(c))
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestAdminUserRoutes(t *testing.T) {
	f := newFixture(t)
	user := testutil.NewTestUser(t, f.repo, "daisy", strongPassword)
	testutil.NewTestAdmin(t, f.repo, "chief", strongPassword)

	c, rec := testutil.NewEchoContext(f.echo, http.MethodGet, "/v1/user", nil)
	require.NoError(t, f.handlers.ListUsers(c))
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), "daisy")
	assert.Contains(t, rec.Body.String(), "chief")
	assert.NotContains(t, rec.Body.String(), "passwordHash")

	c, rec = testutil.NewEchoContext(f.echo, http.MethodGet, "/v1/user/:id", nil)
	c.SetParamNames("id")
	c.SetParamValues(fmt.Sprintf("%d", user.ID))
	require.NoError(t, f.handlers.GetUser(c))
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), "daisy")

	c, rec = testutil.NewEchoContext(f.echo, http.MethodDelete, "/v1/user/:id", nil)
	c.SetParamNames("id")
	c.SetParamValues(fmt.Sprintf("%d", user.ID))
	require.NoError(t, f.handlers.DeleteUser(c))
	assert.Equal(t, http.StatusOK, rec.Code)

	c, rec = testutil.NewEchoContext(f.echo, http.MethodGet, "/v1/user/:id", nil)
	c.SetParamNames("id")
	c.SetParamValues(fmt.Sprintf("%d", user.ID))
	require.NoError(t, f.handlers.GetUser(c))
	assert.Equal(t, http.StatusNotFound, rec.Code)
}

func TestDeleteUser_BadIDIs400(t *testing.T) {
	f := newFixture(t)

	c, rec := testutil.NewEchoContext(f.echo, http.MethodDelete, "/v1/user/:id", nil)
	c.SetParamNames("id")
	c.SetParamValues("abc")
	require.NoError(t, f.handlers.DeleteUser(c))
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}
