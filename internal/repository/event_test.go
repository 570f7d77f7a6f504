// Copyright 2025 Les Gardiens de la Légende
// Licensed under the EUPL-1.2

package repository_test

import (
	"context"
	"testing"
	"time"

	"codeberg.org/lesgardiens/boardclub/internal/models"
	"codeberg.org/lesgardiens/boardclub/internal/repository"
	"codeberg.org/lesgardiens/boardclub/internal/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newEvent(t *testing.T, repo *repository.Repository) *models.Event {
	t.Helper()
	creator := testutil.NewTestUser(t, repo, "organisateur", "Abc12345!")
	event := &models.Event{
		Title:       "Tournoi 7 Wonders",
		Description: "Tournoi mensuel du club, inscription obligatoire.",
		EventDate:   time.Now().Add(7 * 24 * time.Hour).UTC(),
		CreatorID:   creator.ID,
		Tag:         "tournoi",
		EventGames:  "7 Wonders",
	}
	require.NoError(t, repo.CreateEvent(context.Background(), event))
	return event
}

func TestCreateEvent(t *testing.T) {
	_, repo := testutil.NewTestDB(t)

	event := newEvent(t, repo)

	assert.NotZero(t, event.ID)
}

func TestUpdateEvent(t *testing.T) {
	_, repo := testutil.NewTestDB(t)
	ctx := context.Background()
	event := newEvent(t, repo)

	event.EventGames = "7 Wonders, Azul"
	require.NoError(t, repo.UpdateEvent(ctx, event))

	retrieved, err := repo.GetEventByID(ctx, event.ID)
	require.NoError(t, err)
	assert.Equal(t, "7 Wonders, Azul", retrieved.EventGames)
	assert.NotNil(t, retrieved.UpdatedAt)
}

func TestDeleteEvent_CascadesParticipants(t *testing.T) {
	_, repo := testutil.NewTestDB(t)
	ctx := context.Background()
	event := newEvent(t, repo)
	player := testutil.NewTestUser(t, repo, "joueur", "Abc12345!")

	require.NoError(t, repo.AddParticipant(ctx, event.ID, player.ID))
	require.NoError(t, repo.DeleteEvent(ctx, event.ID))

	participants, err := repo.ListParticipants(ctx, event.ID)
	require.NoError(t, err)
	assert.Empty(t, participants)
}

func TestAddParticipant(t *testing.T) {
	_, repo := testutil.NewTestDB(t)
	ctx := context.Background()
	event := newEvent(t, repo)
	player := testutil.NewTestUser(t, repo, "joueur", "Abc12345!")

	require.NoError(t, repo.AddParticipant(ctx, event.ID, player.ID))

	participants, err := repo.ListParticipants(ctx, event.ID)
	require.NoError(t, err)
	require.Len(t, participants, 1)
	assert.Equal(t, models.ParticipantConfirmed, participants[0].Status)
}

func TestAddParticipant_UnknownEvent(t *testing.T) {
	_, repo := testutil.NewTestDB(t)
	player := testutil.NewTestUser(t, repo, "joueur", "Abc12345!")

	err := repo.AddParticipant(context.Background(), 424242, player.ID)

	assert.ErrorIs(t, err, repository.ErrNotFound)
}

func TestAddParticipant_UnknownUser(t *testing.T) {
	_, repo := testutil.NewTestDB(t)
	event := newEvent(t, repo)

	err := repo.AddParticipant(context.Background(), event.ID, 424242)

	assert.ErrorIs(t, err, repository.ErrNotFound)
}

func TestCancelParticipant(t *testing.T) {
	_, repo := testutil.NewTestDB(t)
	ctx := context.Background()
	event := newEvent(t, repo)
	player := testutil.NewTestUser(t, repo, "joueur", "Abc12345!")

	require.NoError(t, repo.AddParticipant(ctx, event.ID, player.ID))
	require.NoError(t, repo.CancelParticipant(ctx, event.ID, player.ID))

	participants, err := repo.ListParticipants(ctx, event.ID)
	require.NoError(t, err)
	require.Len(t, participants, 1)
	assert.Equal(t, models.ParticipantCancelled, participants[0].Status)
}

func TestCancelParticipant_NotRegistered(t *testing.T) {
	_, repo := testutil.NewTestDB(t)
	event := newEvent(t, repo)

	err := repo.CancelParticipant(context.Background(), event.ID, 999)

	assert.ErrorIs(t, err, repository.ErrNotFound)
}

func TestAddParticipant_ReconfirmAfterCancel(t *testing.T) {
	_, repo := testutil.NewTestDB(t)
	ctx := context.Background()
	event := newEvent(t, repo)
	player := testutil.NewTestUser(t, repo, "joueur", "Abc12345!")

	require.NoError(t, repo.AddParticipant(ctx, event.ID, player.ID))
	require.NoError(t, repo.CancelParticipant(ctx, event.ID, player.ID))
	require.NoError(t, repo.AddParticipant(ctx, event.ID, player.ID))

	participants, err := repo.ListParticipants(ctx, event.ID)
	require.NoError(t, err)
	require.Len(t, participants, 1)
	assert.Equal(t, models.ParticipantConfirmed, participants[0].Status)
}
