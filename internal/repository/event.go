// Copyright 2025 Les Gardiens de la Légende
// Licensed under the EUPL-1.2

package repository

import (
	"context"
	"time"

	"codeberg.org/lesgardiens/boardclub/internal/models"
)

// CreateEvent inserts a new event and fills in its store-assigned id.
func (r *Repository) CreateEvent(ctx context.Context, event *models.Event) error {
	event.CreatedAt = time.Now().UTC()
	res, err := r.db.ExecContext(ctx,
		`INSERT INTO events (title, description, event_date, creator_id, tag, event_games, created_at)
		 VALUES (?, ?, ?, ?, ?, ?, ?)`,
		event.Title, event.Description, event.EventDate, event.CreatorID, event.Tag,
		event.EventGames, event.CreatedAt)
	if err != nil {
		return wrapError(err)
	}
	id, err := res.LastInsertId()
	if err != nil {
		return err
	}
	event.ID = id
	return nil
}

// GetEventByID retrieves an event by its ID.
func (r *Repository) GetEventByID(ctx context.Context, id int64) (*models.Event, error) {
	var event models.Event
	err := r.db.GetContext(ctx, &event, `SELECT * FROM events WHERE id = ?`, id)
	if err != nil {
		return nil, wrapError(err)
	}
	return &event, nil
}

// ListEvents returns all events, soonest first.
func (r *Repository) ListEvents(ctx context.Context) ([]models.Event, error) {
	var events []models.Event
	err := r.db.SelectContext(ctx, &events, `SELECT * FROM events ORDER BY event_date`)
	if err != nil {
		return nil, wrapError(err)
	}
	return events, nil
}

// UpdateEvent overwrites the mutable fields of an event and stamps updated_at.
func (r *Repository) UpdateEvent(ctx context.Context, event *models.Event) error {
	now := time.Now().UTC()
	event.UpdatedAt = &now
	res, err := r.db.ExecContext(ctx,
		`UPDATE events SET title = ?, description = ?, event_date = ?, tag = ?, event_games = ?,
		 updated_at = ? WHERE id = ?`,
		event.Title, event.Description, event.EventDate, event.Tag, event.EventGames,
		event.UpdatedAt, event.ID)
	if err != nil {
		return wrapError(err)
	}
	affected, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if affected == 0 {
		return ErrNotFound
	}
	return nil
}

// DeleteEvent deletes an event by its ID. Participants go with it.
func (r *Repository) DeleteEvent(ctx context.Context, id int64) error {
	res, err := r.db.ExecContext(ctx, `DELETE FROM events WHERE id = ?`, id)
	if err != nil {
		return wrapError(err)
	}
	affected, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if affected == 0 {
		return ErrNotFound
	}
	return nil
}

// AddParticipant registers a user on an event. Re-adding after a
// cancellation flips the status back to confirmed.
func (r *Repository) AddParticipant(ctx context.Context, eventID, userID int64) error {
	_, err := r.db.ExecContext(ctx,
		`INSERT INTO participants (event_id, user_id, status) VALUES (?, ?, ?)
		 ON CONFLICT (event_id, user_id) DO UPDATE SET status = excluded.status`,
		eventID, userID, models.ParticipantConfirmed)
	return wrapError(err)
}

// CancelParticipant marks a participation as cancelled.
func (r *Repository) CancelParticipant(ctx context.Context, eventID, userID int64) error {
	res, err := r.db.ExecContext(ctx,
		`UPDATE participants SET status = ? WHERE event_id = ? AND user_id = ?`,
		models.ParticipantCancelled, eventID, userID)
	if err != nil {
		return wrapError(err)
	}
	affected, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if affected == 0 {
		return ErrNotFound
	}
	return nil
}

// ListParticipants returns the participants of an event.
func (r *Repository) ListParticipants(ctx context.Context, eventID int64) ([]models.Participant, error) {
	var participants []models.Participant
	err := r.db.SelectContext(ctx, &participants,
		`SELECT * FROM participants WHERE event_id = ?`, eventID)
	if err != nil {
		return nil, wrapError(err)
	}
	return participants, nil
}
