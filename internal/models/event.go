// Copyright 2025 Les Gardiens de la Légende
// Licensed under the EUPL-1.2

package models

import "time"

// Event is a club meetup around one or more games.
type Event struct { //nolint:govet // fieldalignment: readability over optimization
	ID          int64      `db:"id" json:"id"`
	Title       string     `db:"title" json:"title"`
	Description string     `db:"description" json:"description"`
	EventDate   time.Time  `db:"event_date" json:"-"`
	CreatorID   int64      `db:"creator_id" json:"creatorId"`
	Tag         string     `db:"tag" json:"tag"`
	EventGames  string     `db:"event_games" json:"eventGames"`
	CreatedAt   time.Time  `db:"created_at" json:"-"`
	UpdatedAt   *time.Time `db:"updated_at" json:"-"`
}

// Participant statuses.
const (
	ParticipantConfirmed = "confirmed"
	ParticipantCancelled = "cancelled"
)

// Participant links a user to an event.
type Participant struct {
	EventID int64  `db:"event_id" json:"eventId"`
	UserID  int64  `db:"user_id" json:"userId"`
	Status  string `db:"status" json:"status"`
}
