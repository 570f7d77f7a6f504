// Copyright 2025 Les Gardiens de la Légende
// Licensed under the EUPL-1.2

package models

import "time"

// Game is a board game from the club library.
type Game struct { //nolint:govet // fieldalignment: readability over optimization
	ID          int64      `db:"id" json:"id"`
	Title       string     `db:"title" json:"title"`
	MinPlayer   int        `db:"min_player" json:"minPlayer"`
	MaxPlayer   int        `db:"max_player" json:"maxPlayer"`
	MinAge      int        `db:"min_age" json:"minAge"`
	Duration    int        `db:"duration" json:"duration"` // minutes
	Quantity    int        `db:"quantity" json:"quantity"`
	Creator     string     `db:"creator" json:"creator"`
	Editor      string     `db:"editor" json:"editor"`
	Description string     `db:"description" json:"description"`
	Year        int        `db:"year" json:"year"`
	Type        string     `db:"type" json:"type"`
	PurchasedAt *time.Time `db:"purchased_at" json:"-"`
}
