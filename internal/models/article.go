// Copyright 2025 Les Gardiens de la Légende
// Licensed under the EUPL-1.2

package models

import "time"

// Article is a club news post.
type Article struct { //nolint:govet // fieldalignment: readability over optimization
	ID          int64      `db:"id" json:"id"`
	Title       string     `db:"title" json:"title"`
	Description string     `db:"description" json:"description"`
	AuthorID    int64      `db:"author_id" json:"authorId"`
	Tag         string     `db:"tag" json:"tag"`
	CreatedAt   time.Time  `db:"created_at" json:"-"`
	UpdatedAt   *time.Time `db:"updated_at" json:"-"`
}
