// Copyright 2025 Les Gardiens de la Légende
// Licensed under the EUPL-1.2

package repository

import (
	"context"

	"codeberg.org/lesgardiens/boardclub/internal/models"
)

// CreateGame inserts a new game and fills in its store-assigned id.
func (r *Repository) CreateGame(ctx context.Context, game *models.Game) error {
	res, err := r.db.ExecContext(ctx,
		`INSERT INTO games (title, min_player, max_player, min_age, duration, quantity,
		 creator, editor, description, year, type, purchased_at)
		 VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		game.Title, game.MinPlayer, game.MaxPlayer, game.MinAge, game.Duration, game.Quantity,
		game.Creator, game.Editor, game.Description, game.Year, game.Type, game.PurchasedAt)
	if err != nil {
		return wrapError(err)
	}
	id, err := res.LastInsertId()
	if err != nil {
		return err
	}
	game.ID = id
	return nil
}

// GetGameByID retrieves a game by its ID.
func (r *Repository) GetGameByID(ctx context.Context, id int64) (*models.Game, error) {
	var game models.Game
	err := r.db.GetContext(ctx, &game, `SELECT * FROM games WHERE id = ?`, id)
	if err != nil {
		return nil, wrapError(err)
	}
	return &game, nil
}

// ListGames returns the whole game library, by title.
func (r *Repository) ListGames(ctx context.Context) ([]models.Game, error) {
	var games []models.Game
	err := r.db.SelectContext(ctx, &games, `SELECT * FROM games ORDER BY title`)
	if err != nil {
		return nil, wrapError(err)
	}
	return games, nil
}

// UpdateGame overwrites the mutable fields of a game.
func (r *Repository) UpdateGame(ctx context.Context, game *models.Game) error {
	res, err := r.db.ExecContext(ctx,
		`UPDATE games SET title = ?, min_player = ?, max_player = ?, min_age = ?, duration = ?,
		 quantity = ?, creator = ?, editor = ?, description = ?, year = ?, type = ?, purchased_at = ?
		 WHERE id = ?`,
		game.Title, game.MinPlayer, game.MaxPlayer, game.MinAge, game.Duration, game.Quantity,
		game.Creator, game.Editor, game.Description, game.Year, game.Type, game.PurchasedAt, game.ID)
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

// DeleteGame deletes a game by its ID.
func (r *Repository) DeleteGame(ctx context.Context, id int64) error {
	res, err := r.db.ExecContext(ctx, `DELETE FROM games WHERE id = ?`, id)
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
