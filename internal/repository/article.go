// Copyright 2025 Les Gardiens de la Légende
// Licensed under the EUPL-1.2

package repository

import (
	"context"
	"time"

	"codeberg.org/lesgardiens/boardclub/internal/models"
)

// CreateArticle inserts a new article and fills in its store-assigned id.
func (r *Repository) CreateArticle(ctx context.Context, article *models.Article) error {
	article.CreatedAt = time.Now().UTC()
	res, err := r.db.ExecContext(ctx,
		`INSERT INTO articles (title, description, author_id, tag, created_at)
		 VALUES (?, ?, ?, ?, ?)`,
		article.Title, article.Description, article.AuthorID, article.Tag, article.CreatedAt)
	if err != nil {
		return wrapError(err)
	}
	id, err := res.LastInsertId()
	if err != nil {
		return err
	}
	article.ID = id
	return nil
}

// GetArticleByID retrieves an article by its ID.
func (r *Repository) GetArticleByID(ctx context.Context, id int64) (*models.Article, error) {
	var article models.Article
	err := r.db.GetContext(ctx, &article, `SELECT * FROM articles WHERE id = ?`, id)
	if err != nil {
		return nil, wrapError(err)
	}
	return &article, nil
}

// ListArticles returns all articles, newest first.
func (r *Repository) ListArticles(ctx context.Context) ([]models.Article, error) {
	var articles []models.Article
	err := r.db.SelectContext(ctx, &articles, `SELECT * FROM articles ORDER BY created_at DESC`)
	if err != nil {
		return nil, wrapError(err)
	}
	return articles, nil
}

// UpdateArticle overwrites the mutable fields of an article and stamps updated_at.
func (r *Repository) UpdateArticle(ctx context.Context, article *models.Article) error {
	now := time.Now().UTC()
	article.UpdatedAt = &now
	res, err := r.db.ExecContext(ctx,
		`UPDATE articles SET title = ?, description = ?, author_id = ?, tag = ?, updated_at = ?
		 WHERE id = ?`,
		article.Title, article.Description, article.AuthorID, article.Tag, article.UpdatedAt, article.ID)
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

// DeleteArticle deletes an article by its ID.
func (r *Repository) DeleteArticle(ctx context.Context, id int64) error {
	res, err := r.db.ExecContext(ctx, `DELETE FROM articles WHERE id = ?`, id)
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
