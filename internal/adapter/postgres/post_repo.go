package postgres

import (
	"context"
	"database/sql"
	"time"

	"simplyblog/internal/domain"
)

// PostRepo implements post repository operations on DB.
type PostRepo struct {
	db *DB
}

// NewPostRepo wraps a DB as a PostRepository.
func NewPostRepo(db *DB) *PostRepo {
	return &PostRepo{db: db}
}

// Create inserts a new post and returns it with the store-generated id.
func (r *PostRepo) Create(ctx context.Context, title, description, file string) (*domain.Post, error) {
	var p domain.Post
	err := r.db.sql.QueryRowContext(ctx,
		"INSERT INTO posts (title, description, file, created_at) VALUES ($1, $2, $3, $4) RETURNING id, title, description, file, created_at",
		title, description, file, time.Now(),
	).Scan(&p.ID, &p.Title, &p.Description, &p.File, &p.CreatedAt)
	if err != nil {
		return nil, err
	}
	return &p, nil
}

// List returns every post in insertion order.
func (r *PostRepo) List(ctx context.Context) ([]domain.Post, error) {
	rows, err := r.db.sql.QueryContext(ctx,
		"SELECT id, title, description, file, created_at FROM posts ORDER BY id")
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var posts []domain.Post
	for rows.Next() {
		var p domain.Post
		if err := rows.Scan(&p.ID, &p.Title, &p.Description, &p.File, &p.CreatedAt); err != nil {
			return nil, err
		}
		posts = append(posts, p)
	}
	return posts, rows.Err()
}

// GetByID retrieves a post by id.
func (r *PostRepo) GetByID(ctx context.Context, id int64) (*domain.Post, error) {
	var p domain.Post
	err := r.db.sql.QueryRowContext(ctx,
		"SELECT id, title, description, file, created_at FROM posts WHERE id = $1",
		id,
	).Scan(&p.ID, &p.Title, &p.Description, &p.File, &p.CreatedAt)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &p, nil
}

// Update replaces the title and description of a post. The file column is
// left alone.
func (r *PostRepo) Update(ctx context.Context, id int64, title, description string) error {
	_, err := r.db.sql.ExecContext(ctx,
		"UPDATE posts SET title = $1, description = $2 WHERE id = $3",
		title, description, id)
	return err
}

// Delete removes a post by id.
func (r *PostRepo) Delete(ctx context.Context, id int64) error {
	_, err := r.db.sql.ExecContext(ctx, "DELETE FROM posts WHERE id = $1", id)
	return err
}
