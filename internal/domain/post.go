package domain

import (
	"context"
	"io"
	"time"
)

// Post is a published blog entry with one attached image file.
type Post struct {
	ID          int64     `json:"id"`
	Title       string    `json:"title"`
	Description string    `json:"description"`
	File        string    `json:"file"`
	CreatedAt   time.Time `json:"created_at"`
}

// PostRepository defines the port for post persistence operations.
type PostRepository interface {
	Create(ctx context.Context, title, description, file string) (*Post, error)
	List(ctx context.Context) ([]Post, error)
	GetByID(ctx context.Context, id int64) (*Post, error)
	Update(ctx context.Context, id int64, title, description string) error
	Delete(ctx context.Context, id int64) error
}

// FileStore stores one uploaded file per post and returns the name it was
// stored under.
type FileStore interface {
	Save(field, originalName string, r io.Reader) (string, error)
}
