package app

import (
	"context"
	"errors"
	"io"

	"simplyblog/internal/domain"
)

var (
	// ErrPostNotFound indicates that no post exists with the given id.
	ErrPostNotFound = errors.New("post not found")
	// ErrNoFile indicates that a post creation arrived without an upload.
	ErrNoFile = errors.New("no file uploaded")
)

// PostService encapsulates the post CRUD use cases.
type PostService struct {
	posts domain.PostRepository
	files domain.FileStore
}

// NewPostService creates a PostService backed by the given repository and
// file store.
func NewPostService(posts domain.PostRepository, files domain.FileStore) *PostService {
	return &PostService{posts: posts, files: files}
}

// Create stores the uploaded file first and then inserts the post carrying
// the stored filename. The upload is required.
func (s *PostService) Create(ctx context.Context, title, description, field, originalName string, file io.Reader) (*domain.Post, error) {
	if file == nil {
		return nil, ErrNoFile
	}
	stored, err := s.files.Save(field, originalName, file)
	if err != nil {
		return nil, err
	}
	return s.posts.Create(ctx, title, description, stored)
}

// List returns every post. No ordering or pagination contract is offered.
func (s *PostService) List(ctx context.Context) ([]domain.Post, error) {
	return s.posts.List(ctx)
}

// Get returns a single post by id.
func (s *PostService) Get(ctx context.Context, id int64) (*domain.Post, error) {
	post, err := s.posts.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if post == nil {
		return nil, ErrPostNotFound
	}
	return post, nil
}

// Update replaces the title and description of a post. The file reference
// is never touched on edit.
func (s *PostService) Update(ctx context.Context, id int64, title, description string) error {
	return s.posts.Update(ctx, id, title, description)
}

// Delete removes a post by id.
func (s *PostService) Delete(ctx context.Context, id int64) error {
	return s.posts.Delete(ctx, id)
}
