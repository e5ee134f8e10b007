package app

import (
	"context"
	"errors"
	"io"
	"strings"
	"testing"

	"simplyblog/internal/domain"
)

type mockPostRepo struct {
	createFn func(ctx context.Context, title, description, file string) (*domain.Post, error)
	listFn   func(ctx context.Context) ([]domain.Post, error)
	getFn    func(ctx context.Context, id int64) (*domain.Post, error)
	updateFn func(ctx context.Context, id int64, title, description string) error
	deleteFn func(ctx context.Context, id int64) error
}

func (m *mockPostRepo) Create(ctx context.Context, title, description, file string) (*domain.Post, error) {
	if m.createFn != nil {
		return m.createFn(ctx, title, description, file)
	}
	return &domain.Post{ID: 1, Title: title, Description: description, File: file}, nil
}

func (m *mockPostRepo) List(ctx context.Context) ([]domain.Post, error) {
	if m.listFn != nil {
		return m.listFn(ctx)
	}
	return nil, nil
}

func (m *mockPostRepo) GetByID(ctx context.Context, id int64) (*domain.Post, error) {
	if m.getFn != nil {
		return m.getFn(ctx, id)
	}
	return nil, nil
}

func (m *mockPostRepo) Update(ctx context.Context, id int64, title, description string) error {
	if m.updateFn != nil {
		return m.updateFn(ctx, id, title, description)
	}
	return nil
}

func (m *mockPostRepo) Delete(ctx context.Context, id int64) error {
	if m.deleteFn != nil {
		return m.deleteFn(ctx, id)
	}
	return nil
}

type mockFileStore struct {
	saveFn func(field, originalName string, r io.Reader) (string, error)
}

func (m *mockFileStore) Save(field, originalName string, r io.Reader) (string, error) {
	if m.saveFn != nil {
		return m.saveFn(field, originalName, r)
	}
	return "file_stored.png", nil
}

func TestCreateRequiresFile(t *testing.T) {
	svc := NewPostService(&mockPostRepo{}, &mockFileStore{})

	if _, err := svc.Create(context.Background(), "t", "d", "file", "pic.png", nil); !errors.Is(err, ErrNoFile) {
		t.Fatalf("expected ErrNoFile, got %v", err)
	}
}

func TestCreateStoresFileThenPost(t *testing.T) {
	saved := false
	files := &mockFileStore{
		saveFn: func(field, originalName string, r io.Reader) (string, error) {
			saved = true
			return "file_abc.png", nil
		},
	}
	posts := &mockPostRepo{
		createFn: func(ctx context.Context, title, description, file string) (*domain.Post, error) {
			if !saved {
				t.Fatal("post inserted before file was stored")
			}
			if file != "file_abc.png" {
				t.Fatalf("post does not reference stored file: %q", file)
			}
			return &domain.Post{ID: 1, Title: title, Description: description, File: file}, nil
		},
	}
	svc := NewPostService(posts, files)

	post, err := svc.Create(context.Background(), "t", "d", "file", "pic.png", strings.NewReader("img"))
	if err != nil {
		t.Fatalf("Create: %v", err)
	}
	if post.File != "file_abc.png" {
		t.Fatalf("unexpected file reference %q", post.File)
	}
}

func TestCreateFailingUploadNeverInserts(t *testing.T) {
	files := &mockFileStore{
		saveFn: func(field, originalName string, r io.Reader) (string, error) {
			return "", errors.New("disk full")
		},
	}
	posts := &mockPostRepo{
		createFn: func(ctx context.Context, title, description, file string) (*domain.Post, error) {
			t.Fatal("post must not be inserted when the upload fails")
			return nil, nil
		},
	}
	svc := NewPostService(posts, files)

	if _, err := svc.Create(context.Background(), "t", "d", "file", "pic.png", strings.NewReader("img")); err == nil {
		t.Fatal("expected error")
	}
}

func TestGetMissingPost(t *testing.T) {
	svc := NewPostService(&mockPostRepo{}, &mockFileStore{})

	if _, err := svc.Get(context.Background(), 42); !errors.Is(err, ErrPostNotFound) {
		t.Fatalf("expected ErrPostNotFound, got %v", err)
	}
}
