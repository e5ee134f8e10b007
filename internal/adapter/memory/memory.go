// Package memory implements in-memory repositories for development and
// testing.
package memory

import (
	"context"
	"sync"
	"time"

	"simplyblog/internal/domain"
)

// DB implements the user and post repositories in process memory.
type DB struct {
	mu    sync.Mutex
	users []*domain.User
	posts []*domain.Post

	userIDCounter int64
	postIDCounter int64
}

// New creates a new in-memory database.
func New() *DB {
	return &DB{}
}

// Ensure interfaces are met.
var _ domain.UserRepository = (*DB)(nil)
var _ domain.PostRepository = (*PostRepo)(nil)
var _ domain.TokenDenylist = (*Denylist)(nil)

// --- UserRepository ---

// GetByEmail retrieves a user by exact email match.
func (db *DB) GetByEmail(ctx context.Context, email string) (*domain.User, error) {
	db.mu.Lock()
	defer db.mu.Unlock()

	for _, u := range db.users {
		if u.Email == email {
			cp := *u
			return &cp, nil
		}
	}
	return nil, nil
}

// Create creates a new user, enforcing email uniqueness like the real store.
func (db *DB) Create(ctx context.Context, name, email, passwordHash, role string) (*domain.User, error) {
	db.mu.Lock()
	defer db.mu.Unlock()

	for _, u := range db.users {
		if u.Email == email {
			return nil, domain.ErrDuplicateEmail
		}
	}

	db.userIDCounter++
	u := &domain.User{
		ID:           db.userIDCounter,
		Name:         name,
		Email:        email,
		PasswordHash: passwordHash,
		Role:         role,
		CreatedAt:    time.Now(),
	}
	db.users = append(db.users, u)
	cp := *u
	return &cp, nil
}

// List returns every user record.
func (db *DB) List(ctx context.Context) ([]domain.User, error) {
	db.mu.Lock()
	defer db.mu.Unlock()

	users := make([]domain.User, 0, len(db.users))
	for _, u := range db.users {
		users = append(users, *u)
	}
	return users, nil
}

// --- PostRepository ---

// PostRepo implements post repository operations on DB.
type PostRepo struct {
	db *DB
}

// NewPostRepo wraps a DB as a PostRepository.
func NewPostRepo(db *DB) *PostRepo {
	return &PostRepo{db: db}
}

// Create inserts a post with a generated id.
func (r *PostRepo) Create(ctx context.Context, title, description, file string) (*domain.Post, error) {
	r.db.mu.Lock()
	defer r.db.mu.Unlock()

	r.db.postIDCounter++
	p := &domain.Post{
		ID:          r.db.postIDCounter,
		Title:       title,
		Description: description,
		File:        file,
		CreatedAt:   time.Now(),
	}
	r.db.posts = append(r.db.posts, p)
	cp := *p
	return &cp, nil
}

// List returns every post in insertion order.
func (r *PostRepo) List(ctx context.Context) ([]domain.Post, error) {
	r.db.mu.Lock()
	defer r.db.mu.Unlock()

	posts := make([]domain.Post, 0, len(r.db.posts))
	for _, p := range r.db.posts {
		posts = append(posts, *p)
	}
	return posts, nil
}

// GetByID retrieves a post by id.
func (r *PostRepo) GetByID(ctx context.Context, id int64) (*domain.Post, error) {
	r.db.mu.Lock()
	defer r.db.mu.Unlock()

	for _, p := range r.db.posts {
		if p.ID == id {
			cp := *p
			return &cp, nil
		}
	}
	return nil, nil
}

// Update replaces the title and description of a post.
func (r *PostRepo) Update(ctx context.Context, id int64, title, description string) error {
	r.db.mu.Lock()
	defer r.db.mu.Unlock()

	for _, p := range r.db.posts {
		if p.ID == id {
			p.Title = title
			p.Description = description
			return nil
		}
	}
	return nil
}

// Delete removes a post by id.
func (r *PostRepo) Delete(ctx context.Context, id int64) error {
	r.db.mu.Lock()
	defer r.db.mu.Unlock()

	for i, p := range r.db.posts {
		if p.ID == id {
			r.db.posts = append(r.db.posts[:i], r.db.posts[i+1:]...)
			return nil
		}
	}
	return nil
}

// --- TokenDenylist ---

// Denylist is an in-memory token denylist for single-process deployments.
type Denylist struct {
	mu      sync.Mutex
	revoked map[string]time.Time
}

// NewDenylist creates an empty in-memory denylist.
func NewDenylist() *Denylist {
	return &Denylist{revoked: make(map[string]time.Time)}
}

// Revoke records the token as rejected until the given instant.
func (d *Denylist) Revoke(ctx context.Context, token string, until time.Time) error {
	d.mu.Lock()
	defer d.mu.Unlock()
	d.revoked[token] = until
	return nil
}

// Revoked reports whether the token is currently revoked. Entries past
// their expiry are dropped on sight.
func (d *Denylist) Revoked(ctx context.Context, token string) (bool, error) {
	d.mu.Lock()
	defer d.mu.Unlock()

	until, ok := d.revoked[token]
	if !ok {
		return false, nil
	}
	if time.Now().After(until) {
		delete(d.revoked, token)
		return false, nil
	}
	return true, nil
}

// PurgeExpired drops every entry whose token has expired on its own.
func (d *Denylist) PurgeExpired(ctx context.Context) error {
	d.mu.Lock()
	defer d.mu.Unlock()

	now := time.Now()
	for token, until := range d.revoked {
		if now.After(until) {
			delete(d.revoked, token)
		}
	}
	return nil
}
