// Package testutil provides in-memory doubles for tests. Nothing here is
// wired into the runtime binary.
package testutil

import (
	"context"
	"sync"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"

	"github.com/spec-kit/user-service/internal/domain"
)

// MemoryUserRepository implements repository.UserRepository backed by a map.
// It reproduces the persistence-layer failure signals the service maps:
// pgx.ErrNoRows for missing rows and a unique-violation PgError for duplicate
// emails (the uniqueness constraint spans deleted rows, like the real table).
type MemoryUserRepository struct {
	mu     sync.Mutex
	nextID int64
	users  map[string]*domain.User
	order  []string
}

// NewMemoryUserRepository creates an empty repository.
func NewMemoryUserRepository() *MemoryUserRepository {
	return &MemoryUserRepository{users: make(map[string]*domain.User)}
}

func uniqueViolation() error {
	return &pgconn.PgError{Code: "23505", ConstraintName: "users_email_key"}
}

func (r *MemoryUserRepository) Create(_ context.Context, user *domain.User) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	for _, existing := range r.users {
		if existing.Email == user.Email {
			return uniqueViolation()
		}
	}

	r.nextID++
	user.ID = r.nextID
	now := time.Now()
	user.CreatedAt = now
	user.UpdatedAt = now

	clone := *user
	r.users[user.UUID] = &clone
	r.order = append(r.order, user.UUID)
	return nil
}

func (r *MemoryUserRepository) GetByUUID(_ context.Context, uuid string) (*domain.User, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	user, ok := r.users[uuid]
	if !ok || user.DeletedAt != nil {
		return nil, pgx.ErrNoRows
	}
	clone := *user
	return &clone, nil
}

func (r *MemoryUserRepository) GetByEmail(_ context.Context, email string) (*domain.User, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	for _, user := range r.users {
		if user.Email == email && user.DeletedAt == nil {
			clone := *user
			return &clone, nil
		}
	}
	return nil, pgx.ErrNoRows
}

func (r *MemoryUserRepository) ListActive(_ context.Context) ([]domain.User, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	users := make([]domain.User, 0, len(r.order))
	for _, uuid := range r.order {
		if user := r.users[uuid]; user.DeletedAt == nil {
			users = append(users, *user)
		}
	}
	return users, nil
}

func (r *MemoryUserRepository) UpdateProfile(_ context.Context, uuid string, name, email *string) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	user, ok := r.users[uuid]
	if !ok || user.DeletedAt != nil {
		return pgx.ErrNoRows
	}

	if email != nil {
		for _, existing := range r.users {
			if existing.UUID != uuid && existing.Email == *email {
				return uniqueViolation()
			}
		}
		user.Email = *email
	}
	if name != nil {
		user.Name = *name
	}
	user.UpdatedAt = time.Now()
	return nil
}

func (r *MemoryUserRepository) SoftDelete(_ context.Context, uuid string) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	user, ok := r.users[uuid]
	if !ok || user.DeletedAt != nil {
		return pgx.ErrNoRows
	}
	now := time.Now()
	user.DeletedAt = &now
	user.UpdatedAt = now
	return nil
}

func (r *MemoryUserRepository) Restore(_ context.Context, uuid string) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	user, ok := r.users[uuid]
	if !ok {
		return pgx.ErrNoRows
	}
	user.DeletedAt = nil
	user.UpdatedAt = time.Now()
	return nil
}

func (r *MemoryUserRepository) SetRole(_ context.Context, uuid string, role domain.Role) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	user, ok := r.users[uuid]
	if !ok || user.DeletedAt != nil {
		return pgx.ErrNoRows
	}
	user.Role = role
	user.UpdatedAt = time.Now()
	return nil
}
