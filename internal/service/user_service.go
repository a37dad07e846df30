package service

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"

	"github.com/spec-kit/user-service/internal/domain"
	"github.com/spec-kit/user-service/internal/events"
	"github.com/spec-kit/user-service/internal/repository"
	"github.com/spec-kit/user-service/pkg/apperrors"
)

// UserService implements the user lifecycle operations over active rows,
// except Restore which addresses soft-deleted rows as well.
type UserService struct {
	users      repository.UserRepository
	dispatcher events.Dispatcher
}

// NewUserService builds the service.
func NewUserService(users repository.UserRepository, dispatcher events.Dispatcher) *UserService {
	return &UserService{users: users, dispatcher: dispatcher}
}

// List returns all active users.
func (s *UserService) List(ctx context.Context) ([]domain.User, error) {
	return s.users.ListActive(ctx)
}

// GetByUUID returns the active user matching uuid.
func (s *UserService) GetByUUID(ctx context.Context, uid string) (*domain.User, error) {
	user, err := s.users.GetByUUID(ctx, uid)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.NewNotFound("Nenhum usuário encontrado com este UUID.")
		}
		return nil, err
	}
	return user, nil
}

// Update mutates name and/or email of the active user matching uuid. Role and
// password are not reachable through this path.
func (s *UserService) Update(ctx context.Context, uid string, name, email *string) (*domain.User, error) {
	if err := s.users.UpdateProfile(ctx, uid, name, email); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.NewNotFound("Nenhum usuário encontrado com este UUID para atualizar.")
		}
		return nil, err
	}
	return s.users.GetByUUID(ctx, uid)
}

// SoftDelete flags the active user matching uuid as deleted. Deleting an
// already-deleted user reports not found, not success.
func (s *UserService) SoftDelete(ctx context.Context, uid string) error {
	if err := s.users.SoftDelete(ctx, uid); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return apperrors.NewNotFound("Nenhum usuário encontrado com este UUID para deletar.")
		}
		return err
	}
	s.publish(ctx, events.EventUserDeleted, uid)
	return nil
}

// Restore clears the deletion flag regardless of current deletion state.
// Restoring an already-active user succeeds as a no-op.
func (s *UserService) Restore(ctx context.Context, uid string) error {
	if err := s.users.Restore(ctx, uid); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return apperrors.NewNotFound("Nenhum usuário encontrado com este UUID para restaurar.")
		}
		return err
	}
	s.publish(ctx, events.EventUserRestored, uid)
	return nil
}

func (s *UserService) publish(ctx context.Context, eventType events.EventType, userUUID string) {
	if s.dispatcher == nil {
		return
	}
	_ = s.dispatcher.Publish(ctx, events.Event{
		ID:         uuid.NewString(),
		Type:       eventType,
		UserUUID:   userUUID,
		OccurredAt: time.Now(),
	})
}
