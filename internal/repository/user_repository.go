package repository

import (
	"context"
	"time"

	sq "github.com/Masterminds/squirrel"
	"github.com/jackc/pgx/v5"

	"github.com/spec-kit/user-service/internal/domain"
	"github.com/spec-kit/user-service/internal/persistence"
)

// UserRepository defines persistence access for users. Every operation except
// Restore sees only active rows (deleted_at IS NULL); Restore addresses any
// row regardless of deletion state.
type UserRepository interface {
	Create(ctx context.Context, user *domain.User) error
	GetByUUID(ctx context.Context, uuid string) (*domain.User, error)
	GetByEmail(ctx context.Context, email string) (*domain.User, error)
	ListActive(ctx context.Context) ([]domain.User, error)
	UpdateProfile(ctx context.Context, uuid string, name, email *string) error
	SoftDelete(ctx context.Context, uuid string) error
	Restore(ctx context.Context, uuid string) error
	SetRole(ctx context.Context, uuid string, role domain.Role) error
}

const usersTable = "users"

var userColumns = []string{"id", "uuid", "name", "email", "password", "status", "role", "created_at", "updated_at", "deleted_at"}

type userRepository struct {
	db *persistence.Postgres
}

// NewUserRepository returns a Postgres-backed implementation.
func NewUserRepository(db *persistence.Postgres) UserRepository {
	return &userRepository{db: db}
}

func (r *userRepository) Create(ctx context.Context, user *domain.User) error {
	query := r.db.QueryBuilder.Insert(usersTable).
		Columns("uuid", "name", "email", "password", "status", "role").
		Values(user.UUID, user.Name, user.Email, user.PasswordHash, user.Status, user.Role).
		Suffix("RETURNING id, created_at, updated_at")

	stmt, args, err := query.ToSql()
	if err != nil {
		return err
	}

	return r.db.Pool.QueryRow(ctx, stmt, args...).
		Scan(&user.ID, &user.CreatedAt, &user.UpdatedAt)
}

func (r *userRepository) GetByUUID(ctx context.Context, uuid string) (*domain.User, error) {
	query := r.db.QueryBuilder.Select(userColumns...).
		From(usersTable).
		Where(sq.Eq{"uuid": uuid, "deleted_at": nil}).
		Limit(1)

	return r.getOne(ctx, query)
}

func (r *userRepository) GetByEmail(ctx context.Context, email string) (*domain.User, error) {
	query := r.db.QueryBuilder.Select(userColumns...).
		From(usersTable).
		Where(sq.Eq{"email": email, "deleted_at": nil}).
		Limit(1)

	return r.getOne(ctx, query)
}

func (r *userRepository) ListActive(ctx context.Context) ([]domain.User, error) {
	query := r.db.QueryBuilder.Select(userColumns...).
		From(usersTable).
		Where(sq.Eq{"deleted_at": nil}).
		OrderBy("id")

	stmt, args, err := query.ToSql()
	if err != nil {
		return nil, err
	}

	rows, err := r.db.Pool.Query(ctx, stmt, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	users := make([]domain.User, 0)
	for rows.Next() {
		var user domain.User
		if err := scanUser(rows, &user); err != nil {
			return nil, err
		}
		users = append(users, user)
	}
	return users, rows.Err()
}

func (r *userRepository) UpdateProfile(ctx context.Context, uuid string, name, email *string) error {
	update := r.db.QueryBuilder.Update(usersTable).
		Set("updated_at", time.Now()).
		Where(sq.Eq{"uuid": uuid, "deleted_at": nil})

	if name != nil {
		update = update.Set("name", *name)
	}
	if email != nil {
		update = update.Set("email", *email)
	}

	return r.exec(ctx, update)
}

func (r *userRepository) SoftDelete(ctx context.Context, uuid string) error {
	update := r.db.QueryBuilder.Update(usersTable).
		Set("deleted_at", time.Now()).
		Set("updated_at", time.Now()).
		Where(sq.Eq{"uuid": uuid, "deleted_at": nil})

	return r.exec(ctx, update)
}

func (r *userRepository) Restore(ctx context.Context, uuid string) error {
	update := r.db.QueryBuilder.Update(usersTable).
		Set("deleted_at", nil).
		Set("updated_at", time.Now()).
		Where(sq.Eq{"uuid": uuid})

	return r.exec(ctx, update)
}

func (r *userRepository) SetRole(ctx context.Context, uuid string, role domain.Role) error {
	update := r.db.QueryBuilder.Update(usersTable).
		Set("role", role).
		Set("updated_at", time.Now()).
		Where(sq.Eq{"uuid": uuid, "deleted_at": nil})

	return r.exec(ctx, update)
}

func (r *userRepository) getOne(ctx context.Context, query sq.SelectBuilder) (*domain.User, error) {
	stmt, args, err := query.ToSql()
	if err != nil {
		return nil, err
	}

	var user domain.User
	if err := scanUser(r.db.Pool.QueryRow(ctx, stmt, args...), &user); err != nil {
		return nil, err
	}
	return &user, nil
}

func (r *userRepository) exec(ctx context.Context, update sq.UpdateBuilder) error {
	stmt, args, err := update.ToSql()
	if err != nil {
		return err
	}

	cmd, err := r.db.Pool.Exec(ctx, stmt, args...)
	if err != nil {
		return err
	}
	if cmd.RowsAffected() == 0 {
		return pgx.ErrNoRows
	}
	return nil
}

func scanUser(row pgx.Row, user *domain.User) error {
	return row.Scan(
		&user.ID,
		&user.UUID,
		&user.Name,
		&user.Email,
		&user.PasswordHash,
		&user.Status,
		&user.Role,
		&user.CreatedAt,
		&user.UpdatedAt,
		&user.DeletedAt,
	)
}
