package repositories

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/lib/pq"
	"github.com/livetournois/tournament-manager/models"
)

var (
	ErrUserNotFound       = errors.New("user not found")
	ErrUserHandleConflict = errors.New("user handle conflict")
)

type UserRepository interface {
	Create(ctx context.Context, user *models.User) error
	GetByID(ctx context.Context, id int) (*models.User, error)
	GetByHandle(ctx context.Context, handle string) (*models.User, error)
	List(ctx context.Context) ([]models.User, error)
	ListByRole(ctx context.Context, role models.Role) ([]models.User, error)
	Update(ctx context.Context, user *models.User) error
	Delete(ctx context.Context, id int) error
	UpdateLastLogin(ctx context.Context, id int, at time.Time) error
}

type postgresUserRepository struct {
	db SQLExecutor
}

func NewPostgresUserRepository(db *sql.DB) UserRepository {
	return &postgresUserRepository{db: db}
}

func (r *postgresUserRepository) Create(ctx context.Context, user *models.User) error {
	query := `
		INSERT INTO users (handle, password_hash, role, active)
		VALUES ($1, $2, $3, $4)
		RETURNING id, created_at`

	err := r.db.QueryRowContext(ctx, query,
		user.Handle,
		user.PasswordHash,
		user.Role,
		user.Active,
	).Scan(&user.ID, &user.CreatedAt)
	if err != nil {
		return r.handleUserError(err)
	}
	return nil
}

func (r *postgresUserRepository) GetByID(ctx context.Context, id int) (*models.User, error) {
	query := `
		SELECT id, handle, password_hash, role, created_at, last_login, active
		FROM users
		WHERE id = $1`
	return r.scanUser(ctx, query, id)
}

func (r *postgresUserRepository) GetByHandle(ctx context.Context, handle string) (*models.User, error) {
	query := `
		SELECT id, handle, password_hash, role, created_at, last_login, active
		FROM users
		WHERE handle = $1`
	return r.scanUser(ctx, query, handle)
}

func (r *postgresUserRepository) List(ctx context.Context) ([]models.User, error) {
	query := `
		SELECT id, handle, password_hash, role, created_at, last_login, active
		FROM users
		ORDER BY handle ASC`
	return r.queryUsers(ctx, query)
}

func (r *postgresUserRepository) ListByRole(ctx context.Context, role models.Role) ([]models.User, error) {
	query := `
		SELECT id, handle, password_hash, role, created_at, last_login, active
		FROM users
		WHERE role = $1
		ORDER BY handle ASC`
	return r.queryUsers(ctx, query, role)
}

func (r *postgresUserRepository) Update(ctx context.Context, user *models.User) error {
	query := `
		UPDATE users SET
			handle = $1,
			password_hash = $2,
			role = $3,
			active = $4
		WHERE id = $5`

	result, err := r.db.ExecContext(ctx, query,
		user.Handle,
		user.PasswordHash,
		user.Role,
		user.Active,
		user.ID,
	)
	if err != nil {
		return r.handleUserError(err)
	}
	return checkAffectedRows(result, ErrUserNotFound)
}

func (r *postgresUserRepository) Delete(ctx context.Context, id int) error {
	result, err := r.db.ExecContext(ctx, `DELETE FROM users WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("failed to delete user: %w", err)
	}
	return checkAffectedRows(result, ErrUserNotFound)
}

func (r *postgresUserRepository) UpdateLastLogin(ctx context.Context, id int, at time.Time) error {
	result, err := r.db.ExecContext(ctx, `UPDATE users SET last_login = $1 WHERE id = $2`, at, id)
	if err != nil {
		return fmt.Errorf("failed to update last login: %w", err)
	}
	return checkAffectedRows(result, ErrUserNotFound)
}

func (r *postgresUserRepository) scanUser(ctx context.Context, query string, args ...interface{}) (*models.User, error) {
	user := &models.User{}
	err := r.db.QueryRowContext(ctx, query, args...).Scan(
		&user.ID,
		&user.Handle,
		&user.PasswordHash,
		&user.Role,
		&user.CreatedAt,
		&user.LastLogin,
		&user.Active,
	)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrUserNotFound
		}
		return nil, err
	}
	return user, nil
}

func (r *postgresUserRepository) queryUsers(ctx context.Context, query string, args ...interface{}) ([]models.User, error) {
	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	users := make([]models.User, 0)
	for rows.Next() {
		var user models.User
		if scanErr := rows.Scan(
			&user.ID,
			&user.Handle,
			&user.PasswordHash,
			&user.Role,
			&user.CreatedAt,
			&user.LastLogin,
			&user.Active,
		); scanErr != nil {
			return nil, scanErr
		}
		users = append(users, user)
	}
	if err = rows.Err(); err != nil {
		return nil, err
	}
	return users, nil
}

func (r *postgresUserRepository) handleUserError(err error) error {
	if pqErr, ok := err.(*pq.Error); ok {
		if pqErr.Code == "23505" && pqErr.Constraint == "users_handle_key" {
			return ErrUserHandleConflict
		}
	}
	return err
}
