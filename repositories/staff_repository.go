package repositories

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"

	"github.com/lib/pq"
	"github.com/livetournois/tournament-manager/models"
)

var (
	ErrStaffNotFound    = errors.New("staff member not found")
	ErrStaffUserInvalid = errors.New("staff user reference invalid")
)

type StaffRepository interface {
	Create(ctx context.Context, staff *models.Staff) error
	GetByID(ctx context.Context, id int) (*models.Staff, error)
	GetByPhone(ctx context.Context, phone string) (*models.Staff, error)
	List(ctx context.Context) ([]models.Staff, error)
	ListByFunction(ctx context.Context, function string) ([]models.Staff, error)
	ListByTournament(ctx context.Context, tournamentID int) ([]models.Staff, error)
	// Search matches the criterion case-insensitively against name,
	// surname, email and function.
	Search(ctx context.Context, criterion string) ([]models.Staff, error)
	Update(ctx context.Context, staff *models.Staff) error
	Delete(ctx context.Context, id int) error
}

type postgresStaffRepository struct {
	db SQLExecutor
}

func NewPostgresStaffRepository(db *sql.DB) StaffRepository {
	return &postgresStaffRepository{db: db}
}

func (r *postgresStaffRepository) Create(ctx context.Context, staff *models.Staff) error {
	query := `
		INSERT INTO staff (name, surname, email, function, phone, user_id)
		VALUES ($1, $2, $3, $4, $5, $6)
		RETURNING id`

	err := r.db.QueryRowContext(ctx, query,
		staff.Name,
		staff.Surname,
		staff.Email,
		staff.Function,
		staff.Phone,
		staff.UserID,
	).Scan(&staff.ID)
	if err != nil {
		return r.handleStaffError(err)
	}
	return nil
}

func (r *postgresStaffRepository) GetByID(ctx context.Context, id int) (*models.Staff, error) {
	query := `
		SELECT id, name, surname, email, function, phone, user_id
		FROM staff
		WHERE id = $1`
	return r.scanStaff(ctx, query, id)
}

func (r *postgresStaffRepository) GetByPhone(ctx context.Context, phone string) (*models.Staff, error) {
	query := `
		SELECT id, name, surname, email, function, phone, user_id
		FROM staff
		WHERE phone = $1`
	return r.scanStaff(ctx, query, phone)
}

func (r *postgresStaffRepository) List(ctx context.Context) ([]models.Staff, error) {
	query := `
		SELECT id, name, surname, email, function, phone, user_id
		FROM staff
		ORDER BY surname ASC, name ASC`
	return r.queryStaff(ctx, query)
}

func (r *postgresStaffRepository) ListByFunction(ctx context.Context, function string) ([]models.Staff, error) {
	query := `
		SELECT id, name, surname, email, function, phone, user_id
		FROM staff
		WHERE function = $1
		ORDER BY surname ASC, name ASC`
	return r.queryStaff(ctx, query, function)
}

func (r *postgresStaffRepository) ListByTournament(ctx context.Context, tournamentID int) ([]models.Staff, error) {
	query := `
		SELECT s.id, s.name, s.surname, s.email, s.function, s.phone, s.user_id
		FROM staff s
		JOIN assignments a ON a.staff_id = s.id
		WHERE a.tournament_id = $1
		ORDER BY s.surname ASC, s.name ASC`
	return r.queryStaff(ctx, query, tournamentID)
}

func (r *postgresStaffRepository) Search(ctx context.Context, criterion string) ([]models.Staff, error) {
	query := `
		SELECT id, name, surname, email, function, phone, user_id
		FROM staff
		WHERE LOWER(name) LIKE $1
		   OR LOWER(surname) LIKE $1
		   OR LOWER(email) LIKE $1
		   OR LOWER(function) LIKE $1
		ORDER BY surname ASC, name ASC`
	pattern := "%" + strings.ToLower(criterion) + "%"
	return r.queryStaff(ctx, query, pattern)
}

func (r *postgresStaffRepository) Update(ctx context.Context, staff *models.Staff) error {
	query := `
		UPDATE staff SET
			name = $1,
			surname = $2,
			email = $3,
			function = $4,
			phone = $5,
			user_id = $6
		WHERE id = $7`

	result, err := r.db.ExecContext(ctx, query,
		staff.Name,
		staff.Surname,
		staff.Email,
		staff.Function,
		staff.Phone,
		staff.UserID,
		staff.ID,
	)
	if err != nil {
		return r.handleStaffError(err)
	}
	return checkAffectedRows(result, ErrStaffNotFound)
}

func (r *postgresStaffRepository) Delete(ctx context.Context, id int) error {
	result, err := r.db.ExecContext(ctx, `DELETE FROM staff WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("failed to delete staff member: %w", err)
	}
	return checkAffectedRows(result, ErrStaffNotFound)
}

func (r *postgresStaffRepository) scanStaff(ctx context.Context, query string, args ...interface{}) (*models.Staff, error) {
	staff := &models.Staff{}
	err := r.db.QueryRowContext(ctx, query, args...).Scan(
		&staff.ID,
		&staff.Name,
		&staff.Surname,
		&staff.Email,
		&staff.Function,
		&staff.Phone,
		&staff.UserID,
	)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrStaffNotFound
		}
		return nil, err
	}
	return staff, nil
}

func (r *postgresStaffRepository) queryStaff(ctx context.Context, query string, args ...interface{}) ([]models.Staff, error) {
	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	members := make([]models.Staff, 0)
	for rows.Next() {
		var staff models.Staff
		if scanErr := rows.Scan(
			&staff.ID,
			&staff.Name,
			&staff.Surname,
			&staff.Email,
			&staff.Function,
			&staff.Phone,
			&staff.UserID,
		); scanErr != nil {
			return nil, scanErr
		}
		members = append(members, staff)
	}
	if err = rows.Err(); err != nil {
		return nil, err
	}
	return members, nil
}

func (r *postgresStaffRepository) handleStaffError(err error) error {
	if pqErr, ok := err.(*pq.Error); ok {
		if pqErr.Code == "23503" && pqErr.Constraint == "staff_user_id_fkey" {
			return ErrStaffUserInvalid
		}
	}
	return err
}
