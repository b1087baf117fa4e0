package repositories

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/lib/pq"
	"github.com/livetournois/tournament-manager/models"
)

var (
	ErrAssignmentNotFound          = errors.New("assignment not found")
	ErrAssignmentStaffInvalid      = errors.New("assignment staff reference invalid")
	ErrAssignmentTournamentInvalid = errors.New("assignment tournament reference invalid")
)

type AssignmentRepository interface {
	Create(ctx context.Context, assignment *models.Assignment) error
	Delete(ctx context.Context, staffID, tournamentID int) error
	GetByStaffAndTournament(ctx context.Context, staffID, tournamentID int) (*models.Assignment, error)
	// ListByTournament resolves the assigned staff member on each row.
	ListByTournament(ctx context.Context, tournamentID int) ([]models.Assignment, error)
	// ListByStaff resolves a shallow tournament reference on each row.
	ListByStaff(ctx context.Context, staffID int) ([]models.Assignment, error)
	ListAll(ctx context.Context) ([]models.Assignment, error)
}

type postgresAssignmentRepository struct {
	db SQLExecutor
}

func NewPostgresAssignmentRepository(db *sql.DB) AssignmentRepository {
	return &postgresAssignmentRepository{db: db}
}

func (r *postgresAssignmentRepository) Create(ctx context.Context, assignment *models.Assignment) error {
	query := `
		INSERT INTO assignments (staff_id, tournament_id, role, starts_at, ends_at)
		VALUES ($1, $2, $3, $4, $5)
		RETURNING id`

	err := r.db.QueryRowContext(ctx, query,
		assignment.StaffID,
		assignment.TournamentID,
		assignment.Role,
		assignment.StartsAt,
		assignment.EndsAt,
	).Scan(&assignment.ID)
	if err != nil {
		return r.handleAssignmentError(err)
	}
	return nil
}

func (r *postgresAssignmentRepository) Delete(ctx context.Context, staffID, tournamentID int) error {
	query := `DELETE FROM assignments WHERE staff_id = $1 AND tournament_id = $2`
	result, err := r.db.ExecContext(ctx, query, staffID, tournamentID)
	if err != nil {
		return fmt.Errorf("failed to delete assignment: %w", err)
	}
	return checkAffectedRows(result, ErrAssignmentNotFound)
}

func (r *postgresAssignmentRepository) GetByStaffAndTournament(ctx context.Context, staffID, tournamentID int) (*models.Assignment, error) {
	query := `
		SELECT id, staff_id, tournament_id, role, starts_at, ends_at
		FROM assignments
		WHERE staff_id = $1 AND tournament_id = $2`

	assignment := &models.Assignment{}
	err := r.db.QueryRowContext(ctx, query, staffID, tournamentID).Scan(
		&assignment.ID,
		&assignment.StaffID,
		&assignment.TournamentID,
		&assignment.Role,
		&assignment.StartsAt,
		&assignment.EndsAt,
	)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrAssignmentNotFound
		}
		return nil, err
	}
	return assignment, nil
}

func (r *postgresAssignmentRepository) ListByTournament(ctx context.Context, tournamentID int) ([]models.Assignment, error) {
	query := `
		SELECT
			a.id, a.staff_id, a.tournament_id, a.role, a.starts_at, a.ends_at,
			s.name, s.surname, s.email, s.function, s.phone, s.user_id
		FROM assignments a
		JOIN staff s ON a.staff_id = s.id
		WHERE a.tournament_id = $1
		ORDER BY a.starts_at ASC`

	rows, err := r.db.QueryContext(ctx, query, tournamentID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	assignments := make([]models.Assignment, 0)
	for rows.Next() {
		var assignment models.Assignment
		var staff models.Staff
		if scanErr := rows.Scan(
			&assignment.ID,
			&assignment.StaffID,
			&assignment.TournamentID,
			&assignment.Role,
			&assignment.StartsAt,
			&assignment.EndsAt,
			&staff.Name,
			&staff.Surname,
			&staff.Email,
			&staff.Function,
			&staff.Phone,
			&staff.UserID,
		); scanErr != nil {
			return nil, scanErr
		}
		staff.ID = assignment.StaffID
		assignment.Staff = &staff
		assignments = append(assignments, assignment)
	}
	if err = rows.Err(); err != nil {
		return nil, err
	}
	return assignments, nil
}

func (r *postgresAssignmentRepository) ListByStaff(ctx context.Context, staffID int) ([]models.Assignment, error) {
	query := `
		SELECT
			a.id, a.staff_id, a.tournament_id, a.role, a.starts_at, a.ends_at,
			t.name
		FROM assignments a
		JOIN tournaments t ON a.tournament_id = t.id
		WHERE a.staff_id = $1
		ORDER BY a.starts_at ASC`

	rows, err := r.db.QueryContext(ctx, query, staffID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	assignments := make([]models.Assignment, 0)
	for rows.Next() {
		var assignment models.Assignment
		var tournamentName string
		if scanErr := rows.Scan(
			&assignment.ID,
			&assignment.StaffID,
			&assignment.TournamentID,
			&assignment.Role,
			&assignment.StartsAt,
			&assignment.EndsAt,
			&tournamentName,
		); scanErr != nil {
			return nil, scanErr
		}
		assignment.Tournament = &models.Tournament{ID: assignment.TournamentID, Name: tournamentName}
		assignments = append(assignments, assignment)
	}
	if err = rows.Err(); err != nil {
		return nil, err
	}
	return assignments, nil
}

func (r *postgresAssignmentRepository) ListAll(ctx context.Context) ([]models.Assignment, error) {
	query := `
		SELECT id, staff_id, tournament_id, role, starts_at, ends_at
		FROM assignments
		ORDER BY starts_at ASC`

	rows, err := r.db.QueryContext(ctx, query)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	assignments := make([]models.Assignment, 0)
	for rows.Next() {
		var assignment models.Assignment
		if scanErr := rows.Scan(
			&assignment.ID,
			&assignment.StaffID,
			&assignment.TournamentID,
			&assignment.Role,
			&assignment.StartsAt,
			&assignment.EndsAt,
		); scanErr != nil {
			return nil, scanErr
		}
		assignments = append(assignments, assignment)
	}
	if err = rows.Err(); err != nil {
		return nil, err
	}
	return assignments, nil
}

func (r *postgresAssignmentRepository) handleAssignmentError(err error) error {
	if pqErr, ok := err.(*pq.Error); ok {
		if pqErr.Code == "23503" {
			switch pqErr.Constraint {
			case "assignments_staff_id_fkey":
				return ErrAssignmentStaffInvalid
			case "assignments_tournament_id_fkey":
				return ErrAssignmentTournamentInvalid
			}
		}
	}
	return err
}
