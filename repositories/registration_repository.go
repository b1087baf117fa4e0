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
	ErrRegistrationNotFound          = errors.New("registration not found")
	ErrRegistrationConflict          = errors.New("team is already registered for this tournament")
	ErrRegistrationTournamentInvalid = errors.New("registration tournament reference invalid")
	ErrRegistrationTeamInvalid       = errors.New("registration team reference invalid")
)

type RegistrationRepository interface {
	// Create inserts the registration. Seed is stored as a literal
	// zero regardless of the value carried by the model.
	Create(ctx context.Context, registration *models.Registration) error
	// Update rewrites the status; seed is re-forced to zero.
	Update(ctx context.Context, registration *models.Registration) error
	Delete(ctx context.Context, tournamentID, teamID int) error
	GetByTournamentAndTeam(ctx context.Context, tournamentID, teamID int) (*models.Registration, error)
	ListByTournament(ctx context.Context, tournamentID int) ([]models.Registration, error)
	ListByTeam(ctx context.Context, teamID int) ([]models.Registration, error)
	ListAll(ctx context.Context) ([]models.Registration, error)
	Exists(ctx context.Context, tournamentID, teamID int) (bool, error)
	CountByTournament(ctx context.Context, tournamentID int) (int, error)
}

type postgresRegistrationRepository struct {
	db SQLExecutor
}

func NewPostgresRegistrationRepository(db *sql.DB) RegistrationRepository {
	return &postgresRegistrationRepository{db: db}
}

const registrationJoinedSelect = `
	SELECT
		r.id, r.tournament_id, r.team_id, r.status, r.seed, r.created_at,
		t.name, e.name
	FROM registrations r
	JOIN tournaments t ON r.tournament_id = t.id
	JOIN teams e ON r.team_id = e.id`

func (r *postgresRegistrationRepository) Create(ctx context.Context, registration *models.Registration) error {
	query := `
		INSERT INTO registrations (tournament_id, team_id, status, seed)
		VALUES ($1, $2, $3, 0)
		RETURNING id, created_at, seed`

	err := r.db.QueryRowContext(ctx, query,
		registration.TournamentID,
		registration.TeamID,
		registration.Status,
	).Scan(&registration.ID, &registration.CreatedAt, &registration.Seed)
	if err != nil {
		return r.handleRegistrationError(err)
	}
	return nil
}

func (r *postgresRegistrationRepository) Update(ctx context.Context, registration *models.Registration) error {
	query := `
		UPDATE registrations SET status = $1, seed = 0
		WHERE tournament_id = $2 AND team_id = $3`

	result, err := r.db.ExecContext(ctx, query,
		registration.Status,
		registration.TournamentID,
		registration.TeamID,
	)
	if err != nil {
		return r.handleRegistrationError(err)
	}
	registration.Seed = 0
	return checkAffectedRows(result, ErrRegistrationNotFound)
}

func (r *postgresRegistrationRepository) Delete(ctx context.Context, tournamentID, teamID int) error {
	query := `DELETE FROM registrations WHERE tournament_id = $1 AND team_id = $2`
	result, err := r.db.ExecContext(ctx, query, tournamentID, teamID)
	if err != nil {
		return fmt.Errorf("failed to delete registration: %w", err)
	}
	return checkAffectedRows(result, ErrRegistrationNotFound)
}

func (r *postgresRegistrationRepository) GetByTournamentAndTeam(ctx context.Context, tournamentID, teamID int) (*models.Registration, error) {
	query := registrationJoinedSelect + ` WHERE r.tournament_id = $1 AND r.team_id = $2`

	row := r.db.QueryRowContext(ctx, query, tournamentID, teamID)
	registration, err := scanJoinedRegistration(row)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrRegistrationNotFound
		}
		return nil, err
	}
	return registration, nil
}

func (r *postgresRegistrationRepository) ListByTournament(ctx context.Context, tournamentID int) ([]models.Registration, error) {
	query := registrationJoinedSelect + ` WHERE r.tournament_id = $1 ORDER BY r.seed ASC`
	return r.queryRegistrations(ctx, query, tournamentID)
}

func (r *postgresRegistrationRepository) ListByTeam(ctx context.Context, teamID int) ([]models.Registration, error) {
	query := registrationJoinedSelect + ` WHERE r.team_id = $1 ORDER BY r.created_at DESC`
	return r.queryRegistrations(ctx, query, teamID)
}

func (r *postgresRegistrationRepository) ListAll(ctx context.Context) ([]models.Registration, error) {
	query := registrationJoinedSelect + ` ORDER BY r.created_at DESC`
	return r.queryRegistrations(ctx, query)
}

func (r *postgresRegistrationRepository) Exists(ctx context.Context, tournamentID, teamID int) (bool, error) {
	var count int
	query := `SELECT COUNT(*) FROM registrations WHERE tournament_id = $1 AND team_id = $2`
	if err := r.db.QueryRowContext(ctx, query, tournamentID, teamID).Scan(&count); err != nil {
		return false, fmt.Errorf("failed to check registration existence: %w", err)
	}
	return count > 0, nil
}

func (r *postgresRegistrationRepository) CountByTournament(ctx context.Context, tournamentID int) (int, error) {
	var count int
	query := `SELECT COUNT(*) FROM registrations WHERE tournament_id = $1`
	if err := r.db.QueryRowContext(ctx, query, tournamentID).Scan(&count); err != nil {
		return 0, fmt.Errorf("failed to count registrations: %w", err)
	}
	return count, nil
}

func (r *postgresRegistrationRepository) queryRegistrations(ctx context.Context, query string, args ...interface{}) ([]models.Registration, error) {
	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	registrations := make([]models.Registration, 0)
	for rows.Next() {
		registration, scanErr := scanJoinedRegistration(rows)
		if scanErr != nil {
			return nil, scanErr
		}
		registrations = append(registrations, *registration)
	}
	if err = rows.Err(); err != nil {
		return nil, err
	}
	return registrations, nil
}

// scanJoinedRegistration fills the registration plus shallow
// tournament and team references (id and name only).
func scanJoinedRegistration(row rowScanner) (*models.Registration, error) {
	registration := &models.Registration{}
	var tournamentName, teamName string

	err := row.Scan(
		&registration.ID,
		&registration.TournamentID,
		&registration.TeamID,
		&registration.Status,
		&registration.Seed,
		&registration.CreatedAt,
		&tournamentName,
		&teamName,
	)
	if err != nil {
		return nil, err
	}

	registration.Tournament = &models.Tournament{ID: registration.TournamentID, Name: tournamentName}
	registration.Team = &models.Team{ID: registration.TeamID, Name: teamName}
	return registration, nil
}

func (r *postgresRegistrationRepository) handleRegistrationError(err error) error {
	if pqErr, ok := err.(*pq.Error); ok {
		switch pqErr.Code {
		case "23505":
			if pqErr.Constraint == "registrations_tournament_id_team_id_key" {
				return ErrRegistrationConflict
			}
		case "23503":
			switch pqErr.Constraint {
			case "registrations_tournament_id_fkey":
				return ErrRegistrationTournamentInvalid
			case "registrations_team_id_fkey":
				return ErrRegistrationTeamInvalid
			}
		}
	}
	return err
}
