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
	ErrTournamentNotFound    = errors.New("tournament not found")
	ErrTournamentGameInvalid = errors.New("tournament game reference invalid")
)

type TournamentRepository interface {
	Create(ctx context.Context, tournament *models.Tournament) error
	// GetByID returns the tournament row with its optional game
	// resolved in the same read. Nested collections are loaded by
	// their own repositories.
	GetByID(ctx context.Context, id int) (*models.Tournament, error)
	List(ctx context.Context) ([]models.Tournament, error)
	ListByStatus(ctx context.Context, status models.TournamentStatus) ([]models.Tournament, error)
	ListUpcoming(ctx context.Context) ([]models.Tournament, error)
	Update(ctx context.Context, tournament *models.Tournament) error
	Delete(ctx context.Context, id int) error
	// CountRegistrations returns the number of registration rows held
	// by the tournament.
	CountRegistrations(ctx context.Context, tournamentID int) (int, error)
}

type postgresTournamentRepository struct {
	db SQLExecutor
}

func NewPostgresTournamentRepository(db *sql.DB) TournamentRepository {
	return &postgresTournamentRepository{db: db}
}

const tournamentWithGameSelect = `
	SELECT
		t.id, t.name, t.start_date, t.end_date, t.location, t.format,
		t.max_teams, t.status, t.prize_pool, t.game_id,
		g.id, g.name, g.publisher, g.release_year, g.genre, g.description
	FROM tournaments t
	LEFT JOIN games g ON t.game_id = g.id`

func (r *postgresTournamentRepository) Create(ctx context.Context, t *models.Tournament) error {
	query := `
		INSERT INTO tournaments (
			name, start_date, end_date, location, format,
			max_teams, status, prize_pool, game_id
		) VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)
		RETURNING id`

	err := r.db.QueryRowContext(ctx, query,
		t.Name, t.StartDate, t.EndDate, t.Location, t.Format,
		t.MaxTeams, t.Status, t.PrizePool, t.GameID,
	).Scan(&t.ID)
	if err != nil {
		return r.handleTournamentError(err)
	}
	return nil
}

func (r *postgresTournamentRepository) GetByID(ctx context.Context, id int) (*models.Tournament, error) {
	query := tournamentWithGameSelect + ` WHERE t.id = $1`

	row := r.db.QueryRowContext(ctx, query, id)
	tournament, err := scanTournamentWithGame(row)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrTournamentNotFound
		}
		return nil, err
	}
	return tournament, nil
}

func (r *postgresTournamentRepository) List(ctx context.Context) ([]models.Tournament, error) {
	query := tournamentWithGameSelect + ` ORDER BY t.start_date DESC`
	return r.queryTournaments(ctx, query)
}

func (r *postgresTournamentRepository) ListByStatus(ctx context.Context, status models.TournamentStatus) ([]models.Tournament, error) {
	query := tournamentWithGameSelect + ` WHERE t.status = $1 ORDER BY t.start_date DESC`
	return r.queryTournaments(ctx, query, status)
}

func (r *postgresTournamentRepository) ListUpcoming(ctx context.Context) ([]models.Tournament, error) {
	query := tournamentWithGameSelect + ` WHERE t.start_date > CURRENT_DATE ORDER BY t.start_date ASC`
	return r.queryTournaments(ctx, query)
}

func (r *postgresTournamentRepository) Update(ctx context.Context, t *models.Tournament) error {
	query := `
		UPDATE tournaments SET
			name = $1,
			start_date = $2,
			end_date = $3,
			location = $4,
			format = $5,
			max_teams = $6,
			status = $7,
			prize_pool = $8,
			game_id = $9
		WHERE id = $10`

	result, err := r.db.ExecContext(ctx, query,
		t.Name, t.StartDate, t.EndDate, t.Location, t.Format,
		t.MaxTeams, t.Status, t.PrizePool, t.GameID,
		t.ID,
	)
	if err != nil {
		return r.handleTournamentError(err)
	}
	return checkAffectedRows(result, ErrTournamentNotFound)
}

// Delete removes the tournament row; registrations and assignments go
// with it through ON DELETE CASCADE.
func (r *postgresTournamentRepository) Delete(ctx context.Context, id int) error {
	result, err := r.db.ExecContext(ctx, `DELETE FROM tournaments WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("failed to delete tournament: %w", err)
	}
	return checkAffectedRows(result, ErrTournamentNotFound)
}

func (r *postgresTournamentRepository) CountRegistrations(ctx context.Context, tournamentID int) (int, error) {
	var count int
	query := `SELECT COUNT(*) FROM registrations WHERE tournament_id = $1`
	if err := r.db.QueryRowContext(ctx, query, tournamentID).Scan(&count); err != nil {
		return 0, fmt.Errorf("failed to count registrations: %w", err)
	}
	return count, nil
}

func (r *postgresTournamentRepository) queryTournaments(ctx context.Context, query string, args ...interface{}) ([]models.Tournament, error) {
	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	tournaments := make([]models.Tournament, 0)
	for rows.Next() {
		tournament, scanErr := scanTournamentWithGame(rows)
		if scanErr != nil {
			return nil, scanErr
		}
		tournaments = append(tournaments, *tournament)
	}
	if err = rows.Err(); err != nil {
		return nil, err
	}
	return tournaments, nil
}

type rowScanner interface {
	Scan(dest ...interface{}) error
}

func scanTournamentWithGame(row rowScanner) (*models.Tournament, error) {
	t := &models.Tournament{}

	var gameID sql.NullInt64
	var gameName, gamePublisher, gameGenre, gameDescription sql.NullString
	var gameReleaseYear sql.NullInt64

	err := row.Scan(
		&t.ID, &t.Name, &t.StartDate, &t.EndDate, &t.Location, &t.Format,
		&t.MaxTeams, &t.Status, &t.PrizePool, &t.GameID,
		&gameID, &gameName, &gamePublisher, &gameReleaseYear, &gameGenre, &gameDescription,
	)
	if err != nil {
		return nil, err
	}

	if gameID.Valid {
		t.Game = &models.Game{
			ID:          int(gameID.Int64),
			Name:        gameName.String,
			Publisher:   gamePublisher.String,
			ReleaseYear: int(gameReleaseYear.Int64),
			Genre:       gameGenre.String,
			Description: gameDescription.String,
		}
	}
	return t, nil
}

func (r *postgresTournamentRepository) handleTournamentError(err error) error {
	if pqErr, ok := err.(*pq.Error); ok {
		if pqErr.Code == "23503" && pqErr.Constraint == "tournaments_game_id_fkey" {
			return ErrTournamentGameInvalid
		}
	}
	return err
}
