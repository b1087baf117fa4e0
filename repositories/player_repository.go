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
	ErrPlayerNotFound    = errors.New("player not found")
	ErrPlayerTeamInvalid = errors.New("player team reference invalid")
)

type PlayerRepository interface {
	Create(ctx context.Context, player *models.Player) error
	GetByID(ctx context.Context, id int) (*models.Player, error)
	List(ctx context.Context) ([]models.Player, error)
	// ListByTeam returns the roster snapshot; the Team field of the
	// returned players is deliberately left unset.
	ListByTeam(ctx context.Context, teamID int) ([]models.Player, error)
	Update(ctx context.Context, player *models.Player) error
	Delete(ctx context.Context, id int) error
	// ClearTeam detaches a player from its team without deleting the
	// player row.
	ClearTeam(ctx context.Context, playerID int) error
}

type postgresPlayerRepository struct {
	db SQLExecutor
}

func NewPostgresPlayerRepository(db *sql.DB) PlayerRepository {
	return &postgresPlayerRepository{db: db}
}

func (r *postgresPlayerRepository) Create(ctx context.Context, player *models.Player) error {
	query := `
		INSERT INTO players (name, surname, handle, birth_date, team_id)
		VALUES ($1, $2, $3, $4, $5)
		RETURNING id`

	err := r.db.QueryRowContext(ctx, query,
		player.Name,
		player.Surname,
		player.Handle,
		player.BirthDate,
		player.TeamID,
	).Scan(&player.ID)
	if err != nil {
		return r.handlePlayerError(err)
	}
	return nil
}

func (r *postgresPlayerRepository) GetByID(ctx context.Context, id int) (*models.Player, error) {
	query := `
		SELECT id, name, surname, handle, birth_date, team_id
		FROM players
		WHERE id = $1`

	player := &models.Player{}
	err := r.db.QueryRowContext(ctx, query, id).Scan(
		&player.ID,
		&player.Name,
		&player.Surname,
		&player.Handle,
		&player.BirthDate,
		&player.TeamID,
	)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrPlayerNotFound
		}
		return nil, err
	}
	return player, nil
}

func (r *postgresPlayerRepository) List(ctx context.Context) ([]models.Player, error) {
	query := `
		SELECT id, name, surname, handle, birth_date, team_id
		FROM players
		ORDER BY handle ASC`
	return r.queryPlayers(ctx, query)
}

func (r *postgresPlayerRepository) ListByTeam(ctx context.Context, teamID int) ([]models.Player, error) {
	query := `
		SELECT id, name, surname, handle, birth_date, team_id
		FROM players
		WHERE team_id = $1
		ORDER BY handle ASC`
	return r.queryPlayers(ctx, query, teamID)
}

func (r *postgresPlayerRepository) Update(ctx context.Context, player *models.Player) error {
	query := `
		UPDATE players SET
			name = $1,
			surname = $2,
			handle = $3,
			birth_date = $4,
			team_id = $5
		WHERE id = $6`

	result, err := r.db.ExecContext(ctx, query,
		player.Name,
		player.Surname,
		player.Handle,
		player.BirthDate,
		player.TeamID,
		player.ID,
	)
	if err != nil {
		return r.handlePlayerError(err)
	}
	return checkAffectedRows(result, ErrPlayerNotFound)
}

func (r *postgresPlayerRepository) Delete(ctx context.Context, id int) error {
	result, err := r.db.ExecContext(ctx, `DELETE FROM players WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("failed to delete player: %w", err)
	}
	return checkAffectedRows(result, ErrPlayerNotFound)
}

func (r *postgresPlayerRepository) ClearTeam(ctx context.Context, playerID int) error {
	result, err := r.db.ExecContext(ctx, `UPDATE players SET team_id = NULL WHERE id = $1`, playerID)
	if err != nil {
		return fmt.Errorf("failed to clear player team: %w", err)
	}
	return checkAffectedRows(result, ErrPlayerNotFound)
}

func (r *postgresPlayerRepository) queryPlayers(ctx context.Context, query string, args ...interface{}) ([]models.Player, error) {
	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	players := make([]models.Player, 0)
	for rows.Next() {
		var player models.Player
		if scanErr := rows.Scan(
			&player.ID,
			&player.Name,
			&player.Surname,
			&player.Handle,
			&player.BirthDate,
			&player.TeamID,
		); scanErr != nil {
			return nil, scanErr
		}
		players = append(players, player)
	}
	if err = rows.Err(); err != nil {
		return nil, err
	}
	return players, nil
}

func (r *postgresPlayerRepository) handlePlayerError(err error) error {
	if pqErr, ok := err.(*pq.Error); ok {
		if pqErr.Code == "23503" && pqErr.Constraint == "players_team_id_fkey" {
			return ErrPlayerTeamInvalid
		}
	}
	return err
}
