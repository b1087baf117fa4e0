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
	ErrGameNotFound = errors.New("game not found")
	ErrGameInUse    = errors.New("game is referenced by at least one tournament")
)

type GameRepository interface {
	Create(ctx context.Context, game *models.Game) error
	GetByID(ctx context.Context, id int) (*models.Game, error)
	List(ctx context.Context) ([]models.Game, error)
	Update(ctx context.Context, game *models.Game) error
	Delete(ctx context.Context, id int) error
	SearchByName(ctx context.Context, name string) ([]models.Game, error)
	ListByGenre(ctx context.Context, genre string) ([]models.Game, error)
	ListGenres(ctx context.Context) ([]string, error)
}

type postgresGameRepository struct {
	db SQLExecutor
}

func NewPostgresGameRepository(db *sql.DB) GameRepository {
	return &postgresGameRepository{db: db}
}

func (r *postgresGameRepository) Create(ctx context.Context, game *models.Game) error {
	query := `
		INSERT INTO games (name, publisher, release_year, genre, description)
		VALUES ($1, $2, $3, $4, $5)
		RETURNING id`

	err := r.db.QueryRowContext(ctx, query,
		game.Name,
		game.Publisher,
		game.ReleaseYear,
		game.Genre,
		game.Description,
	).Scan(&game.ID)
	if err != nil {
		return fmt.Errorf("failed to create game: %w", err)
	}
	return nil
}

func (r *postgresGameRepository) GetByID(ctx context.Context, id int) (*models.Game, error) {
	query := `
		SELECT id, name, publisher, release_year, genre, description
		FROM games
		WHERE id = $1`

	game := &models.Game{}
	err := r.db.QueryRowContext(ctx, query, id).Scan(
		&game.ID,
		&game.Name,
		&game.Publisher,
		&game.ReleaseYear,
		&game.Genre,
		&game.Description,
	)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrGameNotFound
		}
		return nil, err
	}
	return game, nil
}

func (r *postgresGameRepository) List(ctx context.Context) ([]models.Game, error) {
	query := `
		SELECT id, name, publisher, release_year, genre, description
		FROM games
		ORDER BY name ASC`
	return r.queryGames(ctx, query)
}

func (r *postgresGameRepository) Update(ctx context.Context, game *models.Game) error {
	query := `
		UPDATE games SET
			name = $1,
			publisher = $2,
			release_year = $3,
			genre = $4,
			description = $5
		WHERE id = $6`

	result, err := r.db.ExecContext(ctx, query,
		game.Name,
		game.Publisher,
		game.ReleaseYear,
		game.Genre,
		game.Description,
		game.ID,
	)
	if err != nil {
		return fmt.Errorf("failed to update game: %w", err)
	}
	return checkAffectedRows(result, ErrGameNotFound)
}

// Delete removes a game, refusing when any tournament still references
// it. The referencing check runs first so the caller gets ErrGameInUse
// instead of a raw constraint violation.
func (r *postgresGameRepository) Delete(ctx context.Context, id int) error {
	var refs int
	countQuery := `SELECT COUNT(*) FROM tournaments WHERE game_id = $1`
	if err := r.db.QueryRowContext(ctx, countQuery, id).Scan(&refs); err != nil {
		return fmt.Errorf("failed to count tournaments referencing game: %w", err)
	}
	if refs > 0 {
		return ErrGameInUse
	}

	result, err := r.db.ExecContext(ctx, `DELETE FROM games WHERE id = $1`, id)
	if err != nil {
		if pqErr, ok := err.(*pq.Error); ok && pqErr.Code == "23503" {
			return ErrGameInUse
		}
		return fmt.Errorf("failed to delete game: %w", err)
	}
	return checkAffectedRows(result, ErrGameNotFound)
}

func (r *postgresGameRepository) SearchByName(ctx context.Context, name string) ([]models.Game, error) {
	query := `
		SELECT id, name, publisher, release_year, genre, description
		FROM games
		WHERE UPPER(name) LIKE UPPER($1)
		ORDER BY name ASC`
	return r.queryGames(ctx, query, "%"+name+"%")
}

func (r *postgresGameRepository) ListByGenre(ctx context.Context, genre string) ([]models.Game, error) {
	query := `
		SELECT id, name, publisher, release_year, genre, description
		FROM games
		WHERE UPPER(genre) = UPPER($1)
		ORDER BY name ASC`
	return r.queryGames(ctx, query, genre)
}

func (r *postgresGameRepository) ListGenres(ctx context.Context) ([]string, error) {
	query := `SELECT DISTINCT genre FROM games WHERE genre <> '' ORDER BY genre ASC`

	rows, err := r.db.QueryContext(ctx, query)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	genres := make([]string, 0)
	for rows.Next() {
		var genre string
		if scanErr := rows.Scan(&genre); scanErr != nil {
			return nil, scanErr
		}
		genres = append(genres, genre)
	}
	if err = rows.Err(); err != nil {
		return nil, err
	}
	return genres, nil
}

func (r *postgresGameRepository) queryGames(ctx context.Context, query string, args ...interface{}) ([]models.Game, error) {
	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	games := make([]models.Game, 0)
	for rows.Next() {
		var game models.Game
		if scanErr := rows.Scan(
			&game.ID,
			&game.Name,
			&game.Publisher,
			&game.ReleaseYear,
			&game.Genre,
			&game.Description,
		); scanErr != nil {
			return nil, scanErr
		}
		games = append(games, game)
	}
	if err = rows.Err(); err != nil {
		return nil, err
	}
	return games, nil
}
