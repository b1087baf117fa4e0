package services

import (
	"context"
	"errors"

	"github.com/livetournois/tournament-manager/models"
	"github.com/livetournois/tournament-manager/repositories"
)

// GameService manages the game catalog.
type GameService struct {
	gameRepo repositories.GameRepository
}

func NewGameService(gameRepo repositories.GameRepository) *GameService {
	return &GameService{gameRepo: gameRepo}
}

func (s *GameService) Create(ctx context.Context, game *models.Game) (*models.Game, error) {
	if err := game.Validate(); err != nil {
		return nil, validation(err)
	}
	if err := s.gameRepo.Create(ctx, game); err != nil {
		return nil, persistence("create game", err)
	}
	return game, nil
}

func (s *GameService) Update(ctx context.Context, game *models.Game) (*models.Game, error) {
	if err := game.Validate(); err != nil {
		return nil, validation(err)
	}
	if err := s.gameRepo.Update(ctx, game); err != nil {
		if errors.Is(err, repositories.ErrGameNotFound) {
			return nil, ErrGameNotFound
		}
		return nil, persistence("update game", err)
	}
	return game, nil
}

// Delete refuses to remove a game that is still referenced by at
// least one tournament.
func (s *GameService) Delete(ctx context.Context, id int) error {
	if err := s.gameRepo.Delete(ctx, id); err != nil {
		switch {
		case errors.Is(err, repositories.ErrGameNotFound):
			return ErrGameNotFound
		case errors.Is(err, repositories.ErrGameInUse):
			return ErrGameInUse
		}
		return persistence("delete game", err)
	}
	return nil
}

func (s *GameService) GetByID(ctx context.Context, id int) (*models.Game, error) {
	game, err := s.gameRepo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, repositories.ErrGameNotFound) {
			return nil, ErrGameNotFound
		}
		return nil, persistence("load game", err)
	}
	return game, nil
}

func (s *GameService) List(ctx context.Context) ([]models.Game, error) {
	games, err := s.gameRepo.List(ctx)
	if err != nil {
		return nil, persistence("list games", err)
	}
	return games, nil
}

func (s *GameService) SearchByName(ctx context.Context, name string) ([]models.Game, error) {
	games, err := s.gameRepo.SearchByName(ctx, name)
	if err != nil {
		return nil, persistence("search games", err)
	}
	return games, nil
}

func (s *GameService) ListByGenre(ctx context.Context, genre string) ([]models.Game, error) {
	games, err := s.gameRepo.ListByGenre(ctx, genre)
	if err != nil {
		return nil, persistence("list games by genre", err)
	}
	return games, nil
}

func (s *GameService) ListGenres(ctx context.Context) ([]string, error) {
	genres, err := s.gameRepo.ListGenres(ctx)
	if err != nil {
		return nil, persistence("list game genres", err)
	}
	return genres, nil
}
