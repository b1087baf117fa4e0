package services

import (
	"context"
	"errors"
	"fmt"
	"io"
	"path"
	"time"

	"github.com/google/uuid"
	"github.com/livetournois/tournament-manager/models"
	"github.com/livetournois/tournament-manager/repositories"
	"github.com/livetournois/tournament-manager/storage"
)

// TeamService manages teams and their rosters. Roster operations go
// through the player repository; the team only ever sees a snapshot.
type TeamService struct {
	teamRepo   repositories.TeamRepository
	playerRepo repositories.PlayerRepository
	uploader   storage.FileUploader
}

// NewTeamService accepts a nil uploader; logo operations then fail
// with ErrLogoStorageUnavailable instead of panicking.
func NewTeamService(teamRepo repositories.TeamRepository, playerRepo repositories.PlayerRepository, uploader storage.FileUploader) *TeamService {
	return &TeamService{
		teamRepo:   teamRepo,
		playerRepo: playerRepo,
		uploader:   uploader,
	}
}

var ErrLogoStorageUnavailable = errors.New("logo storage is not configured")

func (s *TeamService) Create(ctx context.Context, team *models.Team) (*models.Team, error) {
	if err := team.Validate(); err != nil {
		return nil, validation(err)
	}
	if team.CreatedAt.IsZero() {
		team.CreatedAt = time.Now().UTC()
	}

	if err := s.teamRepo.Create(ctx, team); err != nil {
		if errors.Is(err, repositories.ErrTeamNameConflict) {
			return nil, fmt.Errorf("%w: team name %q", ErrDuplicate, team.Name)
		}
		return nil, persistence("create team", err)
	}
	s.populateLogoURL(team)
	return team, nil
}

func (s *TeamService) Update(ctx context.Context, team *models.Team) (*models.Team, error) {
	if err := team.Validate(); err != nil {
		return nil, validation(err)
	}

	if err := s.teamRepo.Update(ctx, team); err != nil {
		switch {
		case errors.Is(err, repositories.ErrTeamNotFound):
			return nil, ErrTeamNotFound
		case errors.Is(err, repositories.ErrTeamNameConflict):
			return nil, fmt.Errorf("%w: team name %q", ErrDuplicate, team.Name)
		}
		return nil, persistence("update team", err)
	}
	return s.GetByID(ctx, team.ID)
}

// Delete removes the team. Players referencing it are detached by the
// storage layer (team_id set to NULL), not deleted.
func (s *TeamService) Delete(ctx context.Context, id int) error {
	if err := s.teamRepo.Delete(ctx, id); err != nil {
		if errors.Is(err, repositories.ErrTeamNotFound) {
			return ErrTeamNotFound
		}
		return persistence("delete team", err)
	}
	return nil
}

// GetByID loads the team with its roster snapshot.
func (s *TeamService) GetByID(ctx context.Context, id int) (*models.Team, error) {
	team, err := s.teamRepo.GetByIDWithPlayers(ctx, id)
	if err != nil {
		if errors.Is(err, repositories.ErrTeamNotFound) {
			return nil, ErrTeamNotFound
		}
		return nil, persistence("load team", err)
	}
	s.populateLogoURL(team)
	return team, nil
}

func (s *TeamService) List(ctx context.Context) ([]models.Team, error) {
	teams, err := s.teamRepo.List(ctx)
	if err != nil {
		return nil, persistence("list teams", err)
	}
	for i := range teams {
		s.populateLogoURL(&teams[i])
	}
	return teams, nil
}

// AddPlayer attaches a new player to the team.
func (s *TeamService) AddPlayer(ctx context.Context, teamID int, player *models.Player) (*models.Player, error) {
	player.TeamID = &teamID
	if err := s.playerRepo.Create(ctx, player); err != nil {
		if errors.Is(err, repositories.ErrPlayerTeamInvalid) {
			return nil, ErrTeamNotFound
		}
		return nil, persistence("add player", err)
	}
	return player, nil
}

func (s *TeamService) UpdatePlayer(ctx context.Context, player *models.Player) (*models.Player, error) {
	if err := s.playerRepo.Update(ctx, player); err != nil {
		switch {
		case errors.Is(err, repositories.ErrPlayerNotFound):
			return nil, ErrPlayerNotFound
		case errors.Is(err, repositories.ErrPlayerTeamInvalid):
			return nil, ErrTeamNotFound
		}
		return nil, persistence("update player", err)
	}
	return player, nil
}

func (s *TeamService) DeletePlayer(ctx context.Context, playerID int) error {
	if err := s.playerRepo.Delete(ctx, playerID); err != nil {
		if errors.Is(err, repositories.ErrPlayerNotFound) {
			return ErrPlayerNotFound
		}
		return persistence("delete player", err)
	}
	return nil
}

// RemovePlayer detaches the player from its team, keeping the player
// record.
func (s *TeamService) RemovePlayer(ctx context.Context, playerID int) error {
	if err := s.playerRepo.ClearTeam(ctx, playerID); err != nil {
		if errors.Is(err, repositories.ErrPlayerNotFound) {
			return ErrPlayerNotFound
		}
		return persistence("detach player", err)
	}
	return nil
}

func (s *TeamService) ListPlayers(ctx context.Context, teamID int) ([]models.Player, error) {
	players, err := s.playerRepo.ListByTeam(ctx, teamID)
	if err != nil {
		return nil, persistence("list players", err)
	}
	return players, nil
}

// UploadLogo stores a new logo object under a fresh key, points the
// team at it and removes the previous object if there was one. Failure
// to remove the old object is not fatal; the row already references
// the new key.
func (s *TeamService) UploadLogo(ctx context.Context, teamID int, filename, contentType string, body io.Reader) (*models.Team, error) {
	if s.uploader == nil {
		return nil, ErrLogoStorageUnavailable
	}

	team, err := s.teamRepo.GetByID(ctx, teamID)
	if err != nil {
		if errors.Is(err, repositories.ErrTeamNotFound) {
			return nil, ErrTeamNotFound
		}
		return nil, persistence("load team", err)
	}

	key := fmt.Sprintf("teams/%d/logo-%s%s", teamID, uuid.NewString(), path.Ext(filename))
	if _, err := s.uploader.Upload(ctx, key, contentType, body); err != nil {
		return nil, fmt.Errorf("upload team logo: %w", err)
	}

	if err := s.teamRepo.UpdateLogoKey(ctx, teamID, &key); err != nil {
		return nil, persistence("update team logo", err)
	}

	if team.LogoKey != nil {
		_ = s.uploader.Delete(ctx, *team.LogoKey)
	}

	return s.GetByID(ctx, teamID)
}

// RemoveLogo deletes the stored logo object and clears the key.
func (s *TeamService) RemoveLogo(ctx context.Context, teamID int) error {
	if s.uploader == nil {
		return ErrLogoStorageUnavailable
	}

	team, err := s.teamRepo.GetByID(ctx, teamID)
	if err != nil {
		if errors.Is(err, repositories.ErrTeamNotFound) {
			return ErrTeamNotFound
		}
		return persistence("load team", err)
	}
	if team.LogoKey == nil {
		return nil
	}

	if err := s.uploader.Delete(ctx, *team.LogoKey); err != nil {
		return fmt.Errorf("delete team logo: %w", err)
	}
	if err := s.teamRepo.UpdateLogoKey(ctx, teamID, nil); err != nil {
		return persistence("clear team logo", err)
	}
	return nil
}

func (s *TeamService) populateLogoURL(team *models.Team) {
	if s.uploader == nil || team.LogoKey == nil {
		return
	}
	url := s.uploader.GetPublicURL(*team.LogoKey)
	if url != "" {
		team.LogoURL = &url
	}
}
