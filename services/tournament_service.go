package services

import (
	"context"
	"errors"

	"github.com/livetournois/tournament-manager/models"
	"github.com/livetournois/tournament-manager/repositories"
)

// TournamentService owns the tournament lifecycle and the
// tournament-facing registration operations. Capacity here is checked
// against the tournament's own configurable MaxTeams; the
// registration-facing operations in RegistrationService apply a fixed
// ceiling instead (see that service).
type TournamentService struct {
	tournamentRepo   repositories.TournamentRepository
	teamRepo         repositories.TeamRepository
	registrationRepo repositories.RegistrationRepository
	assignmentRepo   repositories.AssignmentRepository
}

func NewTournamentService(
	tournamentRepo repositories.TournamentRepository,
	teamRepo repositories.TeamRepository,
	registrationRepo repositories.RegistrationRepository,
	assignmentRepo repositories.AssignmentRepository,
) *TournamentService {
	return &TournamentService{
		tournamentRepo:   tournamentRepo,
		teamRepo:         teamRepo,
		registrationRepo: registrationRepo,
		assignmentRepo:   assignmentRepo,
	}
}

// Create validates the tournament, normalizes its status and persists
// it. The tournament receives its ID in place.
func (s *TournamentService) Create(ctx context.Context, tournament *models.Tournament) (*models.Tournament, error) {
	if err := tournament.Validate(); err != nil {
		return nil, validation(err)
	}
	tournament.Status = models.NormalizeStatus(string(tournament.Status))

	if err := s.tournamentRepo.Create(ctx, tournament); err != nil {
		return nil, persistence("create tournament", err)
	}
	return tournament, nil
}

// Update validates, normalizes the status, persists, then re-reads the
// refreshed record including nested collections.
func (s *TournamentService) Update(ctx context.Context, tournament *models.Tournament) (*models.Tournament, error) {
	if err := tournament.Validate(); err != nil {
		return nil, validation(err)
	}
	tournament.Status = models.NormalizeStatus(string(tournament.Status))

	if err := s.tournamentRepo.Update(ctx, tournament); err != nil {
		if errors.Is(err, repositories.ErrTournamentNotFound) {
			return nil, ErrTournamentNotFound
		}
		return nil, persistence("update tournament", err)
	}
	return s.GetByID(ctx, tournament.ID)
}

// Delete removes a tournament; dependent registrations and assignments
// are removed by the storage cascade.
func (s *TournamentService) Delete(ctx context.Context, id int) error {
	if err := s.tournamentRepo.Delete(ctx, id); err != nil {
		if errors.Is(err, repositories.ErrTournamentNotFound) {
			return ErrTournamentNotFound
		}
		return persistence("delete tournament", err)
	}
	return nil
}

// GetByID loads the tournament with its assignments and registered
// teams eagerly resolved. Each nested load is its own read; a nested
// failure fails the whole call.
func (s *TournamentService) GetByID(ctx context.Context, id int) (*models.Tournament, error) {
	tournament, err := s.tournamentRepo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, repositories.ErrTournamentNotFound) {
			return nil, ErrTournamentNotFound
		}
		return nil, persistence("load tournament", err)
	}

	assignments, err := s.assignmentRepo.ListByTournament(ctx, id)
	if err != nil {
		return nil, persistence("load tournament assignments", err)
	}
	tournament.Assignments = assignments

	teams, err := s.teamRepo.ListByTournament(ctx, id)
	if err != nil {
		return nil, persistence("load tournament teams", err)
	}
	tournament.Teams = teams

	return tournament, nil
}

// List returns all tournaments with their registered-teams snapshot.
func (s *TournamentService) List(ctx context.Context) ([]models.Tournament, error) {
	tournaments, err := s.tournamentRepo.List(ctx)
	if err != nil {
		return nil, persistence("list tournaments", err)
	}
	return s.populateTeams(ctx, tournaments)
}

// ListInProgress returns tournaments whose status is "in progress".
func (s *TournamentService) ListInProgress(ctx context.Context) ([]models.Tournament, error) {
	tournaments, err := s.tournamentRepo.ListByStatus(ctx, models.StatusInProgress)
	if err != nil {
		return nil, persistence("list tournaments in progress", err)
	}
	return s.populateTeams(ctx, tournaments)
}

// ListUpcoming returns tournaments that start after today.
func (s *TournamentService) ListUpcoming(ctx context.Context) ([]models.Tournament, error) {
	tournaments, err := s.tournamentRepo.ListUpcoming(ctx)
	if err != nil {
		return nil, persistence("list upcoming tournaments", err)
	}
	return s.populateTeams(ctx, tournaments)
}

// RemainingSeats returns maxTeams minus the current registration
// count. The subtraction is deliberately unclamped: lowering MaxTeams
// below the number of existing registrations yields a negative value
// that the caller can observe.
func (s *TournamentService) RemainingSeats(ctx context.Context, tournament *models.Tournament) (int, error) {
	count, err := s.tournamentRepo.CountRegistrations(ctx, tournament.ID)
	if err != nil {
		return 0, persistence("count registrations", err)
	}
	return tournament.MaxTeams - count, nil
}

// RegisterTeam inserts a registration after checking the tournament's
// own MaxTeams ceiling. The check-then-insert pair is not atomic,
// which is acceptable for a single interactive client.
func (s *TournamentService) RegisterTeam(ctx context.Context, tournament *models.Tournament, team *models.Team) error {
	seats, err := s.RemainingSeats(ctx, tournament)
	if err != nil {
		return err
	}
	if seats <= 0 {
		return ErrTournamentFull
	}

	registration := &models.Registration{
		TournamentID: tournament.ID,
		TeamID:       team.ID,
	}
	registration.Normalize()

	if err := s.registrationRepo.Create(ctx, registration); err != nil {
		if errors.Is(err, repositories.ErrRegistrationConflict) {
			return ErrTeamAlreadyRegistered
		}
		return persistence("register team", err)
	}
	return nil
}

// UnregisterTeam removes the registration linking the team to the
// tournament.
func (s *TournamentService) UnregisterTeam(ctx context.Context, tournament *models.Tournament, team *models.Team) error {
	if err := s.registrationRepo.Delete(ctx, tournament.ID, team.ID); err != nil {
		if errors.Is(err, repositories.ErrRegistrationNotFound) {
			return ErrRegistrationNotFound
		}
		return persistence("unregister team", err)
	}
	return nil
}

func (s *TournamentService) populateTeams(ctx context.Context, tournaments []models.Tournament) ([]models.Tournament, error) {
	for i := range tournaments {
		teams, err := s.teamRepo.ListByTournament(ctx, tournaments[i].ID)
		if err != nil {
			return nil, persistence("load tournament teams", err)
		}
		tournaments[i].Teams = teams
	}
	return tournaments, nil
}
