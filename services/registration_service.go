package services

import (
	"context"
	"errors"

	"github.com/livetournois/tournament-manager/models"
	"github.com/livetournois/tournament-manager/repositories"
)

// registrationSeatCeiling is the hard limit applied by the
// registration-facing operations. It is independent of the
// per-tournament MaxTeams checked in TournamentService; the two
// ceilings can disagree and both are enforced on their own paths.
const registrationSeatCeiling = 16

// RegistrationService manages registration records directly, keyed by
// the (tournament, team) pair.
type RegistrationService struct {
	registrationRepo repositories.RegistrationRepository
}

func NewRegistrationService(registrationRepo repositories.RegistrationRepository) *RegistrationService {
	return &RegistrationService{registrationRepo: registrationRepo}
}

// Create registers a team for a tournament. The duplicate check runs
// before the capacity check, so re-registering an already present team
// reports the duplicate even when the tournament is full.
func (s *RegistrationService) Create(ctx context.Context, registration *models.Registration) (*models.Registration, error) {
	if err := registration.Validate(); err != nil {
		return nil, validation(err)
	}

	exists, err := s.registrationRepo.Exists(ctx, registration.TournamentID, registration.TeamID)
	if err != nil {
		return nil, persistence("check registration", err)
	}
	if exists {
		return nil, ErrTeamAlreadyRegistered
	}

	count, err := s.registrationRepo.CountByTournament(ctx, registration.TournamentID)
	if err != nil {
		return nil, persistence("count registrations", err)
	}
	if count >= registrationSeatCeiling {
		return nil, ErrRegistrationCeilingReached
	}

	registration.Normalize()
	if err := s.registrationRepo.Create(ctx, registration); err != nil {
		if errors.Is(err, repositories.ErrRegistrationConflict) {
			return nil, ErrTeamAlreadyRegistered
		}
		return nil, persistence("create registration", err)
	}
	return registration, nil
}

// UpdateStatus rewrites the registration status; the seed stays zero.
func (s *RegistrationService) UpdateStatus(ctx context.Context, registration *models.Registration) (*models.Registration, error) {
	if err := registration.Validate(); err != nil {
		return nil, validation(err)
	}
	registration.Normalize()

	if err := s.registrationRepo.Update(ctx, registration); err != nil {
		if errors.Is(err, repositories.ErrRegistrationNotFound) {
			return nil, ErrRegistrationNotFound
		}
		return nil, persistence("update registration", err)
	}
	return registration, nil
}

func (s *RegistrationService) Delete(ctx context.Context, tournamentID, teamID int) error {
	if err := s.registrationRepo.Delete(ctx, tournamentID, teamID); err != nil {
		if errors.Is(err, repositories.ErrRegistrationNotFound) {
			return ErrRegistrationNotFound
		}
		return persistence("delete registration", err)
	}
	return nil
}

func (s *RegistrationService) Get(ctx context.Context, tournamentID, teamID int) (*models.Registration, error) {
	registration, err := s.registrationRepo.GetByTournamentAndTeam(ctx, tournamentID, teamID)
	if err != nil {
		if errors.Is(err, repositories.ErrRegistrationNotFound) {
			return nil, ErrRegistrationNotFound
		}
		return nil, persistence("load registration", err)
	}
	return registration, nil
}

// ListByTournament returns registrations ordered by seed.
func (s *RegistrationService) ListByTournament(ctx context.Context, tournamentID int) ([]models.Registration, error) {
	registrations, err := s.registrationRepo.ListByTournament(ctx, tournamentID)
	if err != nil {
		return nil, persistence("list registrations", err)
	}
	return registrations, nil
}

// ListByTeam returns a team's registrations, newest first.
func (s *RegistrationService) ListByTeam(ctx context.Context, teamID int) ([]models.Registration, error) {
	registrations, err := s.registrationRepo.ListByTeam(ctx, teamID)
	if err != nil {
		return nil, persistence("list registrations", err)
	}
	return registrations, nil
}

func (s *RegistrationService) List(ctx context.Context) ([]models.Registration, error) {
	registrations, err := s.registrationRepo.ListAll(ctx)
	if err != nil {
		return nil, persistence("list registrations", err)
	}
	return registrations, nil
}

// RemainingSeats reports how many seats are left under the fixed
// ceiling, regardless of what the tournament's own MaxTeams says.
func (s *RegistrationService) RemainingSeats(ctx context.Context, tournamentID int) (int, error) {
	count, err := s.registrationRepo.CountByTournament(ctx, tournamentID)
	if err != nil {
		return 0, persistence("count registrations", err)
	}
	return registrationSeatCeiling - count, nil
}
