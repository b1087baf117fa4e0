package services

import (
	"context"
	"errors"
	"log/slog"
	"strings"

	"github.com/livetournois/tournament-manager/models"
	"github.com/livetournois/tournament-manager/repositories"
)

// StaffService manages staff members and their tournament assignments.
type StaffService struct {
	staffRepo      repositories.StaffRepository
	userRepo       repositories.UserRepository
	assignmentRepo repositories.AssignmentRepository
	logger         *slog.Logger
}

func NewStaffService(
	staffRepo repositories.StaffRepository,
	userRepo repositories.UserRepository,
	assignmentRepo repositories.AssignmentRepository,
	logger *slog.Logger,
) *StaffService {
	return &StaffService{
		staffRepo:      staffRepo,
		userRepo:       userRepo,
		assignmentRepo: assignmentRepo,
		logger:         logger,
	}
}

func (s *StaffService) Create(ctx context.Context, staff *models.Staff) (*models.Staff, error) {
	if err := staff.Validate(); err != nil {
		return nil, validation(err)
	}

	if err := s.staffRepo.Create(ctx, staff); err != nil {
		if errors.Is(err, repositories.ErrStaffUserInvalid) {
			return nil, ErrUserNotFound
		}
		return nil, persistence("create staff member", err)
	}
	return staff, nil
}

func (s *StaffService) Update(ctx context.Context, staff *models.Staff) (*models.Staff, error) {
	if err := staff.Validate(); err != nil {
		return nil, validation(err)
	}

	if err := s.staffRepo.Update(ctx, staff); err != nil {
		switch {
		case errors.Is(err, repositories.ErrStaffNotFound):
			return nil, ErrStaffNotFound
		case errors.Is(err, repositories.ErrStaffUserInvalid):
			return nil, ErrUserNotFound
		}
		return nil, persistence("update staff member", err)
	}
	return s.GetByID(ctx, staff.ID)
}

func (s *StaffService) Delete(ctx context.Context, id int) error {
	if err := s.staffRepo.Delete(ctx, id); err != nil {
		if errors.Is(err, repositories.ErrStaffNotFound) {
			return ErrStaffNotFound
		}
		return persistence("delete staff member", err)
	}
	return nil
}

// GetByID loads the staff member with the linked user account
// resolved. A failed account lookup is logged and leaves User nil; the
// staff read itself still succeeds.
func (s *StaffService) GetByID(ctx context.Context, id int) (*models.Staff, error) {
	staff, err := s.staffRepo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, repositories.ErrStaffNotFound) {
			return nil, ErrStaffNotFound
		}
		return nil, persistence("load staff member", err)
	}
	s.enrichUser(ctx, staff)
	return staff, nil
}

func (s *StaffService) GetByPhone(ctx context.Context, phone string) (*models.Staff, error) {
	staff, err := s.staffRepo.GetByPhone(ctx, phone)
	if err != nil {
		if errors.Is(err, repositories.ErrStaffNotFound) {
			return nil, ErrStaffNotFound
		}
		return nil, persistence("load staff member", err)
	}
	s.enrichUser(ctx, staff)
	return staff, nil
}

func (s *StaffService) List(ctx context.Context) ([]models.Staff, error) {
	members, err := s.staffRepo.List(ctx)
	if err != nil {
		return nil, persistence("list staff", err)
	}
	return members, nil
}

func (s *StaffService) ListByFunction(ctx context.Context, function string) ([]models.Staff, error) {
	members, err := s.staffRepo.ListByFunction(ctx, function)
	if err != nil {
		return nil, persistence("list staff by function", err)
	}
	return members, nil
}

func (s *StaffService) ListByTournament(ctx context.Context, tournamentID int) ([]models.Staff, error) {
	members, err := s.staffRepo.ListByTournament(ctx, tournamentID)
	if err != nil {
		return nil, persistence("list tournament staff", err)
	}
	return members, nil
}

// Search matches the criterion case-insensitively against name,
// surname, email and function. A blank criterion returns everyone.
func (s *StaffService) Search(ctx context.Context, criterion string) ([]models.Staff, error) {
	criterion = strings.TrimSpace(criterion)
	if criterion == "" {
		return s.List(ctx)
	}
	members, err := s.staffRepo.Search(ctx, criterion)
	if err != nil {
		return nil, persistence("search staff", err)
	}
	return members, nil
}

// AddToTournament records an assignment. No duplicate check is done
// here: assigning the same staff member twice creates two rows.
func (s *StaffService) AddToTournament(ctx context.Context, assignment *models.Assignment) (*models.Assignment, error) {
	if err := assignment.Validate(); err != nil {
		return nil, validation(err)
	}

	if err := s.assignmentRepo.Create(ctx, assignment); err != nil {
		switch {
		case errors.Is(err, repositories.ErrAssignmentStaffInvalid):
			return nil, ErrStaffNotFound
		case errors.Is(err, repositories.ErrAssignmentTournamentInvalid):
			return nil, ErrTournamentNotFound
		}
		return nil, persistence("create assignment", err)
	}
	return assignment, nil
}

func (s *StaffService) RemoveFromTournament(ctx context.Context, staffID, tournamentID int) error {
	if err := s.assignmentRepo.Delete(ctx, staffID, tournamentID); err != nil {
		if errors.Is(err, repositories.ErrAssignmentNotFound) {
			return ErrAssignmentNotFound
		}
		return persistence("delete assignment", err)
	}
	return nil
}

func (s *StaffService) ListAssignments(ctx context.Context, staffID int) ([]models.Assignment, error) {
	assignments, err := s.assignmentRepo.ListByStaff(ctx, staffID)
	if err != nil {
		return nil, persistence("list assignments", err)
	}
	return assignments, nil
}

func (s *StaffService) enrichUser(ctx context.Context, staff *models.Staff) {
	if staff.UserID == nil {
		return
	}
	user, err := s.userRepo.GetByID(ctx, *staff.UserID)
	if err != nil {
		s.logger.Warn("failed to resolve staff user account",
			slog.Int("staff_id", staff.ID),
			slog.Int("user_id", *staff.UserID),
			slog.Any("error", err),
		)
		return
	}
	staff.User = user
}
