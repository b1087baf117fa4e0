package services

import (
	"context"
	"errors"
	"strings"

	"golang.org/x/crypto/bcrypt"

	"github.com/livetournois/tournament-manager/models"
	"github.com/livetournois/tournament-manager/repositories"
)

// UserService manages the operator accounts of the application.
type UserService struct {
	userRepo repositories.UserRepository
}

func NewUserService(userRepo repositories.UserRepository) *UserService {
	return &UserService{userRepo: userRepo}
}

// Create hashes the clear-text password and stores a new active
// account. The clear-text value never reaches the repository.
func (s *UserService) Create(ctx context.Context, user *models.User, password string) (*models.User, error) {
	if err := user.Validate(); err != nil {
		return nil, validation(err)
	}
	if strings.TrimSpace(password) == "" {
		return nil, ErrPasswordRequired
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return nil, persistence("hash password", err)
	}
	user.PasswordHash = string(hash)
	user.Active = true

	if err := s.userRepo.Create(ctx, user); err != nil {
		if errors.Is(err, repositories.ErrUserHandleConflict) {
			return nil, ErrUserHandleTaken
		}
		return nil, persistence("create user", err)
	}
	return user, nil
}

// Update rewrites the account. A blank password keeps the stored hash;
// a non-blank one replaces it.
func (s *UserService) Update(ctx context.Context, user *models.User, password string) (*models.User, error) {
	if err := user.Validate(); err != nil {
		return nil, validation(err)
	}

	if strings.TrimSpace(password) != "" {
		hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
		if err != nil {
			return nil, persistence("hash password", err)
		}
		user.PasswordHash = string(hash)
	} else {
		current, err := s.userRepo.GetByID(ctx, user.ID)
		if err != nil {
			if errors.Is(err, repositories.ErrUserNotFound) {
				return nil, ErrUserNotFound
			}
			return nil, persistence("load user", err)
		}
		user.PasswordHash = current.PasswordHash
	}

	if err := s.userRepo.Update(ctx, user); err != nil {
		switch {
		case errors.Is(err, repositories.ErrUserNotFound):
			return nil, ErrUserNotFound
		case errors.Is(err, repositories.ErrUserHandleConflict):
			return nil, ErrUserHandleTaken
		}
		return nil, persistence("update user", err)
	}
	return user, nil
}

func (s *UserService) Delete(ctx context.Context, id int) error {
	if err := s.userRepo.Delete(ctx, id); err != nil {
		if errors.Is(err, repositories.ErrUserNotFound) {
			return ErrUserNotFound
		}
		return persistence("delete user", err)
	}
	return nil
}

func (s *UserService) GetByID(ctx context.Context, id int) (*models.User, error) {
	user, err := s.userRepo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, repositories.ErrUserNotFound) {
			return nil, ErrUserNotFound
		}
		return nil, persistence("load user", err)
	}
	return user, nil
}

func (s *UserService) GetByHandle(ctx context.Context, handle string) (*models.User, error) {
	user, err := s.userRepo.GetByHandle(ctx, handle)
	if err != nil {
		if errors.Is(err, repositories.ErrUserNotFound) {
			return nil, ErrUserNotFound
		}
		return nil, persistence("load user", err)
	}
	return user, nil
}

func (s *UserService) List(ctx context.Context) ([]models.User, error) {
	users, err := s.userRepo.List(ctx)
	if err != nil {
		return nil, persistence("list users", err)
	}
	return users, nil
}

func (s *UserService) ListByRole(ctx context.Context, role models.Role) ([]models.User, error) {
	users, err := s.userRepo.ListByRole(ctx, role)
	if err != nil {
		return nil, persistence("list users by role", err)
	}
	return users, nil
}

// SetActive enables or disables an account without touching the rest
// of the record.
func (s *UserService) SetActive(ctx context.Context, id int, active bool) error {
	user, err := s.GetByID(ctx, id)
	if err != nil {
		return err
	}
	user.Active = active
	if err := s.userRepo.Update(ctx, user); err != nil {
		if errors.Is(err, repositories.ErrUserNotFound) {
			return ErrUserNotFound
		}
		return persistence("update user", err)
	}
	return nil
}
