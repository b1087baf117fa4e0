package services

import (
	"context"
	"errors"
	"log/slog"
	"time"

	"golang.org/x/crypto/bcrypt"

	"github.com/livetournois/tournament-manager/models"
	"github.com/livetournois/tournament-manager/repositories"
)

// AuthService verifies operator credentials. It does not hold session
// state; the session package owns the signed-in slot.
type AuthService struct {
	userRepo repositories.UserRepository
	logger   *slog.Logger
}

func NewAuthService(userRepo repositories.UserRepository, logger *slog.Logger) *AuthService {
	return &AuthService{userRepo: userRepo, logger: logger}
}

// Authenticate checks the handle and password and stamps last_login on
// success. An unknown handle and a wrong password both return
// ErrInvalidCredentials so callers cannot probe for handles.
func (s *AuthService) Authenticate(ctx context.Context, handle, password string) (*models.User, error) {
	user, err := s.userRepo.GetByHandle(ctx, handle)
	if err != nil {
		if errors.Is(err, repositories.ErrUserNotFound) {
			return nil, ErrInvalidCredentials
		}
		return nil, persistence("load user", err)
	}

	if !user.Active {
		return nil, ErrAccountDisabled
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(password)); err != nil {
		if errors.Is(err, bcrypt.ErrMismatchedHashAndPassword) {
			return nil, ErrInvalidCredentials
		}
		return nil, persistence("verify password", err)
	}

	now := time.Now().UTC()
	if err := s.userRepo.UpdateLastLogin(ctx, user.ID, now); err != nil {
		// The sign-in itself succeeded; a failed stamp is not fatal.
		s.logger.Warn("failed to stamp last login",
			slog.Int("user_id", user.ID),
			slog.Any("error", err),
		)
	} else {
		user.LastLogin = &now
	}

	return user, nil
}

// ChangePassword verifies the current password before storing a new
// hash.
func (s *AuthService) ChangePassword(ctx context.Context, userID int, currentPassword, newPassword string) error {
	if newPassword == "" {
		return ErrPasswordRequired
	}

	user, err := s.userRepo.GetByID(ctx, userID)
	if err != nil {
		if errors.Is(err, repositories.ErrUserNotFound) {
			return ErrUserNotFound
		}
		return persistence("load user", err)
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(currentPassword)); err != nil {
		return ErrInvalidCredentials
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(newPassword), bcrypt.DefaultCost)
	if err != nil {
		return persistence("hash password", err)
	}
	user.PasswordHash = string(hash)

	if err := s.userRepo.Update(ctx, user); err != nil {
		return persistence("update user", err)
	}
	return nil
}
