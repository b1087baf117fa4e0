package services

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"

	"github.com/livetournois/tournament-manager/models"
)

func TestUserCreateHashesPassword(t *testing.T) {
	repo := newFakeUserRepo()
	service := NewUserService(repo)
	ctx := context.Background()

	user, err := service.Create(ctx, &models.User{Handle: "marie", Role: models.RoleAdmin}, "s3cret")
	require.NoError(t, err)
	assert.True(t, user.Active)
	assert.NotEqual(t, "s3cret", user.PasswordHash)
	assert.NoError(t, bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte("s3cret")))
}

func TestUserCreateRejectsBlankPassword(t *testing.T) {
	service := NewUserService(newFakeUserRepo())
	_, err := service.Create(context.Background(), &models.User{Handle: "marie", Role: models.RoleAdmin}, "   ")
	assert.ErrorIs(t, err, ErrPasswordRequired)
	assert.ErrorIs(t, err, ErrValidation)
}

func TestUserCreateRejectsTakenHandle(t *testing.T) {
	service := NewUserService(newFakeUserRepo())
	ctx := context.Background()

	_, err := service.Create(ctx, &models.User{Handle: "marie", Role: models.RoleAdmin}, "one")
	require.NoError(t, err)

	_, err = service.Create(ctx, &models.User{Handle: "marie", Role: models.RoleOrganizer}, "two")
	assert.ErrorIs(t, err, ErrUserHandleTaken)
	assert.ErrorIs(t, err, ErrDuplicate)
}

func TestUserUpdateBlankPasswordKeepsHash(t *testing.T) {
	repo := newFakeUserRepo()
	service := NewUserService(repo)
	ctx := context.Background()

	created, err := service.Create(ctx, &models.User{Handle: "marie", Role: models.RoleAdmin}, "s3cret")
	require.NoError(t, err)
	originalHash := created.PasswordHash

	created.Handle = "marie.c"
	updated, err := service.Update(ctx, created, "")
	require.NoError(t, err)
	assert.Equal(t, originalHash, updated.PasswordHash)

	stored, err := service.GetByHandle(ctx, "marie.c")
	require.NoError(t, err)
	assert.Equal(t, originalHash, stored.PasswordHash)
}

func TestUserUpdateReplacesPassword(t *testing.T) {
	service := NewUserService(newFakeUserRepo())
	ctx := context.Background()

	created, err := service.Create(ctx, &models.User{Handle: "marie", Role: models.RoleAdmin}, "old")
	require.NoError(t, err)

	updated, err := service.Update(ctx, created, "new")
	require.NoError(t, err)
	assert.NoError(t, bcrypt.CompareHashAndPassword([]byte(updated.PasswordHash), []byte("new")))
	assert.Error(t, bcrypt.CompareHashAndPassword([]byte(updated.PasswordHash), []byte("old")))
}

func TestUserSetActive(t *testing.T) {
	service := NewUserService(newFakeUserRepo())
	ctx := context.Background()

	created, err := service.Create(ctx, &models.User{Handle: "marie", Role: models.RoleAdmin}, "pw")
	require.NoError(t, err)

	require.NoError(t, service.SetActive(ctx, created.ID, false))
	stored, err := service.GetByID(ctx, created.ID)
	require.NoError(t, err)
	assert.False(t, stored.Active)
}

func TestUserDeleteUnknown(t *testing.T) {
	service := NewUserService(newFakeUserRepo())
	assert.ErrorIs(t, service.Delete(context.Background(), 5), ErrUserNotFound)
}
