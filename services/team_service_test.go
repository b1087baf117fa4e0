package services

import (
	"context"
	"fmt"
	"io"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/livetournois/tournament-manager/models"
	"github.com/livetournois/tournament-manager/storage"
)

type fakeUploader struct {
	objects map[string]string
	deleted []string
}

func newFakeUploader() *fakeUploader {
	return &fakeUploader{objects: make(map[string]string)}
}

func (f *fakeUploader) Upload(_ context.Context, key, _ string, reader io.Reader) (*storage.UploadResult, error) {
	data, err := io.ReadAll(reader)
	if err != nil {
		return nil, err
	}
	f.objects[key] = string(data)
	return &storage.UploadResult{Key: key, Location: f.GetPublicURL(key)}, nil
}

func (f *fakeUploader) Delete(_ context.Context, key string) error {
	delete(f.objects, key)
	f.deleted = append(f.deleted, key)
	return nil
}

func (f *fakeUploader) GetPublicURL(key string) string {
	return fmt.Sprintf("https://cdn.example.com/%s", key)
}

func newTeamFixture(uploader storage.FileUploader) (*TeamService, *fakeTeamRepo, *fakePlayerRepo) {
	players := newFakePlayerRepo()
	teams := newFakeTeamRepo(players, &fakeRegistrationRepo{})
	return NewTeamService(teams, players, uploader), teams, players
}

func TestTeamCreateRejectsDuplicateName(t *testing.T) {
	service, _, _ := newTeamFixture(nil)
	ctx := context.Background()

	_, err := service.Create(ctx, &models.Team{Name: "Nova"})
	require.NoError(t, err)

	_, err = service.Create(ctx, &models.Team{Name: "Nova"})
	assert.ErrorIs(t, err, ErrDuplicate)
}

func TestTeamCreateSetsCreatedAt(t *testing.T) {
	service, _, _ := newTeamFixture(nil)

	team, err := service.Create(context.Background(), &models.Team{Name: "Nova"})
	require.NoError(t, err)
	assert.False(t, team.CreatedAt.IsZero())

	explicit := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)
	kept, err := service.Create(context.Background(), &models.Team{Name: "Zenith", CreatedAt: explicit})
	require.NoError(t, err)
	assert.Equal(t, explicit, kept.CreatedAt)
}

func TestTeamRosterOperations(t *testing.T) {
	service, _, _ := newTeamFixture(nil)
	ctx := context.Background()

	team, err := service.Create(ctx, &models.Team{Name: "Nova"})
	require.NoError(t, err)

	player, err := service.AddPlayer(ctx, team.ID, &models.Player{
		Name:    "Lena",
		Surname: "Moreau",
		Handle:  "lnm",
	})
	require.NoError(t, err)
	require.NotNil(t, player.TeamID)
	assert.Equal(t, team.ID, *player.TeamID)

	loaded, err := service.GetByID(ctx, team.ID)
	require.NoError(t, err)
	require.Len(t, loaded.Players, 1)

	// Detaching keeps the player record, just without a team.
	require.NoError(t, service.RemovePlayer(ctx, player.ID))
	loaded, err = service.GetByID(ctx, team.ID)
	require.NoError(t, err)
	assert.Empty(t, loaded.Players)

	players, err := service.ListPlayers(ctx, team.ID)
	require.NoError(t, err)
	assert.Empty(t, players)
}

func TestUploadLogoWithoutStorage(t *testing.T) {
	service, _, _ := newTeamFixture(nil)
	_, err := service.UploadLogo(context.Background(), 1, "logo.png", "image/png", strings.NewReader("img"))
	assert.ErrorIs(t, err, ErrLogoStorageUnavailable)
}

func TestUploadLogoReplacesPreviousObject(t *testing.T) {
	uploader := newFakeUploader()
	service, _, _ := newTeamFixture(uploader)
	ctx := context.Background()

	team, err := service.Create(ctx, &models.Team{Name: "Nova"})
	require.NoError(t, err)

	first, err := service.UploadLogo(ctx, team.ID, "logo.png", "image/png", strings.NewReader("v1"))
	require.NoError(t, err)
	require.NotNil(t, first.LogoKey)
	require.NotNil(t, first.LogoURL)
	assert.Contains(t, *first.LogoURL, "cdn.example.com")

	second, err := service.UploadLogo(ctx, team.ID, "logo.png", "image/png", strings.NewReader("v2"))
	require.NoError(t, err)
	require.NotNil(t, second.LogoKey)
	assert.NotEqual(t, *first.LogoKey, *second.LogoKey)
	assert.Contains(t, uploader.deleted, *first.LogoKey)
	assert.Len(t, uploader.objects, 1)
}

func TestRemoveLogo(t *testing.T) {
	uploader := newFakeUploader()
	service, _, _ := newTeamFixture(uploader)
	ctx := context.Background()

	team, err := service.Create(ctx, &models.Team{Name: "Nova"})
	require.NoError(t, err)

	// Removing when no logo is set is a no-op.
	require.NoError(t, service.RemoveLogo(ctx, team.ID))

	uploaded, err := service.UploadLogo(ctx, team.ID, "logo.png", "image/png", strings.NewReader("v1"))
	require.NoError(t, err)

	require.NoError(t, service.RemoveLogo(ctx, team.ID))
	assert.Contains(t, uploader.deleted, *uploaded.LogoKey)

	loaded, err := service.GetByID(ctx, team.ID)
	require.NoError(t, err)
	assert.Nil(t, loaded.LogoKey)
	assert.Nil(t, loaded.LogoURL)
}
