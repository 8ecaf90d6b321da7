package usecase

import (
	"context"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"pawmarket/internal/domain/entity"
	"pawmarket/internal/domain/rules"
	"pawmarket/pkg/errors"
)

func TestGetProfileCreatesDefault(t *testing.T) {
	app := newTestApp()
	ctx := context.Background()

	p, err := app.profiles.GetProfile(ctx, "abcdefghijkl")
	require.NoError(t, err)

	assert.Equal(t, "User_abcdefgh", p.Username)
	assert.Equal(t, entity.DefaultAvatarURL, p.AvatarURL)
	assert.Equal(t, 1, p.Level)
	assert.Zero(t, p.Experience)
	assert.Zero(t, p.Points)
	assert.Equal(t, 100, p.NextLevelExperience)

	again, err := app.profiles.GetProfile(ctx, "abcdefghijkl")
	require.NoError(t, err)
	assert.Equal(t, p.CreatedAt, again.CreatedAt)
}

func TestAwardLevelsUp(t *testing.T) {
	app := newTestApp()
	ctx := context.Background()
	app.seedProfile("u1", 95, 1, 0)

	res, err := app.profiles.award(ctx, "u1", entity.ActionPostHelp)
	require.NoError(t, err)

	assert.True(t, res.LevelUp)
	assert.Equal(t, 1, res.OldLevel)
	assert.Equal(t, 2, res.NewLevel)
	assert.Equal(t, 100, res.Experience)
	assert.Equal(t, 200, res.NextLevelExperience)

	p := app.profile("u1")
	assert.Equal(t, 2, p.Level)
	assert.Equal(t, 1+rules.LevelUpBonus, p.Points)
	assert.Equal(t, 1, app.recorder.levelUps)

	logs, total, err := app.profiles.ListExperienceLogs(ctx, "u1", 10, 0)
	require.NoError(t, err)
	assert.EqualValues(t, 1, total)
	assert.Equal(t, entity.ActionPostHelp, logs[0].ActionType)
	assert.Equal(t, 5, logs[0].ExperienceChange)
	assert.Equal(t, 1+rules.LevelUpBonus, logs[0].PointsChange)
}

func TestAwardUnknownAction(t *testing.T) {
	app := newTestApp()

	_, err := app.profiles.award(context.Background(), "u1", entity.ActionType("dance"))
	assert.True(t, errors.Is(err, errors.CodeInvalidArgument))

	_, ok := app.store.profiles["u1"]
	assert.False(t, ok)
}

func TestAwardSurvivesLogFailure(t *testing.T) {
	app := newTestApp()
	app.store.failOnce("profile.log", errors.Transient(nil))

	res, err := app.profiles.award(context.Background(), "u1", entity.ActionComment)
	require.NoError(t, err)
	assert.Equal(t, 2, res.Experience)
	assert.Empty(t, app.store.expLogs)
}

func TestUpdateUsername(t *testing.T) {
	app := newTestApp()
	ctx := context.Background()

	p, err := app.profiles.UpdateUsername(ctx, "u1", "  Whiskers  ")
	require.NoError(t, err)
	assert.Equal(t, "Whiskers", p.Username)

	_, err = app.profiles.UpdateUsername(ctx, "u1", "   ")
	assert.True(t, errors.Is(err, errors.CodeInvalidArgument))

	_, err = app.profiles.UpdateUsername(ctx, "u1", strings.Repeat("x", 31))
	assert.True(t, errors.Is(err, errors.CodeInvalidArgument))
}

func TestUploadAvatar(t *testing.T) {
	app := newTestApp()
	ctx := context.Background()

	p, err := app.profiles.UploadAvatar(ctx, "u1", strings.NewReader("png"), "image/png")
	require.NoError(t, err)
	assert.Equal(t, "https://storage.example/avatars/1", p.AvatarURL)
	assert.Empty(t, app.files.deleted, "default avatar is not a stored file")

	p, err = app.profiles.UploadAvatar(ctx, "u1", strings.NewReader("png"), "image/png")
	require.NoError(t, err)
	assert.Equal(t, "https://storage.example/avatars/2", p.AvatarURL)
	assert.Equal(t, []string{"https://storage.example/avatars/1"}, app.files.deleted)
}

func TestUploadAvatarKeepsForeignURL(t *testing.T) {
	app := newTestApp()
	ctx := context.Background()

	_, err := app.profiles.UpdateAvatar(ctx, "u1", "https://cdn.example/cat.png")
	require.NoError(t, err)

	p, err := app.profiles.UploadAvatar(ctx, "u1", strings.NewReader("png"), "image/png")
	require.NoError(t, err)
	assert.Equal(t, "https://storage.example/avatars/1", p.AvatarURL)
	assert.Empty(t, app.files.deleted)
}

func TestUploadAvatarRemovesOrphanOnSaveFailure(t *testing.T) {
	app := newTestApp()
	app.store.failOnce("profile.mutate", errors.Transient(nil))

	_, err := app.profiles.UploadAvatar(context.Background(), "u1", strings.NewReader("png"), "image/png")
	assert.True(t, errors.Is(err, errors.CodeTransient))
	assert.Equal(t, []string{"https://storage.example/avatars/1"}, app.files.deleted)
}
