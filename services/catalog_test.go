package services

import (
	"context"
	"testing"

	"mission-ledger-system/apperr"
	"mission-ledger-system/models"
	"mission-ledger-system/storage"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCatalogSeed_IsIdempotent(t *testing.T) {
	store := storage.NewMemStore()
	catalog := NewCatalogService(store)
	ctx := context.Background()

	require.NoError(t, catalog.Seed(ctx))
	require.NoError(t, catalog.Seed(ctx))

	tokens, err := store.ListTokens(ctx)
	require.NoError(t, err)
	assert.Len(t, tokens, len(models.SeedTokens))

	missions, err := store.ListMissions(ctx)
	require.NoError(t, err)
	assert.Len(t, missions, len(models.SeedMissionList))

	// token-rewarding seeds resolved their reward token by symbol
	for _, m := range missions {
		if m.RewardType == models.MissionRewardToken {
			assert.NotEmpty(t, m.RewardTokenID, "mission %s missing reward token", m.Slug)
		}
	}
}

func TestCreateMission_ValidatesRewardSpec(t *testing.T) {
	env := newTestEnv(t)
	catalog := NewCatalogService(env.store)
	ctx := context.Background()

	t.Run("UnknownRewardToken", func(t *testing.T) {
		_, err := catalog.CreateMission(ctx, CreateMissionInput{
			Title:         "Ghost Reward",
			RewardType:    models.MissionRewardToken,
			RewardTokenID: "11111111-1111-1111-1111-111111111111",
			RewardAmount:  "5",
		})
		require.Error(t, err)
		assert.True(t, apperr.IsKind(err, apperr.KindNotFound))
	})

	t.Run("AmountWithTooMuchPrecision", func(t *testing.T) {
		_, err := catalog.CreateMission(ctx, CreateMissionInput{
			Title:         "Dust Reward",
			RewardType:    models.MissionRewardToken,
			RewardTokenID: env.token6.ID,
			RewardAmount:  "0.0000001", // finer than 6 decimals
		})
		require.Error(t, err)
		assert.True(t, apperr.IsKind(err, apperr.KindValidation))
	})

	t.Run("MissingTokenID", func(t *testing.T) {
		_, err := catalog.CreateMission(ctx, CreateMissionInput{
			Title:      "No Token",
			RewardType: models.MissionRewardToken,
		})
		require.Error(t, err)
		assert.True(t, apperr.IsKind(err, apperr.KindValidation))
	})

	t.Run("ValidMissionSlugged", func(t *testing.T) {
		mission, err := catalog.CreateMission(ctx, CreateMissionInput{
			Title:         "Daily Login Streak",
			RewardType:    models.MissionRewardToken,
			RewardTokenID: env.token18.ID,
			RewardAmount:  "2.5",
		})
		require.NoError(t, err)
		assert.Equal(t, "daily-login-streak", mission.Slug)
	})

	t.Run("DuplicateTitleRejected", func(t *testing.T) {
		_, err := catalog.CreateMission(ctx, CreateMissionInput{
			Title:      "Daily Login Streak",
			RewardType: models.MissionRewardNone,
		})
		require.Error(t, err)
		assert.True(t, apperr.IsKind(err, apperr.KindInvalidState))
	})
}

func TestAttachMissionIcon(t *testing.T) {
	env := newTestEnv(t)
	catalog := NewCatalogService(env.store)
	ctx := context.Background()

	mission, err := catalog.AttachMissionIcon(ctx, env.mission.ID, "https://cdn.example/missions/icon.png")
	require.NoError(t, err)
	assert.Equal(t, "https://cdn.example/missions/icon.png", mission.IconURL)

	_, err = catalog.AttachMissionIcon(ctx, "missing", "https://cdn.example/x.png")
	assert.True(t, apperr.IsKind(err, apperr.KindNotFound))
}
