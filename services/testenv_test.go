package services

import (
	"context"
	"math/big"
	"testing"
	"time"

	"mission-ledger-system/models"
	"mission-ledger-system/storage"

	"github.com/stretchr/testify/require"
)

// testEnv wires the full service stack against an in-memory store with one
// 18-decimal token, one 6-decimal token, and a 100-token reward mission.
type testEnv struct {
	store    *storage.MemStore
	rewards  *RewardService
	badges   *BadgeService
	missions *MissionService
	balances *BalanceService
	faucet   *FaucetService

	token18 models.Token
	token6  models.Token
	mission models.Mission
}

func newTestEnv(t *testing.T) *testEnv {
	t.Helper()
	ctx := context.Background()
	store := storage.NewMemStore()

	token18 := models.Token{Symbol: "JBC", Name: "JIB Coin", ChainID: 8899, Decimals: "18"}
	require.NoError(t, store.UpsertToken(ctx, &token18))
	token6 := models.Token{Symbol: "USDT", Name: "Tether USD", ChainID: 8899, Decimals: "6"}
	require.NoError(t, store.UpsertToken(ctx, &token6))

	mission := models.Mission{
		Slug:          "first-steps",
		Title:         "First Steps",
		RewardType:    models.MissionRewardToken,
		RewardTokenID: token18.ID,
		RewardAmount:  "100",
	}
	require.NoError(t, store.CreateMission(ctx, &mission))

	rewards := NewRewardService(store)
	badges := NewBadgeService(store)
	require.NoError(t, badges.SeedBadgeTypes(ctx))

	return &testEnv{
		store:    store,
		rewards:  rewards,
		badges:   badges,
		missions: NewMissionService(store, rewards, badges),
		balances: NewBalanceService(store),
		faucet:   NewFaucetService(store, rewards, badges, "10", DefaultFaucetCooldown),
		token18:  token18,
		token6:   token6,
		mission:  mission,
	}
}

// addMission registers an extra mission in the catalog.
func (e *testEnv) addMission(t *testing.T, slug string, rewardTokenID, rewardAmount string) models.Mission {
	t.Helper()
	mission := models.Mission{
		Slug:       slug,
		Title:      slug,
		RewardType: models.MissionRewardNone,
	}
	if rewardTokenID != "" {
		mission.RewardType = models.MissionRewardToken
		mission.RewardTokenID = rewardTokenID
		mission.RewardAmount = rewardAmount
	}
	require.NoError(t, e.store.CreateMission(context.Background(), &mission))
	return mission
}

// stampFaucetClaim plants a balance row whose last faucet claim happened at
// the given time.
func (e *testEnv) stampFaucetClaim(t *testing.T, userID, tokenID string, at time.Time) {
	t.Helper()
	claim := at
	require.NoError(t, e.store.AddToBalance(context.Background(), userID, tokenID, big.NewInt(1), &claim))
}
