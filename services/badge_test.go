package services

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func badgeCodes(t *testing.T, env *testEnv, userID string) map[string]bool {
	t.Helper()
	ctx := context.Background()

	badges, err := env.badges.ListForUser(ctx, userID)
	require.NoError(t, err)

	types, err := env.store.ListBadgeTypes(ctx)
	require.NoError(t, err)
	nameByID := map[string]string{}
	for _, bt := range types {
		nameByID[bt.ID] = bt.Code
	}

	out := map[string]bool{}
	for _, b := range badges {
		out[nameByID[b.BadgeTypeID]] = true
	}
	return out
}

func TestBadges_AwardedOnFirstMission(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()

	_, err := env.missions.Complete(ctx, "user-1", env.mission.ID, "{}")
	require.NoError(t, err)

	codes := badgeCodes(t, env, "user-1")
	assert.True(t, codes["FIRST_MISSION"])
	assert.False(t, codes["MISSION_5"])
}

func TestBadges_AwardIsIdempotent(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()

	_, err := env.missions.Complete(ctx, "user-1", env.mission.ID, "{}")
	require.NoError(t, err)

	// repeated sweeps never duplicate an award
	require.NoError(t, env.badges.AutoAwardBadges(ctx, "user-1"))
	require.NoError(t, env.badges.AutoAwardBadges(ctx, "user-1"))

	badges, err := env.badges.ListForUser(ctx, "user-1")
	require.NoError(t, err)

	seen := map[string]int{}
	for _, b := range badges {
		seen[b.BadgeTypeID]++
	}
	for id, count := range seen {
		assert.Equal(t, 1, count, "badge %s awarded more than once", id)
	}
}

func TestBadges_FaucetTriggers(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()

	_, err := env.faucet.RequestDrip(ctx, "user-1", env.token18.ID)
	require.NoError(t, err)

	codes := badgeCodes(t, env, "user-1")
	assert.True(t, codes["FAUCET_FIRST"])
	assert.False(t, codes["FAUCET_REGULAR"])
}

func TestBadges_NoAwardsForInactiveUser(t *testing.T) {
	env := newTestEnv(t)

	require.NoError(t, env.badges.AutoAwardBadges(context.Background(), "user-ghost"))
	badges, err := env.badges.ListForUser(context.Background(), "user-ghost")
	require.NoError(t, err)
	assert.Empty(t, badges)
}
