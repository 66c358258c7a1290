package services

import (
	"context"
	"testing"
	"time"

	"mission-ledger-system/apperr"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func fixedClock(at time.Time) func() time.Time {
	return func() time.Time { return at }
}

func TestRequestDrip_FirstClaimSucceeds(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()

	result, err := env.faucet.RequestDrip(ctx, "user-1", env.token18.ID)
	require.NoError(t, err)
	// 10 tokens at 18 decimals
	assert.Equal(t, "10000000000000000000", result.Amount.String())

	balance, err := env.balances.GetBalance(ctx, "user-1", env.token18.ID)
	require.NoError(t, err)
	assert.Equal(t, "10000000000000000000", balance.Balance)
	require.NotNil(t, balance.LastFaucetClaim)
}

func TestRequestDrip_CooldownBoundary(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()

	claimedAt := time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)
	env.stampFaucetClaim(t, "user-1", env.token18.ID, claimedAt)

	t.Run("OneSecondEarlyFails", func(t *testing.T) {
		env.faucet.now = fixedClock(claimedAt.Add(24*time.Hour - time.Second))
		_, err := env.faucet.RequestDrip(ctx, "user-1", env.token18.ID)
		require.Error(t, err)
		appErr := apperr.As(err)
		assert.Equal(t, apperr.KindCooldownActive, appErr.Kind)
		assert.Equal(t, int64(1), appErr.SecondsRemaining)
	})

	t.Run("ExactlyAtBoundarySucceeds", func(t *testing.T) {
		env.faucet.now = fixedClock(claimedAt.Add(24 * time.Hour))
		result, err := env.faucet.RequestDrip(ctx, "user-1", env.token18.ID)
		require.NoError(t, err)
		assert.Equal(t, claimedAt.Add(48*time.Hour), result.NextAvailable)
	})
}

// The cooldown is per user, not per token: a recent drip of one token blocks
// drips of every other token.
func TestRequestDrip_CooldownSpansTokens(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()

	claimedAt := time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)
	env.stampFaucetClaim(t, "user-1", env.token18.ID, claimedAt)

	env.faucet.now = fixedClock(claimedAt.Add(1 * time.Hour))
	_, err := env.faucet.RequestDrip(ctx, "user-1", env.token6.ID)
	require.Error(t, err)
	assert.True(t, apperr.IsKind(err, apperr.KindCooldownActive))
}

func TestRequestDrip_UnknownToken(t *testing.T) {
	env := newTestEnv(t)

	_, err := env.faucet.RequestDrip(context.Background(), "user-1", "missing-token")
	require.Error(t, err)
	assert.True(t, apperr.IsKind(err, apperr.KindNotFound))
}

func TestFaucetStatus_NoRowsEligible(t *testing.T) {
	env := newTestEnv(t)

	status, err := env.faucet.Status(context.Background(), "user-1")
	require.NoError(t, err)
	assert.True(t, status.Eligible)
	assert.Nil(t, status.LastRequest)
	assert.Nil(t, status.NextAvailable)
}

// A user with claims on two tokens is gated by the most recent one.
func TestFaucetStatus_AggregatesMostRecentClaim(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()

	now := time.Date(2026, 3, 2, 12, 0, 0, 0, time.UTC)
	tenHoursAgo := now.Add(-10 * time.Hour)
	thirtyHoursAgo := now.Add(-30 * time.Hour)
	env.stampFaucetClaim(t, "user-1", env.token18.ID, tenHoursAgo)
	env.stampFaucetClaim(t, "user-1", env.token6.ID, thirtyHoursAgo)

	env.faucet.now = fixedClock(now)
	status, err := env.faucet.Status(ctx, "user-1")
	require.NoError(t, err)
	assert.False(t, status.Eligible)
	require.NotNil(t, status.LastRequest)
	assert.Equal(t, tenHoursAgo, status.LastRequest.UTC())
	require.NotNil(t, status.NextAvailable)
	assert.Equal(t, tenHoursAgo.Add(24*time.Hour), status.NextAvailable.UTC())
}

func TestFaucetStatus_EligibleAfterCooldown(t *testing.T) {
	env := newTestEnv(t)

	claimedAt := time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)
	env.stampFaucetClaim(t, "user-1", env.token18.ID, claimedAt)

	env.faucet.now = fixedClock(claimedAt.Add(25 * time.Hour))
	status, err := env.faucet.Status(context.Background(), "user-1")
	require.NoError(t, err)
	assert.True(t, status.Eligible)
}

func TestRequestDrip_SequentialDripsRespectCooldown(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()

	start := time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)
	env.faucet.now = fixedClock(start)

	_, err := env.faucet.RequestDrip(ctx, "user-1", env.token18.ID)
	require.NoError(t, err)

	_, err = env.faucet.RequestDrip(ctx, "user-1", env.token18.ID)
	require.Error(t, err)
	appErr := apperr.As(err)
	assert.Equal(t, apperr.KindCooldownActive, appErr.Kind)
	assert.Equal(t, int64(24*60*60), appErr.SecondsRemaining)

	// another user is unaffected
	_, err = env.faucet.RequestDrip(ctx, "user-2", env.token18.ID)
	require.NoError(t, err)
}

func TestRequestDrip_ValidatesInput(t *testing.T) {
	env := newTestEnv(t)

	_, err := env.faucet.RequestDrip(context.Background(), "", env.token18.ID)
	assert.True(t, apperr.IsKind(err, apperr.KindValidation))

	_, err = env.faucet.RequestDrip(context.Background(), "user-1", "")
	assert.True(t, apperr.IsKind(err, apperr.KindValidation))
}
