// services/reward.go
package services

import (
	"context"
	"math/big"
	"time"

	"mission-ledger-system/apperr"
	"mission-ledger-system/storage"
	"mission-ledger-system/utils"

	"github.com/sirupsen/logrus"
)

// RewardService is the grant engine: it converts a mission's human-unit
// reward amount into the token's smallest unit and applies it to the user's
// balance ledger. At-most-once semantics come from the callers (the mission
// tracker's insert-or-ignore and the faucet gate's cooldown), not from here.
type RewardService struct {
	Store storage.Store
}

func NewRewardService(store storage.Store) *RewardService {
	return &RewardService{Store: store}
}

// Grant applies humanAmount of the token to the user's balance and
// total-earned counters, returning the applied smallest-unit amount.
func (s *RewardService) Grant(ctx context.Context, userID, tokenID, humanAmount string) (*big.Int, error) {
	return s.grant(ctx, s.Store, userID, tokenID, humanAmount, nil)
}

// grant is the shared path; store may be a transaction-scoped Store, and
// faucetClaimAt, when set, stamps last_faucet_claim atomically with the
// balance increment.
func (s *RewardService) grant(ctx context.Context, store storage.Store, userID, tokenID, humanAmount string, faucetClaimAt *time.Time) (*big.Int, error) {
	if userID == "" {
		return nil, apperr.Validation("user id is required")
	}
	if tokenID == "" {
		return nil, apperr.Validation("token id is required")
	}

	token, err := store.GetToken(ctx, tokenID)
	if err != nil {
		return nil, apperr.Internal("failed to load token", err)
	}
	if token == nil {
		return nil, apperr.NotFound("unknown token %s", tokenID)
	}

	applied, err := utils.ScaleToSmallestUnit(humanAmount, token.Decimals)
	if err != nil {
		return nil, apperr.Validation("reward amount: %v", err)
	}

	if err := store.AddToBalance(ctx, userID, tokenID, applied, faucetClaimAt); err != nil {
		return nil, apperr.Internal("failed to apply reward", err)
	}

	logrus.WithFields(logrus.Fields{
		"user_id":  userID,
		"token":    token.Symbol,
		"human":    humanAmount,
		"smallest": applied.String(),
	}).Info("reward granted")

	return applied, nil
}
