// services/faucet.go
package services

import (
	"context"
	"math/big"
	"sync"
	"time"

	"mission-ledger-system/apperr"
	"mission-ledger-system/storage"

	"github.com/sirupsen/logrus"
)

// DefaultFaucetCooldown is the wait between drips for a user.
const DefaultFaucetCooldown = 24 * time.Hour

// FaucetService gates the token faucet. The cooldown is per user across all
// tokens: a drip of any token starts the clock for every token. (The status
// endpoint has no token dimension, so this is the only policy both endpoints
// can share.)
type FaucetService struct {
	Store      storage.Store
	Rewards    *RewardService
	Badges     *BadgeService
	DripAmount string // human units of the dripped token
	Cooldown   time.Duration

	// now is swapped in tests to pin the cooldown boundary
	now func() time.Time

	userLocks sync.Map // userID → *sync.Mutex
}

func NewFaucetService(store storage.Store, rewards *RewardService, badges *BadgeService, dripAmount string, cooldown time.Duration) *FaucetService {
	if cooldown <= 0 {
		cooldown = DefaultFaucetCooldown
	}
	return &FaucetService{
		Store:      store,
		Rewards:    rewards,
		Badges:     badges,
		DripAmount: dripAmount,
		Cooldown:   cooldown,
		now:        time.Now,
	}
}

func (s *FaucetService) lockUser(userID string) *sync.Mutex {
	mu, _ := s.userLocks.LoadOrStore(userID, &sync.Mutex{})
	return mu.(*sync.Mutex)
}

// DripResult reports a successful faucet drip.
type DripResult struct {
	Amount        *big.Int
	NextAvailable time.Time
}

// RequestDrip grants the configured drip amount of the token unless the user
// dripped any token within the cooldown window. The eligibility check spans
// all of the user's balance rows, so a per-user mutex serializes it with the
// grant — a single conditional UPDATE cannot cover a multi-row read.
func (s *FaucetService) RequestDrip(ctx context.Context, userID, tokenID string) (*DripResult, error) {
	if userID == "" {
		return nil, apperr.Validation("user id is required")
	}
	if tokenID == "" {
		return nil, apperr.Validation("token id is required")
	}

	mu := s.lockUser(userID)
	mu.Lock()
	defer mu.Unlock()

	now := s.now().UTC()
	lastClaim, err := s.mostRecentClaim(ctx, userID)
	if err != nil {
		return nil, err
	}
	if lastClaim != nil {
		next := lastClaim.Add(s.Cooldown)
		if now.Before(next) {
			remaining := next.Sub(now)
			// ceiling: 1ns short of eligibility still reports a full second
			seconds := int64((remaining + time.Second - 1) / time.Second)
			return nil, apperr.CooldownActive(seconds)
		}
	}

	var applied *big.Int
	err = s.Store.WithinTx(ctx, func(tx storage.Store) error {
		applied, err = s.Rewards.grant(ctx, tx, userID, tokenID, s.DripAmount, &now)
		if err != nil {
			return err
		}
		if _, err := tx.IncrementStat(ctx, userID, storage.StatFaucetClaims, now); err != nil {
			return apperr.Internal("failed to bump faucet counter", err)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	logrus.WithFields(logrus.Fields{
		"user_id": userID,
		"token":   tokenID,
		"amount":  applied.String(),
	}).Info("faucet drip granted")

	if err := s.Badges.AutoAwardBadges(ctx, userID); err != nil {
		logrus.WithError(err).Warn("badge sweep failed after drip")
	}

	return &DripResult{Amount: applied, NextAvailable: now.Add(s.Cooldown)}, nil
}

// FaucetStatus is the eligibility report for a user.
type FaucetStatus struct {
	Eligible      bool       `json:"eligible"`
	LastRequest   *time.Time `json:"last_request,omitempty"`
	NextAvailable *time.Time `json:"next_available,omitempty"`
}

// Status derives eligibility from the most recent faucet claim across all of
// the user's balance rows. A user with no rows is eligible.
func (s *FaucetService) Status(ctx context.Context, userID string) (*FaucetStatus, error) {
	if userID == "" {
		return nil, apperr.Validation("user id is required")
	}

	lastClaim, err := s.mostRecentClaim(ctx, userID)
	if err != nil {
		return nil, err
	}
	if lastClaim == nil {
		return &FaucetStatus{Eligible: true}, nil
	}

	next := lastClaim.Add(s.Cooldown)
	return &FaucetStatus{
		Eligible:      !s.now().UTC().Before(next),
		LastRequest:   lastClaim,
		NextAvailable: &next,
	}, nil
}

func (s *FaucetService) mostRecentClaim(ctx context.Context, userID string) (*time.Time, error) {
	rows, err := s.Store.GetAllUserTokenBalances(ctx, userID)
	if err != nil {
		return nil, apperr.Internal("failed to load balances", err)
	}
	var latest *time.Time
	for i := range rows {
		claim := rows[i].LastFaucetClaim
		if claim != nil && (latest == nil || claim.After(*latest)) {
			latest = claim
		}
	}
	return latest, nil
}
