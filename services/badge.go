// services/badge.go
package services

import (
	"context"

	"mission-ledger-system/models"
	"mission-ledger-system/storage"
	"mission-ledger-system/utils"

	"github.com/sirupsen/logrus"
)

type BadgeService struct {
	Store storage.Store
}

func NewBadgeService(store storage.Store) *BadgeService {
	return &BadgeService{Store: store}
}

// SeedBadgeTypes loads the predefined trigger catalog (idempotent).
func (s *BadgeService) SeedBadgeTypes(ctx context.Context) error {
	for i := range models.BadgeTriggers {
		badge := models.BadgeTriggers[i]
		if err := s.Store.UpsertBadgeType(ctx, &badge); err != nil {
			return err
		}
	}
	return nil
}

// AutoAwardBadges checks all badge triggers for a user after a ledger update
func (s *BadgeService) AutoAwardBadges(ctx context.Context, userID string) error {
	stats, err := s.Store.GetUserLedgerStats(ctx, userID)
	if err != nil {
		return err
	}
	if stats == nil {
		stats = &models.UserLedgerStats{ExternalUserID: userID}
	}

	tokensHeld, err := s.countTokensHeld(ctx, userID)
	if err != nil {
		return err
	}

	badges, err := s.Store.ListBadgeTypes(ctx)
	if err != nil {
		return err
	}

	for _, trigger := range badges {
		if !s.meetsThreshold(stats, tokensHeld, trigger.Threshold) {
			continue
		}
		awarded, err := s.Store.InsertUserBadgeIfAbsent(ctx, &models.UserBadge{
			ExternalUserID: userID,
			BadgeTypeID:    trigger.ID,
			Metadata:       "{}",
		})
		if err != nil {
			return err
		}
		if awarded {
			logrus.WithFields(logrus.Fields{
				"user_id": userID,
				"badge":   trigger.Code,
			}).Info("🎖️ badge awarded")
		}
	}
	return nil
}

func (s *BadgeService) ListForUser(ctx context.Context, userID string) ([]models.UserBadge, error) {
	return s.Store.ListUserBadges(ctx, userID)
}

func (s *BadgeService) countTokensHeld(ctx context.Context, userID string) (int64, error) {
	rows, err := s.Store.GetAllUserTokenBalances(ctx, userID)
	if err != nil {
		return 0, err
	}
	var held int64
	for i := range rows {
		balance, err := utils.ParseSmallestUnit(rows[i].Balance)
		if err != nil {
			continue
		}
		if balance.Sign() > 0 {
			held++
		}
	}
	return held, nil
}

func (s *BadgeService) meetsThreshold(stats *models.UserLedgerStats, tokensHeld int64, req map[string]int64) bool {
	for key, required := range req {
		switch key {
		case "missions_completed":
			if stats.MissionsCompleted < required {
				return false
			}
		case "missions_claimed":
			if stats.MissionsClaimed < required {
				return false
			}
		case "faucet_claims":
			if stats.FaucetClaims < required {
				return false
			}
		case "tokens_held":
			if tokensHeld < required {
				return false
			}
		}
	}
	return true
}
