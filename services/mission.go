// services/mission.go
package services

import (
	"context"
	"math/big"
	"time"

	"mission-ledger-system/apperr"
	"mission-ledger-system/models"
	"mission-ledger-system/storage"

	"github.com/sirupsen/logrus"
)

// MissionService is the user-mission tracker: it owns the
// pending → completed → claimed state machine and hands rewards to the grant
// engine on the completed transition.
//
// Rewards are granted at completion; claim only acknowledges. The front end
// labels the claim button "claim reward", but value moved when the mission
// completed — keep it that way unless the product decides otherwise (the
// tests pin this).
type MissionService struct {
	Store   storage.Store
	Rewards *RewardService
	Badges  *BadgeService
}

func NewMissionService(store storage.Store, rewards *RewardService, badges *BadgeService) *MissionService {
	return &MissionService{Store: store, Rewards: rewards, Badges: badges}
}

// CompleteResult reports what a Complete call did.
type CompleteResult struct {
	UserMission   *models.UserMission
	RewardGranted *big.Int // nil when no reward moved (repeat call or rewardless mission)
	AlreadyDone   bool
}

// Complete records a mission completion for the user. The first qualifying
// call creates the row and grants the reward; any repeat is a ledger no-op
// that returns the existing row. The unique (user, mission) index decides the
// winner under concurrency, and row + grant + counter commit atomically.
func (s *MissionService) Complete(ctx context.Context, userID, missionID, proof string) (*CompleteResult, error) {
	if userID == "" {
		return nil, apperr.Validation("user id is required")
	}
	if missionID == "" {
		return nil, apperr.Validation("mission id is required")
	}

	mission, err := s.Store.GetMission(ctx, missionID)
	if err != nil {
		return nil, apperr.Internal("failed to load mission", err)
	}
	if mission == nil {
		return nil, apperr.NotFound("unknown mission %s", missionID)
	}

	if proof == "" {
		proof = "{}"
	}
	now := time.Now().UTC()
	record := &models.UserMission{
		ExternalUserID: userID,
		MissionID:      missionID,
		Status:         models.UserMissionCompleted,
		Proof:          proof,
		CompletedAt:    &now,
	}

	result := &CompleteResult{}
	err = s.Store.WithinTx(ctx, func(tx storage.Store) error {
		inserted, row, err := tx.InsertUserMissionIfAbsent(ctx, record)
		if err != nil {
			return apperr.Internal("failed to record completion", err)
		}
		result.UserMission = row
		if !inserted {
			// lost the race or repeat call: ledger untouched
			result.AlreadyDone = true
			return nil
		}

		if mission.RewardType == models.MissionRewardToken {
			applied, err := s.Rewards.grant(ctx, tx, userID, mission.RewardTokenID, mission.RewardAmount, nil)
			if err != nil {
				return err
			}
			result.RewardGranted = applied
		}

		if _, err := tx.IncrementStat(ctx, userID, storage.StatMissionsCompleted, now); err != nil {
			return apperr.Internal("failed to bump mission counter", err)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	if !result.AlreadyDone {
		logrus.WithFields(logrus.Fields{
			"user_id": userID,
			"mission": mission.Slug,
		}).Info("mission completed")
		if err := s.Badges.AutoAwardBadges(ctx, userID); err != nil {
			logrus.WithError(err).Warn("badge sweep failed after completion")
		}
	}
	return result, nil
}

// Claim acknowledges a completed mission. It mutates only status/claimedAt —
// no balance is touched here.
func (s *MissionService) Claim(ctx context.Context, userID, missionID string) (*models.UserMission, error) {
	if userID == "" {
		return nil, apperr.Validation("user id is required")
	}
	if missionID == "" {
		return nil, apperr.Validation("mission id is required")
	}

	row, err := s.Store.GetUserMission(ctx, userID, missionID)
	if err != nil {
		return nil, apperr.Internal("failed to load user mission", err)
	}
	if row == nil {
		return nil, apperr.NotFound("mission %s has not been completed by user %s", missionID, userID)
	}
	if row.Status == models.UserMissionPending {
		// a persisted row should never be pending, but guard anyway
		return nil, apperr.InvalidState("mission %s is not completed yet", missionID)
	}
	if row.Status == models.UserMissionClaimed || row.ClaimedAt != nil {
		return nil, apperr.InvalidState("mission %s was already claimed", missionID)
	}

	now := time.Now().UTC()
	updated, err := s.Store.MarkUserMissionClaimed(ctx, row.ID, now)
	if err != nil {
		return nil, apperr.Internal("failed to claim mission", err)
	}
	if !updated {
		// concurrent claim won the conditional update
		return nil, apperr.InvalidState("mission %s was already claimed", missionID)
	}

	if _, err := s.Store.IncrementStat(ctx, userID, storage.StatMissionsClaimed, now); err != nil {
		logrus.WithError(err).Warn("failed to bump claim counter")
	}

	row.Status = models.UserMissionClaimed
	row.ClaimedAt = &now
	return row, nil
}

// MissionWithStatus pairs a catalog entry with the caller's progress.
type MissionWithStatus struct {
	Mission models.Mission           `json:"mission"`
	Status  models.UserMissionStatus `json:"status"`
	Record  *models.UserMission      `json:"record,omitempty"`
}

// ListForUser returns the mission catalog annotated with the user's progress;
// missions with no row report pending.
func (s *MissionService) ListForUser(ctx context.Context, userID string) ([]MissionWithStatus, error) {
	missions, err := s.Store.ListMissions(ctx)
	if err != nil {
		return nil, apperr.Internal("failed to list missions", err)
	}
	records, err := s.Store.ListUserMissions(ctx, userID)
	if err != nil {
		return nil, apperr.Internal("failed to list user missions", err)
	}

	byMission := make(map[string]*models.UserMission, len(records))
	for i := range records {
		byMission[records[i].MissionID] = &records[i]
	}

	out := make([]MissionWithStatus, 0, len(missions))
	for _, m := range missions {
		entry := MissionWithStatus{Mission: m, Status: models.UserMissionPending}
		if rec, ok := byMission[m.ID]; ok {
			entry.Status = rec.Status
			entry.Record = rec
		}
		out = append(out, entry)
	}
	return out, nil
}
