package models

import (
	"time"

	"gorm.io/gorm"
)

// UserLedgerStats tracks per-user activity counters (denormalized for badge
// triggers and profile display)
type UserLedgerStats struct {
	ID             string `gorm:"primaryKey;type:uuid;default:gen_random_uuid()" json:"id"`
	ExternalUserID string `gorm:"uniqueIndex;not null" json:"external_user_id"` // links to profile service

	// Activity counters
	MissionsCompleted int64 `json:"missions_completed" gorm:"default:0"`
	MissionsClaimed   int64 `json:"missions_claimed" gorm:"default:0"`
	FaucetClaims      int64 `json:"faucet_claims" gorm:"default:0"`

	LastMissionAt *time.Time `json:"last_mission_at,omitempty"`

	Timestamps
}

// Timestamps adds GORM auto-times
type Timestamps struct {
	CreatedAt time.Time      `json:"created_at" gorm:"autoCreateTime"`
	UpdatedAt time.Time      `json:"updated_at" gorm:"autoUpdateTime"`
	DeletedAt gorm.DeletedAt `json:"deleted_at,omitempty" gorm:"index"`
}
