package models

import (
	"time"

	"gorm.io/gorm"
)

// UserMissionStatus follows pending → completed → claimed, monotonic.
// "pending" is the implicit no-row state; persisted rows start at completed.
type UserMissionStatus string

const (
	UserMissionPending   UserMissionStatus = "pending"
	UserMissionCompleted UserMissionStatus = "completed"
	UserMissionClaimed   UserMissionStatus = "claimed"
)

// UserMission: per-user progress record for a mission. At most one row per
// (user, mission) — the composite unique index is what makes concurrent
// completions settle on a single winner.
type UserMission struct {
	ID             string            `gorm:"primaryKey;type:uuid;default:gen_random_uuid()" json:"id"`
	ExternalUserID string            `gorm:"not null;uniqueIndex:idx_user_missions_user_mission" json:"external_user_id"`
	MissionID      string            `gorm:"type:uuid;not null;uniqueIndex:idx_user_missions_user_mission" json:"mission_id"`
	Status         UserMissionStatus `gorm:"type:varchar(16);not null;default:'completed'" json:"status"`
	Proof          string            `gorm:"type:jsonb;default:'{}'" json:"proof,omitempty"`
	CompletedAt    *time.Time        `json:"completed_at,omitempty"`
	ClaimedAt      *time.Time        `json:"claimed_at,omitempty"`

	CreatedAt time.Time      `gorm:"autoCreateTime" json:"created_at"`
	UpdatedAt time.Time      `gorm:"autoUpdateTime" json:"updated_at"`
	DeletedAt gorm.DeletedAt `gorm:"index" json:"-"`
}
