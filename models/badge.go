package models

import (
	"time"
)

// BadgeType: static config (loaded from DB or JSON)
type BadgeType struct {
	ID          string `gorm:"primaryKey;type:uuid;default:gen_random_uuid()"`
	Code        string `gorm:"uniqueIndex;not null"` // e.g., "FIRST_MISSION", "FAUCET_REGULAR"
	Name        string `gorm:"not null"`
	Description string
	IconURL     string           `gorm:"type:text"` // e.g., R2 URL to SVG/png
	Rarity      string           `gorm:"type:varchar(16);default:'common'"` // common, rare, epic, legendary
	Threshold   map[string]int64 `gorm:"serializer:json;type:jsonb"` // e.g., {"missions_completed": 5}
	CreatedAt   time.Time        `gorm:"autoCreateTime"`
}

// UserBadge: awarded instance (many-to-many)
type UserBadge struct {
	ID             string    `gorm:"primaryKey;type:uuid;default:gen_random_uuid()"`
	ExternalUserID string    `gorm:"uniqueIndex:idx_user_badges_user_type;not null"`
	BadgeTypeID    string    `gorm:"uniqueIndex:idx_user_badges_user_type;not null"`
	AwardedAt      time.Time `gorm:"autoCreateTime"`
	Metadata       string    `gorm:"type:jsonb;default:'{}'"` // e.g., {"mission_id": "..."}
}

// Predefined badge triggers, keyed on ledger counters
var BadgeTriggers = []BadgeType{
	{
		Code:        "FIRST_MISSION",
		Name:        "Mission Rookie",
		Description: "Completed your first mission",
		Rarity:      "common",
		Threshold:   map[string]int64{"missions_completed": 1},
	},
	{
		Code:        "MISSION_5",
		Name:        "Mission Runner",
		Description: "Completed 5 missions",
		Rarity:      "rare",
		Threshold:   map[string]int64{"missions_completed": 5},
	},
	{
		Code:        "FAUCET_FIRST",
		Name:        "First Drip",
		Description: "Claimed the faucet for the first time",
		Rarity:      "common",
		Threshold:   map[string]int64{"faucet_claims": 1},
	},
	{
		Code:        "FAUCET_REGULAR",
		Name:        "Regular Visitor",
		Description: "Claimed the faucet 7 times",
		Rarity:      "rare",
		Threshold:   map[string]int64{"faucet_claims": 7},
	},
	{
		Code:        "COLLECTOR",
		Name:        "Token Collector",
		Description: "Hold balances in 3 different tokens",
		Rarity:      "epic",
		Threshold:   map[string]int64{"tokens_held": 3},
	},
}
