package models

import (
	"time"

	"gorm.io/gorm"
)

// MissionRewardType indicates whether completing the mission pays out tokens
type MissionRewardType string

const (
	MissionRewardToken MissionRewardType = "token"
	MissionRewardNone  MissionRewardType = "none"
)

// Mission represents a catalog-defined task with an associated reward spec.
// RewardAmount is a human-unit decimal string; scaling by the token's
// decimals happens at grant time, never here.
type Mission struct {
	ID            string            `gorm:"primaryKey;type:uuid;default:gen_random_uuid()" json:"id"`
	Slug          string            `gorm:"uniqueIndex;not null" json:"slug"`
	Title         string            `gorm:"not null" json:"title"`
	Description   string            `gorm:"type:text" json:"description"`
	IconURL       string            `gorm:"type:text" json:"icon_url"`
	RewardType    MissionRewardType `gorm:"type:varchar(16);not null;default:'none'" json:"reward_type"`
	RewardTokenID string            `gorm:"type:uuid" json:"reward_token_id,omitempty"`
	RewardAmount  string            `gorm:"size:80" json:"reward_amount,omitempty"`

	CreatedAt time.Time      `json:"created_at"`
	UpdatedAt time.Time      `json:"updated_at"`
	DeletedAt gorm.DeletedAt `gorm:"index" json:"-"`
}

// SeedMissions: default mission catalog. Reward token ids are resolved by
// symbol at seed time.
type MissionSeed struct {
	Slug              string
	Title             string
	Description       string
	RewardType        MissionRewardType
	RewardTokenSymbol string
	RewardAmount      string
}

var SeedMissionList = []MissionSeed{
	{
		Slug:              "first-steps",
		Title:             "First Steps",
		Description:       "Connect a wallet and open your dashboard",
		RewardType:        MissionRewardToken,
		RewardTokenSymbol: "JBC",
		RewardAmount:      "100",
	},
	{
		Slug:              "meet-the-mascot",
		Title:             "Meet The Mascot",
		Description:       "Say hello to MeeBot",
		RewardType:        MissionRewardToken,
		RewardTokenSymbol: "JBC",
		RewardAmount:      "25",
	},
	{
		Slug:              "explorer",
		Title:             "Explorer",
		Description:       "Visit every section of the app",
		RewardType:        MissionRewardToken,
		RewardTokenSymbol: "KUB",
		RewardAmount:      "0.5",
	},
	{
		Slug:        "profile-complete",
		Title:       "Profile Complete",
		Description: "Fill out your profile",
		RewardType:  MissionRewardNone,
	},
}
