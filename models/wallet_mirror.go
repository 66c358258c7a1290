// models/wallet_mirror.go
package models

import (
	"time"

	"gorm.io/gorm"
)

// WalletMirror mirrors connected-wallet data from the wallet service.
// Table name: wallet_mirrors
type WalletMirror struct {
	ID             string    `gorm:"primaryKey;type:uuid;not null" json:"id"`
	ExternalUserID string    `gorm:"not null;index" json:"external_user_id"`
	Chain          string    `gorm:"type:varchar(64);not null;index" json:"chain"`
	Token          string    `gorm:"type:varchar(64);not null" json:"token"`
	Address        string    `gorm:"type:varchar(128);not null;uniqueIndex" json:"address"` // Primary lookup key
	IsActive       bool      `gorm:"not null" json:"is_active"`
	LastSeenAt     time.Time `gorm:"not null" json:"last_seen_at"`
	CreatedAt      time.Time `gorm:"not null" json:"created_at"`
	UpdatedAt      time.Time `gorm:"not null" json:"updated_at"`

	DeletedAt gorm.DeletedAt `gorm:"index"`
}
