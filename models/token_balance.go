package models

import (
	"time"
)

// UserTokenBalance: per (user, token) ledger row. Balance and TotalEarned are
// smallest-unit integers held in NUMERIC(78,0) — wide enough for any 18-decimal
// token amount — and surfaced as decimal strings so they never pass through
// float64 on the way in or out.
type UserTokenBalance struct {
	ID             string `gorm:"primaryKey;type:uuid;default:gen_random_uuid()" json:"id"`
	ExternalUserID string `gorm:"not null;uniqueIndex:idx_balances_user_token" json:"external_user_id"`
	TokenID        string `gorm:"type:uuid;not null;uniqueIndex:idx_balances_user_token" json:"token_id"`

	Balance     string `gorm:"type:numeric(78,0);not null;default:0" json:"balance"`
	TotalEarned string `gorm:"type:numeric(78,0);not null;default:0" json:"total_earned"`

	LastFaucetClaim *time.Time `json:"last_faucet_claim,omitempty"`

	CreatedAt time.Time `gorm:"autoCreateTime" json:"created_at"`
	UpdatedAt time.Time `gorm:"autoUpdateTime" json:"updated_at"`
}

// BalanceWithToken joins a ledger row with its catalog entry for read APIs.
type BalanceWithToken struct {
	UserTokenBalance
	Token Token `json:"token"`
}
