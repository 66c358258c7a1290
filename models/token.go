package models

import (
	"time"
)

// Token: static catalog entry for a fungible token (immutable after seeding)
type Token struct {
	ID       string `gorm:"primaryKey;type:uuid;default:gen_random_uuid()" json:"id"`
	Symbol   string `gorm:"size:16;not null;uniqueIndex:idx_tokens_symbol_chain" json:"symbol"`
	Name     string `gorm:"not null" json:"name"`
	ChainID  int64  `gorm:"not null;uniqueIndex:idx_tokens_symbol_chain" json:"chain_id"`
	Decimals string `gorm:"size:4;not null;default:'18'" json:"decimals"` // stored as string, matches catalog feed
	Address  string `gorm:"size:128" json:"address"`

	CreatedAt time.Time `gorm:"autoCreateTime" json:"created_at"`
}

// SeedTokens: default catalog (loaded idempotently at startup)
var SeedTokens = []Token{
	{
		Symbol:   "JBC",
		Name:     "JIB Coin",
		ChainID:  8899,
		Decimals: "18",
		Address:  "0x1000000000000000000000000000000000000001",
	},
	{
		Symbol:   "KUB",
		Name:     "Bitkub Coin",
		ChainID:  96,
		Decimals: "18",
		Address:  "0x1000000000000000000000000000000000000002",
	},
	{
		Symbol:   "USDT",
		Name:     "Tether USD",
		ChainID:  8899,
		Decimals: "6",
		Address:  "0x1000000000000000000000000000000000000003",
	},
}
