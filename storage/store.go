// storage/store.go
package storage

import (
	"context"
	"math/big"
	"time"

	"mission-ledger-system/models"
)

// StatField names a UserLedgerStats counter column. Kept as an enum so the
// GORM implementation never interpolates caller strings into SQL.
type StatField string

const (
	StatMissionsCompleted StatField = "missions_completed"
	StatMissionsClaimed   StatField = "missions_claimed"
	StatFaucetClaims      StatField = "faucet_claims"
)

// Store is the persistence port for the mission & reward ledger. Services
// receive it by injection; lookups return (nil, nil) when the record does not
// exist so callers decide which absences are errors.
//
// The three mutation primitives carry the concurrency contract:
//   - InsertUserMissionIfAbsent: insert-or-ignore on (user, mission); exactly
//     one of N concurrent callers observes inserted=true.
//   - MarkUserMissionClaimed: conditional update keyed on status=completed;
//     updated=false means the transition already happened (or never could).
//   - AddToBalance: single-statement upsert with server-side increment, so
//     concurrent grants to the same (user, token) serialize in the database.
type Store interface {
	// WithinTx runs fn against a transaction-scoped Store; all writes inside
	// commit or roll back together. Nested calls join the outer transaction.
	WithinTx(ctx context.Context, fn func(Store) error) error

	// Token catalog
	GetToken(ctx context.Context, tokenID string) (*models.Token, error)
	GetTokenBySymbol(ctx context.Context, symbol string) (*models.Token, error)
	ListTokens(ctx context.Context) ([]models.Token, error)
	UpsertToken(ctx context.Context, token *models.Token) error

	// Mission catalog
	GetMission(ctx context.Context, missionID string) (*models.Mission, error)
	GetMissionBySlug(ctx context.Context, slug string) (*models.Mission, error)
	ListMissions(ctx context.Context) ([]models.Mission, error)
	CreateMission(ctx context.Context, mission *models.Mission) error
	SaveMission(ctx context.Context, mission *models.Mission) error

	// User missions
	GetUserMission(ctx context.Context, userID, missionID string) (*models.UserMission, error)
	ListUserMissions(ctx context.Context, userID string) ([]models.UserMission, error)
	InsertUserMissionIfAbsent(ctx context.Context, record *models.UserMission) (inserted bool, existing *models.UserMission, err error)
	MarkUserMissionClaimed(ctx context.Context, userMissionID string, claimedAt time.Time) (updated bool, err error)

	// Token balances
	GetUserTokenBalance(ctx context.Context, userID, tokenID string) (*models.UserTokenBalance, error)
	GetAllUserTokenBalances(ctx context.Context, userID string) ([]models.UserTokenBalance, error)
	AddToBalance(ctx context.Context, userID, tokenID string, amount *big.Int, faucetClaimAt *time.Time) error

	// Ledger stats + badges
	GetUserLedgerStats(ctx context.Context, userID string) (*models.UserLedgerStats, error)
	IncrementStat(ctx context.Context, userID string, field StatField, at time.Time) (*models.UserLedgerStats, error)
	ListBadgeTypes(ctx context.Context) ([]models.BadgeType, error)
	UpsertBadgeType(ctx context.Context, badge *models.BadgeType) error
	InsertUserBadgeIfAbsent(ctx context.Context, badge *models.UserBadge) (inserted bool, err error)
	ListUserBadges(ctx context.Context, userID string) ([]models.UserBadge, error)

	// Wallet mirrors
	UpsertWalletMirrors(ctx context.Context, wallets []models.WalletMirror) error
	ListUserWallets(ctx context.Context, userID string) ([]models.WalletMirror, error)

	// CountDripsSince reports faucet drips recorded after the cutoff, for the
	// operational snapshot job.
	CountDripsSince(ctx context.Context, cutoff time.Time) (int64, error)
}
