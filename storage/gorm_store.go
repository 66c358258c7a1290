// storage/gorm_store.go
package storage

import (
	"context"
	"errors"
	"math/big"
	"time"

	"mission-ledger-system/models"

	"github.com/google/uuid"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// GormStore implements Store on a Postgres-backed *gorm.DB.
type GormStore struct {
	db *gorm.DB
}

func NewGormStore(db *gorm.DB) *GormStore {
	return &GormStore{db: db}
}

// AutoMigrate creates/updates all ledger tables.
func (s *GormStore) AutoMigrate() error {
	return s.db.AutoMigrate(
		&models.Token{},
		&models.Mission{},
		&models.UserMission{},
		&models.UserTokenBalance{},
		&models.UserLedgerStats{},
		&models.BadgeType{},
		&models.UserBadge{},
		&models.WalletMirror{},
	)
}

func (s *GormStore) WithinTx(ctx context.Context, fn func(Store) error) error {
	return s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		return fn(&GormStore{db: tx})
	})
}

// --- Token catalog ---

func (s *GormStore) GetToken(ctx context.Context, tokenID string) (*models.Token, error) {
	var token models.Token
	err := s.db.WithContext(ctx).Where("id = ?", tokenID).First(&token).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &token, nil
}

func (s *GormStore) GetTokenBySymbol(ctx context.Context, symbol string) (*models.Token, error) {
	var token models.Token
	err := s.db.WithContext(ctx).Where("symbol = ?", symbol).First(&token).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &token, nil
}

func (s *GormStore) ListTokens(ctx context.Context) ([]models.Token, error) {
	var tokens []models.Token
	err := s.db.WithContext(ctx).Order("symbol ASC").Find(&tokens).Error
	return tokens, err
}

func (s *GormStore) UpsertToken(ctx context.Context, token *models.Token) error {
	if token.ID == "" {
		token.ID = uuid.NewString()
	}
	return s.db.WithContext(ctx).Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "symbol"}, {Name: "chain_id"}},
		DoUpdates: clause.AssignmentColumns([]string{"name", "decimals", "address"}),
	}).Create(token).Error
}

// --- Mission catalog ---

func (s *GormStore) GetMission(ctx context.Context, missionID string) (*models.Mission, error) {
	var mission models.Mission
	err := s.db.WithContext(ctx).Where("id = ?", missionID).First(&mission).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &mission, nil
}

func (s *GormStore) GetMissionBySlug(ctx context.Context, slug string) (*models.Mission, error) {
	var mission models.Mission
	err := s.db.WithContext(ctx).Where("slug = ?", slug).First(&mission).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &mission, nil
}

func (s *GormStore) ListMissions(ctx context.Context) ([]models.Mission, error) {
	var missions []models.Mission
	err := s.db.WithContext(ctx).Order("created_at ASC").Find(&missions).Error
	return missions, err
}

func (s *GormStore) CreateMission(ctx context.Context, mission *models.Mission) error {
	if mission.ID == "" {
		mission.ID = uuid.NewString()
	}
	return s.db.WithContext(ctx).Create(mission).Error
}

func (s *GormStore) SaveMission(ctx context.Context, mission *models.Mission) error {
	return s.db.WithContext(ctx).Save(mission).Error
}

// --- User missions ---

func (s *GormStore) GetUserMission(ctx context.Context, userID, missionID string) (*models.UserMission, error) {
	var record models.UserMission
	err := s.db.WithContext(ctx).
		Where("external_user_id = ? AND mission_id = ?", userID, missionID).
		First(&record).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &record, nil
}

func (s *GormStore) ListUserMissions(ctx context.Context, userID string) ([]models.UserMission, error) {
	var records []models.UserMission
	err := s.db.WithContext(ctx).
		Where("external_user_id = ?", userID).
		Order("created_at DESC").
		Find(&records).Error
	return records, err
}

// InsertUserMissionIfAbsent relies on the (external_user_id, mission_id)
// unique index: the insert either lands or hits the conflict and does
// nothing. RowsAffected tells the two cases apart, so two concurrent
// completions can never both win.
func (s *GormStore) InsertUserMissionIfAbsent(ctx context.Context, record *models.UserMission) (bool, *models.UserMission, error) {
	if record.ID == "" {
		record.ID = uuid.NewString()
	}
	res := s.db.WithContext(ctx).Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "external_user_id"}, {Name: "mission_id"}},
		DoNothing: true,
	}).Create(record)
	if res.Error != nil {
		return false, nil, res.Error
	}
	if res.RowsAffected > 0 {
		return true, record, nil
	}
	existing, err := s.GetUserMission(ctx, record.ExternalUserID, record.MissionID)
	if err != nil {
		return false, nil, err
	}
	return false, existing, nil
}

// MarkUserMissionClaimed performs the conditional claimed transition; zero
// rows affected means the row was not in status completed.
func (s *GormStore) MarkUserMissionClaimed(ctx context.Context, userMissionID string, claimedAt time.Time) (bool, error) {
	res := s.db.WithContext(ctx).Model(&models.UserMission{}).
		Where("id = ? AND status = ? AND claimed_at IS NULL", userMissionID, models.UserMissionCompleted).
		Updates(map[string]interface{}{
			"status":     models.UserMissionClaimed,
			"claimed_at": claimedAt,
		})
	if res.Error != nil {
		return false, res.Error
	}
	return res.RowsAffected > 0, nil
}

// --- Token balances ---

func (s *GormStore) GetUserTokenBalance(ctx context.Context, userID, tokenID string) (*models.UserTokenBalance, error) {
	var row models.UserTokenBalance
	err := s.db.WithContext(ctx).
		Where("external_user_id = ? AND token_id = ?", userID, tokenID).
		First(&row).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &row, nil
}

func (s *GormStore) GetAllUserTokenBalances(ctx context.Context, userID string) ([]models.UserTokenBalance, error) {
	var rows []models.UserTokenBalance
	err := s.db.WithContext(ctx).
		Where("external_user_id = ?", userID).
		Find(&rows).Error
	return rows, err
}

// AddToBalance is the ledger's only balance write. The increment happens
// server-side in one statement (insert-or-add on the (user, token) unique
// index), so a concurrent grant can never read a stale balance and overwrite
// another's.
func (s *GormStore) AddToBalance(ctx context.Context, userID, tokenID string, amount *big.Int, faucetClaimAt *time.Time) error {
	now := time.Now().UTC()
	row := models.UserTokenBalance{
		ID:              uuid.NewString(),
		ExternalUserID:  userID,
		TokenID:         tokenID,
		Balance:         amount.String(),
		TotalEarned:     amount.String(),
		LastFaucetClaim: faucetClaimAt,
		CreatedAt:       now,
		UpdatedAt:       now,
	}

	assignments := map[string]interface{}{
		"balance":      gorm.Expr("user_token_balances.balance + EXCLUDED.balance"),
		"total_earned": gorm.Expr("user_token_balances.total_earned + EXCLUDED.total_earned"),
		"updated_at":   now,
	}
	if faucetClaimAt != nil {
		// lastFaucetClaim only ever moves forward
		assignments["last_faucet_claim"] = gorm.Expr(
			"GREATEST(COALESCE(user_token_balances.last_faucet_claim, EXCLUDED.last_faucet_claim), EXCLUDED.last_faucet_claim)")
	}

	return s.db.WithContext(ctx).Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "external_user_id"}, {Name: "token_id"}},
		DoUpdates: clause.Assignments(assignments),
	}).Create(&row).Error
}

// --- Ledger stats + badges ---

func (s *GormStore) GetUserLedgerStats(ctx context.Context, userID string) (*models.UserLedgerStats, error) {
	var stats models.UserLedgerStats
	err := s.db.WithContext(ctx).Where("external_user_id = ?", userID).First(&stats).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &stats, nil
}

func (s *GormStore) IncrementStat(ctx context.Context, userID string, field StatField, at time.Time) (*models.UserLedgerStats, error) {
	stats := models.UserLedgerStats{
		ID:             uuid.NewString(),
		ExternalUserID: userID,
	}
	switch field {
	case StatMissionsCompleted:
		stats.MissionsCompleted = 1
		stats.LastMissionAt = &at
	case StatMissionsClaimed:
		stats.MissionsClaimed = 1
	case StatFaucetClaims:
		stats.FaucetClaims = 1
	}

	assignments := map[string]interface{}{
		string(field): gorm.Expr("user_ledger_stats." + string(field) + " + 1"),
		"updated_at":  at,
	}
	if field == StatMissionsCompleted {
		assignments["last_mission_at"] = at
	}

	err := s.db.WithContext(ctx).Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "external_user_id"}},
		DoUpdates: clause.Assignments(assignments),
	}).Create(&stats).Error
	if err != nil {
		return nil, err
	}
	return s.GetUserLedgerStats(ctx, userID)
}

func (s *GormStore) ListBadgeTypes(ctx context.Context) ([]models.BadgeType, error) {
	var badges []models.BadgeType
	err := s.db.WithContext(ctx).Find(&badges).Error
	return badges, err
}

func (s *GormStore) UpsertBadgeType(ctx context.Context, badge *models.BadgeType) error {
	if badge.ID == "" {
		badge.ID = uuid.NewString()
	}
	return s.db.WithContext(ctx).Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "code"}},
		DoUpdates: clause.AssignmentColumns([]string{"name", "description", "rarity"}),
	}).Create(badge).Error
}

func (s *GormStore) InsertUserBadgeIfAbsent(ctx context.Context, badge *models.UserBadge) (bool, error) {
	if badge.ID == "" {
		badge.ID = uuid.NewString()
	}
	res := s.db.WithContext(ctx).Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "external_user_id"}, {Name: "badge_type_id"}},
		DoNothing: true,
	}).Create(badge)
	if res.Error != nil {
		return false, res.Error
	}
	return res.RowsAffected > 0, nil
}

func (s *GormStore) ListUserBadges(ctx context.Context, userID string) ([]models.UserBadge, error) {
	var badges []models.UserBadge
	err := s.db.WithContext(ctx).
		Where("external_user_id = ?", userID).
		Order("awarded_at DESC").
		Find(&badges).Error
	return badges, err
}

// --- Wallet mirrors ---

func (s *GormStore) UpsertWalletMirrors(ctx context.Context, wallets []models.WalletMirror) error {
	if len(wallets) == 0 {
		return nil
	}
	return s.db.WithContext(ctx).Clauses(clause.OnConflict{
		Columns: []clause.Column{{Name: "address"}},
		DoUpdates: clause.AssignmentColumns([]string{
			"external_user_id", "chain", "token", "is_active", "last_seen_at", "updated_at",
		}),
	}).Create(&wallets).Error
}

func (s *GormStore) ListUserWallets(ctx context.Context, userID string) ([]models.WalletMirror, error) {
	var wallets []models.WalletMirror
	err := s.db.WithContext(ctx).
		Where("external_user_id = ? AND is_active = true", userID).
		Order("chain ASC, token ASC").
		Find(&wallets).Error
	return wallets, err
}

// --- Operational queries ---

func (s *GormStore) CountDripsSince(ctx context.Context, cutoff time.Time) (int64, error) {
	var count int64
	err := s.db.WithContext(ctx).Model(&models.UserTokenBalance{}).
		Where("last_faucet_claim >= ?", cutoff).
		Count(&count).Error
	return count, err
}
