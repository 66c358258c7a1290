// storage/mem_store.go
package storage

import (
	"context"
	"math/big"
	"sort"
	"sync"
	"time"

	"mission-ledger-system/models"

	"github.com/google/uuid"
)

// MemStore is an in-memory Store used by tests and local development. It
// honors the same contracts as the Postgres implementation: insert-or-ignore
// on (user, mission), conditional claim transitions, and serialized balance
// increments.
type MemStore struct {
	mu   sync.Mutex
	txMu sync.Mutex

	tokens       map[string]models.Token
	missions     map[string]models.Mission
	userMissions map[string]models.UserMission // key user|mission
	balances     map[string]models.UserTokenBalance
	stats        map[string]models.UserLedgerStats
	badgeTypes   map[string]models.BadgeType // key code
	userBadges   map[string]models.UserBadge // key user|badgeType
	wallets      map[string]models.WalletMirror
}

func NewMemStore() *MemStore {
	return &MemStore{
		tokens:       make(map[string]models.Token),
		missions:     make(map[string]models.Mission),
		userMissions: make(map[string]models.UserMission),
		balances:     make(map[string]models.UserTokenBalance),
		stats:        make(map[string]models.UserLedgerStats),
		badgeTypes:   make(map[string]models.BadgeType),
		userBadges:   make(map[string]models.UserBadge),
		wallets:      make(map[string]models.WalletMirror),
	}
}

// WithinTx serializes transaction bodies against each other. Writes are not
// rolled back on error; the gorm implementation provides real rollback.
func (s *MemStore) WithinTx(ctx context.Context, fn func(Store) error) error {
	s.txMu.Lock()
	defer s.txMu.Unlock()
	return fn(memTx{s})
}

// memTx joins the outer transaction instead of re-locking txMu.
type memTx struct{ *MemStore }

func (t memTx) WithinTx(ctx context.Context, fn func(Store) error) error {
	return fn(t)
}

// --- Token catalog ---

func (s *MemStore) GetToken(ctx context.Context, tokenID string) (*models.Token, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if token, ok := s.tokens[tokenID]; ok {
		return &token, nil
	}
	return nil, nil
}

func (s *MemStore) GetTokenBySymbol(ctx context.Context, symbol string) (*models.Token, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, token := range s.tokens {
		if token.Symbol == symbol {
			t := token
			return &t, nil
		}
	}
	return nil, nil
}

func (s *MemStore) ListTokens(ctx context.Context) ([]models.Token, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]models.Token, 0, len(s.tokens))
	for _, token := range s.tokens {
		out = append(out, token)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Symbol < out[j].Symbol })
	return out, nil
}

func (s *MemStore) UpsertToken(ctx context.Context, token *models.Token) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	for id, existing := range s.tokens {
		if existing.Symbol == token.Symbol && existing.ChainID == token.ChainID {
			token.ID = id
			s.tokens[id] = *token
			return nil
		}
	}
	if token.ID == "" {
		token.ID = uuid.NewString()
	}
	s.tokens[token.ID] = *token
	return nil
}

// --- Mission catalog ---

func (s *MemStore) GetMission(ctx context.Context, missionID string) (*models.Mission, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if mission, ok := s.missions[missionID]; ok {
		return &mission, nil
	}
	return nil, nil
}

func (s *MemStore) GetMissionBySlug(ctx context.Context, missionSlug string) (*models.Mission, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, mission := range s.missions {
		if mission.Slug == missionSlug {
			m := mission
			return &m, nil
		}
	}
	return nil, nil
}

func (s *MemStore) ListMissions(ctx context.Context) ([]models.Mission, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]models.Mission, 0, len(s.missions))
	for _, mission := range s.missions {
		out = append(out, mission)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].CreatedAt.Before(out[j].CreatedAt) })
	return out, nil
}

func (s *MemStore) CreateMission(ctx context.Context, mission *models.Mission) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if mission.ID == "" {
		mission.ID = uuid.NewString()
	}
	if mission.CreatedAt.IsZero() {
		mission.CreatedAt = time.Now().UTC()
	}
	s.missions[mission.ID] = *mission
	return nil
}

func (s *MemStore) SaveMission(ctx context.Context, mission *models.Mission) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.missions[mission.ID] = *mission
	return nil
}

// --- User missions ---

func userMissionKey(userID, missionID string) string { return userID + "|" + missionID }

func (s *MemStore) GetUserMission(ctx context.Context, userID, missionID string) (*models.UserMission, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if record, ok := s.userMissions[userMissionKey(userID, missionID)]; ok {
		return &record, nil
	}
	return nil, nil
}

func (s *MemStore) ListUserMissions(ctx context.Context, userID string) ([]models.UserMission, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	var out []models.UserMission
	for _, record := range s.userMissions {
		if record.ExternalUserID == userID {
			out = append(out, record)
		}
	}
	return out, nil
}

func (s *MemStore) InsertUserMissionIfAbsent(ctx context.Context, record *models.UserMission) (bool, *models.UserMission, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	key := userMissionKey(record.ExternalUserID, record.MissionID)
	if existing, ok := s.userMissions[key]; ok {
		return false, &existing, nil
	}
	if record.ID == "" {
		record.ID = uuid.NewString()
	}
	record.CreatedAt = time.Now().UTC()
	record.UpdatedAt = record.CreatedAt
	s.userMissions[key] = *record
	return true, record, nil
}

func (s *MemStore) MarkUserMissionClaimed(ctx context.Context, userMissionID string, claimedAt time.Time) (bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	for key, record := range s.userMissions {
		if record.ID != userMissionID {
			continue
		}
		if record.Status != models.UserMissionCompleted || record.ClaimedAt != nil {
			return false, nil
		}
		record.Status = models.UserMissionClaimed
		record.ClaimedAt = &claimedAt
		record.UpdatedAt = claimedAt
		s.userMissions[key] = record
		return true, nil
	}
	return false, nil
}

// --- Token balances ---

func balanceKey(userID, tokenID string) string { return userID + "|" + tokenID }

func (s *MemStore) GetUserTokenBalance(ctx context.Context, userID, tokenID string) (*models.UserTokenBalance, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if row, ok := s.balances[balanceKey(userID, tokenID)]; ok {
		return &row, nil
	}
	return nil, nil
}

func (s *MemStore) GetAllUserTokenBalances(ctx context.Context, userID string) ([]models.UserTokenBalance, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	var out []models.UserTokenBalance
	for _, row := range s.balances {
		if row.ExternalUserID == userID {
			out = append(out, row)
		}
	}
	return out, nil
}

func (s *MemStore) AddToBalance(ctx context.Context, userID, tokenID string, amount *big.Int, faucetClaimAt *time.Time) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	now := time.Now().UTC()
	key := balanceKey(userID, tokenID)
	row, ok := s.balances[key]
	if !ok {
		row = models.UserTokenBalance{
			ID:             uuid.NewString(),
			ExternalUserID: userID,
			TokenID:        tokenID,
			Balance:        "0",
			TotalEarned:    "0",
			CreatedAt:      now,
		}
	}

	balance, _ := new(big.Int).SetString(row.Balance, 10)
	earned, _ := new(big.Int).SetString(row.TotalEarned, 10)
	row.Balance = new(big.Int).Add(balance, amount).String()
	row.TotalEarned = new(big.Int).Add(earned, amount).String()
	if faucetClaimAt != nil && (row.LastFaucetClaim == nil || faucetClaimAt.After(*row.LastFaucetClaim)) {
		row.LastFaucetClaim = faucetClaimAt
	}
	row.UpdatedAt = now

	s.balances[key] = row
	return nil
}

// --- Ledger stats + badges ---

func (s *MemStore) GetUserLedgerStats(ctx context.Context, userID string) (*models.UserLedgerStats, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if stats, ok := s.stats[userID]; ok {
		return &stats, nil
	}
	return nil, nil
}

func (s *MemStore) IncrementStat(ctx context.Context, userID string, field StatField, at time.Time) (*models.UserLedgerStats, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	stats, ok := s.stats[userID]
	if !ok {
		stats = models.UserLedgerStats{
			ID:             uuid.NewString(),
			ExternalUserID: userID,
		}
	}
	switch field {
	case StatMissionsCompleted:
		stats.MissionsCompleted++
		stats.LastMissionAt = &at
	case StatMissionsClaimed:
		stats.MissionsClaimed++
	case StatFaucetClaims:
		stats.FaucetClaims++
	}
	s.stats[userID] = stats
	return &stats, nil
}

func (s *MemStore) ListBadgeTypes(ctx context.Context) ([]models.BadgeType, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]models.BadgeType, 0, len(s.badgeTypes))
	for _, badge := range s.badgeTypes {
		out = append(out, badge)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Code < out[j].Code })
	return out, nil
}

func (s *MemStore) UpsertBadgeType(ctx context.Context, badge *models.BadgeType) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if existing, ok := s.badgeTypes[badge.Code]; ok {
		badge.ID = existing.ID
	} else if badge.ID == "" {
		badge.ID = uuid.NewString()
	}
	s.badgeTypes[badge.Code] = *badge
	return nil
}

func (s *MemStore) InsertUserBadgeIfAbsent(ctx context.Context, badge *models.UserBadge) (bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	key := badge.ExternalUserID + "|" + badge.BadgeTypeID
	if _, ok := s.userBadges[key]; ok {
		return false, nil
	}
	if badge.ID == "" {
		badge.ID = uuid.NewString()
	}
	badge.AwardedAt = time.Now().UTC()
	s.userBadges[key] = *badge
	return true, nil
}

func (s *MemStore) ListUserBadges(ctx context.Context, userID string) ([]models.UserBadge, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	var out []models.UserBadge
	for _, badge := range s.userBadges {
		if badge.ExternalUserID == userID {
			out = append(out, badge)
		}
	}
	return out, nil
}

// --- Wallet mirrors ---

func (s *MemStore) UpsertWalletMirrors(ctx context.Context, wallets []models.WalletMirror) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, wallet := range wallets {
		if wallet.ID == "" {
			wallet.ID = uuid.NewString()
		}
		s.wallets[wallet.Address] = wallet
	}
	return nil
}

func (s *MemStore) ListUserWallets(ctx context.Context, userID string) ([]models.WalletMirror, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	var out []models.WalletMirror
	for _, wallet := range s.wallets {
		if wallet.ExternalUserID == userID && wallet.IsActive {
			out = append(out, wallet)
		}
	}
	return out, nil
}

// --- Operational queries ---

func (s *MemStore) CountDripsSince(ctx context.Context, cutoff time.Time) (int64, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	var count int64
	for _, row := range s.balances {
		if row.LastFaucetClaim != nil && !row.LastFaucetClaim.Before(cutoff) {
			count++
		}
	}
	return count, nil
}
