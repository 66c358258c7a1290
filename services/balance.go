// services/balance.go
package services

import (
	"context"

	"mission-ledger-system/apperr"
	"mission-ledger-system/models"
	"mission-ledger-system/storage"
)

// BalanceService is the read-only query surface over the token balance
// ledger. All mutation goes through the grant engine.
type BalanceService struct {
	Store storage.Store
}

func NewBalanceService(store storage.Store) *BalanceService {
	return &BalanceService{Store: store}
}

// GetBalance returns the (user, token) row, or a zero-valued row when the
// user has never earned that token.
func (s *BalanceService) GetBalance(ctx context.Context, userID, tokenID string) (*models.UserTokenBalance, error) {
	if userID == "" {
		return nil, apperr.Validation("user id is required")
	}
	token, err := s.Store.GetToken(ctx, tokenID)
	if err != nil {
		return nil, apperr.Internal("failed to load token", err)
	}
	if token == nil {
		return nil, apperr.NotFound("unknown token %s", tokenID)
	}

	row, err := s.Store.GetUserTokenBalance(ctx, userID, tokenID)
	if err != nil {
		return nil, apperr.Internal("failed to load balance", err)
	}
	if row == nil {
		row = &models.UserTokenBalance{
			ExternalUserID: userID,
			TokenID:        tokenID,
			Balance:        "0",
			TotalEarned:    "0",
		}
	}
	return row, nil
}

func (s *BalanceService) GetAllBalances(ctx context.Context, userID string) ([]models.UserTokenBalance, error) {
	if userID == "" {
		return nil, apperr.Validation("user id is required")
	}
	rows, err := s.Store.GetAllUserTokenBalances(ctx, userID)
	if err != nil {
		return nil, apperr.Internal("failed to load balances", err)
	}
	return rows, nil
}

// GetBalancesWithTokenMetadata joins the user's ledger rows with their
// catalog entries.
func (s *BalanceService) GetBalancesWithTokenMetadata(ctx context.Context, userID string) ([]models.BalanceWithToken, error) {
	rows, err := s.GetAllBalances(ctx, userID)
	if err != nil {
		return nil, err
	}
	tokens, err := s.Store.ListTokens(ctx)
	if err != nil {
		return nil, apperr.Internal("failed to load token catalog", err)
	}

	byID := make(map[string]models.Token, len(tokens))
	for _, t := range tokens {
		byID[t.ID] = t
	}

	out := make([]models.BalanceWithToken, 0, len(rows))
	for _, row := range rows {
		out = append(out, models.BalanceWithToken{
			UserTokenBalance: row,
			Token:            byID[row.TokenID],
		})
	}
	return out, nil
}
