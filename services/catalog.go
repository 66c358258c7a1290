// services/catalog.go
package services

import (
	"context"

	"mission-ledger-system/apperr"
	"mission-ledger-system/models"
	"mission-ledger-system/storage"
	"mission-ledger-system/utils"

	"github.com/gosimple/slug"
	"github.com/sirupsen/logrus"
)

// CatalogService manages the token and mission catalogs (seeding at startup,
// admin creation later). Both catalogs are read-only from the ledger's side.
type CatalogService struct {
	Store storage.Store
}

func NewCatalogService(store storage.Store) *CatalogService {
	return &CatalogService{Store: store}
}

// Seed loads the default token and mission catalogs, resolving mission reward
// tokens by symbol. Safe to run on every boot.
func (s *CatalogService) Seed(ctx context.Context) error {
	for i := range models.SeedTokens {
		token := models.SeedTokens[i]
		if err := s.Store.UpsertToken(ctx, &token); err != nil {
			return err
		}
	}

	for _, seed := range models.SeedMissionList {
		existing, err := s.Store.GetMissionBySlug(ctx, seed.Slug)
		if err != nil {
			return err
		}
		if existing != nil {
			continue
		}

		mission := models.Mission{
			Slug:        seed.Slug,
			Title:       seed.Title,
			Description: seed.Description,
			RewardType:  seed.RewardType,
		}
		if seed.RewardType == models.MissionRewardToken {
			token, err := s.Store.GetTokenBySymbol(ctx, seed.RewardTokenSymbol)
			if err != nil {
				return err
			}
			if token == nil {
				logrus.WithField("symbol", seed.RewardTokenSymbol).
					Warn("skipping mission seed, reward token not in catalog")
				continue
			}
			mission.RewardTokenID = token.ID
			mission.RewardAmount = seed.RewardAmount
		}
		if err := s.Store.CreateMission(ctx, &mission); err != nil {
			return err
		}
	}
	return nil
}

// CreateMissionInput is the admin mission-creation payload.
type CreateMissionInput struct {
	Title         string                   `json:"title" validate:"required,min=3"`
	Description   string                   `json:"description"`
	RewardType    models.MissionRewardType `json:"reward_type" validate:"required,oneof=token none"`
	RewardTokenID string                   `json:"reward_token_id" validate:"omitempty,uuid"`
	RewardAmount  string                   `json:"reward_amount"`
}

// CreateMission validates the reward spec against the token catalog before
// writing: a token reward must name a known token and an amount that scales
// cleanly to smallest units.
func (s *CatalogService) CreateMission(ctx context.Context, in CreateMissionInput) (*models.Mission, error) {
	mission := models.Mission{
		Slug:        slug.Make(in.Title),
		Title:       in.Title,
		Description: in.Description,
		RewardType:  in.RewardType,
	}

	if in.RewardType == models.MissionRewardToken {
		if in.RewardTokenID == "" {
			return nil, apperr.Validation("reward token id is required for token rewards")
		}
		token, err := s.Store.GetToken(ctx, in.RewardTokenID)
		if err != nil {
			return nil, apperr.Internal("failed to load token", err)
		}
		if token == nil {
			return nil, apperr.NotFound("unknown token %s", in.RewardTokenID)
		}
		if _, err := utils.ScaleToSmallestUnit(in.RewardAmount, token.Decimals); err != nil {
			return nil, apperr.Validation("reward amount: %v", err)
		}
		mission.RewardTokenID = in.RewardTokenID
		mission.RewardAmount = in.RewardAmount
	}

	existing, err := s.Store.GetMissionBySlug(ctx, mission.Slug)
	if err != nil {
		return nil, apperr.Internal("failed to check mission slug", err)
	}
	if existing != nil {
		return nil, apperr.InvalidState("a mission titled %q already exists", in.Title)
	}

	if err := s.Store.CreateMission(ctx, &mission); err != nil {
		return nil, apperr.Internal("failed to create mission", err)
	}
	return &mission, nil
}

// RegisterTokenInput is the admin token-registration payload.
type RegisterTokenInput struct {
	Symbol   string `json:"symbol" validate:"required,min=1,max=16"`
	Name     string `json:"name" validate:"required"`
	ChainID  int64  `json:"chain_id" validate:"required,gt=0"`
	Decimals string `json:"decimals" validate:"required,number"`
	Address  string `json:"address"`
}

func (s *CatalogService) RegisterToken(ctx context.Context, in RegisterTokenInput) (*models.Token, error) {
	token := models.Token{
		Symbol:   in.Symbol,
		Name:     in.Name,
		ChainID:  in.ChainID,
		Decimals: in.Decimals,
		Address:  in.Address,
	}
	if err := s.Store.UpsertToken(ctx, &token); err != nil {
		return nil, apperr.Internal("failed to register token", err)
	}
	return &token, nil
}

// AttachMissionIcon updates the mission's icon URL after an R2 upload.
func (s *CatalogService) AttachMissionIcon(ctx context.Context, missionID, iconURL string) (*models.Mission, error) {
	mission, err := s.Store.GetMission(ctx, missionID)
	if err != nil {
		return nil, apperr.Internal("failed to load mission", err)
	}
	if mission == nil {
		return nil, apperr.NotFound("unknown mission %s", missionID)
	}
	mission.IconURL = iconURL
	if err := s.Store.SaveMission(ctx, mission); err != nil {
		return nil, apperr.Internal("failed to save mission", err)
	}
	return mission, nil
}

func (s *CatalogService) ListTokens(ctx context.Context) ([]models.Token, error) {
	return s.Store.ListTokens(ctx)
}
