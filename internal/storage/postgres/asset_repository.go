package postgres

import (
	"errors"
	"fmt"

	"github.com/charmbracelet/log"
	"github.com/google/uuid"
	"gorm.io/gorm"

	assetDomain "github.com/imageimprov/photogame-api/internal/domain/asset"
	campaignDomain "github.com/imageimprov/photogame-api/internal/domain/campaign"
	"github.com/imageimprov/photogame-api/internal/logger"
)

// PostgresAssetRepository implements AssetRepository using GORM
type PostgresAssetRepository struct {
	db  *gorm.DB
	log *log.Logger
}

// NewPostgresAssetRepository creates a new PostgreSQL asset repository
func NewPostgresAssetRepository(db *gorm.DB) *PostgresAssetRepository {
	return &PostgresAssetRepository{
		db:  db,
		log: logger.Repository("asset"),
	}
}

func (r *PostgresAssetRepository) Create(a *assetDomain.Asset) error {
	if a == nil {
		return fmt.Errorf("asset cannot be nil")
	}
	if err := a.Validate(); err != nil {
		r.log.Error("invalid asset", "error", err)
		return err
	}

	if err := r.db.Create(a).Error; err != nil {
		r.log.Error("failed to create asset", "error", err, "asset_id", a.ID, "filename", a.Filename)
		return fmt.Errorf("failed to create asset: %w", err)
	}

	r.log.Info("asset created", "asset_id", a.ID, "campaign_id", a.CampaignID, "filename", a.Filename)
	return nil
}

func (r *PostgresAssetRepository) GetActive(id uuid.UUID) (*assetDomain.Asset, error) {
	var a assetDomain.Asset
	err := r.db.
		Where("id = ?", id).
		Where("active = ?", true).
		First(&a).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			r.log.Debug("asset not found", "asset_id", id)
			return nil, nil
		}
		r.log.Error("failed to retrieve asset", "asset_id", id, "error", err)
		return nil, fmt.Errorf("failed to retrieve asset: %w", err)
	}

	return &a, nil
}

func (r *PostgresAssetRepository) ListActiveByCampaign(campaignID uuid.UUID) ([]*assetDomain.Asset, error) {
	var assets []*assetDomain.Asset
	err := r.db.
		Where("campaign_id = ?", campaignID).
		Where("active = ?", true).
		Find(&assets).Error
	if err != nil {
		r.log.Error("failed to list active assets", "campaign_id", campaignID, "error", err)
		return nil, fmt.Errorf("failed to list active assets: %w", err)
	}

	r.log.Debug("active assets listed", "campaign_id", campaignID, "count", len(assets))
	return assets, nil
}

// GetOwnership walks asset -> campaign -> client. A missing link anywhere
// in the chain is an error: the caller needs the ownership to pin a voter
// and cannot proceed without it.
func (r *PostgresAssetRepository) GetOwnership(assetID uuid.UUID) (uuid.UUID, uuid.UUID, error) {
	var a assetDomain.Asset
	if err := r.db.First(&a, "id = ?", assetID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return uuid.Nil, uuid.Nil, fmt.Errorf("asset %s not found", assetID)
		}
		return uuid.Nil, uuid.Nil, fmt.Errorf("failed to retrieve asset: %w", err)
	}

	var c campaignDomain.Campaign
	if err := r.db.First(&c, "id = ?", a.CampaignID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return uuid.Nil, uuid.Nil, fmt.Errorf("campaign %s not found for asset %s", a.CampaignID, assetID)
		}
		return uuid.Nil, uuid.Nil, fmt.Errorf("failed to retrieve campaign: %w", err)
	}

	return c.ID, c.ClientID, nil
}

// Deactivate hides an asset from ballots. Assets are never deleted.
func (r *PostgresAssetRepository) Deactivate(id uuid.UUID) error {
	result := r.db.Model(&assetDomain.Asset{}).
		Where("id = ?", id).
		Update("active", false)
	if result.Error != nil {
		r.log.Error("failed to deactivate asset", "asset_id", id, "error", result.Error)
		return fmt.Errorf("failed to deactivate asset: %w", result.Error)
	}
	if result.RowsAffected == 0 {
		return fmt.Errorf("asset %s not found", id)
	}

	r.log.Info("asset deactivated", "asset_id", id)
	return nil
}
