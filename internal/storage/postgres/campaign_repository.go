package postgres

import (
	"errors"
	"fmt"
	"time"

	"github.com/charmbracelet/log"
	"github.com/google/uuid"
	"gorm.io/gorm"

	campaignDomain "github.com/imageimprov/photogame-api/internal/domain/campaign"
	"github.com/imageimprov/photogame-api/internal/logger"
)

// PostgresCampaignRepository implements CampaignRepository using GORM
type PostgresCampaignRepository struct {
	db  *gorm.DB
	log *log.Logger
}

// NewPostgresCampaignRepository creates a new PostgreSQL campaign repository
func NewPostgresCampaignRepository(db *gorm.DB) *PostgresCampaignRepository {
	return &PostgresCampaignRepository{
		db:  db,
		log: logger.Repository("campaign"),
	}
}

func (r *PostgresCampaignRepository) Create(c *campaignDomain.Campaign) error {
	if c == nil {
		return fmt.Errorf("campaign cannot be nil")
	}
	if err := c.Validate(); err != nil {
		r.log.Error("invalid campaign", "error", err)
		return err
	}

	if err := r.db.Create(c).Error; err != nil {
		r.log.Error("failed to create campaign", "error", err, "campaign_id", c.ID)
		return fmt.Errorf("failed to create campaign: %w", err)
	}

	r.log.Info("campaign created", "campaign_id", c.ID, "client_id", c.ClientID, "name", c.Name)
	return nil
}

func (r *PostgresCampaignRepository) CreateClient(c *campaignDomain.Client) error {
	if c == nil {
		return fmt.Errorf("client cannot be nil")
	}
	if c.Name == "" {
		return fmt.Errorf("client name cannot be empty")
	}

	if err := r.db.Create(c).Error; err != nil {
		r.log.Error("failed to create client", "error", err, "client_id", c.ID)
		return fmt.Errorf("failed to create client: %w", err)
	}

	r.log.Info("client created", "client_id", c.ID, "name", c.Name)
	return nil
}

func (r *PostgresCampaignRepository) GetByID(id uuid.UUID) (*campaignDomain.Campaign, error) {
	var c campaignDomain.Campaign
	if err := r.db.First(&c, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		r.log.Error("failed to retrieve campaign", "campaign_id", id, "error", err)
		return nil, fmt.Errorf("failed to retrieve campaign: %w", err)
	}
	return &c, nil
}

// FindActive applies the eligibility window in SQL, mirroring what IsLive
// checks in memory.
func (r *PostgresCampaignRepository) FindActive(id uuid.UUID, now time.Time) (*campaignDomain.Campaign, error) {
	var c campaignDomain.Campaign
	err := r.db.
		Where("id = ?", id).
		Where("active = ?", true).
		Where("start_date <= ?", now).
		Where("end_date >= ?", now).
		First(&c).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			r.log.Debug("no live campaign", "campaign_id", id)
			return nil, nil
		}
		r.log.Error("failed to look up live campaign", "campaign_id", id, "error", err)
		return nil, fmt.Errorf("failed to look up campaign: %w", err)
	}

	return &c, nil
}
