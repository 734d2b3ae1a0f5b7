package asset

import (
	"fmt"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Asset is one stored photo available for ballots. The file itself lives in
// the sharded image store; FilePath and Filename record where. Assets are
// never deleted by the game flow, only deactivated.
type Asset struct {
	ID         uuid.UUID `json:"id" gorm:"type:uuid;primaryKey"`
	CampaignID uuid.UUID `json:"campaign_id" gorm:"type:uuid;not null;index;uniqueIndex:uix_pgasset_filename_campaign_id,priority:2"`
	FilePath   string    `json:"file_path" gorm:"size:500;not null"` // e.g. /mnt/image_files/003/045/322
	Filename   string    `json:"filename" gorm:"size:100;not null;uniqueIndex:uix_pgasset_filename_campaign_id,priority:1"`
	Active     bool      `json:"active" gorm:"not null;default:true"`
	CreatedAt  time.Time `json:"created_at" gorm:"autoCreateTime"`
	UpdatedAt  time.Time `json:"updated_at" gorm:"autoUpdateTime"`
}

// TableName overrides the table name used by GORM
func (Asset) TableName() string {
	return "pgasset"
}

// BeforeCreate sets a UUID before creating the record
func (a *Asset) BeforeCreate(tx *gorm.DB) error {
	if a.ID == uuid.Nil {
		a.ID = uuid.New()
	}
	return nil
}

// NewAsset creates the catalog record for a file the store already wrote.
func NewAsset(campaignID uuid.UUID, filePath, filename string) *Asset {
	return &Asset{
		ID:         uuid.New(),
		CampaignID: campaignID,
		FilePath:   filePath,
		Filename:   filename,
		Active:     true,
	}
}

// Validate checks if the asset data is valid
func (a *Asset) Validate() error {
	if a.CampaignID == uuid.Nil {
		return fmt.Errorf("campaign_id is required")
	}
	if a.FilePath == "" {
		return fmt.Errorf("file_path is required")
	}
	if a.Filename == "" {
		return fmt.Errorf("filename is required")
	}
	return nil
}
