package migrations

import (
	"time"

	"gorm.io/gorm"

	"github.com/imageimprov/photogame-api/internal/domain/campaign"
)

// migration004Up seeds a demo client with one live campaign so a fresh
// install can serve ballots as soon as assets are uploaded.
func migration004Up(db *gorm.DB) error {
	var count int64
	if err := db.Model(&campaign.Client{}).Count(&count).Error; err != nil {
		return err
	}
	if count > 0 {
		return nil
	}

	client := campaign.NewClient("Image Improv Demo")
	if err := db.Create(client).Error; err != nil {
		return err
	}

	now := time.Now().UTC()
	demo := campaign.NewCampaign(client.ID, "demo", now, now.AddDate(1, 0, 0))

	return db.Create(demo).Error
}

// migration004Down removes the seeded demo data
func migration004Down(db *gorm.DB) error {
	if err := db.Exec(`DELETE FROM campaign WHERE name = 'demo'`).Error; err != nil {
		return err
	}
	return db.Exec(`DELETE FROM client WHERE name = 'Image Improv Demo'`).Error
}
