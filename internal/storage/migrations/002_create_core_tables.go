package migrations

import (
	"gorm.io/gorm"

	"github.com/imageimprov/photogame-api/internal/domain/asset"
	"github.com/imageimprov/photogame-api/internal/domain/campaign"
	"github.com/imageimprov/photogame-api/internal/domain/vote"
	"github.com/imageimprov/photogame-api/internal/domain/voter"
)

// migration002Up creates the core game tables from the domain models
func migration002Up(db *gorm.DB) error {
	return db.AutoMigrate(
		&campaign.Client{},
		&campaign.Campaign{},
		&asset.Asset{},
		&voter.Voter{},
		&vote.VoteResult{},
		&vote.BallotPrecompute{},
	)
}

// migration002Down drops the core game tables
func migration002Down(db *gorm.DB) error {
	tables := []string{"pgballot", "pgresult", "gameuser", "pgasset", "campaign", "client"}

	for _, table := range tables {
		if err := db.Exec("DROP TABLE IF EXISTS " + table + " CASCADE").Error; err != nil {
			return err
		}
	}

	return nil
}
