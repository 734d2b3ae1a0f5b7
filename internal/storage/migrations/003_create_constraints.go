package migrations

import (
	"gorm.io/gorm"
)

// foreignKeyConstraints are the only foreign keys in the schema. The
// connection runs AutoMigrate with constraint creation disabled, so this
// migration owns them all; ADD CONSTRAINT has no IF NOT EXISTS form and a
// second creation under the same name would abort the chain. The
// campaign->client name matches what GORM derives for the relation field.
var foreignKeyConstraints = []string{
	`ALTER TABLE campaign
        ADD CONSTRAINT fk_campaign_client
        FOREIGN KEY (client_id) REFERENCES client(id) ON DELETE CASCADE`,
	`ALTER TABLE pgasset
        ADD CONSTRAINT fk_pgasset_campaign
        FOREIGN KEY (campaign_id) REFERENCES campaign(id) ON DELETE CASCADE`,
	`ALTER TABLE gameuser
        ADD CONSTRAINT fk_gameuser_client
        FOREIGN KEY (client_id) REFERENCES client(id) ON DELETE SET NULL`,
	`ALTER TABLE pgresult
        ADD CONSTRAINT fk_pgresult_asset
        FOREIGN KEY (asset_id) REFERENCES pgasset(id) ON DELETE CASCADE`,
	`ALTER TABLE pgresult
        ADD CONSTRAINT fk_pgresult_voter
        FOREIGN KEY (voter_id) REFERENCES gameuser(id) ON DELETE SET NULL`,
}

// migration003Up adds the foreign key constraints between the game tables.
// Vote inserts rely on these so that a fabricated asset or voter id is
// rejected by the database rather than silently recorded.
func migration003Up(db *gorm.DB) error {
	for _, constraint := range foreignKeyConstraints {
		if err := db.Exec(constraint).Error; err != nil {
			return err
		}
	}

	indexes := []string{
		`CREATE INDEX IF NOT EXISTS idx_pgresult_group_id ON pgresult(group_id)`,
		`CREATE INDEX IF NOT EXISTS idx_pgresult_asset_id ON pgresult(asset_id)`,
		`CREATE INDEX IF NOT EXISTS idx_pgasset_campaign_id ON pgasset(campaign_id)`,
		`CREATE INDEX IF NOT EXISTS idx_gameuser_token ON gameuser(token)`,
	}

	for _, index := range indexes {
		if err := db.Exec(index).Error; err != nil {
			return err
		}
	}

	return nil
}

// migration003Down removes the constraints and indexes
func migration003Down(db *gorm.DB) error {
	statements := []string{
		`DROP INDEX IF EXISTS idx_gameuser_token`,
		`DROP INDEX IF EXISTS idx_pgasset_campaign_id`,
		`DROP INDEX IF EXISTS idx_pgresult_asset_id`,
		`DROP INDEX IF EXISTS idx_pgresult_group_id`,
		`ALTER TABLE pgresult DROP CONSTRAINT IF EXISTS fk_pgresult_voter`,
		`ALTER TABLE pgresult DROP CONSTRAINT IF EXISTS fk_pgresult_asset`,
		`ALTER TABLE gameuser DROP CONSTRAINT IF EXISTS fk_gameuser_client`,
		`ALTER TABLE pgasset DROP CONSTRAINT IF EXISTS fk_pgasset_campaign`,
		`ALTER TABLE campaign DROP CONSTRAINT IF EXISTS fk_campaign_client`,
	}

	for _, statement := range statements {
		if err := db.Exec(statement).Error; err != nil {
			return err
		}
	}

	return nil
}
