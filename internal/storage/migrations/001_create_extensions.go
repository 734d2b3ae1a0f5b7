package migrations

import (
	"gorm.io/gorm"
)

// migration001Up creates the PostgreSQL extensions the schema relies on
func migration001Up(db *gorm.DB) error {
	return db.Exec(`CREATE EXTENSION IF NOT EXISTS "uuid-ossp"`).Error
}

// migration001Down removes the extensions
func migration001Down(db *gorm.DB) error {
	return db.Exec(`DROP EXTENSION IF EXISTS "uuid-ossp"`).Error
}
