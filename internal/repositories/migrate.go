package repositories

import (
	"github.com/anonto42/nano-midea/graph-backend/internal/models"
	"gorm.io/gorm"
)

// Migrate creates the node tables and the notified edge table with its
// (source_id, target_id, reason) unique index.
func Migrate(db *gorm.DB) error {
	return db.AutoMigrate(
		&models.User{},
		&models.Post{},
		&models.Comment{},
		&models.Notified{},
	)
}
