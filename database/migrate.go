package database

import (
	"github.com/Redes-Bien-Manejadas/shortwhats-app/models"

	"gorm.io/gorm"
)

func Migrate(db *gorm.DB) error {
	if err := db.AutoMigrate(
		&models.Link{},
		&models.MicrolandingConfig{},
		&models.FacebookPixelConfig{},
		&models.AdminCredential{},
		&models.BotDetection{},
	); err != nil {
		return err
	}

	// Уникальность slug обеспечивает БД, а не приложение:
	// гонка create/create разрешается нарушением индекса
	if err := db.Exec(`CREATE UNIQUE INDEX IF NOT EXISTS idx_links_slug ON links(slug)`).Error; err != nil {
		return err
	}
	if err := db.Exec(`CREATE INDEX IF NOT EXISTS idx_links_created_at ON links(created_at)`).Error; err != nil {
		return err
	}
	if err := db.Exec(`CREATE INDEX IF NOT EXISTS idx_bot_detections_created_at ON bot_detections(created_at)`).Error; err != nil {
		return err
	}

	return nil
}
