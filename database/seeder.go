package database

import (
	"github.com/Redes-Bien-Manejadas/shortwhats-app/models"

	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

const (
	DefaultAdminUsername = "admin"
	defaultAdminPassword = "123whats123"
)

// SeedAdminCredentials создаёт учётку админа по умолчанию, если таблица пуста
func SeedAdminCredentials(db *gorm.DB) error {
	var count int64
	if err := db.Model(&models.AdminCredential{}).Count(&count).Error; err != nil {
		return err
	}
	if count > 0 {
		return nil
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(defaultAdminPassword), bcrypt.DefaultCost)
	if err != nil {
		return err
	}

	admin := models.AdminCredential{
		Username:     DefaultAdminUsername,
		PasswordHash: string(hash),
	}
	return db.Create(&admin).Error
}
