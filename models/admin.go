package models

import "gorm.io/gorm"

type AdminCredential struct {
	gorm.Model
	Username     string `json:"username" gorm:"type:varchar(100);not null;uniqueIndex"`
	PasswordHash string `json:"-" gorm:"type:varchar(100);not null"`
}
