package models

import "time"

// BotDetection - журнал отклонённых запросов (recaptcha / rate_limit)
type BotDetection struct {
	ID             uint      `json:"id" gorm:"primaryKey"`
	IPAddress      string    `json:"ipAddress" gorm:"type:varchar(64);not null;index"`
	Slug           string    `json:"slug" gorm:"type:varchar(100);index"`
	UserAgent      string    `json:"userAgent" gorm:"type:text"`
	DetectionType  string    `json:"detectionType" gorm:"type:varchar(20);not null;index"` // строго: "recaptcha" | "rate_limit"
	RecaptchaScore *float64  `json:"recaptchaScore"`
	ErrorMessage   string    `json:"errorMessage" gorm:"type:text"`
	CreatedAt      time.Time `json:"createdAt" gorm:"index"`
}
