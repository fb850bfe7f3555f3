package services

import (
	"time"

	"github.com/Redes-Bien-Manejadas/shortwhats-app/models"
	"github.com/Redes-Bien-Manejadas/shortwhats-app/utils"

	"gorm.io/gorm"
)

type BotDetectionService struct {
	db *gorm.DB
}

func NewBotDetectionService(db *gorm.DB) *BotDetectionService {
	return &BotDetectionService{db: db}
}

// RecordAsync пишет запись в журнал в отдельной горутине.
// Ошибка логируется и глотается: аудит не должен ломать основной поток.
func (bs *BotDetectionService) RecordAsync(detection models.BotDetection) {
	go func() {
		if err := bs.db.Create(&detection).Error; err != nil {
			utils.LogError(err, "record bot detection")
		}
	}()
}

func (bs *BotDetectionService) List(limit int) ([]models.BotDetection, error) {
	if limit <= 0 || limit > 1000 {
		limit = 100
	}
	var detections []models.BotDetection
	err := bs.db.Order("created_at DESC").Limit(limit).Find(&detections).Error
	return detections, err
}

type BotDetectionStats struct {
	Total   int64            `json:"total"`
	Last24h int64            `json:"last24h"`
	ByType  map[string]int64 `json:"byType"`
}

func (bs *BotDetectionService) Stats() (*BotDetectionStats, error) {
	stats := &BotDetectionStats{ByType: map[string]int64{}}

	if err := bs.db.Model(&models.BotDetection{}).Count(&stats.Total).Error; err != nil {
		return nil, err
	}
	if err := bs.db.Model(&models.BotDetection{}).
		Where("created_at > ?", time.Now().Add(-24*time.Hour)).
		Count(&stats.Last24h).Error; err != nil {
		return nil, err
	}

	rows := []struct {
		DetectionType string
		Count         int64
	}{}
	if err := bs.db.Model(&models.BotDetection{}).
		Select("detection_type, COUNT(*) as count").
		Group("detection_type").Scan(&rows).Error; err != nil {
		return nil, err
	}
	for _, row := range rows {
		stats.ByType[row.DetectionType] = row.Count
	}

	return stats, nil
}
