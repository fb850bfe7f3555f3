package services

import (
	"errors"
	"strings"
	"time"

	"github.com/Redes-Bien-Manejadas/shortwhats-app/models"
	"github.com/Redes-Bien-Manejadas/shortwhats-app/utils"

	"gorm.io/gorm"
)

// ErrSlugExists возвращается, когда уникальный индекс по slug отклонил вставку
var ErrSlugExists = errors.New("slug already exists")

const (
	incrementMaxRetries  = 2
	incrementBackoffBase = 100 * time.Millisecond
)

type LinkService struct {
	db *gorm.DB
}

func NewLinkService(db *gorm.DB) *LinkService {
	return &LinkService{db: db}
}

func (ls *LinkService) GetAll() ([]models.Link, error) {
	var links []models.Link
	err := ls.db.Preload("MicrolandingConfig").Preload("FacebookPixel").
		Order("created_at DESC").Find(&links).Error
	return links, err
}

func (ls *LinkService) GetBySlug(slug string) (*models.Link, error) {
	var link models.Link
	err := ls.db.Preload("MicrolandingConfig").Preload("FacebookPixel").
		Where("slug = ?", slug).First(&link).Error
	if err != nil {
		return nil, err
	}
	return &link, nil
}

// Create сохраняет ссылку вместе с конфигами одним запросом с ассоциациями.
// Уникальность slug решает индекс БД, нарушение транслируется в ErrSlugExists.
func (ls *LinkService) Create(link *models.Link) error {
	if link.MicrolandingConfig == nil {
		link.MicrolandingConfig = models.DefaultMicrolandingConfig()
	}
	if link.FacebookPixel == nil {
		link.FacebookPixel = models.DefaultFacebookPixelConfig()
	}
	if link.Tags == nil {
		link.Tags = []string{}
	}

	if err := ls.db.Create(link).Error; err != nil {
		if strings.Contains(err.Error(), "unique constraint") ||
			strings.Contains(err.Error(), "UNIQUE constraint") ||
			strings.Contains(err.Error(), "23505") {
			return ErrSlugExists
		}
		return err
	}
	return nil
}

// Update полностью заменяет изменяемые поля ссылки и оба конфига.
// Slug не переименовывается.
func (ls *LinkService) Update(slug string, data *models.Link) error {
	existing, err := ls.GetBySlug(slug)
	if err != nil {
		return err
	}
	if data.Tags == nil {
		data.Tags = []string{}
	}

	return ls.db.Transaction(func(tx *gorm.DB) error {
		// Обновление через структуру, чтобы сработал serializer:json на tags
		updates := models.Link{
			PhoneNumber: data.PhoneNumber,
			Message:     data.Message,
			Type:        data.Type,
			Clicks:      data.Clicks,
			Tags:        data.Tags,
		}
		if err := tx.Model(&models.Link{}).Where("id = ?", existing.ID).
			Select("phone_number", "message", "type", "clicks", "tags").
			Updates(updates).Error; err != nil {
			return err
		}

		if data.MicrolandingConfig != nil {
			mc := *data.MicrolandingConfig
			mc.LinkID = existing.ID
			if existing.MicrolandingConfig != nil {
				mc.ID = existing.MicrolandingConfig.ID
			}
			if err := tx.Save(&mc).Error; err != nil {
				return err
			}
		}

		if data.FacebookPixel != nil {
			fp := *data.FacebookPixel
			fp.LinkID = existing.ID
			if existing.FacebookPixel != nil {
				fp.ID = existing.FacebookPixel.ID
			}
			if err := tx.Save(&fp).Error; err != nil {
				return err
			}
		}

		return nil
	})
}

func (ls *LinkService) Delete(slug string) error {
	var link models.Link
	if err := ls.db.Where("slug = ?", slug).First(&link).Error; err != nil {
		return err
	}

	return ls.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("link_id = ?", link.ID).Delete(&models.MicrolandingConfig{}).Error; err != nil {
			return err
		}
		if err := tx.Where("link_id = ?", link.ID).Delete(&models.FacebookPixelConfig{}).Error; err != nil {
			return err
		}
		return tx.Delete(&link).Error
	})
}

func (ls *LinkService) Search(term string) ([]models.Link, error) {
	pattern := "%" + strings.ToLower(term) + "%"
	var links []models.Link
	err := ls.db.Preload("MicrolandingConfig").Preload("FacebookPixel").
		Where("LOWER(slug) LIKE ? OR LOWER(phone_number) LIKE ? OR LOWER(message) LIKE ?", pattern, pattern, pattern).
		Order("created_at DESC").Find(&links).Error
	return links, err
}

// IncrementClicks атомарно увеличивает счётчик на стороне БД и возвращает
// новое значение. На временных ошибках повторяет с короткой паузой;
// счётчик никогда не выдумывается.
func (ls *LinkService) IncrementClicks(slug string) (int, error) {
	var lastErr error

	for attempt := 0; attempt <= incrementMaxRetries; attempt++ {
		var clicks int
		res := ls.db.Raw(`UPDATE links SET clicks = clicks + 1 WHERE slug = ? RETURNING clicks`, slug).Scan(&clicks)
		if res.Error == nil {
			if res.RowsAffected == 0 {
				return 0, gorm.ErrRecordNotFound
			}
			return clicks, nil
		}

		lastErr = res.Error
		if attempt < incrementMaxRetries {
			time.Sleep(incrementBackoffBase * time.Duration(attempt+1))
		}
	}

	utils.LogError(lastErr, "increment clicks after retries")
	return 0, lastErr
}
