package controllers

import (
	"errors"
	"fmt"
	"math"
	"net/http"

	"github.com/Redes-Bien-Manejadas/shortwhats-app/models"
	"github.com/Redes-Bien-Manejadas/shortwhats-app/services"
	"github.com/Redes-Bien-Manejadas/shortwhats-app/utils"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
)

type ClickController struct {
	links      *services.LinkService
	limiter    *utils.RateLimiter
	debouncer  *utils.Debouncer
	detections *services.BotDetectionService
}

func NewClickController(limiter *utils.RateLimiter, debouncer *utils.Debouncer) *ClickController {
	return &ClickController{
		links:      services.NewLinkService(utils.GetDB()),
		limiter:    limiter,
		debouncer:  debouncer,
		detections: services.NewBotDetectionService(utils.GetDB()),
	}
}

// POST /links/:slug/clicks
//
// Конвейер: debounce -> rate limit -> инкремент в БД.
// Подавленный дубль отвечает 200 с debounced=true и ничего не меняет.
func (cc *ClickController) Increment(c *gin.Context) {
	slug := c.Param("slug")

	if cc.debouncer.ShouldDebounce(slug) {
		c.JSON(http.StatusOK, gin.H{"success": true, "debounced": true})
		return
	}

	ip := utils.GetClientIP(c)
	rl := cc.limiter.Check(ip)
	if !rl.Allowed {
		retryAfter := int(math.Ceil(rl.ResetIn.Seconds()))
		utils.LogEvent("RATE_LIMIT", fmt.Sprintf("click endpoint, ip=%s slug=%s", ip, slug))
		cc.detections.RecordAsync(models.BotDetection{
			IPAddress:     ip,
			Slug:          slug,
			UserAgent:     c.GetHeader("User-Agent"),
			DetectionType: "rate_limit",
		})

		c.Header("Retry-After", fmt.Sprintf("%d", retryAfter))
		c.Header("X-RateLimit-Remaining", "0")
		c.Header("X-RateLimit-Reset", fmt.Sprintf("%d", retryAfter))
		c.JSON(http.StatusTooManyRequests, gin.H{
			"success":    false,
			"message":    "Too many requests. Please try again later.",
			"retryAfter": retryAfter,
		})
		return
	}

	clicks, err := cc.links.IncrementClicks(slug)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"success": false, "message": "Link no encontrado"})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"success": false, "message": "No se pudo registrar el click"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"success": true, "clicks": clicks})
}
