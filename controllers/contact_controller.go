package controllers

import (
	"errors"
	"fmt"
	"math"
	"net/http"
	"strings"

	"github.com/Redes-Bien-Manejadas/shortwhats-app/config"
	"github.com/Redes-Bien-Manejadas/shortwhats-app/models"
	"github.com/Redes-Bien-Manejadas/shortwhats-app/services"
	"github.com/Redes-Bien-Manejadas/shortwhats-app/utils"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
)

type ContactController struct {
	links      *services.LinkService
	limiter    *utils.RateLimiter
	recaptcha  *services.RecaptchaService
	detections *services.BotDetectionService
}

func NewContactController(cfg *config.Config, limiter *utils.RateLimiter) *ContactController {
	return &ContactController{
		links:      services.NewLinkService(utils.GetDB()),
		limiter:    limiter,
		recaptcha:  services.NewRecaptchaService(cfg),
		detections: services.NewBotDetectionService(utils.GetDB()),
	}
}

type contactWhatsAppRequest struct {
	Slug           string `json:"slug"`
	RecaptchaToken string `json:"recaptchaToken"`
}

// POST /contact/whatsapp
//
// Проверка бота обязана пройти до любой мутации: клик не считается и
// ссылка wa.me не раскрывается, пока reCAPTCHA не подтвердит запрос.
func (cc *ContactController) WhatsApp(c *gin.Context) {
	var req contactWhatsAppRequest
	if err := c.ShouldBindJSON(&req); err != nil || strings.TrimSpace(req.Slug) == "" {
		c.JSON(http.StatusBadRequest, gin.H{"success": false, "error": "Invalid slug"})
		return
	}

	ip := utils.GetClientIP(c)
	rl := cc.limiter.Check(ip)
	if !rl.Allowed {
		retryAfter := int(math.Ceil(rl.ResetIn.Seconds()))
		utils.LogEvent("RATE_LIMIT", fmt.Sprintf("contact flow, ip=%s slug=%s", ip, req.Slug))
		cc.detections.RecordAsync(models.BotDetection{
			IPAddress:     ip,
			Slug:          req.Slug,
			UserAgent:     c.GetHeader("User-Agent"),
			DetectionType: "rate_limit",
		})

		c.Header("Retry-After", fmt.Sprintf("%d", retryAfter))
		c.Header("X-RateLimit-Remaining", "0")
		c.Header("X-RateLimit-Reset", fmt.Sprintf("%d", retryAfter))
		c.JSON(http.StatusTooManyRequests, gin.H{
			"success":    false,
			"error":      "Too many requests. Please try again later.",
			"retryAfter": retryAfter,
		})
		return
	}

	verdict := cc.recaptcha.Verify(req.RecaptchaToken, services.RecaptchaActionContactWhatsApp)
	if !verdict.Valid {
		score := verdict.Score
		utils.LogEvent("BOT_DETECTED", fmt.Sprintf("ip=%s slug=%s score=%.2f error=%s", ip, req.Slug, score, verdict.Error))
		cc.detections.RecordAsync(models.BotDetection{
			IPAddress:      ip,
			Slug:           req.Slug,
			UserAgent:      c.GetHeader("User-Agent"),
			DetectionType:  "recaptcha",
			RecaptchaScore: &score,
			ErrorMessage:   verdict.Error,
		})

		c.JSON(http.StatusForbidden, gin.H{
			"success": false,
			"error":   "Verification failed. Please try again.",
			"isBot":   true,
			"score":   verdict.Score,
		})
		return
	}

	link, err := cc.links.GetBySlug(req.Slug)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"success": false, "error": "Link not found"})
			return
		}
		utils.LogError(err, "contact flow fetch link")
		c.JSON(http.StatusInternalServerError, gin.H{"success": false, "error": "Internal server error"})
		return
	}

	// Лучший из возможных инкремент: ответ его не ждёт и не зависит от
	// его исхода, ошибка остаётся в логе сервиса
	slug := req.Slug
	go func() {
		_, _ = cc.links.IncrementClicks(slug)
	}()

	shouldFireLead := link.FacebookPixel != nil && link.FacebookPixel.LeadEvent

	c.Header("X-RateLimit-Remaining", fmt.Sprintf("%d", rl.Remaining))
	c.Header("X-RateLimit-Reset", fmt.Sprintf("%d", int(math.Ceil(rl.ResetIn.Seconds()))))
	c.JSON(http.StatusOK, gin.H{
		"success":        true,
		"validated":      true,
		"whatsappUrl":    utils.BuildWhatsAppURL(link.PhoneNumber, link.Message),
		"shouldFireLead": shouldFireLead,
	})
}
