package controllers

import (
	"net/http"
	"strconv"

	"github.com/Redes-Bien-Manejadas/shortwhats-app/services"
	"github.com/Redes-Bien-Manejadas/shortwhats-app/utils"

	"github.com/gin-gonic/gin"
)

type AnalyticsController struct {
	detections *services.BotDetectionService
}

func NewAnalyticsController() *AnalyticsController {
	return &AnalyticsController{detections: services.NewBotDetectionService(utils.GetDB())}
}

// GET /admin/bot-detections?limit=100
func (ac *AnalyticsController) GetBotDetections(c *gin.Context) {
	limit, _ := strconv.Atoi(c.DefaultQuery("limit", "100"))

	detections, err := ac.detections.List(limit)
	if err != nil {
		utils.LogError(err, "fetch bot detections")
		c.JSON(http.StatusInternalServerError, gin.H{"success": false, "message": "failed to fetch bot detections"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"success": true, "data": detections})
}

// GET /admin/bot-detections/stats
func (ac *AnalyticsController) GetBotDetectionStats(c *gin.Context) {
	stats, err := ac.detections.Stats()
	if err != nil {
		utils.LogError(err, "fetch bot detection stats")
		c.JSON(http.StatusInternalServerError, gin.H{"success": false, "message": "failed to fetch stats"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"success": true, "data": stats})
}
