package controllers

import (
	"fmt"
	"net/http"
	"os"
	"path/filepath"
	"regexp"
	"time"

	"github.com/Redes-Bien-Manejadas/shortwhats-app/config"
	"github.com/Redes-Bien-Manejadas/shortwhats-app/utils"

	"github.com/gin-gonic/gin"
)

const maxUploadSize = 10 * 1024 * 1024 // 10MB

var allowedUploadTypes = map[string]bool{
	"image/jpeg":      true,
	"image/png":       true,
	"image/gif":       true,
	"image/webp":      true,
	"application/pdf": true,
}

var unsafeFilenameChars = regexp.MustCompile(`[^a-zA-Z0-9.-]`)

type UploadController struct {
	cfg *config.Config
}

func NewUploadController(cfg *config.Config) *UploadController {
	return &UploadController{cfg: cfg}
}

// POST /upload
func (uc *UploadController) Upload(c *gin.Context) {
	file, err := c.FormFile("file")
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"success": false, "message": "No se ha enviado ningún archivo"})
		return
	}

	contentType := file.Header.Get("Content-Type")
	if !allowedUploadTypes[contentType] {
		c.JSON(http.StatusBadRequest, gin.H{"success": false, "message": "Tipo de archivo no permitido"})
		return
	}

	if file.Size > maxUploadSize {
		c.JSON(http.StatusBadRequest, gin.H{"success": false, "message": "El archivo excede el tamaño máximo de 10MB"})
		return
	}

	sanitized := unsafeFilenameChars.ReplaceAllString(filepath.Base(file.Filename), "_")
	filename := fmt.Sprintf("%d-%s", time.Now().UnixMilli(), sanitized)

	if err := os.MkdirAll(uc.cfg.UploadDir, 0755); err != nil {
		utils.LogError(err, "create upload dir")
		c.JSON(http.StatusInternalServerError, gin.H{"success": false, "message": "Error al guardar el archivo"})
		return
	}

	if err := c.SaveUploadedFile(file, filepath.Join(uc.cfg.UploadDir, filename)); err != nil {
		utils.LogError(err, "save uploaded file")
		c.JSON(http.StatusInternalServerError, gin.H{"success": false, "message": "Error al guardar el archivo"})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"file":    gin.H{"path": uc.cfg.UploadBaseURL + "/" + filename},
	})
}
