package controllers

import (
	"errors"
	"net/http"
	"strings"
	"time"

	"github.com/Redes-Bien-Manejadas/shortwhats-app/config"
	"github.com/Redes-Bien-Manejadas/shortwhats-app/models"
	"github.com/Redes-Bien-Manejadas/shortwhats-app/utils"

	"github.com/gin-gonic/gin"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

type AdminController struct {
	db  *gorm.DB
	cfg *config.Config
}

func NewAdminController(cfg *config.Config) *AdminController {
	return &AdminController{db: utils.GetDB(), cfg: cfg}
}

type credentialsRequest struct {
	Username string `json:"username"`
	Password string `json:"password"`
}

// POST /admin/login
func (ac *AdminController) Login(c *gin.Context) {
	var req credentialsRequest
	if err := c.ShouldBindJSON(&req); err != nil || req.Username == "" || req.Password == "" {
		c.JSON(http.StatusBadRequest, gin.H{"success": false, "message": "Usuario y contraseña son requeridos"})
		return
	}

	var cred models.AdminCredential
	if err := ac.db.Where("username = ?", req.Username).First(&cred).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			// Не раскрываем, что именно не совпало
			c.JSON(http.StatusUnauthorized, gin.H{"success": false, "message": "Usuario o contraseña incorrectos"})
			return
		}
		utils.LogError(err, "admin login")
		c.JSON(http.StatusInternalServerError, gin.H{"success": false, "message": "Internal server error"})
		return
	}

	if err := bcrypt.CompareHashAndPassword([]byte(cred.PasswordHash), []byte(req.Password)); err != nil {
		c.JSON(http.StatusUnauthorized, gin.H{"success": false, "message": "Usuario o contraseña incorrectos"})
		return
	}

	token, err := utils.GenerateJWT(cred.Username, ac.cfg.JWTSecret)
	if err != nil {
		utils.LogError(err, "admin login token")
		c.JSON(http.StatusInternalServerError, gin.H{"success": false, "message": "Internal server error"})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"message": "Inicio de sesión exitoso",
		"token":   token,
		"user":    gin.H{"username": cred.Username},
	})
}

// GET /admin/credentials
func (ac *AdminController) GetCredentials(c *gin.Context) {
	var cred models.AdminCredential
	if err := ac.db.First(&cred).Error; err != nil {
		utils.LogError(err, "fetch admin credentials")
		c.JSON(http.StatusInternalServerError, gin.H{"success": false, "message": "Internal server error"})
		return
	}

	// Пароль наружу не отдаётся никогда
	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"data":    gin.H{"username": cred.Username, "password": "********"},
	})
}

// POST /admin/credentials
func (ac *AdminController) SaveCredentials(c *gin.Context) {
	var req credentialsRequest
	if err := c.ShouldBindJSON(&req); err != nil || req.Username == "" || req.Password == "" {
		c.JSON(http.StatusBadRequest, gin.H{"success": false, "message": "Usuario y contraseña son requeridos"})
		return
	}

	if len(req.Password) < 6 {
		c.JSON(http.StatusBadRequest, gin.H{"success": false, "message": "La contraseña debe tener al menos 6 caracteres"})
		return
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(req.Password), bcrypt.DefaultCost)
	if err != nil {
		utils.LogError(err, "hash admin password")
		c.JSON(http.StatusInternalServerError, gin.H{"success": false, "message": "Internal server error"})
		return
	}

	var cred models.AdminCredential
	err = ac.db.First(&cred).Error
	switch {
	case err == nil:
		cred.Username = req.Username
		cred.PasswordHash = string(hash)
		err = ac.db.Save(&cred).Error
	case errors.Is(err, gorm.ErrRecordNotFound):
		cred = models.AdminCredential{Username: req.Username, PasswordHash: string(hash)}
		err = ac.db.Create(&cred).Error
	}
	if err != nil {
		utils.LogError(err, "save admin credentials")
		c.JSON(http.StatusInternalServerError, gin.H{"success": false, "message": "Internal server error"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"success": true, "message": "Credenciales guardadas correctamente"})
}

// POST /admin/logout
func (ac *AdminController) Logout(c *gin.Context) {
	token := c.GetHeader("Authorization")
	if token == "" {
		c.JSON(http.StatusBadRequest, gin.H{"success": false, "message": "No token provided"})
		return
	}
	token = strings.TrimPrefix(token, "Bearer ")

	claims, err := utils.ParseJWT(token, ac.cfg.JWTSecret)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"success": false, "message": "Invalid token"})
		return
	}
	exp, ok := claims["exp"].(float64)
	if !ok {
		c.JSON(http.StatusBadRequest, gin.H{"success": false, "message": "Invalid token exp"})
		return
	}

	ttl := int64(exp) - time.Now().Unix()
	if ttl > 0 {
		if rdb := utils.GetRedis(); rdb != nil {
			rdb.Set(utils.RedisCtx(), "blacklist:"+token, "1", time.Duration(ttl)*time.Second)
		}
	}

	c.JSON(http.StatusOK, gin.H{"success": true, "message": "Sesión cerrada"})
}
