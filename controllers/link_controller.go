package controllers

import (
	"errors"
	"net/http"
	"strings"

	"github.com/Redes-Bien-Manejadas/shortwhats-app/models"
	"github.com/Redes-Bien-Manejadas/shortwhats-app/services"
	"github.com/Redes-Bien-Manejadas/shortwhats-app/utils"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
)

type LinkController struct {
	links *services.LinkService
}

func NewLinkController() *LinkController {
	return &LinkController{links: services.NewLinkService(utils.GetDB())}
}

func normalizeLinkType(v string) string {
	v = strings.TrimSpace(strings.ToLower(v))
	if v == "redirect" || v == "microlanding" {
		return v
	}
	return ""
}

// GET /links
func (lc *LinkController) GetAll(c *gin.Context) {
	links, err := lc.links.GetAll()
	if err != nil {
		utils.LogError(err, "fetch links")
		c.JSON(http.StatusInternalServerError, gin.H{"success": false, "message": "Error al obtener los links"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"success": true, "data": links})
}

// GET /links/:slug
func (lc *LinkController) GetBySlug(c *gin.Context) {
	slug := c.Param("slug")

	link, err := lc.links.GetBySlug(slug)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"success": false, "message": "Link no encontrado"})
			return
		}
		utils.LogError(err, "fetch link")
		c.JSON(http.StatusInternalServerError, gin.H{"success": false, "message": "Error al obtener el link"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"success": true, "data": link})
}

// POST /links
func (lc *LinkController) Create(c *gin.Context) {
	var link models.Link
	if err := c.ShouldBindJSON(&link); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"success": false, "message": "invalid request"})
		return
	}

	link.Slug = strings.TrimSpace(link.Slug)
	if link.Slug == "" {
		c.JSON(http.StatusBadRequest, gin.H{"success": false, "message": "El slug es requerido"})
		return
	}
	if strings.TrimSpace(link.PhoneNumber) == "" {
		c.JSON(http.StatusBadRequest, gin.H{"success": false, "message": "El número de teléfono es requerido"})
		return
	}
	if link.Type == "" {
		link.Type = "redirect"
	}
	if normalizeLinkType(link.Type) == "" {
		c.JSON(http.StatusBadRequest, gin.H{"success": false, "message": "El tipo debe ser redirect o microlanding"})
		return
	}

	link.ID = 0
	if link.Clicks < 0 {
		link.Clicks = 0
	}

	if err := lc.links.Create(&link); err != nil {
		if errors.Is(err, services.ErrSlugExists) {
			c.JSON(http.StatusBadRequest, gin.H{"success": false, "message": "El slug ya existe"})
			return
		}
		utils.LogError(err, "create link")
		c.JSON(http.StatusInternalServerError, gin.H{"success": false, "message": "Error al crear el link"})
		return
	}

	c.JSON(http.StatusCreated, gin.H{"success": true, "message": "Link creado correctamente", "id": link.ID})
}

// PUT /links/:slug
func (lc *LinkController) Update(c *gin.Context) {
	slug := c.Param("slug")

	var link models.Link
	if err := c.ShouldBindJSON(&link); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"success": false, "message": "invalid request"})
		return
	}

	if link.Type != "" && normalizeLinkType(link.Type) == "" {
		c.JSON(http.StatusBadRequest, gin.H{"success": false, "message": "El tipo debe ser redirect o microlanding"})
		return
	}

	if err := lc.links.Update(slug, &link); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"success": false, "message": "Link no encontrado"})
			return
		}
		utils.LogError(err, "update link")
		c.JSON(http.StatusInternalServerError, gin.H{"success": false, "message": "Error al actualizar el link"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"success": true, "message": "Link actualizado correctamente"})
}

// DELETE /links/:slug
func (lc *LinkController) Delete(c *gin.Context) {
	slug := c.Param("slug")

	if err := lc.links.Delete(slug); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"success": false, "message": "Link no encontrado"})
			return
		}
		utils.LogError(err, "delete link")
		c.JSON(http.StatusInternalServerError, gin.H{"success": false, "message": "Error al eliminar el link"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"success": true, "message": "Link eliminado correctamente"})
}

// GET /links/search?term=xxx
func (lc *LinkController) Search(c *gin.Context) {
	term := c.Query("term")
	if term == "" {
		c.JSON(http.StatusBadRequest, gin.H{"success": false, "message": "El término de búsqueda es requerido"})
		return
	}

	links, err := lc.links.Search(term)
	if err != nil {
		utils.LogError(err, "search links")
		c.JSON(http.StatusInternalServerError, gin.H{"success": false, "message": "Error al buscar links"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"success": true, "data": links})
}
