package controllers

import (
	"net/http"
	"testing"

	"github.com/Redes-Bien-Manejadas/shortwhats-app/models"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
)

func newLinkRouter() *gin.Engine {
	r := gin.New()
	lc := NewLinkController()
	r.GET("/links", lc.GetAll)
	r.POST("/links", lc.Create)
	r.GET("/links/search", lc.Search)
	r.GET("/links/:slug", lc.GetBySlug)
	r.PUT("/links/:slug", lc.Update)
	r.DELETE("/links/:slug", lc.Delete)
	return r
}

func TestCreateLink(t *testing.T) {
	db := setupTestDB(t)
	r := newLinkRouter()

	w := doJSON(r, http.MethodPost, "/links", map[string]interface{}{
		"slug":        "promo1",
		"phoneNumber": "5551234",
		"message":     "Hola",
		"type":        "microlanding",
		"tags":        []string{"casino", "agosto"},
	}, nil)
	assert.Equal(t, http.StatusCreated, w.Code)

	body := parseBody(t, w)
	assert.Equal(t, true, body["success"])
	assert.Equal(t, "Link creado correctamente", body["message"])

	var link models.Link
	assert.NoError(t, db.Preload("MicrolandingConfig").Preload("FacebookPixel").
		Where("slug = ?", "promo1").First(&link).Error)
	assert.Equal(t, "microlanding", link.Type)
	assert.Equal(t, 0, link.Clicks)
	assert.Equal(t, []string{"casino", "agosto"}, link.Tags)
	// Конфиги создаются с дефолтами вместе со ссылкой
	assert.NotNil(t, link.MicrolandingConfig)
	assert.Equal(t, "WHATSAPP OFICIAL", link.MicrolandingConfig.ButtonText)
	assert.NotNil(t, link.FacebookPixel)
	assert.True(t, link.FacebookPixel.LeadEvent)
}

func TestCreateLinkValidation(t *testing.T) {
	setupTestDB(t)
	r := newLinkRouter()

	w := doJSON(r, http.MethodPost, "/links", map[string]interface{}{"phoneNumber": "5551234"}, nil)
	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Contains(t, w.Body.String(), "El slug es requerido")

	w = doJSON(r, http.MethodPost, "/links", map[string]interface{}{"slug": "promo1"}, nil)
	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Contains(t, w.Body.String(), "El número de teléfono es requerido")

	w = doJSON(r, http.MethodPost, "/links", map[string]interface{}{
		"slug": "promo1", "phoneNumber": "5551234", "type": "banner",
	}, nil)
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestCreateLinkDuplicateSlug(t *testing.T) {
	db := setupTestDB(t)
	createTestLink(t, db, "promo1", "5551234", "")
	r := newLinkRouter()

	w := doJSON(r, http.MethodPost, "/links", map[string]interface{}{
		"slug": "promo1", "phoneNumber": "5559999",
	}, nil)
	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Contains(t, w.Body.String(), "El slug ya existe")
}

func TestGetLinkBySlug(t *testing.T) {
	db := setupTestDB(t)
	createTestLink(t, db, "promo1", "5551234", "Hola")
	r := newLinkRouter()

	w := doJSON(r, http.MethodGet, "/links/promo1", nil, nil)
	assert.Equal(t, http.StatusOK, w.Code)

	body := parseBody(t, w)
	data := body["data"].(map[string]interface{})
	assert.Equal(t, "promo1", data["slug"])
	assert.Equal(t, "5551234", data["phoneNumber"])
	assert.Equal(t, float64(0), data["clicks"])
	assert.NotNil(t, data["microlandingConfig"])
	assert.NotNil(t, data["facebookPixel"])

	w = doJSON(r, http.MethodGet, "/links/nope", nil, nil)
	assert.Equal(t, http.StatusNotFound, w.Code)
	assert.Contains(t, w.Body.String(), "Link no encontrado")
}

func TestUpdateLinkReplacesFields(t *testing.T) {
	db := setupTestDB(t)
	link := createTestLink(t, db, "promo1", "5551234", "Hola")
	r := newLinkRouter()

	mc := models.DefaultMicrolandingConfig()
	mc.HeaderText = "Nuevo encabezado"
	fp := models.DefaultFacebookPixelConfig()
	fp.PixelID = "123456"
	fp.LeadEvent = false

	w := doJSON(r, http.MethodPut, "/links/promo1", map[string]interface{}{
		"phoneNumber":        "5559999",
		"message":            "Nuevo mensaje",
		"type":               "microlanding",
		"clicks":             link.Clicks,
		"tags":               []string{"nuevo"},
		"microlandingConfig": mc,
		"facebookPixel":      fp,
	}, nil)
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), "Link actualizado correctamente")

	var updated models.Link
	assert.NoError(t, db.Preload("MicrolandingConfig").Preload("FacebookPixel").
		Where("slug = ?", "promo1").First(&updated).Error)
	assert.Equal(t, "5559999", updated.PhoneNumber)
	assert.Equal(t, "Nuevo mensaje", updated.Message)
	assert.Equal(t, "microlanding", updated.Type)
	assert.Equal(t, []string{"nuevo"}, updated.Tags)
	assert.Equal(t, "Nuevo encabezado", updated.MicrolandingConfig.HeaderText)
	assert.Equal(t, "123456", updated.FacebookPixel.PixelID)
	assert.False(t, updated.FacebookPixel.LeadEvent)
}

func TestUpdateLinkNotFound(t *testing.T) {
	setupTestDB(t)
	r := newLinkRouter()

	w := doJSON(r, http.MethodPut, "/links/nope", map[string]interface{}{
		"phoneNumber": "5559999",
	}, nil)
	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestDeleteLink(t *testing.T) {
	db := setupTestDB(t)
	createTestLink(t, db, "promo1", "5551234", "")
	r := newLinkRouter()

	w := doJSON(r, http.MethodDelete, "/links/promo1", nil, nil)
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), "Link eliminado correctamente")

	w = doJSON(r, http.MethodGet, "/links/promo1", nil, nil)
	assert.Equal(t, http.StatusNotFound, w.Code)

	// Конфиги удаляются вместе со ссылкой
	var mcCount, fpCount int64
	db.Model(&models.MicrolandingConfig{}).Count(&mcCount)
	db.Model(&models.FacebookPixelConfig{}).Count(&fpCount)
	assert.Equal(t, int64(0), mcCount)
	assert.Equal(t, int64(0), fpCount)

	w = doJSON(r, http.MethodDelete, "/links/promo1", nil, nil)
	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestSearchLinks(t *testing.T) {
	db := setupTestDB(t)
	createTestLink(t, db, "promo1", "5551234", "bono de bienvenida")
	createTestLink(t, db, "casino-vip", "5559999", "otro mensaje")
	r := newLinkRouter()

	w := doJSON(r, http.MethodGet, "/links/search?term=PROMO", nil, nil)
	assert.Equal(t, http.StatusOK, w.Code)
	body := parseBody(t, w)
	assert.Len(t, body["data"], 1)

	w = doJSON(r, http.MethodGet, "/links/search?term=5559999", nil, nil)
	body = parseBody(t, w)
	assert.Len(t, body["data"], 1)

	w = doJSON(r, http.MethodGet, "/links/search?term=bienvenida", nil, nil)
	body = parseBody(t, w)
	assert.Len(t, body["data"], 1)

	w = doJSON(r, http.MethodGet, "/links/search", nil, nil)
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestGetAllLinks(t *testing.T) {
	db := setupTestDB(t)
	createTestLink(t, db, "promo1", "5551234", "")
	createTestLink(t, db, "promo2", "5555678", "")
	r := newLinkRouter()

	w := doJSON(r, http.MethodGet, "/links", nil, nil)
	assert.Equal(t, http.StatusOK, w.Code)
	body := parseBody(t, w)
	assert.Equal(t, true, body["success"])
	assert.Len(t, body["data"], 2)
}
