package controllers

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"testing"

	"github.com/Redes-Bien-Manejadas/shortwhats-app/database"
	"github.com/Redes-Bien-Manejadas/shortwhats-app/models"
	"github.com/Redes-Bien-Manejadas/shortwhats-app/services"
	"github.com/Redes-Bien-Manejadas/shortwhats-app/utils"

	"github.com/gin-gonic/gin"
	"github.com/glebarez/sqlite"
	"gorm.io/gorm"
)

func TestMain(m *testing.M) {
	gin.SetMode(gin.TestMode)
	os.Exit(m.Run())
}

func setupTestDB(t *testing.T) *gorm.DB {
	t.Helper()
	db, err := gorm.Open(sqlite.Open(filepath.Join(t.TempDir(), "test.db")), &gorm.Config{})
	if err != nil {
		t.Fatalf("failed to open test db: %v", err)
	}
	// Одно соединение: фоновые записи не ловят SQLITE_BUSY
	sqlDB, err := db.DB()
	if err != nil {
		t.Fatalf("failed to get sql db: %v", err)
	}
	sqlDB.SetMaxOpenConns(1)
	if err := database.Migrate(db); err != nil {
		t.Fatalf("failed to migrate test db: %v", err)
	}
	utils.SetDB(db)
	return db
}

func createTestLink(t *testing.T, db *gorm.DB, slug, phone, message string) *models.Link {
	t.Helper()
	link := &models.Link{
		Slug:        slug,
		PhoneNumber: phone,
		Message:     message,
		Type:        "redirect",
	}
	if err := services.NewLinkService(db).Create(link); err != nil {
		t.Fatalf("failed to create test link: %v", err)
	}
	return link
}

func doJSON(r *gin.Engine, method, path string, body interface{}, headers map[string]string) *httptest.ResponseRecorder {
	var buf bytes.Buffer
	if body != nil {
		json.NewEncoder(&buf).Encode(body)
	}
	req, _ := http.NewRequest(method, path, &buf)
	req.Header.Set("Content-Type", "application/json")
	for k, v := range headers {
		req.Header.Set(k, v)
	}
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

func parseBody(t *testing.T, w *httptest.ResponseRecorder) map[string]interface{} {
	t.Helper()
	var body map[string]interface{}
	if err := json.Unmarshal(w.Body.Bytes(), &body); err != nil {
		t.Fatalf("failed to parse response body %q: %v", w.Body.String(), err)
	}
	return body
}

func storedClicks(t *testing.T, db *gorm.DB, slug string) int {
	t.Helper()
	var link models.Link
	if err := db.Where("slug = ?", slug).First(&link).Error; err != nil {
		t.Fatalf("failed to load link %s: %v", slug, err)
	}
	return link.Clicks
}
