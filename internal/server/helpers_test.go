package server

import (
	"bytes"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"

	"inkwell/internal/config"
	"inkwell/internal/database"
	"inkwell/internal/models"

	"github.com/gofiber/fiber/v2"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

func testConfig() *config.Config {
	return &config.Config{
		Env:            "test",
		AllowedOrigins: "http://localhost:3000",
		RateLimitMax:   1000,
		WriteRateLimit: 1000,
	}
}

func setupTestDB(t *testing.T) *gorm.DB {
	t.Helper()

	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	require.NoError(t, err)

	sqlDB, err := db.DB()
	require.NoError(t, err)
	sqlDB.SetMaxOpenConns(1)
	t.Cleanup(func() { _ = sqlDB.Close() })

	require.NoError(t, database.Migrate(db))
	return db
}

func setupTestApp(t *testing.T, rdb *redis.Client) (*fiber.App, *gorm.DB) {
	t.Helper()
	t.Setenv("APP_ENV", "test")

	db := setupTestDB(t)
	srv, err := NewServerWithDeps(testConfig(), db, rdb)
	require.NoError(t, err)
	return srv.NewApp(), db
}

func doJSON(t *testing.T, app *fiber.App, method, path string, body interface{}) (*http.Response, []byte) {
	t.Helper()

	var reader io.Reader
	if body != nil {
		raw, err := json.Marshal(body)
		require.NoError(t, err)
		reader = bytes.NewReader(raw)
	}

	req := httptest.NewRequest(method, path, reader)
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	resp, err := app.Test(req, -1)
	require.NoError(t, err)
	defer resp.Body.Close()

	data, err := io.ReadAll(resp.Body)
	require.NoError(t, err)
	return resp, data
}

func seedAuthor(t *testing.T, db *gorm.DB, first, last string) models.Author {
	t.Helper()
	a := models.Author{FirstName: first, LastName: last, Email: first + "@example.com", PhoneNumber: "555-0100"}
	require.NoError(t, db.Create(&a).Error)
	return a
}

func seedPost(t *testing.T, db *gorm.DB, title string, authorID uint) models.Post {
	t.Helper()
	p := models.Post{Title: title, Content: "body of " + title, AuthorID: authorID}
	require.NoError(t, db.Create(&p).Error)
	return p
}
