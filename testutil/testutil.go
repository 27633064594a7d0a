package testutil

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"testing"

	"civicvoice/config"
	"civicvoice/database"
	issueRoutes "civicvoice/routers/issueRoutes"
	userRoutes "civicvoice/routers/userRoutes"

	"github.com/gofiber/fiber/v2"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

// AdminEmail is on the test allow-list; UserEmail is not.
const (
	AdminEmail = "admin@example.com"
	UserEmail  = "resident@example.com"
)

// SetupTestDB points the global database handle at a fresh in-memory sqlite
// database with the full schema, and installs a test configuration.
func SetupTestDB(t *testing.T) *gorm.DB {
	t.Helper()

	config.AppConfig = &config.Config{
		AdminEmails:       " Admin@Example.com , second.admin@town.gov ",
		IdentityJWTSecret: "test-secret",
		PageSize:          10,
	}

	dsn := fmt.Sprintf("file:%s?mode=memory&cache=shared", t.Name())
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	if err != nil {
		t.Fatalf("Failed to open test database: %v", err)
	}

	sqlDB, err := db.DB()
	if err != nil {
		t.Fatalf("Failed to get database instance: %v", err)
	}
	// A single connection keeps every query on the same in-memory database.
	sqlDB.SetMaxOpenConns(1)

	if err := database.Migrate(db); err != nil {
		t.Fatalf("Failed to migrate test database: %v", err)
	}

	database.Database = database.DbInstance{Db: db}

	t.Cleanup(func() { sqlDB.Close() })

	return db
}

// NewTestApp builds the Fiber app with all routes registered. Call
// SetupTestDB first.
func NewTestApp(t *testing.T) *fiber.App {
	t.Helper()

	app := fiber.New()
	issueRoutes.SetupIssueRoutes(app)
	userRoutes.SetupUserRoutes(app)
	return app
}

// NewJSONRequest builds a request with a JSON body.
func NewJSONRequest(t *testing.T, method, target string, body interface{}) *http.Request {
	t.Helper()

	var buf bytes.Buffer
	if body != nil {
		if err := json.NewEncoder(&buf).Encode(body); err != nil {
			t.Fatalf("Failed to encode body: %v", err)
		}
	}

	req := httptest.NewRequest(method, target, &buf)
	req.Header.Set("Content-Type", "application/json")
	return req
}

// NewMultipartRequest builds a multipart form request from string fields.
func NewMultipartRequest(t *testing.T, method, target string, fields map[string]string) *http.Request {
	t.Helper()

	var buf bytes.Buffer
	writer := multipart.NewWriter(&buf)
	for key, value := range fields {
		if err := writer.WriteField(key, value); err != nil {
			t.Fatalf("Failed to write form field %s: %v", key, err)
		}
	}
	if err := writer.Close(); err != nil {
		t.Fatalf("Failed to close multipart writer: %v", err)
	}

	req := httptest.NewRequest(method, target, &buf)
	req.Header.Set("Content-Type", writer.FormDataContentType())
	return req
}

// DecodeBody unmarshals a response body into a generic map.
func DecodeBody(t *testing.T, resp *http.Response) map[string]interface{} {
	t.Helper()

	raw, err := io.ReadAll(resp.Body)
	if err != nil {
		t.Fatalf("Failed to read response body: %v", err)
	}

	var body map[string]interface{}
	if err := json.Unmarshal(raw, &body); err != nil {
		t.Fatalf("Failed to decode response body %q: %v", raw, err)
	}
	return body
}
