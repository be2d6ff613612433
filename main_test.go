package main

import (
	"encoding/json"
	"io"
	"log"
	"net/http"
	"net/http/httptest"
	"os"
	"testing"
	"time"

	"tasklist/internal/models"

	"github.com/gofiber/fiber/v2"
	amqp "github.com/streadway/amqp"
	"github.com/stretchr/testify/assert"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
)

func TestMain(m *testing.M) {
	log.SetOutput(io.Discard)
	os.Exit(m.Run())
}

func newSmokeApp(t *testing.T) *fiber.App {
	t.Helper()

	db, err := gorm.Open(sqlite.Open("file::memory:?cache=shared"), &gorm.Config{TranslateError: true})
	if err != nil {
		t.Fatalf("failed to open in-memory database: %v", err)
	}
	if err := db.AutoMigrate(&models.User{}, &models.Task{}); err != nil {
		t.Fatalf("failed to migrate test database: %v", err)
	}

	app, _ := newApp(db, nil, appConfig{
		jwtSecret:  "test_jwt_secret",
		accessTTL:  12 * time.Hour,
		refreshTTL: 6 * 24 * time.Hour,
	})
	return app
}

func TestHealthCheck(t *testing.T) {
	app := newSmokeApp(t)

	req := httptest.NewRequest(http.MethodGet, "/health", nil)
	resp, err := app.Test(req, -1)
	assert.NoError(t, err)
	assert.Equal(t, http.StatusOK, resp.StatusCode)

	var body map[string]string
	assert.NoError(t, json.NewDecoder(resp.Body).Decode(&body))
	resp.Body.Close()
	assert.Equal(t, "healthy", body["status"])
}

func TestProtectedRoutesRejectAnonymousRequests(t *testing.T) {
	app := newSmokeApp(t)

	req := httptest.NewRequest(http.MethodGet, "/tasklist/1", nil)
	resp, err := app.Test(req, -1)
	assert.NoError(t, err)
	assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)
	resp.Body.Close()
}

func TestLogTaskEventAcksDeliveries(t *testing.T) {
	err := logTaskEvent(amqp.Delivery{
		Type:        "task.created",
		DeliveryTag: 1,
		Body:        []byte(`{"task_id":1,"user_id":1,"task":"t1"}`),
	})
	assert.NoError(t, err, "the logging handler must acknowledge every event")
}

func TestRequestIDHeaderIsEchoed(t *testing.T) {
	app := newSmokeApp(t)

	req := httptest.NewRequest(http.MethodGet, "/health", nil)
	req.Header.Set("X-Request-ID", "smoke-test-id")
	resp, err := app.Test(req, -1)
	assert.NoError(t, err)
	assert.Equal(t, "smoke-test-id", resp.Header.Get("X-Request-ID"))
	resp.Body.Close()
}
