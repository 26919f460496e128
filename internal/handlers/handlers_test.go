package handlers_test

import (
	"bytes"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"

	"github.com/example/grocery/internal/config"
	"github.com/example/grocery/internal/models"
	"github.com/example/grocery/internal/routes"
)

func newTestApp(t *testing.T, opts ...func(*config.Config)) *fiber.App {
	t.Helper()

	dsn := fmt.Sprintf("file:%s?mode=memory&cache=shared", uuid.NewString())
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{})
	require.NoError(t, err)
	require.NoError(t, db.AutoMigrate(
		&models.User{},
		&models.PasswordResetCode{},
		&models.Card{},
		&models.Category{},
		&models.Product{},
		&models.Bundle{},
		&models.BundleItem{},
		&models.Order{},
		&models.OrderItem{},
	))

	cfg := &config.Config{
		JWTSecret:    "test-secret",
		TokenExpires: time.Hour,
	}
	for _, opt := range opts {
		opt(cfg)
	}

	app := fiber.New()
	routes.Register(app, db, cfg)
	return app
}

func doRequest(t *testing.T, app *fiber.App, method, path string, payload interface{}, token string) (int, map[string]interface{}) {
	t.Helper()

	var body *bytes.Buffer
	if payload != nil {
		encoded, err := json.Marshal(payload)
		require.NoError(t, err)
		body = bytes.NewBuffer(encoded)
	} else {
		body = bytes.NewBuffer(nil)
	}

	req := httptest.NewRequest(method, path, body)
	if payload != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	resp, err := app.Test(req, -1)
	require.NoError(t, err)
	defer resp.Body.Close()

	parsed := map[string]interface{}{}
	if resp.Header.Get("Content-Type") != "" &&
		resp.Header.Get("Content-Type") != "text/plain; charset=utf-8" {
		_ = json.NewDecoder(resp.Body).Decode(&parsed)
	}

	return resp.StatusCode, parsed
}

func registerUser(t *testing.T, app *fiber.App, phone, email, password string) (userID, token string) {
	t.Helper()

	status, body := doRequest(t, app, http.MethodPost, "/api/users/register", map[string]interface{}{
		"name":     "Test User",
		"phone":    phone,
		"email":    email,
		"password": password,
	}, "")
	require.Equal(t, fiber.StatusCreated, status)

	data, ok := body["data"].(map[string]interface{})
	require.True(t, ok)
	userID, _ = data["id"].(string)
	token, _ = body["token"].(string)
	require.NotEmpty(t, userID)
	require.NotEmpty(t, token)
	return userID, token
}
