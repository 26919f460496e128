package handlers_test

import (
	"net/http"
	"testing"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPasswordResetFlow(t *testing.T) {
	app := newTestApp(t)
	registerUser(t, app, "+998901112233", "u@x.com", "summer#2026")

	status, body := doRequest(t, app, http.MethodPost, "/api/auth/forgot-password", map[string]interface{}{
		"email": "u@x.com",
	}, "")
	require.Equal(t, fiber.StatusOK, status)

	debug, ok := body["debug"].(map[string]interface{})
	require.True(t, ok)
	code, _ := debug["code"].(string)
	require.Len(t, code, 4)

	// Re-requesting inside the resend window is throttled.
	status, _ = doRequest(t, app, http.MethodPost, "/api/auth/forgot-password", map[string]interface{}{
		"email": "u@x.com",
	}, "")
	assert.Equal(t, fiber.StatusTooManyRequests, status)

	wrong := "0000"
	if wrong == code {
		wrong = "0001"
	}
	status, _ = doRequest(t, app, http.MethodPost, "/api/auth/verify-reset-code", map[string]interface{}{
		"email": "u@x.com",
		"code":  wrong,
	}, "")
	assert.Equal(t, fiber.StatusBadRequest, status)

	status, _ = doRequest(t, app, http.MethodPost, "/api/auth/verify-reset-code", map[string]interface{}{
		"email": "u@x.com",
		"code":  code,
	}, "")
	assert.Equal(t, fiber.StatusOK, status)

	// A weak replacement password is rejected before the code is touched.
	status, _ = doRequest(t, app, http.MethodPost, "/api/auth/reset-password", map[string]interface{}{
		"email":        "u@x.com",
		"code":         code,
		"new_password": "short",
	}, "")
	assert.Equal(t, fiber.StatusBadRequest, status)

	status, _ = doRequest(t, app, http.MethodPost, "/api/auth/reset-password", map[string]interface{}{
		"email":        "u@x.com",
		"code":         code,
		"new_password": "autumn#2026",
	}, "")
	require.Equal(t, fiber.StatusOK, status)

	// The code is consumed by the reset.
	status, _ = doRequest(t, app, http.MethodPost, "/api/auth/verify-reset-code", map[string]interface{}{
		"email": "u@x.com",
		"code":  code,
	}, "")
	assert.Equal(t, fiber.StatusBadRequest, status)

	status, _ = doRequest(t, app, http.MethodPost, "/api/users/login", map[string]interface{}{
		"phone":    "+998901112233",
		"password": "autumn#2026",
	}, "")
	assert.Equal(t, fiber.StatusOK, status)

	status, _ = doRequest(t, app, http.MethodPost, "/api/users/login", map[string]interface{}{
		"phone":    "+998901112233",
		"password": "summer#2026",
	}, "")
	assert.Equal(t, fiber.StatusUnauthorized, status)
}

func TestForgotPassword_UnknownEmailDoesNotLeak(t *testing.T) {
	app := newTestApp(t)

	status, body := doRequest(t, app, http.MethodPost, "/api/auth/forgot-password", map[string]interface{}{
		"email": "nobody@x.com",
	}, "")
	require.Equal(t, fiber.StatusOK, status)
	assert.Equal(t, true, body["success"])

	_, hasDebug := body["debug"]
	assert.False(t, hasDebug)
}

func TestForgotPassword_MissingEmail(t *testing.T) {
	app := newTestApp(t)

	status, _ := doRequest(t, app, http.MethodPost, "/api/auth/forgot-password", map[string]interface{}{}, "")
	assert.Equal(t, fiber.StatusBadRequest, status)
}
