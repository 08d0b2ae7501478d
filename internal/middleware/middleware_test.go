package middleware

import (
	"io"
	"net/http"
	"net/http/httptest"
	"testing"

	"foodbank-backend/pkg/jwt"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newProtectedApp(svc jwt.JWTService) *fiber.App {
	app := fiber.New()
	m := NewMiddleware("")
	app.Use(m.CORSMiddleware())
	app.Get("/private", m.AuthMiddleware(svc), func(c *fiber.Ctx) error {
		return c.SendString(c.Locals("user_id").(string))
	})
	return app
}

func TestAuthMiddleware(t *testing.T) {
	svc := jwt.NewJWTService("secret", "FOODBANK")
	app := newProtectedApp(svc)
	token, err := svc.GenerateTokenUser("u1")
	require.NoError(t, err)

	tests := []struct {
		name     string
		header   string
		wantCode int
	}{
		{"no header", "", fiber.StatusUnauthorized},
		{"not bearer", "Basic abc", fiber.StatusUnauthorized},
		{"bad token", "Bearer abc", fiber.StatusUnauthorized},
		{"valid", "Bearer " + token, fiber.StatusOK},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := httptest.NewRequest(http.MethodGet, "/private", nil)
			if tt.header != "" {
				req.Header.Set(fiber.HeaderAuthorization, tt.header)
			}
			resp, err := app.Test(req)
			require.NoError(t, err)
			assert.Equal(t, tt.wantCode, resp.StatusCode)

			if tt.wantCode == fiber.StatusOK {
				body, err := io.ReadAll(resp.Body)
				require.NoError(t, err)
				assert.Equal(t, "u1", string(body))
			}
		})
	}
}

func TestCORSMiddleware_Preflight(t *testing.T) {
	app := newProtectedApp(jwt.NewJWTService("secret", "FOODBANK"))

	req := httptest.NewRequest(http.MethodOptions, "/private", nil)
	req.Header.Set(fiber.HeaderOrigin, "https://foodbank.example")
	req.Header.Set(fiber.HeaderAccessControlRequestMethod, http.MethodGet)

	resp, err := app.Test(req)
	require.NoError(t, err)
	assert.Equal(t, fiber.StatusNoContent, resp.StatusCode)
	assert.Equal(t, "*", resp.Header.Get(fiber.HeaderAccessControlAllowOrigin))
}

func TestOptionalAuthMiddleware(t *testing.T) {
	svc := jwt.NewJWTService("secret", "FOODBANK")
	app := fiber.New()
	app.Post("/users", NewMiddleware("").OptionalAuthMiddleware(svc), func(c *fiber.Ctx) error {
		userID, _ := c.Locals("user_id").(string)
		return c.SendString(userID)
	})
	token, err := svc.GenerateTokenUser("u1")
	require.NoError(t, err)

	tests := []struct {
		name     string
		header   string
		wantCode int
		wantBody string
	}{
		{"anonymous", "", fiber.StatusOK, ""},
		{"bad token", "Bearer abc", fiber.StatusUnauthorized, ""},
		{"valid", "Bearer " + token, fiber.StatusOK, "u1"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := httptest.NewRequest(http.MethodPost, "/users", nil)
			if tt.header != "" {
				req.Header.Set(fiber.HeaderAuthorization, tt.header)
			}
			resp, err := app.Test(req)
			require.NoError(t, err)
			assert.Equal(t, tt.wantCode, resp.StatusCode)

			if tt.wantCode == fiber.StatusOK {
				body, err := io.ReadAll(resp.Body)
				require.NoError(t, err)
				assert.Equal(t, tt.wantBody, string(body))
			}
		})
	}
}
