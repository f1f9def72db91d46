package middleware_test

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"barstock/internal/middleware"

	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func TestOriginPolicy_Allow(t *testing.T) {
	policy := middleware.OriginPolicy{
		Production:      true,
		AllowedOrigins:  []string{"https://app.example.com"},
		PreviewContains: "barstock-app",
		PreviewSuffix:   ".vercel.app",
	}

	cases := []struct {
		name   string
		origin string
		want   bool
	}{
		{"no origin", "", true},
		{"allow-listed", "https://app.example.com", true},
		{"preview url", "https://barstock-app-git-main.vercel.app", true},
		{"preview pattern without suffix", "https://barstock-app.example.org", false},
		{"localhost in production", "http://localhost:3000", false},
		{"unknown origin", "https://evil.example.com", false},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.want, policy.Allow(tc.origin))
		})
	}
}

func TestOriginPolicy_AllowsLocalhostInDevelopment(t *testing.T) {
	policy := middleware.OriginPolicy{Production: false}

	assert.True(t, policy.Allow("http://localhost:3000"))
	assert.True(t, policy.Allow("http://localhost:5173"))
	assert.False(t, policy.Allow("https://evil.example.com"))
}

func newCORSTestServer(policy middleware.OriginPolicy) *echo.Echo {
	e := echo.New()
	e.Use(middleware.CORS(policy, zap.NewNop()))
	e.GET("/ping", func(c echo.Context) error {
		return c.String(http.StatusOK, "pong")
	})
	return e
}

func TestCORS_AllowedOrigin(t *testing.T) {
	e := newCORSTestServer(middleware.OriginPolicy{
		AllowedOrigins: []string{"https://app.example.com"},
		Production:     true,
	})

	req := httptest.NewRequest(http.MethodGet, "/ping", nil)
	req.Header.Set(echo.HeaderOrigin, "https://app.example.com")
	rec := httptest.NewRecorder()
	e.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "https://app.example.com", rec.Header().Get(echo.HeaderAccessControlAllowOrigin))
	assert.Equal(t, "true", rec.Header().Get(echo.HeaderAccessControlAllowCredentials))
}

// 拒否は汎用の404/エラーハンドラではなく、専用の403ボディで返す
func TestCORS_DeniedOrigin(t *testing.T) {
	e := newCORSTestServer(middleware.OriginPolicy{Production: true})

	req := httptest.NewRequest(http.MethodGet, "/ping", nil)
	req.Header.Set(echo.HeaderOrigin, "https://evil.example.com")
	rec := httptest.NewRecorder()
	e.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusForbidden, rec.Code)

	var body struct {
		Success bool   `json:"success"`
		Message string `json:"message"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	assert.False(t, body.Success)
	assert.Equal(t, "origin not allowed", body.Message)
	assert.Empty(t, rec.Header().Get(echo.HeaderAccessControlAllowOrigin))
}

func TestCORS_Preflight(t *testing.T) {
	e := newCORSTestServer(middleware.OriginPolicy{
		AllowedOrigins: []string{"https://app.example.com"},
		Production:     true,
	})

	req := httptest.NewRequest(http.MethodOptions, "/ping", nil)
	req.Header.Set(echo.HeaderOrigin, "https://app.example.com")
	rec := httptest.NewRecorder()
	e.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Header().Get(echo.HeaderAccessControlAllowMethods), "PATCH")
	assert.Contains(t, rec.Header().Get(echo.HeaderAccessControlAllowHeaders), "Authorization")
	assert.Equal(t, "86400", rec.Header().Get(echo.HeaderAccessControlMaxAge))
}
