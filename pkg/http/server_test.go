package http

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/assert"
)

func TestServerCORSToggle(t *testing.T) {
	tests := []struct {
		name   string
		cors   bool
		origin string
	}{
		{"enabled", true, "*"},
		{"disabled", false, ""},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s := NewServer(nil, WithCORS(tt.cors), WithMetricsPath(""))
			s.Echo().GET("/health", func(c echo.Context) error { return c.NoContent(http.StatusOK) })

			req := httptest.NewRequest(http.MethodGet, "/health", nil)
			req.Header.Set(echo.HeaderOrigin, "https://example.com")
			rec := httptest.NewRecorder()
			s.Echo().ServeHTTP(rec, req)

			assert.Equal(t, http.StatusOK, rec.Code)
			assert.Equal(t, tt.origin, rec.Header().Get(echo.HeaderAccessControlAllowOrigin))
		})
	}
}
