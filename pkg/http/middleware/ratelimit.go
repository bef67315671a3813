package middleware

import (
	"net/http"

	"github.com/labstack/echo/v4"
)

// Allower decides whether a request from key may proceed.
type Allower interface {
	Allow(key string) bool
}

// RateLimit hands requests to deny once the client's bucket is empty.
// Clients are keyed by Echo's RealIP. A nil deny writes 429 {"error":"rate limited"}.
func RateLimit(a Allower, deny echo.HandlerFunc) echo.MiddlewareFunc {
	if deny == nil {
		deny = func(c echo.Context) error {
			return c.JSON(http.StatusTooManyRequests, map[string]string{"error": "rate limited"})
		}
	}
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			if !a.Allow(c.RealIP()) {
				return deny(c)
			}
			return next(c)
		}
	}
}
