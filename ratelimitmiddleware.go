package main

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/windeesel365/slab-tax/ratelimit"
)

// RateLimit rejects clients over budget with 429. When the limiter backend is
// unreachable the request goes through.
func RateLimit(limiter ratelimit.Limiter) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			ok, err := limiter.Allow(c.Request().Context(), c.RealIP())
			if err != nil {
				log.WithError(err).Warn("rate limiter unavailable")
				return next(c)
			}
			if !ok {
				return echo.NewHTTPError(http.StatusTooManyRequests, "rate limit exceeded")
			}
			return next(c)
		}
	}
}
