package main

import (
	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"

	"github.com/windeesel365/slab-tax/ratelimit"
)

// newServer wires routes; limiter may be nil to disable throttling.
func newServer(h *Handler, limiter ratelimit.Limiter) (*echo.Echo, error) {
	renderer, err := newTemplateRenderer()
	if err != nil {
		return nil, err
	}

	e := echo.New()
	e.HideBanner = true
	e.HidePort = true
	// key clients on the TCP peer; X-Forwarded-For is client controlled
	e.IPExtractor = echo.ExtractIPDirect()
	e.Renderer = renderer
	e.Use(middleware.Recover())
	e.Use(requestLogger())

	throttle := func(next echo.HandlerFunc) echo.HandlerFunc { return next }
	if limiter != nil {
		throttle = RateLimit(limiter)
	}

	e.GET("/", h.HandleForm)
	e.POST("/", h.HandleFormSubmit, throttle)

	tax := e.Group("/tax", throttle)
	tax.POST("/compare", h.HandleTaxComparison)
	tax.GET("/compare/pdf", h.HandleComparisonPDF)
	tax.POST("/compare/upload-csv", h.HandleFileUpload)
	tax.GET("/regimes", h.HandleListRegimes)

	if h.cfg.adminEnabled() && h.store != nil {
		admin := e.Group("/admin")
		admin.POST("/login", h.HandleAdminLogin, middleware.BasicAuth(h.validateAdmin))
		admin.GET("/comparisons", h.HandleListComparisons, h.RequireAdminToken)
	}

	return e, nil
}
