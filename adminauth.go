package main

import (
	"crypto/subtle"
	"fmt"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/labstack/echo/v4"
)

const (
	adminTokenTTL = time.Hour
	tokenIssuer   = "slab-tax"
)

// validateAdmin ใช้กับ middleware.BasicAuth ของ route login
func (h *Handler) validateAdmin(username, password string, _ echo.Context) (bool, error) {
	if !h.cfg.adminEnabled() {
		return false, nil
	}
	userOK := subtle.ConstantTimeCompare([]byte(username), []byte(h.cfg.AdminUsername)) == 1
	passOK := subtle.ConstantTimeCompare([]byte(password), []byte(h.cfg.AdminPassword)) == 1
	return userOK && passOK, nil
}

func (h *Handler) issueAdminToken(username string) (string, time.Time, error) {
	now := h.now()
	exp := now.Add(adminTokenTTL)
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.RegisteredClaims{
		Issuer:    tokenIssuer,
		Subject:   username,
		IssuedAt:  jwt.NewNumericDate(now),
		ExpiresAt: jwt.NewNumericDate(exp),
	})
	signed, err := token.SignedString(h.cfg.JWTSecret)
	if err != nil {
		return "", time.Time{}, err
	}
	return signed, exp, nil
}

// HandleAdminLogin runs behind basic auth and hands out a bearer token.
func (h *Handler) HandleAdminLogin(c echo.Context) error {
	token, exp, err := h.issueAdminToken(h.cfg.AdminUsername)
	if err != nil {
		log.WithError(err).Error("sign admin token")
		return echo.NewHTTPError(http.StatusInternalServerError, "Could not issue token")
	}
	return c.JSON(http.StatusOK, echo.Map{
		"token":     token,
		"expiresAt": exp.UTC().Format(time.RFC3339),
	})
}

// RequireAdminToken checks "Authorization: Bearer <jwt>" on admin routes.
func (h *Handler) RequireAdminToken(next echo.HandlerFunc) echo.HandlerFunc {
	return func(c echo.Context) error {
		authHeader := c.Request().Header.Get(echo.HeaderAuthorization)
		parts := strings.SplitN(authHeader, " ", 2)
		if len(parts) != 2 || !strings.EqualFold(parts[0], "bearer") {
			return echo.NewHTTPError(http.StatusUnauthorized, "Authorization token not provided")
		}

		claims := new(jwt.RegisteredClaims)
		token, err := jwt.ParseWithClaims(strings.TrimSpace(parts[1]), claims, func(t *jwt.Token) (interface{}, error) {
			if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
				return nil, fmt.Errorf("unexpected signing method: %v", t.Header["alg"])
			}
			return h.cfg.JWTSecret, nil
		},
			jwt.WithIssuer(tokenIssuer),
			jwt.WithTimeFunc(h.now),
			jwt.WithExpirationRequired(),
		)
		if err != nil || !token.Valid {
			return echo.NewHTTPError(http.StatusUnauthorized, "Invalid or expired token")
		}
		c.Set("admin", claims.Subject)
		return next(c)
	}
}

// HandleListComparisons returns the most recent stored comparisons.
func (h *Handler) HandleListComparisons(c echo.Context) error {
	limit := 0
	if s := c.QueryParam("limit"); s != "" {
		n, err := strconv.Atoi(s)
		if err != nil || n <= 0 {
			return echo.NewHTTPError(http.StatusBadRequest, "limit must be a positive integer")
		}
		limit = n
	}

	records, err := h.store.Recent(c.Request().Context(), limit)
	if err != nil {
		log.WithError(err).Error("list comparisons")
		return echo.NewHTTPError(http.StatusInternalServerError, "Could not load comparisons")
	}
	return c.JSON(http.StatusOK, echo.Map{"comparisons": records})
}
