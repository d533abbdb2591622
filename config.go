package main

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"strconv"
	"strings"

	"github.com/joho/godotenv"
)

// Config is read from the environment, with a .env file in the working
// directory filling in anything not already set.
type Config struct {
	Port            string
	DatabaseURL     string
	RedisAddr       string
	RateLimit       int
	HistoryCapacity int
	AdminUsername   string
	AdminPassword   string
	JWTSecret       []byte
	LogLevel        string
}

func (c Config) adminEnabled() bool {
	return c.AdminUsername != "" && c.AdminPassword != "" && len(c.JWTSecret) > 0
}

func loadConfig() (Config, error) {
	if err := godotenv.Load(); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return Config{}, fmt.Errorf("load .env: %w", err)
	}

	rateLimit, err := getEnvInt("RATE_LIMIT", 60)
	if err != nil {
		return Config{}, err
	}
	capacity, err := getEnvInt("HISTORY_CAPACITY", 1000)
	if err != nil {
		return Config{}, err
	}

	return Config{
		Port:            getEnv("PORT", "1323"),
		DatabaseURL:     os.Getenv("DATABASE_URL"),
		RedisAddr:       os.Getenv("REDIS_ADDR"),
		RateLimit:       rateLimit,
		HistoryCapacity: capacity,
		AdminUsername:   os.Getenv("ADMIN_USERNAME"),
		AdminPassword:   os.Getenv("ADMIN_PASSWORD"),
		JWTSecret:       []byte(os.Getenv("JWT_SECRET")),
		LogLevel:        strings.ToLower(getEnv("LOG_LEVEL", "info")),
	}, nil
}

func getEnv(key, def string) string {
	if v, ok := os.LookupEnv(key); ok && v != "" {
		return v
	}
	return def
}

func getEnvInt(key string, def int) (int, error) {
	v := os.Getenv(key)
	if v == "" {
		return def, nil
	}
	n, err := strconv.Atoi(v)
	if err != nil || n < 0 {
		return 0, fmt.Errorf("%s must be a non-negative integer, got %q", key, v)
	}
	return n, nil
}
