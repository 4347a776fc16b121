package config

import (
	"log/slog"
	"os"
	"strconv"
	"time"
)

type Database struct {
	Driver string
	URL    string
}

type Delivery struct {
	Mode  string
	Delay time.Duration
}

type Config struct {
	Port          string
	Database      Database
	SecretKey     string
	Timezone      string
	Delivery      Delivery
	MaxVideoSize  int64
	PreviewTTL    time.Duration
	SeedMockPosts bool
}

func LoadConfig() *Config {
	return &Config{
		Port: getEnv("PORT", "3000"),
		Database: Database{
			Driver: getEnv("DATABASE_DRIVER", "sqlite"),
			URL:    getEnv("DATABASE_URL", "story-scheduler.db"),
		},
		SecretKey: getEnv("SECRET_KEY", ""),
		Timezone:  getEnv("TIMEZONE", ""),
		Delivery: Delivery{
			Mode:  getEnv("DELIVERY_MODE", "log"),
			Delay: getEnvDuration("DELIVERY_DELAY", 1500*time.Millisecond),
		},
		MaxVideoSize:  int64(getEnvInt("MAX_VIDEO_SIZE_MB", 100)) * 1024 * 1024,
		PreviewTTL:    getEnvDuration("PREVIEW_TTL", time.Hour),
		SeedMockPosts: getEnvBool("SEED_MOCK_POSTS", true),
	}
}

// Location resolves Timezone, falling back to the process local zone.
func (c *Config) Location() *time.Location {
	if c.Timezone == "" {
		return time.Local
	}
	loc, err := time.LoadLocation(c.Timezone)
	if err != nil {
		slog.Info(err.Error())
		return time.Local
	}
	return loc
}

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getEnvInt(key string, defaultValue int) int {
	n, err := strconv.Atoi(getEnv(key, ""))
	if err != nil {
		return defaultValue
	}
	return n
}

func getEnvBool(key string, defaultValue bool) bool {
	b, err := strconv.ParseBool(getEnv(key, ""))
	if err != nil {
		return defaultValue
	}
	return b
}

func getEnvDuration(key string, defaultValue time.Duration) time.Duration {
	d, err := time.ParseDuration(getEnv(key, ""))
	if err != nil {
		return defaultValue
	}
	return d
}
