package config

import (
	"fmt"
	"os"
	"strconv"
	"time"
)

// Config represents the application configuration
type Config struct {
	// Redis configuration
	RedisAddr            string
	RedisDB              int
	RedisStream          string
	RedisStreamCount     int
	RedisStreamMaxLength int

	// Memcache configuration
	MemcacheAddr string

	// Harvester configuration
	FetchDelay      time.Duration
	HarvestInterval time.Duration
	RendererAddr    string
	SitesFile       string

	// Exporter configuration
	OutputPath string

	// Environment
	Environment string
}

// LoadConfig loads the configuration from environment variables with defaults
func LoadConfig() Config {
	redisDB, _ := strconv.Atoi(getEnv("REDIS_DB", "0"))
	streamCount, _ := strconv.Atoi(getEnv("REDIS_STREAM_COUNT", "1"))
	streamMaxLength, _ := strconv.Atoi(getEnv("REDIS_STREAM_MAX_LENGTH", "500"))
	fetchDelayMs, _ := strconv.Atoi(getEnv("FETCH_DELAY_MS", "1500"))
	harvestInterval, _ := strconv.Atoi(getEnv("HARVEST_INTERVAL_SECONDS", "0"))

	return Config{
		RedisAddr:            getEnv("REDIS_ADDR", "localhost:6379"),
		RedisDB:              redisDB,
		RedisStream:          getEnv("REDIS_STREAM", "products"),
		RedisStreamCount:     streamCount,
		RedisStreamMaxLength: streamMaxLength,
		MemcacheAddr:         getEnv("MEMCACHE_ADDR", "localhost:11211"),
		FetchDelay:           time.Duration(fetchDelayMs) * time.Millisecond,
		HarvestInterval:      time.Duration(harvestInterval) * time.Second,
		RendererAddr:         getEnv("RENDERER_ADDR", ""),
		SitesFile:            getEnv("SITES_FILE", ""),
		OutputPath:           getEnv("OUTPUT_PATH", "products.csv"),
		Environment:          getEnv("SOUKSCAN_ENVIRONMENT", "development"),
	}
}

// Validate checks the configuration for values that cannot work
func (c *Config) Validate() error {
	if c.RedisStreamCount < 1 {
		return fmt.Errorf("REDIS_STREAM_COUNT must be at least 1, got %d", c.RedisStreamCount)
	}
	if c.RedisStreamMaxLength < 1 {
		return fmt.Errorf("REDIS_STREAM_MAX_LENGTH must be at least 1, got %d", c.RedisStreamMaxLength)
	}
	if c.FetchDelay < 0 {
		return fmt.Errorf("FETCH_DELAY_MS must not be negative")
	}
	if c.OutputPath == "" {
		return fmt.Errorf("OUTPUT_PATH must not be empty")
	}
	return nil
}

// getEnv retrieves an environment variable or returns a default value
func getEnv(key, defaultValue string) string {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue
	}
	return value
}
