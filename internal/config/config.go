// Package config loads service configuration from the environment.
package config

import (
	"os"
	"strconv"
	"strings"
	"time"
)

type EventsCfg struct {
	Enabled bool
	Brokers string
	Topic   string
	H3Res   int
}

type Config struct {
	Addr            string
	LogLevel        string
	LogConsole      bool
	LayerServiceURL string
	AssetServiceURL string
	RedisAddr       string
	AssetCacheSize  int
	AssetCacheTTL   time.Duration
	CacheOpTimeout  time.Duration
	SubmitTimeout   time.Duration
	Events          EventsCfg
}

func FromEnv() Config {
	res := getint("EVENTS_H3_RES", 6)
	if res < 0 {
		res = 0
	}
	if res > 15 {
		res = 15
	}

	return Config{
		Addr:            getenv("ADDR", ":8080"),
		LogLevel:        getenv("LOG_LEVEL", "info"),
		LogConsole:      getbool("LOG_CONSOLE", false),
		LayerServiceURL: getenv("LAYER_SERVICE_URL", "http://localhost:8081"),
		AssetServiceURL: getenv("ASSET_SERVICE_URL", "http://localhost:8082"),
		RedisAddr:       getenv("REDIS_ADDR", "localhost:6379"),
		AssetCacheSize:  getint("ASSET_CACHE_SIZE", 512),
		AssetCacheTTL:   getduration("ASSET_CACHE_TTL", 5*time.Minute),
		CacheOpTimeout:  getduration("CACHE_OP_TIMEOUT", 250*time.Millisecond),
		SubmitTimeout:   getduration("SUBMIT_TIMEOUT", 30*time.Second),
		Events: EventsCfg{
			Enabled: getbool("EVENTS_ENABLED", false),
			Brokers: getenv("KAFKA_BROKERS", "localhost:9092"),
			Topic:   getenv("KAFKA_TOPIC", "scene-events"),
			H3Res:   res,
		},
	}
}

func getenv(k, def string) string {
	if v := os.Getenv(k); v != "" {
		return v
	}
	return def
}

func getint(k string, def int) int {
	if v := os.Getenv(k); v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			return n
		}
	}
	return def
}

func getbool(k string, def bool) bool {
	if v := os.Getenv(k); v != "" {
		switch strings.ToLower(strings.TrimSpace(v)) {
		case "1", "t", "true", "y", "yes":
			return true
		case "0", "f", "false", "n", "no":
			return false
		}
	}
	return def
}

func getduration(k string, def time.Duration) time.Duration {
	if v := os.Getenv(k); v != "" {
		if d, err := time.ParseDuration(v); err == nil {
			return d
		}
	}
	return def
}
