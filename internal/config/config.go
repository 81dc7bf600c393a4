package config

import (
	"log/slog"
	"os"
	"strconv"
)

type Config struct {
	Port        string
	LogLevel    slog.Level
	MaxUploadMB int64
	TrendWeeks  int
}

func FromEnv() Config {
	lvl := slog.LevelInfo
	if os.Getenv("LOG_LEVEL") == "debug" {
		lvl = slog.LevelDebug
	}
	return Config{
		Port:        envOr("PORT", "8080"),
		LogLevel:    lvl,
		MaxUploadMB: envInt64("MAX_UPLOAD_MB", 10),
		TrendWeeks:  int(envInt64("TREND_WEEKS", 12)),
	}
}

func envOr(k, def string) string {
	v := os.Getenv(k)
	if v == "" {
		return def
	}
	return v
}

func envInt64(k string, def int64) int64 {
	v := os.Getenv(k)
	if v == "" {
		return def
	}
	n, err := strconv.ParseInt(v, 10, 64)
	if err != nil || n <= 0 {
		return def
	}
	return n
}
