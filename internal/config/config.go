// Package config loads environment configuration and widget profiles.
package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"
)

const (
	defaultListenAddr      = "0.0.0.0:8787"
	defaultDataDir         = "./data"
	defaultFPS             = 60
	defaultLogLevel        = "info"
	defaultMJPEGEnabled    = true
	defaultMJPEGIntervalMs = 120
	defaultMJPEGQuality    = 60
)

// Config holds runtime configuration values.
type Config struct {
	ListenAddr      string
	UIPassword      string
	DataDir         string
	ProfilePath     string
	StorePath       string
	ImagePath       string
	LogLevel        string
	FPS             int
	MJPEGEnabled    bool
	MJPEGIntervalMs int
	MJPEGQuality    int
}

// Load reads configuration from ./data/.env and environment variables.
func Load() (Config, error) {
	cfg := Config{
		ListenAddr:      defaultListenAddr,
		DataDir:         defaultDataDir,
		LogLevel:        defaultLogLevel,
		FPS:             defaultFPS,
		MJPEGEnabled:    defaultMJPEGEnabled,
		MJPEGIntervalMs: defaultMJPEGIntervalMs,
		MJPEGQuality:    defaultMJPEGQuality,
	}

	if err := loadEnvFile(filepath.Join(cfg.DataDir, ".env")); err != nil {
		return Config{}, err
	}

	cfg.ListenAddr = envString("LISTEN_ADDR", cfg.ListenAddr)
	cfg.DataDir = envString("DATA_DIR", cfg.DataDir)
	cfg.ProfilePath = envString("PROFILE_PATH", filepath.Join(cfg.DataDir, "profiles.yaml"))
	cfg.StorePath = envString("STORE_PATH", filepath.Join(cfg.DataDir, "crops.json"))
	cfg.ImagePath = envString("IMAGE_PATH", "")
	cfg.LogLevel = envString("LOG_LEVEL", cfg.LogLevel)
	cfg.UIPassword = strings.TrimSpace(os.Getenv("UI_PASSWORD"))

	fps, err := envInt("FPS", cfg.FPS)
	if err != nil {
		return Config{}, err
	}
	if fps <= 0 || fps > 240 {
		return Config{}, fmt.Errorf("FPS must be 1-240")
	}
	cfg.FPS = fps

	cfg.MJPEGEnabled = envBool("MJPEG_ENABLED", cfg.MJPEGEnabled)

	mjpegInterval, err := envInt("MJPEG_INTERVAL_MS", cfg.MJPEGIntervalMs)
	if err != nil {
		return Config{}, err
	}
	if mjpegInterval < 0 {
		return Config{}, fmt.Errorf("MJPEG_INTERVAL_MS must be >= 0")
	}
	cfg.MJPEGIntervalMs = mjpegInterval

	mjpegQuality, err := envInt("MJPEG_QUALITY", cfg.MJPEGQuality)
	if err != nil {
		return Config{}, err
	}
	if mjpegQuality <= 0 || mjpegQuality > 100 {
		return Config{}, fmt.Errorf("MJPEG_QUALITY must be 1-100")
	}
	cfg.MJPEGQuality = mjpegQuality

	if cfg.UIPassword == "" {
		return Config{}, errors.New("UI_PASSWORD is required")
	}

	return cfg, nil
}

// envString returns an env override when present, otherwise a default.
func envString(key, def string) string {
	if v := strings.TrimSpace(os.Getenv(key)); v != "" {
		return v
	}
	return def
}

// envInt returns an int env override when present, otherwise a default.
func envInt(key string, def int) (int, error) {
	raw := strings.TrimSpace(os.Getenv(key))
	if raw == "" {
		return def, nil
	}
	value, err := strconv.Atoi(raw)
	if err != nil {
		return 0, fmt.Errorf("%s must be an integer: %w", key, err)
	}
	return value, nil
}

// envBool returns a bool env override when present, otherwise a default.
func envBool(key string, def bool) bool {
	raw := strings.TrimSpace(os.Getenv(key))
	if raw == "" {
		return def
	}
	switch strings.ToLower(raw) {
	case "1", "true", "yes", "y", "on":
		return true
	case "0", "false", "no", "n", "off":
		return false
	default:
		return def
	}
}

// loadEnvFile loads KEY=VALUE pairs from a .env file.
func loadEnvFile(path string) error {
	data, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return nil
		}
		return err
	}

	for _, line := range strings.Split(string(data), "\n") {
		key, value, ok := parseEnvLine(line)
		if !ok {
			continue
		}
		if _, exists := os.LookupEnv(key); !exists {
			if err := os.Setenv(key, value); err != nil {
				return err
			}
		}
	}

	return nil
}

// parseEnvLine parses a single .env line into key/value.
func parseEnvLine(line string) (string, string, bool) {
	line = strings.TrimSpace(line)
	if line == "" || strings.HasPrefix(line, "#") {
		return "", "", false
	}
	if strings.HasPrefix(line, "export ") {
		line = strings.TrimSpace(strings.TrimPrefix(line, "export "))
	}
	parts := strings.SplitN(line, "=", 2)
	if len(parts) != 2 {
		return "", "", false
	}
	key := strings.TrimSpace(parts[0])
	value := strings.TrimSpace(parts[1])
	if key == "" {
		return "", "", false
	}
	value = strings.Trim(value, `"'`)
	return key, value, true
}
