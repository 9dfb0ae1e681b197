// pkg/config/env_config.go
package config

import (
	"errors"
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"
)

// Renderer names accepted by the arena binary.
const (
	RendererTerminal = "terminal"
	RendererEngo     = "engo"
	RendererNull     = "null"
)

// EnvironmentConfig holds process-level settings read from the environment
type EnvironmentConfig struct {
	ConfigPath string // tuning file, empty for defaults
	Seed       uint64 // 0 seeds from the clock
	SaveApp    string // gdata application name for the best score
	Renderer   string
	TickRate   int // simulation ticks per second
	LogLevel   string
}

// LoadConfigFromEnv reads ARENA_* variables, falling back to defaults
func LoadConfigFromEnv() (*EnvironmentConfig, error) {
	config := &EnvironmentConfig{
		ConfigPath: getEnvOrDefault("ARENA_CONFIG", ""),
		Seed:       getEnvAsUintOrDefault("ARENA_SEED", 0),
		SaveApp:    getEnvOrDefault("ARENA_SAVE_APP", "crystal-raiders"),
		Renderer:   strings.ToLower(getEnvOrDefault("ARENA_RENDERER", RendererTerminal)),
		TickRate:   getEnvAsIntOrDefault("ARENA_TICK_RATE", 60),
		LogLevel:   strings.ToUpper(getEnvOrDefault("ARENA_LOG_LEVEL", "INFO")),
	}

	if err := ValidateEnvironmentConfig(config); err != nil {
		return nil, fmt.Errorf("invalid environment configuration: %w", err)
	}

	return config, nil
}

// ValidateEnvironmentConfig reports every invalid setting at once
func ValidateEnvironmentConfig(config *EnvironmentConfig) error {
	var errs []error

	switch config.Renderer {
	case RendererTerminal, RendererEngo, RendererNull:
	default:
		errs = append(errs, fmt.Errorf("unknown renderer %q", config.Renderer))
	}

	if config.TickRate < 1 || config.TickRate > 1000 {
		errs = append(errs, fmt.Errorf("tick rate must be between 1 and 1000, got %d", config.TickRate))
	}

	if strings.TrimSpace(config.SaveApp) == "" {
		errs = append(errs, errors.New("save app name cannot be empty"))
	}

	switch config.LogLevel {
	case "DEBUG", "INFO", "WARN", "ERROR":
	default:
		errs = append(errs, fmt.Errorf("unknown log level %q", config.LogLevel))
	}

	return errors.Join(errs...)
}

// TickInterval returns the wall-clock duration of one simulation tick
func (c *EnvironmentConfig) TickInterval() time.Duration {
	if c.TickRate <= 0 {
		return time.Second / 60
	}
	return time.Second / time.Duration(c.TickRate)
}

// ApplyEnvironmentOverrides overrides arena dimensions from ARENA_WIDTH and
// ARENA_HEIGHT when present
func ApplyEnvironmentOverrides(config *GameConfig) {
	config.Arena.Width = getEnvAsFloatOrDefault("ARENA_WIDTH", config.Arena.Width)
	config.Arena.Height = getEnvAsFloatOrDefault("ARENA_HEIGHT", config.Arena.Height)
}

func getEnvOrDefault(key, defaultValue string) string {
	if value, ok := os.LookupEnv(key); ok && value != "" {
		return value
	}
	return defaultValue
}

func getEnvAsIntOrDefault(key string, defaultValue int) int {
	if value, err := strconv.Atoi(os.Getenv(key)); err == nil {
		return value
	}
	return defaultValue
}

func getEnvAsUintOrDefault(key string, defaultValue uint64) uint64 {
	if value, err := strconv.ParseUint(os.Getenv(key), 10, 64); err == nil {
		return value
	}
	return defaultValue
}

func getEnvAsFloatOrDefault(key string, defaultValue float64) float64 {
	if value, err := strconv.ParseFloat(os.Getenv(key), 64); err == nil {
		return value
	}
	return defaultValue
}
