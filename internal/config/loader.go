package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/joho/godotenv"
	"github.com/rs/zerolog"
	"github.com/spf13/viper"
	"gopkg.in/yaml.v3"
)

const (
	envPrefix            = "DOODLE"
	envConfigDefaultPath = "DOODLE_CONFIG_DEFAULT_PATH"
	defaultConfigName    = "config.yaml"
	dotEnvName           = ".env"
)

// Load builds configuration from defaults, optional config file, .env file and
// env vars, and returns the resolved path.
// Precedence: defaults < config file < env vars (.env never overrides the real
// environment) < caller overrides.
func Load(logger *zerolog.Logger, explicitPath string) (Config, string, error) {
	cfg := Default()
	configPath := resolveConfigPath(explicitPath)

	loadDotEnv(logger, filepath.Join(filepath.Dir(configPath), dotEnvName))

	v := viper.New()
	v.SetConfigType("yaml")
	setDefaults(v, cfg)

	v.SetEnvPrefix(envPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	v.SetConfigFile(configPath)

	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if errors.As(err, &notFound) || errors.Is(err, os.ErrNotExist) {
			if writeErr := writeDefaultConfig(configPath, cfg); writeErr != nil && logger != nil {
				logger.Warn().Err(writeErr).Str("path", configPath).Msg("failed to write default config")
			} else if logger != nil {
				logger.Info().Str("path", configPath).Msg("created default config")
			}
			// try reading again in case it was just written
			if readErr := v.ReadInConfig(); readErr != nil && logger != nil {
				logger.Warn().Err(readErr).Str("path", configPath).Msg("failed to read config after writing default")
			}
		} else {
			return cfg, configPath, fmt.Errorf("read config: %w", err)
		}
	}

	if err := v.Unmarshal(&cfg); err != nil {
		return cfg, configPath, fmt.Errorf("unmarshal config: %w", err)
	}

	return cfg, configPath, nil
}

// setDefaults registers every key so AutomaticEnv can override it even when
// the config file does not mention it.
func setDefaults(v *viper.Viper, cfg Config) {
	v.SetDefault("addr", cfg.Addr)
	v.SetDefault("read_header_timeout", cfg.ReadHeaderTimeout)
	v.SetDefault("shutdown_timeout", cfg.ShutdownTimeout)
	v.SetDefault("log_level", cfg.LogLevel)
	v.SetDefault("log_format", cfg.LogFormat)
	v.SetDefault("static_dir", cfg.StaticDir)
	v.SetDefault("index_file", cfg.IndexFile)
	v.SetDefault("allowed_origins", cfg.AllowedOrigins)
	v.SetDefault("max_message_bytes", cfg.MaxMessageBytes)
	v.SetDefault("event_buffer", cfg.EventBuffer)
	v.SetDefault("rate_limit", cfg.RateLimit)
	v.SetDefault("rate_burst", cfg.RateBurst)

	v.SetDefault("lobby.default_rounds", cfg.Lobby.DefaultRounds)
	v.SetDefault("lobby.default_drawing_time", cfg.Lobby.DefaultDrawingTime)
	v.SetDefault("lobby.max_rounds", cfg.Lobby.MaxRounds)
	v.SetDefault("lobby.min_drawing_time", cfg.Lobby.MinDrawingTime)
	v.SetDefault("lobby.max_drawing_time", cfg.Lobby.MaxDrawingTime)
	v.SetDefault("lobby.max_custom_words", cfg.Lobby.MaxCustomWords)
	v.SetDefault("lobby.room_name_length", cfg.Lobby.RoomNameLength)
	v.SetDefault("lobby.auto_advance", cfg.Lobby.AutoAdvance)
	v.SetDefault("lobby.names", cfg.Lobby.Names)
}

func loadDotEnv(logger *zerolog.Logger, path string) {
	err := godotenv.Load(path)
	if err == nil {
		if logger != nil {
			logger.Info().Str("path", path).Msg("loaded env file")
		}
		return
	}
	if !errors.Is(err, os.ErrNotExist) && logger != nil {
		logger.Warn().Err(err).Str("path", path).Msg("failed to load env file")
	}
}

func resolveConfigPath(explicitPath string) string {
	if explicitPath != "" {
		return explicitPath
	}

	if base := os.Getenv(envConfigDefaultPath); base != "" {
		if err := os.MkdirAll(base, 0o755); err == nil {
			return filepath.Join(base, defaultConfigName)
		}
	}

	cwd, err := os.Getwd()
	if err != nil {
		return defaultConfigName
	}
	return filepath.Join(cwd, defaultConfigName)
}

func writeDefaultConfig(path string, cfg Config) error {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return err
	}
	data, err := yaml.Marshal(cfg)
	if err != nil {
		return err
	}
	return os.WriteFile(path, data, 0o600)
}
