package config

import (
	"errors"
	"fmt"
	"time"

	"github.com/vovakirdan/doodle-lobby/internal/lobby"
)

// Config holds server configuration values.
type Config struct {
	Addr              string        `mapstructure:"addr" yaml:"addr"`
	ReadHeaderTimeout time.Duration `mapstructure:"read_header_timeout" yaml:"read_header_timeout"`
	ShutdownTimeout   time.Duration `mapstructure:"shutdown_timeout" yaml:"shutdown_timeout"`
	LogLevel          string        `mapstructure:"log_level" yaml:"log_level"`
	LogFormat         string        `mapstructure:"log_format" yaml:"log_format"`

	StaticDir      string   `mapstructure:"static_dir" yaml:"static_dir"`
	IndexFile      string   `mapstructure:"index_file" yaml:"index_file"`
	AllowedOrigins []string `mapstructure:"allowed_origins" yaml:"allowed_origins"`

	MaxMessageBytes int64   `mapstructure:"max_message_bytes" yaml:"max_message_bytes"`
	EventBuffer     int     `mapstructure:"event_buffer" yaml:"event_buffer"`
	RateLimit       float64 `mapstructure:"rate_limit" yaml:"rate_limit"`
	RateBurst       int     `mapstructure:"rate_burst" yaml:"rate_burst"`

	Lobby LobbyConfig `mapstructure:"lobby" yaml:"lobby"`
}

// LobbyConfig holds room defaults and limits.
type LobbyConfig struct {
	DefaultRounds      int      `mapstructure:"default_rounds" yaml:"default_rounds"`
	DefaultDrawingTime int      `mapstructure:"default_drawing_time" yaml:"default_drawing_time"`
	MaxRounds          int      `mapstructure:"max_rounds" yaml:"max_rounds"`
	MinDrawingTime     int      `mapstructure:"min_drawing_time" yaml:"min_drawing_time"`
	MaxDrawingTime     int      `mapstructure:"max_drawing_time" yaml:"max_drawing_time"`
	MaxCustomWords     int      `mapstructure:"max_custom_words" yaml:"max_custom_words"`
	RoomNameLength     int      `mapstructure:"room_name_length" yaml:"room_name_length"`
	AutoAdvance        bool     `mapstructure:"auto_advance" yaml:"auto_advance"`
	Names              []string `mapstructure:"names" yaml:"names,omitempty"`
}

// Default returns configuration with reasonable starter defaults.
func Default() Config {
	return Config{
		Addr:              ":3000",
		ReadHeaderTimeout: 5 * time.Second,
		ShutdownTimeout:   5 * time.Second,
		LogLevel:          "info",
		LogFormat:         "console",
		StaticDir:         "public",
		IndexFile:         "views/index.html",
		AllowedOrigins:    []string{"*"},
		MaxMessageBytes:   4096,
		EventBuffer:       32,
		RateLimit:         20,
		RateBurst:         40,
		Lobby: LobbyConfig{
			DefaultRounds:      3,
			DefaultDrawingTime: 60,
			MaxRounds:          10,
			MinDrawingTime:     15,
			MaxDrawingTime:     240,
			MaxCustomWords:     2000,
			RoomNameLength:     6,
			AutoAdvance:        true,
		},
	}
}

// UpdateFrom overwrites non-zero values from other config into receiver.
func (c *Config) UpdateFrom(other Config) {
	if other.Addr != "" {
		c.Addr = other.Addr
	}
	if other.ReadHeaderTimeout != 0 {
		c.ReadHeaderTimeout = other.ReadHeaderTimeout
	}
	if other.ShutdownTimeout != 0 {
		c.ShutdownTimeout = other.ShutdownTimeout
	}
	if other.LogLevel != "" {
		c.LogLevel = other.LogLevel
	}
	if other.LogFormat != "" {
		c.LogFormat = other.LogFormat
	}
	if other.StaticDir != "" {
		c.StaticDir = other.StaticDir
	}
	if other.IndexFile != "" {
		c.IndexFile = other.IndexFile
	}
	if len(other.AllowedOrigins) > 0 {
		c.AllowedOrigins = other.AllowedOrigins
	}
	if other.MaxMessageBytes != 0 {
		c.MaxMessageBytes = other.MaxMessageBytes
	}
	if other.EventBuffer != 0 {
		c.EventBuffer = other.EventBuffer
	}
	if other.RateLimit != 0 {
		c.RateLimit = other.RateLimit
	}
	if other.RateBurst != 0 {
		c.RateBurst = other.RateBurst
	}
}

// Validate rejects configurations the server cannot run with.
func (c Config) Validate() error {
	var errs []error
	if c.Addr == "" {
		errs = append(errs, errors.New("addr is required"))
	}
	if c.LogFormat != "console" && c.LogFormat != "json" {
		errs = append(errs, fmt.Errorf("log_format must be console or json, got %q", c.LogFormat))
	}
	if c.MaxMessageBytes <= 0 {
		errs = append(errs, errors.New("max_message_bytes must be positive"))
	}
	if c.EventBuffer <= 0 {
		errs = append(errs, errors.New("event_buffer must be positive"))
	}
	if c.RateLimit < 0 || c.RateBurst < 0 {
		errs = append(errs, errors.New("rate_limit and rate_burst must not be negative"))
	}

	l := c.Lobby
	if l.MaxRounds < 1 {
		errs = append(errs, errors.New("lobby.max_rounds must be positive"))
	}
	if l.DefaultRounds < 1 || l.DefaultRounds > l.MaxRounds {
		errs = append(errs, fmt.Errorf("lobby.default_rounds must be within 1..%d", l.MaxRounds))
	}
	if l.MinDrawingTime < 1 || l.MinDrawingTime > l.MaxDrawingTime {
		errs = append(errs, errors.New("lobby.min_drawing_time must be positive and not above max_drawing_time"))
	}
	if l.DefaultDrawingTime < l.MinDrawingTime || l.DefaultDrawingTime > l.MaxDrawingTime {
		errs = append(errs, fmt.Errorf("lobby.default_drawing_time must be within %d..%d", l.MinDrawingTime, l.MaxDrawingTime))
	}
	if l.MaxCustomWords < 0 {
		errs = append(errs, errors.New("lobby.max_custom_words must not be negative"))
	}
	if l.RoomNameLength < lobby.MinRoomNameLength {
		errs = append(errs, fmt.Errorf("lobby.room_name_length must be at least %d", lobby.MinRoomNameLength))
	}

	seen := make(map[string]struct{}, len(l.Names))
	for _, name := range l.Names {
		if !lobby.ValidName(name) {
			errs = append(errs, fmt.Errorf("lobby.names: %q is not a valid player name", name))
			continue
		}
		if _, dup := seen[name]; dup {
			errs = append(errs, fmt.Errorf("lobby.names: %q is listed twice", name))
		}
		seen[name] = struct{}{}
	}
	return errors.Join(errs...)
}
