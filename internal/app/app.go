package app

import (
	"context"
	stdhttp "net/http"
	"time"

	"github.com/rs/zerolog"

	"github.com/vovakirdan/doodle-lobby/internal/config"
	"github.com/vovakirdan/doodle-lobby/internal/core"
	"github.com/vovakirdan/doodle-lobby/internal/lobby"
	transporthttp "github.com/vovakirdan/doodle-lobby/internal/transport/http"
)

// App wires together core and transport layers.
type App struct {
	server          *stdhttp.Server
	shutdownTimeout time.Duration
	hub             *core.Hub
	log             *zerolog.Logger
}

// New constructs the application with provided configuration.
func New(cfg *config.Config, logger *zerolog.Logger) *App {
	hub := core.NewHub(HubOptions(cfg), logger)
	server := transporthttp.NewServer(hub, cfg, logger)

	logger.Info().
		Int("default_rounds", cfg.Lobby.DefaultRounds).
		Int("default_drawing_time", cfg.Lobby.DefaultDrawingTime).
		Bool("auto_advance", cfg.Lobby.AutoAdvance).
		Msg("lobby configured")

	return &App{
		server:          server,
		shutdownTimeout: cfg.ShutdownTimeout,
		hub:             hub,
		log:             logger,
	}
}

// HubOptions translates the lobby section of cfg into hub options.
func HubOptions(cfg *config.Config) core.Options {
	lc := cfg.Lobby
	return core.Options{
		Defaults: lobby.Settings{
			Rounds:      lc.DefaultRounds,
			DrawingTime: lc.DefaultDrawingTime,
		},
		Limits: lobby.Limits{
			MaxRounds:      lc.MaxRounds,
			MinDrawingTime: lc.MinDrawingTime,
			MaxDrawingTime: lc.MaxDrawingTime,
			MaxCustomWords: lc.MaxCustomWords,
		},
		RoomNameLength: lc.RoomNameLength,
		AutoAdvance:    lc.AutoAdvance,
		Names:          lobby.NewPoolPicker(lc.Names),
	}
}

// Run starts the HTTP server and blocks until context cancellation or fatal error.
func (a *App) Run(ctx context.Context) error {
	serverErr := make(chan error, 1)

	hubCtx, stopHub := context.WithCancel(context.Background())
	defer stopHub()
	go a.hub.Run(hubCtx)

	go func() {
		a.log.Info().Str("addr", a.server.Addr).Msg("http server listening")
		if err := a.server.ListenAndServe(); err != nil && err != stdhttp.ErrServerClosed {
			serverErr <- err
			return
		}
		serverErr <- nil
	}()

	select {
	case err := <-serverErr:
		return err
	case <-ctx.Done():
		shutdownCtx, cancel := context.WithTimeout(context.Background(), a.shutdownTimeout)
		defer cancel()

		a.log.Info().Msg("shutting down http server")
		if err := a.server.Shutdown(shutdownCtx); err != nil {
			return err
		}
		return <-serverErr
	}
}
