package http

import (
	"context"
	stdhttp "net/http"
	"net/url"
	"slices"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"

	"github.com/vovakirdan/doodle-lobby/internal/config"
	"github.com/vovakirdan/doodle-lobby/internal/core"
	"github.com/vovakirdan/doodle-lobby/internal/lobby"
)

// Hub is the part of core.Hub the transport needs.
type Hub interface {
	RegisterClient(c *core.Client)
	UnregisterClient(c *core.Client)
	RoomState(ctx context.Context, name string) (lobby.RoomState, bool, error)
	Stats(ctx context.Context) (core.Stats, error)
}

// ErrorResponse represents an error response body.
type ErrorResponse struct {
	Error string `json:"error"`
}

// HealthResponse is returned by /health.
type HealthResponse struct {
	Status      string `json:"status"`
	Rooms       int    `json:"rooms"`
	Connections int    `json:"connections"`
}

// NewServer builds the HTTP server: document routes, static assets, the
// WebSocket endpoint and a small JSON API.
func NewServer(hub Hub, cfg *config.Config, logger *zerolog.Logger) *stdhttp.Server {
	gin.SetMode(gin.ReleaseMode)

	router := gin.New()
	router.Use(gin.Recovery())
	router.Use(LoggerMiddleware(logger))
	router.Use(corsMiddleware(cfg.AllowedOrigins))

	router.GET("/health", healthHandler(hub))

	rooms := NewRoomHandlers(hub, logger)
	router.GET("/api/rooms/:roomName", rooms.GetRoom)

	router.GET("/", indexHandler(cfg.IndexFile))
	router.GET("/room/:roomName", indexHandler(cfg.IndexFile))
	router.NoRoute(staticHandler(cfg.StaticDir))

	// The upgrade needs the raw ResponseWriter; gin's writer refuses to be
	// hijacked once a status was written.
	mux := stdhttp.NewServeMux()
	mux.Handle("/ws", NewWSHandler(hub, cfg, logger))
	mux.Handle("/", router)

	return &stdhttp.Server{
		Addr:              cfg.Addr,
		Handler:           mux,
		ReadHeaderTimeout: cfg.ReadHeaderTimeout,
	}
}

func healthHandler(hub Hub) gin.HandlerFunc {
	return func(c *gin.Context) {
		stats, err := hub.Stats(c.Request.Context())
		if err != nil {
			c.JSON(stdhttp.StatusServiceUnavailable, ErrorResponse{Error: "hub unavailable"})
			return
		}
		c.JSON(stdhttp.StatusOK, HealthResponse{
			Status:      "ok",
			Rooms:       stats.Rooms,
			Connections: stats.Connections,
		})
	}
}

// indexHandler serves the single entry document for every page route.
func indexHandler(path string) gin.HandlerFunc {
	return func(c *gin.Context) {
		c.File(path)
	}
}

func staticHandler(dir string) gin.HandlerFunc {
	files := stdhttp.FileServer(gin.Dir(dir, false))
	return func(c *gin.Context) {
		if c.Request.Method != stdhttp.MethodGet && c.Request.Method != stdhttp.MethodHead {
			c.JSON(stdhttp.StatusNotFound, ErrorResponse{Error: "not found"})
			return
		}
		files.ServeHTTP(c.Writer, c.Request)
	}
}

func corsMiddleware(origins []string) gin.HandlerFunc {
	cfg := cors.Config{
		AllowMethods:  []string{stdhttp.MethodGet, stdhttp.MethodHead, stdhttp.MethodOptions},
		AllowHeaders:  []string{"Origin", "Content-Type", "Accept"},
		ExposeHeaders: []string{"Content-Length"},
		MaxAge:        12 * time.Hour,
	}
	if len(origins) == 0 || slices.Contains(origins, "*") {
		cfg.AllowAllOrigins = true
	} else {
		cfg.AllowOrigins = origins
	}
	return cors.New(cfg)
}

// originHosts turns configured origins into the host patterns the WebSocket
// accept check matches against. A nil result means any origin.
func originHosts(origins []string) []string {
	if len(origins) == 0 || slices.Contains(origins, "*") {
		return nil
	}
	hosts := make([]string, 0, len(origins))
	for _, origin := range origins {
		if u, err := url.Parse(origin); err == nil && u.Host != "" {
			hosts = append(hosts, u.Host)
			continue
		}
		hosts = append(hosts, origin)
	}
	return hosts
}
