package http

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"
)

// RoomHandlers provides HTTP handlers for room lookups.
type RoomHandlers struct {
	hub Hub
	log *zerolog.Logger
}

// NewRoomHandlers creates a new room handlers instance.
func NewRoomHandlers(hub Hub, logger *zerolog.Logger) *RoomHandlers {
	return &RoomHandlers{
		hub: hub,
		log: logger,
	}
}

// GetRoom reports whether a room exists and who is in it, so a client can
// check a shared link before opening the socket.
// GET /api/rooms/:roomName
func (h *RoomHandlers) GetRoom(c *gin.Context) {
	name := c.Param("roomName")

	state, ok, err := h.hub.RoomState(c.Request.Context(), name)
	if err != nil {
		h.log.Error().Err(err).Str("room", name).Msg("failed to look up room")
		c.JSON(http.StatusServiceUnavailable, ErrorResponse{Error: "hub unavailable"})
		return
	}
	if !ok {
		c.JSON(http.StatusNotFound, ErrorResponse{Error: "room not found"})
		return
	}

	h.log.Debug().Str("room", name).Int("players", len(state.Players)).Msg("room looked up")
	c.JSON(http.StatusOK, summaryFromState(state))
}
