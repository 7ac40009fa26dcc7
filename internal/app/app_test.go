package app

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/vovakirdan/doodle-lobby/internal/config"
	"github.com/vovakirdan/doodle-lobby/internal/lobby"
)

func TestHubOptionsFromConfig(t *testing.T) {
	cfg := config.Default()
	cfg.Lobby.DefaultRounds = 4
	cfg.Lobby.DefaultDrawingTime = 90
	cfg.Lobby.AutoAdvance = false
	cfg.Lobby.Names = []string{"Only"}

	opts := HubOptions(&cfg)

	assert.Equal(t, lobby.Settings{Rounds: 4, DrawingTime: 90}, opts.Defaults)
	assert.Equal(t, lobby.DefaultLimits(), opts.Limits)
	assert.Equal(t, 6, opts.RoomNameLength)
	assert.False(t, opts.AutoAdvance)
	assert.Equal(t, "Only", opts.Names.Pick())
}
