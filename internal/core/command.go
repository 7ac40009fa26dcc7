package core

import "github.com/vovakirdan/doodle-lobby/internal/lobby"

// CommandKind describes what the client wants to do.
type CommandKind int

const (
	// CommandCreateRoom leaves every room, then creates and joins a new one.
	CommandCreateRoom CommandKind = iota
	// CommandJoinRoom leaves every room, then joins Room.
	CommandJoinRoom
	// CommandChangeName renames the client inside its room.
	CommandChangeName
	// CommandStartGame asks to start the game in Room.
	CommandStartGame
	// CommandUpdateSettings replaces the settings of the client's room.
	CommandUpdateSettings
	// CommandDisconnecting leaves every room ahead of a disconnect.
	CommandDisconnecting

	// commandDisconnect is queued by UnregisterClient.
	commandDisconnect
	// commandTick is posted by turn timers.
	commandTick
)

// Command represents an action requested by a client.
type Command struct {
	Kind     CommandKind
	Room     string
	Name     string
	Settings lobby.Settings

	generation uint64
}
