package proto

import "encoding/json"

// Inbound is the envelope for messages coming from the client.
type Inbound struct {
	Event string          `json:"event"`
	Data  json.RawMessage `json:"data,omitempty"`
}

// Client -> server events.
const (
	InboundCreateRoom     = "createRoom"
	InboundJoinRoom       = "joinRoom"
	InboundChangeName     = "changeName"
	InboundStartGame      = "startGame"
	InboundUpdateSettings = "updateSettings"
	InboundDisconnecting  = "disconnecting"
)

// Server -> client events.
const (
	OutboundRoomJoined        = "roomJoined"
	OutboundLobbyPlayerUpdate = "lobbyPlayerUpdate"
	OutboundOwnerChanged      = "ownerChanged"
	OutboundNameChanged       = "nameChangeSuccessful"
	OutboundGameStarting      = "gameStarting"
	OutboundSettingsUpdated   = "settingsUpdated"
	OutboundTurnAdvanced      = "turnAdvanced"
	OutboundGameEnded         = "gameEnded"
	OutboundError             = "error"
)

// Outbound is the envelope for messages sent to the client. Code is only set
// on error events.
type Outbound struct {
	Event string `json:"event"`
	Data  any    `json:"data,omitempty"`
	Code  string `json:"code,omitempty"`
}

// Player is one entry of a room roster.
type Player struct {
	ID     string `json:"id"`
	Name   string `json:"name"`
	Points int    `json:"points"`
}

// Settings are the owner-editable rules of a room.
type Settings struct {
	Rounds          int    `json:"rounds"`
	DrawingTime     int    `json:"drawingTime"`
	CustomWords     string `json:"customWords"`
	CustomWordsOnly bool   `json:"customWordsOnly"`
}

// Room is the full room record sent with roomJoined.
type Room struct {
	Name        string   `json:"name"`
	Players     []Player `json:"players"`
	Owner       string   `json:"owner"`
	Settings    Settings `json:"settings"`
	Round       int      `json:"round"`
	PlayerIndex int64    `json:"playerIndex"`
}

// Turn is the payload of turnAdvanced.
type Turn struct {
	Round       int   `json:"round"`
	PlayerIndex int64 `json:"playerIndex"`
}

// RoomSummary is returned by the room lookup endpoint.
type RoomSummary struct {
	Name    string `json:"name"`
	Players int    `json:"players"`
	Owner   string `json:"owner"`
	Round   int    `json:"round"`
	Started bool   `json:"started"`
}
