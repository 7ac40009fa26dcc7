package core

import "github.com/vovakirdan/doodle-lobby/internal/lobby"

// EventKind is a notification the core emits to clients.
type EventKind int

const (
	// EventRoomJoined delivers the full room to the client that joined it.
	EventRoomJoined EventKind = iota
	// EventPlayers carries the updated roster of a room.
	EventPlayers
	// EventOwnerChanged carries the id of the new room owner.
	EventOwnerChanged
	// EventNameChanged acknowledges an accepted rename.
	EventNameChanged
	// EventGameStarting announces that the game begins.
	EventGameStarting
	// EventSettings carries updated room settings.
	EventSettings
	// EventTurn carries the new round and turn cursor.
	EventTurn
	// EventGameEnded carries the final roster.
	EventGameEnded
	// EventError notifies a client about a rejected request.
	EventError
)

// Event is sent to clients to describe what happened in the system.
// Events may be shared between recipients and must not be mutated.
type Event struct {
	Kind        EventKind
	Room        string
	State       *lobby.RoomState // EventRoomJoined
	Players     []lobby.Player
	Owner       string
	Name        string
	Settings    lobby.Settings
	Round       int
	PlayerIndex int64
	Error       *CoreError
}

var noticeKinds = map[lobby.NoticeKind]EventKind{
	lobby.NoticePlayers:      EventPlayers,
	lobby.NoticeOwnerChanged: EventOwnerChanged,
	lobby.NoticeNameChanged:  EventNameChanged,
	lobby.NoticeGameStarting: EventGameStarting,
	lobby.NoticeSettings:     EventSettings,
	lobby.NoticeTurn:         EventTurn,
	lobby.NoticeGameEnded:    EventGameEnded,
}

func eventFromNotice(n lobby.Notice) *Event {
	return &Event{
		Kind:        noticeKinds[n.Kind],
		Room:        n.Room,
		Players:     n.Players,
		Owner:       n.Owner,
		Name:        n.Name,
		Settings:    n.Settings,
		Round:       n.Round,
		PlayerIndex: n.PlayerIndex,
	}
}
