package lobby

// NoticeKind names a state change the coordinator reports.
type NoticeKind int

const (
	// NoticePlayers carries the updated roster of a room.
	NoticePlayers NoticeKind = iota
	// NoticeOwnerChanged carries the id of the new owner.
	NoticeOwnerChanged
	// NoticeNameChanged acknowledges a rename to the requester.
	NoticeNameChanged
	// NoticeGameStarting announces that the first turn begins.
	NoticeGameStarting
	// NoticeSettings carries updated room settings.
	NoticeSettings
	// NoticeTurn carries the new round and turn cursor.
	NoticeTurn
	// NoticeGameEnded carries the final roster with scores.
	NoticeGameEnded
)

// Notice is one message for a room group or a single connection.
type Notice struct {
	Kind        NoticeKind
	Room        string
	Players     []Player
	Owner       string
	Name        string
	Settings    Settings
	Round       int
	PlayerIndex int64
}

// Broadcaster is the group-messaging primitive of the transport. Sends are
// fire-and-forget and must not block.
type Broadcaster interface {
	Subscribe(room, connID string)
	Unsubscribe(room, connID string)
	ToRoom(room string, n Notice)
	ToConn(connID string, n Notice)
}
