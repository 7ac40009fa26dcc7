package lobby

// Error codes for lobby errors.
const (
	ErrCodeInvalidName      = "invalid_name"
	ErrCodeRoomNotFound     = "room_not_found"
	ErrCodeNotInRoom        = "not_in_room"
	ErrCodeAlreadyInRoom    = "already_in_room"
	ErrCodeGameStarted      = "game_started"
	ErrCodeGameNotStarted   = "game_not_started"
	ErrCodeNameTaken        = "name_taken"
	ErrCodeNotOwner         = "not_owner"
	ErrCodeNotEnoughPlayers = "not_enough_players"
	ErrCodeInvalidSettings  = "invalid_settings"
)

var (
	ErrInvalidName      = lobbyError(ErrCodeInvalidName, "Name contains invalid characters, or is too short/long.")
	ErrRoomNotFound     = lobbyError(ErrCodeRoomNotFound, "Failed to join the room, does not exist.")
	ErrNotInRoom        = lobbyError(ErrCodeNotInRoom, "You are not in a room.")
	ErrAlreadyInRoom    = lobbyError(ErrCodeAlreadyInRoom, "You are already in a room.")
	ErrGameStarted      = lobbyError(ErrCodeGameStarted, "The game has already started, you can't change your name.")
	ErrSettingsLocked   = lobbyError(ErrCodeGameStarted, "The game has already started, the settings are locked.")
	ErrGameNotStarted   = lobbyError(ErrCodeGameNotStarted, "The game has not started yet.")
	ErrNameTaken        = lobbyError(ErrCodeNameTaken, "Another player in the lobby already has that name!")
	ErrNotOwner         = lobbyError(ErrCodeNotOwner, "Only the room owner can do that.")
	ErrNotEnoughPlayers = lobbyError(ErrCodeNotEnoughPlayers, "The room must have 2 or more people to start a game.")
	ErrInvalidSettings  = lobbyError(ErrCodeInvalidSettings, "Those room settings are not allowed.")
)

// Error wraps a code and the human-readable message sent to clients.
type Error struct {
	Code    string
	Message string
}

func (e *Error) Error() string {
	return e.Message
}

func lobbyError(code, msg string) *Error {
	return &Error{Code: code, Message: msg}
}
