package lobby

// PlayerIndexUnset is the turn cursor of a room that has not played a turn
// yet. It is the largest integer a JavaScript client can represent exactly,
// so the first tick always rolls over into round 1.
const PlayerIndexUnset int64 = 1<<53 - 1

// Player is a connection that joined a room.
type Player struct {
	ID     string
	Name   string
	Points int
}

// Settings are the owner-editable rules of a room.
type Settings struct {
	Rounds          int
	DrawingTime     int // seconds
	CustomWords     string
	CustomWordsOnly bool
}

// DefaultSettings returns the settings of a freshly created room.
func DefaultSettings() Settings {
	return Settings{
		Rounds:      3,
		DrawingTime: 60,
	}
}

// Room is a lobby and the game played in it.
type Room struct {
	Name        string
	Players     []*Player
	Owner       string
	Settings    Settings
	Round       int
	PlayerIndex int64
}

func newRoom(name, owner string, settings Settings) *Room {
	return &Room{
		Name:        name,
		Players:     make([]*Player, 0, 4),
		Owner:       owner,
		Settings:    settings,
		PlayerIndex: PlayerIndexUnset,
	}
}

// Started reports whether the room left the lobby phase.
func (r *Room) Started() bool {
	return r.Round != 0
}

// Player returns the player with the given connection id.
func (r *Room) Player(connID string) (*Player, bool) {
	if i := r.indexOf(connID); i >= 0 {
		return r.Players[i], true
	}
	return nil, false
}

// HasName reports whether a player other than connID already uses name.
func (r *Room) HasName(name, connID string) bool {
	for _, p := range r.Players {
		if p.ID != connID && p.Name == name {
			return true
		}
	}
	return false
}

func (r *Room) indexOf(connID string) int {
	for i, p := range r.Players {
		if p.ID == connID {
			return i
		}
	}
	return -1
}

func (r *Room) addPlayer(p *Player) {
	r.Players = append(r.Players, p)
}

// removePlayer drops the player and returns whether it was present.
func (r *Room) removePlayer(connID string) bool {
	i := r.indexOf(connID)
	if i < 0 {
		return false
	}
	r.Players = append(r.Players[:i], r.Players[i+1:]...)
	return true
}

// Tick advances the turn cursor by one step: the next player's turn inside
// the round, or the first turn of the next round once every player had one.
// It returns true when the last round has been played.
func (r *Room) Tick() bool {
	if r.PlayerIndex < int64(len(r.Players)) {
		r.PlayerIndex++
	} else {
		r.Round++
		r.PlayerIndex = 0
	}
	return r.Round > r.Settings.Rounds
}

// resetGame puts the room back into the lobby phase.
func (r *Room) resetGame() {
	r.Round = 0
	r.PlayerIndex = PlayerIndexUnset
}

// RoomState is a detached copy of a room, safe to hand to other goroutines.
type RoomState struct {
	Name        string
	Players     []Player
	Owner       string
	Settings    Settings
	Round       int
	PlayerIndex int64
}

// State copies the room.
func (r *Room) State() RoomState {
	return RoomState{
		Name:        r.Name,
		Players:     r.roster(),
		Owner:       r.Owner,
		Settings:    r.Settings,
		Round:       r.Round,
		PlayerIndex: r.PlayerIndex,
	}
}

func (r *Room) roster() []Player {
	players := make([]Player, 0, len(r.Players))
	for _, p := range r.Players {
		players = append(players, *p)
	}
	return players
}
