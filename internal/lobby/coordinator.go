package lobby

import "time"

// Turn describes the turn state after a start or a tick.
type Turn struct {
	Round       int
	PlayerIndex int64
	DrawingTime time.Duration
	GameOver    bool
}

// LeaveResult describes what a successful Leave did to the room.
type LeaveResult struct {
	RoomRemoved bool
	NewOwner    string
}

// Coordinator implements join/leave semantics, ownership transfer, renames,
// settings and game start on top of a Registry. Like the Registry it must be
// driven from one goroutine.
type Coordinator struct {
	rooms  *Registry
	bc     Broadcaster
	names  NamePicker
	limits Limits
}

// Option customizes a Coordinator.
type Option func(*Coordinator)

// WithNamePicker replaces the default name pool.
func WithNamePicker(p NamePicker) Option {
	return func(c *Coordinator) { c.names = p }
}

// WithLimits sets the bounds checked by UpdateSettings.
func WithLimits(l Limits) Option {
	return func(c *Coordinator) { c.limits = l }
}

// NewCoordinator wires a coordinator to its registry and broadcaster.
func NewCoordinator(rooms *Registry, bc Broadcaster, opts ...Option) *Coordinator {
	c := &Coordinator{
		rooms:  rooms,
		bc:     bc,
		names:  NewPoolPicker(nil),
		limits: DefaultLimits(),
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// Registry exposes the underlying registry for read-only queries.
func (c *Coordinator) Registry() *Registry {
	return c.rooms
}

// CreateRoom registers a new empty room owned by connID.
func (c *Coordinator) CreateRoom(connID string) *Room {
	return c.rooms.CreateRoom(connID)
}

// Join adds connID to the room as a new player with a pooled name.
func (c *Coordinator) Join(connID, roomName string) (*Room, error) {
	room, ok := c.rooms.FindByName(roomName)
	if !ok {
		return nil, ErrRoomNotFound
	}
	if _, ok := c.rooms.FindByPlayer(connID); ok {
		return nil, ErrAlreadyInRoom
	}

	c.bc.Subscribe(room.Name, connID)
	room.addPlayer(&Player{ID: connID, Name: c.names.Pick()})
	c.bc.ToRoom(room.Name, Notice{Kind: NoticePlayers, Room: room.Name, Players: room.roster()})
	return room, nil
}

// Leave removes connID from the room. The last player out destroys the room;
// an owner leaving hands ownership to the earliest remaining player.
func (c *Coordinator) Leave(connID, roomName string) (LeaveResult, error) {
	room, ok := c.rooms.FindByName(roomName)
	if !ok {
		return LeaveResult{}, ErrRoomNotFound
	}

	c.bc.Unsubscribe(room.Name, connID)
	if !room.removePlayer(connID) {
		return LeaveResult{}, ErrNotInRoom
	}

	if len(room.Players) == 0 {
		c.rooms.Remove(room.Name)
		return LeaveResult{RoomRemoved: true}, nil
	}

	var res LeaveResult
	if room.Owner == connID {
		room.Owner = room.Players[0].ID
		res.NewOwner = room.Owner
		c.bc.ToRoom(room.Name, Notice{Kind: NoticeOwnerChanged, Room: room.Name, Owner: room.Owner})
	}
	c.bc.ToRoom(room.Name, Notice{Kind: NoticePlayers, Room: room.Name, Players: room.roster()})
	return res, nil
}

// ChangeName renames the player of connID while its room is still in the lobby.
func (c *Coordinator) ChangeName(connID, name string) error {
	if !ValidName(name) {
		return ErrInvalidName
	}

	room, ok := c.rooms.FindByPlayer(connID)
	if !ok {
		return ErrNotInRoom
	}
	if room.Started() {
		return ErrGameStarted
	}
	if room.HasName(name, connID) {
		return ErrNameTaken
	}

	player, _ := room.Player(connID)
	player.Name = name
	c.bc.ToConn(connID, Notice{Kind: NoticeNameChanged, Room: room.Name, Name: name})
	c.bc.ToRoom(room.Name, Notice{Kind: NoticePlayers, Room: room.Name, Players: room.roster()})
	return nil
}

// StartGame moves an owner's lobby into its first turn. Every error except
// ErrNotEnoughPlayers is meant to be swallowed by the caller.
func (c *Coordinator) StartGame(roomName, connID string) (Turn, error) {
	room, ok := c.rooms.FindByName(roomName)
	if !ok {
		return Turn{}, ErrRoomNotFound
	}
	if room.Owner != connID {
		return Turn{}, ErrNotOwner
	}
	if len(room.Players) < 2 {
		return Turn{}, ErrNotEnoughPlayers
	}
	if room.Started() {
		return Turn{}, ErrGameStarted
	}

	over := room.Tick()
	c.bc.ToRoom(room.Name, Notice{Kind: NoticeGameStarting, Room: room.Name})
	return turnOf(room, over), nil
}

// UpdateSettings replaces the settings of the owner's room before the game.
func (c *Coordinator) UpdateSettings(connID string, settings Settings) error {
	room, ok := c.rooms.FindByPlayer(connID)
	if !ok {
		return ErrNotInRoom
	}
	if room.Owner != connID {
		return ErrNotOwner
	}
	if room.Started() {
		return ErrSettingsLocked
	}
	if err := c.limits.Validate(settings); err != nil {
		return err
	}

	room.Settings = settings
	c.bc.ToRoom(room.Name, Notice{Kind: NoticeSettings, Room: room.Name, Settings: settings})
	return nil
}

// Advance ticks a running game once. When the last round is over the final
// roster is announced and the room returns to the lobby.
func (c *Coordinator) Advance(roomName string) (Turn, error) {
	room, ok := c.rooms.FindByName(roomName)
	if !ok {
		return Turn{}, ErrRoomNotFound
	}
	if !room.Started() {
		return Turn{}, ErrGameNotStarted
	}

	if over := room.Tick(); over {
		turn := turnOf(room, true)
		c.bc.ToRoom(room.Name, Notice{Kind: NoticeGameEnded, Room: room.Name, Players: room.roster()})
		room.resetGame()
		return turn, nil
	}

	c.bc.ToRoom(room.Name, Notice{
		Kind:        NoticeTurn,
		Room:        room.Name,
		Round:       room.Round,
		PlayerIndex: room.PlayerIndex,
	})
	return turnOf(room, false), nil
}

func turnOf(room *Room, over bool) Turn {
	return Turn{
		Round:       room.Round,
		PlayerIndex: room.PlayerIndex,
		DrawingTime: time.Duration(room.Settings.DrawingTime) * time.Second,
		GameOver:    over,
	}
}
