package core

import (
	"context"
	"errors"

	"github.com/rs/zerolog"

	"github.com/vovakirdan/doodle-lobby/internal/lobby"
)

// Options configure a Hub.
type Options struct {
	Defaults       lobby.Settings
	Limits         lobby.Limits
	RoomNameLength int
	AutoAdvance    bool

	// Optional collaborators, mostly for tests.
	IDs       lobby.IDGenerator
	Names     lobby.NamePicker
	Scheduler Scheduler
}

// DefaultOptions returns options matching the lobby defaults.
func DefaultOptions() Options {
	return Options{
		Defaults:       lobby.DefaultSettings(),
		Limits:         lobby.DefaultLimits(),
		RoomNameLength: lobby.MinRoomNameLength,
		AutoAdvance:    true,
	}
}

// Stats is a point-in-time view of the hub.
type Stats struct {
	Rooms       int
	Connections int
}

type envelope struct {
	client *Client // nil for timer commands
	cmd    *Command
}

type turnTimer struct {
	generation uint64
	stop       func()
}

// Hub serializes every room mutation. Connections, turn timers and queries
// all reach the registry through its single Run goroutine.
type Hub struct {
	coord       *lobby.Coordinator
	log         *zerolog.Logger
	sched       Scheduler
	autoAdvance bool

	clients map[string]*Client
	groups  map[string]*group
	turns   map[string]*turnTimer
	turnGen uint64

	register chan *Client
	inbox    chan envelope
	queries  chan func()
	done     chan struct{}
}

// NewHub creates a hub. A nil logger disables logging.
func NewHub(opts Options, logger *zerolog.Logger) *Hub {
	if logger == nil {
		nop := zerolog.Nop()
		logger = &nop
	}
	if opts.IDs == nil {
		opts.IDs = lobby.NewRandomIDGenerator(opts.RoomNameLength)
	}
	if opts.Scheduler == nil {
		opts.Scheduler = NewTimerScheduler()
	}
	if opts.Defaults.Rounds == 0 {
		opts.Defaults = lobby.DefaultSettings()
	}
	if opts.Limits == (lobby.Limits{}) {
		opts.Limits = lobby.DefaultLimits()
	}

	h := &Hub{
		log:         logger,
		sched:       opts.Scheduler,
		autoAdvance: opts.AutoAdvance,
		clients:     make(map[string]*Client),
		groups:      make(map[string]*group),
		turns:       make(map[string]*turnTimer),
		register:    make(chan *Client),
		inbox:       make(chan envelope, 256),
		queries:     make(chan func()),
		done:        make(chan struct{}),
	}

	coordOpts := []lobby.Option{lobby.WithLimits(opts.Limits)}
	if opts.Names != nil {
		coordOpts = append(coordOpts, lobby.WithNamePicker(opts.Names))
	}
	h.coord = lobby.NewCoordinator(lobby.NewRegistry(opts.IDs, opts.Defaults), broadcaster{h}, coordOpts...)
	return h
}

// Run processes commands until ctx is cancelled.
func (h *Hub) Run(ctx context.Context) {
	defer close(h.done)
	defer h.stopAllTurns()

	for {
		select {
		case <-ctx.Done():
			return
		case c := <-h.register:
			h.clients[c.ID] = c
			h.log.Info().Str("conn_id", c.ID).Msg("connection opened")
			go h.pump(c)
		case env := <-h.inbox:
			h.handle(env)
		case q := <-h.queries:
			q()
		}
	}
}

// RegisterClient attaches a client; its Commands are processed from now on.
func (h *Hub) RegisterClient(c *Client) {
	select {
	case h.register <- c:
	case <-h.done:
	}
}

// UnregisterClient queues the disconnect of c behind every command it already
// sent. The hub closes c.Events once the client has left its rooms.
func (h *Hub) UnregisterClient(c *Client) {
	select {
	case c.Commands <- &Command{Kind: commandDisconnect}:
	case <-h.done:
	}
}

// RoomState returns a copy of the named room.
func (h *Hub) RoomState(ctx context.Context, name string) (lobby.RoomState, bool, error) {
	type result struct {
		state lobby.RoomState
		ok    bool
	}
	reply := make(chan result, 1)
	err := h.query(ctx, func() {
		room, ok := h.coord.Registry().FindByName(name)
		if !ok {
			reply <- result{}
			return
		}
		reply <- result{state: room.State(), ok: true}
	})
	if err != nil {
		return lobby.RoomState{}, false, err
	}
	r := <-reply
	return r.state, r.ok, nil
}

// Stats reports how many rooms and connections are active.
func (h *Hub) Stats(ctx context.Context) (Stats, error) {
	reply := make(chan Stats, 1)
	err := h.query(ctx, func() {
		reply <- Stats{Rooms: h.coord.Registry().Len(), Connections: len(h.clients)}
	})
	if err != nil {
		return Stats{}, err
	}
	return <-reply, nil
}

func (h *Hub) query(ctx context.Context, q func()) error {
	select {
	case h.queries <- q:
		return nil
	case <-ctx.Done():
		return ctx.Err()
	case <-h.done:
		return ErrHubStopped
	}
}

// pump forwards a client's commands into the shared inbox, preserving order.
func (h *Hub) pump(c *Client) {
	for {
		select {
		case cmd := <-c.Commands:
			if cmd == nil {
				continue
			}
			if !h.post(envelope{client: c, cmd: cmd}) || cmd.Kind == commandDisconnect {
				return
			}
		case <-h.done:
			return
		}
	}
}

func (h *Hub) post(env envelope) bool {
	select {
	case h.inbox <- env:
		return true
	case <-h.done:
		return false
	}
}

func (h *Hub) handle(env envelope) {
	c, cmd := env.client, env.cmd
	if cmd.Kind == commandTick {
		h.tick(cmd.Room, cmd.generation)
		return
	}
	if _, ok := h.clients[c.ID]; !ok {
		return
	}

	switch cmd.Kind {
	case CommandCreateRoom:
		h.leaveAll(c)
		room := h.coord.CreateRoom(c.ID)
		h.log.Info().Str("room", room.Name).Str("conn_id", c.ID).Msg("room created")
		h.join(c, room.Name)
	case CommandJoinRoom:
		h.leaveAll(c)
		h.join(c, cmd.Room)
	case CommandChangeName:
		if err := h.coord.ChangeName(c.ID, cmd.Name); err != nil {
			h.sendError(c, toCoreError(err))
		}
	case CommandStartGame:
		h.startGame(c, cmd.Room)
	case CommandUpdateSettings:
		err := h.coord.UpdateSettings(c.ID, cmd.Settings)
		if err != nil && !errors.Is(err, lobby.ErrNotOwner) {
			h.sendError(c, toCoreError(err))
		}
	case CommandDisconnecting:
		h.leaveAll(c)
	case commandDisconnect:
		h.leaveAll(c)
		delete(h.clients, c.ID)
		close(c.Events)
		h.log.Info().Str("conn_id", c.ID).Msg("connection closed")
	default:
		h.sendError(c, coreError(ErrCodeBadRequest, "Unknown request."))
	}
}

func (h *Hub) join(c *Client, roomName string) {
	room, err := h.coord.Join(c.ID, roomName)
	if err != nil {
		h.log.Debug().Err(err).Str("room", roomName).Str("conn_id", c.ID).Msg("join rejected")
		h.sendError(c, toCoreError(err))
		return
	}
	h.log.Info().Str("room", room.Name).Str("conn_id", c.ID).Msg("player joined")

	state := room.State()
	deliver(c, &Event{Kind: EventRoomJoined, Room: room.Name, State: &state})
}

// leaveAll removes c from every room group it is tagged with.
func (h *Hub) leaveAll(c *Client) {
	for _, name := range c.groupNames() {
		res, err := h.coord.Leave(c.ID, name)
		switch {
		case errors.Is(err, lobby.ErrRoomNotFound):
			broadcaster{h}.Unsubscribe(name, c.ID)
			continue
		case err != nil:
			continue
		}

		h.log.Info().Str("room", name).Str("conn_id", c.ID).Msg("player left")
		if res.RoomRemoved {
			h.stopTurn(name)
			h.log.Info().Str("room", name).Msg("room destroyed (empty)")
		}
		if res.NewOwner != "" {
			h.log.Info().Str("room", name).Str("owner", res.NewOwner).Msg("ownership transferred")
		}
	}
}

// startGame reports only the player-count precondition; a missing room, a
// non-owner or a running game are ignored without a reply.
func (h *Hub) startGame(c *Client, roomName string) {
	turn, err := h.coord.StartGame(roomName, c.ID)
	if errors.Is(err, lobby.ErrNotEnoughPlayers) {
		h.sendError(c, toCoreError(err))
		return
	}
	if err != nil {
		h.log.Debug().Err(err).Str("room", roomName).Str("conn_id", c.ID).Msg("start game ignored")
		return
	}

	if room, ok := h.coord.Registry().FindByName(roomName); ok {
		h.log.Info().
			Str("room", roomName).
			Int("rounds", room.Settings.Rounds).
			Int("players", len(room.Players)).
			Msg("game starting")
	}
	h.armTurn(roomName, turn)
}

func (h *Hub) tick(roomName string, generation uint64) {
	t, ok := h.turns[roomName]
	if !ok || t.generation != generation {
		return
	}
	delete(h.turns, roomName)

	turn, err := h.coord.Advance(roomName)
	if err != nil {
		return
	}
	if turn.GameOver {
		h.log.Info().Str("room", roomName).Msg("game ended")
		return
	}
	h.armTurn(roomName, turn)
}

func (h *Hub) armTurn(roomName string, turn lobby.Turn) {
	h.stopTurn(roomName)
	if !h.autoAdvance || turn.GameOver {
		return
	}

	h.turnGen++
	gen := h.turnGen
	stop := h.sched.After(turn.DrawingTime, func() {
		h.post(envelope{cmd: &Command{Kind: commandTick, Room: roomName, generation: gen}})
	})
	h.turns[roomName] = &turnTimer{generation: gen, stop: stop}
}

func (h *Hub) stopTurn(roomName string) {
	if t, ok := h.turns[roomName]; ok {
		t.stop()
		delete(h.turns, roomName)
	}
}

func (h *Hub) stopAllTurns() {
	for name := range h.turns {
		h.stopTurn(name)
	}
}

func (h *Hub) sendError(c *Client, err *CoreError) {
	deliver(c, &Event{Kind: EventError, Error: err})
}
