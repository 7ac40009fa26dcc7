package lobby

import "sort"

// Registry owns every active room. It is not safe for concurrent use; the
// hub calls it from a single goroutine.
type Registry struct {
	rooms    map[string]*Room
	ids      IDGenerator
	defaults Settings
}

// NewRegistry builds an empty registry. A nil generator means
// NewRandomIDGenerator(MinRoomNameLength).
func NewRegistry(ids IDGenerator, defaults Settings) *Registry {
	if ids == nil {
		ids = NewRandomIDGenerator(MinRoomNameLength)
	}
	return &Registry{
		rooms:    make(map[string]*Room),
		ids:      ids,
		defaults: defaults,
	}
}

// CreateRoom registers a new empty room owned by ownerID under a fresh name.
func (r *Registry) CreateRoom(ownerID string) *Room {
	name := r.ids.Generate()
	for len(name) < MinRoomNameLength || r.exists(name) {
		name = r.ids.Generate()
	}

	room := newRoom(name, ownerID, r.defaults)
	r.rooms[name] = room
	return room
}

// FindByName looks a room up by name.
func (r *Registry) FindByName(name string) (*Room, bool) {
	room, ok := r.rooms[name]
	return room, ok
}

// FindByPlayer returns the room the connection is a player of.
func (r *Registry) FindByPlayer(connID string) (*Room, bool) {
	for _, room := range r.rooms {
		if room.indexOf(connID) >= 0 {
			return room, true
		}
	}
	return nil, false
}

// Remove deletes the room. Removing an unknown name is a no-op.
func (r *Registry) Remove(name string) {
	delete(r.rooms, name)
}

// Len returns the number of active rooms.
func (r *Registry) Len() int {
	return len(r.rooms)
}

// Names lists active room names in lexical order.
func (r *Registry) Names() []string {
	names := make([]string, 0, len(r.rooms))
	for name := range r.rooms {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

func (r *Registry) exists(name string) bool {
	_, ok := r.rooms[name]
	return ok
}
