package core

import "github.com/vovakirdan/doodle-lobby/internal/lobby"

// broadcaster implements lobby.Broadcaster on top of the hub's room groups.
// It is only used from the hub goroutine.
type broadcaster struct {
	h *Hub
}

// Subscribe tags a connection with a room group.
func (b broadcaster) Subscribe(room, connID string) {
	c, ok := b.h.clients[connID]
	if !ok {
		return
	}
	g, ok := b.h.groups[room]
	if !ok {
		g = newGroup(room)
		b.h.groups[room] = g
	}
	g.add(c)
	c.groups[room] = struct{}{}
}

// Unsubscribe removes the tag; empty groups are dropped.
func (b broadcaster) Unsubscribe(room, connID string) {
	if c, ok := b.h.clients[connID]; ok {
		delete(c.groups, room)
		if g, ok := b.h.groups[room]; ok {
			g.remove(c)
		}
	}
	if g, ok := b.h.groups[room]; ok && g.empty() {
		delete(b.h.groups, room)
	}
}

// ToRoom delivers a notice to every connection in the room group.
func (b broadcaster) ToRoom(room string, n lobby.Notice) {
	g, ok := b.h.groups[room]
	if !ok {
		return
	}
	if dropped := g.broadcast(eventFromNotice(n)); dropped > 0 {
		b.h.log.Warn().Str("room", room).Int("dropped", dropped).Msg("slow consumers skipped")
	}
}

// ToConn delivers a notice to one connection.
func (b broadcaster) ToConn(connID string, n lobby.Notice) {
	if c, ok := b.h.clients[connID]; ok {
		deliver(c, eventFromNotice(n))
	}
}
