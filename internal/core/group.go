package core

// group is the broadcast group of a room: every client tagged with its name.
type group struct {
	name    string
	clients map[*Client]struct{}
}

func newGroup(name string) *group {
	return &group{
		name:    name,
		clients: make(map[*Client]struct{}),
	}
}

// add inserts a client into the group. Returns true if newly added.
func (g *group) add(c *Client) bool {
	if _, exists := g.clients[c]; exists {
		return false
	}
	g.clients[c] = struct{}{}
	return true
}

// remove deletes a client from the group. Returns true if removed.
func (g *group) remove(c *Client) bool {
	if _, exists := g.clients[c]; !exists {
		return false
	}
	delete(g.clients, c)
	return true
}

// broadcast sends an event to every client in the group and returns how many
// clients it had to skip.
func (g *group) broadcast(event *Event) int {
	dropped := 0
	for client := range g.clients {
		if !deliver(client, event) {
			dropped++
		}
	}
	return dropped
}

func (g *group) empty() bool {
	return len(g.clients) == 0
}

func deliver(c *Client, event *Event) bool {
	select {
	case c.Events <- event:
		return true
	default:
		// Drop if slow consumer.
		return false
	}
}
