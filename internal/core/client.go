package core

// Client is a connection as seen by the core layer.
type Client struct {
	ID       string
	Commands chan *Command
	Events   chan *Event

	// groups is owned by the hub goroutine.
	groups map[string]struct{}
}

// NewClient constructs a client with channels of the given buffer size.
func NewClient(id string, buffer int) *Client {
	if buffer <= 0 {
		buffer = 8
	}
	return &Client{
		ID:       id,
		Commands: make(chan *Command, buffer),
		Events:   make(chan *Event, buffer),
		groups:   make(map[string]struct{}),
	}
}

func (c *Client) groupNames() []string {
	names := make([]string, 0, len(c.groups))
	for name := range c.groups {
		names = append(names, name)
	}
	return names
}
