package lobby

import (
	"testing"

	"github.com/stretchr/testify/mock"
)

type sent struct {
	to     string // room name or conn id
	direct bool
	notice Notice
}

// recorder is a Broadcaster that remembers everything it was asked to do.
type recorder struct {
	groups map[string]map[string]bool
	sent   []sent
}

func newRecorder() *recorder {
	return &recorder{groups: make(map[string]map[string]bool)}
}

func (r *recorder) Subscribe(room, connID string) {
	if r.groups[room] == nil {
		r.groups[room] = make(map[string]bool)
	}
	r.groups[room][connID] = true
}

func (r *recorder) Unsubscribe(room, connID string) {
	delete(r.groups[room], connID)
}

func (r *recorder) ToRoom(room string, n Notice) {
	r.sent = append(r.sent, sent{to: room, notice: n})
}

func (r *recorder) ToConn(connID string, n Notice) {
	r.sent = append(r.sent, sent{to: connID, direct: true, notice: n})
}

func (r *recorder) kinds() []NoticeKind {
	kinds := make([]NoticeKind, 0, len(r.sent))
	for _, s := range r.sent {
		kinds = append(kinds, s.notice.Kind)
	}
	return kinds
}

func (r *recorder) last() sent {
	return r.sent[len(r.sent)-1]
}

func (r *recorder) reset() {
	r.sent = nil
}

type mockIDGenerator struct {
	mock.Mock
}

func (m *mockIDGenerator) Generate() string {
	args := m.Called()
	return args.String(0)
}

type fixedNames struct {
	name string
}

func (f fixedNames) Pick() string { return f.name }

// newTestCoordinator returns a coordinator whose players all start as "Raum".
func newTestCoordinator() (*Coordinator, *recorder) {
	rec := newRecorder()
	reg := NewRegistry(nil, DefaultSettings())
	return NewCoordinator(reg, rec, WithNamePicker(fixedNames{name: "Raum"})), rec
}

// roomWith creates a room owned by the first id and joins every id in order.
func roomWith(t testing.TB, c *Coordinator, ids ...string) *Room {
	t.Helper()
	room := c.CreateRoom(ids[0])
	for _, id := range ids {
		if _, err := c.Join(id, room.Name); err != nil {
			t.Fatalf("join %s: %v", id, err)
		}
	}
	return room
}
