package core

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/vovakirdan/doodle-lobby/internal/lobby"
)

func mustEvent(t *testing.T, ch <-chan *Event, kind EventKind) *Event {
	t.Helper()

	deadline := time.Now().Add(2 * time.Second)
	for time.Now().Before(deadline) {
		select {
		case ev := <-ch:
			if ev == nil {
				continue
			}
			if ev.Kind == kind {
				return ev
			}
		default:
			time.Sleep(10 * time.Millisecond)
		}
	}
	t.Fatalf("expected event kind %v not received", kind)
	return nil
}

// mustNoEvent fails if anything other than nil arrives on ch within wait.
func mustNoEvent(t *testing.T, ch <-chan *Event, wait time.Duration) {
	t.Helper()

	select {
	case ev := <-ch:
		if ev != nil {
			t.Fatalf("unexpected event: %+v", ev)
		}
	case <-time.After(wait):
	}
}

// drain discards buffered events.
func drain(ch <-chan *Event) {
	for {
		select {
		case <-ch:
		default:
			return
		}
	}
}

type fixedNames struct{}

func (fixedNames) Pick() string { return "Raum" }

type sequenceIDs struct {
	mu   sync.Mutex
	next int
}

func (s *sequenceIDs) Generate() string {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.next++
	return "room" + string(rune('a'+s.next-1)) + "x"
}

// manualScheduler records timers and fires them on demand.
type manualScheduler struct {
	mu     sync.Mutex
	timers []*manualTimer
}

type manualTimer struct {
	d       time.Duration
	fn      func()
	stopped bool
}

func (s *manualScheduler) After(d time.Duration, fn func()) func() {
	s.mu.Lock()
	defer s.mu.Unlock()
	t := &manualTimer{d: d, fn: fn}
	s.timers = append(s.timers, t)
	return func() {
		s.mu.Lock()
		defer s.mu.Unlock()
		t.stopped = true
	}
}

// fireLatest runs the newest pending timer and returns its duration.
func (s *manualScheduler) fireLatest(t *testing.T) time.Duration {
	t.Helper()

	s.mu.Lock()
	if len(s.timers) == 0 {
		s.mu.Unlock()
		t.Fatalf("no timer armed")
	}
	timer := s.timers[len(s.timers)-1]
	s.mu.Unlock()

	timer.fn()
	return timer.d
}

func (s *manualScheduler) armed() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	n := 0
	for _, t := range s.timers {
		if !t.stopped {
			n++
		}
	}
	return n
}

// startHub runs a hub with deterministic names and room ids.
func startHub(t *testing.T, sched Scheduler) *Hub {
	t.Helper()

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	t.Cleanup(cancel)

	opts := DefaultOptions()
	opts.IDs = &sequenceIDs{}
	opts.Names = fixedNames{}
	opts.Scheduler = sched
	opts.AutoAdvance = sched != nil

	hub := NewHub(opts, nil)
	go hub.Run(ctx)
	return hub
}

func connect(hub *Hub, id string) *Client {
	c := NewClient(id, 32)
	hub.RegisterClient(c)
	return c
}

func mustRoom(t *testing.T, hub *Hub, name string) lobby.RoomState {
	t.Helper()

	state, ok, err := hub.RoomState(context.Background(), name)
	if err != nil {
		t.Fatalf("room state: %v", err)
	}
	if !ok {
		t.Fatalf("room %s not found", name)
	}
	return state
}
