package http

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/coder/websocket"
	"github.com/coder/websocket/wsjson"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/vovakirdan/doodle-lobby/internal/config"
	"github.com/vovakirdan/doodle-lobby/internal/core"
	"github.com/vovakirdan/doodle-lobby/internal/proto"
)

type wireFrame struct {
	Event string          `json:"event"`
	Data  json.RawMessage `json:"data"`
	Code  string          `json:"code"`
}

func testConfig(t *testing.T) *config.Config {
	t.Helper()
	dir := t.TempDir()

	cfg := config.Default()
	cfg.Addr = ":0"
	cfg.StaticDir = filepath.Join(dir, "public")
	cfg.IndexFile = filepath.Join(dir, "views", "index.html")

	require.NoError(t, os.MkdirAll(cfg.StaticDir, 0o755))
	require.NoError(t, os.MkdirAll(filepath.Dir(cfg.IndexFile), 0o755))
	require.NoError(t, os.WriteFile(cfg.IndexFile, []byte("<html>lobby</html>"), 0o600))
	require.NoError(t, os.WriteFile(filepath.Join(cfg.StaticDir, "app.js"), []byte("console.log('hi')"), 0o600))
	return &cfg
}

func startTestServer(t *testing.T, mutate func(*config.Config)) *httptest.Server {
	t.Helper()

	cfg := testConfig(t)
	if mutate != nil {
		mutate(cfg)
	}

	opts := core.DefaultOptions()
	opts.AutoAdvance = false
	hub := core.NewHub(opts, nil)

	ctx, cancel := context.WithCancel(context.Background())
	go hub.Run(ctx)

	logger := zerolog.Nop()
	ts := httptest.NewServer(NewServer(hub, cfg, &logger).Handler)
	t.Cleanup(func() {
		ts.Close()
		cancel()
	})
	return ts
}

func dial(t *testing.T, ts *httptest.Server) *websocket.Conn {
	t.Helper()
	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
	defer cancel()

	wsURL := "ws" + strings.TrimPrefix(ts.URL, "http") + "/ws"
	conn, _, err := websocket.Dial(ctx, wsURL, nil)
	require.NoError(t, err)
	t.Cleanup(func() { conn.Close(websocket.StatusNormalClosure, "done") })
	return conn
}

func send(t *testing.T, conn *websocket.Conn, event string, data any) {
	t.Helper()
	ctx, cancel := context.WithTimeout(context.Background(), time.Second)
	defer cancel()

	in := map[string]any{"event": event}
	if data != nil {
		in["data"] = data
	}
	require.NoError(t, wsjson.Write(ctx, conn, in))
}

// readUntil skips frames until one with the wanted event name arrives.
func readUntil(t *testing.T, conn *websocket.Conn, event string) wireFrame {
	t.Helper()
	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
	defer cancel()

	for {
		var f wireFrame
		require.NoError(t, wsjson.Read(ctx, conn, &f), "waiting for %q", event)
		if f.Event == event {
			return f
		}
	}
}

func createRoom(t *testing.T, conn *websocket.Conn) proto.Room {
	t.Helper()
	send(t, conn, proto.InboundCreateRoom, nil)
	var room proto.Room
	require.NoError(t, json.Unmarshal(readUntil(t, conn, proto.OutboundRoomJoined).Data, &room))
	return room
}

func joinRoom(t *testing.T, conn *websocket.Conn, name string) proto.Room {
	t.Helper()
	send(t, conn, proto.InboundJoinRoom, name)
	var room proto.Room
	require.NoError(t, json.Unmarshal(readUntil(t, conn, proto.OutboundRoomJoined).Data, &room))
	return room
}

func TestWebSocketCreateJoinAndLeave(t *testing.T) {
	ts := startTestServer(t, nil)
	a := dial(t, ts)
	b := dial(t, ts)

	room := createRoom(t, a)
	assert.GreaterOrEqual(t, len(room.Name), 6)
	require.Len(t, room.Players, 1)
	assert.Equal(t, room.Players[0].ID, room.Owner)
	assert.Equal(t, 0, room.Round)
	assert.Equal(t, 3, room.Settings.Rounds)
	assert.Equal(t, 60, room.Settings.DrawingTime)
	ownerID := room.Owner

	joined := joinRoom(t, b, room.Name)
	require.Len(t, joined.Players, 2)
	assert.Equal(t, ownerID, joined.Owner)

	var roster []proto.Player
	require.NoError(t, json.Unmarshal(readUntil(t, a, proto.OutboundLobbyPlayerUpdate).Data, &roster))
	for len(roster) != 2 {
		require.NoError(t, json.Unmarshal(readUntil(t, a, proto.OutboundLobbyPlayerUpdate).Data, &roster))
	}

	// Owner leaves: b becomes owner.
	send(t, a, proto.InboundDisconnecting, nil)
	var owner string
	require.NoError(t, json.Unmarshal(readUntil(t, b, proto.OutboundOwnerChanged).Data, &owner))
	assert.Equal(t, joined.Players[1].ID, owner)

	require.NoError(t, json.Unmarshal(readUntil(t, b, proto.OutboundLobbyPlayerUpdate).Data, &roster))
	require.Len(t, roster, 1)
	assert.Equal(t, owner, roster[0].ID)
}

func TestWebSocketJoinUnknownRoom(t *testing.T) {
	ts := startTestServer(t, nil)
	conn := dial(t, ts)

	send(t, conn, proto.InboundJoinRoom, "nosuchroom")
	f := readUntil(t, conn, proto.OutboundError)

	var msg string
	require.NoError(t, json.Unmarshal(f.Data, &msg))
	assert.Equal(t, "Failed to join the room, does not exist.", msg)
	assert.Equal(t, "room_not_found", f.Code)
}

func TestWebSocketStartGameNeedsTwoPlayers(t *testing.T) {
	ts := startTestServer(t, nil)
	a := dial(t, ts)
	room := createRoom(t, a)

	send(t, a, proto.InboundStartGame, room.Name)
	f := readUntil(t, a, proto.OutboundError)
	assert.Equal(t, "not_enough_players", f.Code)

	b := dial(t, ts)
	joinRoom(t, b, room.Name)

	send(t, a, proto.InboundStartGame, room.Name)
	readUntil(t, a, proto.OutboundGameStarting)
	readUntil(t, b, proto.OutboundGameStarting)
}

func TestWebSocketChangeName(t *testing.T) {
	ts := startTestServer(t, nil)
	a := dial(t, ts)
	b := dial(t, ts)
	room := createRoom(t, a)
	joinRoom(t, b, room.Name)

	send(t, b, proto.InboundChangeName, "Sketchy")
	var name string
	require.NoError(t, json.Unmarshal(readUntil(t, b, proto.OutboundNameChanged).Data, &name))
	assert.Equal(t, "Sketchy", name)

	send(t, a, proto.InboundChangeName, "Sketchy")
	f := readUntil(t, a, proto.OutboundError)
	assert.Equal(t, "name_taken", f.Code)

	send(t, a, proto.InboundChangeName, "x")
	f = readUntil(t, a, proto.OutboundError)
	assert.Equal(t, "invalid_name", f.Code)
}

func TestWebSocketMalformedFramesKeepConnection(t *testing.T) {
	ts := startTestServer(t, nil)
	conn := dial(t, ts)

	ctx, cancel := context.WithTimeout(context.Background(), time.Second)
	defer cancel()
	require.NoError(t, conn.Write(ctx, websocket.MessageText, []byte("{not json")))
	f := readUntil(t, conn, proto.OutboundError)
	assert.Equal(t, core.ErrCodeBadRequest, f.Code)

	send(t, conn, "drawStuff", nil)
	f = readUntil(t, conn, proto.OutboundError)
	assert.Equal(t, core.ErrCodeBadRequest, f.Code)

	send(t, conn, proto.InboundJoinRoom, 42)
	f = readUntil(t, conn, proto.OutboundError)
	assert.Equal(t, core.ErrCodeBadRequest, f.Code)

	// Still usable.
	room := createRoom(t, conn)
	assert.NotEmpty(t, room.Name)
}

func TestWebSocketRateLimit(t *testing.T) {
	ts := startTestServer(t, func(c *config.Config) {
		c.RateLimit = 0.001
		c.RateBurst = 1
	})
	conn := dial(t, ts)

	createRoom(t, conn)
	send(t, conn, proto.InboundCreateRoom, nil)
	f := readUntil(t, conn, proto.OutboundError)
	assert.Equal(t, core.ErrCodeRateLimited, f.Code)
}

func TestWebSocketCloseLeavesRoom(t *testing.T) {
	ts := startTestServer(t, nil)
	a := dial(t, ts)
	b := dial(t, ts)
	room := createRoom(t, a)
	joinRoom(t, b, room.Name)

	require.NoError(t, b.Close(websocket.StatusNormalClosure, "bye"))

	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
	defer cancel()
	for {
		var f wireFrame
		require.NoError(t, wsjson.Read(ctx, a, &f))
		if f.Event != proto.OutboundLobbyPlayerUpdate {
			continue
		}
		var roster []proto.Player
		require.NoError(t, json.Unmarshal(f.Data, &roster))
		if len(roster) == 1 {
			assert.Equal(t, room.Owner, roster[0].ID)
			return
		}
	}
}

func TestOriginHosts(t *testing.T) {
	assert.Nil(t, originHosts(nil))
	assert.Nil(t, originHosts([]string{"https://a.example", "*"}))
	assert.Equal(t,
		[]string{"a.example", "localhost:3000", "b.example"},
		originHosts([]string{"https://a.example", "http://localhost:3000", "b.example"}),
	)
}

func TestWebSocketRejectsForeignOrigin(t *testing.T) {
	ts := startTestServer(t, func(c *config.Config) {
		c.AllowedOrigins = []string{"https://game.example"}
	})

	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
	defer cancel()
	wsURL := "ws" + strings.TrimPrefix(ts.URL, "http") + "/ws"
	_, resp, err := websocket.Dial(ctx, wsURL, &websocket.DialOptions{
		HTTPHeader: http.Header{"Origin": []string{"https://evil.example"}},
	})
	require.Error(t, err)
	if resp != nil {
		assert.Equal(t, http.StatusForbidden, resp.StatusCode)
	}
}

func TestWebSocketJoinEmptyRoomLeavesCurrentRoom(t *testing.T) {
	ts := startTestServer(t, nil)
	a := dial(t, ts)
	b := dial(t, ts)
	room := createRoom(t, a)
	joinRoom(t, b, room.Name)

	send(t, b, proto.InboundJoinRoom, "")
	f := readUntil(t, b, proto.OutboundError)
	assert.Equal(t, "room_not_found", f.Code)

	var summary proto.RoomSummary
	status, body := get(t, ts.URL+"/api/rooms/"+room.Name)
	require.Equal(t, http.StatusOK, status)
	require.NoError(t, json.Unmarshal(body, &summary))
	assert.Equal(t, 1, summary.Players)

	// A missing payload is treated the same way.
	c := dial(t, ts)
	joinRoom(t, c, room.Name)
	send(t, c, proto.InboundJoinRoom, nil)
	f = readUntil(t, c, proto.OutboundError)
	assert.Equal(t, "room_not_found", f.Code)
}
