package web

import (
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/charmbracelet/log"
	"github.com/gorilla/websocket"
	"github.com/vmihailenco/msgpack/v5"

	"github.com/vovakirdan/lungbird/internal/config"
	"github.com/vovakirdan/lungbird/internal/games/lungbird"
	"github.com/vovakirdan/lungbird/internal/runner"
)

func newTestServer(t *testing.T) *httptest.Server {
	t.Helper()
	srv := NewServer(Options{
		Mode:   lungbird.ModeClassic,
		Game:   config.DefaultConfig(),
		Runner: runner.Config{TickRate: 120, BroadcastEvery: 1},
		Seed:   7,
	}, log.New(io.Discard))
	ts := httptest.NewServer(srv.Handler())
	t.Cleanup(ts.Close)
	return ts
}

func dial(t *testing.T, ts *httptest.Server, query string) *websocket.Conn {
	t.Helper()
	url := "ws" + strings.TrimPrefix(ts.URL, "http") + "/ws" + query
	conn, _, err := websocket.DefaultDialer.Dial(url, nil)
	if err != nil {
		t.Fatalf("Dial(%s): %v", url, err)
	}
	t.Cleanup(func() { conn.Close() })
	return conn
}

// readUntil reads frames until match returns true or the deadline passes.
func readUntil(t *testing.T, conn *websocket.Conn, codec Codec, match func(ServerMessage) bool) ServerMessage {
	t.Helper()
	_ = conn.SetReadDeadline(time.Now().Add(3 * time.Second))
	for {
		msgType, data, err := conn.ReadMessage()
		if err != nil {
			t.Fatalf("ReadMessage: %v", err)
		}
		if msgType != codec.MessageType() {
			t.Fatalf("message type = %d, want %d", msgType, codec.MessageType())
		}
		var msg ServerMessage
		if err := codec.Unmarshal(data, &msg); err != nil {
			t.Fatalf("Unmarshal: %v", err)
		}
		if match(msg) {
			return msg
		}
	}
}

func TestCodecByName(t *testing.T) {
	tests := []struct {
		in      string
		want    string
		wantErr bool
	}{
		{"", "msgpack", false},
		{"msgpack", "msgpack", false},
		{"json", "json", false},
		{"xml", "", true},
	}
	for _, tt := range tests {
		c, err := CodecByName(tt.in)
		if (err != nil) != tt.wantErr {
			t.Errorf("CodecByName(%q) error = %v", tt.in, err)
			continue
		}
		if err == nil && c.Name() != tt.want {
			t.Errorf("CodecByName(%q) = %s, want %s", tt.in, c.Name(), tt.want)
		}
	}
}

func TestClientMessageAction(t *testing.T) {
	for _, name := range []string{"gesture", "restart", "pause"} {
		if _, ok := (ClientMessage{Action: name}).action(); !ok {
			t.Errorf("action %q not mapped", name)
		}
	}
	if _, ok := (ClientMessage{Action: "fly"}).action(); ok {
		t.Error("unknown action mapped")
	}
}

func TestJSONSessionStartsOnGesture(t *testing.T) {
	ts := newTestServer(t)
	conn := dial(t, ts, "?codec=json")

	first := readUntil(t, conn, jsonCodec{}, func(ServerMessage) bool { return true })
	if first.Snapshot.Phase != lungbird.PhaseIdle {
		t.Fatalf("initial phase = %s, want idle", first.Snapshot.Phase)
	}

	if err := conn.WriteMessage(websocket.TextMessage, []byte(`{"action":"gesture"}`)); err != nil {
		t.Fatalf("WriteMessage: %v", err)
	}

	msg := readUntil(t, conn, jsonCodec{}, func(m ServerMessage) bool {
		return len(m.Events) > 0
	})
	if msg.Events[0].Kind != "started" {
		t.Errorf("event = %+v, want started", msg.Events[0])
	}
	if msg.Snapshot.Phase != lungbird.PhaseRunning {
		t.Errorf("phase = %s, want running", msg.Snapshot.Phase)
	}
}

func TestMsgpackSession(t *testing.T) {
	ts := newTestServer(t)
	conn := dial(t, ts, "")

	msg := readUntil(t, conn, msgpackCodec{}, func(ServerMessage) bool { return true })
	if msg.Snapshot.Geometry.WorldWidth != 920 || msg.Snapshot.Geometry.WorldHeight != 800 {
		t.Errorf("geometry = %+v", msg.Snapshot.Geometry)
	}

	data, err := msgpack.Marshal(ClientMessage{Action: "gesture"})
	if err != nil {
		t.Fatalf("Marshal: %v", err)
	}
	if err := conn.WriteMessage(websocket.BinaryMessage, data); err != nil {
		t.Fatalf("WriteMessage: %v", err)
	}

	readUntil(t, conn, msgpackCodec{}, func(m ServerMessage) bool {
		return m.Snapshot.Phase == lungbird.PhaseRunning
	})
}

func TestUnknownCodecRejected(t *testing.T) {
	ts := newTestServer(t)

	resp, err := http.Get(ts.URL + "/ws?codec=xml")
	if err != nil {
		t.Fatalf("GET: %v", err)
	}
	resp.Body.Close()
	if resp.StatusCode != http.StatusBadRequest {
		t.Errorf("status = %d, want 400", resp.StatusCode)
	}
}

func TestHealthz(t *testing.T) {
	ts := newTestServer(t)

	resp, err := http.Get(ts.URL + "/healthz")
	if err != nil {
		t.Fatalf("GET: %v", err)
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		t.Errorf("status = %d, want 200", resp.StatusCode)
	}
}
