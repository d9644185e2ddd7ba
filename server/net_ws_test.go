package server

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/gorilla/websocket"

	"snakegame/game"
)

func dialSession(t *testing.T, srv *httptest.Server, query string) *websocket.Conn {
	t.Helper()
	url := "ws" + strings.TrimPrefix(srv.URL, "http") + "/ws?" + query
	conn, _, err := websocket.DefaultDialer.Dial(url, nil)
	if err != nil {
		t.Fatalf("dial: %v", err)
	}
	t.Cleanup(func() { _ = conn.Close() })
	return conn
}

func readOfType(t *testing.T, conn *websocket.Conn, typ string) wireMsg {
	t.Helper()
	conn.SetReadDeadline(time.Now().Add(2 * time.Second))
	for {
		_, b, err := conn.ReadMessage()
		if err != nil {
			t.Fatalf("read waiting for %q: %v", typ, err)
		}
		var m wireMsg
		if err := json.Unmarshal(b, &m); err != nil {
			t.Fatalf("decode %s: %v", b, err)
		}
		if m.Type == typ {
			return m
		}
	}
}

func newWSServer(t *testing.T) (*SessionManager, *httptest.Server) {
	t.Helper()
	cfg := game.DefaultConfig()
	cfg.TickInterval = time.Hour // 测试中手动 Tick
	m := NewSessionManager(cfg, firstCell())
	mux := http.NewServeMux()
	mux.HandleFunc("/ws", m.HandleWS)
	srv := httptest.NewServer(mux)
	t.Cleanup(func() {
		srv.Close()
		_ = m.CloseAll()
	})
	return m, srv
}

func TestHandleWS_PlayLoop(t *testing.T) {
	m, srv := newWSServer(t)
	conn := dialSession(t, srv, "session=ws&player=alice")

	snap := readOfType(t, conn, MsgSnapshot)
	if snap.Player != "alice" || snap.State != game.Ready {
		t.Fatalf("snapshot=%+v", snap)
	}

	if err := conn.WriteJSON(InputMessage{Type: "start"}); err != nil {
		t.Fatalf("write: %v", err)
	}
	if m := readOfType(t, conn, MsgStateChanged); m.State != game.Running {
		t.Fatalf("state=%v", m.State)
	}
	readOfType(t, conn, MsgScoreChanged)

	if err := conn.WriteJSON(InputMessage{Type: "move", Command: "down", Seq: 1}); err != nil {
		t.Fatalf("write: %v", err)
	}
	s, ok := m.Get("ws")
	if !ok {
		t.Fatalf("session not created")
	}
	// 等待转向命令生效后手动推进一步
	deadline := time.Now().Add(2 * time.Second)
	for {
		var dir game.Direction
		if err := s.Do(func(e *game.Engine) { dir = e.Direction() }); err != nil {
			t.Fatalf("do: %v", err)
		}
		if dir == game.Down {
			break
		}
		if time.Now().After(deadline) {
			t.Fatalf("direction never applied")
		}
		time.Sleep(5 * time.Millisecond)
	}
	if err := s.Do(func(e *game.Engine) { e.Tick() }); err != nil {
		t.Fatalf("do: %v", err)
	}
	moved := readOfType(t, conn, MsgSnakeMoved)
	if moved.Body[0] != (game.Position{X: 10, Y: 8}) {
		t.Fatalf("head=%v want=(10,8)", moved.Body[0])
	}
}

func TestHandleWS_GeneratesPlayerID(t *testing.T) {
	_, srv := newWSServer(t)
	conn := dialSession(t, srv, "")
	snap := readOfType(t, conn, MsgSnapshot)
	if len(snap.Player) != 36 {
		t.Fatalf("player id=%q, want uuid", snap.Player)
	}
}

func TestHandleWS_BroadcastsToAllPlayers(t *testing.T) {
	_, srv := newWSServer(t)
	a := dialSession(t, srv, "session=shared&player=a")
	b := dialSession(t, srv, "session=shared&player=b")
	readOfType(t, a, MsgSnapshot)
	readOfType(t, b, MsgSnapshot)

	// 非法消息被忽略，不影响后续命令
	if err := a.WriteMessage(websocket.TextMessage, []byte("not json")); err != nil {
		t.Fatalf("write: %v", err)
	}
	if err := a.WriteJSON(InputMessage{Type: "start"}); err != nil {
		t.Fatalf("write: %v", err)
	}
	for _, c := range []*websocket.Conn{a, b} {
		if m := readOfType(t, c, MsgStateChanged); m.State != game.Running {
			t.Fatalf("state=%v", m.State)
		}
	}
}
