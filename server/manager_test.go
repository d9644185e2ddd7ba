package server

import (
	"reflect"
	"testing"

	"snakegame/game"
)

func TestSessionManager_Lifecycle(t *testing.T) {
	m := NewSessionManager(game.DefaultConfig())
	a := m.GetOrCreateSession("b-room")
	if m.GetOrCreateSession("b-room") != a {
		t.Fatalf("get-or-create returned a new session")
	}
	if m.GetOrCreateSession("") != m.GetOrCreateSession(DefaultSessionID) {
		t.Fatalf("empty id does not map to default session")
	}
	m.GetOrCreateSession("a-room")

	if got := m.IDs(); !reflect.DeepEqual(got, []string{"a-room", "b-room", DefaultSessionID}) {
		t.Fatalf("ids=%v", got)
	}

	if err := m.Remove("b-room"); err != nil {
		t.Fatalf("remove: %v", err)
	}
	if _, ok := m.Get("b-room"); ok {
		t.Fatalf("session still present after remove")
	}
	if err := a.Do(func(*game.Engine) {}); err != ErrSessionClosed {
		t.Fatalf("removed session still running: %v", err)
	}
	if err := m.Remove("missing"); err != nil {
		t.Fatalf("remove missing: %v", err)
	}

	if err := m.CloseAll(); err != nil {
		t.Fatalf("close all: %v", err)
	}
	if len(m.IDs()) != 0 {
		t.Fatalf("sessions left after close all: %v", m.IDs())
	}
}
