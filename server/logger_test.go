package server

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

)

func TestInitLogger_WritesRollingFile(t *testing.T) {
	prev := Log
	t.Cleanup(func() { Log = prev })

	path := filepath.Join(t.TempDir(), "snake.log")
	if err := InitLogger(DefaultLogOptions(path)); err != nil {
		t.Fatalf("init: %v", err)
	}
	Log.Debugf("hidden %d", 1)
	Log.Infof("session created: %s", "alpha")
	SyncLogger()

	b, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("read log: %v", err)
	}
	out := string(b)
	if !strings.Contains(out, "session created: alpha") || !strings.Contains(out, "INFO") {
		t.Fatalf("log output=%q", out)
	}
	if strings.Contains(out, "hidden") {
		t.Fatalf("debug line written at info level: %q", out)
	}
}

func TestInitLogger_RejectsBadLevel(t *testing.T) {
	prev := Log
	t.Cleanup(func() { Log = prev })

	opts := DefaultLogOptions("")
	opts.Level = "loud"
	if err := InitLogger(opts); err == nil {
		t.Fatalf("expected error for level %q", opts.Level)
	}
	opts.Level = "debug"
	if err := InitLogger(opts); err != nil {
		t.Fatalf("init without sinks: %v", err)
	}
	Log.Infof("discarded")
}
