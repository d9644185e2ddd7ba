package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"strconv"
	"syscall"
	"time"

	"snakegame/game"
	"snakegame/server"
)

// snakegame 入口：启动 HTTP + WebSocket 服务，按需为每个会话创建引擎
func main() {
	def := game.DefaultConfig()

	addr := flag.String("addr", getEnvOrDefault("SNAKE_ADDR", ":8080"), "server listen address, e.g. :8080")
	logPath := flag.String("log", getEnvOrDefault("SNAKE_LOG", "snake.log"), "rolling log file path")
	logLevel := flag.String("log-level", getEnvOrDefault("SNAKE_LOG_LEVEL", "info"), "log level: debug, info, warn, error")
	logConsole := flag.Bool("log-console", getEnvBoolOrDefault("SNAKE_LOG_CONSOLE", false), "also write logs to stderr")
	width := flag.Int("width", getEnvIntOrDefault("SNAKE_WIDTH", def.Width), "board width in cells")
	height := flag.Int("height", getEnvIntOrDefault("SNAKE_HEIGHT", def.Height), "board height in cells")
	tick := flag.Duration("tick", getEnvDurationOrDefault("SNAKE_TICK", def.TickInterval), "tick interval")
	length := flag.Int("length", getEnvIntOrDefault("SNAKE_LENGTH", def.InitialLength), "initial snake length")
	points := flag.Int("points", getEnvIntOrDefault("SNAKE_POINTS", def.PointsPerFood), "points awarded per food")
	heading := flag.String("heading", getEnvOrDefault("SNAKE_HEADING", def.InitialHeading.String()), "initial heading: up, down, left, right")
	flag.Parse()

	logOpts := server.DefaultLogOptions(*logPath)
	logOpts.Level = *logLevel
	logOpts.Console = *logConsole
	if err := server.InitLogger(logOpts); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(2)
	}
	defer server.SyncLogger()

	dir, err := game.ParseDirection(*heading)
	if err != nil {
		fmt.Fprintf(os.Stderr, "heading: %v\n", err)
		os.Exit(2)
	}
	cfg := game.Config{
		Width:          *width,
		Height:         *height,
		TickInterval:   *tick,
		InitialLength:  *length,
		PointsPerFood:  *points,
		InitialHeading: dir,
	}
	if err := cfg.Validate(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(2)
	}

	sm := server.NewSessionManager(cfg)
	// 先预创建默认会话，便于快速试跑
	_ = sm.GetOrCreateSession(server.DefaultSessionID)

	mux := http.NewServeMux()
	mux.HandleFunc("/ws", sm.HandleWS)
	// 管理与监控接口
	mux.HandleFunc("/admin/session", sm.HandleAdminSession)
	mux.HandleFunc("/admin/sessions", sm.HandleSessions)
	mux.HandleFunc("/metrics", sm.HandleMetrics)
	mux.HandleFunc("/healthz", func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte("ok"))
	})

	srv := &http.Server{Addr: *addr, Handler: mux}

	go func() {
		server.Log.Infof("snake server listening on %s; board=%dx%d tick=%s", *addr, cfg.Width, cfg.Height, cfg.TickInterval)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			server.Log.Fatalf("listen: %v", err)
		}
	}()

	// 优雅退出（Ctrl+C）
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	server.Log.Info("Shutting down...")

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := srv.Shutdown(ctx); err != nil {
		server.Log.Warnf("http shutdown: %v", err)
	}
	if err := sm.CloseAll(); err != nil {
		server.Log.Warnf("close sessions: %v", err)
	}
}

func getEnvOrDefault(key, def string) string {
	if v, ok := os.LookupEnv(key); ok && v != "" {
		return v
	}
	return def
}

func getEnvIntOrDefault(key string, def int) int {
	v, ok := os.LookupEnv(key)
	if !ok || v == "" {
		return def
	}
	n, err := strconv.Atoi(v)
	if err != nil {
		return def
	}
	return n
}

func getEnvDurationOrDefault(key string, def time.Duration) time.Duration {
	v, ok := os.LookupEnv(key)
	if !ok || v == "" {
		return def
	}
	d, err := time.ParseDuration(v)
	if err != nil {
		return def
	}
	return d
}

func getEnvBoolOrDefault(key string, def bool) bool {
	v, ok := os.LookupEnv(key)
	if !ok || v == "" {
		return def
	}
	b, err := strconv.ParseBool(v)
	if err != nil {
		return def
	}
	return b
}
