package server

import (
	"encoding/json"
	"net/http"

	"github.com/google/uuid"

	"snakegame/game"
)

type configView struct {
	Width          int            `json:"width"`
	Height         int            `json:"height"`
	TickIntervalMs int64          `json:"tickIntervalMs"`
	InitialLength  int            `json:"initialLength"`
	PointsPerFood  int            `json:"pointsPerFood"`
	InitialHeading game.Direction `json:"initialHeading"`
}

func viewConfig(c game.Config) configView {
	return configView{
		Width:          c.Width,
		Height:         c.Height,
		TickIntervalMs: c.TickInterval.Milliseconds(),
		InitialLength:  c.InitialLength,
		PointsPerFood:  c.PointsPerFood,
		InitialHeading: c.InitialHeading,
	}
}

// HandleAdminSession 会话查询与控制
// GET  /admin/session?session=default  返回配置与当前快照
// POST /admin/session?session=default  以 JSON 命令控制，如 {"type":"start"}
// POST /admin/session?new=1            创建 UUID 命名的新会话
func (m *SessionManager) HandleAdminSession(w http.ResponseWriter, r *http.Request) {
	sessionID := r.URL.Query().Get("session")

	switch r.Method {
	case http.MethodGet:
		if sessionID == "" {
			sessionID = DefaultSessionID
		}
		s, ok := m.Get(sessionID)
		if !ok {
			http.Error(w, "session not found", http.StatusNotFound)
			return
		}
		snap, err := s.Snapshot()
		if err != nil {
			http.Error(w, err.Error(), http.StatusGone)
			return
		}
		writeJSON(w, map[string]any{
			"session":  sessionID,
			"config":   viewConfig(m.cfg),
			"snapshot": snap,
		})
		return
	case http.MethodPost:
		if sessionID == "" {
			if r.URL.Query().Get("new") == "1" {
				sessionID = uuid.NewString()
			} else {
				sessionID = DefaultSessionID
			}
		}
		s := m.GetOrCreateSession(sessionID)

		var body InputMessage
		if r.ContentLength != 0 {
			if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
				http.Error(w, "invalid json", http.StatusBadRequest)
				return
			}
		}
		if body.Type == "" {
			snap, err := s.Snapshot()
			if err != nil {
				http.Error(w, err.Error(), http.StatusGone)
				return
			}
			writeJSON(w, map[string]any{"session": sessionID, "snapshot": snap})
			return
		}
		in, err := ParseInput("", body)
		if err != nil {
			http.Error(w, err.Error(), http.StatusBadRequest)
			return
		}
		snap, err := s.Apply(in)
		if err != nil {
			http.Error(w, err.Error(), http.StatusGone)
			return
		}
		Log.Infof("admin command: session=%s type=%s state=%s", sessionID, in.Type, snap.State)
		writeJSON(w, map[string]any{"session": sessionID, "snapshot": snap})
		return
	default:
		http.Error(w, "method not allowed", http.StatusMethodNotAllowed)
		return
	}
}

// HandleMetrics 输出指定会话的运行指标
// GET /metrics?session=default
func (m *SessionManager) HandleMetrics(w http.ResponseWriter, r *http.Request) {
	sessionID := r.URL.Query().Get("session")
	if sessionID == "" {
		sessionID = DefaultSessionID
	}
	s, ok := m.Get(sessionID)
	if !ok {
		http.Error(w, "session not found", http.StatusNotFound)
		return
	}
	writeJSON(w, map[string]any{
		"session": sessionID,
		"metrics": s.Metrics().Snapshot(),
	})
}

// HandleSessions 列出所有会话 ID
func (m *SessionManager) HandleSessions(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, map[string]any{"sessions": m.IDs()})
}

func writeJSON(w http.ResponseWriter, v any) {
	w.Header().Set("Content-Type", "application/json")
	_ = json.NewEncoder(w).Encode(v)
}
