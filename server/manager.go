package server

import (
	"sort"
	"sync"

	"go.uber.org/multierr"

	"snakegame/game"
)

// DefaultSessionID 未指定会话时使用
const DefaultSessionID = "default"

// SessionManager 管理多个会话的生命周期；所有会话共享同一配置
type SessionManager struct {
	mu       sync.RWMutex
	sessions map[string]*Session
	cfg      game.Config
	opts     []game.Option
}

func NewSessionManager(cfg game.Config, opts ...game.Option) *SessionManager {
	return &SessionManager{
		sessions: make(map[string]*Session),
		cfg:      cfg,
		opts:     opts,
	}
}

func (m *SessionManager) Config() game.Config { return m.cfg }

// GetOrCreateSession 获取或创建会话
func (m *SessionManager) GetOrCreateSession(id string) *Session {
	if id == "" {
		id = DefaultSessionID
	}
	m.mu.RLock()
	s, ok := m.sessions[id]
	m.mu.RUnlock()
	if ok {
		return s
	}

	m.mu.Lock()
	defer m.mu.Unlock()
	if s, ok = m.sessions[id]; !ok {
		s = NewSession(id, m.cfg, m.opts...)
		m.sessions[id] = s
		Log.Infof("session created: %s board=%dx%d tick=%s", id, m.cfg.Width, m.cfg.Height, m.cfg.TickInterval)
	}
	return s
}

func (m *SessionManager) Get(id string) (*Session, bool) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	s, ok := m.sessions[id]
	return s, ok
}

// Remove 关闭并移除会话
func (m *SessionManager) Remove(id string) error {
	m.mu.Lock()
	s, ok := m.sessions[id]
	delete(m.sessions, id)
	m.mu.Unlock()
	if !ok {
		return nil
	}
	return s.Close()
}

// IDs 返回排序后的会话 ID
func (m *SessionManager) IDs() []string {
	m.mu.RLock()
	defer m.mu.RUnlock()
	ids := make([]string, 0, len(m.sessions))
	for id := range m.sessions {
		ids = append(ids, id)
	}
	sort.Strings(ids)
	return ids
}

// CloseAll 关闭全部会话，汇总错误
func (m *SessionManager) CloseAll() error {
	m.mu.Lock()
	sessions := m.sessions
	m.sessions = make(map[string]*Session)
	m.mu.Unlock()

	var err error
	for _, s := range sessions {
		err = multierr.Append(err, s.Close())
	}
	return err
}
