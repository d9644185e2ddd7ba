package server

import (
	"encoding/json"
	"errors"
	"time"

	"go.uber.org/zap"

	"snakegame/game"
)

var (
	// ErrSessionClosed 会话已关闭
	ErrSessionClosed = errors.New("session closed")
	// ErrCloseTimeout 会话协程未在限定时间内退出
	ErrCloseTimeout = errors.New("session close timed out")
)

const (
	taskQueueSize = 256
	closeTimeout  = 5 * time.Second
)

// Session 会话：独占一个引擎，并作为它唯一的执行上下文。
// Tick、客户端命令、玩家加入/离开都以任务形式投递到同一协程串行执行。
type Session struct {
	ID string

	engine  *game.Engine
	ticker  *game.TickerScheduler
	players map[PlayerID]*Player
	eaten   int // 上次观察到的本局进食数，仅在会话协程内访问

	tasks chan func()
	quit  chan struct{}
	done  chan struct{}

	metrics *SessionMetrics
	log     *zap.SugaredLogger
}

// NewSession 创建会话并启动其协程；引擎立即重置为 Ready。
// opts 追加在默认选项之后，可覆盖调度器或随机源。
func NewSession(id string, cfg game.Config, opts ...game.Option) *Session {
	s := &Session{
		ID:      id,
		players: make(map[PlayerID]*Player),
		tasks:   make(chan func(), taskQueueSize), // 足够缓冲，避免网络读阻塞影响 Tick
		quit:    make(chan struct{}),
		done:    make(chan struct{}),
		metrics: &SessionMetrics{},
		log:     Log.With("session", id),
	}
	s.ticker = game.NewTickerScheduler(s.dispatchTick)

	base := []game.Option{
		game.WithScheduler(s.ticker),
		game.WithLogger(s.log.Desugar().Named("engine")),
	}
	s.engine = game.NewEngine(cfg, append(base, opts...)...)
	s.wireEvents()
	s.engine.Reset()

	go s.run()
	return s
}

func (s *Session) Metrics() *SessionMetrics { return s.metrics }

func (s *Session) run() {
	defer close(s.done)
	for {
		select {
		case <-s.quit:
			s.shutdown()
			return
		case fn := <-s.tasks:
			fn()
		}
	}
}

func (s *Session) shutdown() {
	s.engine.Close()
	s.ticker.Wait()
	for id, p := range s.players {
		if p.Conn != nil {
			p.Conn.Close()
		}
		delete(s.players, id)
	}
	s.log.Infof("session closed")
}

// post 非阻塞投递任务；通道满时丢弃，保证 Tick 准时
func (s *Session) post(fn func()) bool {
	select {
	case <-s.quit:
		return false
	default:
	}
	select {
	case s.tasks <- fn:
		return true
	default:
		s.metrics.IncChanFullDiscarded()
		return false
	}
}

// call 阻塞投递并等待执行完成；不可在会话协程内调用
func (s *Session) call(fn func()) error {
	finished := make(chan struct{})
	task := func() {
		defer close(finished)
		fn()
	}
	select {
	case s.tasks <- task:
	case <-s.quit:
		return ErrSessionClosed
	}
	select {
	case <-finished:
		return nil
	case <-s.done:
		return ErrSessionClosed
	}
}

// Do 在会话协程中执行 fn 并等待返回
func (s *Session) Do(fn func(e *game.Engine)) error {
	return s.call(func() { fn(s.engine) })
}

// Close 停止会话协程、取消待执行的 Tick 并关闭所有连接；可重复调用
func (s *Session) Close() error {
	select {
	case <-s.quit:
	default:
		close(s.quit)
	}
	select {
	case <-s.done:
		return nil
	case <-time.After(closeTimeout):
		return ErrCloseTimeout
	}
}

// OnInput 入站输入（不立即作用），投递到会话协程
func (s *Session) OnInput(in Input) bool {
	return s.post(func() { s.apply(in) })
}

// Apply 同步执行一条输入并返回执行后的快照
func (s *Session) Apply(in Input) (SnapshotMessage, error) {
	var snap SnapshotMessage
	err := s.call(func() {
		s.apply(in)
		snap = s.snapshot("")
	})
	return snap, err
}

// Snapshot 同步读取当前完整状态
func (s *Session) Snapshot() (SnapshotMessage, error) {
	var snap SnapshotMessage
	err := s.call(func() { snap = s.snapshot("") })
	return snap, err
}

// Join 将玩家加入会话，并向其发送完整快照；同 ID 的旧连接被替换
func (s *Session) Join(p *Player) bool {
	return s.post(func() {
		if old, ok := s.players[p.ID]; ok && old.Conn != nil && old.Conn != p.Conn {
			old.Conn.Close()
		}
		s.players[p.ID] = p
		s.sendTo(p, s.snapshot(p.ID))
		s.log.Infof("player joined: %s (players=%d)", p.ID, len(s.players))
	})
}

// RequestLeave 请求在会话协程中移除玩家；会话关闭时直接返回
func (s *Session) RequestLeave(id PlayerID, conn Sink) {
	task := func() {
		p, ok := s.players[id]
		if !ok || (conn != nil && p.Conn != conn) {
			return
		}
		if p.Conn != nil {
			p.Conn.Close()
		}
		delete(s.players, id)
		s.log.Infof("player left: %s (players=%d)", id, len(s.players))
	}
	select {
	case s.tasks <- task:
	case <-s.quit:
	}
}

// apply 在会话协程中把输入作用于引擎
func (s *Session) apply(in Input) {
	if p, ok := s.players[in.PlayerID]; ok && in.Seq > 0 {
		if in.Seq <= p.lastSeq {
			s.metrics.IncOldSeqIgnored()
			return
		}
		p.lastSeq = in.Seq
	}

	switch in.Type {
	case CmdStart:
		s.engine.Start()
	case CmdPause:
		s.engine.Pause()
	case CmdResume:
		s.engine.Resume()
	case CmdReset:
		s.engine.Reset()
	case CmdToggle:
		s.engine.TogglePause()
	case CmdMove:
		if !s.engine.SetDirection(in.Direction) {
			s.metrics.IncDirectionRejected()
			return
		}
	default:
		return
	}
	s.metrics.IncAccepted()
}

// wireEvents 订阅引擎事件并广播给会话内所有玩家
func (s *Session) wireEvents() {
	s.engine.OnSnakeMoved(func(body []game.Position) {
		s.broadcast(SnakeMovedMessage{Type: MsgSnakeMoved, Body: body})
	})
	s.engine.OnFoodSpawned(func(p game.Position) {
		s.broadcast(FoodSpawnedMessage{Type: MsgFoodSpawned, Position: p})
	})
	s.engine.OnScoreChanged(func(score int) {
		// 快照也会发布分数，只按引擎的进食计数累计
		n := s.engine.FoodEaten()
		if n > s.eaten {
			s.metrics.IncFoodEaten()
		}
		s.eaten = n
		s.broadcast(ScoreChangedMessage{Type: MsgScoreChanged, Score: score})
	})
	s.engine.OnStateChanged(func(st game.State) {
		s.broadcast(StateChangedMessage{Type: MsgStateChanged, State: st})
	})
	s.engine.OnGameOver(func(finalScore int) {
		s.metrics.IncGamesOver()
		reason := s.engine.EndReason()
		s.log.Infof("game over: score=%d reason=%s length=%d", finalScore, reason, s.engine.SnakeLength())
		s.broadcast(GameOverMessage{Type: MsgGameOver, FinalScore: finalScore, Reason: reason})
	})
}

func (s *Session) snapshot(pid PlayerID) SnapshotMessage {
	e := s.engine
	return SnapshotMessage{
		Type:      MsgSnapshot,
		Session:   s.ID,
		Player:    string(pid),
		Width:     e.Width(),
		Height:    e.Height(),
		State:     e.State(),
		Score:     e.Score(),
		Body:      e.SnakeBody(),
		Food:      e.FoodPosition(),
		Direction: e.Direction(),
	}
}

// broadcast 将消息编码一次后发给所有玩家（文本 JSON）
func (s *Session) broadcast(msg any) {
	if len(s.players) == 0 {
		return
	}
	b, err := json.Marshal(msg)
	if err != nil {
		s.log.Errorf("encode %T: %v", msg, err)
		return
	}
	for _, p := range s.players {
		if p.Conn != nil {
			p.Conn.Enqueue(b)
		}
	}
}

func (s *Session) sendTo(p *Player, msg any) {
	if p.Conn == nil {
		return
	}
	b, err := json.Marshal(msg)
	if err != nil {
		s.log.Errorf("encode %T: %v", msg, err)
		return
	}
	p.Conn.Enqueue(b)
}
