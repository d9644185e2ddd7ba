package game

import (
	"sync"
	"time"
)

// Scheduler 引擎独占的周期调度句柄。Start/Stop 幂等。
type Scheduler interface {
	Start(interval time.Duration, tick func())
	Stop()
	Active() bool
}

// TickerScheduler 基于 time.Ticker 的调度器。
// 每次到期时通过 dispatch 把 tick 投递到引擎所属的执行上下文。
// dispatch 为 nil 时 Start 不生效，tick 永远不会在 ticker 协程中执行。
// Start/Stop 必须与 tick 的执行位于同一上下文。
type TickerScheduler struct {
	dispatch func(func()) bool

	gen    uint64
	active bool
	stop   chan struct{}
	wg     sync.WaitGroup
}

func NewTickerScheduler(dispatch func(func()) bool) *TickerScheduler {
	return &TickerScheduler{dispatch: dispatch}
}

func (s *TickerScheduler) Start(interval time.Duration, tick func()) {
	if s.active || s.dispatch == nil || interval <= 0 || tick == nil {
		return
	}
	s.active = true
	s.gen++
	s.stop = make(chan struct{})

	gen, stop := s.gen, s.stop
	// 已投递但尚未执行的 tick 在 Stop/重启之后按代号丢弃
	fire := func() {
		if s.active && s.gen == gen {
			tick()
		}
	}
	s.wg.Add(1)
	go func() {
		defer s.wg.Done()
		t := time.NewTicker(interval)
		defer t.Stop()
		for {
			select {
			case <-stop:
				return
			case <-t.C:
				s.dispatch(fire)
			}
		}
	}()
}

func (s *TickerScheduler) Stop() {
	if !s.active {
		return
	}
	s.active = false
	s.gen++
	close(s.stop)
}

func (s *TickerScheduler) Active() bool { return s.active }

// Wait 等待所有 ticker 协程退出（用于关闭时）
func (s *TickerScheduler) Wait() { s.wg.Wait() }

// ManualScheduler 由调用方手动触发 tick，用于确定性测试
type ManualScheduler struct {
	interval time.Duration
	tick     func()
	active   bool
	starts   int
	stops    int
}

func NewManualScheduler() *ManualScheduler { return &ManualScheduler{} }

func (m *ManualScheduler) Start(interval time.Duration, tick func()) {
	if m.active {
		return
	}
	m.active = true
	m.interval = interval
	m.tick = tick
	m.starts++
}

func (m *ManualScheduler) Stop() {
	if !m.active {
		return
	}
	m.active = false
	m.stops++
}

func (m *ManualScheduler) Active() bool { return m.active }

// Fire 调度器处于活动状态时触发一次 tick，返回是否触发
func (m *ManualScheduler) Fire() bool {
	if !m.active || m.tick == nil {
		return false
	}
	m.tick()
	return true
}

// FireN 最多触发 n 次，调度器停止后提前返回；返回实际触发次数
func (m *ManualScheduler) FireN(n int) int {
	fired := 0
	for i := 0; i < n && m.Fire(); i++ {
		fired++
	}
	return fired
}

func (m *ManualScheduler) Interval() time.Duration { return m.interval }

// Starts/Stops 生效的启动与停止次数
func (m *ManualScheduler) Starts() int { return m.starts }
func (m *ManualScheduler) Stops() int { return m.stops }
