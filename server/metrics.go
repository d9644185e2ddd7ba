package server

import (
	"sync/atomic"
)

// SessionMetrics 记录会话运行期的关键指标（用于监控与调试）
type SessionMetrics struct {
	TickCount          int64 // 实际执行的 Tick 次数
	TotalTickNs        int64 // Tick 累计耗时（纳秒）
	CommandsAccepted   int64 // 被接受的命令数
	DirectionsRejected int64 // 反向或非运行态被拒绝的转向
	OldSeqIgnored      int64 // 因旧序列被忽略的输入数
	ChanFullDiscarded  int64 // 因任务通道满被丢弃的任务数
	FoodEaten          int64
	GamesOver          int64
}

func (m *SessionMetrics) IncAccepted() { atomic.AddInt64(&m.CommandsAccepted, 1) }
func (m *SessionMetrics) IncDirectionRejected() { atomic.AddInt64(&m.DirectionsRejected, 1) }
func (m *SessionMetrics) IncOldSeqIgnored() { atomic.AddInt64(&m.OldSeqIgnored, 1) }
func (m *SessionMetrics) IncChanFullDiscarded() { atomic.AddInt64(&m.ChanFullDiscarded, 1) }
func (m *SessionMetrics) IncFoodEaten() { atomic.AddInt64(&m.FoodEaten, 1) }
func (m *SessionMetrics) IncGamesOver() { atomic.AddInt64(&m.GamesOver, 1) }
func (m *SessionMetrics) AddTick(ns int64) {
	atomic.AddInt64(&m.TickCount, 1)
	atomic.AddInt64(&m.TotalTickNs, ns)
}

// Snapshot 返回只读副本，便于 HTTP 输出
func (m *SessionMetrics) Snapshot() map[string]any {
	tick := atomic.LoadInt64(&m.TickCount)
	total := atomic.LoadInt64(&m.TotalTickNs)
	var avgMs float64
	if tick > 0 {
		avgMs = float64(total) / float64(tick) / 1e6
	}
	return map[string]any{
		"tick_count":          tick,
		"commands_accepted":   atomic.LoadInt64(&m.CommandsAccepted),
		"directions_rejected": atomic.LoadInt64(&m.DirectionsRejected),
		"old_seq_ignored":     atomic.LoadInt64(&m.OldSeqIgnored),
		"chan_full_discarded": atomic.LoadInt64(&m.ChanFullDiscarded),
		"food_eaten":          atomic.LoadInt64(&m.FoodEaten),
		"games_over":          atomic.LoadInt64(&m.GamesOver),
		"avg_tick_ms":         avgMs,
	}
}
