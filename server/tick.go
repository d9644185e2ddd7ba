package server

import "time"

// dispatchTick 由 TickerScheduler 在 ticker 协程中调用：
// 把 tick 投递到会话协程执行，并统计耗时。通道满时本次 tick 被丢弃。
func (s *Session) dispatchTick(tick func()) bool {
	return s.post(func() {
		start := time.Now()
		tick()
		s.metrics.AddTick(time.Since(start).Nanoseconds())
	})
}
