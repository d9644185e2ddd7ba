package game

// signal 单一事件的监听者列表，按注册顺序同步调用
type signal[T any] struct {
	listeners []func(T)
}

func (s *signal[T]) connect(fn func(T)) {
	if fn != nil {
		s.listeners = append(s.listeners, fn)
	}
}

func (s *signal[T]) emit(v T) {
	for _, fn := range s.listeners {
		fn(v)
	}
}
