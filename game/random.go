package game

import "math/rand"

// RandomSource 生成 [min,max] 闭区间内的均匀随机整数。
// 测试中注入固定序列即可让食物位置完全确定。
type RandomSource interface {
	UniformInt(min, max int) int
}

// RandomFunc 把普通函数适配为 RandomSource
type RandomFunc func(min, max int) int

func (f RandomFunc) UniformInt(min, max int) int { return f(min, max) }

// DefaultRandom 基于进程级 math/rand 全局生成器
var DefaultRandom RandomSource = RandomFunc(func(min, max int) int {
	if max <= min {
		return min
	}
	return min + rand.Intn(max-min+1)
})

// SequenceRandom 依次返回预设值（循环使用），超出区间时截断到边界
type SequenceRandom struct {
	values []int
	next   int
}

func NewSequenceRandom(values ...int) *SequenceRandom {
	return &SequenceRandom{values: values}
}

func (s *SequenceRandom) UniformInt(min, max int) int {
	if len(s.values) == 0 {
		return min
	}
	v := s.values[s.next%len(s.values)]
	s.next++
	return clamp(v, min, max)
}

func clamp(v, lo, hi int) int {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}
