package game

// Snake 蛇身（0 为蛇头，末尾为蛇尾）与当前朝向。
// 蛇身各格互不重叠由引擎的碰撞检测保证，容器本身不校验。
type Snake struct {
	body      []Position
	direction Direction
}

// NewSnake 以 start 为蛇头、沿 dir 反方向延伸 length 格构造蛇
func NewSnake(start Position, length int, dir Direction) *Snake {
	s := &Snake{}
	s.Reset(start, length, dir)
	return s
}

// Reset 重建蛇身，蛇头朝 dir，身体向反方向延伸；length 小于 1 时按 1 处理
func (s *Snake) Reset(start Position, length int, dir Direction) {
	if length < 1 {
		length = 1
	}
	s.direction = dir
	back := dir.Opposite().Offset()
	s.body = make([]Position, 0, length+1)
	for i := 0; i < length; i++ {
		s.body = append(s.body, start.Add(back.Scale(i)))
	}
}

// Move 在头部插入新蛇头并移除蛇尾，长度不变
func (s *Snake) Move() {
	if len(s.body) == 0 {
		return
	}
	s.prepend(s.nextHead())
	s.body = s.body[:len(s.body)-1]
}

// Grow 在头部插入新蛇头并保留蛇尾，长度 +1
func (s *Snake) Grow() {
	if len(s.body) == 0 {
		return
	}
	s.prepend(s.nextHead())
}

// SetDirection 拒绝与当前方向相反的转向（返回 false，方向不变）
func (s *Snake) SetDirection(d Direction) bool {
	if !d.Valid() || s.direction.IsOpposite(d) {
		return false
	}
	s.direction = d
	return true
}

// Head 蛇头；空蛇返回 Unplaced
func (s *Snake) Head() Position {
	if len(s.body) == 0 {
		return Unplaced
	}
	return s.body[0]
}

// Body 蛇身副本，蛇头在前
func (s *Snake) Body() []Position {
	out := make([]Position, len(s.body))
	copy(out, s.body)
	return out
}

func (s *Snake) Direction() Direction { return s.direction }

func (s *Snake) Len() int { return len(s.body) }

// NextHead 按当前方向下一步的蛇头位置
func (s *Snake) NextHead() Position {
	return s.nextHead()
}

// bites 新蛇头是否与身体（下标 1..len-1）重叠
func (s *Snake) bites() bool {
	if len(s.body) == 0 {
		return false
	}
	head := s.body[0]
	for _, p := range s.body[1:] {
		if p == head {
			return true
		}
	}
	return false
}

func (s *Snake) nextHead() Position {
	return s.Head().Add(s.direction.Offset())
}

func (s *Snake) prepend(p Position) {
	s.body = append(s.body, Position{})
	copy(s.body[1:], s.body)
	s.body[0] = p
}
