package game

// Food 单个食物；放置后与蛇身不相交
type Food struct {
	bounds   Bounds
	position Position
	rng      RandomSource
}

// NewFood 创建未放置的食物，使用 DefaultRandom
func NewFood(width, height int) *Food {
	return &Food{
		bounds:   Bounds{Width: width, Height: height},
		position: Unplaced,
		rng:      DefaultRandom,
	}
}

// SetRandom 替换随机源；nil 保持原随机源
func (f *Food) SetRandom(r RandomSource) {
	if r != nil {
		f.rng = r
	}
}

func (f *Food) Position() Position { return f.position }

// Placed 是否已放置在棋盘上
func (f *Food) Placed() bool { return f.position != Unplaced }

// Reset 清为未放置并更新棋盘尺寸
func (f *Food) Reset(width, height int) {
	f.bounds = Bounds{Width: width, Height: height}
	f.position = Unplaced
}

// FreeCells 列出不在 excluding 中的所有格子，按列优先（x 外层、y 内层）
func (f *Food) FreeCells(excluding []Position) []Position {
	taken := make(map[Position]struct{}, len(excluding))
	for _, p := range excluding {
		taken[p] = struct{}{}
	}
	n := f.bounds.Cells() - len(taken)
	if n < 0 {
		n = 0
	}
	free := make([]Position, 0, n)
	for x := 0; x < f.bounds.Width; x++ {
		for y := 0; y < f.bounds.Height; y++ {
			p := Position{X: x, Y: y}
			if _, ok := taken[p]; !ok {
				free = append(free, p)
			}
		}
	}
	return free
}

// Respawn 在空闲格中均匀随机选择新位置；没有空闲格时返回 false，位置不变
func (f *Food) Respawn(excluding []Position) bool {
	free := f.FreeCells(excluding)
	if len(free) == 0 {
		return false
	}
	idx := clamp(f.rng.UniformInt(0, len(free)-1), 0, len(free)-1)
	f.position = free[idx]
	return true
}
