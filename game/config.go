package game

import (
	"errors"
	"fmt"
	"time"
)

const (
	DefaultBoardWidth    = 20
	DefaultBoardHeight   = 15
	DefaultTickInterval  = 200 * time.Millisecond
	DefaultInitialLength = 3
	DefaultPointsPerFood = 10
	DefaultHeading       = Right
)

// ErrInvalidConfig 配置校验失败
var ErrInvalidConfig = errors.New("invalid game config")

// Config 引擎构造时固定的参数，Reset 不会改变它们
type Config struct {
	Width          int           `json:"width"`
	Height         int           `json:"height"`
	TickInterval   time.Duration `json:"tickInterval"`
	InitialLength  int           `json:"initialLength"`
	PointsPerFood  int           `json:"pointsPerFood"`
	InitialHeading Direction     `json:"initialHeading"`
}

// DefaultConfig 20×15 棋盘、200ms、长度 3、每个食物 10 分、初始向右
func DefaultConfig() Config {
	return Config{
		Width:          DefaultBoardWidth,
		Height:         DefaultBoardHeight,
		TickInterval:   DefaultTickInterval,
		InitialLength:  DefaultInitialLength,
		PointsPerFood:  DefaultPointsPerFood,
		InitialHeading: DefaultHeading,
	}
}

// Bounds 棋盘边界
func (c Config) Bounds() Bounds {
	return Bounds{Width: c.Width, Height: c.Height}
}

// Validate 检查尺寸与数值为正，且居中放置的初始蛇身完全落在棋盘内
func (c Config) Validate() error {
	switch {
	case c.Width <= 0 || c.Height <= 0:
		return fmt.Errorf("%w: board %dx%d", ErrInvalidConfig, c.Width, c.Height)
	case c.TickInterval <= 0:
		return fmt.Errorf("%w: tick interval %s", ErrInvalidConfig, c.TickInterval)
	case c.InitialLength < 1:
		return fmt.Errorf("%w: initial length %d", ErrInvalidConfig, c.InitialLength)
	case c.PointsPerFood < 0:
		return fmt.Errorf("%w: points per food %d", ErrInvalidConfig, c.PointsPerFood)
	case !c.InitialHeading.Valid():
		return fmt.Errorf("%w: heading %d", ErrInvalidConfig, int(c.InitialHeading))
	}
	b := c.Bounds()
	tail := b.Center().Add(c.InitialHeading.Opposite().Offset().Scale(c.InitialLength - 1))
	if !b.Contains(tail) {
		return fmt.Errorf("%w: snake of length %d heading %s does not fit on %dx%d board",
			ErrInvalidConfig, c.InitialLength, c.InitialHeading, c.Width, c.Height)
	}
	if c.InitialLength >= b.Cells() {
		return fmt.Errorf("%w: snake of length %d leaves no free cell", ErrInvalidConfig, c.InitialLength)
	}
	return nil
}
