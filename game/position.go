// Package game 实现贪吃蛇的确定性 Tick 驱动引擎：蛇的移动、食物放置、
// 碰撞检测、计分以及 Ready/Running/Paused/GameOver 状态机。
//
// 引擎不是并发安全的：所有命令与 Tick 必须在同一个逻辑执行上下文中调用。
package game

import "fmt"

// Position 棋盘上的格子坐标，(0,0) 为左上角
type Position struct {
	X int `json:"x"`
	Y int `json:"y"`
}

// Unplaced 表示尚未放置（食物首次生成前、空蛇的蛇头）
var Unplaced = Position{X: -1, Y: -1}

// Add 返回按偏移量平移后的坐标
func (p Position) Add(o Position) Position {
	return Position{X: p.X + o.X, Y: p.Y + o.Y}
}

// Scale 返回各分量乘以 k 的坐标
func (p Position) Scale(k int) Position {
	return Position{X: p.X * k, Y: p.Y * k}
}

func (p Position) String() string {
	return fmt.Sprintf("(%d,%d)", p.X, p.Y)
}

// Bounds 棋盘尺寸，仅负责越界判断
type Bounds struct {
	Width  int
	Height int
}

// Contains 判断坐标是否位于 [0,Width)×[0,Height)
func (b Bounds) Contains(p Position) bool {
	return p.X >= 0 && p.X < b.Width && p.Y >= 0 && p.Y < b.Height
}

// Center 棋盘中心（整数除法）
func (b Bounds) Center() Position {
	return Position{X: b.Width / 2, Y: b.Height / 2}
}

// Cells 棋盘格子总数
func (b Bounds) Cells() int {
	return b.Width * b.Height
}
