package game

import "fmt"

// State 游戏运行状态
type State int

const (
	Ready State = iota
	Running
	Paused
	GameOver
)

func (s State) String() string {
	switch s {
	case Ready:
		return "ready"
	case Running:
		return "running"
	case Paused:
		return "paused"
	case GameOver:
		return "gameover"
	default:
		return fmt.Sprintf("State(%d)", int(s))
	}
}

func (s State) MarshalText() ([]byte, error) {
	return []byte(s.String()), nil
}

func (s *State) UnmarshalText(b []byte) error {
	for _, v := range []State{Ready, Running, Paused, GameOver} {
		if v.String() == string(b) {
			*s = v
			return nil
		}
	}
	return fmt.Errorf("unknown state %q", b)
}

// EndReason 导致进入 GameOver 的原因
type EndReason int

const (
	EndNone EndReason = iota
	EndWall
	EndSelf
	// EndBoardFull 蛇填满棋盘，视同游戏结束，不单独设胜利状态
	EndBoardFull
)

func (r EndReason) String() string {
	switch r {
	case EndNone:
		return "none"
	case EndWall:
		return "wall"
	case EndSelf:
		return "self"
	case EndBoardFull:
		return "board_full"
	default:
		return fmt.Sprintf("EndReason(%d)", int(r))
	}
}

func (r EndReason) MarshalText() ([]byte, error) {
	return []byte(r.String()), nil
}

func (r *EndReason) UnmarshalText(b []byte) error {
	for _, v := range []EndReason{EndNone, EndWall, EndSelf, EndBoardFull} {
		if v.String() == string(b) {
			*r = v
			return nil
		}
	}
	return fmt.Errorf("unknown end reason %q", b)
}
