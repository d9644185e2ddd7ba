package server

import "snakegame/game"

// 出站消息类型
const (
	MsgSnapshot     = "snapshot"
	MsgSnakeMoved   = "snakeMoved"
	MsgFoodSpawned  = "foodSpawned"
	MsgScoreChanged = "scoreChanged"
	MsgStateChanged = "gameStateChanged"
	MsgGameOver     = "gameOver"
	MsgError        = "error"
)

type SnakeMovedMessage struct {
	Type string          `json:"type"`
	Body []game.Position `json:"body"`
}

type FoodSpawnedMessage struct {
	Type     string        `json:"type"`
	Position game.Position `json:"position"`
}

type ScoreChangedMessage struct {
	Type  string `json:"type"`
	Score int    `json:"score"`
}

type StateChangedMessage struct {
	Type  string     `json:"type"`
	State game.State `json:"state"`
}

type GameOverMessage struct {
	Type       string         `json:"type"`
	FinalScore int            `json:"finalScore"`
	Reason     game.EndReason `json:"reason"`
}

type ErrorMessage struct {
	Type    string `json:"type"`
	Message string `json:"message"`
}

// SnapshotMessage 完整状态，加入会话时发送
type SnapshotMessage struct {
	Type      string          `json:"type"`
	Session   string          `json:"session"`
	Player    string          `json:"player,omitempty"`
	Width     int             `json:"width"`
	Height    int             `json:"height"`
	State     game.State      `json:"state"`
	Score     int             `json:"score"`
	Body      []game.Position `json:"body"`
	Food      game.Position   `json:"food"`
	Direction game.Direction  `json:"direction"`
}
