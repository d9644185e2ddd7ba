package server

import (
	"fmt"
	"strings"

	"snakegame/game"
)

// CommandType 客户端可发出的命令
type CommandType string

const (
	CmdStart  CommandType = "start"
	CmdPause  CommandType = "pause"
	CmdResume CommandType = "resume"
	CmdReset  CommandType = "reset"
	CmdToggle CommandType = "toggle" // 运行中暂停，暂停中恢复
	CmdMove   CommandType = "move"
)

// Input 客户端输入（意图），投递到会话协程后才作用于引擎
type Input struct {
	PlayerID  PlayerID
	Type      CommandType
	Direction game.Direction // 仅 CmdMove 有效
	Seq       int64          // 客户端本地序列号，用于去重
}

// 入站输入的简单 JSON 结构（WebSocket 文本消息）
// 示例：{"type":"move","command":"up","seq":7}、{"type":"start"}
type InputMessage struct {
	Type    string `json:"type"`
	Command string `json:"command,omitempty"`
	Seq     int64  `json:"seq,omitempty"`
}

// ParseInput 校验并转换入站消息
func ParseInput(pid PlayerID, im InputMessage) (Input, error) {
	in := Input{PlayerID: pid, Type: CommandType(strings.ToLower(strings.TrimSpace(im.Type))), Seq: im.Seq}
	switch in.Type {
	case CmdStart, CmdPause, CmdResume, CmdReset, CmdToggle:
		return in, nil
	case CmdMove:
		dir, err := game.ParseDirection(im.Command)
		if err != nil {
			return Input{}, fmt.Errorf("move: %w", err)
		}
		in.Direction = dir
		return in, nil
	default:
		return Input{}, fmt.Errorf("unknown command type %q", im.Type)
	}
}
