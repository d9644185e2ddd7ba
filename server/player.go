package server

// PlayerID 表示玩家唯一标识
type PlayerID string

// Sink 接收已编码的出站消息；实现需保证 Enqueue 不阻塞会话协程
type Sink interface {
	Enqueue(b []byte)
	Close()
}

// Player 连接到会话的客户端。同一会话的所有玩家共享一条蛇，
// 任何玩家的命令都会作用于引擎。
type Player struct {
	ID      PlayerID
	Conn    Sink
	lastSeq int64 // 最近一次接受的序列号，仅在会话协程中读写
}
