package server

import (
	"encoding/json"
	"net/http"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/gorilla/websocket"
)

const (
	writeWait  = 5 * time.Second
	pongWait   = 60 * time.Second
	pingPeriod = pongWait * 9 / 10
	sendBuffer = 64
)

// ClientConn 负责发送（写）数据到客户端的轻量包装
type ClientConn struct {
	ws        *websocket.Conn
	send      chan []byte
	closeOnce sync.Once
}

func NewClientConn(ws *websocket.Conn) *ClientConn {
	return &ClientConn{
		ws:   ws,
		send: make(chan []byte, sendBuffer),
	}
}

// Enqueue 将要发送的消息压入队列（非阻塞，满则丢弃）。
// 仅由会话协程调用，与 Close 不会并发。
func (c *ClientConn) Enqueue(b []byte) {
	if c.send == nil {
		return
	}
	select {
	case c.send <- b:
	default:
		// 为了实时性，丢弃消息（防止阻塞 Tick）
	}
}

// Close 关闭发送队列，写协程随后关闭底层连接
func (c *ClientConn) Close() {
	c.closeOnce.Do(func() {
		close(c.send)
		c.send = nil
	})
}

// writePump 独立协程，负责从 send 队列写出到 WS，并定期 ping
func (c *ClientConn) writePump(send <-chan []byte) {
	ticker := time.NewTicker(pingPeriod)
	defer func() {
		ticker.Stop()
		_ = c.ws.Close()
	}()
	for {
		select {
		case msg, ok := <-send:
			c.ws.SetWriteDeadline(time.Now().Add(writeWait))
			if !ok {
				_ = c.ws.WriteMessage(websocket.CloseMessage, websocket.FormatCloseMessage(websocket.CloseNormalClosure, ""))
				return
			}
			if err := c.ws.WriteMessage(websocket.TextMessage, msg); err != nil {
				return
			}
		case <-ticker.C:
			c.ws.SetWriteDeadline(time.Now().Add(writeWait))
			if err := c.ws.WriteMessage(websocket.PingMessage, nil); err != nil {
				return
			}
		}
	}
}

// readPump 读取客户端命令，转换为 Input 注入会话
func (c *ClientConn) readPump(s *Session, playerID PlayerID) {
	defer c.ws.Close()
	// 读泵退出时，通知会话在其协程中移除该玩家
	defer s.RequestLeave(playerID, c)
	c.ws.SetReadLimit(1 << 16)
	c.ws.SetReadDeadline(time.Now().Add(pongWait))
	c.ws.SetPongHandler(func(string) error { c.ws.SetReadDeadline(time.Now().Add(pongWait)); return nil })

	for {
		_, payload, err := c.ws.ReadMessage()
		if err != nil {
			if websocket.IsUnexpectedCloseError(err, websocket.CloseGoingAway, websocket.CloseNormalClosure) {
				s.log.Debugf("read %s: %v", playerID, err)
			}
			return
		}
		var im InputMessage
		if err := json.Unmarshal(payload, &im); err != nil {
			s.log.Debugf("bad payload from %s: %v", playerID, err)
			continue
		}
		in, err := ParseInput(playerID, im)
		if err != nil {
			s.log.Debugf("bad input from %s: %v", playerID, err)
			continue
		}
		s.OnInput(in)
	}
}

var upgrader = websocket.Upgrader{
	ReadBufferSize:  1024,
	WriteBufferSize: 1024,
	CheckOrigin: func(r *http.Request) bool {
		// 本地会话：允许所有来源
		return true
	},
}

// HandleWS WebSocket 接入：?session=default&player=alice，player 缺省时生成 UUID
func (m *SessionManager) HandleWS(w http.ResponseWriter, r *http.Request) {
	sessionID := r.URL.Query().Get("session")
	if sessionID == "" {
		sessionID = DefaultSessionID
	}
	playerID := r.URL.Query().Get("player")
	if playerID == "" {
		playerID = uuid.NewString()
	}

	ws, err := upgrader.Upgrade(w, r, nil)
	if err != nil {
		Log.Warnf("upgrade error: %v", err)
		return
	}

	s := m.GetOrCreateSession(sessionID)
	client := NewClientConn(ws)
	go client.writePump(client.send)

	if !s.Join(&Player{ID: PlayerID(playerID), Conn: client}) {
		Log.Warnf("join rejected: session=%s player=%s", sessionID, playerID)
		client.Close()
		return
	}
	go client.readPump(s, PlayerID(playerID))
}
