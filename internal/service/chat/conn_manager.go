package chat

import (
	"encoding/json"
	"net/http"
	"sync"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/gorilla/websocket"
	"go.uber.org/zap"

	"cedar_roots_server/pkg/constants"
)

var upgrader = websocket.Upgrader{
	ReadBufferSize:  2048,
	WriteBufferSize: 2048,
	CheckOrigin: func(r *http.Request) bool {
		return true
	},
}

// UserConn 一条 WebSocket 会话
// 读协程顺序分发入站事件，写协程消费 sendBack 下发出站事件；
// 会话 ID 是连接级的，一个用户可同时持有多条会话
type UserConn struct {
	conn      *websocket.Conn
	sessionId string
	server    *ChatServer
	sendBack  chan []byte

	// closeMtx 串行化 Emit 与 disconnect：closed 置位后 sendBack 才关闭，
	// 持有旧会话快照的并发扇出不会写已关闭的通道
	closeMtx sync.Mutex
	closed   bool
}

func newUserConn(conn *websocket.Conn, server *ChatServer) *UserConn {
	c := &UserConn{
		conn:      conn,
		sessionId: uuid.NewString(),
		server:    server,
		sendBack:  make(chan []byte, constants.CHANNEL_SIZE),
	}
	server.trackConn(c)
	return c
}

// ID 实现 presence.Session
func (c *UserConn) ID() string {
	return c.sessionId
}

// Emit 实现 presence.Session，向该会话下发一个事件
// 出站缓冲满时丢弃并记日志，慢客户端不反压其他会话
func (c *UserConn) Emit(event string, data any) {
	dataBytes, err := json.Marshal(data)
	if err != nil {
		zap.L().Error("出站事件序列化失败", zap.String("event", event), zap.Error(err))
		return
	}
	envBytes, err := json.Marshal(Envelope{Event: event, Data: dataBytes})
	if err != nil {
		zap.L().Error("出站信封序列化失败", zap.String("event", event), zap.Error(err))
		return
	}
	c.closeMtx.Lock()
	defer c.closeMtx.Unlock()
	if c.closed {
		zap.L().Debug("会话已关闭，事件被丢弃",
			zap.String("sessionId", c.sessionId),
			zap.String("event", event),
		)
		return
	}
	select {
	case c.sendBack <- envBytes:
	default:
		zap.L().Warn("出站缓冲已满，事件被丢弃",
			zap.String("sessionId", c.sessionId),
			zap.String("event", event),
		)
	}
}

// read 读协程：按到达顺序分发本会话的入站事件
// 连接出错即断开，无条件执行 presence 清理
func (c *UserConn) read() {
	defer c.disconnect()
	for {
		_, raw, err := c.conn.ReadMessage()
		if err != nil {
			if websocket.IsUnexpectedCloseError(err, websocket.CloseNormalClosure, websocket.CloseGoingAway) {
				zap.L().Warn("ws 连接异常断开", zap.String("sessionId", c.sessionId), zap.Error(err))
			}
			return
		}
		c.server.Router.Dispatch(c, raw)
	}
}

// write 写协程：消费 sendBack 并写入连接
func (c *UserConn) write() {
	for envBytes := range c.sendBack {
		if err := c.conn.WriteMessage(websocket.TextMessage, envBytes); err != nil {
			zap.L().Error("ws 写入失败", zap.String("sessionId", c.sessionId), zap.Error(err))
			return
		}
	}
}

// disconnect 断开清理：presence 摘除 + 关闭连接和下行通道
// 即使该会话还有在途事件也立即执行，不等待
func (c *UserConn) disconnect() {
	c.closeMtx.Lock()
	if c.closed {
		c.closeMtx.Unlock()
		return
	}
	c.closed = true
	close(c.sendBack)
	c.closeMtx.Unlock()

	c.server.Registry.Leave(c.sessionId)
	c.server.untrackConn(c.sessionId)
	if c.conn != nil {
		_ = c.conn.Close()
	}
}

// ServeWs 将 HTTP 请求升级为 WebSocket 会话并启动读写协程
func ServeWs(ginCtx *gin.Context, server *ChatServer) {
	conn, err := upgrader.Upgrade(ginCtx.Writer, ginCtx.Request, nil)
	if err != nil {
		zap.L().Error("ws 升级失败", zap.Error(err))
		return
	}
	client := newUserConn(conn, server)
	go client.read()
	go client.write()
	zap.L().Info("ws 连接建立", zap.String("sessionId", client.sessionId))
}
