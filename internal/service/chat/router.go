package chat

import (
	"encoding/json"

	"go.uber.org/zap"

	"cedar_roots_server/internal/dto/respond"
)

// Envelope 双向统一的事件信封：事件名 + JSON 载荷
// Origin 只在代理内部流转，标记发起会话，回执按它定向；
// 客户端收发的信封里不出现
type Envelope struct {
	Event  string          `json:"event"`
	Data   json.RawMessage `json:"data"`
	Origin string          `json:"origin,omitempty"`
}

// HandlerFunc 单个入站事件的处理函数
type HandlerFunc func(c *UserConn, data json.RawMessage)

// Router 入站事件路由
// 一个事件名对应一个处理函数；同一会话的事件在其读协程里
// 按到达顺序依次处理，不同会话互不阻塞
type Router struct {
	handlers map[string]HandlerFunc
}

func NewRouter() *Router {
	return &Router{handlers: make(map[string]HandlerFunc)}
}

// Register 注册事件处理函数，重复注册后者覆盖前者
func (r *Router) Register(event string, h HandlerFunc) {
	r.handlers[event] = h
}

// Dispatch 解析信封并调用对应处理函数
// 单个事件的 panic 只打回发起会话的 _error，不影响分发循环
func (r *Router) Dispatch(c *UserConn, raw []byte) {
	var env Envelope
	if err := json.Unmarshal(raw, &env); err != nil || env.Event == "" {
		zap.L().Warn("无法解析的入站事件", zap.ByteString("raw", raw))
		c.Emit("_error", respond.ErrorRespond{Message: "invalid message format"})
		return
	}

	h, ok := r.handlers[env.Event]
	if !ok {
		zap.L().Warn("未注册的入站事件", zap.String("event", env.Event))
		return
	}

	defer func() {
		if p := recover(); p != nil {
			zap.L().Error("事件处理 panic",
				zap.String("event", env.Event),
				zap.Any("panic", p),
			)
			c.Emit("_error", respond.ErrorRespond{Event: env.Event, Message: "internal error"})
		}
	}()
	h(c, env.Data)
}
