package handler

import (
	"github.com/gin-gonic/gin"

	"cedar_roots_server/internal/service/chat"
)

// WsHandler WebSocket 接入
type WsHandler struct {
	server *chat.ChatServer
}

func NewWsHandler(server *chat.ChatServer) *WsHandler {
	return &WsHandler{server: server}
}

// WsConnectHandler 建立 WebSocket 连接
// 连接建立后客户端需先发 join 事件声明身份
func (h *WsHandler) WsConnectHandler(c *gin.Context) {
	chat.ServeWs(c, h.server)
}
