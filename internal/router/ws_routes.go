package router

import (
	"github.com/gin-gonic/gin"
)

// RegisterWebSocketRoutes 注册 WebSocket 路由
// 请求示例: ws://host:port/ws
func (rt *Router) RegisterWebSocketRoutes(engine *gin.Engine) {
	engine.GET("/ws", rt.handlers.Ws.WsConnectHandler)
}
