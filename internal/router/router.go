// Package router 提供 HTTP 路由注册，按模块拆分各路由文件
package router

import (
	"github.com/gin-gonic/gin"

	"cedar_roots_server/internal/handler"
	"cedar_roots_server/internal/infrastructure/middleware"
)

// Router 路由管理器，持有 Handler 聚合
type Router struct {
	handlers *handler.Handlers
}

func NewRouter(handlers *handler.Handlers) *Router {
	return &Router{handlers: handlers}
}

// RegisterRoutes 注册所有路由
// WebSocket 入口不走 JWT（身份由 join 事件声明），REST 接口需要认证
func (rt *Router) RegisterRoutes(engine *gin.Engine) {
	rt.RegisterWebSocketRoutes(engine)

	api := engine.Group("/api", middleware.JWTAuth())
	rt.RegisterMessageRoutes(api)
	rt.RegisterNotificationRoutes(api)
}
