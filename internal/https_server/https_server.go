// Package https_server 提供 HTTP 服务器的初始化
// 创建 Gin 引擎并配置日志、恢复、CORS 中间件和业务路由
package https_server

import (
	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"

	"cedar_roots_server/internal/config"
	"cedar_roots_server/internal/handler"
	"cedar_roots_server/internal/infrastructure/logger"
	"cedar_roots_server/internal/infrastructure/middleware"
	"cedar_roots_server/internal/router"
)

// Init 初始化 HTTP 服务器并返回 Gin 引擎
// 不用 gin.Default()，日志与 panic 恢复走 zap
func Init(handlers *handler.Handlers) *gin.Engine {
	engine := gin.New()

	engine.Use(logger.GinLogger())
	engine.Use(logger.GinRecovery(true))

	corsConfig := cors.DefaultConfig()
	corsConfig.AllowOrigins = []string{"*"}
	corsConfig.AllowMethods = []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"}
	corsConfig.AllowHeaders = []string{"Origin", "Content-Length", "Content-Type", "Authorization"}
	engine.Use(cors.New(corsConfig))

	// SSL 由反向代理终结时关闭 tlsRedirect
	mainConfig := config.GetConfig().MainConfig
	if mainConfig.TlsRedirect {
		engine.Use(middleware.TlsHandler(mainConfig.Host, mainConfig.Port))
	}

	rt := router.NewRouter(handlers)
	rt.RegisterRoutes(engine)

	return engine
}
