package router

import (
	"github.com/gin-gonic/gin"
)

// RegisterNotificationRoutes 注册通知 REST 路由
func (rt *Router) RegisterNotificationRoutes(rg *gin.RouterGroup) {
	notification := rg.Group("/notification")
	{
		notification.GET("/list", rt.handlers.Notification.GetNotifications)
		notification.POST("/read_all", rt.handlers.Notification.MarkAllRead)
	}
}
