package router

import (
	"github.com/gin-gonic/gin"
)

// RegisterMessageRoutes 注册消息 REST 路由
func (rt *Router) RegisterMessageRoutes(rg *gin.RouterGroup) {
	message := rg.Group("/message")
	{
		message.GET("/conversations", rt.handlers.Message.GetConversations)
		message.GET("/history", rt.handlers.Message.GetMessages)
		message.POST("/send", rt.handlers.Message.SendMessage)
		message.POST("/mark_read", rt.handlers.Message.MarkAsRead)
	}
}
