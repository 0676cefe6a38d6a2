package handler

import (
	"cedar_roots_server/internal/dao/mysql/repository"
	"cedar_roots_server/internal/service/chat"
	"cedar_roots_server/internal/service/message"
)

// Handlers 聚合全部 Handler，作为路由层的依赖注入入口
type Handlers struct {
	Ws           *WsHandler
	Message      *MessageHandler
	Notification *NotificationHandler
}

// NewHandlers 创建 Handler 聚合
func NewHandlers(chatServer *chat.ChatServer, repos *repository.Repositories) *Handlers {
	messageSvc := message.NewService(repos)
	return &Handlers{
		Ws:           NewWsHandler(chatServer),
		Message:      NewMessageHandler(messageSvc, chatServer),
		Notification: NewNotificationHandler(repos),
	}
}
