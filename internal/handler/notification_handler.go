package handler

import (
	"github.com/gin-gonic/gin"

	"cedar_roots_server/internal/dao/mysql/repository"
	"cedar_roots_server/internal/dto/respond"
	"cedar_roots_server/internal/infrastructure/middleware"
)

// NotificationHandler 通知 REST 接口
type NotificationHandler struct {
	repos *repository.Repositories
}

func NewNotificationHandler(repos *repository.Repositories) *NotificationHandler {
	return &NotificationHandler{repos: repos}
}

// GetNotifications 拉取通知列表
// GET /notification/list
func (h *NotificationHandler) GetNotifications(c *gin.Context) {
	userId := c.GetString(middleware.CtxUserIDKey)
	list, err := h.repos.Notification.FindByUser(userId)
	if err != nil {
		HandleError(c, err)
		return
	}
	HandleSuccess(c, respond.NewNotificationRespondList(list))
}

// MarkAllRead 全部置为已读
// POST /notification/read_all
func (h *NotificationHandler) MarkAllRead(c *gin.Context) {
	userId := c.GetString(middleware.CtxUserIDKey)
	rows, err := h.repos.Notification.MarkAllRead(userId)
	if err != nil {
		HandleError(c, err)
		return
	}
	HandleSuccess(c, gin.H{"updated": rows})
}
