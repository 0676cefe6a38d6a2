package respond

import (
	"time"

	"cedar_roots_server/internal/model"
)

// NotificationRespond receive_notification 下行结构及 REST 列表条目
type NotificationRespond struct {
	Id        uint   `json:"id"`
	Type      string `json:"type"`
	Message   string `json:"message"`
	IsRead    bool   `json:"isRead"`
	CreatedAt string `json:"createdAt"`
}

func NewNotificationRespond(n *model.Notification) NotificationRespond {
	return NotificationRespond{
		Id:        n.ID,
		Type:      n.Type,
		Message:   n.Message,
		IsRead:    n.IsRead,
		CreatedAt: n.CreatedAt.Format(time.RFC3339),
	}
}

func NewNotificationRespondList(list []model.Notification) []NotificationRespond {
	rsp := make([]NotificationRespond, 0, len(list))
	for i := range list {
		rsp = append(rsp, NewNotificationRespond(&list[i]))
	}
	return rsp
}
