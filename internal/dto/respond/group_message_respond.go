package respond

import (
	"time"

	"cedar_roots_server/internal/model"
)

// GroupMessageRespond 群消息下行结构
type GroupMessageRespond struct {
	MessageId int64  `json:"messageId"`
	GroupId   string `json:"groupId"`
	SenderId  string `json:"senderId"`
	Content   string `json:"content"`
	SentAt    string `json:"sentAt"`
}

func NewGroupMessageRespond(m *model.GroupMessage) GroupMessageRespond {
	return GroupMessageRespond{
		MessageId: m.Uuid,
		GroupId:   m.GroupUuid,
		SenderId:  m.SenderId,
		Content:   m.Content,
		SentAt:    m.SentAt.Format(time.RFC3339),
	}
}
