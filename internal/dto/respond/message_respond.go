package respond

import (
	"time"

	"cedar_roots_server/internal/model"
)

// MessageRespond 单聊消息下行结构，receive_message / fetched_messages 共用
type MessageRespond struct {
	MessageId  int64  `json:"messageId"`
	SenderId   string `json:"senderId"`
	ReceiverId string `json:"receiverId"`
	Content    string `json:"content"`
	Type       string `json:"type"`
	SentAt     string `json:"sentAt"`
	ReadStatus string `json:"readStatus"`
}

func NewMessageRespond(m *model.Message) MessageRespond {
	return MessageRespond{
		MessageId:  m.Uuid,
		SenderId:   m.SenderId,
		ReceiverId: m.ReceiverId,
		Content:    m.Content,
		Type:       m.Type,
		SentAt:     m.SentAt.Format(time.RFC3339),
		ReadStatus: m.ReadStatus,
	}
}

func NewMessageRespondList(msgs []model.Message) []MessageRespond {
	rsp := make([]MessageRespond, 0, len(msgs))
	for i := range msgs {
		rsp = append(rsp, NewMessageRespond(&msgs[i]))
	}
	return rsp
}

// MessageSavedRespond 发送方持久化回执，LocalId 原样回传供客户端对账
type MessageSavedRespond struct {
	MessageId int64  `json:"messageId"`
	LocalId   string `json:"local_id"`
	Status    string `json:"status"`
}

// MessageDeliveredRespond 回给发送方：某条消息已送达
type MessageDeliveredRespond struct {
	MessageId int64 `json:"messageId"`
}

// MessagesSeenRespond 回给发送方：一批消息已读
type MessagesSeenRespond struct {
	SenderId   string  `json:"senderId"`
	ReceiverId string  `json:"receiverId"`
	MessageIds []int64 `json:"messageIds"`
}

// UserTypingRespond 输入状态转发
type UserTypingRespond struct {
	SenderId string `json:"senderId"`
}
