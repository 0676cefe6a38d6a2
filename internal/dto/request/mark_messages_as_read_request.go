package request

// MarkMessagesAsReadRequest mark_messages_as_read 事件载荷
// 由接收方（receiverId）发起："senderId 发给我的消息我已经看过了"
type MarkMessagesAsReadRequest struct {
	SenderId   string `json:"senderId"`
	ReceiverId string `json:"receiverId"`
}
