package request

// MessageReceivedRequest message_received 事件载荷
// 接收方确认单条消息已送达
type MessageReceivedRequest struct {
	MessageId  int64  `json:"messageId"`
	SenderId   string `json:"senderId"`
	ReceiverId string `json:"receiverId"`
}
