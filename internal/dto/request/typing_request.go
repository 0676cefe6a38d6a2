package request

// TypingRequest typing 事件载荷，转发给 ReceiverId 的全部在线会话
type TypingRequest struct {
	SenderId   string `json:"senderId"`
	ReceiverId string `json:"receiverId"`
}
