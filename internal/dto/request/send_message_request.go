package request

// SendMessageRequest send_message 事件载荷
// LocalId 是客户端本地生成的临时 ID，在 message_saved 回执中原样带回
type SendMessageRequest struct {
	SenderId   string `json:"senderId"`
	ReceiverId string `json:"receiverId"`
	Content    string `json:"content"`
	Type       string `json:"type"`
	LocalId    string `json:"local_id"`
}
