package request

// CreateMessageRequest REST 发消息接口入参，发送方取自 JWT
type CreateMessageRequest struct {
	ReceiverId string `json:"receiver_id" binding:"required"`
	Content    string `json:"content" binding:"required"`
	Type       string `json:"type"`
}
