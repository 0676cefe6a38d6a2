package request

// ConnectionRequestRequest connection_request 事件载荷
type ConnectionRequestRequest struct {
	SenderId   string `json:"senderId"`
	ReceiverId string `json:"receiverId"`
}
