package respond

// ConnectionRequestRespond connection_request_received 下行结构
type ConnectionRequestRespond struct {
	ConnectionId uint   `json:"connectionId"`
	SenderId     string `json:"senderId"`
	ReceiverId   string `json:"receiverId"`
	Status       string `json:"status"`
}

// ConnectionAcceptedRespond connection_accepted 下行结构
type ConnectionAcceptedRespond struct {
	ConnectionId uint   `json:"connectionId"`
	SenderId     string `json:"senderId"`
	ReceiverId   string `json:"receiverId"`
}
