package request

// FetchMessagesRequest fetch_messages 事件载荷
// Page/Limit 缺省时由服务端取默认值
type FetchMessagesRequest struct {
	SenderId   string `json:"senderId"`
	ReceiverId string `json:"receiverId"`
	Page       int    `json:"page"`
	Limit      int    `json:"limit"`
}
