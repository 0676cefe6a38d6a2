package request

// SendGroupMessageRequest send_group_message 事件载荷
type SendGroupMessageRequest struct {
	GroupId  string `json:"groupId"`
	SenderId string `json:"senderId"`
	Content  string `json:"content"`
}
