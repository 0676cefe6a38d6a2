package request

// GroupMessageReadRequest group_message_read 事件载荷
type GroupMessageReadRequest struct {
	GroupMessageId int64  `json:"groupMessageId"`
	UserId         string `json:"userId"`
}
