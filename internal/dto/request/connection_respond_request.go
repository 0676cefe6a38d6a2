package request

// ConnectionRespondRequest connection_respond 事件载荷
// Accept 为 false 时直接删除请求记录，不产生通知
type ConnectionRespondRequest struct {
	ConnectionId uint `json:"connectionId"`
	Accept       bool `json:"accept"`
}
