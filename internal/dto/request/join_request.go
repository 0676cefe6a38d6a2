package request

// JoinRequest join 事件载荷
// 连接建立后客户端声明自己的用户身份
type JoinRequest struct {
	UserId string `json:"userId"`
}
