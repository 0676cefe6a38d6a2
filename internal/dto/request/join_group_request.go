package request

// JoinGroupRequest join_group 事件载荷
type JoinGroupRequest struct {
	GroupId string `json:"groupId"`
}
