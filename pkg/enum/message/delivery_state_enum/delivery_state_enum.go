// Package delivery_state_enum 定义私聊消息投递状态
// 状态单向推进：sent -> delivered -> seen，不允许回退
package delivery_state_enum

const (
	Sent      = "sent"      // 已落库，接收方尚未确认
	Delivered = "delivered" // 接收方设备已收到
	Seen      = "seen"      // 接收方已读（终态）
)
