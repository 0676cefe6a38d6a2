// Package notification_type_enum 定义通知类型
package notification_type_enum

const (
	Message    = "message"    // 私聊消息
	Comment    = "comment"    // 帖子评论
	Like       = "like"       // 帖子点赞
	Connection = "connection" // 好友连接请求/响应
)
