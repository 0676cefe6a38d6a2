package constants

import "time"

const (
	CHANNEL_SIZE = 100 // 通道大小

	// PUSH_SEND_TIMEOUT 单条推送发送超时
	// 推送后端挂起时不能无限占用协程
	PUSH_SEND_TIMEOUT = 5 * time.Second

	REDIS_TIMEOUT = 1 // redis 缓存过期时间（分钟）

	// DEFAULT_PAGE_LIMIT fetch_messages 默认分页大小
	DEFAULT_PAGE_LIMIT = 20

	// DEFAULT_SENDER_NAME 发送者信息查不到时推送标题的兜底名称
	DEFAULT_SENDER_NAME = "Cedar Roots"
)
