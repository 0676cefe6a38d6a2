// Package chat 实时消息接入层：WebSocket 会话、事件路由、
// 以及消息事件经由 Channel/Kafka 代理的持久化与扇出
package chat

import "context"

// EventBroker 消息事件代理接口
// send_message / send_group_message 两类写事件先进代理再消费，
// 支持两种实现：ChannelBroker（单机）、KafkaBroker（分布式）
type EventBroker interface {
	// Publish 发布原始事件信封到队列/通道
	Publish(ctx context.Context, msg []byte) error
	// Start 启动消费循环
	Start()
	// Close 关闭代理资源
	Close()
}

// deliverFunc 消费侧回调，收到一条事件信封时调用
type deliverFunc func(msg []byte)
