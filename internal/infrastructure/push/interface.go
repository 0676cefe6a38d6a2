// Package push 封装设备推送（FCM）
// Sender 抽象底层推送后端，Dispatcher 负责多设备扇出
package push

import "context"

// Payload 推送通知内容
type Payload struct {
	Title string
	Body  string
}

// Sender 单条推送发送接口
// data 的值必须已经是字符串，推送后端会拒绝非字符串值
type Sender interface {
	Send(ctx context.Context, token string, payload Payload, data map[string]string) error
}
