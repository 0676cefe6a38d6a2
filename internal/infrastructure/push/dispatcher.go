package push

import (
	"context"

	"cedar_roots_server/pkg/constants"

	"go.uber.org/zap"
)

// Dispatcher 多设备推送扇出
// 扇出语义是 best-effort：单个 token 失败不影响其余 token 的投递
type Dispatcher struct {
	sender Sender
}

// NewDispatcher 创建 Dispatcher
func NewDispatcher(sender Sender) *Dispatcher {
	return &Dispatcher{sender: sender}
}

// Result 单个 token 的发送结果
type Result struct {
	Token string
	Err   error
}

// FanOut 向一组设备 token 发送同一条通知
// 每条发送独立计超时，逐条收集错误；返回值仅用于日志和测试断言，
// 调用方不应据此让业务动作失败
func (d *Dispatcher) FanOut(ctx context.Context, tokens []string, payload Payload, data map[string]string) []Result {
	results := make([]Result, 0, len(tokens))
	for _, token := range tokens {
		sendCtx, cancel := context.WithTimeout(ctx, constants.PUSH_SEND_TIMEOUT)
		err := d.sender.Send(sendCtx, token, payload, data)
		cancel()
		if err != nil {
			zap.L().Error("push send failed",
				zap.String("token", token),
				zap.Error(err),
			)
		}
		results = append(results, Result{Token: token, Err: err})
	}
	return results
}
