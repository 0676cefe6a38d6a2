package chat

import (
	"context"
	"sync"

	"go.uber.org/zap"

	"cedar_roots_server/pkg/constants"
	"cedar_roots_server/pkg/errorx"
)

// ChannelBroker 单机模式的事件代理
// 用带缓冲 channel 替代外部消息队列，部署上省去 Kafka 依赖
type ChannelBroker struct {
	transmit  chan []byte
	deliver   deliverFunc
	done      chan struct{}
	closeOnce sync.Once
	wg        sync.WaitGroup
}

func NewChannelBroker(deliver deliverFunc) *ChannelBroker {
	return &ChannelBroker{
		transmit: make(chan []byte, constants.CHANNEL_SIZE),
		deliver:  deliver,
		done:     make(chan struct{}),
	}
}

// Publish 投递事件到通道
// 通道满时不阻塞读协程，直接报服务繁忙让客户端稍后重试
func (b *ChannelBroker) Publish(ctx context.Context, msg []byte) error {
	select {
	case b.transmit <- msg:
		return nil
	case <-ctx.Done():
		return ctx.Err()
	default:
		zap.L().Warn("事件通道已满，消息被拒绝")
		return errorx.ErrServerBusy
	}
}

// Start 启动消费协程
func (b *ChannelBroker) Start() {
	b.wg.Add(1)
	go func() {
		defer b.wg.Done()
		for {
			select {
			case msg := <-b.transmit:
				b.deliver(msg)
			case <-b.done:
				// 退出前清空通道，尽量不丢已接收的消息
				for {
					select {
					case msg := <-b.transmit:
						b.deliver(msg)
					default:
						return
					}
				}
			}
		}
	}()
}

// Close 停止消费循环并等待在途消息处理完
func (b *ChannelBroker) Close() {
	b.closeOnce.Do(func() {
		close(b.done)
	})
	b.wg.Wait()
}
