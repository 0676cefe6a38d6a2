package chat

import (
	"context"
	"errors"
	"io"
	"strconv"
	"sync"

	"go.uber.org/zap"

	myconfig "cedar_roots_server/internal/config"
)

// KafkaBroker 分布式模式的事件代理
// 事件先写入 Kafka 主题，由消费协程读出后交给 deliver 处理，
// 多实例部署时各实例消费同一 GroupID
type KafkaBroker struct {
	client    *KafkaClient
	deliver   deliverFunc
	cancel    context.CancelFunc
	closeOnce sync.Once
	wg        sync.WaitGroup
}

func NewKafkaBroker(client *KafkaClient, deliver deliverFunc) *KafkaBroker {
	return &KafkaBroker{
		client:  client,
		deliver: deliver,
	}
}

// Publish 写入 Kafka 主题，分区号作为消息 key
func (b *KafkaBroker) Publish(ctx context.Context, msg []byte) error {
	key := []byte(strconv.Itoa(myconfig.GetConfig().KafkaConfig.Partition))
	return b.client.SendMessage(ctx, key, msg)
}

// Start 启动消费循环
func (b *KafkaBroker) Start() {
	ctx, cancel := context.WithCancel(context.Background())
	b.cancel = cancel
	b.wg.Add(1)
	go func() {
		defer b.wg.Done()
		for {
			kafkaMessage, err := b.client.Consumer.ReadMessage(ctx)
			if err != nil {
				if errors.Is(err, context.Canceled) || errors.Is(err, io.EOF) {
					return
				}
				zap.L().Error("kafka 消费失败", zap.Error(err))
				continue
			}
			b.deliver(kafkaMessage.Value)
		}
	}()
}

// Close 停止消费并关闭底层连接
func (b *KafkaBroker) Close() {
	b.closeOnce.Do(func() {
		if b.cancel != nil {
			b.cancel()
		}
		b.wg.Wait()
		b.client.KafkaClose()
	})
}
