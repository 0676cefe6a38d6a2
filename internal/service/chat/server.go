package chat

import (
	"encoding/json"
	"sync"

	"go.uber.org/zap"

	"cedar_roots_server/internal/dao/mysql/repository"
	"cedar_roots_server/internal/infrastructure/push"
	"cedar_roots_server/internal/service/device"
	"cedar_roots_server/internal/service/message"
	"cedar_roots_server/internal/service/notification"
	"cedar_roots_server/internal/service/presence"
	"cedar_roots_server/internal/service/social"
)

// ChatServer 实时消息服务器聚合结构
// 持有在线注册表、事件路由、消息代理和各业务服务，
// 统一管理生命周期
type ChatServer struct {
	Registry *presence.Registry
	Router   *Router
	Broker   EventBroker

	messageSvc *message.Service
	deviceSvc  *device.Service
	notifier   *notification.Notifier
	socialSvc  *social.Service

	kafkaClient *KafkaClient
	mode        string

	// conns 本实例上的全部 ws 会话（含尚未 join 的），按会话 ID 索引
	// 回执要回给发起会话本身，presence 注册表只覆盖 join 过的会话
	connMtx sync.RWMutex
	conns   map[string]*UserConn
}

// ChatServerConfig 聊天服务器配置
type ChatServerConfig struct {
	// Mode "channel" 或 "kafka"
	Mode       string
	Repos      *repository.Repositories
	Dispatcher *push.Dispatcher
}

// NewChatServer 创建聊天服务器
// 根据 Mode 选择 ChannelBroker 或 KafkaBroker，Kafka 模式
// 需要在 Start 之前调用 InitKafka
func NewChatServer(cfg ChatServerConfig) *ChatServer {
	cs := &ChatServer{
		Registry: presence.NewRegistry(),
		Router:   NewRouter(),
		mode:     cfg.Mode,
		conns:    make(map[string]*UserConn),
	}
	cs.messageSvc = message.NewService(cfg.Repos)
	cs.deviceSvc = device.NewService(cfg.Repos)
	cs.notifier = notification.NewNotifier(cfg.Repos, cs.Registry, cfg.Dispatcher)
	cs.socialSvc = social.NewService(cfg.Repos, cs.notifier)

	if cfg.Mode == "kafka" {
		cs.kafkaClient = NewKafkaClient()
		cs.Broker = NewKafkaBroker(cs.kafkaClient, cs.consume)
	} else {
		cs.Broker = NewChannelBroker(cs.consume)
	}

	cs.registerHandlers()
	return cs
}

// InitKafka 初始化 Kafka 连接（仅 Kafka 模式需要调用）
func (cs *ChatServer) InitKafka() {
	if cs.kafkaClient != nil {
		cs.kafkaClient.KafkaInit()
	}
}

// Start 启动消息代理消费循环
func (cs *ChatServer) Start() {
	cs.Broker.Start()
}

// Close 关闭聊天服务器
func (cs *ChatServer) Close() {
	cs.Broker.Close()
}

func (cs *ChatServer) trackConn(c *UserConn) {
	cs.connMtx.Lock()
	defer cs.connMtx.Unlock()
	cs.conns[c.sessionId] = c
}

func (cs *ChatServer) untrackConn(sessionId string) {
	cs.connMtx.Lock()
	defer cs.connMtx.Unlock()
	delete(cs.conns, sessionId)
}

func (cs *ChatServer) sessionConn(sessionId string) *UserConn {
	cs.connMtx.RLock()
	defer cs.connMtx.RUnlock()
	return cs.conns[sessionId]
}

// emitToCaller 优先回给发起会话本身
// 发起会话不在本实例时（已断开，或 Kafka 模式下由别的实例持有）
// 退回按用户广播
func (cs *ChatServer) emitToCaller(originSessionId, userId, event string, data any) {
	if c := cs.sessionConn(originSessionId); c != nil {
		c.Emit(event, data)
		return
	}
	cs.Registry.EmitToUser(userId, event, data)
}

// consume 消费代理送来的事件信封
// 只有写消息类事件走代理，其余事件在会话读协程内直接处理
func (cs *ChatServer) consume(msg []byte) {
	var env Envelope
	if err := json.Unmarshal(msg, &env); err != nil {
		zap.L().Error("无法解析的代理消息", zap.Error(err))
		return
	}
	switch env.Event {
	case "send_message":
		cs.persistDirectMessage(env.Data, env.Origin)
	case "send_group_message":
		cs.persistGroupMessage(env.Data, env.Origin)
	default:
		zap.L().Warn("代理收到未知事件", zap.String("event", env.Event))
	}
}
