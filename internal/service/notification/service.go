// Package notification 通知流程：落库、在线下发、多设备推送三步走
// 推送与在线状态无关，用户在线也照样收系统推送（原行为如此）
package notification

import (
	"context"

	"go.uber.org/zap"

	"cedar_roots_server/internal/dao/mysql/repository"
	"cedar_roots_server/internal/dto/respond"
	"cedar_roots_server/internal/infrastructure/push"
	"cedar_roots_server/internal/model"
	"cedar_roots_server/internal/service/presence"
)

type Notifier struct {
	repos      *repository.Repositories
	registry   *presence.Registry
	dispatcher *push.Dispatcher
}

func NewNotifier(repos *repository.Repositories, registry *presence.Registry, dispatcher *push.Dispatcher) *Notifier {
	return &Notifier{repos: repos, registry: registry, dispatcher: dispatcher}
}

// Notify 给用户发一条通知
// 1. 写 notification 表；2. 向其全部在线会话下发 receive_notification；
// 3. 向其全部设备推送。后两步 best-effort，不回滚第一步
func (n *Notifier) Notify(ctx context.Context, userId, notifType, title, body string, data map[string]string) error {
	record := &model.Notification{
		UserUuid: userId,
		Type:     notifType,
		Message:  body,
	}
	if err := n.repos.Notification.Create(record); err != nil {
		return err
	}

	n.registry.EmitToUser(userId, "receive_notification", respond.NewNotificationRespond(record))

	n.PushToDevices(ctx, userId, title, body, withType(data, notifType))
	return nil
}

// PushToDevices 只推送，不落库、不下发 socket 事件
// 单聊消息的离线推送走这里
func (n *Notifier) PushToDevices(ctx context.Context, userId, title, body string, data map[string]string) {
	tokens, err := n.repos.FirebaseToken.FindTokensByUser(userId)
	if err != nil {
		zap.L().Error("查询推送 token 失败", zap.String("userId", userId), zap.Error(err))
		return
	}
	if len(tokens) == 0 {
		return
	}
	n.dispatcher.FanOut(ctx, tokens, push.Payload{Title: title, Body: body}, data)
}

func withType(data map[string]string, notifType string) map[string]string {
	out := make(map[string]string, len(data)+1)
	for k, v := range data {
		out[k] = v
	}
	out["notificationType"] = notifType
	return out
}
