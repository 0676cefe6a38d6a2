package push

import (
	"context"

	"cedar_roots_server/pkg/errorx"

	firebase "firebase.google.com/go/v4"
	"firebase.google.com/go/v4/messaging"
	"google.golang.org/api/option"
)

// fcmSender 基于 Firebase Cloud Messaging 的 Sender 实现
type fcmSender struct {
	client *messaging.Client
}

// NewFCMSender 创建 FCM Sender
// credentialsFile 为 Firebase 服务账号凭证文件路径
func NewFCMSender(ctx context.Context, credentialsFile string) (Sender, error) {
	app, err := firebase.NewApp(ctx, nil, option.WithCredentialsFile(credentialsFile))
	if err != nil {
		return nil, errorx.Wrap(err, errorx.CodePushError, "初始化 Firebase App 失败")
	}
	client, err := app.Messaging(ctx)
	if err != nil {
		return nil, errorx.Wrap(err, errorx.CodePushError, "初始化 FCM Messaging 客户端失败")
	}
	return &fcmSender{client: client}, nil
}

// Send 发送单条推送
func (s *fcmSender) Send(ctx context.Context, token string, payload Payload, data map[string]string) error {
	msg := &messaging.Message{
		Token: token,
		Notification: &messaging.Notification{
			Title: payload.Title,
			Body:  payload.Body,
		},
		Data: data,
	}
	if _, err := s.client.Send(ctx, msg); err != nil {
		return errorx.Wrapf(err, errorx.CodePushError, "FCM send token=%s", token)
	}
	return nil
}

// noopSender 推送关闭时的降级实现（本地开发环境）
type noopSender struct{}

// NewNoopSender 创建 no-op Sender
func NewNoopSender() Sender {
	return noopSender{}
}

func (noopSender) Send(ctx context.Context, token string, payload Payload, data map[string]string) error {
	return nil
}
