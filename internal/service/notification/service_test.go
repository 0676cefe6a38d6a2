package notification

import (
	"context"
	"errors"
	"sync"
	"testing"

	"gorm.io/driver/sqlite"
	"gorm.io/gorm"

	dao "cedar_roots_server/internal/dao/mysql"
	"cedar_roots_server/internal/dao/mysql/repository"
	"cedar_roots_server/internal/infrastructure/push"
	"cedar_roots_server/internal/model"
	"cedar_roots_server/internal/service/presence"
	"cedar_roots_server/pkg/enum/notification/notification_type_enum"
)

type recordingSender struct {
	mu         sync.Mutex
	failTokens map[string]bool
	sent       []string
	data       []map[string]string
}

func (f *recordingSender) Send(ctx context.Context, token string, payload push.Payload, data map[string]string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.sent = append(f.sent, token)
	f.data = append(f.data, data)
	if f.failTokens[token] {
		return errors.New("send failed")
	}
	return nil
}

type fakeSession struct {
	id string

	mu     sync.Mutex
	events []string
}

func (s *fakeSession) ID() string { return s.id }

func (s *fakeSession) Emit(event string, data any) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.events = append(s.events, event)
}

func newTestNotifier(t *testing.T, name string, sender push.Sender) (*Notifier, *repository.Repositories, *presence.Registry) {
	t.Helper()
	db, err := gorm.Open(sqlite.Open("file:"+name+"?mode=memory&cache=shared"), &gorm.Config{})
	if err != nil {
		t.Fatal(err)
	}
	if err := dao.AutoMigrate(db); err != nil {
		t.Fatal(err)
	}
	repos := repository.NewRepositories(db)
	registry := presence.NewRegistry()
	return NewNotifier(repos, registry, push.NewDispatcher(sender)), repos, registry
}

func TestNotifyPersistsEmitsAndPushes(t *testing.T) {
	sender := &recordingSender{}
	notifier, repos, registry := newTestNotifier(t, "notify_full", sender)

	sess := &fakeSession{id: "s1"}
	registry.Join("U1", sess)
	for _, tok := range []model.FirebaseToken{
		{UserUuid: "U1", DeviceId: "d1", FcmToken: "t1", Platform: "android"},
		{UserUuid: "U1", DeviceId: "d2", FcmToken: "t2", Platform: "ios"},
	} {
		tok := tok
		if err := repos.FirebaseToken.Upsert(&tok); err != nil {
			t.Fatal(err)
		}
	}

	err := notifier.Notify(context.Background(), "U1", notification_type_enum.Like,
		"Alice", "Alice liked your post", map[string]string{"postId": "P1"})
	if err != nil {
		t.Fatal(err)
	}

	records, err := repos.Notification.FindByUser("U1")
	if err != nil {
		t.Fatal(err)
	}
	if len(records) != 1 {
		t.Fatalf("expected 1 notification row, got %d", len(records))
	}
	if records[0].Type != notification_type_enum.Like || records[0].IsRead {
		t.Fatalf("unexpected notification row: %+v", records[0])
	}

	sess.mu.Lock()
	events := append([]string(nil), sess.events...)
	sess.mu.Unlock()
	if len(events) != 1 || events[0] != "receive_notification" {
		t.Fatalf("expected receive_notification event, got %v", events)
	}

	if len(sender.sent) != 2 {
		t.Fatalf("expected push to both devices, got %v", sender.sent)
	}
	for _, d := range sender.data {
		if d["notificationType"] != notification_type_enum.Like {
			t.Fatalf("expected notificationType in data, got %v", d)
		}
		if d["postId"] != "P1" {
			t.Fatalf("expected postId preserved, got %v", d)
		}
	}
}

// 推送不看在线状态：没有任何在线会话也照样落库和推送
func TestNotifyOfflineUserStillPushes(t *testing.T) {
	sender := &recordingSender{}
	notifier, repos, _ := newTestNotifier(t, "notify_offline", sender)

	if err := repos.FirebaseToken.Upsert(&model.FirebaseToken{
		UserUuid: "U1", DeviceId: "d1", FcmToken: "t1", Platform: "android",
	}); err != nil {
		t.Fatal(err)
	}

	err := notifier.Notify(context.Background(), "U1", notification_type_enum.Connection,
		"Bob", "Bob sent you a connection request", nil)
	if err != nil {
		t.Fatal(err)
	}

	records, _ := repos.Notification.FindByUser("U1")
	if len(records) != 1 {
		t.Fatalf("expected notification persisted, got %d rows", len(records))
	}
	if len(sender.sent) != 1 {
		t.Fatalf("expected push attempted, got %v", sender.sent)
	}
}

// 单设备推送失败不影响其他设备，也不影响 Notify 本身的成功
func TestNotifyPushFailureIsIsolated(t *testing.T) {
	sender := &recordingSender{failTokens: map[string]bool{"t1": true}}
	notifier, repos, _ := newTestNotifier(t, "notify_isolated", sender)

	for _, tok := range []model.FirebaseToken{
		{UserUuid: "U1", DeviceId: "d1", FcmToken: "t1", Platform: "android"},
		{UserUuid: "U1", DeviceId: "d2", FcmToken: "t2", Platform: "ios"},
	} {
		tok := tok
		if err := repos.FirebaseToken.Upsert(&tok); err != nil {
			t.Fatal(err)
		}
	}

	err := notifier.Notify(context.Background(), "U1", notification_type_enum.Comment,
		"Carol", "Carol commented on your post", nil)
	if err != nil {
		t.Fatal(err)
	}
	if len(sender.sent) != 2 {
		t.Fatalf("expected both tokens attempted despite failure, got %v", sender.sent)
	}
}

func TestPushToDevicesNoTokens(t *testing.T) {
	sender := &recordingSender{}
	notifier, _, _ := newTestNotifier(t, "notify_no_tokens", sender)

	notifier.PushToDevices(context.Background(), "U1", "title", "body", nil)
	if len(sender.sent) != 0 {
		t.Fatalf("expected no pushes, got %v", sender.sent)
	}
}
