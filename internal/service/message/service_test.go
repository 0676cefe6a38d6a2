package message

import (
	"context"
	"testing"
	"time"

	"gorm.io/driver/sqlite"
	"gorm.io/gorm"

	dao "cedar_roots_server/internal/dao/mysql"
	"cedar_roots_server/internal/dao/mysql/repository"
	"cedar_roots_server/internal/dto/request"
	"cedar_roots_server/internal/model"
	"cedar_roots_server/pkg/enum/message/delivery_state_enum"
	"cedar_roots_server/pkg/errorx"
)

// newTestService 基于内存 sqlite 构建服务，name 需每个测试唯一
func newTestService(t *testing.T, name string) (*Service, *repository.Repositories) {
	t.Helper()
	db, err := gorm.Open(sqlite.Open("file:"+name+"?mode=memory&cache=shared"), &gorm.Config{})
	if err != nil {
		t.Fatal(err)
	}
	if err := dao.AutoMigrate(db); err != nil {
		t.Fatal(err)
	}
	repos := repository.NewRepositories(db)
	return NewService(repos), repos
}

func mustCreateMessage(t *testing.T, repos *repository.Repositories, uuid int64, sender, receiver, status string, sentAt time.Time) {
	t.Helper()
	err := repos.Message.Create(&model.Message{
		Uuid:       uuid,
		SenderId:   sender,
		ReceiverId: receiver,
		Content:    "hello",
		Type:       "text",
		SentAt:     sentAt,
		ReadStatus: status,
	})
	if err != nil {
		t.Fatal(err)
	}
}

func TestSaveDirectMessage(t *testing.T) {
	svc, repos := newTestService(t, "save_direct")

	msg, err := svc.SaveDirectMessage(&request.SendMessageRequest{
		SenderId:   "U1",
		ReceiverId: "U2",
		Content:    "hi",
	})
	if err != nil {
		t.Fatal(err)
	}
	if msg.Uuid == 0 {
		t.Fatal("expected generated message id")
	}
	if msg.ReadStatus != delivery_state_enum.Sent {
		t.Fatalf("expected initial state sent, got %s", msg.ReadStatus)
	}
	if msg.Type != "text" {
		t.Fatalf("expected default type text, got %s", msg.Type)
	}

	stored, err := repos.Message.FindByUuid(msg.Uuid)
	if err != nil {
		t.Fatal(err)
	}
	if stored.Content != "hi" {
		t.Fatalf("unexpected content %q", stored.Content)
	}
}

func TestSaveDirectMessageValidation(t *testing.T) {
	svc, _ := newTestService(t, "save_direct_validation")

	_, err := svc.SaveDirectMessage(&request.SendMessageRequest{SenderId: "U1", ReceiverId: "U2"})
	if err == nil {
		t.Fatal("expected error for empty content")
	}
	if errorx.GetCode(err) != errorx.CodeInvalidParam {
		t.Fatalf("expected invalid param code, got %d", errorx.GetCode(err))
	}

	_, err = svc.SaveDirectMessage(&request.SendMessageRequest{SenderId: "U1", Content: "hi"})
	if errorx.GetCode(err) != errorx.CodeInvalidParam {
		t.Fatal("expected invalid param for missing receiver")
	}
}

func TestRecordDelivered(t *testing.T) {
	svc, repos := newTestService(t, "record_delivered")
	mustCreateMessage(t, repos, 100, "U1", "U2", delivery_state_enum.Sent, time.Now())

	// 三元组不匹配：无声 no-op
	updated, err := svc.RecordDelivered(100, "U1", "U3")
	if err != nil {
		t.Fatal(err)
	}
	if updated {
		t.Fatal("mismatched triple must not update")
	}

	updated, err = svc.RecordDelivered(100, "U1", "U2")
	if err != nil {
		t.Fatal(err)
	}
	if !updated {
		t.Fatal("expected transition sent -> delivered")
	}

	// 重复确认幂等
	updated, err = svc.RecordDelivered(100, "U1", "U2")
	if err != nil {
		t.Fatal(err)
	}
	if updated {
		t.Fatal("duplicate ack must be a no-op")
	}

	stored, err := repos.Message.FindByUuid(100)
	if err != nil {
		t.Fatal(err)
	}
	if stored.ReadStatus != delivery_state_enum.Delivered {
		t.Fatalf("expected delivered, got %s", stored.ReadStatus)
	}
}

func TestRecordDeliveredDoesNotDowngradeSeen(t *testing.T) {
	svc, repos := newTestService(t, "no_downgrade")
	mustCreateMessage(t, repos, 200, "U1", "U2", delivery_state_enum.Seen, time.Now())

	updated, err := svc.RecordDelivered(200, "U1", "U2")
	if err != nil {
		t.Fatal(err)
	}
	if updated {
		t.Fatal("seen message must not go back to delivered")
	}

	stored, _ := repos.Message.FindByUuid(200)
	if stored.ReadStatus != delivery_state_enum.Seen {
		t.Fatalf("expected seen to stay, got %s", stored.ReadStatus)
	}
}

func TestMarkSeenBatch(t *testing.T) {
	svc, repos := newTestService(t, "mark_seen")
	now := time.Now()
	mustCreateMessage(t, repos, 301, "U1", "U2", delivery_state_enum.Sent, now)
	mustCreateMessage(t, repos, 302, "U1", "U2", delivery_state_enum.Delivered, now.Add(time.Second))
	mustCreateMessage(t, repos, 303, "U1", "U2", delivery_state_enum.Seen, now.Add(2*time.Second))
	// 反方向的消息不受影响
	mustCreateMessage(t, repos, 304, "U2", "U1", delivery_state_enum.Sent, now.Add(3*time.Second))

	ids, err := svc.MarkSeen("U1", "U2")
	if err != nil {
		t.Fatal(err)
	}
	if len(ids) != 2 {
		t.Fatalf("expected 2 affected ids, got %v", ids)
	}
	got := map[int64]bool{}
	for _, id := range ids {
		got[id] = true
	}
	if !got[301] || !got[302] {
		t.Fatalf("expected ids 301 and 302, got %v", ids)
	}

	for _, id := range []int64{301, 302, 303} {
		stored, _ := repos.Message.FindByUuid(id)
		if stored.ReadStatus != delivery_state_enum.Seen {
			t.Fatalf("message %d expected seen, got %s", id, stored.ReadStatus)
		}
	}
	reverse, _ := repos.Message.FindByUuid(304)
	if reverse.ReadStatus != delivery_state_enum.Sent {
		t.Fatal("reverse-direction message must be untouched")
	}

	// 再跑一遍应为空
	ids, err = svc.MarkSeen("U1", "U2")
	if err != nil {
		t.Fatal(err)
	}
	if len(ids) != 0 {
		t.Fatalf("expected empty second batch, got %v", ids)
	}
}

func TestFetchMessagePageIncludesAllUnread(t *testing.T) {
	svc, repos := newTestService(t, "fetch_page")
	base := time.Now().Add(-time.Hour)

	// 最老的一条未读，后面 5 条已读
	mustCreateMessage(t, repos, 400, "U2", "U1", delivery_state_enum.Sent, base)
	for i := int64(1); i <= 5; i++ {
		mustCreateMessage(t, repos, 400+i, "U2", "U1", delivery_state_enum.Seen, base.Add(time.Duration(i)*time.Minute))
	}

	// U1 拉第一页，每页 3 条：未读的 400 必须出现，即使分页装不下它
	list, err := svc.FetchMessagePage("U1", "U2", 1, 3)
	if err != nil {
		t.Fatal(err)
	}
	if len(list) != 4 {
		t.Fatalf("expected 3 paged + 1 unread = 4, got %d", len(list))
	}
	if list[0].MessageId != 400 {
		t.Fatalf("expected oldest unread first, got %d", list[0].MessageId)
	}
	for i := 1; i < len(list); i++ {
		if list[i-1].SentAt > list[i].SentAt {
			t.Fatal("expected ascending sent time")
		}
	}
}

func TestFetchMessagePageDeduplicates(t *testing.T) {
	svc, repos := newTestService(t, "fetch_dedupe")
	now := time.Now()
	// 未读且落在请求页里，不能出现两次
	mustCreateMessage(t, repos, 500, "U2", "U1", delivery_state_enum.Sent, now)

	list, err := svc.FetchMessagePage("U1", "U2", 1, 10)
	if err != nil {
		t.Fatal(err)
	}
	if len(list) != 1 {
		t.Fatalf("expected deduplicated single message, got %d", len(list))
	}
}

func TestMarkGroupMessageReadIdempotent(t *testing.T) {
	svc, repos := newTestService(t, "group_read")

	if err := svc.MarkGroupMessageRead(600, "U1"); err != nil {
		t.Fatal(err)
	}
	if err := svc.MarkGroupMessageRead(600, "U1"); err != nil {
		t.Fatal(err)
	}

	statuses, err := repos.GroupMessageStatus.FindByUserAndMessageUuids("U1", []int64{600})
	if err != nil {
		t.Fatal(err)
	}
	if len(statuses) != 1 {
		t.Fatalf("expected single status row, got %d", len(statuses))
	}
	if !statuses[0].Read {
		t.Fatal("expected read flag set")
	}
}

func TestMarkGroupMessageReadUpdatesUnreadCount(t *testing.T) {
	svc, repos := newTestService(t, "group_read_unread")

	if err := repos.Group.Create(&model.GroupInfo{Uuid: "G2", Name: "Book club", OwnerId: "U2"}); err != nil {
		t.Fatal(err)
	}
	for _, m := range []model.GroupMember{
		{GroupUuid: "G2", UserUuid: "U1"},
		{GroupUuid: "G2", UserUuid: "U2"},
	} {
		m := m
		if err := repos.GroupMember.Create(&m); err != nil {
			t.Fatal(err)
		}
	}
	if err := repos.GroupMessage.Create(&model.GroupMessage{
		Uuid: 650, GroupUuid: "G2", SenderId: "U2",
		Content: "chapter three", SentAt: time.Now(),
	}); err != nil {
		t.Fatal(err)
	}

	list, err := svc.BuildConversations(context.Background(), "U1")
	if err != nil {
		t.Fatal(err)
	}
	if len(list) != 1 || list[0].UnreadCount != 1 {
		t.Fatalf("expected 1 unread before read, got %+v", list)
	}

	if err := svc.MarkGroupMessageRead(650, "U1"); err != nil {
		t.Fatal(err)
	}

	// 已读后重新聚合，未读数立即归零
	list, err = svc.BuildConversations(context.Background(), "U1")
	if err != nil {
		t.Fatal(err)
	}
	if len(list) != 1 || list[0].UnreadCount != 0 {
		t.Fatalf("expected 0 unread after read, got %+v", list)
	}
}

func TestBuildConversations(t *testing.T) {
	svc, repos := newTestService(t, "conversations")
	now := time.Now()

	for _, u := range []model.UserInfo{
		{Uuid: "U1", Nickname: "Alice"},
		{Uuid: "U2", Nickname: "Bob"},
		{Uuid: "U3", Nickname: "Carol"},
	} {
		u := u
		if err := repos.User.Create(&u); err != nil {
			t.Fatal(err)
		}
	}

	// U1 <-> U2：最后一条来自 U2，未读
	mustCreateMessage(t, repos, 700, "U1", "U2", delivery_state_enum.Seen, now.Add(-2*time.Minute))
	mustCreateMessage(t, repos, 701, "U2", "U1", delivery_state_enum.Sent, now.Add(-time.Minute))

	// 群 G1：U1、U3 是成员，U3 发了两条，U1 读过一条
	if err := repos.Group.Create(&model.GroupInfo{Uuid: "G1", Name: "Hiking", OwnerId: "U3"}); err != nil {
		t.Fatal(err)
	}
	for _, m := range []model.GroupMember{
		{GroupUuid: "G1", UserUuid: "U1"},
		{GroupUuid: "G1", UserUuid: "U3"},
	} {
		m := m
		if err := repos.GroupMember.Create(&m); err != nil {
			t.Fatal(err)
		}
	}
	for i, uuid := range []int64{800, 801} {
		err := repos.GroupMessage.Create(&model.GroupMessage{
			Uuid:      uuid,
			GroupUuid: "G1",
			SenderId:  "U3",
			Content:   "trail update",
			SentAt:    now.Add(time.Duration(i) * time.Second),
		})
		if err != nil {
			t.Fatal(err)
		}
	}
	if err := svc.MarkGroupMessageRead(800, "U1"); err != nil {
		t.Fatal(err)
	}

	list, err := svc.BuildConversations(context.Background(), "U1")
	if err != nil {
		t.Fatal(err)
	}
	if len(list) != 2 {
		t.Fatalf("expected 2 conversations, got %d", len(list))
	}

	// 群消息更新，排第一
	if list[0].Type != "group" || list[0].Id != "G1" {
		t.Fatalf("expected group conversation first, got %+v", list[0])
	}
	if list[0].UnreadCount != 1 {
		t.Fatalf("expected 1 unread group message, got %d", list[0].UnreadCount)
	}
	if list[0].LastMessage == nil || list[0].LastMessage.MessageId != 801 {
		t.Fatalf("unexpected group last message: %+v", list[0].LastMessage)
	}

	direct := list[1]
	if direct.Type != "direct" || direct.Id != "U2" {
		t.Fatalf("expected direct conversation with U2, got %+v", direct)
	}
	if direct.Name != "Bob" {
		t.Fatalf("expected counterpart nickname, got %q", direct.Name)
	}
	if direct.UnreadCount != 1 {
		t.Fatalf("expected 1 unread direct message, got %d", direct.UnreadCount)
	}
	if direct.LastMessage == nil || direct.LastMessage.MessageId != 701 {
		t.Fatalf("unexpected direct last message: %+v", direct.LastMessage)
	}
}

func TestSenderDisplayNameFallback(t *testing.T) {
	svc, repos := newTestService(t, "display_name")
	if err := repos.User.Create(&model.UserInfo{Uuid: "U1", Nickname: "Alice"}); err != nil {
		t.Fatal(err)
	}

	if got := svc.SenderDisplayName("U1"); got != "Alice" {
		t.Fatalf("expected Alice, got %q", got)
	}
	if got := svc.SenderDisplayName("missing"); got != "Cedar Roots" {
		t.Fatalf("expected fallback name, got %q", got)
	}
}
