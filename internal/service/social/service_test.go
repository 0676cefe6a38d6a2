package social

import (
	"context"
	"testing"

	"gorm.io/driver/sqlite"
	"gorm.io/gorm"

	dao "cedar_roots_server/internal/dao/mysql"
	"cedar_roots_server/internal/dao/mysql/repository"
	"cedar_roots_server/internal/dto/request"
	"cedar_roots_server/internal/infrastructure/push"
	"cedar_roots_server/internal/model"
	"cedar_roots_server/internal/service/notification"
	"cedar_roots_server/internal/service/presence"
	"cedar_roots_server/pkg/enum/notification/notification_type_enum"
	"cedar_roots_server/pkg/errorx"
)

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
	notifier := notification.NewNotifier(repos, presence.NewRegistry(), push.NewDispatcher(push.NewNoopSender()))
	return NewService(repos, notifier), repos
}

func seedPost(t *testing.T, repos *repository.Repositories) {
	t.Helper()
	for _, u := range []model.UserInfo{
		{Uuid: "U1", Nickname: "Alice"},
		{Uuid: "U2", Nickname: "Bob"},
	} {
		u := u
		if err := repos.User.Create(&u); err != nil {
			t.Fatal(err)
		}
	}
	if err := repos.Post.Create(&model.Post{Uuid: "P1", UserUuid: "U1", Content: "first post"}); err != nil {
		t.Fatal(err)
	}
}

func TestCreateCommentNotifiesAuthor(t *testing.T) {
	svc, repos := newTestService(t, "social_comment")
	seedPost(t, repos)

	rsp, err := svc.CreateComment(context.Background(), &request.NewCommentRequest{
		PostId: "P1", UserId: "U2", Content: "nice",
	})
	if err != nil {
		t.Fatal(err)
	}
	if rsp.PostId != "P1" || rsp.Content != "nice" {
		t.Fatalf("unexpected respond: %+v", rsp)
	}

	records, err := repos.Notification.FindByUser("U1")
	if err != nil {
		t.Fatal(err)
	}
	if len(records) != 1 {
		t.Fatalf("expected 1 notification for author, got %d", len(records))
	}
	if records[0].Type != notification_type_enum.Comment {
		t.Fatalf("expected comment notification, got %s", records[0].Type)
	}
}

func TestCreateCommentOnOwnPostNoNotification(t *testing.T) {
	svc, repos := newTestService(t, "social_self_comment")
	seedPost(t, repos)

	if _, err := svc.CreateComment(context.Background(), &request.NewCommentRequest{
		PostId: "P1", UserId: "U1", Content: "self reply",
	}); err != nil {
		t.Fatal(err)
	}

	records, _ := repos.Notification.FindByUser("U1")
	if len(records) != 0 {
		t.Fatalf("self comment must not notify, got %d rows", len(records))
	}
}

func TestCreateCommentMissingPost(t *testing.T) {
	svc, _ := newTestService(t, "social_comment_missing")

	_, err := svc.CreateComment(context.Background(), &request.NewCommentRequest{
		PostId: "nope", UserId: "U1", Content: "x",
	})
	if !errorx.IsNotFound(err) {
		t.Fatalf("expected not found, got %v", err)
	}
}

func TestToggleLike(t *testing.T) {
	svc, repos := newTestService(t, "social_like")
	seedPost(t, repos)

	rsp, err := svc.ToggleLike(context.Background(), &request.ToggleLikeRequest{PostId: "P1", UserId: "U2"})
	if err != nil {
		t.Fatal(err)
	}
	if !rsp.Liked {
		t.Fatal("expected liked=true on first toggle")
	}

	records, _ := repos.Notification.FindByUser("U1")
	if len(records) != 1 || records[0].Type != notification_type_enum.Like {
		t.Fatalf("expected like notification, got %+v", records)
	}

	rsp, err = svc.ToggleLike(context.Background(), &request.ToggleLikeRequest{PostId: "P1", UserId: "U2"})
	if err != nil {
		t.Fatal(err)
	}
	if rsp.Liked {
		t.Fatal("expected liked=false on second toggle")
	}

	// 取消点赞不追加通知
	records, _ = repos.Notification.FindByUser("U1")
	if len(records) != 1 {
		t.Fatalf("unlike must not notify, got %d rows", len(records))
	}
}

func TestToggleLikeOwnPostNoNotification(t *testing.T) {
	svc, repos := newTestService(t, "social_self_like")
	seedPost(t, repos)

	rsp, err := svc.ToggleLike(context.Background(), &request.ToggleLikeRequest{PostId: "P1", UserId: "U1"})
	if err != nil {
		t.Fatal(err)
	}
	if !rsp.Liked {
		t.Fatal("expected liked=true")
	}
	records, _ := repos.Notification.FindByUser("U1")
	if len(records) != 0 {
		t.Fatalf("self like must not notify, got %d rows", len(records))
	}
}

func TestConnectionRequestAndAccept(t *testing.T) {
	svc, repos := newTestService(t, "social_connection_accept")
	seedPost(t, repos)

	rsp, err := svc.CreateConnectionRequest(context.Background(), &request.ConnectionRequestRequest{
		SenderId: "U1", ReceiverId: "U2",
	})
	if err != nil {
		t.Fatal(err)
	}
	if rsp.Status != "pending" {
		t.Fatalf("expected pending status, got %s", rsp.Status)
	}

	// 接收方收到通知
	records, _ := repos.Notification.FindByUser("U2")
	if len(records) != 1 || records[0].Type != notification_type_enum.Connection {
		t.Fatalf("expected connection notification for receiver, got %+v", records)
	}

	accepted, err := svc.RespondConnection(context.Background(), &request.ConnectionRespondRequest{
		ConnectionId: rsp.ConnectionId, Accept: true,
	})
	if err != nil {
		t.Fatal(err)
	}
	if accepted == nil || accepted.SenderId != "U1" {
		t.Fatalf("unexpected accepted respond: %+v", accepted)
	}

	conn, err := repos.Connection.FindByID(rsp.ConnectionId)
	if err != nil {
		t.Fatal(err)
	}
	if conn.Status != "accepted" {
		t.Fatalf("expected accepted status, got %s", conn.Status)
	}

	// 发起方收到接受通知
	senderRecords, _ := repos.Notification.FindByUser("U1")
	if len(senderRecords) != 1 {
		t.Fatalf("expected acceptance notification for sender, got %d rows", len(senderRecords))
	}
}

func TestConnectionDeclineDeletesQuietly(t *testing.T) {
	svc, repos := newTestService(t, "social_connection_decline")
	seedPost(t, repos)

	rsp, err := svc.CreateConnectionRequest(context.Background(), &request.ConnectionRequestRequest{
		SenderId: "U1", ReceiverId: "U2",
	})
	if err != nil {
		t.Fatal(err)
	}

	declined, err := svc.RespondConnection(context.Background(), &request.ConnectionRespondRequest{
		ConnectionId: rsp.ConnectionId, Accept: false,
	})
	if err != nil {
		t.Fatal(err)
	}
	if declined != nil {
		t.Fatal("decline must not produce an accepted respond")
	}

	if _, err := repos.Connection.FindByID(rsp.ConnectionId); !errorx.IsNotFound(err) {
		t.Fatalf("expected record deleted, got %v", err)
	}

	// 拒绝不通知发起方
	records, _ := repos.Notification.FindByUser("U1")
	if len(records) != 0 {
		t.Fatalf("decline must not notify, got %d rows", len(records))
	}
}

func TestSelfConnectionRejected(t *testing.T) {
	svc, _ := newTestService(t, "social_connection_self")

	_, err := svc.CreateConnectionRequest(context.Background(), &request.ConnectionRequestRequest{
		SenderId: "U1", ReceiverId: "U1",
	})
	if errorx.GetCode(err) != errorx.CodeInvalidParam {
		t.Fatalf("expected invalid param, got %v", err)
	}
}
