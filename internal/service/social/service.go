// Package social 评论、点赞、连接请求，以及由它们触发的通知
package social

import (
	"context"

	"cedar_roots_server/internal/dao/mysql/repository"
	"cedar_roots_server/internal/dto/request"
	"cedar_roots_server/internal/dto/respond"
	"cedar_roots_server/internal/model"
	"cedar_roots_server/internal/service/notification"
	"cedar_roots_server/pkg/constants"
	"cedar_roots_server/pkg/enum/notification/notification_type_enum"
	"cedar_roots_server/pkg/errorx"
)

type Service struct {
	repos    *repository.Repositories
	notifier *notification.Notifier
}

func NewService(repos *repository.Repositories, notifier *notification.Notifier) *Service {
	return &Service{repos: repos, notifier: notifier}
}

// CreateComment 创建评论；帖子作者非本人时通知作者
func (s *Service) CreateComment(ctx context.Context, req *request.NewCommentRequest) (*respond.CommentRespond, error) {
	if req.PostId == "" || req.UserId == "" || req.Content == "" {
		return nil, errorx.New(errorx.CodeInvalidParam, "postId、userId、content 均不能为空")
	}
	post, err := s.repos.Post.FindByUuid(req.PostId)
	if err != nil {
		return nil, err
	}
	comment := &model.Comment{
		PostUuid: req.PostId,
		UserUuid: req.UserId,
		Content:  req.Content,
	}
	if err := s.repos.Comment.Create(comment); err != nil {
		return nil, err
	}

	if post.UserUuid != req.UserId {
		name := s.displayName(req.UserId)
		_ = s.notifier.Notify(ctx, post.UserUuid, notification_type_enum.Comment,
			name, name+" commented on your post",
			map[string]string{"postId": req.PostId, "senderId": req.UserId})
	}

	rsp := respond.NewCommentRespond(comment)
	return &rsp, nil
}

// ToggleLike 点赞开关：已点过则取消，没点过则点上
// 点赞自己的帖子不产生通知
func (s *Service) ToggleLike(ctx context.Context, req *request.ToggleLikeRequest) (*respond.LikeToggledRespond, error) {
	if req.PostId == "" || req.UserId == "" {
		return nil, errorx.New(errorx.CodeInvalidParam, "postId 和 userId 不能为空")
	}
	post, err := s.repos.Post.FindByUuid(req.PostId)
	if err != nil {
		return nil, err
	}

	_, err = s.repos.Like.FindByPostAndUser(req.PostId, req.UserId)
	switch {
	case err == nil:
		if err := s.repos.Like.Delete(req.PostId, req.UserId); err != nil {
			return nil, err
		}
		return &respond.LikeToggledRespond{PostId: req.PostId, UserId: req.UserId, Liked: false}, nil
	case errorx.IsNotFound(err):
		if err := s.repos.Like.Create(&model.Like{PostUuid: req.PostId, UserUuid: req.UserId}); err != nil {
			return nil, err
		}
		if post.UserUuid != req.UserId {
			name := s.displayName(req.UserId)
			_ = s.notifier.Notify(ctx, post.UserUuid, notification_type_enum.Like,
				name, name+" liked your post",
				map[string]string{"postId": req.PostId, "senderId": req.UserId})
		}
		return &respond.LikeToggledRespond{PostId: req.PostId, UserId: req.UserId, Liked: true}, nil
	default:
		return nil, err
	}
}

// CreateConnectionRequest 发起连接请求并通知对方
func (s *Service) CreateConnectionRequest(ctx context.Context, req *request.ConnectionRequestRequest) (*respond.ConnectionRequestRespond, error) {
	if req.SenderId == "" || req.ReceiverId == "" {
		return nil, errorx.New(errorx.CodeInvalidParam, "senderId 和 receiverId 不能为空")
	}
	if req.SenderId == req.ReceiverId {
		return nil, errorx.New(errorx.CodeInvalidParam, "不能向自己发起连接请求")
	}
	conn := &model.Connection{
		SenderId:   req.SenderId,
		ReceiverId: req.ReceiverId,
		Status:     "pending",
	}
	if err := s.repos.Connection.Create(conn); err != nil {
		return nil, err
	}

	name := s.displayName(req.SenderId)
	_ = s.notifier.Notify(ctx, req.ReceiverId, notification_type_enum.Connection,
		name, name+" sent you a connection request",
		map[string]string{"senderId": req.SenderId})

	return &respond.ConnectionRequestRespond{
		ConnectionId: conn.ID,
		SenderId:     conn.SenderId,
		ReceiverId:   conn.ReceiverId,
		Status:       conn.Status,
	}, nil
}

// RespondConnection 处理连接请求的答复
// 接受：状态置 accepted 并通知发起方；拒绝：直接删除记录，不通知
func (s *Service) RespondConnection(ctx context.Context, req *request.ConnectionRespondRequest) (*respond.ConnectionAcceptedRespond, error) {
	if req.ConnectionId == 0 {
		return nil, errorx.ErrInvalidParam
	}
	conn, err := s.repos.Connection.FindByID(req.ConnectionId)
	if err != nil {
		return nil, err
	}

	if !req.Accept {
		if err := s.repos.Connection.Delete(conn.ID); err != nil {
			return nil, err
		}
		return nil, nil
	}

	if err := s.repos.Connection.UpdateStatus(conn.ID, "accepted"); err != nil {
		return nil, err
	}
	name := s.displayName(conn.ReceiverId)
	_ = s.notifier.Notify(ctx, conn.SenderId, notification_type_enum.Connection,
		name, name+" accepted your connection request",
		map[string]string{"senderId": conn.ReceiverId})

	return &respond.ConnectionAcceptedRespond{
		ConnectionId: conn.ID,
		SenderId:     conn.SenderId,
		ReceiverId:   conn.ReceiverId,
	}, nil
}

func (s *Service) displayName(userId string) string {
	user, err := s.repos.User.FindByUuid(userId)
	if err != nil || user.Nickname == "" {
		return constants.DEFAULT_SENDER_NAME
	}
	return user.Nickname
}
