package respond

import (
	"time"

	"cedar_roots_server/internal/model"
)

// CommentRespond comment_added 下行结构
type CommentRespond struct {
	CommentId uint   `json:"commentId"`
	PostId    string `json:"postId"`
	UserId    string `json:"userId"`
	Content   string `json:"content"`
	CreatedAt string `json:"createdAt"`
}

func NewCommentRespond(c *model.Comment) CommentRespond {
	return CommentRespond{
		CommentId: c.ID,
		PostId:    c.PostUuid,
		UserId:    c.UserUuid,
		Content:   c.Content,
		CreatedAt: c.CreatedAt.Format(time.RFC3339),
	}
}

// LikeToggledRespond like_toggled 下行结构
type LikeToggledRespond struct {
	PostId string `json:"postId"`
	UserId string `json:"userId"`
	Liked  bool   `json:"liked"`
}
