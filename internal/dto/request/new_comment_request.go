package request

// NewCommentRequest new_comment 事件载荷
type NewCommentRequest struct {
	PostId  string `json:"postId"`
	UserId  string `json:"userId"`
	Content string `json:"content"`
}
