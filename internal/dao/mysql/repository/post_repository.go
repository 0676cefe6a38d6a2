package repository

import (
	"cedar_roots_server/internal/model"

	"gorm.io/gorm"
)

type postRepository struct {
	db *gorm.DB
}

// NewPostRepository 创建帖子 Repository
func NewPostRepository(db *gorm.DB) PostRepository {
	return &postRepository{db: db}
}

func (r *postRepository) FindByUuid(uuid string) (*model.Post, error) {
	var post model.Post
	if err := r.db.Where("uuid = ?", uuid).First(&post).Error; err != nil {
		return nil, wrapDBErrorf(err, "查询帖子 uuid=%s", uuid)
	}
	return &post, nil
}

func (r *postRepository) Create(post *model.Post) error {
	if err := r.db.Create(post).Error; err != nil {
		return wrapDBError(err, "创建帖子")
	}
	return nil
}

type commentRepository struct {
	db *gorm.DB
}

// NewCommentRepository 创建评论 Repository
func NewCommentRepository(db *gorm.DB) CommentRepository {
	return &commentRepository{db: db}
}

func (r *commentRepository) Create(comment *model.Comment) error {
	if err := r.db.Create(comment).Error; err != nil {
		return wrapDBError(err, "创建评论")
	}
	return nil
}

type likeRepository struct {
	db *gorm.DB
}

// NewLikeRepository 创建点赞 Repository
func NewLikeRepository(db *gorm.DB) LikeRepository {
	return &likeRepository{db: db}
}

func (r *likeRepository) FindByPostAndUser(postUuid, userUuid string) (*model.Like, error) {
	var like model.Like
	if err := r.db.Where("post_uuid = ? AND user_uuid = ?", postUuid, userUuid).
		First(&like).Error; err != nil {
		return nil, wrapDBErrorf(err, "查询点赞 post=%s user=%s", postUuid, userUuid)
	}
	return &like, nil
}

func (r *likeRepository) Create(like *model.Like) error {
	if err := r.db.Create(like).Error; err != nil {
		return wrapDBError(err, "创建点赞")
	}
	return nil
}

func (r *likeRepository) Delete(postUuid, userUuid string) error {
	if err := r.db.Unscoped().
		Where("post_uuid = ? AND user_uuid = ?", postUuid, userUuid).
		Delete(&model.Like{}).Error; err != nil {
		return wrapDBErrorf(err, "删除点赞 post=%s user=%s", postUuid, userUuid)
	}
	return nil
}
