package model

import "gorm.io/gorm"

// Like 帖子点赞，(post, user) 唯一
type Like struct {
	gorm.Model
	PostUuid string `gorm:"column:post_uuid;uniqueIndex:idx_post_user;type:char(20);not null;comment:帖子uuid"`
	UserUuid string `gorm:"column:user_uuid;uniqueIndex:idx_post_user;type:char(20);not null;comment:点赞者uuid"`
}

func (Like) TableName() string {
	return "like"
}
