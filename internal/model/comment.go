package model

import "gorm.io/gorm"

// Comment 帖子评论
type Comment struct {
	gorm.Model
	PostUuid string `gorm:"column:post_uuid;index;type:char(20);not null;comment:帖子uuid"`
	UserUuid string `gorm:"column:user_uuid;index;type:char(20);not null;comment:评论者uuid"`
	Content  string `gorm:"column:content;type:TEXT;not null;comment:评论内容"`
}

func (Comment) TableName() string {
	return "comment"
}
