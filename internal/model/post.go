package model

import "gorm.io/gorm"

// Post 帖子模型
// 帖子的 CRUD 属于外部模块，这里只保留评论/点赞通知所需的字段
type Post struct {
	gorm.Model
	Uuid     string `gorm:"column:uuid;uniqueIndex;type:char(20);not null;comment:帖子uuid"`
	UserUuid string `gorm:"column:user_uuid;index;type:char(20);not null;comment:作者uuid"`
	Content  string `gorm:"column:content;type:TEXT;comment:内容"`
}

func (Post) TableName() string {
	return "post"
}
