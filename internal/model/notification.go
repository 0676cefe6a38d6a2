package model

import "gorm.io/gorm"

// Notification 站内通知记录
type Notification struct {
	gorm.Model
	UserUuid string `gorm:"column:user_uuid;index;type:char(20);not null;comment:接收用户uuid"`
	Type     string `gorm:"column:type;type:varchar(20);not null;comment:通知类型"`
	Message  string `gorm:"column:message;type:varchar(255);not null;comment:通知内容"`
	IsRead   bool   `gorm:"column:is_read;not null;default:false;comment:是否已读"`
}

func (Notification) TableName() string {
	return "notification"
}
