package model

import "gorm.io/gorm"

// GroupMessageStatus 群消息的逐成员已读状态
// 每个 (消息, 成员) 懒创建一行，复合键唯一
type GroupMessageStatus struct {
	gorm.Model
	GroupMessageUuid int64  `gorm:"column:group_message_uuid;uniqueIndex:idx_msg_user;type:bigint;not null;comment:群消息雪花ID"`
	UserUuid         string `gorm:"column:user_uuid;uniqueIndex:idx_msg_user;type:char(20);not null;comment:成员uuid"`
	Read             bool   `gorm:"column:read;not null;default:false;comment:是否已读"`
}

func (GroupMessageStatus) TableName() string {
	return "group_message_status"
}
