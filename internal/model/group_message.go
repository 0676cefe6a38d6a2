package model

import (
	"time"

	"gorm.io/gorm"
)

// GroupMessage 群聊消息模型
// 读状态不在消息上，见 GroupMessageStatus（每个成员独立已读）
type GroupMessage struct {
	gorm.Model
	Uuid      int64     `gorm:"column:uuid;uniqueIndex;type:bigint;not null;comment:消息雪花ID"`
	GroupUuid string    `gorm:"column:group_uuid;index;type:char(20);not null;comment:群组uuid"`
	SenderId  string    `gorm:"column:sender_id;index;type:char(20);not null;comment:发送者uuid"`
	Content   string    `gorm:"column:content;type:TEXT;not null;comment:消息内容"`
	SentAt    time.Time `gorm:"column:sent_at;index;not null;comment:发送时间"`
}

func (GroupMessage) TableName() string {
	return "group_message"
}
