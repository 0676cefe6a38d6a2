package model

import (
	"time"

	"gorm.io/gorm"
)

// Message 私聊消息模型
// ReadStatus 单向推进 sent -> delivered -> seen，由接收方的确认流程原地更新，
// 消息本身创建后不再被消息核心删除
type Message struct {
	gorm.Model

	// Uuid 消息雪花 ID
	Uuid int64 `gorm:"column:uuid;uniqueIndex;type:bigint;not null;comment:消息雪花ID"`

	// SenderId 发送者 UUID
	SenderId string `gorm:"column:sender_id;index;type:char(20);not null;comment:发送者uuid"`

	// ReceiverId 接收者 UUID
	ReceiverId string `gorm:"column:receiver_id;index;type:char(20);not null;comment:接收者uuid"`

	// Content 消息内容
	Content string `gorm:"column:content;type:TEXT;not null;comment:消息内容"`

	// Type 消息类型，如 "text"
	Type string `gorm:"column:type;type:varchar(20);default:text;comment:消息类型"`

	// SentAt 发送时间，会话排序和分页都以它为准
	SentAt time.Time `gorm:"column:sent_at;index;not null;comment:发送时间"`

	// ReadStatus 投递状态：sent/delivered/seen
	ReadStatus string `gorm:"column:read_status;type:varchar(10);not null;default:sent;comment:投递状态"`
}

func (Message) TableName() string {
	return "message"
}
