package model

import "gorm.io/gorm"

// Connection 用户间的连接（好友）请求
type Connection struct {
	gorm.Model
	SenderId   string `gorm:"column:sender_id;index;type:char(20);not null;comment:发起者uuid"`
	ReceiverId string `gorm:"column:receiver_id;index;type:char(20);not null;comment:接收者uuid"`
	Status     string `gorm:"column:status;type:varchar(10);not null;default:pending;comment:pending/accepted"`
}

func (Connection) TableName() string {
	return "connection"
}
