package model

import "gorm.io/gorm"

// GroupInfo 群组信息模型
type GroupInfo struct {
	gorm.Model
	Uuid    string `gorm:"column:uuid;uniqueIndex;type:char(20);not null;comment:群组uuid"`
	Name    string `gorm:"column:name;type:varchar(50);not null;comment:群名称"`
	Avatar  string `gorm:"column:avatar;type:varchar(255);comment:群头像"`
	OwnerId string `gorm:"column:owner_id;type:char(20);not null;comment:群主uuid"`
}

func (GroupInfo) TableName() string {
	return "group_info"
}
