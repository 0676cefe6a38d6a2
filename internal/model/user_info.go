// Package model 定义数据库实体模型
package model

import "gorm.io/gorm"

// UserInfo 用户信息模型
// 消息子系统只引用用户身份，不负责其生命周期
type UserInfo struct {
	gorm.Model

	// Uuid 用户唯一标识，U 开头的 char(20) 字符串
	Uuid string `gorm:"column:uuid;uniqueIndex;type:char(20);not null;comment:用户uuid"`

	// Nickname 显示名，推送标题等处使用
	Nickname string `gorm:"column:nickname;type:varchar(30);not null;comment:昵称"`

	// Avatar 头像相对路径
	Avatar string `gorm:"column:avatar;type:varchar(255);comment:头像"`
}

func (UserInfo) TableName() string {
	return "user_info"
}
