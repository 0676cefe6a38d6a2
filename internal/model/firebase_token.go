package model

import "gorm.io/gorm"

// FirebaseToken 设备推送 token
// 以 device_id 为准做 upsert，同一设备最新的 token 生效；
// 一个用户可拥有多条记录（多设备扇出）
type FirebaseToken struct {
	gorm.Model
	UserUuid string `gorm:"column:user_uuid;index;type:char(20);not null;comment:用户uuid"`
	DeviceId string `gorm:"column:device_id;uniqueIndex;type:varchar(128);not null;comment:设备ID"`
	FcmToken string `gorm:"column:fcm_token;uniqueIndex;type:varchar(255);not null;comment:FCM token"`
	Platform string `gorm:"column:platform;type:varchar(10);not null;comment:android/ios"`
}

func (FirebaseToken) TableName() string {
	return "firebase_token"
}
