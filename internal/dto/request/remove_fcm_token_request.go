package request

// RemoveFcmTokenRequest remove_fcm_device_token 事件载荷
type RemoveFcmTokenRequest struct {
	UserId   string `json:"userId"`
	DeviceId string `json:"deviceId"`
}
