package request

// StoreFcmTokenRequest store_fcm_token 事件载荷
// 四个字段均必填，缺失时以 fcm_error 事件回告调用方
type StoreFcmTokenRequest struct {
	UserId   string `json:"user_id"`
	FcmToken string `json:"fcm_token"`
	DeviceId string `json:"device_id"`
	Platform string `json:"platform"`
}
