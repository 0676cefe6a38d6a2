package request

// ToggleLikeRequest toggle_like 事件载荷
type ToggleLikeRequest struct {
	PostId string `json:"postId"`
	UserId string `json:"userId"`
}
