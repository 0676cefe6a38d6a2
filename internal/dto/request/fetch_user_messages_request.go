package request

// FetchUserMessagesRequest fetch_user_messages 事件载荷
type FetchUserMessagesRequest struct {
	UserId string `json:"userId"`
}
