package respond

// ErrorRespond _error 事件载荷，Event 标明出错的原始事件
type ErrorRespond struct {
	Event   string `json:"event"`
	Message string `json:"message"`
}
