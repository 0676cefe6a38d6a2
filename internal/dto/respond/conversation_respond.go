package respond

// ConversationMessage 会话列表里的最近一条消息，单聊与群聊字段取并集
type ConversationMessage struct {
	MessageId  int64  `json:"messageId"`
	SenderId   string `json:"senderId"`
	Content    string `json:"content"`
	Type       string `json:"type,omitempty"`
	SentAt     string `json:"sentAt"`
	ReadStatus string `json:"readStatus,omitempty"`
}

// ConversationRespond 会话列表条目
// Type 取 direct / group；单聊时 Id 为对端用户，群聊时为群
type ConversationRespond struct {
	Type        string               `json:"type"`
	Id          string               `json:"id"`
	Name        string               `json:"name"`
	Avatar      string               `json:"avatar,omitempty"`
	LastMessage *ConversationMessage `json:"lastMessage"`
	UnreadCount int64                `json:"unreadCount"`
}
