package handler

import (
	"strconv"

	"github.com/gin-gonic/gin"

	"cedar_roots_server/internal/dto/request"
	"cedar_roots_server/internal/infrastructure/middleware"
	"cedar_roots_server/internal/service/chat"
	"cedar_roots_server/internal/service/message"
)

// MessageHandler 消息 REST 接口
// socket 不在线时客户端用这些接口兜底（冷启动拉取、后台发送）
type MessageHandler struct {
	messageSvc *message.Service
	chatServer *chat.ChatServer
}

func NewMessageHandler(messageSvc *message.Service, chatServer *chat.ChatServer) *MessageHandler {
	return &MessageHandler{messageSvc: messageSvc, chatServer: chatServer}
}

// GetConversations 拉取会话列表
// GET /message/conversations
func (h *MessageHandler) GetConversations(c *gin.Context) {
	userId := c.GetString(middleware.CtxUserIDKey)
	list, err := h.messageSvc.BuildConversations(c.Request.Context(), userId)
	if err != nil {
		HandleError(c, err)
		return
	}
	HandleSuccess(c, list)
}

// GetMessages 拉取与某人的历史消息
// GET /message/history?counterpartId=U123&page=1&limit=20
func (h *MessageHandler) GetMessages(c *gin.Context) {
	userId := c.GetString(middleware.CtxUserIDKey)
	counterpartId := c.Query("counterpartId")
	page, _ := strconv.Atoi(c.DefaultQuery("page", "1"))
	limit, _ := strconv.Atoi(c.DefaultQuery("limit", "0"))

	list, err := h.messageSvc.FetchMessagePage(userId, counterpartId, page, limit)
	if err != nil {
		HandleError(c, err)
		return
	}
	HandleSuccess(c, list)
}

// SendMessage 发送单聊消息
// POST /message/send，发送方取自 JWT；复用 socket 链路完成扇出与推送
func (h *MessageHandler) SendMessage(c *gin.Context) {
	var req request.CreateMessageRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		HandleParamError(c, err)
		return
	}
	userId := c.GetString(middleware.CtxUserIDKey)

	msg, err := h.chatServer.SendDirect(&request.SendMessageRequest{
		SenderId:   userId,
		ReceiverId: req.ReceiverId,
		Content:    req.Content,
		Type:       req.Type,
	}, "")
	if err != nil {
		HandleError(c, err)
		return
	}
	HandleSuccess(c, gin.H{"messageId": msg.Uuid, "status": "saved"})
}

// MarkAsRead 批量已读（REST 兜底）
// POST /message/mark_read
func (h *MessageHandler) MarkAsRead(c *gin.Context) {
	var req request.MarkMessagesAsReadRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		HandleParamError(c, err)
		return
	}
	ids, err := h.messageSvc.MarkSeen(req.SenderId, req.ReceiverId)
	if err != nil {
		HandleError(c, err)
		return
	}
	HandleSuccess(c, gin.H{"messageIds": ids})
}
