package chat

import (
	"context"
	"encoding/json"
	"strconv"

	"go.uber.org/zap"

	"cedar_roots_server/internal/dto/request"
	"cedar_roots_server/internal/dto/respond"
	"cedar_roots_server/internal/model"
	"cedar_roots_server/pkg/enum/notification/notification_type_enum"
	"cedar_roots_server/pkg/errorx"
)

// registerHandlers 绑定全部入站事件
func (cs *ChatServer) registerHandlers() {
	cs.Router.Register("join", cs.handleJoin)
	cs.Router.Register("store_fcm_token", cs.handleStoreFcmToken)
	cs.Router.Register("remove_fcm_device_token", cs.handleRemoveFcmToken)
	cs.Router.Register("message_received", cs.handleMessageReceived)
	cs.Router.Register("mark_messages_as_read", cs.handleMarkMessagesAsRead)
	cs.Router.Register("fetch_user_messages", cs.handleFetchUserMessages)
	cs.Router.Register("fetch_messages", cs.handleFetchMessages)
	cs.Router.Register("send_message", cs.handleSendMessage)
	cs.Router.Register("send_group_message", cs.handleSendGroupMessage)
	cs.Router.Register("typing", cs.handleTyping)
	cs.Router.Register("join_group", cs.handleJoinGroup)
	cs.Router.Register("group_message_read", cs.handleGroupMessageRead)
	cs.Router.Register("new_comment", cs.handleNewComment)
	cs.Router.Register("toggle_like", cs.handleToggleLike)
	cs.Router.Register("connection_request", cs.handleConnectionRequest)
	cs.Router.Register("connection_respond", cs.handleConnectionRespond)
}

// bind 解析事件载荷，失败时回 _error 给发起会话
func (cs *ChatServer) bind(c *UserConn, event string, data json.RawMessage, v any) bool {
	if err := json.Unmarshal(data, v); err != nil {
		zap.L().Warn("事件载荷解析失败", zap.String("event", event), zap.Error(err))
		c.Emit("_error", respond.ErrorRespond{Event: event, Message: "invalid payload"})
		return false
	}
	return true
}

func (cs *ChatServer) handleJoin(c *UserConn, data json.RawMessage) {
	var req request.JoinRequest
	if !cs.bind(c, "join", data, &req) {
		return
	}
	if req.UserId == "" {
		c.Emit("_error", respond.ErrorRespond{Event: "join", Message: "userId is required"})
		return
	}
	cs.Registry.Join(req.UserId, c)
}

func (cs *ChatServer) handleStoreFcmToken(c *UserConn, data json.RawMessage) {
	var req request.StoreFcmTokenRequest
	if !cs.bind(c, "store_fcm_token", data, &req) {
		return
	}
	if err := cs.deviceSvc.Register(&req); err != nil {
		if errorx.GetCode(err) == errorx.CodeInvalidParam {
			c.Emit("fcm_error", respond.FcmErrorRespond{Message: "user_id, fcm_token, device_id and platform are required"})
		} else {
			zap.L().Error("登记设备 token 失败", zap.Error(err))
			c.Emit("fcm_error", respond.FcmErrorRespond{Message: "failed to store token"})
		}
		return
	}
	c.Emit("fcm_stored", respond.FcmStoredRespond{Success: true})
}

func (cs *ChatServer) handleRemoveFcmToken(c *UserConn, data json.RawMessage) {
	var req request.RemoveFcmTokenRequest
	if !cs.bind(c, "remove_fcm_device_token", data, &req) {
		return
	}
	removed, err := cs.deviceSvc.Unregister(req.UserId, req.DeviceId)
	if err != nil {
		if errorx.GetCode(err) == errorx.CodeInvalidParam {
			c.Emit("fcm_token_removed", respond.FcmTokenRemovedRespond{Success: false, Error: "userId and deviceId are required"})
			return
		}
		zap.L().Error("注销设备 token 失败", zap.Error(err))
		c.Emit("fcm_token_removed", respond.FcmTokenRemovedRespond{Success: false, Error: "failed to remove token"})
		return
	}
	if !removed {
		c.Emit("fcm_token_removed", respond.FcmTokenRemovedRespond{Success: false, Error: "Token not found"})
		return
	}
	c.Emit("fcm_token_removed", respond.FcmTokenRemovedRespond{Success: true})
}

func (cs *ChatServer) handleMessageReceived(c *UserConn, data json.RawMessage) {
	var req request.MessageReceivedRequest
	if !cs.bind(c, "message_received", data, &req) {
		return
	}
	updated, err := cs.messageSvc.RecordDelivered(req.MessageId, req.SenderId, req.ReceiverId)
	if err != nil {
		zap.L().Error("送达确认失败", zap.Int64("messageId", req.MessageId), zap.Error(err))
		c.Emit("_error", respond.ErrorRespond{Event: "message_received", Message: "failed to record delivery"})
		return
	}
	// 不匹配或重复确认是无声 no-op，不回错误
	if updated {
		cs.Registry.EmitToUser(req.SenderId, "message_delivered",
			respond.MessageDeliveredRespond{MessageId: req.MessageId})
	}
}

func (cs *ChatServer) handleMarkMessagesAsRead(c *UserConn, data json.RawMessage) {
	var req request.MarkMessagesAsReadRequest
	if !cs.bind(c, "mark_messages_as_read", data, &req) {
		return
	}
	ids, err := cs.messageSvc.MarkSeen(req.SenderId, req.ReceiverId)
	if err != nil {
		zap.L().Error("批量已读失败", zap.Error(err))
		c.Emit("_error", respond.ErrorRespond{Event: "mark_messages_as_read", Message: "failed to mark messages as read"})
		return
	}
	if len(ids) > 0 {
		cs.Registry.EmitToUser(req.SenderId, "messages_seen_by_receiver", respond.MessagesSeenRespond{
			SenderId:   req.SenderId,
			ReceiverId: req.ReceiverId,
			MessageIds: ids,
		})
	}
}

func (cs *ChatServer) handleFetchUserMessages(c *UserConn, data json.RawMessage) {
	var req request.FetchUserMessagesRequest
	if !cs.bind(c, "fetch_user_messages", data, &req) {
		return
	}
	list, err := cs.messageSvc.BuildConversations(context.Background(), req.UserId)
	if err != nil {
		zap.L().Error("聚合会话列表失败", zap.String("userId", req.UserId), zap.Error(err))
		c.Emit("_error", respond.ErrorRespond{Event: "fetch_user_messages", Message: "failed to fetch conversations"})
		return
	}
	c.Emit("fetched_user_messages", list)
}

func (cs *ChatServer) handleFetchMessages(c *UserConn, data json.RawMessage) {
	var req request.FetchMessagesRequest
	if !cs.bind(c, "fetch_messages", data, &req) {
		return
	}
	list, err := cs.messageSvc.FetchMessagePage(req.SenderId, req.ReceiverId, req.Page, req.Limit)
	if err != nil {
		zap.L().Error("拉取历史消息失败", zap.Error(err))
		c.Emit("fetched_messages_error", respond.ErrorRespond{Event: "fetch_messages", Message: "failed to fetch messages"})
		return
	}
	c.Emit("fetched_messages", list)
}

// handleSendMessage 校验后投递到消息代理，持久化在消费侧完成
func (cs *ChatServer) handleSendMessage(c *UserConn, data json.RawMessage) {
	var req request.SendMessageRequest
	if !cs.bind(c, "send_message", data, &req) {
		return
	}
	if req.SenderId == "" || req.ReceiverId == "" || req.Content == "" {
		c.Emit("_error", respond.ErrorRespond{Event: "send_message", Message: "senderId, receiverId and content are required"})
		return
	}
	cs.publishEvent(c, "send_message", data)
}

func (cs *ChatServer) handleSendGroupMessage(c *UserConn, data json.RawMessage) {
	var req request.SendGroupMessageRequest
	if !cs.bind(c, "send_group_message", data, &req) {
		return
	}
	if req.GroupId == "" || req.SenderId == "" || req.Content == "" {
		c.Emit("_error", respond.ErrorRespond{Event: "send_group_message", Message: "groupId, senderId and content are required"})
		return
	}
	cs.publishEvent(c, "send_group_message", data)
}

func (cs *ChatServer) publishEvent(c *UserConn, event string, data json.RawMessage) {
	envBytes, err := json.Marshal(Envelope{Event: event, Data: data, Origin: c.sessionId})
	if err != nil {
		zap.L().Error("事件信封序列化失败", zap.String("event", event), zap.Error(err))
		c.Emit("_error", respond.ErrorRespond{Event: event, Message: "internal error"})
		return
	}
	if err := cs.Broker.Publish(context.Background(), envBytes); err != nil {
		zap.L().Error("事件投递失败", zap.String("event", event), zap.Error(err))
		c.Emit("_error", respond.ErrorRespond{Event: event, Message: "server busy, please retry later"})
	}
}

func (cs *ChatServer) handleTyping(c *UserConn, data json.RawMessage) {
	var req request.TypingRequest
	if !cs.bind(c, "typing", data, &req) {
		return
	}
	if req.SenderId == "" || req.ReceiverId == "" {
		return
	}
	cs.Registry.EmitToUser(req.ReceiverId, "user_typing", respond.UserTypingRespond{SenderId: req.SenderId})
}

func (cs *ChatServer) handleJoinGroup(c *UserConn, data json.RawMessage) {
	var req request.JoinGroupRequest
	if !cs.bind(c, "join_group", data, &req) {
		return
	}
	if req.GroupId == "" {
		c.Emit("_error", respond.ErrorRespond{Event: "join_group", Message: "groupId is required"})
		return
	}
	cs.Registry.JoinRoom(req.GroupId, c)
}

func (cs *ChatServer) handleGroupMessageRead(c *UserConn, data json.RawMessage) {
	var req request.GroupMessageReadRequest
	if !cs.bind(c, "group_message_read", data, &req) {
		return
	}
	if err := cs.messageSvc.MarkGroupMessageRead(req.GroupMessageId, req.UserId); err != nil {
		zap.L().Error("群消息已读登记失败", zap.Error(err))
		c.Emit("_error", respond.ErrorRespond{Event: "group_message_read", Message: "failed to mark group message as read"})
	}
}

func (cs *ChatServer) handleNewComment(c *UserConn, data json.RawMessage) {
	var req request.NewCommentRequest
	if !cs.bind(c, "new_comment", data, &req) {
		return
	}
	rsp, err := cs.socialSvc.CreateComment(context.Background(), &req)
	if err != nil {
		zap.L().Error("创建评论失败", zap.Error(err))
		c.Emit("_error", respond.ErrorRespond{Event: "new_comment", Message: "failed to create comment"})
		return
	}
	c.Emit("comment_added", rsp)
}

func (cs *ChatServer) handleToggleLike(c *UserConn, data json.RawMessage) {
	var req request.ToggleLikeRequest
	if !cs.bind(c, "toggle_like", data, &req) {
		return
	}
	rsp, err := cs.socialSvc.ToggleLike(context.Background(), &req)
	if err != nil {
		zap.L().Error("点赞切换失败", zap.Error(err))
		c.Emit("_error", respond.ErrorRespond{Event: "toggle_like", Message: "failed to toggle like"})
		return
	}
	c.Emit("like_toggled", rsp)
}

func (cs *ChatServer) handleConnectionRequest(c *UserConn, data json.RawMessage) {
	var req request.ConnectionRequestRequest
	if !cs.bind(c, "connection_request", data, &req) {
		return
	}
	rsp, err := cs.socialSvc.CreateConnectionRequest(context.Background(), &req)
	if err != nil {
		zap.L().Error("创建连接请求失败", zap.Error(err))
		c.Emit("_error", respond.ErrorRespond{Event: "connection_request", Message: "failed to create connection request"})
		return
	}
	cs.Registry.EmitToUser(req.ReceiverId, "connection_request_received", rsp)
}

func (cs *ChatServer) handleConnectionRespond(c *UserConn, data json.RawMessage) {
	var req request.ConnectionRespondRequest
	if !cs.bind(c, "connection_respond", data, &req) {
		return
	}
	rsp, err := cs.socialSvc.RespondConnection(context.Background(), &req)
	if err != nil {
		zap.L().Error("处理连接答复失败", zap.Error(err))
		c.Emit("_error", respond.ErrorRespond{Event: "connection_respond", Message: "failed to respond to connection request"})
		return
	}
	// 拒绝时记录已删除，无需通知任何人
	if rsp != nil {
		cs.Registry.EmitToUser(rsp.SenderId, "connection_accepted", rsp)
	}
}

// persistDirectMessage 代理消费侧：落库、回执、扇出、推送
func (cs *ChatServer) persistDirectMessage(data json.RawMessage, origin string) {
	var req request.SendMessageRequest
	if err := json.Unmarshal(data, &req); err != nil {
		zap.L().Error("send_message 载荷解析失败", zap.Error(err))
		return
	}
	if _, err := cs.SendDirect(&req, origin); err != nil {
		zap.L().Error("消息落库失败", zap.Error(err))
		cs.emitToCaller(origin, req.SenderId, "_error",
			respond.ErrorRespond{Event: "send_message", Message: "failed to save message"})
	}
}

// SendDirect 持久化一条单聊消息并完成回执、扇出与推送
// socket 的代理消费侧与 REST 发消息入口共用这条链路，REST 侧
// 没有发起会话，originSessionId 传空，回执广播给发送方在线会话；
// 推送不看在线状态，前台在线也推，由客户端自行去重
func (cs *ChatServer) SendDirect(req *request.SendMessageRequest, originSessionId string) (*model.Message, error) {
	msg, err := cs.messageSvc.SaveDirectMessage(req)
	if err != nil {
		return nil, err
	}

	cs.emitToCaller(originSessionId, req.SenderId, "message_saved", respond.MessageSavedRespond{
		MessageId: msg.Uuid,
		LocalId:   req.LocalId,
		Status:    "saved",
	})
	cs.Registry.EmitToUser(req.ReceiverId, "receive_message", respond.NewMessageRespond(msg))

	senderName := cs.messageSvc.SenderDisplayName(req.SenderId)
	cs.notifier.PushToDevices(context.Background(), req.ReceiverId, senderName, msg.Content, map[string]string{
		"notificationType": notification_type_enum.Message,
		"senderId":         req.SenderId,
		"messageId":        strconv.FormatInt(msg.Uuid, 10),
	})
	return msg, nil
}

// persistGroupMessage 代理消费侧：落库后向群房间扇出
func (cs *ChatServer) persistGroupMessage(data json.RawMessage, origin string) {
	var req request.SendGroupMessageRequest
	if err := json.Unmarshal(data, &req); err != nil {
		zap.L().Error("send_group_message 载荷解析失败", zap.Error(err))
		return
	}
	msg, _, err := cs.messageSvc.SaveGroupMessage(&req)
	if err != nil {
		zap.L().Error("群消息落库失败", zap.Error(err))
		cs.emitToCaller(origin, req.SenderId, "_error",
			respond.ErrorRespond{Event: "send_group_message", Message: "failed to save group message"})
		return
	}
	cs.Registry.EmitToRoom(req.GroupId, "", "receive_group_message", respond.NewGroupMessageRespond(msg))
}
