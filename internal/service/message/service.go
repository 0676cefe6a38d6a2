// Package message 消息核心：单聊/群聊消息的持久化、投递状态推进、
// 会话列表聚合与历史分页
package message

import (
	"context"
	"sort"
	"strings"
	"time"

	"go.uber.org/zap"

	"cedar_roots_server/internal/dao/mysql/repository"
	myredis "cedar_roots_server/internal/dao/redis"
	"cedar_roots_server/internal/dto/request"
	"cedar_roots_server/internal/dto/respond"
	"cedar_roots_server/internal/model"
	"cedar_roots_server/pkg/constants"
	"cedar_roots_server/pkg/enum/message/delivery_state_enum"
	"cedar_roots_server/pkg/errorx"
	"cedar_roots_server/pkg/util/snowflake"
)

type Service struct {
	repos *repository.Repositories
}

func NewService(repos *repository.Repositories) *Service {
	return &Service{repos: repos}
}

// SaveDirectMessage 持久化一条单聊消息
// 服务端生成雪花 ID 和发送时间，初始状态 sent
func (s *Service) SaveDirectMessage(req *request.SendMessageRequest) (*model.Message, error) {
	if strings.TrimSpace(req.SenderId) == "" || strings.TrimSpace(req.ReceiverId) == "" {
		return nil, errorx.New(errorx.CodeInvalidParam, "senderId 和 receiverId 不能为空")
	}
	if req.Content == "" {
		return nil, errorx.New(errorx.CodeInvalidParam, "消息内容不能为空")
	}
	msgType := req.Type
	if msgType == "" {
		msgType = "text"
	}
	msg := &model.Message{
		Uuid:       snowflake.GenerateID(),
		SenderId:   req.SenderId,
		ReceiverId: req.ReceiverId,
		Content:    req.Content,
		Type:       msgType,
		SentAt:     time.Now(),
		ReadStatus: delivery_state_enum.Sent,
	}
	if err := s.repos.Message.Create(msg); err != nil {
		return nil, err
	}
	myredis.InvalidateConversationCache(req.SenderId, req.ReceiverId)
	return msg, nil
}

// RecordDelivered 接收方确认送达
// 只有精确匹配 (uuid, sender, receiver) 且当前为 sent 的消息会被推进，
// 已是 delivered/seen 的消息不回退，返回 false 表示本次确认未改变任何行
func (s *Service) RecordDelivered(messageId int64, senderId, receiverId string) (bool, error) {
	if messageId == 0 || senderId == "" || receiverId == "" {
		return false, errorx.ErrInvalidParam
	}
	updated, err := s.repos.Message.MarkDelivered(messageId, senderId, receiverId)
	if err != nil {
		return false, err
	}
	if updated {
		myredis.InvalidateConversationCache(senderId, receiverId)
	}
	return updated, nil
}

// MarkSeen 接收方批量已读：senderId 发给 receiverId 的全部未读消息
// 一次更新置为 seen，返回受影响的消息 ID，供回告发送方
func (s *Service) MarkSeen(senderId, receiverId string) ([]int64, error) {
	if senderId == "" || receiverId == "" {
		return nil, errorx.ErrInvalidParam
	}
	ids, err := s.repos.Message.MarkSeenBatch(senderId, receiverId)
	if err != nil {
		return nil, err
	}
	if len(ids) > 0 {
		myredis.InvalidateConversationCache(senderId, receiverId)
	}
	return ids, nil
}

// SaveGroupMessage 持久化一条群消息并返回群成员列表（扇出用）
func (s *Service) SaveGroupMessage(req *request.SendGroupMessageRequest) (*model.GroupMessage, []string, error) {
	if req.GroupId == "" || req.SenderId == "" {
		return nil, nil, errorx.New(errorx.CodeInvalidParam, "groupId 和 senderId 不能为空")
	}
	if req.Content == "" {
		return nil, nil, errorx.New(errorx.CodeInvalidParam, "消息内容不能为空")
	}
	memberIds, err := s.repos.GroupMember.FindMemberIdsByGroup(req.GroupId)
	if err != nil {
		return nil, nil, err
	}
	msg := &model.GroupMessage{
		Uuid:      snowflake.GenerateID(),
		GroupUuid: req.GroupId,
		SenderId:  req.SenderId,
		Content:   req.Content,
		SentAt:    time.Now(),
	}
	if err := s.repos.GroupMessage.Create(msg); err != nil {
		return nil, nil, err
	}
	myredis.InvalidateConversationCache(memberIds...)
	return msg, memberIds, nil
}

// MarkGroupMessageRead 登记某成员对某条群消息的已读，幂等
// 已读只影响该成员自己的未读数，失效其本人的会话列表缓存即可
func (s *Service) MarkGroupMessageRead(groupMessageId int64, userId string) error {
	if groupMessageId == 0 || userId == "" {
		return errorx.ErrInvalidParam
	}
	if err := s.repos.GroupMessageStatus.Upsert(&model.GroupMessageStatus{
		GroupMessageUuid: groupMessageId,
		UserUuid:         userId,
		Read:             true,
	}); err != nil {
		return err
	}
	myredis.InvalidateConversationCache(userId)
	return nil
}

// BuildConversations 聚合用户的会话列表（单聊 + 群聊）
// 每个会话带最近一条消息和未读数，按最近消息时间倒序；
// 走 redis 旁路缓存，未命中时查库并异步回填
func (s *Service) BuildConversations(ctx context.Context, userId string) ([]respond.ConversationRespond, error) {
	if userId == "" {
		return nil, errorx.ErrInvalidParam
	}
	if cached, ok := myredis.GetConversationCache(ctx, userId); ok {
		return cached, nil
	}

	direct, err := s.buildDirectConversations(userId)
	if err != nil {
		return nil, err
	}
	group, err := s.buildGroupConversations(userId)
	if err != nil {
		return nil, err
	}

	list := append(direct, group...)
	sort.SliceStable(list, func(i, j int) bool {
		li, lj := list[i].LastMessage, list[j].LastMessage
		if li == nil {
			return false
		}
		if lj == nil {
			return true
		}
		return li.SentAt > lj.SentAt
	})

	myredis.UpdateConversationCache(userId, list)
	return list, nil
}

func (s *Service) buildDirectConversations(userId string) ([]respond.ConversationRespond, error) {
	history, err := s.repos.Message.FindConversationHistory(userId)
	if err != nil {
		return nil, err
	}

	type directAgg struct {
		last   *model.Message
		unread int64
	}
	// history 按发送时间倒序，首次遇到的即该会话最近一条
	aggs := make(map[string]*directAgg)
	order := make([]string, 0)
	for i := range history {
		m := &history[i]
		counterpart := m.SenderId
		if counterpart == userId {
			counterpart = m.ReceiverId
		}
		agg, ok := aggs[counterpart]
		if !ok {
			agg = &directAgg{last: m}
			aggs[counterpart] = agg
			order = append(order, counterpart)
		}
		if m.ReceiverId == userId && m.ReadStatus != delivery_state_enum.Seen {
			agg.unread++
		}
	}

	users, err := s.repos.User.FindByUuids(order)
	if err != nil {
		return nil, err
	}
	userIndex := make(map[string]*model.UserInfo, len(users))
	for i := range users {
		userIndex[users[i].Uuid] = &users[i]
	}

	list := make([]respond.ConversationRespond, 0, len(order))
	for _, counterpart := range order {
		agg := aggs[counterpart]
		conv := respond.ConversationRespond{
			Type: "direct",
			Id:   counterpart,
			LastMessage: &respond.ConversationMessage{
				MessageId:  agg.last.Uuid,
				SenderId:   agg.last.SenderId,
				Content:    agg.last.Content,
				Type:       agg.last.Type,
				SentAt:     agg.last.SentAt.Format(time.RFC3339),
				ReadStatus: agg.last.ReadStatus,
			},
			UnreadCount: agg.unread,
		}
		if u, ok := userIndex[counterpart]; ok {
			conv.Name = u.Nickname
			conv.Avatar = u.Avatar
		} else {
			zap.L().Warn("会话对端用户不存在", zap.String("userId", counterpart))
			conv.Name = counterpart
		}
		list = append(list, conv)
	}
	return list, nil
}

func (s *Service) buildGroupConversations(userId string) ([]respond.ConversationRespond, error) {
	groupUuids, err := s.repos.GroupMember.FindGroupUuidsByUser(userId)
	if err != nil {
		return nil, err
	}
	if len(groupUuids) == 0 {
		return nil, nil
	}
	groups, err := s.repos.Group.FindByUuids(groupUuids)
	if err != nil {
		return nil, err
	}
	msgs, err := s.repos.GroupMessage.FindByGroupUuids(groupUuids)
	if err != nil {
		return nil, err
	}

	msgUuids := make([]int64, 0, len(msgs))
	for i := range msgs {
		msgUuids = append(msgUuids, msgs[i].Uuid)
	}
	statuses, err := s.repos.GroupMessageStatus.FindByUserAndMessageUuids(userId, msgUuids)
	if err != nil {
		return nil, err
	}
	readSet := make(map[int64]struct{}, len(statuses))
	for i := range statuses {
		if statuses[i].Read {
			readSet[statuses[i].GroupMessageUuid] = struct{}{}
		}
	}

	type groupAgg struct {
		last   *model.GroupMessage
		unread int64
	}
	aggs := make(map[string]*groupAgg, len(groupUuids))
	// msgs 按发送时间倒序
	for i := range msgs {
		m := &msgs[i]
		agg, ok := aggs[m.GroupUuid]
		if !ok {
			agg = &groupAgg{last: m}
			aggs[m.GroupUuid] = agg
		}
		if m.SenderId != userId {
			if _, read := readSet[m.Uuid]; !read {
				agg.unread++
			}
		}
	}

	list := make([]respond.ConversationRespond, 0, len(groups))
	for i := range groups {
		g := &groups[i]
		conv := respond.ConversationRespond{
			Type:   "group",
			Id:     g.Uuid,
			Name:   g.Name,
			Avatar: g.Avatar,
		}
		if agg, ok := aggs[g.Uuid]; ok {
			conv.LastMessage = &respond.ConversationMessage{
				MessageId: agg.last.Uuid,
				SenderId:  agg.last.SenderId,
				Content:   agg.last.Content,
				SentAt:    agg.last.SentAt.Format(time.RFC3339),
			}
			conv.UnreadCount = agg.unread
		}
		list = append(list, conv)
	}
	return list, nil
}

// FetchMessagePage 拉取两人之间的历史消息
// 返回请求页与"对端发给我的全部未读"的并集：翻页翻得再深，
// 未读消息也始终在结果里。去重后按发送时间升序
func (s *Service) FetchMessagePage(callerId, counterpartId string, page, limit int) ([]respond.MessageRespond, error) {
	if callerId == "" || counterpartId == "" {
		return nil, errorx.ErrInvalidParam
	}
	if page < 1 {
		page = 1
	}
	if limit < 1 {
		limit = constants.DEFAULT_PAGE_LIMIT
	}

	pageMsgs, err := s.repos.Message.FindBetweenPage(callerId, counterpartId, (page-1)*limit, limit)
	if err != nil {
		return nil, err
	}
	unread, err := s.repos.Message.FindUnreadBetween(counterpartId, callerId)
	if err != nil {
		return nil, err
	}

	seen := make(map[int64]struct{}, len(pageMsgs)+len(unread))
	merged := make([]model.Message, 0, len(pageMsgs)+len(unread))
	for _, batch := range [][]model.Message{unread, pageMsgs} {
		for i := range batch {
			m := batch[i]
			if _, dup := seen[m.Uuid]; dup {
				continue
			}
			seen[m.Uuid] = struct{}{}
			merged = append(merged, m)
		}
	}
	sort.Slice(merged, func(i, j int) bool {
		if merged[i].SentAt.Equal(merged[j].SentAt) {
			return merged[i].Uuid < merged[j].Uuid
		}
		return merged[i].SentAt.Before(merged[j].SentAt)
	})
	return respond.NewMessageRespondList(merged), nil
}

// SenderDisplayName 查发送者昵称，查不到时用兜底名称（推送标题用）
func (s *Service) SenderDisplayName(userId string) string {
	user, err := s.repos.User.FindByUuid(userId)
	if err != nil || user.Nickname == "" {
		return constants.DEFAULT_SENDER_NAME
	}
	return user.Nickname
}
