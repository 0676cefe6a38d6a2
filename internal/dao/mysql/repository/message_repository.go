package repository

import (
	"cedar_roots_server/internal/model"
	"cedar_roots_server/pkg/enum/message/delivery_state_enum"

	"gorm.io/gorm"
)

type messageRepository struct {
	db *gorm.DB
}

// NewMessageRepository 创建私聊消息 Repository
func NewMessageRepository(db *gorm.DB) MessageRepository {
	return &messageRepository{db: db}
}

// Create 创建消息
func (r *messageRepository) Create(message *model.Message) error {
	if err := r.db.Create(message).Error; err != nil {
		return wrapDBError(err, "创建消息")
	}
	return nil
}

// FindByUuid 根据雪花 ID 查找消息
func (r *messageRepository) FindByUuid(uuid int64) (*model.Message, error) {
	var message model.Message
	if err := r.db.Where("uuid = ?", uuid).First(&message).Error; err != nil {
		return nil, wrapDBErrorf(err, "查询消息 uuid=%d", uuid)
	}
	return &message, nil
}

// FindConversationHistory 查找用户参与的全部消息，按发送时间倒序
func (r *messageRepository) FindConversationHistory(userId string) ([]model.Message, error) {
	var messages []model.Message
	if err := r.db.Where("sender_id = ? OR receiver_id = ?", userId, userId).
		Order("sent_at DESC").Find(&messages).Error; err != nil {
		return nil, wrapDBErrorf(err, "查询会话历史 user=%s", userId)
	}
	return messages, nil
}

// FindBetweenPage 查找两人之间的消息，按发送时间倒序分页
func (r *messageRepository) FindBetweenPage(userOneId, userTwoId string, offset, limit int) ([]model.Message, error) {
	var messages []model.Message
	if err := r.db.Where("(sender_id = ? AND receiver_id = ?) OR (sender_id = ? AND receiver_id = ?)",
		userOneId, userTwoId, userTwoId, userOneId).
		Order("sent_at DESC").Offset(offset).Limit(limit).
		Find(&messages).Error; err != nil {
		return nil, wrapDBErrorf(err, "查询消息分页 user1=%s user2=%s", userOneId, userTwoId)
	}
	return messages, nil
}

// FindUnreadBetween 查找 from 发给 to 的所有未读（非 seen）消息
func (r *messageRepository) FindUnreadBetween(fromId, toId string) ([]model.Message, error) {
	var messages []model.Message
	if err := r.db.Where("sender_id = ? AND receiver_id = ? AND read_status <> ?",
		fromId, toId, delivery_state_enum.Seen).
		Find(&messages).Error; err != nil {
		return nil, wrapDBErrorf(err, "查询未读消息 from=%s to=%s", fromId, toId)
	}
	return messages, nil
}

// MarkDelivered 将精确匹配 (uuid, sender, receiver) 且仍为 sent 的消息置为 delivered
// 状态只能从 sent 前进，seen 不会被回退；不匹配时返回 false
func (r *messageRepository) MarkDelivered(uuid int64, senderId, receiverId string) (bool, error) {
	res := r.db.Model(&model.Message{}).
		Where("uuid = ? AND sender_id = ? AND receiver_id = ? AND read_status = ?",
			uuid, senderId, receiverId, delivery_state_enum.Sent).
		Update("read_status", delivery_state_enum.Delivered)
	if res.Error != nil {
		return false, wrapDBErrorf(res.Error, "更新投递状态 uuid=%d", uuid)
	}
	return res.RowsAffected > 0, nil
}

// MarkSeenBatch 将 sender -> receiver 方向所有非 seen 消息置为 seen
// 先按同一谓词取出受影响的消息 ID，再用一条 UPDATE 完成批量转移，
// 避免逐行读改写与并发投递确认相互覆盖
func (r *messageRepository) MarkSeenBatch(senderId, receiverId string) ([]int64, error) {
	var uuids []int64
	if err := r.db.Model(&model.Message{}).
		Where("sender_id = ? AND receiver_id = ? AND read_status <> ?",
			senderId, receiverId, delivery_state_enum.Seen).
		Pluck("uuid", &uuids).Error; err != nil {
		return nil, wrapDBErrorf(err, "查询未读消息ID sender=%s receiver=%s", senderId, receiverId)
	}
	if len(uuids) == 0 {
		return []int64{}, nil
	}
	if err := r.db.Model(&model.Message{}).
		Where("sender_id = ? AND receiver_id = ? AND read_status <> ?",
			senderId, receiverId, delivery_state_enum.Seen).
		Update("read_status", delivery_state_enum.Seen).Error; err != nil {
		return nil, wrapDBErrorf(err, "批量置为已读 sender=%s receiver=%s", senderId, receiverId)
	}
	return uuids, nil
}
