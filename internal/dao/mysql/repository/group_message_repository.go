package repository

import (
	"cedar_roots_server/internal/model"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type groupMessageRepository struct {
	db *gorm.DB
}

// NewGroupMessageRepository 创建群消息 Repository
func NewGroupMessageRepository(db *gorm.DB) GroupMessageRepository {
	return &groupMessageRepository{db: db}
}

func (r *groupMessageRepository) Create(message *model.GroupMessage) error {
	if err := r.db.Create(message).Error; err != nil {
		return wrapDBError(err, "创建群消息")
	}
	return nil
}

// FindByGroupUuids 查找多个群组的消息，按发送时间倒序
func (r *groupMessageRepository) FindByGroupUuids(groupUuids []string) ([]model.GroupMessage, error) {
	if len(groupUuids) == 0 {
		return []model.GroupMessage{}, nil
	}
	var messages []model.GroupMessage
	if err := r.db.Where("group_uuid IN ?", groupUuids).
		Order("sent_at DESC").Find(&messages).Error; err != nil {
		return nil, wrapDBError(err, "查询群消息")
	}
	return messages, nil
}

type groupMessageStatusRepository struct {
	db *gorm.DB
}

// NewGroupMessageStatusRepository 创建群消息已读状态 Repository
func NewGroupMessageStatusRepository(db *gorm.DB) GroupMessageStatusRepository {
	return &groupMessageStatusRepository{db: db}
}

// Upsert 写入/更新 (消息, 成员) 的已读标记
// 复合唯一键 (group_message_uuid, user_uuid) 冲突时只更新 read，幂等
func (r *groupMessageStatusRepository) Upsert(status *model.GroupMessageStatus) error {
	if err := r.db.Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "group_message_uuid"}, {Name: "user_uuid"}},
		DoUpdates: clause.AssignmentColumns([]string{"read", "updated_at"}),
	}).Create(status).Error; err != nil {
		return wrapDBErrorf(err, "更新群消息已读状态 msg=%d user=%s", status.GroupMessageUuid, status.UserUuid)
	}
	return nil
}

// FindByUserAndMessageUuids 查找某成员对一批消息的状态行
func (r *groupMessageStatusRepository) FindByUserAndMessageUuids(userUuid string, messageUuids []int64) ([]model.GroupMessageStatus, error) {
	if len(messageUuids) == 0 {
		return []model.GroupMessageStatus{}, nil
	}
	var statuses []model.GroupMessageStatus
	if err := r.db.Where("user_uuid = ? AND group_message_uuid IN ?", userUuid, messageUuids).
		Find(&statuses).Error; err != nil {
		return nil, wrapDBErrorf(err, "查询群消息已读状态 user=%s", userUuid)
	}
	return statuses, nil
}
