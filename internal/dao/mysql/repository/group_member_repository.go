package repository

import (
	"cedar_roots_server/internal/model"

	"gorm.io/gorm"
)

type groupMemberRepository struct {
	db *gorm.DB
}

// NewGroupMemberRepository 创建群成员 Repository
func NewGroupMemberRepository(db *gorm.DB) GroupMemberRepository {
	return &groupMemberRepository{db: db}
}

// FindGroupUuidsByUser 查找用户加入的所有群组 UUID
func (r *groupMemberRepository) FindGroupUuidsByUser(userUuid string) ([]string, error) {
	var groupUuids []string
	if err := r.db.Model(&model.GroupMember{}).
		Where("user_uuid = ?", userUuid).
		Pluck("group_uuid", &groupUuids).Error; err != nil {
		return nil, wrapDBErrorf(err, "查询用户群组 user=%s", userUuid)
	}
	return groupUuids, nil
}

// FindMemberIdsByGroup 查找群组的所有成员 UUID
func (r *groupMemberRepository) FindMemberIdsByGroup(groupUuid string) ([]string, error) {
	var userUuids []string
	if err := r.db.Model(&model.GroupMember{}).
		Where("group_uuid = ?", groupUuid).
		Pluck("user_uuid", &userUuids).Error; err != nil {
		return nil, wrapDBErrorf(err, "查询群成员 group=%s", groupUuid)
	}
	return userUuids, nil
}

func (r *groupMemberRepository) Create(member *model.GroupMember) error {
	if err := r.db.Create(member).Error; err != nil {
		return wrapDBError(err, "创建群成员")
	}
	return nil
}
