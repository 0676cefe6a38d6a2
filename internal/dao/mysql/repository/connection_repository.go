package repository

import (
	"cedar_roots_server/internal/model"

	"gorm.io/gorm"
)

type connectionRepository struct {
	db *gorm.DB
}

// NewConnectionRepository 创建连接请求 Repository
func NewConnectionRepository(db *gorm.DB) ConnectionRepository {
	return &connectionRepository{db: db}
}

func (r *connectionRepository) Create(connection *model.Connection) error {
	if err := r.db.Create(connection).Error; err != nil {
		return wrapDBError(err, "创建连接请求")
	}
	return nil
}

func (r *connectionRepository) FindByID(id uint) (*model.Connection, error) {
	var connection model.Connection
	if err := r.db.First(&connection, id).Error; err != nil {
		return nil, wrapDBErrorf(err, "查询连接请求 id=%d", id)
	}
	return &connection, nil
}

func (r *connectionRepository) UpdateStatus(id uint, status string) error {
	if err := r.db.Model(&model.Connection{}).
		Where("id = ?", id).
		Update("status", status).Error; err != nil {
		return wrapDBErrorf(err, "更新连接请求状态 id=%d", id)
	}
	return nil
}

// Delete 物理删除（拒绝连接请求时调用）
func (r *connectionRepository) Delete(id uint) error {
	if err := r.db.Unscoped().Delete(&model.Connection{}, id).Error; err != nil {
		return wrapDBErrorf(err, "删除连接请求 id=%d", id)
	}
	return nil
}
