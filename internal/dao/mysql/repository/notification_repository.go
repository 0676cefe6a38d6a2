package repository

import (
	"cedar_roots_server/internal/model"

	"gorm.io/gorm"
)

type notificationRepository struct {
	db *gorm.DB
}

// NewNotificationRepository 创建通知 Repository
func NewNotificationRepository(db *gorm.DB) NotificationRepository {
	return &notificationRepository{db: db}
}

func (r *notificationRepository) Create(notification *model.Notification) error {
	if err := r.db.Create(notification).Error; err != nil {
		return wrapDBError(err, "创建通知")
	}
	return nil
}

func (r *notificationRepository) FindByUser(userUuid string) ([]model.Notification, error) {
	var notifications []model.Notification
	if err := r.db.Where("user_uuid = ?", userUuid).
		Order("created_at DESC").Find(&notifications).Error; err != nil {
		return nil, wrapDBErrorf(err, "查询通知 user=%s", userUuid)
	}
	return notifications, nil
}

// MarkAllRead 将用户全部通知置为已读
func (r *notificationRepository) MarkAllRead(userUuid string) (int64, error) {
	res := r.db.Model(&model.Notification{}).
		Where("user_uuid = ? AND is_read = ?", userUuid, false).
		Update("is_read", true)
	if res.Error != nil {
		return 0, wrapDBErrorf(res.Error, "通知置为已读 user=%s", userUuid)
	}
	return res.RowsAffected, nil
}
