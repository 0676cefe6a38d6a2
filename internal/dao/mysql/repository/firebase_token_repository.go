package repository

import (
	"cedar_roots_server/internal/model"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type firebaseTokenRepository struct {
	db *gorm.DB
}

// NewFirebaseTokenRepository 创建推送 token Repository
func NewFirebaseTokenRepository(db *gorm.DB) FirebaseTokenRepository {
	return &firebaseTokenRepository{db: db}
}

// Upsert 以 device_id 为冲突键写入
// 同一设备重复注册时最新 token 生效；user_uuid 一并覆盖，
// 即设备换账号登录后 token 归属随之转移（沿用线上行为，见 DESIGN.md）
func (r *firebaseTokenRepository) Upsert(token *model.FirebaseToken) error {
	if err := r.db.Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "device_id"}},
		DoUpdates: clause.AssignmentColumns([]string{"user_uuid", "fcm_token", "platform", "updated_at"}),
	}).Create(token).Error; err != nil {
		return wrapDBErrorf(err, "写入推送token device=%s", token.DeviceId)
	}
	return nil
}

// DeleteByUserAndDevice 删除匹配行，返回删除的行数
// 0 行是正常结果（token 不存在），由调用方区分处理
func (r *firebaseTokenRepository) DeleteByUserAndDevice(userUuid, deviceId string) (int64, error) {
	res := r.db.Unscoped().
		Where("user_uuid = ? AND device_id = ?", userUuid, deviceId).
		Delete(&model.FirebaseToken{})
	if res.Error != nil {
		return 0, wrapDBErrorf(res.Error, "删除推送token user=%s device=%s", userUuid, deviceId)
	}
	return res.RowsAffected, nil
}

// FindTokensByUser 查找用户所有设备的 fcm_token
func (r *firebaseTokenRepository) FindTokensByUser(userUuid string) ([]string, error) {
	var tokens []string
	if err := r.db.Model(&model.FirebaseToken{}).
		Where("user_uuid = ?", userUuid).
		Pluck("fcm_token", &tokens).Error; err != nil {
		return nil, wrapDBErrorf(err, "查询推送token user=%s", userUuid)
	}
	return tokens, nil
}
