// Package device 设备推送 token 的登记与注销
package device

import (
	"cedar_roots_server/internal/dao/mysql/repository"
	"cedar_roots_server/internal/dto/request"
	"cedar_roots_server/internal/model"
	"cedar_roots_server/pkg/errorx"
)

type Service struct {
	repos *repository.Repositories
}

func NewService(repos *repository.Repositories) *Service {
	return &Service{repos: repos}
}

// Register 登记设备 token
// 四个字段缺一不可；以 device_id 为冲突键 upsert，
// 同一设备换用户登录时 token 归属随之转移
func (s *Service) Register(req *request.StoreFcmTokenRequest) error {
	if req.UserId == "" || req.FcmToken == "" || req.DeviceId == "" || req.Platform == "" {
		return errorx.New(errorx.CodeInvalidParam, "user_id、fcm_token、device_id、platform 均不能为空")
	}
	return s.repos.FirebaseToken.Upsert(&model.FirebaseToken{
		UserUuid: req.UserId,
		DeviceId: req.DeviceId,
		FcmToken: req.FcmToken,
		Platform: req.Platform,
	})
}

// Unregister 注销设备 token（退出登录时调用）
// 返回是否真的删掉了记录，记录不存在不算错误
func (s *Service) Unregister(userId, deviceId string) (bool, error) {
	if userId == "" || deviceId == "" {
		return false, errorx.ErrInvalidParam
	}
	rows, err := s.repos.FirebaseToken.DeleteByUserAndDevice(userId, deviceId)
	if err != nil {
		return false, err
	}
	return rows > 0, nil
}

// TokensFor 查用户全部设备的推送 token，扇出用
func (s *Service) TokensFor(userId string) ([]string, error) {
	return s.repos.FirebaseToken.FindTokensByUser(userId)
}
