// Package repository 定义数据访问层接口和聚合结构
// 采用 Repository 模式将数据访问逻辑与业务逻辑分离
// 所有 Repository 接口在此文件定义，具体实现在各自的文件中
package repository

import (
	"errors"

	"cedar_roots_server/internal/model"
	"cedar_roots_server/pkg/errorx"

	"gorm.io/gorm"
)

// wrapDBError 包装数据库错误
// ErrRecordNotFound -> CodeNotFound，其他 -> CodeDBError
func wrapDBError(err error, msg string) error {
	if err == nil {
		return nil
	}
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return errorx.Wrap(err, errorx.CodeNotFound, msg)
	}
	return errorx.Wrap(err, errorx.CodeDBError, msg)
}

// wrapDBErrorf 包装数据库错误（支持格式化消息）
func wrapDBErrorf(err error, format string, args ...any) error {
	if err == nil {
		return nil
	}
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return errorx.Wrapf(err, errorx.CodeNotFound, format, args...)
	}
	return errorx.Wrapf(err, errorx.CodeDBError, format, args...)
}

// ==================== Repository 接口定义 ====================

// UserRepository 用户数据访问接口
// 用户生命周期属于外部模块，这里只读身份信息
type UserRepository interface {
	// FindByUuid 根据 UUID 查找用户
	FindByUuid(uuid string) (*model.UserInfo, error)
	// FindByUuids 批量根据 UUID 查找用户
	FindByUuids(uuids []string) ([]model.UserInfo, error)
	// Create 创建用户（测试和数据导入使用）
	Create(user *model.UserInfo) error
}

// MessageRepository 私聊消息数据访问接口
type MessageRepository interface {
	// Create 创建消息
	Create(message *model.Message) error
	// FindByUuid 根据雪花 ID 查找消息
	FindByUuid(uuid int64) (*model.Message, error)
	// FindConversationHistory 查找用户参与的全部消息，按发送时间倒序
	FindConversationHistory(userId string) ([]model.Message, error)
	// FindBetweenPage 查找两人之间的消息，按发送时间倒序分页
	FindBetweenPage(userOneId, userTwoId string, offset, limit int) ([]model.Message, error)
	// FindUnreadBetween 查找 from 发给 to 的所有未读（非 seen）消息
	FindUnreadBetween(fromId, toId string) ([]model.Message, error)
	// MarkDelivered 将 (uuid, sender, receiver) 精确匹配且状态为 sent 的消息
	// 置为 delivered；不匹配时返回 false（幂等，不报错）
	MarkDelivered(uuid int64, senderId, receiverId string) (bool, error)
	// MarkSeenBatch 将 sender -> receiver 方向所有非 seen 消息一条更新语句
	// 置为 seen，返回受影响的消息雪花 ID 列表
	MarkSeenBatch(senderId, receiverId string) ([]int64, error)
}

// GroupRepository 群组数据访问接口
type GroupRepository interface {
	FindByUuid(uuid string) (*model.GroupInfo, error)
	FindByUuids(uuids []string) ([]model.GroupInfo, error)
	Create(group *model.GroupInfo) error
}

// GroupMemberRepository 群成员数据访问接口
type GroupMemberRepository interface {
	// FindGroupUuidsByUser 查找用户加入的所有群组 UUID
	FindGroupUuidsByUser(userUuid string) ([]string, error)
	// FindMemberIdsByGroup 查找群组的所有成员 UUID
	FindMemberIdsByGroup(groupUuid string) ([]string, error)
	Create(member *model.GroupMember) error
}

// GroupMessageRepository 群消息数据访问接口
type GroupMessageRepository interface {
	Create(message *model.GroupMessage) error
	// FindByGroupUuids 查找多个群组的消息，按发送时间倒序
	FindByGroupUuids(groupUuids []string) ([]model.GroupMessage, error)
}

// GroupMessageStatusRepository 群消息逐成员已读状态
type GroupMessageStatusRepository interface {
	// Upsert 写入/更新 (消息, 成员) 的已读标记，幂等
	Upsert(status *model.GroupMessageStatus) error
	// FindByUserAndMessageUuids 查找某成员对一批消息的状态行
	FindByUserAndMessageUuids(userUuid string, messageUuids []int64) ([]model.GroupMessageStatus, error)
}

// FirebaseTokenRepository 设备推送 token 数据访问接口
type FirebaseTokenRepository interface {
	// Upsert 以 device_id 为冲突键写入，同设备最新 token 生效
	Upsert(token *model.FirebaseToken) error
	// DeleteByUserAndDevice 删除匹配行，返回删除的行数
	DeleteByUserAndDevice(userUuid, deviceId string) (int64, error)
	// FindTokensByUser 查找用户所有设备的 fcm_token
	FindTokensByUser(userUuid string) ([]string, error)
}

// NotificationRepository 通知记录数据访问接口
type NotificationRepository interface {
	Create(notification *model.Notification) error
	FindByUser(userUuid string) ([]model.Notification, error)
	// MarkAllRead 将用户全部通知置为已读，返回受影响行数
	MarkAllRead(userUuid string) (int64, error)
}

// ConnectionRepository 连接请求数据访问接口
type ConnectionRepository interface {
	Create(connection *model.Connection) error
	FindByID(id uint) (*model.Connection, error)
	UpdateStatus(id uint, status string) error
	Delete(id uint) error
}

// PostRepository 帖子数据访问接口（仅通知流程需要）
type PostRepository interface {
	FindByUuid(uuid string) (*model.Post, error)
	Create(post *model.Post) error
}

// CommentRepository 评论数据访问接口
type CommentRepository interface {
	Create(comment *model.Comment) error
}

// LikeRepository 点赞数据访问接口
type LikeRepository interface {
	FindByPostAndUser(postUuid, userUuid string) (*model.Like, error)
	Create(like *model.Like) error
	Delete(postUuid, userUuid string) error
}

// ==================== Repository 聚合 ====================

// Repositories 聚合所有 Repository 实例
// 作为依赖注入的入口，Service 层通过此结构访问数据层
type Repositories struct {
	db                 *gorm.DB
	User               UserRepository
	Message            MessageRepository
	Group              GroupRepository
	GroupMember        GroupMemberRepository
	GroupMessage       GroupMessageRepository
	GroupMessageStatus GroupMessageStatusRepository
	FirebaseToken      FirebaseTokenRepository
	Notification       NotificationRepository
	Connection         ConnectionRepository
	Post               PostRepository
	Comment            CommentRepository
	Like               LikeRepository
}

// NewRepositories 创建所有 Repository 实例
func NewRepositories(db *gorm.DB) *Repositories {
	return &Repositories{
		db:                 db,
		User:               NewUserRepository(db),
		Message:            NewMessageRepository(db),
		Group:              NewGroupRepository(db),
		GroupMember:        NewGroupMemberRepository(db),
		GroupMessage:       NewGroupMessageRepository(db),
		GroupMessageStatus: NewGroupMessageStatusRepository(db),
		FirebaseToken:      NewFirebaseTokenRepository(db),
		Notification:       NewNotificationRepository(db),
		Connection:         NewConnectionRepository(db),
		Post:               NewPostRepository(db),
		Comment:            NewCommentRepository(db),
		Like:               NewLikeRepository(db),
	}
}

// DB 返回底层 GORM 实例（测试用）
func (r *Repositories) DB() *gorm.DB {
	return r.db
}
