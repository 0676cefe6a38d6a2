package redis

import (
	"context"
	"encoding/json"
	"errors"
	"time"

	"cedar_roots_server/internal/dto/respond"
	"cedar_roots_server/pkg/constants"

	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"
)

// conversationKey 用户会话列表的缓存键
func conversationKey(userId string) string {
	return "conversation_list_" + userId
}

// GetConversationCache 读取用户会话列表缓存，未命中返回 (nil, false)
// Redis 未初始化时（单测环境）视为未命中
func GetConversationCache(ctx context.Context, userId string) ([]respond.ConversationRespond, bool) {
	if redisClient == nil {
		return nil, false
	}
	rspString, err := GetKeyNilIsErr(ctx, conversationKey(userId))
	if err != nil {
		if !errors.Is(err, redis.Nil) {
			zap.L().Error("redis get conversation cache error", zap.Error(err))
		}
		return nil, false
	}
	var list []respond.ConversationRespond
	if err := json.Unmarshal([]byte(rspString), &list); err != nil {
		zap.L().Error("json unmarshal conversation cache error", zap.Error(err))
		return nil, false
	}
	return list, true
}

// UpdateConversationCache 异步写入用户会话列表缓存
func UpdateConversationCache(userId string, list []respond.ConversationRespond) {
	if redisClient == nil {
		return
	}
	SubmitCacheTask(func() {
		jsonBytes, err := json.Marshal(list)
		if err != nil {
			zap.L().Error("json marshal conversation cache error", zap.Error(err))
			return
		}
		if err := SetKeyEx(context.Background(), conversationKey(userId), string(jsonBytes),
			time.Duration(constants.REDIS_TIMEOUT)*time.Minute); err != nil {
			zap.L().Error("redis set conversation cache error", zap.Error(err))
		}
	})
}

// InvalidateConversationCache 异步失效相关用户的会话列表缓存
// 新消息、已读状态变化后调用
func InvalidateConversationCache(userIds ...string) {
	if redisClient == nil {
		return
	}
	keys := make([]string, 0, len(userIds))
	for _, id := range userIds {
		keys = append(keys, conversationKey(id))
	}
	SubmitCacheTask(func() {
		if err := DelKeys(context.Background(), keys...); err != nil {
			zap.L().Error("redis invalidate conversation cache error", zap.Error(err))
		}
	})
}
