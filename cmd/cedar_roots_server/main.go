package main

import (
	"context"
	"fmt"
	"log"
	"os"
	"os/signal"
	"syscall"

	"go.uber.org/zap"

	"cedar_roots_server/internal/config"
	dao "cedar_roots_server/internal/dao/mysql"
	myredis "cedar_roots_server/internal/dao/redis"
	"cedar_roots_server/internal/handler"
	"cedar_roots_server/internal/https_server"
	"cedar_roots_server/internal/infrastructure/logger"
	"cedar_roots_server/internal/infrastructure/push"
	"cedar_roots_server/internal/service/chat"
	"cedar_roots_server/pkg/util/jwt"
	"cedar_roots_server/pkg/util/snowflake"
)

func main() {
	// 1. 加载配置
	conf := config.GetConfig()

	// 2. 初始化日志
	if err := logger.Init(&conf.LogConfig, "dev"); err != nil {
		log.Fatalf("init logger failed: %v", err)
	}
	zap.L().Info("日志初始化成功")

	// 3. 初始化数据库
	dao.Init()
	zap.L().Info("数据库初始化成功")

	// 4. 初始化 Redis
	myredis.Init()
	zap.L().Info("Redis 初始化成功")

	// 5. 初始化 JWT 和雪花节点
	jwt.Init(conf.JWTConfig.Secret, conf.JWTConfig.AccessTokenExpiry)
	snowflake.Init()

	// 6. 初始化参数校验翻译器
	if err := handler.InitTrans("en"); err != nil {
		zap.L().Fatal("翻译器初始化失败", zap.Error(err))
	}

	// 7. 初始化推送（关闭时降级为 no-op）
	var sender push.Sender
	if conf.PushConfig.Enabled {
		var err error
		sender, err = push.NewFCMSender(context.Background(), conf.PushConfig.CredentialsFile)
		if err != nil {
			zap.L().Fatal("FCM 初始化失败", zap.Error(err))
		}
		zap.L().Info("FCM 推送初始化成功")
	} else {
		sender = push.NewNoopSender()
		zap.L().Warn("推送已关闭，使用 no-op sender")
	}

	// 8. 初始化 ChatServer
	chatServer := chat.NewChatServer(chat.ChatServerConfig{
		Mode:       conf.KafkaConfig.MessageMode,
		Repos:      dao.Repos,
		Dispatcher: push.NewDispatcher(sender),
	})
	if conf.KafkaConfig.MessageMode == "kafka" {
		chatServer.InitKafka()
	}
	chatServer.Start()
	zap.L().Info("ChatServer 初始化成功", zap.String("mode", conf.KafkaConfig.MessageMode))

	// 9. 初始化 HTTP 服务器并启动
	handlers := handler.NewHandlers(chatServer, dao.Repos)
	engine := https_server.Init(handlers)

	go func() {
		addr := fmt.Sprintf("%s:%d", conf.MainConfig.Host, conf.MainConfig.Port)
		if err := engine.Run(addr); err != nil {
			zap.L().Fatal("server running fault", zap.Error(err))
		}
	}()
	zap.L().Info("服务启动成功")

	// 信号监听，收到后优雅关闭
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	zap.L().Info("关闭服务器...")
	chatServer.Close()
	zap.L().Info("服务器已关闭")
}
