// Package dao 提供数据访问层的初始化和全局数据库实例管理
// 负责建立 MySQL 连接、自动迁移表结构、初始化 Repository 层
package dao

import (
	"fmt"

	"cedar_roots_server/internal/config"
	"cedar_roots_server/internal/dao/mysql/repository"
	"cedar_roots_server/internal/model"

	"go.uber.org/zap"
	"gorm.io/driver/mysql"
	"gorm.io/gorm"
)

// GormDB 全局 GORM 数据库实例
var GormDB *gorm.DB

// Repos 全局 Repository 实例集合
// 聚合所有 Repository，供 Service 层通过依赖注入使用
var Repos *repository.Repositories

// Init 初始化数据库连接和 Repository 层
func Init() {
	conf := config.GetConfig()

	// DSN 格式：user:password@tcp(host:port)/database?params
	dsn := fmt.Sprintf("%s:%s@tcp(%s:%d)/%s?charset=utf8mb4&parseTime=True&loc=Local",
		conf.MysqlConfig.User,
		conf.MysqlConfig.Password,
		conf.MysqlConfig.Host,
		conf.MysqlConfig.Port,
		conf.MysqlConfig.DatabaseName,
	)

	db, err := gorm.Open(mysql.Open(dsn), &gorm.Config{})
	if err != nil {
		zap.L().Fatal(err.Error())
	}

	if err := AutoMigrate(db); err != nil {
		zap.L().Fatal(err.Error())
	}

	GormDB = db
	Repos = repository.NewRepositories(db)
}

// AutoMigrate 自动迁移表结构
// 表不存在则创建，字段变更则更新结构；不会删除已有字段或数据
func AutoMigrate(db *gorm.DB) error {
	return db.AutoMigrate(
		&model.UserInfo{},
		&model.Message{},
		&model.GroupInfo{},
		&model.GroupMember{},
		&model.GroupMessage{},
		&model.GroupMessageStatus{},
		&model.FirebaseToken{},
		&model.Notification{},
		&model.Connection{},
		&model.Post{},
		&model.Comment{},
		&model.Like{},
	)
}
