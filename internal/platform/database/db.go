package database

import (
	"fmt"
	"log"
	"os"

	"github.com/RedzGroup/redz-bot-backend/internal/platform/config"
	"gorm.io/driver/postgres"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

// DB 是全局的GORM实例，作为所有持久化数据的最终事实来源。
var DB *gorm.DB

// InitDB 初始化数据库连接。
// 部署环境提供DATABASE_URL时使用PostgreSQL，否则退回本地SQLite文件。
func InitDB(cfg config.SqliteConfig) {
	var err error

	newLogger := logger.New(
		log.New(os.Stdout, "\r\n", log.LstdFlags),
		logger.Config{
			SlowThreshold: 0,
			LogLevel:      logger.Silent,
			Colorful:      true,
		},
	)

	gormCfg := &gorm.Config{Logger: newLogger}

	if dsn := os.Getenv("DATABASE_URL"); dsn != "" {
		DB, err = gorm.Open(postgres.Open(dsn), gormCfg)
		if err != nil {
			panic(fmt.Sprintf("连接PostgreSQL失败: %v", err))
		}
		fmt.Println("数据库连接成功 (PostgreSQL)！")
		return
	}

	DB, err = gorm.Open(sqlite.Open(cfg.Path), gormCfg)
	if err != nil {
		panic(fmt.Sprintf("连接SQLite失败: %v", err))
	}
	fmt.Println("数据库连接成功 (SQLite)！")
}
