package botlog

import (
	"fmt"

	"gorm.io/gorm"
)

func migrateDB(db *gorm.DB) error {
	if err := db.AutoMigrate(&BotLog{}); err != nil {
		return fmt.Errorf("无法迁移bot_logs表: %w", err)
	}
	return nil
}

// PrimeModule 迁移审计日志模块的数据库表。
func PrimeModule(db *gorm.DB) error {
	if err := migrateDB(db); err != nil {
		return fmt.Errorf("初始化botlog模块失败: %w", err)
	}
	return nil
}
