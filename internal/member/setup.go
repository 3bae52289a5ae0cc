package member

import (
	"fmt"

	"gorm.io/gorm"
)

// migrateDB 负责自动迁移成员表结构。
func migrateDB(db *gorm.DB) error {
	if err := db.AutoMigrate(&Member{}); err != nil {
		return fmt.Errorf("无法迁移member表: %w", err)
	}
	fmt.Println("Member数据库表迁移成功。")
	return nil
}

// PrimeModule 是member模块的初始化总入口。
func PrimeModule(db *gorm.DB, store Store) error {
	if err := migrateDB(db); err != nil {
		return err
	}
	if err := WarmupCache(store); err != nil {
		return err
	}
	return nil
}
