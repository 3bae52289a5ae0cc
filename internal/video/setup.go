package video

import (
	"fmt"

	"gorm.io/gorm"
)

func migrateDB(db *gorm.DB) error {
	if err := db.AutoMigrate(&Video{}); err != nil {
		return fmt.Errorf("无法迁移videos表: %w", err)
	}
	return nil
}

// PrimeModule 迁移视频模块的数据库表。
func PrimeModule(db *gorm.DB) error {
	if err := migrateDB(db); err != nil {
		return fmt.Errorf("初始化video模块失败: %w", err)
	}
	return nil
}
