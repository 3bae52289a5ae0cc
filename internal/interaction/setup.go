package interaction

import (
	"fmt"

	"gorm.io/gorm"
)

func migrateDB(db *gorm.DB) error {
	if err := db.AutoMigrate(&Interaction{}); err != nil {
		return fmt.Errorf("无法迁移interactions表: %w", err)
	}
	return nil
}

// PrimeModule 迁移互动模块的数据库表。
func PrimeModule(db *gorm.DB) error {
	if err := migrateDB(db); err != nil {
		return fmt.Errorf("初始化interaction模块失败: %w", err)
	}
	return nil
}
