package setting

import (
	"fmt"

	"gorm.io/gorm"
)

// DefaultAllowedURLPrefixes 是内置的链接白名单，
// 也是读取配置失败时的兜底值。
var DefaultAllowedURLPrefixes = []string{
	"https://redzapp.app.link/",
	"https://thexapp.app.link/",
}

// defaultValues 是首次启动时种入的缺省策略。
// 全部可以在运行期通过管理面板修改。
var defaultValues = map[string]interface{}{
	KeyMaxDailyVideos:      3,
	KeyWarningDays:         2,
	KeyAutoRemoveDays:      7,
	KeySleepModeEnabled:    true,
	KeyDistributionDelayMS: 1000,
	KeyBulkMessageDelayMS:  2000,
	KeyAllowedURLPrefixes:  DefaultAllowedURLPrefixes,
	KeyWelcomeMessage: "مرحباً بك في مجموعة ريدز! 🎥\n\nيمكنك إرسال 3 فيديوهات يومياً ويجب التفاعل مع جميع الروابط التي تستقبلها.",
	KeyInstructions:   "",
}

// migrateDB 负责自动迁移配置表结构。
func migrateDB(db *gorm.DB) error {
	if err := db.AutoMigrate(&Setting{}); err != nil {
		return fmt.Errorf("无法迁移setting表: %w", err)
	}
	fmt.Println("Setting数据库表迁移成功。")
	return nil
}

// seedDefaults 为尚不存在的键写入缺省值，已有的值不被覆盖。
func seedDefaults(store Store) error {
	for key, value := range defaultValues {
		_, found, err := store.GetRaw(key)
		if err != nil {
			return fmt.Errorf("读取配置 '%s' 失败: %w", key, err)
		}
		if found {
			continue
		}
		if err := SetValue(store, key, value); err != nil {
			return fmt.Errorf("写入缺省配置 '%s' 失败: %w", key, err)
		}
	}
	return nil
}

// PrimeModule 是setting模块的初始化总入口。
func PrimeModule(db *gorm.DB, store Store) error {
	if err := migrateDB(db); err != nil {
		return err
	}
	return seedDefaults(store)
}
