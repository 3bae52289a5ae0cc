package setting

import "gorm.io/gorm"

// Setting 定义了策略配置的键值对表结构。
// Value 保存JSON编码的任意载荷（布尔、整数、字符串或字符串数组），
// 由管理面板修改，核心在每次决策时实时读取。
type Setting struct {
	gorm.Model

	// Key 是配置项的唯一键，例如 "max_daily_videos"
	Key string `gorm:"uniqueIndex;not null;type:varchar(255)" json:"key"`

	// Value 是JSON编码的配置值
	Value string `gorm:"type:text" json:"value"`
}

// 核心会读取的配置键。
const (
	KeyMaxDailyVideos      = "max_daily_videos"
	KeyWarningDays         = "warning_threshold_days"
	KeyAutoRemoveDays      = "auto_remove_days"
	KeySleepModeEnabled    = "sleep_mode_enabled"
	KeyAdminPhone          = "admin_phone"
	KeyBackupAdminPhone    = "backup_admin_phone"
	KeyAllowedURLPrefixes  = "allowed_url_prefixes"
	KeyDistributionDelayMS = "distribution_delay_ms"
	KeyBulkMessageDelayMS  = "bulk_message_delay_ms"
	KeyWelcomeMessage      = "bot_welcome_message"
	KeyInstructions        = "bot_instructions"
)
