package bot

import (
	"time"

	"github.com/RedzGroup/redz-bot-backend/internal/setting"
	"github.com/RedzGroup/redz-bot-backend/pkg/artext"
)

// 策略兜底值。读取设置失败时使用。
const (
	defaultDailyLimit          = 3
	defaultWarningDays         = 2
	defaultAutoRemoveDays      = 7
	defaultDistributionDelayMS = 1000
	defaultBulkDelayMS         = 2000
)

// Policy 将设置表翻译成运行时决策。所有读取都是实时的，
// 管理面板改动立即生效。
type Policy struct {
	Settings setting.Store
}

// IsSleepWindow 判断now是否处于静默时段（本地0点到7点）。
// 设置读取失败时放行：宁可深夜多收一条，不能白天拒所有人。
func (p *Policy) IsSleepWindow(now time.Time) bool {
	enabled, err := setting.GetBool(p.Settings, setting.KeySleepModeEnabled, true)
	if err != nil {
		return false
	}
	if !enabled {
		return false
	}
	h := now.Hour()
	return h >= 0 && h < 7
}

// IsAdmin 判断号码是否为管理员。比较前双方都做数字归一化。
// 设置读取失败时按非管理员处理。
func (p *Policy) IsAdmin(phone string) bool {
	normalized := artext.NormalizePhone(phone)
	if normalized == "" {
		return false
	}
	for _, key := range []string{setting.KeyAdminPhone, setting.KeyBackupAdminPhone} {
		admin, err := setting.GetString(p.Settings, key, "")
		if err != nil || admin == "" {
			continue
		}
		if artext.NormalizePhone(admin) == normalized {
			return true
		}
	}
	return false
}

// DailyLimit 返回每名成员每天允许提交的视频数。
func (p *Policy) DailyLimit() int {
	limit, err := setting.GetInt(p.Settings, setting.KeyMaxDailyVideos, defaultDailyLimit)
	if err != nil || limit < 0 {
		return defaultDailyLimit
	}
	return limit
}

// AllowedPrefixes 返回允许的链接前缀列表。
// 读取失败时退回内置白名单，避免把正常投稿当外链拒掉。
func (p *Policy) AllowedPrefixes() []string {
	prefixes, err := setting.GetStringSlice(p.Settings, setting.KeyAllowedURLPrefixes,
		setting.DefaultAllowedURLPrefixes)
	if err != nil {
		return setting.DefaultAllowedURLPrefixes
	}
	return prefixes
}

// WarningDays 返回成员多少天无互动后进入警告状态。
func (p *Policy) WarningDays() int {
	days, err := setting.GetInt(p.Settings, setting.KeyWarningDays, defaultWarningDays)
	if err != nil || days <= 0 {
		return defaultWarningDays
	}
	return days
}

// AutoRemoveDays 返回警告状态多少天后自动转为不活跃。
func (p *Policy) AutoRemoveDays() int {
	days, err := setting.GetInt(p.Settings, setting.KeyAutoRemoveDays, defaultAutoRemoveDays)
	if err != nil || days <= 0 {
		return defaultAutoRemoveDays
	}
	return days
}

// DistributionDelay 返回分发时相邻两次发送之间的间隔。
func (p *Policy) DistributionDelay() time.Duration {
	ms, err := setting.GetInt(p.Settings, setting.KeyDistributionDelayMS, defaultDistributionDelayMS)
	if err != nil || ms < 0 {
		ms = defaultDistributionDelayMS
	}
	return time.Duration(ms) * time.Millisecond
}

// BulkMessageDelay 返回群发消息时相邻两次发送之间的间隔。
func (p *Policy) BulkMessageDelay() time.Duration {
	ms, err := setting.GetInt(p.Settings, setting.KeyBulkMessageDelayMS, defaultBulkDelayMS)
	if err != nil || ms < 0 {
		ms = defaultBulkDelayMS
	}
	return time.Duration(ms) * time.Millisecond
}

// WelcomeMessage 返回入群条款文案，未配置时使用内置文案。
func (p *Policy) WelcomeMessage() string {
	msg, err := setting.GetString(p.Settings, setting.KeyWelcomeMessage, "")
	if err != nil || msg == "" {
		return msgTerms
	}
	return msg
}

// Instructions 返回批准后附发的使用说明，可能为空。
func (p *Policy) Instructions() string {
	msg, err := setting.GetString(p.Settings, setting.KeyInstructions, "")
	if err != nil {
		return ""
	}
	return msg
}
