package startup

import (
	"fmt"

	"github.com/RedzGroup/redz-bot-backend/internal/botlog"
	"github.com/RedzGroup/redz-bot-backend/internal/interaction"
	"github.com/RedzGroup/redz-bot-backend/internal/member"
	"github.com/RedzGroup/redz-bot-backend/internal/setting"
	"github.com/RedzGroup/redz-bot-backend/internal/shortlink"
	"github.com/RedzGroup/redz-bot-backend/internal/video"

	"gorm.io/gorm"
)

// Modules 聚合初始化和缓存重建需要的全部依赖。
type Modules struct {
	DB         *gorm.DB
	Settings   setting.Store
	Members    member.Store
	Videos     video.Store
	Shortlinks *shortlink.Service
}

// InitializeApplication 执行启动时的全部初始化：
// 建表、写入默认设置、预热Redis缓存。
func (m *Modules) InitializeApplication() error {
	fmt.Println("开始应用初始化...")

	if err := setting.PrimeModule(m.DB, m.Settings); err != nil {
		return err
	}
	if err := member.PrimeModule(m.DB, m.Members); err != nil {
		return err
	}
	if err := video.PrimeModule(m.DB); err != nil {
		return err
	}
	if err := interaction.PrimeModule(m.DB); err != nil {
		return err
	}
	if err := botlog.PrimeModule(m.DB); err != nil {
		return err
	}

	fmt.Println("应用初始化完成！")
	return nil
}

// RebuildCache 在运行时从数据库热重建全部Redis缓存。
// Redis重启后由健康检查器触发。
func (m *Modules) RebuildCache() error {
	fmt.Println("开始缓存热重建...")

	if err := member.WarmupCache(m.Members); err != nil {
		return err
	}
	if err := m.Shortlinks.WarmupCache(m.Videos); err != nil {
		return err
	}

	fmt.Println("缓存热重建完成。")
	return nil
}
