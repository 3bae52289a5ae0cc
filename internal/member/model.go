package member

import (
	"time"

	"gorm.io/gorm"
)

// 成员生命周期状态。
// 状态迁移由会话状态机和管理员操作驱动，见internal/bot。
const (
	StatusPending          = "pending"           // 已加入，等待同意条款
	StatusAwaitingApproval = "awaiting_approval" // 已同意，等待管理员批准
	StatusActive           = "active"            // 正式成员，可投稿
	StatusWarning          = "warning"           // 活跃但因不互动被标记
	StatusSuspended        = "suspended"         // 被管理员封禁
	StatusInactive         = "inactive"          // 已拒绝或被移除，可重新加入
)

// Member 定义了群组成员的持久化模型。
// Phone 是业务上的唯一身份，创建后不可变更。
type Member struct {
	gorm.Model

	// MemberID 是成员的业务ID（UUID），对外接口都用它
	MemberID string `gorm:"uniqueIndex;not null;type:varchar(36)" json:"id"`

	// Phone 是成员的电话号码，全局唯一
	Phone string `gorm:"uniqueIndex;not null" json:"phone"`

	// Nickname 是可修改的显示名
	Nickname string `gorm:"not null" json:"nickname"`

	// Status 是成员当前的生命周期状态
	Status string `gorm:"index;not null;default:pending" json:"status"`

	// JoinedAt 是首次加入时间
	JoinedAt time.Time `json:"joinedAt"`

	// DailyVideosCount 是当天已接受的投稿数，每日重置
	DailyVideosCount int `gorm:"not null;default:0" json:"dailyVideosCount"`

	// LastVideoAt 是最近一次投稿时间
	LastVideoAt *time.Time `json:"lastVideoAt"`

	// LastInteractionAt 是最近一次互动时间，不活跃清扫以它为准
	LastInteractionAt *time.Time `json:"lastInteractionAt"`

	// TotalVideos 是累计投稿数
	TotalVideos int `gorm:"not null;default:0" json:"totalVideos"`

	// TotalInteractions 是累计互动数
	TotalInteractions int `gorm:"not null;default:0" json:"totalInteractions"`

	// EngagementRate 是派生的互动率百分比，
	// 每当TotalVideos或TotalInteractions变化时由服务层重算
	EngagementRate int `gorm:"not null;default:0" json:"engagementRate"`
}
