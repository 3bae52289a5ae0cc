package member

import (
	"fmt"
	"time"

	"github.com/google/uuid"
)

// NewMember 构造一个处于pending状态的新成员。
func NewMember(phone, nickname string, now time.Time) (*Member, error) {
	newUUID, err := uuid.NewV7()
	if err != nil {
		return nil, fmt.Errorf("无法生成UUID v7: %w", err)
	}
	if nickname == "" {
		nickname = DefaultNickname(phone)
	}
	return &Member{
		MemberID: newUUID.String(),
		Phone:    phone,
		Nickname: nickname,
		Status:   StatusPending,
		JoinedAt: now,
	}, nil
}

// DefaultNickname 根据号码尾号生成缺省昵称。
func DefaultNickname(phone string) string {
	suffix := phone
	if len(phone) > 4 {
		suffix = phone[len(phone)-4:]
	}
	return "عضو " + suffix
}

// EngagementRateFor 计算互动率百分比。
// 公式: 100 × 累计互动数 / max(1, 累计投稿数 × 期望受众)，上限100。
// 期望受众 = max(1, 当前活跃成员数-1)，即每条投稿理论上触达的接收者数。
// 这是全系统唯一的互动率公式，任何计数变化后都用它重算。
func EngagementRateFor(totalInteractions, totalVideos, activeCount int) int {
	if totalVideos <= 0 {
		return 0
	}
	audience := activeCount - 1
	if audience < 1 {
		audience = 1
	}
	rate := (100*totalInteractions + totalVideos*audience/2) / (totalVideos * audience)
	if rate > 100 {
		rate = 100
	}
	return rate
}

// Recompute 重新计算并写回一个成员的互动率。
// 在TotalVideos或TotalInteractions变化后调用。
func Recompute(store Store, memberID string) error {
	m, err := store.GetByID(memberID)
	if err != nil {
		return err
	}
	if m == nil {
		return fmt.Errorf("成员 %s 不存在", memberID)
	}
	activeCount, err := store.CountActive()
	if err != nil {
		return err
	}
	m.EngagementRate = EngagementRateFor(m.TotalInteractions, m.TotalVideos, activeCount)
	return store.Save(m)
}

// RecordInteraction 给成员累加一次互动并重算互动率。
func RecordInteraction(store Store, memberID string) error {
	m, err := store.GetByID(memberID)
	if err != nil {
		return err
	}
	if m == nil {
		return fmt.Errorf("成员 %s 不存在", memberID)
	}
	m.TotalInteractions++
	activeCount, err := store.CountActive()
	if err != nil {
		return err
	}
	m.EngagementRate = EngagementRateFor(m.TotalInteractions, m.TotalVideos, activeCount)
	return store.Save(m)
}
