package bot

import (
	"time"

	"github.com/RedzGroup/redz-bot-backend/internal/botlog"
	"github.com/RedzGroup/redz-bot-backend/internal/member"
	"github.com/RedzGroup/redz-bot-backend/pkg/lifecycle"
)

// StartSweeper 启动每日零点的维护任务：清零当日计数，
// 把长期不活跃的成员降级。独立Goroutine，停机时在休眠点退出。
func (s *Service) StartSweeper(handle *lifecycle.Handle) {
	go func() {
		defer handle.Close()
		for {
			now := s.now()
			next := localMidnight(now).Add(24 * time.Hour)
			if err := handle.Sleep(next.Sub(now)); err != nil {
				return
			}
			s.RunDailySweep(s.now())
		}
	}()
}

// RunDailySweep 执行一轮维护。幂等，可从管理接口手动触发。
func (s *Service) RunDailySweep(now time.Time) {
	if err := s.Members.ResetDailyCounts(); err != nil {
		_ = s.Logs.Append(botlog.Event(botlog.TypeError, "",
			"Failed to reset daily counts: "+err.Error(), nil))
	}
	s.sweepInactive(now)
}

// sweepInactive 按最后互动时间降级成员：
// active 超过警告阈值 → warning 并提醒；
// warning 超过移除阈值 → inactive 并告知。
// 从未互动过的按批准时间（JoinedAt）计算。
func (s *Service) sweepInactive(now time.Time) {
	warnAfter := time.Duration(s.Policy.WarningDays()) * 24 * time.Hour
	removeAfter := time.Duration(s.Policy.AutoRemoveDays()) * 24 * time.Hour

	lastSeen := func(m *member.Member) time.Time {
		if m.LastInteractionAt != nil {
			return *m.LastInteractionAt
		}
		return m.JoinedAt
	}

	active, err := s.Members.ListByStatus(member.StatusActive)
	if err == nil {
		for i := range active {
			m := &active[i]
			seen := lastSeen(m)
			if seen.IsZero() || now.Sub(seen) < warnAfter {
				continue
			}
			m.Status = member.StatusWarning
			if err := s.Members.Save(m); err != nil {
				continue
			}
			s.send(m.MemberID, m.Phone, msgInactivityWarning)
		}
	}

	warned, err := s.Members.ListByStatus(member.StatusWarning)
	if err == nil {
		for i := range warned {
			m := &warned[i]
			seen := lastSeen(m)
			if seen.IsZero() || now.Sub(seen) < removeAfter {
				continue
			}
			m.Status = member.StatusInactive
			if err := s.Members.Save(m); err != nil {
				continue
			}
			s.send(m.MemberID, m.Phone, msgRemovedForInactivity)
			_ = s.Logs.Append(botlog.Event(botlog.TypeMemberRemoved, m.MemberID,
				"Member deactivated for inactivity: "+m.Phone, nil))
		}
	}
}
