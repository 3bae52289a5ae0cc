package analytics

import (
	"net/http"
	"time"

	"github.com/RedzGroup/redz-bot-backend/internal/interaction"
	"github.com/RedzGroup/redz-bot-backend/internal/member"
	"github.com/RedzGroup/redz-bot-backend/internal/video"

	"github.com/gin-gonic/gin"
)

// Handler 为管理面板聚合统计数据。只读，直接扫表。
type Handler struct {
	Members      member.Store
	Videos       video.Store
	Interactions interaction.Store
}

// Overview 返回全局概览：成员总数、今日活跃、今日视频、平均互动率。
func (h *Handler) Overview(c *gin.Context) {
	members, err := h.Members.ListAll()
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "读取成员失败"})
		return
	}

	now := time.Now()
	midnight := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, now.Location())

	activeToday := 0
	rateSum, rateCount := 0, 0
	for _, m := range members {
		if m.LastInteractionAt != nil && !m.LastInteractionAt.Before(midnight) {
			activeToday++
		}
		if m.Status == member.StatusActive {
			rateSum += m.EngagementRate
			rateCount++
		}
	}
	avgRate := 0
	if rateCount > 0 {
		avgRate = rateSum / rateCount
	}

	videosToday, err := h.Videos.ListSince(midnight)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "读取视频记录失败"})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"totalMembers":   len(members),
		"activeToday":    activeToday,
		"videosToday":    len(videosToday),
		"engagementRate": avgRate,
	})
}

// MemberStats 返回单个成员的统计。
func (h *Handler) MemberStats(c *gin.Context) {
	m, err := h.Members.GetByID(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "读取成员失败"})
		return
	}
	if m == nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "成员不存在"})
		return
	}

	now := time.Now()
	midnight := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, now.Location())
	todayVideos, err := h.Videos.CountByMemberSince(m.MemberID, midnight)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "读取视频记录失败"})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"totalVideos":       m.TotalVideos,
		"totalInteractions": m.TotalInteractions,
		"engagementRate":    m.EngagementRate,
		"todayVideos":       todayVideos,
	})
}

// TodayInteractions 返回今天的全部互动记录。
func (h *Handler) TodayInteractions(c *gin.Context) {
	now := time.Now()
	midnight := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, now.Location())
	out, err := h.Interactions.ListSince(midnight)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "读取互动失败"})
		return
	}
	c.JSON(http.StatusOK, out)
}
