package shortlink

import (
	"net/http"

	"github.com/RedzGroup/redz-bot-backend/internal/interaction"
	"github.com/RedzGroup/redz-bot-backend/internal/member"
	"github.com/RedzGroup/redz-bot-backend/internal/platform/database"
	"github.com/RedzGroup/redz-bot-backend/internal/video"

	"github.com/gin-gonic/gin"
)

// Handler 处理短链跳转和链接统计。
type Handler struct {
	Service      *Service
	Videos       video.Store
	Members      member.Store
	Interactions interaction.Store
}

// Redirect 解析短链码，记录点击后302到原始链接。
// 统计写入失败不阻塞跳转。
func (h *Handler) Redirect(c *gin.Context) {
	if !database.IsRedisHealthy() {
		c.String(http.StatusServiceUnavailable, "الخدمة غير متاحة حالياً")
		return
	}

	rec, err := h.Service.Resolve(c.Param("code"))
	if err != nil {
		c.String(http.StatusInternalServerError, "حدث خطأ")
		return
	}
	if rec == nil {
		c.String(http.StatusNotFound, "الرابط غير موجود")
		return
	}

	if v, err := h.Videos.GetByID(rec.VideoID); err == nil && v != nil {
		_ = h.Videos.IncrementClicks(v.VideoID)
		_ = h.Interactions.Create(&interaction.Interaction{
			MemberID: v.MemberID,
			VideoID:  v.VideoID,
			Type:     interaction.TypeClick,
		})
		_ = member.RecordInteraction(h.Members, v.MemberID)
	}

	c.Redirect(http.StatusFound, rec.OriginalURL)
}

// GetStats 返回每个视频的链接点击统计。
func (h *Handler) GetStats(c *gin.Context) {
	videos, err := h.Videos.ListAll()
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "读取视频记录失败"})
		return
	}

	type stat struct {
		VideoID     string `json:"videoId"`
		ShortURL    string `json:"shortUrl"`
		OriginalURL string `json:"originalUrl"`
		ClickCount  int    `json:"clickCount"`
	}
	stats := make([]stat, 0, len(videos))
	total := 0
	for _, v := range videos {
		stats = append(stats, stat{
			VideoID:     v.VideoID,
			ShortURL:    v.ShortURL,
			OriginalURL: v.OriginalURL,
			ClickCount:  v.ClickCount,
		})
		total += v.ClickCount
	}
	c.JSON(http.StatusOK, gin.H{"totalClicks": total, "links": stats})
}
