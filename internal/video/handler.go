package video

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
)

// Handler 提供视频记录的查询接口。
type Handler struct {
	Store Store
}

// GetAll 返回全部视频记录，最新的在前。
func (h *Handler) GetAll(c *gin.Context) {
	videos, err := h.Store.ListAll()
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "读取视频记录失败"})
		return
	}
	c.JSON(http.StatusOK, videos)
}

// GetToday 返回本地时区今天零点以来的视频。
func (h *Handler) GetToday(c *gin.Context) {
	now := time.Now()
	midnight := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, now.Location())
	videos, err := h.Store.ListSince(midnight)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "读取视频记录失败"})
		return
	}
	c.JSON(http.StatusOK, videos)
}

// GetByMember 返回指定成员提交的全部视频。
func (h *Handler) GetByMember(c *gin.Context) {
	videos, err := h.Store.ListByMember(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "读取视频记录失败"})
		return
	}
	c.JSON(http.StatusOK, videos)
}
