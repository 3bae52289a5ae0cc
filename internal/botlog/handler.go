package botlog

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
)

// Handler 提供审计日志的管理面板接口。
type Handler struct {
	Store Store
}

// GetRecent 返回最近的审计事件，支持 ?limit= 参数。
func (h *Handler) GetRecent(c *gin.Context) {
	limit := 100
	if raw := c.Query("limit"); raw != "" {
		if parsed, err := strconv.Atoi(raw); err == nil && parsed > 0 {
			limit = parsed
		}
	}
	logs, err := h.Store.Recent(limit)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "读取日志失败"})
		return
	}
	c.JSON(http.StatusOK, logs)
}
