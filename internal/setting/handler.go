package setting

import (
	"encoding/json"
	"net/http"

	"github.com/gin-gonic/gin"
)

// Handler 提供配置的管理面板接口。
type Handler struct {
	Store Store
}

// SettingRequestBody 定义了写入配置时的请求体。
type SettingRequestBody struct {
	Key   string          `json:"key" binding:"required"`
	Value json.RawMessage `json:"value" binding:"required"`
}

// GetAll 返回所有配置项。
func (h *Handler) GetAll(c *gin.Context) {
	settings, err := h.Store.All()
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "读取配置失败"})
		return
	}
	c.JSON(http.StatusOK, settings)
}

// GetByKey 返回单个配置项。
func (h *Handler) GetByKey(c *gin.Context) {
	key := c.Param("key")
	raw, found, err := h.Store.GetRaw(key)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "读取配置失败"})
		return
	}
	if !found {
		c.JSON(http.StatusNotFound, gin.H{"error": "配置不存在"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"key": key, "value": json.RawMessage(raw)})
}

// Set 创建或覆盖一个配置项。
func (h *Handler) Set(c *gin.Context) {
	var body SettingRequestBody
	if err := c.ShouldBindJSON(&body); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "请求格式错误: " + err.Error()})
		return
	}
	if err := h.Store.SetRaw(body.Key, string(body.Value)); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "保存配置失败"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"key": body.Key, "value": body.Value})
}
