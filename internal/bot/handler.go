package bot

import (
	"net/http"

	"github.com/gin-gonic/gin"
)

// Handler 暴露机器人的HTTP接口：网关回调和管理操作。
type Handler struct {
	Service *Service
}

// InboundRequestBody 是消息网关回调的请求体。
type InboundRequestBody struct {
	Phone string `json:"phone" binding:"required"`
	Text  string `json:"text"`
}

// Inbound 接收网关推送的入站消息。处理是异步的，立即返回202。
func (h *Handler) Inbound(c *gin.Context) {
	var body InboundRequestBody
	if err := c.ShouldBindJSON(&body); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "请求格式错误: " + err.Error()})
		return
	}
	go h.Service.HandleInbound(body.Phone, body.Text)
	c.JSON(http.StatusAccepted, gin.H{"accepted": true})
}

// GetStatus 返回外发通道的连接状态。
func (h *Handler) GetStatus(c *gin.Context) {
	c.JSON(http.StatusOK, h.Service.Status())
}

// RegisterRequestBody 是管理面板登记成员的请求体。
type RegisterRequestBody struct {
	Phone    string `json:"phone" binding:"required"`
	Nickname string `json:"nickname"`
}

// Register 从管理面板登记新成员并发送入群条款。
func (h *Handler) Register(c *gin.Context) {
	var body RegisterRequestBody
	if err := c.ShouldBindJSON(&body); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "请求格式错误: " + err.Error()})
		return
	}
	created, err := h.Service.RegisterMemberFromWeb(body.Phone, body.Nickname)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "登记成员失败"})
		return
	}
	if !created {
		c.JSON(http.StatusConflict, gin.H{"error": "该号码已登记"})
		return
	}
	c.JSON(http.StatusCreated, gin.H{"success": true})
}

// Approve 批准处于等待审核状态的成员。
func (h *Handler) Approve(c *gin.Context) {
	ok, err := h.Service.ApproveMember(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "批准成员失败"})
		return
	}
	if !ok {
		c.JSON(http.StatusNotFound, gin.H{"error": "成员不存在"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"success": true})
}

// RejectRequestBody 可附带拒绝原因。
type RejectRequestBody struct {
	Reason string `json:"reason"`
}

// Reject 拒绝成员的入群申请。
func (h *Handler) Reject(c *gin.Context) {
	var body RejectRequestBody
	_ = c.ShouldBindJSON(&body)

	ok, err := h.Service.RejectMember(c.Param("id"), body.Reason)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "拒绝成员失败"})
		return
	}
	if !ok {
		c.JSON(http.StatusNotFound, gin.H{"error": "成员不存在"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"success": true})
}

// BulkRequestBody 是群发消息的请求体。
type BulkRequestBody struct {
	Phones  []string `json:"phones" binding:"required"`
	Message string   `json:"message" binding:"required"`
}

// BulkMessage 向一组号码群发同一条消息，同步返回统计。
func (h *Handler) BulkMessage(c *gin.Context) {
	var body BulkRequestBody
	if err := c.ShouldBindJSON(&body); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "请求格式错误: " + err.Error()})
		return
	}
	c.JSON(http.StatusOK, h.Service.SendBulkMessage(body.Phones, body.Message))
}

// Sweep 手动触发一轮每日维护。
func (h *Handler) Sweep(c *gin.Context) {
	h.Service.RunDailySweep(h.Service.now())
	c.JSON(http.StatusOK, gin.H{"success": true})
}
