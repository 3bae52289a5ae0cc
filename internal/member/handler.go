package member

import (
	"net/http"

	"github.com/gin-gonic/gin"
)

// Handler 提供成员目录的管理面板接口。
// 创建成员走bot服务（需要发送欢迎消息），不在这里。
type Handler struct {
	Store Store
}

var validStatuses = map[string]bool{
	StatusPending:          true,
	StatusAwaitingApproval: true,
	StatusActive:           true,
	StatusWarning:          true,
	StatusSuspended:        true,
	StatusInactive:         true,
}

// UpdateRequestBody 定义了管理面板可以修改的字段。
type UpdateRequestBody struct {
	Nickname *string `json:"nickname"`
	Status   *string `json:"status"`
}

// GetAll 返回全部成员。
func (h *Handler) GetAll(c *gin.Context) {
	members, err := h.Store.ListAll()
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "读取成员失败"})
		return
	}
	c.JSON(http.StatusOK, members)
}

// GetByID 返回单个成员。
func (h *Handler) GetByID(c *gin.Context) {
	m, err := h.Store.GetByID(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "读取成员失败"})
		return
	}
	if m == nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "成员不存在"})
		return
	}
	c.JSON(http.StatusOK, m)
}

// Update 修改成员的昵称或状态。
func (h *Handler) Update(c *gin.Context) {
	var body UpdateRequestBody
	if err := c.ShouldBindJSON(&body); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "请求格式错误: " + err.Error()})
		return
	}

	m, err := h.Store.GetByID(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "读取成员失败"})
		return
	}
	if m == nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "成员不存在"})
		return
	}

	if body.Nickname != nil {
		m.Nickname = *body.Nickname
	}
	if body.Status != nil {
		if !validStatuses[*body.Status] {
			c.JSON(http.StatusBadRequest, gin.H{"error": "无效的成员状态: " + *body.Status})
			return
		}
		m.Status = *body.Status
	}

	if err := h.Store.Save(m); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "保存成员失败"})
		return
	}
	c.JSON(http.StatusOK, m)
}

// Delete 删除成员（管理员显式操作，唯一的销毁路径）。
func (h *Handler) Delete(c *gin.Context) {
	m, err := h.Store.GetByID(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "读取成员失败"})
		return
	}
	if m == nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "成员不存在"})
		return
	}

	ok, err := h.Store.Delete(m.MemberID)
	if err != nil || !ok {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "删除成员失败"})
		return
	}
	UncachePhone(m.Phone)
	c.JSON(http.StatusOK, gin.H{"success": true})
}

// ResetDailyCounts 将所有成员的当日投稿计数清零。
func (h *Handler) ResetDailyCounts(c *gin.Context) {
	if err := h.Store.ResetDailyCounts(); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "重置计数失败"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"success": true, "message": "当日投稿计数已重置"})
}
