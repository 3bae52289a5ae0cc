package interaction

import (
	"net/http"

	"github.com/RedzGroup/redz-bot-backend/internal/member"

	"github.com/gin-gonic/gin"
)

// Handler 提供互动记录的查询与上报接口。
type Handler struct {
	Store   Store
	Members member.Store
}

// RequestBody 是前端上报互动的请求体。
type RequestBody struct {
	MemberID string `json:"memberId" binding:"required"`
	VideoID  string `json:"videoId" binding:"required"`
	Type     string `json:"type" binding:"required"`
}

// Create 上报一次互动（view/share，点击走短链跳转）。
func (h *Handler) Create(c *gin.Context) {
	var body RequestBody
	if err := c.ShouldBindJSON(&body); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "请求格式错误: " + err.Error()})
		return
	}
	if body.Type != TypeClick && body.Type != TypeView && body.Type != TypeShare {
		c.JSON(http.StatusBadRequest, gin.H{"error": "无效的互动类型: " + body.Type})
		return
	}

	i := &Interaction{MemberID: body.MemberID, VideoID: body.VideoID, Type: body.Type}
	if err := h.Store.Create(i); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "保存互动失败"})
		return
	}
	if err := member.RecordInteraction(h.Members, body.MemberID); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "更新互动率失败"})
		return
	}
	c.JSON(http.StatusCreated, i)
}

// GetByMember 返回指定成员的互动记录。
func (h *Handler) GetByMember(c *gin.Context) {
	out, err := h.Store.ListByMember(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "读取互动失败"})
		return
	}
	c.JSON(http.StatusOK, out)
}

// GetByVideo 返回指定视频的互动记录。
func (h *Handler) GetByVideo(c *gin.Context) {
	out, err := h.Store.ListByVideo(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "读取互动失败"})
		return
	}
	c.JSON(http.StatusOK, out)
}
