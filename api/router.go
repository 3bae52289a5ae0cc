package api

import (
	"github.com/RedzGroup/redz-bot-backend/internal/analytics"
	"github.com/RedzGroup/redz-bot-backend/internal/bot"
	"github.com/RedzGroup/redz-bot-backend/internal/botlog"
	"github.com/RedzGroup/redz-bot-backend/internal/interaction"
	"github.com/RedzGroup/redz-bot-backend/internal/member"
	"github.com/RedzGroup/redz-bot-backend/internal/setting"
	"github.com/RedzGroup/redz-bot-backend/internal/shortlink"
	"github.com/RedzGroup/redz-bot-backend/internal/video"

	"github.com/gin-gonic/gin"
)

// Handlers 聚合全部HTTP处理器，由main组装好后注入。
type Handlers struct {
	Bot          *bot.Handler
	Members      *member.Handler
	Videos       *video.Handler
	Interactions *interaction.Handler
	Settings     *setting.Handler
	Logs         *botlog.Handler
	Analytics    *analytics.Handler
	Shortlinks   *shortlink.Handler
}

// SetupRoutes 注册项目的所有API路由
func SetupRoutes(router *gin.Engine, h *Handlers) {
	// 短链跳转在API前缀之外
	router.GET("/s/:code", h.Shortlinks.Redirect)

	api := router.Group("/api")
	{
		botRoutes := api.Group("/bot")
		{
			botRoutes.POST("/inbound", h.Bot.Inbound)
			botRoutes.GET("/status", h.Bot.GetStatus)
			botRoutes.POST("/sweep", h.Bot.Sweep)
		}

		memberRoutes := api.Group("/members")
		{
			memberRoutes.GET("", h.Members.GetAll)
			memberRoutes.GET("/:id", h.Members.GetByID)
			memberRoutes.POST("", h.Bot.Register)
			memberRoutes.PATCH("/:id", h.Members.Update)
			memberRoutes.DELETE("/:id", h.Members.Delete)
			memberRoutes.POST("/:id/approve", h.Bot.Approve)
			memberRoutes.POST("/:id/reject", h.Bot.Reject)
			memberRoutes.POST("/bulk-message", h.Bot.BulkMessage)
			memberRoutes.POST("/reset-daily-counts", h.Members.ResetDailyCounts)
		}

		videoRoutes := api.Group("/videos")
		{
			videoRoutes.GET("", h.Videos.GetAll)
			videoRoutes.GET("/today", h.Videos.GetToday)
			videoRoutes.GET("/member/:id", h.Videos.GetByMember)
		}

		interactionRoutes := api.Group("/interactions")
		{
			interactionRoutes.GET("", h.Analytics.TodayInteractions)
			interactionRoutes.POST("", h.Interactions.Create)
			interactionRoutes.GET("/member/:id", h.Interactions.GetByMember)
			interactionRoutes.GET("/video/:id", h.Interactions.GetByVideo)
		}

		analyticsRoutes := api.Group("/analytics")
		{
			analyticsRoutes.GET("/overview", h.Analytics.Overview)
			analyticsRoutes.GET("/member/:id", h.Analytics.MemberStats)
		}

		settingRoutes := api.Group("/settings")
		{
			settingRoutes.GET("", h.Settings.GetAll)
			settingRoutes.GET("/:key", h.Settings.GetByKey)
			settingRoutes.POST("", h.Settings.Set)
		}

		api.GET("/logs", h.Logs.GetRecent)
		api.GET("/urls/stats", h.Shortlinks.GetStats)
	}
}
