package main

import (
	"fmt"
	"net/http"
	"time"

	"github.com/RedzGroup/redz-bot-backend/api"
	"github.com/RedzGroup/redz-bot-backend/internal/analytics"
	"github.com/RedzGroup/redz-bot-backend/internal/bot"
	"github.com/RedzGroup/redz-bot-backend/internal/botlog"
	"github.com/RedzGroup/redz-bot-backend/internal/interaction"
	"github.com/RedzGroup/redz-bot-backend/internal/member"
	"github.com/RedzGroup/redz-bot-backend/internal/platform/config"
	"github.com/RedzGroup/redz-bot-backend/internal/platform/database"
	"github.com/RedzGroup/redz-bot-backend/internal/platform/health"
	"github.com/RedzGroup/redz-bot-backend/internal/platform/shutdown"
	"github.com/RedzGroup/redz-bot-backend/internal/platform/startup"
	"github.com/RedzGroup/redz-bot-backend/internal/setting"
	"github.com/RedzGroup/redz-bot-backend/internal/shortlink"
	"github.com/RedzGroup/redz-bot-backend/internal/video"
	"github.com/RedzGroup/redz-bot-backend/pkg/lifecycle"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/joho/godotenv"
)

func main() {
	// .env缺失不是错误，生产环境直接用真实环境变量
	_ = godotenv.Load()

	if _, err := config.LoadConfig(); err != nil {
		panic(fmt.Sprintf("加载配置失败: %v", err))
	}
	cfg := config.Cfg

	database.InitDB(cfg.Database.Sqlite)
	database.InitRedis(cfg.Database.Redis)

	// 1. 阻塞式获取初始Run ID
	health.InitializeRunID()

	// 2. 构造各模块的存储
	settingStore := setting.NewGormStore(database.DB)
	memberStore := member.NewGormStore(database.DB)
	videoStore := video.NewGormStore(database.DB)
	interactionStore := interaction.NewGormStore(database.DB)
	logStore := botlog.NewGormStore(database.DB)
	shortlinks := shortlink.NewService(cfg.Server.BaseURL)

	modules := &startup.Modules{
		DB:         database.DB,
		Settings:   settingStore,
		Members:    memberStore,
		Videos:     videoStore,
		Shortlinks: shortlinks,
	}

	// 3. 建表、默认设置、缓存预热
	if err := modules.InitializeApplication(); err != nil {
		panic(fmt.Sprintf("应用初始化失败，无法启动: %v", err))
	}
	if err := shortlinks.WarmupCache(videoStore); err != nil {
		fmt.Printf("警告: 短链缓存预热失败: %v\n", err)
	}

	// 4. 生命周期管理：业务走优雅通道，健康检查走强制通道
	gracefulManager := lifecycle.NewManager()
	forcefulManager := lifecycle.NewManager()

	botHandle, err := gracefulManager.NewServiceHandle("bot-core")
	if err != nil {
		panic(err)
	}
	sweeperHandle, err := gracefulManager.NewServiceHandle("daily-sweeper")
	if err != nil {
		panic(err)
	}
	healthHandle, err := forcefulManager.NewServiceHandle("redis-health-checker")
	if err != nil {
		panic(err)
	}

	channel := bot.NewGatewayChannel(cfg.Gateway.URL,
		time.Duration(cfg.Gateway.SendTimeoutMS)*time.Millisecond)

	botService := bot.NewService(
		memberStore, videoStore, interactionStore, logStore,
		settingStore, channel, shortlinks, botHandle,
	)
	botService.Start()
	botService.StartSweeper(sweeperHandle)

	// 5. 启动后先做一次完整健康检查，再常驻后台
	fmt.Println("正在执行启动后健康检查...")
	health.PerformCheck(modules)
	health.StartRedisHealthCheck(healthHandle, modules)

	r := gin.Default()
	r.Use(cors.New(cors.Config{
		AllowOrigins:     cfg.Server.Cors.AllowedOrigins,
		AllowMethods:     []string{"GET", "POST", "PATCH", "DELETE", "OPTIONS"},
		AllowHeaders:     []string{"Origin", "Content-Type", "Authorization"},
		ExposeHeaders:    []string{"Content-Length"},
		AllowCredentials: true,
		MaxAge:           12 * time.Hour,
	}))

	api.SetupRoutes(r, &api.Handlers{
		Bot:          &bot.Handler{Service: botService},
		Members:      &member.Handler{Store: memberStore},
		Videos:       &video.Handler{Store: videoStore},
		Interactions: &interaction.Handler{Store: interactionStore, Members: memberStore},
		Settings:     &setting.Handler{Store: settingStore},
		Logs:         &botlog.Handler{Store: logStore},
		Analytics: &analytics.Handler{
			Members:      memberStore,
			Videos:       videoStore,
			Interactions: interactionStore,
		},
		Shortlinks: &shortlink.Handler{
			Service:      shortlinks,
			Videos:       videoStore,
			Members:      memberStore,
			Interactions: interactionStore,
		},
	})

	server := &http.Server{
		Addr:    cfg.Server.Address,
		Handler: r,
	}

	go func() {
		fmt.Printf("服务器已准备就绪，开始监听 %s\n", cfg.Server.Address)
		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			panic("HTTP服务器启动失败: " + err.Error())
		}
	}()

	coordinator := shutdown.NewCoordinator(gracefulManager, forcefulManager, logStore)
	coordinator.ListenForSignalsAndShutdown(server)
}
