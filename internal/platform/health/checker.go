package health

import (
	"context"
	"fmt"
	"regexp"
	"time"

	"github.com/RedzGroup/redz-bot-backend/internal/platform/database"
	"github.com/RedzGroup/redz-bot-backend/internal/platform/startup"
	"github.com/RedzGroup/redz-bot-backend/pkg/lifecycle"
)

const (
	checkInterval = 5 * time.Second
	pingTimeout   = 2 * time.Second
)

var runIDPattern = regexp.MustCompile(`run_id:([a-f0-9]+)`)

// getRedisRunID 从Redis服务器信息中提取run_id。
func getRedisRunID() (string, error) {
	ctx, cancel := context.WithTimeout(database.Ctx, pingTimeout)
	defer cancel()
	info, err := database.RDB.Info(ctx, "server").Result()
	if err != nil {
		return "", err
	}
	matches := runIDPattern.FindStringSubmatch(info)
	if len(matches) < 2 {
		return "", fmt.Errorf("无法在Redis INFO中找到run_id")
	}
	return matches[1], nil
}

// InitializeRunID 在应用启动时执行一次，获取并设置初始的run_id。
func InitializeRunID() {
	runID, err := getRedisRunID()
	if err != nil {
		panic(fmt.Sprintf("无法在启动时获取Redis Run ID，请检查Redis服务: %v", err))
	}
	database.SetInitialRunID(runID)
	fmt.Printf("获取初始Redis Run ID成功: %s\n", runID)
}

// triggerAtomicRebuild 执行一次原子的缓存重建。
// 只有重建期间Redis没有再次重启，才认为重建有效。
func triggerAtomicRebuild(modules *startup.Modules, idBeforeRebuild string) bool {
	fmt.Println("健康检查: 正在触发缓存热重建...")
	if err := modules.RebuildCache(); err != nil {
		fmt.Printf("健康检查错误: 缓存热重建失败: %v\n", err)
		return false
	}

	idAfterRebuild, err := getRedisRunID()
	if err != nil {
		fmt.Println("健康检查错误: 缓存重建后无法连接到Redis，重建无效。")
		return false
	}
	if idBeforeRebuild != idAfterRebuild {
		fmt.Printf("健康检查错误: 缓存重建期间检测到Redis再次重启 (run_id: %s -> %s)。重建无效。\n", idBeforeRebuild, idAfterRebuild)
		return false
	}

	fmt.Println("健康检查: 缓存热重建成功并通过原子性校验。")
	return true
}

// PerformCheck 执行一次完整的健康检查和可能的修复操作。
func PerformCheck(modules *startup.Modules) {
	currentRunID, err := getRedisRunID()
	if err != nil {
		database.UpdateStatus(false, "")
		return
	}

	lastKnownRunID := database.GetLastKnownRunID()
	if currentRunID != lastKnownRunID {
		// Redis重启过，缓存内容已丢失
		if triggerAtomicRebuild(modules, currentRunID) {
			database.UpdateStatus(true, currentRunID)
		} else {
			database.UpdateStatus(false, "")
		}
		return
	}

	database.UpdateStatus(true, currentRunID)
}

// StartRedisHealthCheck 启动后台Goroutine定期执行健康检查，
// 收到停机信号后在下一个休眠点退出。
func StartRedisHealthCheck(handle *lifecycle.Handle, modules *startup.Modules) {
	go func() {
		defer handle.Close()
		fmt.Println("Redis健康检查器已启动。")
		for {
			if err := handle.Sleep(checkInterval); err != nil {
				return
			}
			PerformCheck(modules)
		}
	}()
}
