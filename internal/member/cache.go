package member

import (
	"fmt"

	"github.com/RedzGroup/redz-bot-backend/internal/platform/database"
)

// KnownPhonesKey 是一个Redis Set，缓存所有已知成员的电话号码。
// 入站消息的热路径先查它：陌生号码发来的非加入关键词直接忽略，不必打到数据库。
const KnownPhonesKey = "member:known_phones"

// IsKnownPhone 查询一个号码是否属于已知成员。
// Redis不可用时返回(false, err)，调用方应回退到数据库查询。
func IsKnownPhone(phone string) (bool, error) {
	if !database.IsRedisHealthy() {
		return false, fmt.Errorf("redis不可用")
	}
	exists, err := database.RDB.SIsMember(database.Ctx, KnownPhonesKey, phone).Result()
	if err != nil {
		return false, fmt.Errorf("检查Redis号码缓存时出错: %w", err)
	}
	return exists, nil
}

// CachePhone 将一个新成员的号码加入缓存。失败只记录，不影响主流程。
func CachePhone(phone string) {
	if !database.IsRedisHealthy() {
		return
	}
	if err := database.RDB.SAdd(database.Ctx, KnownPhonesKey, phone).Err(); err != nil {
		fmt.Printf("警告: 无法将号码 %s 加入Redis缓存: %v\n", phone, err)
	}
}

// UncachePhone 在成员被删除后移除缓存的号码。
func UncachePhone(phone string) {
	if !database.IsRedisHealthy() {
		return
	}
	if err := database.RDB.SRem(database.Ctx, KnownPhonesKey, phone).Err(); err != nil {
		fmt.Printf("警告: 无法从Redis缓存移除号码 %s: %v\n", phone, err)
	}
}

// WarmupCache 从数据库加载所有成员号码并预热到Redis。
// 注意：此函数不加锁，调用方需保证在安全时机（启动或重建）调用。
func WarmupCache(store Store) error {
	members, err := store.ListAll()
	if err != nil {
		return fmt.Errorf("无法从数据库读取成员号码: %w", err)
	}

	pipe := database.RDB.Pipeline()
	// 先清空旧缓存，确保一致性
	pipe.Del(database.Ctx, KnownPhonesKey)
	if len(members) > 0 {
		phones := make([]interface{}, len(members))
		for i, m := range members {
			phones[i] = m.Phone
		}
		pipe.SAdd(database.Ctx, KnownPhonesKey, phones...)
	}

	if _, err := pipe.Exec(database.Ctx); err != nil {
		return fmt.Errorf("预热成员号码到Redis失败: %w", err)
	}

	fmt.Printf("成功预热 %d 个成员号码到Redis。\n", len(members))
	return nil
}
