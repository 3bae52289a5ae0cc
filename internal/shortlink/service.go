package shortlink

import (
	"crypto/rand"
	"fmt"
	"math/big"
	"strings"

	"github.com/RedzGroup/redz-bot-backend/internal/platform/database"
	"github.com/RedzGroup/redz-bot-backend/internal/video"

	"github.com/redis/go-redis/v9"
)

const (
	keyPrefix  = "shortlink:"
	codeLength = 6
	codeChars  = "abcdefghijklmnopqrstuvwxyzABCDEFGHIJKLMNOPQRSTUVWXYZ0123456789"

	// 生成码冲突时的重试上限。64^6的空间下几乎不会触发。
	maxAttempts = 5
)

// Record 是Redis中一条短链的内容。
type Record struct {
	VideoID     string
	OriginalURL string
}

// Service 基于Redis维护短链映射。
// Redis不可用时短链整体降级：分发直接使用原始链接。
type Service struct {
	BaseURL string
}

func NewService(baseURL string) *Service {
	return &Service{BaseURL: strings.TrimRight(baseURL, "/")}
}

func randomCode() (string, error) {
	var b strings.Builder
	for i := 0; i < codeLength; i++ {
		n, err := rand.Int(rand.Reader, big.NewInt(int64(len(codeChars))))
		if err != nil {
			return "", err
		}
		b.WriteByte(codeChars[n.Int64()])
	}
	return b.String(), nil
}

// Compensator 用于在后续步骤失败时撤销已写入的短链。
// 成功路径调用Commit；defer RollbackUnlessCommitted兜底。
type Compensator struct {
	code      string
	committed bool
}

func (c *Compensator) Commit() {
	if c != nil {
		c.committed = true
	}
}

func (c *Compensator) RollbackUnlessCommitted() {
	if c == nil || c.committed || c.code == "" {
		return
	}
	database.RDB.Del(database.Ctx, keyPrefix+c.code)
}

// Create 为视频生成短链。返回可分发的URL和补偿器。
// Redis不健康时返回原始URL和空补偿器，不视为错误。
func (s *Service) Create(videoID, originalURL string) (string, *Compensator, error) {
	if !database.IsRedisHealthy() {
		return originalURL, &Compensator{}, nil
	}

	for attempt := 0; attempt < maxAttempts; attempt++ {
		code, err := randomCode()
		if err != nil {
			return "", nil, fmt.Errorf("生成短链码失败: %w", err)
		}
		ok, err := database.RDB.HSetNX(database.Ctx, keyPrefix+code, "video_id", videoID).Result()
		if err != nil {
			return "", nil, fmt.Errorf("写入短链失败: %w", err)
		}
		if !ok {
			continue
		}
		if err := database.RDB.HSet(database.Ctx, keyPrefix+code, "url", originalURL).Err(); err != nil {
			database.RDB.Del(database.Ctx, keyPrefix+code)
			return "", nil, fmt.Errorf("写入短链失败: %w", err)
		}
		return s.BaseURL + "/s/" + code, &Compensator{code: code}, nil
	}
	return "", nil, fmt.Errorf("短链码冲突次数超限")
}

// Resolve 查找短链码对应的记录。未找到时返回nil。
func (s *Service) Resolve(code string) (*Record, error) {
	fields, err := database.RDB.HGetAll(database.Ctx, keyPrefix+code).Result()
	if err != nil {
		if err == redis.Nil {
			return nil, nil
		}
		return nil, err
	}
	if len(fields) == 0 {
		return nil, nil
	}
	return &Record{VideoID: fields["video_id"], OriginalURL: fields["url"]}, nil
}

// WarmupCache 在Redis重建后从videos表恢复短链映射。
// 只恢复形如 {BaseURL}/s/{code} 的短链。
func (s *Service) WarmupCache(store video.Store) error {
	videos, err := store.ListAll()
	if err != nil {
		return fmt.Errorf("读取视频记录失败: %w", err)
	}

	prefix := s.BaseURL + "/s/"
	pipe := database.RDB.Pipeline()
	restored := 0
	for _, v := range videos {
		if !strings.HasPrefix(v.ShortURL, prefix) {
			continue
		}
		code := strings.TrimPrefix(v.ShortURL, prefix)
		if len(code) != codeLength {
			continue
		}
		pipe.HSet(database.Ctx, keyPrefix+code, "video_id", v.VideoID, "url", v.OriginalURL)
		restored++
	}
	if restored == 0 {
		return nil
	}
	if _, err := pipe.Exec(database.Ctx); err != nil {
		return fmt.Errorf("恢复短链映射失败: %w", err)
	}
	return nil
}
