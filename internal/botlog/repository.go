package botlog

import (
	"encoding/json"
	"fmt"
	"sync"

	"gorm.io/gorm"
)

// Store 是审计事件的追加式存储抽象。
type Store interface {
	// Append 追加一条审计事件。审计失败不应该影响业务主流程，
	// 调用方通常只打印错误而不向上传播。
	Append(event *BotLog) error
	// Recent 按时间倒序返回最近的limit条事件。
	Recent(limit int) ([]BotLog, error)
}

// Event 是一个便捷构造函数，将metadata编码为JSON后返回事件对象。
func Event(eventType, memberID, message string, metadata map[string]interface{}) *BotLog {
	encoded := ""
	if len(metadata) > 0 {
		if raw, err := json.Marshal(metadata); err == nil {
			encoded = string(raw)
		}
	}
	return &BotLog{
		Type:     eventType,
		MemberID: memberID,
		Message:  message,
		Metadata: encoded,
	}
}

// --- GORM实现 ---

// GormStore 是基于数据库的审计存储。
type GormStore struct {
	db *gorm.DB
}

// NewGormStore 创建一个数据库审计存储。
func NewGormStore(db *gorm.DB) *GormStore {
	return &GormStore{db: db}
}

func (s *GormStore) Append(event *BotLog) error {
	if err := s.db.Create(event).Error; err != nil {
		return fmt.Errorf("无法写入审计事件: %w", err)
	}
	return nil
}

func (s *GormStore) Recent(limit int) ([]BotLog, error) {
	if limit <= 0 {
		limit = 100
	}
	var logs []BotLog
	if err := s.db.Order("created_at desc").Limit(limit).Find(&logs).Error; err != nil {
		return nil, err
	}
	return logs, nil
}

// --- 内存实现（测试用） ---

// MemoryStore 是审计存储的内存实现。
type MemoryStore struct {
	mu     sync.RWMutex
	events []BotLog
}

// NewMemoryStore 创建一个空的内存审计存储。
func NewMemoryStore() *MemoryStore {
	return &MemoryStore{}
}

func (s *MemoryStore) Append(event *BotLog) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.events = append(s.events, *event)
	return nil
}

func (s *MemoryStore) Recent(limit int) ([]BotLog, error) {
	if limit <= 0 {
		limit = 100
	}
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make([]BotLog, 0, limit)
	for i := len(s.events) - 1; i >= 0 && len(out) < limit; i-- {
		out = append(out, s.events[i])
	}
	return out, nil
}

// ByType 返回指定类型的全部事件，测试断言使用。
func (s *MemoryStore) ByType(eventType string) []BotLog {
	s.mu.RLock()
	defer s.mu.RUnlock()
	var out []BotLog
	for _, e := range s.events {
		if e.Type == eventType {
			out = append(out, e)
		}
	}
	return out
}
