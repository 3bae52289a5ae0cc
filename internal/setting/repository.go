package setting

import (
	"encoding/json"
	"errors"
	"sort"
	"sync"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// Store 是配置存储的抽象。核心不缓存任何返回值：
// 管理员可能随时改动策略，每次决策都必须拿到当时的最新配置。
type Store interface {
	// GetRaw 返回键对应的JSON编码值。键不存在时found为false，不算错误。
	GetRaw(key string) (raw string, found bool, err error)
	// SetRaw 创建或覆盖一个配置项。
	SetRaw(key, raw string) error
	// All 返回所有配置项。
	All() ([]Setting, error)
}

// --- GORM实现 ---

// GormStore 是基于数据库的Store实现。
type GormStore struct {
	db *gorm.DB
}

// NewGormStore 创建一个数据库配置存储。
func NewGormStore(db *gorm.DB) *GormStore {
	return &GormStore{db: db}
}

func (s *GormStore) GetRaw(key string) (string, bool, error) {
	var st Setting
	err := s.db.Where("key = ?", key).First(&st).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return "", false, nil
		}
		return "", false, err
	}
	return st.Value, true, nil
}

func (s *GormStore) SetRaw(key, raw string) error {
	// 使用OnConflict做原子upsert
	st := Setting{Key: key, Value: raw}
	return s.db.Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "key"}},
		DoUpdates: clause.AssignmentColumns([]string{"value", "updated_at"}),
	}).Create(&st).Error
}

func (s *GormStore) All() ([]Setting, error) {
	var settings []Setting
	if err := s.db.Order("key asc").Find(&settings).Error; err != nil {
		return nil, err
	}
	return settings, nil
}

// --- 内存实现（测试与无库运行） ---

// MemoryStore 是Store的内存实现。
type MemoryStore struct {
	mu     sync.RWMutex
	values map[string]string
}

// NewMemoryStore 创建一个空的内存配置存储。
func NewMemoryStore() *MemoryStore {
	return &MemoryStore{values: make(map[string]string)}
}

func (s *MemoryStore) GetRaw(key string) (string, bool, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	raw, ok := s.values[key]
	return raw, ok, nil
}

func (s *MemoryStore) SetRaw(key, raw string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.values[key] = raw
	return nil
}

func (s *MemoryStore) All() ([]Setting, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	keys := make([]string, 0, len(s.values))
	for k := range s.values {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	settings := make([]Setting, 0, len(keys))
	for _, k := range keys {
		settings = append(settings, Setting{Key: k, Value: s.values[k]})
	}
	return settings, nil
}

// --- 类型化的读取辅助函数 ---
// 键不存在时返回给定的缺省值且err为nil；存储读取失败时同样返回缺省值，
// 但err非nil，由调用方决定失败语义（例如睡眠检查失败开放、管理员检查失败关闭）。

// GetBool 读取布尔配置。
func GetBool(s Store, key string, def bool) (bool, error) {
	raw, found, err := s.GetRaw(key)
	if err != nil || !found {
		return def, err
	}
	var v bool
	if jsonErr := json.Unmarshal([]byte(raw), &v); jsonErr != nil {
		return def, nil
	}
	return v, nil
}

// GetInt 读取整数配置。
func GetInt(s Store, key string, def int) (int, error) {
	raw, found, err := s.GetRaw(key)
	if err != nil || !found {
		return def, err
	}
	var v int
	if jsonErr := json.Unmarshal([]byte(raw), &v); jsonErr != nil {
		return def, nil
	}
	return v, nil
}

// GetString 读取字符串配置。
func GetString(s Store, key string, def string) (string, error) {
	raw, found, err := s.GetRaw(key)
	if err != nil || !found {
		return def, err
	}
	var v string
	if jsonErr := json.Unmarshal([]byte(raw), &v); jsonErr != nil {
		return def, nil
	}
	return v, nil
}

// GetStringSlice 读取字符串数组配置。
func GetStringSlice(s Store, key string, def []string) ([]string, error) {
	raw, found, err := s.GetRaw(key)
	if err != nil || !found {
		return def, err
	}
	var v []string
	if jsonErr := json.Unmarshal([]byte(raw), &v); jsonErr != nil {
		return def, nil
	}
	return v, nil
}

// SetValue 将任意值JSON编码后写入。
func SetValue(s Store, key string, value interface{}) error {
	raw, err := json.Marshal(value)
	if err != nil {
		return err
	}
	return s.SetRaw(key, string(raw))
}
