package member

import (
	"errors"
	"fmt"
	"sort"
	"sync"

	"gorm.io/gorm"
)

// ErrPhoneExists 表示以相同电话号码重复创建成员。
var ErrPhoneExists = errors.New("电话号码已存在")

// Store 是成员目录的存储抽象。
// 按ID/电话查询在成员不存在时返回(nil, nil)，由调用方走分类回落逻辑。
// ListActive 必须反映调用时刻的最新状态：分发引擎以一次调用的结果为快照。
type Store interface {
	GetByID(id string) (*Member, error)
	GetByPhone(phone string) (*Member, error)
	ListAll() ([]Member, error)
	ListActive() ([]Member, error)
	ListByStatus(status string) ([]Member, error)
	CountActive() (int, error)
	// Create 持久化一个新成员；电话号码重复时返回ErrPhoneExists。
	Create(m *Member) error
	// Save 整体写回一个已存在的成员。
	Save(m *Member) error
	// Delete 删除成员，返回是否确有此人。
	Delete(id string) (bool, error)
	// ResetDailyCounts 将所有成员的当日投稿计数清零。
	ResetDailyCounts() error
}

// --- GORM实现 ---

// GormStore 是基于数据库的成员目录。
type GormStore struct {
	db *gorm.DB
}

// NewGormStore 创建一个数据库成员目录。
func NewGormStore(db *gorm.DB) *GormStore {
	return &GormStore{db: db}
}

func (s *GormStore) GetByID(id string) (*Member, error) {
	var m Member
	err := s.db.Where("member_id = ?", id).First(&m).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &m, nil
}

func (s *GormStore) GetByPhone(phone string) (*Member, error) {
	var m Member
	err := s.db.Where("phone = ?", phone).First(&m).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &m, nil
}

func (s *GormStore) ListAll() ([]Member, error) {
	var members []Member
	if err := s.db.Order("joined_at desc").Find(&members).Error; err != nil {
		return nil, err
	}
	return members, nil
}

func (s *GormStore) ListActive() ([]Member, error) {
	return s.ListByStatus(StatusActive)
}

func (s *GormStore) ListByStatus(status string) ([]Member, error) {
	var members []Member
	if err := s.db.Where("status = ?", status).Find(&members).Error; err != nil {
		return nil, err
	}
	return members, nil
}

func (s *GormStore) CountActive() (int, error) {
	var count int64
	err := s.db.Model(&Member{}).Where("status = ?", StatusActive).Count(&count).Error
	return int(count), err
}

func (s *GormStore) Create(m *Member) error {
	// 先查重，再依赖唯一索引兜底
	existing, err := s.GetByPhone(m.Phone)
	if err != nil {
		return err
	}
	if existing != nil {
		return ErrPhoneExists
	}
	if err := s.db.Create(m).Error; err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return ErrPhoneExists
		}
		return fmt.Errorf("无法创建成员: %w", err)
	}
	return nil
}

func (s *GormStore) Save(m *Member) error {
	return s.db.Save(m).Error
}

func (s *GormStore) Delete(id string) (bool, error) {
	result := s.db.Where("member_id = ?", id).Delete(&Member{})
	if result.Error != nil {
		return false, result.Error
	}
	return result.RowsAffected > 0, nil
}

func (s *GormStore) ResetDailyCounts() error {
	return s.db.Model(&Member{}).Where("daily_videos_count > 0").
		Update("daily_videos_count", 0).Error
}

// --- 内存实现（测试与原型） ---

// MemoryStore 是成员目录的内存实现。
type MemoryStore struct {
	mu      sync.RWMutex
	byID    map[string]*Member
	byPhone map[string]string // phone -> memberID
}

// NewMemoryStore 创建一个空的内存成员目录。
func NewMemoryStore() *MemoryStore {
	return &MemoryStore{
		byID:    make(map[string]*Member),
		byPhone: make(map[string]string),
	}
}

func (s *MemoryStore) GetByID(id string) (*Member, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	m, ok := s.byID[id]
	if !ok {
		return nil, nil
	}
	copied := *m
	return &copied, nil
}

func (s *MemoryStore) GetByPhone(phone string) (*Member, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	id, ok := s.byPhone[phone]
	if !ok {
		return nil, nil
	}
	copied := *s.byID[id]
	return &copied, nil
}

func (s *MemoryStore) ListAll() ([]Member, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	members := make([]Member, 0, len(s.byID))
	for _, m := range s.byID {
		members = append(members, *m)
	}
	sort.Slice(members, func(i, j int) bool {
		return members[i].JoinedAt.After(members[j].JoinedAt)
	})
	return members, nil
}

func (s *MemoryStore) ListActive() ([]Member, error) {
	return s.ListByStatus(StatusActive)
}

func (s *MemoryStore) ListByStatus(status string) ([]Member, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	var members []Member
	for _, m := range s.byID {
		if m.Status == status {
			members = append(members, *m)
		}
	}
	sort.Slice(members, func(i, j int) bool {
		return members[i].MemberID < members[j].MemberID
	})
	return members, nil
}

func (s *MemoryStore) CountActive() (int, error) {
	members, _ := s.ListActive()
	return len(members), nil
}

func (s *MemoryStore) Create(m *Member) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, exists := s.byPhone[m.Phone]; exists {
		return ErrPhoneExists
	}
	copied := *m
	s.byID[m.MemberID] = &copied
	s.byPhone[m.Phone] = m.MemberID
	return nil
}

func (s *MemoryStore) Save(m *Member) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.byID[m.MemberID]; !ok {
		return fmt.Errorf("成员 %s 不存在", m.MemberID)
	}
	copied := *m
	s.byID[m.MemberID] = &copied
	return nil
}

func (s *MemoryStore) Delete(id string) (bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	m, ok := s.byID[id]
	if !ok {
		return false, nil
	}
	delete(s.byPhone, m.Phone)
	delete(s.byID, id)
	return true, nil
}

func (s *MemoryStore) ResetDailyCounts() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, m := range s.byID {
		m.DailyVideosCount = 0
	}
	return nil
}
