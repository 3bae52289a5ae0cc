package interaction

import (
	"sync"
	"time"

	"gorm.io/gorm"
)

// Store 抽象互动记录的持久化。
type Store interface {
	Create(i *Interaction) error
	ListByMember(memberID string) ([]Interaction, error)
	ListByVideo(videoID string) ([]Interaction, error)
	ListSince(since time.Time) ([]Interaction, error)
	CountByMember(memberID string) (int64, error)
}

// GormStore 由gorm数据库支持。
type GormStore struct {
	DB *gorm.DB
}

func NewGormStore(db *gorm.DB) *GormStore {
	return &GormStore{DB: db}
}

func (s *GormStore) Create(i *Interaction) error {
	return s.DB.Create(i).Error
}

func (s *GormStore) ListByMember(memberID string) ([]Interaction, error) {
	var out []Interaction
	if err := s.DB.Where("member_id = ?", memberID).Order("created_at DESC").Find(&out).Error; err != nil {
		return nil, err
	}
	return out, nil
}

func (s *GormStore) ListByVideo(videoID string) ([]Interaction, error) {
	var out []Interaction
	if err := s.DB.Where("video_id = ?", videoID).Order("created_at DESC").Find(&out).Error; err != nil {
		return nil, err
	}
	return out, nil
}

func (s *GormStore) ListSince(since time.Time) ([]Interaction, error) {
	var out []Interaction
	if err := s.DB.Where("created_at >= ?", since).Order("created_at DESC").Find(&out).Error; err != nil {
		return nil, err
	}
	return out, nil
}

func (s *GormStore) CountByMember(memberID string) (int64, error) {
	var count int64
	err := s.DB.Model(&Interaction{}).Where("member_id = ?", memberID).Count(&count).Error
	return count, err
}

// MemoryStore 是测试用的内存实现。
type MemoryStore struct {
	mu     sync.RWMutex
	items  []Interaction
	nextID uint
}

func NewMemoryStore() *MemoryStore {
	return &MemoryStore{nextID: 1}
}

func (s *MemoryStore) Create(i *Interaction) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	i.ID = s.nextID
	s.nextID++
	if i.CreatedAt.IsZero() {
		i.CreatedAt = time.Now()
	}
	s.items = append(s.items, *i)
	return nil
}

func (s *MemoryStore) ListByMember(memberID string) ([]Interaction, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	var out []Interaction
	for i := len(s.items) - 1; i >= 0; i-- {
		if s.items[i].MemberID == memberID {
			out = append(out, s.items[i])
		}
	}
	return out, nil
}

func (s *MemoryStore) ListByVideo(videoID string) ([]Interaction, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	var out []Interaction
	for i := len(s.items) - 1; i >= 0; i-- {
		if s.items[i].VideoID == videoID {
			out = append(out, s.items[i])
		}
	}
	return out, nil
}

func (s *MemoryStore) ListSince(since time.Time) ([]Interaction, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	var out []Interaction
	for i := len(s.items) - 1; i >= 0; i-- {
		if !s.items[i].CreatedAt.Before(since) {
			out = append(out, s.items[i])
		}
	}
	return out, nil
}

func (s *MemoryStore) CountByMember(memberID string) (int64, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	var count int64
	for _, it := range s.items {
		if it.MemberID == memberID {
			count++
		}
	}
	return count, nil
}
