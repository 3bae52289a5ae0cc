package video

import (
	"sort"
	"sync"
	"time"

	"gorm.io/gorm"
)

// Store 抽象视频记录的持久化。
// 每日配额以 CountByMemberSince 的结果为准，不做旁路缓存。
type Store interface {
	GetByID(videoID string) (*Video, error)
	ListAll() ([]Video, error)
	ListByMember(memberID string) ([]Video, error)
	ListSince(since time.Time) ([]Video, error)
	CountByMemberSince(memberID string, since time.Time) (int64, error)
	Create(v *Video) error
	SetSentToMembers(videoID string, count int, sentAt time.Time) error
	IncrementClicks(videoID string) error
}

// GormStore 由gorm数据库支持。
type GormStore struct {
	DB *gorm.DB
}

func NewGormStore(db *gorm.DB) *GormStore {
	return &GormStore{DB: db}
}

func (s *GormStore) GetByID(videoID string) (*Video, error) {
	var v Video
	result := s.DB.Where("video_id = ?", videoID).First(&v)
	if result.Error != nil {
		if result.Error == gorm.ErrRecordNotFound {
			return nil, nil
		}
		return nil, result.Error
	}
	return &v, nil
}

func (s *GormStore) ListAll() ([]Video, error) {
	var videos []Video
	if err := s.DB.Order("created_at DESC").Find(&videos).Error; err != nil {
		return nil, err
	}
	return videos, nil
}

func (s *GormStore) ListByMember(memberID string) ([]Video, error) {
	var videos []Video
	if err := s.DB.Where("member_id = ?", memberID).Order("created_at DESC").Find(&videos).Error; err != nil {
		return nil, err
	}
	return videos, nil
}

func (s *GormStore) ListSince(since time.Time) ([]Video, error) {
	var videos []Video
	if err := s.DB.Where("created_at >= ?", since).Order("created_at DESC").Find(&videos).Error; err != nil {
		return nil, err
	}
	return videos, nil
}

func (s *GormStore) CountByMemberSince(memberID string, since time.Time) (int64, error) {
	var count int64
	err := s.DB.Model(&Video{}).
		Where("member_id = ? AND created_at >= ?", memberID, since).
		Count(&count).Error
	return count, err
}

func (s *GormStore) Create(v *Video) error {
	return s.DB.Create(v).Error
}

func (s *GormStore) SetSentToMembers(videoID string, count int, sentAt time.Time) error {
	return s.DB.Model(&Video{}).
		Where("video_id = ?", videoID).
		Updates(map[string]interface{}{"sent_to_members": count, "sent_at": sentAt}).Error
}

func (s *GormStore) IncrementClicks(videoID string) error {
	return s.DB.Model(&Video{}).
		Where("video_id = ?", videoID).
		UpdateColumn("click_count", gorm.Expr("click_count + 1")).Error
}

// MemoryStore 是测试用的内存实现。
type MemoryStore struct {
	mu     sync.RWMutex
	videos map[string]*Video
	nextID uint
}

func NewMemoryStore() *MemoryStore {
	return &MemoryStore{videos: make(map[string]*Video), nextID: 1}
}

func (s *MemoryStore) GetByID(videoID string) (*Video, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	v, ok := s.videos[videoID]
	if !ok {
		return nil, nil
	}
	out := *v
	return &out, nil
}

func (s *MemoryStore) ListAll() ([]Video, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make([]Video, 0, len(s.videos))
	for _, v := range s.videos {
		out = append(out, *v)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].CreatedAt.After(out[j].CreatedAt) })
	return out, nil
}

func (s *MemoryStore) ListByMember(memberID string) ([]Video, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	var out []Video
	for _, v := range s.videos {
		if v.MemberID == memberID {
			out = append(out, *v)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].CreatedAt.After(out[j].CreatedAt) })
	return out, nil
}

func (s *MemoryStore) ListSince(since time.Time) ([]Video, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	var out []Video
	for _, v := range s.videos {
		if !v.CreatedAt.Before(since) {
			out = append(out, *v)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].CreatedAt.After(out[j].CreatedAt) })
	return out, nil
}

func (s *MemoryStore) CountByMemberSince(memberID string, since time.Time) (int64, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	var count int64
	for _, v := range s.videos {
		if v.MemberID == memberID && !v.CreatedAt.Before(since) {
			count++
		}
	}
	return count, nil
}

func (s *MemoryStore) Create(v *Video) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	v.ID = s.nextID
	s.nextID++
	if v.CreatedAt.IsZero() {
		v.CreatedAt = time.Now()
	}
	stored := *v
	s.videos[v.VideoID] = &stored
	return nil
}

func (s *MemoryStore) SetSentToMembers(videoID string, count int, sentAt time.Time) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if v, ok := s.videos[videoID]; ok {
		v.SentToMembers = count
		t := sentAt
		v.SentAt = &t
	}
	return nil
}

func (s *MemoryStore) IncrementClicks(videoID string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if v, ok := s.videos[videoID]; ok {
		v.ClickCount++
	}
	return nil
}
