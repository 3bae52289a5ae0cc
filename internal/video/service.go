package video

import (
	"fmt"
	"time"

	"github.com/google/uuid"
)

// NewVideo 构造一条新的视频记录，外部ID使用UUIDv7保证按时间有序。
func NewVideo(memberID, originalURL, title string, now time.Time) (*Video, error) {
	id, err := uuid.NewV7()
	if err != nil {
		return nil, fmt.Errorf("生成视频ID失败: %w", err)
	}
	v := &Video{
		VideoID:     id.String(),
		MemberID:    memberID,
		OriginalURL: originalURL,
		Title:       title,
	}
	v.CreatedAt = now
	return v, nil
}
