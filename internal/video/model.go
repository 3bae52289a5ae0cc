package video

import (
	"time"

	"gorm.io/gorm"
)

// Video 记录一次成功提交并分发的视频链接。
// SentToMembers 在分发循环结束后一次性写入，表示当次快照的实际送达数。
type Video struct {
	gorm.Model
	VideoID       string     `gorm:"type:uuid;uniqueIndex" json:"videoId"`
	MemberID      string     `gorm:"type:uuid;index" json:"memberId"`
	OriginalURL   string     `gorm:"type:text;not null" json:"originalUrl"`
	ShortURL      string     `gorm:"type:text" json:"shortUrl"`
	Title         string     `json:"title"`
	ClickCount    int        `gorm:"default:0" json:"clickCount"`
	SentToMembers int        `gorm:"default:0" json:"sentToMembers"`
	SentAt        *time.Time `json:"sentAt"`
}
