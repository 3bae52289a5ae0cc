package interaction

import "gorm.io/gorm"

// 互动类型。点击来自短链跳转，其余留给前端上报。
const (
	TypeClick = "click"
	TypeView  = "view"
	TypeShare = "share"
)

// Interaction 记录成员对某个视频的一次互动。
type Interaction struct {
	gorm.Model
	MemberID string `gorm:"type:uuid;index" json:"memberId"`
	VideoID  string `gorm:"type:uuid;index" json:"videoId"`
	Type     string `gorm:"index;not null" json:"type"`
}
