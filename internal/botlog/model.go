package botlog

import "gorm.io/gorm"

// 审计事件类型。
const (
	TypeMessageSent     = "message_sent"
	TypeMessageReceived = "message_received"
	TypeMemberJoined    = "member_joined"
	TypeMemberRemoved   = "member_removed"
	TypeError           = "error"
)

// BotLog 定义了追加式的审计事件记录。
// 核心只写不读；管理面板消费它做可观测展示。
type BotLog struct {
	gorm.Model

	// Type 是事件类型，见上方常量
	Type string `gorm:"index;not null" json:"type"`

	// MemberID 是关联成员的业务ID，系统级事件为空
	MemberID string `gorm:"index" json:"memberId,omitempty"`

	// Message 是人类可读的事件描述
	Message string `gorm:"type:text;not null" json:"message"`

	// Metadata 是JSON编码的附加数据
	Metadata string `gorm:"type:text" json:"metadata,omitempty"`
}
