package artext

import "strings"

// 各命令的关键词集合。成员必须已经是Normalize后的形式。
// 同时收录本地文字和拉丁转写，以及常见的错拼变体。
var (
	joinKeywords    = []string{"ريدز", "redz"}
	consentKeywords = []string{"موافق", "اوافق", "نعم"}
	declineKeywords = []string{"لا", "رفض"}
	helpKeywords    = []string{"مساعده", "help"}
	// "احصائيات"经过Normalize后ئ折叠为ي，这里直接存折叠后的形式
	statsKeywords = []string{"احصاييات", "احصايات", "stats"}
)

// IsJoin 判断规范化文本是否是加入关键词。
// 加入必须精确匹配：未知号码发送的其他任何内容都会被忽略。
func IsJoin(normalized string) bool {
	for _, kw := range joinKeywords {
		if normalized == kw {
			return true
		}
	}
	return false
}

// IsConsent 判断规范化文本是否表达同意。
func IsConsent(normalized string) bool {
	return containsAny(normalized, consentKeywords)
}

// IsDecline 判断规范化文本是否表达拒绝。
func IsDecline(normalized string) bool {
	return containsAny(normalized, declineKeywords)
}

// IsHelp 判断规范化文本是否是帮助命令。
func IsHelp(normalized string) bool {
	return containsAny(normalized, helpKeywords)
}

// IsStats 判断规范化文本是否是统计命令。
func IsStats(normalized string) bool {
	return containsAny(normalized, statsKeywords)
}

func containsAny(normalized string, keywords []string) bool {
	for _, kw := range keywords {
		if strings.Contains(normalized, kw) {
			return true
		}
	}
	return false
}
