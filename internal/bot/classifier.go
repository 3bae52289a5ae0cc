package bot

import "strings"

// LinkKind 是链接分类结果。
type LinkKind int

const (
	// NotALink 表示消息里没有URL。
	NotALink LinkKind = iota
	// LinkAccepted 表示URL命中允许前缀。
	LinkAccepted
	// LinkForeign 表示URL存在但不在允许列表内。
	LinkForeign
)

// ClassifyLink 在消息文本中查找URL并按前缀白名单分类。
// 匹配对大小写不敏感；只要任意一个片段命中前缀即接受。
func ClassifyLink(text string, allowedPrefixes []string) (LinkKind, string) {
	url := extractURL(text)
	if url == "" {
		return NotALink, ""
	}
	lower := strings.ToLower(url)
	for _, prefix := range allowedPrefixes {
		p := strings.ToLower(strings.TrimSpace(prefix))
		if p == "" {
			continue
		}
		// 前缀允许带或不带scheme。
		if strings.HasPrefix(lower, p) ||
			strings.HasPrefix(strings.TrimPrefix(strings.TrimPrefix(lower, "https://"), "http://"), p) {
			return LinkAccepted, url
		}
	}
	return LinkForeign, url
}

// extractURL 返回文本中第一个http(s)链接，没有则返回空串。
func extractURL(text string) string {
	for _, field := range strings.Fields(text) {
		lower := strings.ToLower(field)
		if strings.HasPrefix(lower, "http://") || strings.HasPrefix(lower, "https://") {
			return field
		}
	}
	return ""
}
