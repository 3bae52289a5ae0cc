package artext

import "strings"

// letterFolds 是字母变体折叠表。
// 阿拉伯语中同一个词常见多种拼写（不同的alef/hamza形式、ة与ه混用等），
// 统一折叠后再做关键词匹配。
var letterFolds = map[rune]rune{
	'أ': 'ا',
	'إ': 'ا',
	'آ': 'ا',
	'ؤ': 'و',
	'ئ': 'ي',
	'ة': 'ه',
	'ى': 'ي',
}

// diacritics 是需要剔除的阿拉伯语变音符号。
var diacritics = map[rune]struct{}{
	'ً': {}, 'ٌ': {}, 'ٍ': {},
	'َ': {}, 'ُ': {}, 'ِ': {},
	'ّ': {}, 'ْ': {},
}

// Normalize 将文本规范化为可比较的形式：
// 小写化、折叠字母变体、剔除变音符号、去除首尾空白。
// 这是一个纯函数，所有命令与关键词匹配都必须先经过它。
func Normalize(text string) string {
	var b strings.Builder
	b.Grow(len(text))

	for _, r := range strings.ToLower(strings.TrimSpace(text)) {
		if _, ok := diacritics[r]; ok {
			continue
		}
		if folded, ok := letterFolds[r]; ok {
			r = folded
		}
		b.WriteRune(r)
	}
	return strings.TrimSpace(b.String())
}

// NormalizePhone 将电话号码规范化为纯数字形式（保留前导+）。
// 用于管理员号码比对。
func NormalizePhone(phone string) string {
	var b strings.Builder
	for i, r := range phone {
		if r >= '0' && r <= '9' {
			b.WriteRune(r)
			continue
		}
		if r == '+' && i == 0 {
			b.WriteRune(r)
		}
	}
	return b.String()
}
