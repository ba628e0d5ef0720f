package knowledge

import (
	"strings"
)

const sectionChars = 500

// relevance 查询词（按空白切分）在内容中出现的比例，范围[0,1]
func relevance(query, content string) float64 {
	words := strings.Fields(strings.ToLower(query))
	if len(words) == 0 {
		return 0
	}
	lower := strings.ToLower(content)
	matched := 0
	for _, w := range words {
		if strings.Contains(lower, w) {
			matched++
		}
	}
	score := float64(matched) / float64(len(words))
	if score > 1 {
		score = 1
	}
	return score
}

// extractSection 截取第一个命中词前250字、后500字的片段，按字符计
func extractSection(content, query string) string {
	runes := []rune(content)
	lower := []rune(strings.ToLower(content))
	// ToLower 可能改变少数字符的长度，无法对齐时退回原文
	if len(lower) != len(runes) {
		lower = runes
	}

	pos := -1
	for _, w := range strings.Fields(strings.ToLower(query)) {
		if p := runeIndex(lower, []rune(w)); p >= 0 {
			pos = p
			break
		}
	}
	if pos < 0 {
		if len(runes) > sectionChars {
			return string(runes[:sectionChars])
		}
		return content
	}

	start := max(0, pos-sectionChars/2)
	end := min(len(runes), pos+sectionChars)
	section := string(runes[start:end])
	if start > 0 {
		section = "..." + section
	}
	if end < len(runes) {
		section += "..."
	}
	return section
}

func runeIndex(s, sub []rune) int {
	if len(sub) == 0 {
		return 0
	}
	for i := 0; i+len(sub) <= len(s); i++ {
		match := true
		for j := range sub {
			if s[i+j] != sub[j] {
				match = false
				break
			}
		}
		if match {
			return i
		}
	}
	return -1
}
