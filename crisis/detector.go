package crisis

import (
	"strings"

	"github.com/gookit/slog"
)

// Detector 危机检测器
// 检测用户消息中的自杀、自伤等高风险信号，在对话流程中优先于其他任何处理
type Detector struct {
	keywordSets []KeywordSet
	hotlines    []Hotline
}

type Option func(*Detector)

// WithKeywordSets 自定义关键词，切片顺序即类别优先级
func WithKeywordSets(sets []KeywordSet) Option {
	return func(d *Detector) {
		d.keywordSets = sets
	}
}

// WithHotlines 自定义热线目录
func WithHotlines(hotlines []Hotline) Option {
	return func(d *Detector) {
		d.hotlines = hotlines
	}
}

func NewDetector(opts ...Option) *Detector {
	d := &Detector{
		keywordSets: DefaultKeywordSets,
		hotlines:    DefaultHotlines,
	}
	for _, opt := range opts {
		if opt != nil {
			opt(d)
		}
	}
	d.keywordSets = normalizeKeywordSets(d.keywordSets)
	return d
}

// normalizeKeywordSets 关键词转小写，去掉空词和类别内的重复词
func normalizeKeywordSets(sets []KeywordSet) []KeywordSet {
	out := make([]KeywordSet, 0, len(sets))
	for _, set := range sets {
		seen := make(map[string]struct{}, len(set.Keywords))
		keywords := make([]string, 0, len(set.Keywords))
		for _, kw := range set.Keywords {
			kw = strings.ToLower(strings.TrimSpace(kw))
			if kw == "" {
				continue
			}
			if _, ok := seen[kw]; ok {
				continue
			}
			seen[kw] = struct{}{}
			keywords = append(keywords, kw)
		}
		out = append(out, KeywordSet{Category: set.Category, Keywords: keywords})
	}
	return out
}

// Detect 检测消息中的危机信号
func (d *Detector) Detect(message string) *DetectionResult {
	if strings.TrimSpace(message) == "" {
		return notDetected()
	}

	text := strings.ToLower(message)
	var matched []string
	var category Category
	for _, set := range d.keywordSets {
		for _, kw := range set.Keywords {
			if !containsKeyword(text, kw) {
				continue
			}
			matched = append(matched, kw)
			if category == "" {
				category = set.Category
			}
		}
	}

	if category == "" {
		return notDetected()
	}

	level := riskLevelOf(category, len(matched))
	slog.Warnf("检测到危机信号: category=%s, risk=%s, keywords=%v", category, level, matched)

	return &DetectionResult{
		Detected:        true,
		RiskLevel:       level,
		Category:        category,
		MatchedKeywords: matched,
		Recommendation:  d.recommendation(level),
	}
}

// containsKeyword 中文关键词按子串匹配；纯 ASCII 关键词要求前后不是字母或数字，
// 避免 "si" 命中 "basic" 这类普通英文
func containsKeyword(text, kw string) bool {
	if !isASCIIWord(kw) {
		return strings.Contains(text, kw)
	}
	for start := 0; ; {
		i := strings.Index(text[start:], kw)
		if i < 0 {
			return false
		}
		i += start
		end := i + len(kw)
		if (i == 0 || !isASCIIAlnum(text[i-1])) && (end == len(text) || !isASCIIAlnum(text[end])) {
			return true
		}
		start = i + 1
	}
}

func isASCIIWord(kw string) bool {
	for i := 0; i < len(kw); i++ {
		if kw[i] >= 0x80 {
			return false
		}
	}
	return true
}

func isASCIIAlnum(b byte) bool {
	return b >= 'a' && b <= 'z' || b >= 'A' && b <= 'Z' || b >= '0' && b <= '9'
}

func notDetected() *DetectionResult {
	return &DetectionResult{
		Detected:        false,
		RiskLevel:       RiskLow,
		MatchedKeywords: []string{},
	}
}

// riskLevelOf 风险等级取决于首个命中类别和所有类别的命中总数
func riskLevelOf(category Category, total int) RiskLevel {
	switch category {
	case CategorySuicide:
		if total >= 2 {
			return RiskCritical
		}
		return RiskHigh
	case CategorySelfHarm:
		return RiskHigh
	case CategoryExtremeDistress:
		if total >= 2 {
			return RiskHigh
		}
		return RiskMedium
	default:
		return RiskMedium
	}
}

func (d *Detector) recommendation(level RiskLevel) string {
	base := recommendations[level]
	if level == RiskHigh || level == RiskCritical {
		return base + "\n\n专业热线：\n" + d.HotlinesText()
	}
	return base
}

// Hotlines 返回热线目录副本
func (d *Detector) Hotlines() []Hotline {
	out := make([]Hotline, len(d.hotlines))
	copy(out, d.hotlines)
	return out
}

// HotlinesText 热线目录文本，每行 "- 名称: 电话"
func (d *Detector) HotlinesText() string {
	lines := make([]string, 0, len(d.hotlines))
	for _, h := range d.hotlines {
		lines = append(lines, "- "+h.Name+": "+h.Phone)
	}
	return strings.Join(lines, "\n")
}

// Response 生成发给用户的危机回应，未检测到危机时返回空串
func (d *Detector) Response(result *DetectionResult) string {
	if result == nil || !result.Detected {
		return ""
	}

	tpl := mediumResponseTemplate
	switch result.RiskLevel {
	case RiskCritical:
		tpl = criticalResponseTemplate
	case RiskHigh:
		tpl = highResponseTemplate
	}
	return strings.ReplaceAll(tpl, "{hotlines}", d.HotlinesText())
}

// ShouldTriggerImmediateResponse 检测到危机且风险为high或critical时需要立即响应
func (d *Detector) ShouldTriggerImmediateResponse(result *DetectionResult) bool {
	if result == nil || !result.Detected {
		return false
	}
	return result.RiskLevel == RiskHigh || result.RiskLevel == RiskCritical
}
