package intent

import (
	"strings"
)

// Rule 意图规则，消息包含任一关键词即命中
type Rule struct {
	Intent   Intent
	Keywords []string
	// Shadowed 求助类习语里带有疑问词，匹配本规则前先从文本中去掉它们
	Shadowed []string
}

// DefaultRules 默认规则，顺序即优先级
var DefaultRules = []Rule{
	{
		Intent:   KnowledgeQuery,
		Keywords: []string{"是什么", "为什么", "如何", "怎么", "什么是", "解释"},
		Shadowed: []string{"怎么办", "不知道怎么"},
	},
	{
		Intent:   PracticeRequest,
		Keywords: []string{"练习", "冥想", "深呼吸", "放松", "正念", "帮我", "教我", "我想做", "可以教"},
	},
	{
		Intent:   HelpSeeking,
		Keywords: []string{"怎么办", "不知道怎么", "求助", "帮我", "很烦", "很痛苦", "难过", "抑郁", "焦虑"},
	},
	{
		Intent:   EmotionalSupport,
		Keywords: []string{"心情", "感受", "情绪", "很难过", "很伤心", "压力", "烦恼", "倾诉", "说说"},
	},
}

// Classifier 基于关键词的意图分类器，按规则顺序逐条判断，第一条命中的规则胜出
type Classifier struct {
	rules []Rule
}

type Option func(*Classifier)

// WithRules 替换默认规则
func WithRules(rules []Rule) Option {
	return func(c *Classifier) {
		c.rules = rules
	}
}

func NewClassifier(opts ...Option) *Classifier {
	c := &Classifier{rules: DefaultRules}
	for _, opt := range opts {
		if opt != nil {
			opt(c)
		}
	}
	return c
}

// Classify 识别消息意图，都不命中时返回GeneralChat
func (c *Classifier) Classify(message string) Intent {
	text := strings.ToLower(message)
	if strings.TrimSpace(text) == "" {
		return GeneralChat
	}

	for _, rule := range c.rules {
		if rule.match(text) {
			return rule.Intent
		}
	}
	return GeneralChat
}

func (r Rule) match(text string) bool {
	for _, phrase := range r.Shadowed {
		text = strings.ReplaceAll(text, phrase, " ")
	}
	for _, kw := range r.Keywords {
		if strings.Contains(text, kw) {
			return true
		}
	}
	return false
}
