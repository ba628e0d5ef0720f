package assessment

import (
	"errors"
	"time"
)

var (
	ErrInvalidTemplate = errors.New("评估模板无效")
	ErrInvalidAnswer   = errors.New("答案分值不在选项范围内")
)

// SeverityUnknown 未知评估类型或分数不落在任何区间
const SeverityUnknown = "unknown"

// 评估风险等级
const (
	RiskLow    = "low"
	RiskMedium = "medium"
	RiskHigh   = "high"
)

// Option 李克特量表选项
type Option struct {
	Value int    `json:"value"`
	Label string `json:"label"`
}

// Question 评估问题
type Question struct {
	ID       string   `json:"id"`
	Question string   `json:"question"`
	Category string   `json:"category"`
	Options  []Option `json:"options"`
	// 反向计分题，分值越低表示状态越差
	ReverseScored bool `json:"reverse_scored,omitempty"`
}

func (q Question) valueRange() (min, max int) {
	for i, opt := range q.Options {
		if i == 0 || opt.Value < min {
			min = opt.Value
		}
		if i == 0 || opt.Value > max {
			max = opt.Value
		}
	}
	return min, max
}

func (q Question) hasValue(value int) bool {
	for _, opt := range q.Options {
		if opt.Value == value {
			return true
		}
	}
	return false
}

// Template 评估问卷模板
type Template struct {
	Name        string     `json:"name"`
	Description string     `json:"description"`
	Questions   []Question `json:"questions"`
}

func (t Template) IsEmpty() bool {
	return t.Name == "" && len(t.Questions) == 0
}

// Band 严重程度区间，上下界都包含
type Band struct {
	Severity string  `json:"severity"`
	Min      float64 `json:"min"`
	Max      float64 `json:"max"`
}

// Definition 一种评估的完整定义
type Definition struct {
	Type     string   `json:"type"`
	Template Template `json:"template"`
	// 按顺序匹配
	Bands           []Band              `json:"bands"`
	Recommendations map[string][]string `json:"recommendations"`
}

// Result 评估结果，创建后不再修改
type Result struct {
	AssessmentType  string    `json:"assessment_type"`
	Score           float64   `json:"score"`
	Severity        string    `json:"severity"`
	Recommendations []string  `json:"recommendations"`
	RiskLevel       string    `json:"risk_level"`
	CreatedAt       time.Time `json:"created_at"`
}
