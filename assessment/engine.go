package assessment

import (
	"fmt"
	"math"
	"sort"
	"time"

	"github.com/gookit/slog"
)

type EngineOption func(*Engine)

// WithDefinitions 注册额外评估，类型相同时覆盖内置定义
func WithDefinitions(defs ...Definition) EngineOption {
	return func(e *Engine) {
		for _, def := range defs {
			e.defs[def.Type] = def
		}
	}
}

// Engine 问卷评分引擎，注册完成后只读
type Engine struct {
	defs map[string]Definition
}

func NewEngine(opts ...EngineOption) (*Engine, error) {
	e := &Engine{defs: make(map[string]Definition)}
	WithDefinitions(DefaultDefinitions()...)(e)
	for _, opt := range opts {
		opt(e)
	}
	for _, def := range e.defs {
		if err := validateDefinition(def); err != nil {
			return nil, err
		}
	}
	return e, nil
}

func validateDefinition(def Definition) error {
	if def.Type == "" {
		return fmt.Errorf("%w: 类型不能为空", ErrInvalidTemplate)
	}
	if len(def.Template.Questions) == 0 {
		return fmt.Errorf("%w: %s 没有问题", ErrInvalidTemplate, def.Type)
	}
	for _, q := range def.Template.Questions {
		if len(q.Options) == 0 {
			return fmt.Errorf("%w: %s 问题 %s 没有选项", ErrInvalidTemplate, def.Type, q.ID)
		}
		if q.ReverseScored && !contiguousScale(q) {
			return fmt.Errorf("%w: %s 反向计分题 %s 的分值必须是从0或1开始的连续整数", ErrInvalidTemplate, def.Type, q.ID)
		}
	}
	return nil
}

// contiguousScale 选项分值恰好覆盖 min..max，且 min 为0或1
func contiguousScale(q Question) bool {
	min, max := q.valueRange()
	if min != 0 && min != 1 {
		return false
	}
	seen := make(map[int]bool, len(q.Options))
	for _, opt := range q.Options {
		seen[opt.Value] = true
	}
	if len(seen) != max-min+1 {
		return false
	}
	for v := min; v <= max; v++ {
		if !seen[v] {
			return false
		}
	}
	return true
}

// Types 已注册的评估类型，按字母序
func (e *Engine) Types() []string {
	types := make([]string, 0, len(e.defs))
	for t := range e.defs {
		types = append(types, t)
	}
	sort.Strings(types)
	return types
}

// Template 未知类型返回空模板
func (e *Engine) Template(assessmentType string) (Template, bool) {
	def, ok := e.defs[assessmentType]
	if !ok {
		return Template{}, false
	}
	return def.Template, true
}

// Score 计算评估结果。缺失的答案按0分计，反向计分题按 (max+1)-value 转换，
// 单题得分不超过该题最高分。答案分值不在选项中时返回 ErrInvalidAnswer。
func (e *Engine) Score(assessmentType string, answers map[string]int) (*Result, error) {
	def, ok := e.defs[assessmentType]
	if !ok {
		slog.Warnf("未知评估类型: %s", assessmentType)
		return &Result{
			AssessmentType:  assessmentType,
			Severity:        SeverityUnknown,
			Recommendations: []string{},
			RiskLevel:       RiskLow,
			CreatedAt:       time.Now(),
		}, nil
	}

	total, maxTotal := 0, 0
	for _, q := range def.Template.Questions {
		_, max := q.valueRange()
		maxTotal += max
		value, answered := answers[q.ID]
		if !answered {
			continue
		}
		if !q.hasValue(value) {
			return nil, fmt.Errorf("%w: %s 问题 %s 的分值 %d", ErrInvalidAnswer, assessmentType, q.ID, value)
		}
		if q.ReverseScored {
			value = (max + 1) - value
			// 0..N 量表选0时反转结果为 max+1
			if value > max {
				value = max
			}
		}
		total += value
	}

	var percentage float64
	if maxTotal > 0 {
		percentage = float64(total) / float64(maxTotal) * 100
	}
	severity := severityOf(def.Bands, percentage)

	recommendations, ok := def.Recommendations[severity]
	if !ok {
		recommendations = defaultRecommendations
	}
	slog.Debugf("评估完成: type=%s, score=%.2f, severity=%s", assessmentType, percentage, severity)
	return &Result{
		AssessmentType:  assessmentType,
		Score:           math.Round(percentage*10) / 10,
		Severity:        severity,
		Recommendations: append([]string{}, recommendations...),
		RiskLevel:       riskOf(severity),
		CreatedAt:       time.Now(),
	}, nil
}

func severityOf(bands []Band, percentage float64) string {
	for _, b := range bands {
		if percentage >= b.Min && percentage <= b.Max {
			return b.Severity
		}
	}
	return SeverityUnknown
}

var defaultRecommendations = []string{"建议咨询专业人士"}

// riskOf 只看严重程度名称，不区分评估类型
func riskOf(severity string) string {
	switch severity {
	case "moderate", "severe":
		return RiskHigh
	case "mild":
		return RiskMedium
	default:
		return RiskLow
	}
}
