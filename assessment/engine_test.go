package assessment

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newEngine(t *testing.T, opts ...EngineOption) *Engine {
	t.Helper()
	e, err := NewEngine(opts...)
	require.NoError(t, err)
	return e
}

func score(t *testing.T, e *Engine, assessmentType string, answers map[string]int) *Result {
	t.Helper()
	r, err := e.Score(assessmentType, answers)
	require.NoError(t, err)
	return r
}

func TestScore_AnxietyExtremes(t *testing.T) {
	e := newEngine(t)

	max := score(t, e, TypeAnxiety, map[string]int{"anx_1": 4, "anx_2": 4, "anx_3": 4})
	assert.Equal(t, 100.0, max.Score)
	assert.Equal(t, "severe", max.Severity)
	assert.Equal(t, RiskHigh, max.RiskLevel)
	assert.Equal(t, []string{"建议尽快联系专业心理咨询师或医生", "如果症状影响日常生活，请及时就医"}, max.Recommendations)

	min := score(t, e, TypeAnxiety, map[string]int{"anx_1": 1, "anx_2": 1, "anx_3": 1})
	assert.Equal(t, 25.0, min.Score)
	assert.Equal(t, "minimal", min.Severity)
	assert.Equal(t, RiskLow, min.RiskLevel)
}

func TestScore_ReverseScored(t *testing.T) {
	e := newEngine(t)

	// dep_2 选4分，反向后计1分
	r := score(t, e, TypeDepression, map[string]int{"dep_1": 1, "dep_2": 4, "dep_3": 1})
	assert.Equal(t, 25.0, r.Score)
	assert.Equal(t, "minimal", r.Severity)

	r = score(t, e, TypeDepression, map[string]int{"dep_1": 4, "dep_2": 1, "dep_3": 4})
	assert.Equal(t, 100.0, r.Score)
	assert.Equal(t, "severe", r.Severity)
}

func TestScore_ZeroBasedReverse(t *testing.T) {
	def := Definition{
		Type: "custom",
		Template: Template{Name: "自定义", Questions: []Question{{
			ID: "q1", ReverseScored: true,
			Options: []Option{{Value: 0}, {Value: 1}, {Value: 2}, {Value: 3}, {Value: 4}},
		}}},
		Bands: []Band{{Severity: "low", Min: 0, Max: 100}},
	}
	e := newEngine(t, WithDefinitions(def))

	// (4+1)-4 = 1
	assert.Equal(t, 25.0, score(t, e, "custom", map[string]int{"q1": 4}).Score)
	assert.Equal(t, 75.0, score(t, e, "custom", map[string]int{"q1": 2}).Score)
	// (4+1)-0 = 5，按最高分4计
	assert.Equal(t, 100.0, score(t, e, "custom", map[string]int{"q1": 0}).Score)
	// 没有配置建议时使用兜底建议
	assert.Equal(t, []string{"建议咨询专业人士"}, score(t, e, "custom", nil).Recommendations)
}

func TestScore_RejectsOutOfRangeAnswers(t *testing.T) {
	e := newEngine(t)

	cases := []struct {
		assessmentType string
		answers        map[string]int
	}{
		{TypeAnxiety, map[string]int{"anx_1": 40}},
		{TypeAnxiety, map[string]int{"anx_1": 2, "anx_2": 0}},
		{TypeDepression, map[string]int{"dep_2": 9}},
		{TypeStress, map[string]int{"str_1": -1}},
	}
	for _, c := range cases {
		r, err := e.Score(c.assessmentType, c.answers)
		assert.ErrorIs(t, err, ErrInvalidAnswer, "%v", c.answers)
		assert.Nil(t, r)
	}

	// 未知题目ID不参与计分
	r := score(t, e, TypeAnxiety, map[string]int{"anx_1": 4, "other": 99})
	assert.Equal(t, 33.3, r.Score)
}

func TestScore_PartialAndRounding(t *testing.T) {
	e := newEngine(t)

	// 只答一题：4/12
	r := score(t, e, TypeAnxiety, map[string]int{"anx_1": 4})
	assert.Equal(t, 33.3, r.Score)
	assert.Equal(t, "mild", r.Severity)
	assert.Equal(t, RiskMedium, r.RiskLevel)

	// 5/8 = 62.5%，超出压力量表最后一个区间
	r = score(t, e, TypeStress, map[string]int{"str_1": 2, "str_2": 3})
	assert.Equal(t, 62.5, r.Score)
	assert.Equal(t, SeverityUnknown, r.Severity)
	assert.Equal(t, []string{"建议咨询专业人士"}, r.Recommendations)

	r = score(t, e, TypeStress, map[string]int{"str_1": 1})
	assert.Equal(t, 12.5, r.Score)
	assert.Equal(t, "low", r.Severity)
}

func TestScore_UnknownType(t *testing.T) {
	e := newEngine(t)

	r := score(t, e, "sleep", map[string]int{"x": 3})
	assert.Equal(t, "sleep", r.AssessmentType)
	assert.Equal(t, 0.0, r.Score)
	assert.Equal(t, SeverityUnknown, r.Severity)
	assert.Empty(t, r.Recommendations)
	assert.NotNil(t, r.Recommendations)
	assert.Equal(t, RiskLow, r.RiskLevel)
}

func TestTemplate(t *testing.T) {
	e := newEngine(t)

	tpl, ok := e.Template(TypeAnxiety)
	require.True(t, ok)
	assert.Equal(t, "焦虑自评量表", tpl.Name)
	assert.Len(t, tpl.Questions, 3)

	tpl, ok = e.Template("unknown")
	assert.False(t, ok)
	assert.True(t, tpl.IsEmpty())

	assert.Equal(t, []string{TypeAnxiety, TypeDepression, TypeStress}, e.Types())
}

func TestNewEngine_RejectsNonContiguousReverseScale(t *testing.T) {
	cases := map[string][]Option{
		"有间隔":   {{Value: 1}, {Value: 3}, {Value: 5}},
		"不从0或1开始": {{Value: 2}, {Value: 3}, {Value: 4}},
	}
	for name, opts := range cases {
		t.Run(name, func(t *testing.T) {
			_, err := NewEngine(WithDefinitions(Definition{
				Type:     "bad",
				Template: Template{Name: "bad", Questions: []Question{{ID: "q", ReverseScored: true, Options: opts}}},
			}))
			assert.ErrorIs(t, err, ErrInvalidTemplate)
		})
	}

	// 非反向题不要求连续
	_, err := NewEngine(WithDefinitions(Definition{
		Type:     "ok",
		Template: Template{Name: "ok", Questions: []Question{{ID: "q", Options: []Option{{Value: 1}, {Value: 5}}}}},
	}))
	assert.NoError(t, err)

	_, err = NewEngine(WithDefinitions(Definition{Type: "empty"}))
	assert.ErrorIs(t, err, ErrInvalidTemplate)
}

func TestHistory(t *testing.T) {
	e := newEngine(t)
	h := NewHistory()

	require.NoError(t, h.Save("u1", score(t, e, TypeAnxiety, map[string]int{"anx_1": 4})))
	require.NoError(t, h.Save("u1", score(t, e, TypeStress, nil)))
	require.NoError(t, h.Save("u1", score(t, e, TypeAnxiety, nil)))
	assert.ErrorIs(t, h.Save("", score(t, e, TypeAnxiety, nil)), ErrEmptyUserID)
	assert.Error(t, h.Save("u1", nil))

	assert.Len(t, h.List("u1", ""), 3)
	anxiety := h.List("u1", TypeAnxiety)
	require.Len(t, anxiety, 2)
	assert.Equal(t, 33.3, anxiety[0].Score)
	assert.Equal(t, 0.0, anxiety[1].Score)

	assert.Empty(t, h.List("u2", ""))
	assert.NotNil(t, h.List("u2", ""))
}
