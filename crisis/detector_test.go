package crisis

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDetect_EmptyMessage(t *testing.T) {
	d := NewDetector()
	for _, msg := range []string{"", "   ", "\n\t"} {
		r := d.Detect(msg)
		assert.False(t, r.Detected)
		assert.Equal(t, RiskLow, r.RiskLevel)
		assert.Empty(t, r.Category)
		assert.Empty(t, r.MatchedKeywords)
	}
}

func TestDetect_NoCrisis(t *testing.T) {
	r := NewDetector().Detect("今天天气不错，想出去走走")
	assert.False(t, r.Detected)
	assert.Equal(t, RiskLow, r.RiskLevel)
	assert.Empty(t, r.Recommendation)
}

func TestDetect_ASCIIKeywordsNeedWordBoundary(t *testing.T) {
	d := NewDetector()
	for _, msg := range []string{"This is a basic simple question", "zsh 怎么配置", "Sign here"} {
		assert.False(t, d.Detect(msg).Detected, msg)
	}

	cases := map[string]Category{
		"我想zs":           CategorySuicide,
		"有点想 si 了":       CategorySelfHarm,
		"self-harm again": CategorySelfHarm,
		"SI。":             CategorySelfHarm,
	}
	for msg, category := range cases {
		r := d.Detect(msg)
		require.True(t, r.Detected, msg)
		assert.Equal(t, category, r.Category, msg)
	}
}

func TestDetect_RiskLevels(t *testing.T) {
	cases := []struct {
		name     string
		msg      string
		detected bool
		category Category
		level    RiskLevel
	}{
		{"单个自杀关键词", "我想自杀", true, CategorySuicide, RiskHigh},
		{"两个不同自杀关键词", "我想自杀，真的不想活了", true, CategorySuicide, RiskCritical},
		{"重复的同一关键词只算一次", "不想活了不想活了", true, CategorySuicide, RiskHigh},
		{"忽略大小写", "I think about SUICIDE", true, CategorySuicide, RiskHigh},
		{"自伤", "我有时候会伤害自己", true, CategorySelfHarm, RiskHigh},
		{"自伤多个关键词", "我想割腕", true, CategorySelfHarm, RiskHigh},
		{"单个极端痛苦", "我快崩溃了", true, CategoryExtremeDistress, RiskMedium},
		{"多个极端痛苦", "我彻底绝望了", true, CategoryExtremeDistress, RiskHigh},
		{"跨类别计数", "快崩溃了，想自杀", true, CategorySuicide, RiskCritical},
	}
	d := NewDetector()
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			r := d.Detect(tc.msg)
			assert.Equal(t, tc.detected, r.Detected)
			assert.Equal(t, tc.category, r.Category)
			assert.Equal(t, tc.level, r.RiskLevel)
		})
	}
}

func TestDetect_CollectsKeywordsFromAllCategories(t *testing.T) {
	r := NewDetector().Detect("快崩溃了，想自杀")
	require.True(t, r.Detected)
	assert.Equal(t, CategorySuicide, r.Category)
	assert.Equal(t, []string{"自杀", "崩溃"}, r.MatchedKeywords)
}

func TestDetect_KeywordsMatchLiterally(t *testing.T) {
	d := NewDetector(WithKeywordSets([]KeywordSet{
		{Category: CategorySelfHarm, Keywords: []string{"a.b", "(x)"}},
	}))
	assert.False(t, d.Detect("axb").Detected)
	assert.True(t, d.Detect("a.b").Detected)
	assert.True(t, d.Detect("see (X) here").Detected)
}

func TestRecommendation(t *testing.T) {
	d := NewDetector()

	high := d.Detect("我想自杀")
	assert.True(t, strings.HasPrefix(high.Recommendation, "强烈建议寻求专业帮助，提供热线信息\n\n专业热线：\n"))
	assert.Contains(t, high.Recommendation, "- 生命热线: 400-821-1215")

	medium := d.Detect("我快崩溃了")
	assert.Equal(t, "给予情感支持，关注用户状态", medium.Recommendation)
}

func TestResponse(t *testing.T) {
	d := NewDetector()

	assert.Empty(t, d.Response(d.Detect("你好")))

	critical := d.Response(d.Detect("我想自杀，不想活了"))
	assert.True(t, strings.HasPrefix(critical, "我很担心你。"))
	assert.NotContains(t, critical, "{hotlines}")

	// 热线按插入顺序输出
	i1 := strings.Index(critical, "全国心理援助热线")
	i2 := strings.Index(critical, "生命热线")
	i3 := strings.Index(critical, "北京心理危机研究与干预中心")
	i4 := strings.Index(critical, "希望24热线")
	assert.True(t, i1 < i2 && i2 < i3 && i3 < i4)

	assert.True(t, strings.HasPrefix(d.Response(d.Detect("我想伤害自己")), "我听到你了。"))
	assert.True(t, strings.HasPrefix(d.Response(d.Detect("我快崩溃了")), "感谢你告诉我这些。"))
}

func TestResponse_CustomHotlines(t *testing.T) {
	d := NewDetector(WithHotlines([]Hotline{{Name: "测试热线", Phone: "123"}}))
	resp := d.Response(d.Detect("我想自杀"))
	assert.Contains(t, resp, "- 测试热线: 123")
	assert.NotContains(t, resp, "生命热线")
}

func TestShouldTriggerImmediateResponse(t *testing.T) {
	d := NewDetector()
	assert.True(t, d.ShouldTriggerImmediateResponse(d.Detect("我想自杀")))
	assert.True(t, d.ShouldTriggerImmediateResponse(d.Detect("我想自杀，不想活了")))
	assert.True(t, d.ShouldTriggerImmediateResponse(d.Detect("我想伤害自己")))
	assert.False(t, d.ShouldTriggerImmediateResponse(d.Detect("我快崩溃了")))
	assert.False(t, d.ShouldTriggerImmediateResponse(d.Detect("你好")))
	assert.False(t, d.ShouldTriggerImmediateResponse(nil))
}
