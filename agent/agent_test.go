package agent

import (
	"context"
	"testing"

	"github.com/CoolBanHub/minghe/assessment"
	"github.com/CoolBanHub/minghe/crisis"
	"github.com/CoolBanHub/minghe/intent"
	"github.com/CoolBanHub/minghe/memory"
	"github.com/CoolBanHub/minghe/memory/storage"
	"github.com/CoolBanHub/minghe/strategy"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeGenerator struct {
	reply string
}

func (f *fakeGenerator) Generate(_ context.Context, _, _ string) (string, error) {
	return f.reply, nil
}

func newTestAgent(t *testing.T, opts ...Option) *Agent {
	mem, err := memory.NewSystem(storage.NewMemoryStore(), nil)
	require.NoError(t, err)
	a, err := NewAgent(mem, opts...)
	require.NoError(t, err)
	return a
}

func TestNewAgent_NilMemory(t *testing.T) {
	_, err := NewAgent(nil)
	assert.Error(t, err)
}

func TestChat_RequiresIDs(t *testing.T) {
	a := newTestAgent(t)
	ctx := context.Background()

	_, err := a.Chat(ctx, "", "s1", "你好")
	assert.ErrorIs(t, err, memory.ErrEmptyUserID)
	_, err = a.Chat(ctx, "u1", "", "你好")
	assert.ErrorIs(t, err, memory.ErrEmptySessionID)
}

func TestChat_CrisisTakesPrecedence(t *testing.T) {
	a := newTestAgent(t)
	ctx := context.Background()

	// 同时包含知识问答关键词
	resp, err := a.Chat(ctx, "u1", "s1", "为什么不想活了")
	require.NoError(t, err)
	assert.Equal(t, intent.CrisisSignal, resp.Intent)
	assert.Equal(t, crisis.RiskHigh, resp.RiskLevel)
	assert.Equal(t, []string{ToolCrisisDetection}, resp.ToolsUsed)
	assert.Contains(t, resp.Content, "400-161-9995")
	assert.Equal(t, "suicide", resp.Metadata["crisis_category"])
	assert.Equal(t, "不想活了", resp.Metadata["matched_keywords"])
	assert.Equal(t, true, resp.Metadata["immediate"])

	msgs := a.Memory().ShortTerm().Messages("s1", false)
	require.Len(t, msgs, 2)
	assert.Equal(t, memory.RoleUser, msgs[0].Role)
	assert.Equal(t, memory.RoleAssistant, msgs[1].Role)
}

func TestChat_TemplateFallbackWithoutGenerator(t *testing.T) {
	a := newTestAgent(t)
	ctx := context.Background()

	resp, err := a.Chat(ctx, "u1", "s1", "带我做正念冥想")
	require.NoError(t, err)
	assert.Equal(t, intent.PracticeRequest, resp.Intent)
	assert.Equal(t, crisis.RiskLow, resp.RiskLevel)
	assert.Equal(t, []string{ToolCrisisDetection, ToolIntentClassification, strategy.ToolIntervention}, resp.ToolsUsed)
	assert.Equal(t, strategy.SourceTemplate, resp.Metadata[strategy.MetaResponseSource])

	interactions, err := a.Memory().RecentInteractions(ctx, "u1", 10)
	require.NoError(t, err)
	require.Len(t, interactions, 1)
	assert.Equal(t, "带我做正念冥想", interactions[0].Message)
	assert.Equal(t, "practice_request", interactions[0].Intent)
}

func TestChat_GeneratedReplyRecordsEmotion(t *testing.T) {
	registry := strategy.NewRegistry(strategy.WithGenerator(&fakeGenerator{reply: "我在这里陪着你"}))
	a := newTestAgent(t, WithStrategies(registry))
	ctx := context.Background()

	resp, err := a.Chat(ctx, "u1", "s1", "最近心情很紧张")
	require.NoError(t, err)
	assert.Equal(t, intent.EmotionalSupport, resp.Intent)
	assert.Equal(t, "我在这里陪着你", resp.Content)
	assert.Equal(t, []string{ToolCrisisDetection, ToolIntentClassification, strategy.ToolEmpathy, strategy.ToolLLMGeneration}, resp.ToolsUsed)
	assert.Equal(t, "焦虑", resp.Metadata["emotion"])

	interactions, err := a.Memory().RecentInteractions(ctx, "u1", 10)
	require.NoError(t, err)
	require.Len(t, interactions, 1)
	assert.Equal(t, "焦虑", interactions[0].Emotion)
}

func TestChat_BlankMessageNotRecorded(t *testing.T) {
	a := newTestAgent(t)
	resp, err := a.Chat(context.Background(), "u1", "s1", "   ")
	require.NoError(t, err)
	assert.Equal(t, intent.GeneralChat, resp.Intent)
	assert.Empty(t, a.Memory().ShortTerm().Messages("s1", false))
}

func TestAssess_SavesHistory(t *testing.T) {
	a := newTestAgent(t)
	ctx := context.Background()

	_, ok := a.AssessmentTemplate(assessment.TypeAnxiety)
	assert.True(t, ok)
	_, ok = a.AssessmentTemplate("unknown")
	assert.False(t, ok)

	result, err := a.Assess(ctx, "u1", assessment.TypeAnxiety, map[string]int{"anx_1": 3, "anx_2": 3})
	require.NoError(t, err)
	assert.Equal(t, assessment.TypeAnxiety, result.AssessmentType)

	_, err = a.Assess(ctx, "u1", assessment.TypeStress, nil)
	require.NoError(t, err)

	assert.Len(t, a.AssessmentHistory("u1", ""), 2)
	assert.Len(t, a.AssessmentHistory("u1", assessment.TypeAnxiety), 1)
	assert.Empty(t, a.AssessmentHistory("u2", ""))

	_, err = a.Assess(ctx, "", assessment.TypeAnxiety, nil)
	assert.ErrorIs(t, err, memory.ErrEmptyUserID)

	// 非法分值不写入历史
	_, err = a.Assess(ctx, "u1", assessment.TypeAnxiety, map[string]int{"anx_1": 40})
	assert.ErrorIs(t, err, assessment.ErrInvalidAnswer)
	assert.Len(t, a.AssessmentHistory("u1", ""), 2)
}

func TestProfileAndClearSession(t *testing.T) {
	a := newTestAgent(t)
	ctx := context.Background()

	age := memory.AgeAdolescent
	profile, err := a.UpdateProfile(ctx, "u1", &memory.ProfileUpdate{AgeGroup: &age})
	require.NoError(t, err)
	assert.Equal(t, memory.AgeAdolescent, profile.AgeGroup)

	got, err := a.Profile(ctx, "u1")
	require.NoError(t, err)
	assert.Equal(t, memory.AgeAdolescent, got.AgeGroup)

	_, err = a.Chat(ctx, "u1", "s1", "你好")
	require.NoError(t, err)
	assert.True(t, a.ClearSession("s1"))
	assert.False(t, a.ClearSession("s1"))
}
