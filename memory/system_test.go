package memory_test

import (
	"context"
	"fmt"
	"sync"
	"testing"

	"github.com/CoolBanHub/minghe/memory"
	"github.com/CoolBanHub/minghe/memory/storage"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newSystem(t *testing.T) (*memory.System, *storage.MemoryStore) {
	t.Helper()
	store := storage.NewMemoryStore()
	sys, err := memory.NewSystem(store, nil)
	require.NoError(t, err)
	return sys, store
}

func TestSystem_RecordsTurns(t *testing.T) {
	ctx := context.Background()
	sys, _ := newSystem(t)

	require.NoError(t, sys.AddUserMessage(ctx, "s1", "u1", "最近压力好大"))
	require.NoError(t, sys.AddAssistantMessage(ctx, "s1", "u1", "我在这里倾听你", "emotional_support", "压力"))

	msgs := sys.ShortTerm().Messages("s1", true)
	require.Len(t, msgs, 2)
	assert.Equal(t, memory.RoleUser, msgs[0].Role)
	assert.Equal(t, "emotional_support", msgs[1].Metadata["intent"])

	recent, err := sys.RecentInteractions(ctx, "u1", 10)
	require.NoError(t, err)
	require.Len(t, recent, 1)
	assert.Equal(t, "最近压力好大", recent[0].Message)
	assert.Equal(t, "我在这里倾听你", recent[0].Response)
	assert.Equal(t, "s1", recent[0].SessionID)
	assert.NotEmpty(t, recent[0].ID)
}

func TestSystem_EmptyIDs(t *testing.T) {
	ctx := context.Background()
	sys, _ := newSystem(t)

	assert.ErrorIs(t, sys.AddUserMessage(ctx, "", "u1", "hi"), memory.ErrEmptySessionID)
	assert.ErrorIs(t, sys.AddUserMessage(ctx, "s1", "", "hi"), memory.ErrEmptyUserID)
	_, err := sys.UserProfile(ctx, "")
	assert.ErrorIs(t, err, memory.ErrEmptyUserID)
}

func TestSystem_SummaryEveryTenthInteraction(t *testing.T) {
	ctx := context.Background()
	sys, _ := newSystem(t)
	intents := []string{"general_chat", "knowledge_query", "help_seeking", "emotional_support", "practice_request"}

	for i := 1; i <= 25; i++ {
		require.NoError(t, sys.AddUserMessage(ctx, "s1", "u1", fmt.Sprintf("消息%d", i)))
		require.NoError(t, sys.AddAssistantMessage(ctx, "s1", "u1", "回复", intents[i%len(intents)], ""))

		summary, err := sys.LongTerm().MemorySummary(ctx, "u1")
		require.NoError(t, err)
		switch {
		case i < 10:
			assert.Empty(t, summary, "第%d次交互不应生成摘要", i)
		case i < 20:
			assert.Contains(t, summary, "交互次数: 10")
		default:
			assert.Contains(t, summary, "交互次数: 20")
		}
	}

	summary, err := sys.LongTerm().MemorySummary(ctx, "u1")
	require.NoError(t, err)
	// 第16到20次交互的意图
	assert.Equal(t, "常见意图: knowledge_query, help_seeking, emotional_support, practice_request, general_chat; 交互次数: 20", summary)
}

func TestSystem_ConversationContext(t *testing.T) {
	ctx := context.Background()
	sys, _ := newSystem(t)

	text, err := sys.ConversationContext(ctx, "s1", "u1")
	require.NoError(t, err)
	assert.Equal(t, "", text)

	for i := 1; i <= 12; i++ {
		require.NoError(t, sys.AddUserMessage(ctx, "s1", "u1", fmt.Sprintf("问%d", i)))
		require.NoError(t, sys.AddAssistantMessage(ctx, "s1", "u1", fmt.Sprintf("答%d", i), "general_chat", "开心"))
	}

	text, err = sys.ConversationContext(ctx, "s1", "u1")
	require.NoError(t, err)
	assert.Equal(t,
		"【用户历史】常见意图: general_chat; 近期情绪: 开心; 交互次数: 10\n\n【当前对话】\n"+
			"用户: 问8\n助手: 答8\n用户: 问9\n助手: 答9\n用户: 问10\n助手: 答10\n用户: 问11\n助手: 答11\n用户: 问12\n助手: 答12",
		text)

	other, err := sys.ConversationContext(ctx, "s2", "u2")
	require.NoError(t, err)
	assert.Equal(t, "", other)
}

func TestSystem_Profile(t *testing.T) {
	ctx := context.Background()
	sys, store := newSystem(t)

	p, err := sys.UserProfile(ctx, "u1")
	require.NoError(t, err)
	assert.Equal(t, memory.AgeYoungAdult, p.AgeGroup)
	assert.Equal(t, 1, store.UserCount())

	// 改副本不影响存储
	p.Name = "改了"
	again, err := sys.UserProfile(ctx, "u1")
	require.NoError(t, err)
	assert.Equal(t, "", again.Name)

	age := memory.AgeSenior
	name := "老李"
	updated, err := sys.UpdateUserProfile(ctx, "u1", &memory.ProfileUpdate{AgeGroup: &age, Name: &name})
	require.NoError(t, err)
	assert.Equal(t, memory.AgeSenior, updated.AgeGroup)
	assert.Equal(t, "老李", updated.Name)
	assert.False(t, updated.UpdatedAt.Before(updated.CreatedAt))

	bad := memory.AgeGroup("toddler")
	_, err = sys.UpdateUserProfile(ctx, "u1", &memory.ProfileUpdate{AgeGroup: &bad})
	assert.ErrorIs(t, err, memory.ErrInvalidAge)

	// 首次访问即更新也会创建画像
	created, err := sys.UpdateUserProfile(ctx, "u2", &memory.ProfileUpdate{CommonStressors: []string{"工作"}})
	require.NoError(t, err)
	assert.Equal(t, []string{"工作"}, created.CommonStressors)
	assert.Equal(t, memory.AgeYoungAdult, created.AgeGroup)
}

func TestSystem_SearchAndClear(t *testing.T) {
	ctx := context.Background()
	sys, _ := newSystem(t)

	for i := 1; i <= 12; i++ {
		require.NoError(t, sys.AddUserMessage(ctx, "s1", "u1", fmt.Sprintf("失眠第%d天", i)))
		require.NoError(t, sys.AddAssistantMessage(ctx, "s1", "u1", "试试放松", "help_seeking", ""))
	}
	require.NoError(t, sys.AddUserMessage(ctx, "s1", "u1", "今天很好"))
	require.NoError(t, sys.AddAssistantMessage(ctx, "s1", "u1", "太好了", "general_chat", "开心"))

	found, err := sys.SearchMemory(ctx, "u1", "失眠")
	require.NoError(t, err)
	require.Len(t, found, 10)
	assert.Equal(t, "失眠第3天", found[0].Message)

	found, err = sys.SearchMemory(ctx, "u1", "太好")
	require.NoError(t, err)
	assert.Len(t, found, 1)

	recent, err := sys.RecentInteractions(ctx, "u1", 2)
	require.NoError(t, err)
	assert.Equal(t, "今天很好", recent[1].Message)

	assert.Equal(t, 1, sys.SessionCount())
	assert.True(t, sys.ClearSession("s1"))
	assert.Equal(t, 0, sys.SessionCount())

	// 长期记忆保留
	recent, err = sys.RecentInteractions(ctx, "u1", 100)
	require.NoError(t, err)
	assert.Len(t, recent, 13)
}

func TestSystem_ConcurrentSessionsSameUser(t *testing.T) {
	ctx := context.Background()
	sys, _ := newSystem(t)

	var wg sync.WaitGroup
	for s := 0; s < 10; s++ {
		wg.Add(1)
		go func(s int) {
			defer wg.Done()
			session := fmt.Sprintf("s%d", s)
			for i := 0; i < 10; i++ {
				assert.NoError(t, sys.AddUserMessage(ctx, session, "u1", "hi"))
				assert.NoError(t, sys.AddAssistantMessage(ctx, session, "u1", "hello", "general_chat", ""))
			}
		}(s)
	}
	wg.Wait()

	recent, err := sys.RecentInteractions(ctx, "u1", 1000)
	require.NoError(t, err)
	assert.Len(t, recent, 100)

	summary, err := sys.LongTerm().MemorySummary(ctx, "u1")
	require.NoError(t, err)
	assert.Contains(t, summary, "交互次数: 100")
}
