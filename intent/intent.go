package intent

// Intent 用户意图，决定使用哪种回应策略
type Intent string

const (
	// KnowledgeQuery 知识问答
	KnowledgeQuery Intent = "knowledge_query"
	// EmotionalSupport 情感倾诉
	EmotionalSupport Intent = "emotional_support"
	// HelpSeeking 寻求帮助
	HelpSeeking Intent = "help_seeking"
	// PracticeRequest 练习请求
	PracticeRequest Intent = "practice_request"
	// CrisisSignal 危机信号，只由危机检测产生
	CrisisSignal Intent = "crisis_signal"
	// GeneralChat 闲聊
	GeneralChat Intent = "general_chat"
)

func (i Intent) String() string {
	return string(i)
}
