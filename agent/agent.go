package agent

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/CoolBanHub/minghe/assessment"
	"github.com/CoolBanHub/minghe/crisis"
	"github.com/CoolBanHub/minghe/intent"
	"github.com/CoolBanHub/minghe/memory"
	"github.com/CoolBanHub/minghe/metrics"
	"github.com/CoolBanHub/minghe/state"
	"github.com/CoolBanHub/minghe/strategy"
	"github.com/gookit/slog"
)

const (
	ToolCrisisDetection      = "crisis_detection"
	ToolIntentClassification = "intent_classification"
)

// Response 一轮对话的回复，不保存
type Response struct {
	Content   string           `json:"content"`
	Intent    intent.Intent    `json:"intent"`
	RiskLevel crisis.RiskLevel `json:"riskLevel"`
	ToolsUsed []string         `json:"toolsUsed"`
	Metadata  map[string]any   `json:"metadata"`
}

// Agent 对话编排：危机检测 -> 意图识别 -> 回复策略 -> 记忆
type Agent struct {
	detector    *crisis.Detector
	classifier  *intent.Classifier
	memory      *memory.System
	strategies  *strategy.Registry
	assessments *assessment.Engine
	history     *assessment.History
	emotions    []intent.EmotionLexicon
	metrics     *metrics.Metrics
}

func NewAgent(mem *memory.System, opts ...Option) (*Agent, error) {
	if mem == nil {
		return nil, errors.New("记忆系统不能为空")
	}
	this := &Agent{memory: mem}
	for _, opt := range opts {
		if opt != nil {
			opt(this)
		}
	}

	if this.detector == nil {
		this.detector = crisis.NewDetector()
	}
	if this.classifier == nil {
		this.classifier = intent.NewClassifier()
	}
	if this.strategies == nil {
		this.strategies = strategy.NewRegistry()
	}
	if this.assessments == nil {
		engine, err := assessment.NewEngine()
		if err != nil {
			return nil, err
		}
		this.assessments = engine
	}
	if this.history == nil {
		this.history = assessment.NewHistory()
	}
	if this.emotions == nil {
		this.emotions = intent.DefaultEmotionLexicon
	}
	return this, nil
}

// Chat 处理一条用户消息。会话ID由调用方提供，危机检测命中时跳过意图识别和回复生成。
func (a *Agent) Chat(ctx context.Context, userID, sessionID, message string) (*Response, error) {
	if userID == "" {
		return nil, memory.ErrEmptyUserID
	}
	if sessionID == "" {
		return nil, memory.ErrEmptySessionID
	}
	ctx = state.WithChatState(ctx, &state.ChatState{UserID: userID, SessionID: sessionID})

	tools := []string{ToolCrisisDetection}
	detection := a.detector.Detect(message)
	if detection.Detected {
		return a.crisisResponse(ctx, userID, sessionID, message, detection, tools)
	}

	in := a.classifier.Classify(message)
	tools = append(tools, ToolIntentClassification)
	a.metrics.ObserveIntent(in.String())
	state.GetChatState(ctx).Intent = in.String()

	memoryContext, err := a.memory.ConversationContext(ctx, sessionID, userID)
	if err != nil {
		return nil, fmt.Errorf("读取对话上下文失败: %w", err)
	}
	profile, err := a.memory.UserProfile(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("读取用户画像失败: %w", err)
	}

	out := a.strategies.Handle(ctx, in, &strategy.Input{
		Message:       message,
		MemoryContext: memoryContext,
		Profile:       profile,
		ToolsUsed:     append([]string(nil), tools...),
	})
	tools = append(tools, out.ToolsUsed...)

	emotion := intent.DetectEmotionWith(a.emotions, message)
	if emotion != "" {
		out.Metadata["emotion"] = emotion
	}
	if err := a.record(ctx, sessionID, userID, message, out.Content, in, emotion); err != nil {
		return nil, err
	}

	source, _ := out.Metadata[strategy.MetaResponseSource].(string)
	a.metrics.ObserveResponse(in.String(), source)
	slog.Infof("Response generated: intent=%s, risk=%s, tools=%v", in, detection.RiskLevel, tools)

	return &Response{
		Content:   out.Content,
		Intent:    in,
		RiskLevel: detection.RiskLevel,
		ToolsUsed: tools,
		Metadata:  out.Metadata,
	}, nil
}

func (a *Agent) crisisResponse(ctx context.Context, userID, sessionID, message string,
	detection *crisis.DetectionResult, tools []string) (*Response, error) {
	content := a.detector.Response(detection)
	a.metrics.ObserveCrisis(string(detection.RiskLevel), string(detection.Category))
	slog.Warnf("crisis detected: user=%s, session=%s, risk=%s, category=%s", userID, sessionID, detection.RiskLevel, detection.Category)

	if err := a.record(ctx, sessionID, userID, message, content, intent.CrisisSignal, ""); err != nil {
		return nil, err
	}
	return &Response{
		Content:   content,
		Intent:    intent.CrisisSignal,
		RiskLevel: detection.RiskLevel,
		ToolsUsed: tools,
		Metadata: map[string]any{
			"crisis_category":  string(detection.Category),
			"matched_keywords": strings.Join(detection.MatchedKeywords, ","),
			"immediate":        a.detector.ShouldTriggerImmediateResponse(detection),
		},
	}, nil
}

// record 先写用户消息再写助手回复；空白消息不写入记忆
func (a *Agent) record(ctx context.Context, sessionID, userID, message, reply string, in intent.Intent, emotion string) error {
	if strings.TrimSpace(message) == "" {
		return nil
	}
	if err := a.memory.AddUserMessage(ctx, sessionID, userID, message); err != nil {
		return fmt.Errorf("保存用户消息失败: %w", err)
	}
	if err := a.memory.AddAssistantMessage(ctx, sessionID, userID, reply, in.String(), emotion); err != nil {
		return fmt.Errorf("保存助手回复失败: %w", err)
	}
	return nil
}

func (a *Agent) AssessmentTemplate(assessmentType string) (assessment.Template, bool) {
	return a.assessments.Template(assessmentType)
}

func (a *Agent) AssessmentTypes() []string {
	return a.assessments.Types()
}

// Assess 评分并写入用户的评估历史
func (a *Agent) Assess(ctx context.Context, userID, assessmentType string, answers map[string]int) (*assessment.Result, error) {
	if userID == "" {
		return nil, memory.ErrEmptyUserID
	}
	result, err := a.assessments.Score(assessmentType, answers)
	if err != nil {
		return nil, err
	}
	if err := a.history.Save(userID, result); err != nil {
		return nil, err
	}
	slog.Infof("Assessment completed: user=%s, type=%s, score=%.1f, severity=%s", userID, assessmentType, result.Score, result.Severity)
	return result, nil
}

func (a *Agent) AssessmentHistory(userID, assessmentType string) []*assessment.Result {
	return a.history.List(userID, assessmentType)
}

func (a *Agent) Profile(ctx context.Context, userID string) (*memory.UserProfile, error) {
	return a.memory.UserProfile(ctx, userID)
}

func (a *Agent) UpdateProfile(ctx context.Context, userID string, update *memory.ProfileUpdate) (*memory.UserProfile, error) {
	return a.memory.UpdateUserProfile(ctx, userID, update)
}

func (a *Agent) ClearSession(sessionID string) bool {
	return a.memory.ClearSession(sessionID)
}

func (a *Agent) Memory() *memory.System {
	return a.memory
}
