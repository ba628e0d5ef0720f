package callbacks

import (
	"context"
	"errors"
	"io"
	"runtime/debug"
	"time"

	"github.com/CoolBanHub/minghe/state"
	"github.com/cloudwego/eino/callbacks"
	"github.com/cloudwego/eino/components"
	"github.com/cloudwego/eino/components/model"
	"github.com/cloudwego/eino/schema"
	"github.com/gookit/slog"
)

// Recorder 生成调用的指标记录，*metrics.Metrics 实现了该接口
type Recorder interface {
	ObserveGeneration(model string, err error, elapsed time.Duration)
	AddTokens(prompt, completion int)
}

// ChatModelCallback 只处理 ChatModel 组件的回调：记录日志、耗时与 token 用量
type ChatModelCallback struct {
	recorder Recorder
}

var _ callbacks.Handler = (*ChatModelCallback)(nil)

type startTimeKey struct{}

func NewChatModelCallback(recorder Recorder) *ChatModelCallback {
	return &ChatModelCallback{recorder: recorder}
}

func isChatModel(info *callbacks.RunInfo) bool {
	return info != nil && info.Component == components.ComponentOfChatModel
}

func elapsedSince(ctx context.Context) time.Duration {
	start, ok := ctx.Value(startTimeKey{}).(time.Time)
	if !ok {
		return 0
	}
	return time.Since(start)
}

func (c *ChatModelCallback) OnStart(ctx context.Context, info *callbacks.RunInfo, input callbacks.CallbackInput) context.Context {
	if !isChatModel(info) {
		return ctx
	}
	if in := model.ConvCallbackInput(input); in != nil {
		slog.Debugf("chat model start: type=%s, session=%s, messages=%d", info.Type, state.GetSessionID(ctx), len(in.Messages))
	}
	return context.WithValue(ctx, startTimeKey{}, time.Now())
}

func (c *ChatModelCallback) OnEnd(ctx context.Context, info *callbacks.RunInfo, output callbacks.CallbackOutput) context.Context {
	if !isChatModel(info) {
		return ctx
	}
	c.finish(ctx, info, model.ConvCallbackOutput(output))
	return ctx
}

func (c *ChatModelCallback) OnError(ctx context.Context, info *callbacks.RunInfo, err error) context.Context {
	if !isChatModel(info) {
		return ctx
	}
	slog.Errorf("chat model error: type=%s, session=%s, err:%s", info.Type, state.GetSessionID(ctx), err)
	if c.recorder != nil {
		c.recorder.ObserveGeneration(info.Type, err, elapsedSince(ctx))
	}
	return ctx
}

func (c *ChatModelCallback) OnStartWithStreamInput(ctx context.Context, info *callbacks.RunInfo,
	input *schema.StreamReader[callbacks.CallbackInput]) context.Context {
	input.Close()
	if !isChatModel(info) {
		return ctx
	}
	return context.WithValue(ctx, startTimeKey{}, time.Now())
}

// OnEndWithStreamOutput 异步读完流，用量取最后一个带 TokenUsage 的分片
func (c *ChatModelCallback) OnEndWithStreamOutput(ctx context.Context, info *callbacks.RunInfo,
	output *schema.StreamReader[callbacks.CallbackOutput]) context.Context {
	if !isChatModel(info) {
		output.Close()
		return ctx
	}
	go func() {
		defer func() {
			if e := recover(); e != nil {
				slog.Errorf("recover chat model stream callback panic: %v, runinfo: %+v, stack: %s", e, info, string(debug.Stack()))
			}
			output.Close()
		}()
		var last *model.CallbackOutput
		for {
			chunk, err := output.Recv()
			if errors.Is(err, io.EOF) {
				break
			}
			if err != nil {
				slog.Errorf("chat model stream error: type=%s, err:%s", info.Type, err)
				if c.recorder != nil {
					c.recorder.ObserveGeneration(info.Type, err, elapsedSince(ctx))
				}
				return
			}
			if out := model.ConvCallbackOutput(chunk); out != nil && out.TokenUsage != nil {
				last = out
			}
		}
		c.finish(ctx, info, last)
	}()
	return ctx
}

func (c *ChatModelCallback) finish(ctx context.Context, info *callbacks.RunInfo, out *model.CallbackOutput) {
	var prompt, completion int
	if out != nil && out.TokenUsage != nil {
		prompt, completion = out.TokenUsage.PromptTokens, out.TokenUsage.CompletionTokens
	}
	elapsed := elapsedSince(ctx)
	slog.Debugf("chat model end: type=%s, session=%s, prompt_tokens=%d, completion_tokens=%d, elapsed=%s",
		info.Type, state.GetSessionID(ctx), prompt, completion, elapsed)
	if c.recorder != nil {
		c.recorder.ObserveGeneration(info.Type, nil, elapsed)
		c.recorder.AddTokens(prompt, completion)
	}
}
