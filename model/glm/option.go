package glm

import (
	"github.com/cloudwego/eino/components/model"
)

type options struct {
	Thinking *string
}

// WithThinking 单次调用覆盖深度思考开关，取值 ThinkingEnabled / ThinkingDisabled
func WithThinking(thinking string) model.Option {
	return model.WrapImplSpecificOptFn(func(opt *options) {
		opt.Thinking = &thinking
	})
}
