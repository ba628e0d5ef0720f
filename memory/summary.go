package memory

import (
	"fmt"
	"strings"
)

// SummaryTrigger 摘要触发器，交互总数每达到interval的整数倍时触发
type SummaryTrigger struct {
	interval int
}

func NewSummaryTrigger(interval int) SummaryTrigger {
	if interval <= 0 {
		interval = 10
	}
	return SummaryTrigger{interval: interval}
}

// ShouldTrigger 判断追加后的交互总数是否需要重算摘要
func (t SummaryTrigger) ShouldTrigger(count int) bool {
	return count > 0 && count%t.interval == 0
}

// buildSummary 根据全部交互历史生成摘要
// 意图和情绪分别取最近window个非空值，去重后按首次出现顺序排列
func buildSummary(history []*Interaction, window int) string {
	if len(history) == 0 {
		return ""
	}

	var intents, emotions []string
	for _, h := range history {
		if h.Intent != "" {
			intents = append(intents, h.Intent)
		}
		if h.Emotion != "" {
			emotions = append(emotions, h.Emotion)
		}
	}

	var parts []string
	if len(intents) > 0 {
		parts = append(parts, "常见意图: "+strings.Join(distinctTail(intents, window), ", "))
	}
	if len(emotions) > 0 {
		parts = append(parts, "近期情绪: "+strings.Join(distinctTail(emotions, window), ", "))
	}
	parts = append(parts, fmt.Sprintf("交互次数: %d", len(history)))
	return strings.Join(parts, "; ")
}

func distinctTail(values []string, n int) []string {
	if len(values) > n {
		values = values[len(values)-n:]
	}
	seen := make(map[string]struct{}, len(values))
	out := make([]string, 0, len(values))
	for _, v := range values {
		if _, ok := seen[v]; ok {
			continue
		}
		seen[v] = struct{}{}
		out = append(out, v)
	}
	return out
}
