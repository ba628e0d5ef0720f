package assessment

import (
	"errors"

	"github.com/CoolBanHub/minghe/pkg/shardmap"
)

var ErrEmptyUserID = errors.New("用户ID不能为空")

// History 按用户保存的评估记录，只追加
type History struct {
	records *shardmap.Map[[]*Result]
}

func NewHistory() *History {
	return &History{records: shardmap.New[[]*Result](0)}
}

func (h *History) Save(userID string, result *Result) error {
	if userID == "" {
		return ErrEmptyUserID
	}
	if result == nil {
		return errors.New("评估结果不能为空")
	}
	h.records.Update(userID, func(list []*Result, _ bool) []*Result {
		return append(list, result)
	})
	return nil
}

// List 按时间顺序返回；assessmentType 为空时返回全部类型
func (h *History) List(userID, assessmentType string) []*Result {
	var out []*Result
	h.records.View(userID, func(list []*Result, ok bool) {
		for _, r := range list {
			if assessmentType == "" || r.AssessmentType == assessmentType {
				out = append(out, r)
			}
		}
	})
	if out == nil {
		out = []*Result{}
	}
	return out
}
