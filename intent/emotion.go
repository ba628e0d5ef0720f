package intent

import "strings"

// EmotionLexicon 情绪词表，按顺序匹配，返回第一个命中的情绪标签
type EmotionLexicon struct {
	Emotion  string
	Keywords []string
}

var DefaultEmotionLexicon = []EmotionLexicon{
	{Emotion: "焦虑", Keywords: []string{"焦虑", "紧张", "担心", "不安", "害怕"}},
	{Emotion: "难过", Keywords: []string{"难过", "伤心", "悲伤", "想哭", "失落"}},
	{Emotion: "压力", Keywords: []string{"压力", "疲惫", "好累", "很累"}},
	{Emotion: "愤怒", Keywords: []string{"生气", "愤怒", "气死", "很烦"}},
	{Emotion: "孤独", Keywords: []string{"孤独", "寂寞", "没人理解"}},
	{Emotion: "开心", Keywords: []string{"开心", "高兴", "快乐"}},
}

// DetectEmotion 粗粒度情绪标注，用于长期记忆中的交互记录
func DetectEmotion(message string) string {
	return DetectEmotionWith(DefaultEmotionLexicon, message)
}

func DetectEmotionWith(lexicon []EmotionLexicon, message string) string {
	text := strings.ToLower(message)
	for _, item := range lexicon {
		for _, kw := range item.Keywords {
			if strings.Contains(text, kw) {
				return item.Emotion
			}
		}
	}
	return ""
}
