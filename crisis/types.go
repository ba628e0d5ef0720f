package crisis

// RiskLevel 危机风险等级
type RiskLevel string

const (
	// RiskLow 一般情绪困扰
	RiskLow RiskLevel = "low"
	// RiskMedium 持续负面情绪
	RiskMedium RiskLevel = "medium"
	// RiskHigh 明显痛苦信号
	RiskHigh RiskLevel = "high"
	// RiskCritical 危机信号
	RiskCritical RiskLevel = "critical"
)

// Category 危机关键词类别
type Category string

const (
	CategorySuicide         Category = "suicide"
	CategorySelfHarm        Category = "self_harm"
	CategoryExtremeDistress Category = "extreme_distress"
)

// KeywordSet 一个类别下的关键词，按字面量匹配
type KeywordSet struct {
	Category Category `json:"category"`
	Keywords []string `json:"keywords"`
}

// Hotline 心理援助热线
type Hotline struct {
	Name  string `json:"name"`
	Phone string `json:"phone"`
}

// DetectionResult 危机检测结果，每条消息产生一次，不持久化
type DetectionResult struct {
	Detected  bool      `json:"detected"`
	RiskLevel RiskLevel `json:"riskLevel"`
	// 第一个命中的类别，未命中为空
	Category Category `json:"category,omitempty"`
	// 所有类别中命中的关键词，按类别和关键词顺序
	MatchedKeywords []string `json:"matchedKeywords"`
	Recommendation  string   `json:"recommendation"`
}
