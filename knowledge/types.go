package knowledge

import "errors"

var ErrEmptyCategory = errors.New("知识类别不能为空")

// 文档元数据键
const (
	MetaCategory    = "category"
	MetaDescription = "description"
	MetaSource      = "source"
)

// 知识类别
const (
	CategoryPsychologyBasics  = "psychology_basics"
	CategoryTherapyTechniques = "therapy_techniques"
	CategoryChineseWisdom     = "chinese_wisdom"
	CategoryCrisisResources   = "crisis_resources"
)

// Category 知识库类别，对应知识库根目录下的同名子目录
type Category struct {
	Name        string `json:"name"`
	Description string `json:"description"`
}

// DefaultCategories 按加载顺序排列
var DefaultCategories = []Category{
	{Name: CategoryPsychologyBasics, Description: "心理科普知识"},
	{Name: CategoryTherapyTechniques, Description: "心理治疗技术"},
	{Name: CategoryChineseWisdom, Description: "中国传统文化心理智慧"},
	{Name: CategoryCrisisResources, Description: "危机干预资源"},
}

// Result 一条检索结果
type Result struct {
	// 命中位置附近的片段
	Content     string  `json:"content"`
	Source      string  `json:"source"`
	Score       float64 `json:"relevance_score"`
	Category    string  `json:"category"`
	Description string  `json:"description"`
}
