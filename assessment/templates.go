package assessment

// 评估类型
const (
	TypeAnxiety    = "anxiety"
	TypeDepression = "depression"
	TypeStress     = "stress"
)

var frequencyOptions = []Option{
	{Value: 1, Label: "没有或很少时间"},
	{Value: 2, Label: "小部分时间"},
	{Value: 3, Label: "相当多时间"},
	{Value: 4, Label: "绝大部分或全部时间"},
}

var reversedFrequencyOptions = []Option{
	{Value: 4, Label: "没有或很少时间"},
	{Value: 3, Label: "小部分时间"},
	{Value: 2, Label: "相当多时间"},
	{Value: 1, Label: "绝大部分或全部时间"},
}

// DefaultDefinitions 内置评估，简化版量表
func DefaultDefinitions() []Definition {
	return []Definition{
		{
			Type: TypeAnxiety,
			Template: Template{
				Name:        "焦虑自评量表",
				Description: "评估焦虑症状的严重程度",
				Questions: []Question{
					{ID: "anx_1", Question: "我觉得比平时容易紧张和着急", Category: TypeAnxiety, Options: frequencyOptions},
					{ID: "anx_2", Question: "我无缘无故地感到害怕", Category: TypeAnxiety, Options: frequencyOptions},
					{ID: "anx_3", Question: "我容易心里烦乱或觉得惊恐", Category: TypeAnxiety, Options: frequencyOptions},
				},
			},
			Bands: []Band{
				{Severity: "minimal", Min: 0, Max: 29},
				{Severity: "mild", Min: 30, Max: 39},
				{Severity: "moderate", Min: 40, Max: 49},
				{Severity: "severe", Min: 50, Max: 100},
			},
			Recommendations: map[string][]string{
				"minimal":  {"继续保持良好的生活习惯", "规律作息和适量运动有助于维持心理健康"},
				"mild":     {"可以尝试一些放松技巧，如深呼吸", "建议关注压力源并尝试调整"},
				"moderate": {"建议学习系统的焦虑管理技巧", "可以考虑寻求心理咨询师的帮助"},
				"severe":   {"建议尽快联系专业心理咨询师或医生", "如果症状影响日常生活，请及时就医"},
			},
		},
		{
			Type: TypeDepression,
			Template: Template{
				Name:        "抑郁自评量表",
				Description: "评估抑郁症状的严重程度",
				Questions: []Question{
					{ID: "dep_1", Question: "我感到情绪沮丧，郁闷", Category: TypeDepression, Options: frequencyOptions},
					{ID: "dep_2", Question: "我感到早晨心情最好", Category: TypeDepression, Options: reversedFrequencyOptions, ReverseScored: true},
					{ID: "dep_3", Question: "我感到自己什么都不好", Category: TypeDepression, Options: frequencyOptions},
				},
			},
			Bands: []Band{
				{Severity: "minimal", Min: 0, Max: 29},
				{Severity: "mild", Min: 30, Max: 39},
				{Severity: "moderate", Min: 40, Max: 47},
				{Severity: "severe", Min: 48, Max: 100},
			},
			Recommendations: map[string][]string{
				"minimal":  {"保持积极的生活态度和社交活动", "适度运动有助于提升情绪"},
				"mild":     {"建议增加社交活动和兴趣爱好", "尝试记录感恩日记"},
				"moderate": {"建议寻求专业心理帮助", "可以尝试认知行为疗法"},
				"severe":   {"强烈建议立即寻求专业帮助", "请联系心理咨询师或精神科医生"},
			},
		},
		{
			Type: TypeStress,
			Template: Template{
				Name:        "压力感知量表",
				Description: "评估过去一个月的压力感知水平",
				Questions: []Question{
					{
						ID: "str_1", Question: "在过去一个月里，有多少件事让你感到烦恼？", Category: TypeStress,
						Options: []Option{
							{Value: 0, Label: "没有"},
							{Value: 1, Label: "很少"},
							{Value: 2, Label: "有时"},
							{Value: 3, Label: "经常"},
							{Value: 4, Label: "总是"},
						},
					},
					{
						ID: "str_2", Question: "在过去一个月里，你有多少时候感到无法控制生活中的重要事情？", Category: TypeStress,
						Options: []Option{
							{Value: 0, Label: "从来没有"},
							{Value: 1, Label: "几乎没有"},
							{Value: 2, Label: "有时会"},
							{Value: 3, Label: "经常会"},
							{Value: 4, Label: "总是会"},
						},
					},
				},
			},
			Bands: []Band{
				{Severity: "low", Min: 0, Max: 13},
				{Severity: "moderate", Min: 14, Max: 26},
				{Severity: "high", Min: 27, Max: 40},
			},
			Recommendations: map[string][]string{
				"low":      {"压力管理水平良好", "继续保持健康的生活方式"},
				"moderate": {"建议学习压力管理技巧", "尝试冥想或深呼吸练习"},
				"high":     {"建议立即采取措施管理压力", "考虑寻求专业支持"},
			},
		},
	}
}
