package crisis

// DefaultKeywordSets 默认危机关键词，类别顺序即判定优先级（需定期更新）
var DefaultKeywordSets = []KeywordSet{
	{
		Category: CategorySuicide,
		Keywords: []string{
			"自杀",
			"想死",
			"不想活了",
			"结束生命",
			"zs",
			"suicide",
			"活够了",
			"死了一了百了",
			"死了就好了",
		},
	},
	{
		Category: CategorySelfHarm,
		Keywords: []string{
			"自伤",
			"割腕",
			"伤害自己",
			"self-harm",
			"si",
			"想割腕",
			"想伤害自己",
			"想自残",
		},
	},
	{
		Category: CategoryExtremeDistress,
		Keywords: []string{
			"崩溃",
			"彻底绝望",
			"活着没意思",
			"没意义",
			"无法忍受",
			"撑不住了",
			"受够了",
			"极度绝望",
			"绝望",
			"无助",
		},
	},
}

// DefaultHotlines 专业心理援助热线，输出时保持此顺序
var DefaultHotlines = []Hotline{
	{Name: "全国心理援助热线", Phone: "400-161-9995"},
	{Name: "生命热线", Phone: "400-821-1215"},
	{Name: "北京心理危机研究与干预中心", Phone: "010-82951332"},
	{Name: "希望24热线", Phone: "400-161-9995"},
}

var recommendations = map[RiskLevel]string{
	RiskLow:      "继续正常对话",
	RiskMedium:   "给予情感支持，关注用户状态",
	RiskHigh:     "强烈建议寻求专业帮助，提供热线信息",
	RiskCritical: "立即启动危机干预协议，确保用户安全",
}

const criticalResponseTemplate = `我很担心你。

听到你这样说，我真的很在乎你。请你记住：

1. **你很重要** - 你的生命是宝贵的
2. **帮助是有的** - 专业的心理咨询师可以帮助你
3. **你不需要独自承受** - 有人愿意倾听和支持你

**请立即联系以下热线：**
{hotlines}

如果你有具体计划或想法，请告诉你信任的人，或者直接拨打上述热线。

记住：**你并不孤单，有人可以帮助你。**`

const highResponseTemplate = `我听到你了。

谢谢你愿意分享这些。我能感受到你现在的痛苦。重要的是：

- **你值得被帮助**
- **你的感受是重要的**
- **寻求帮助是勇敢的表现**

**专业支持可以帮到你：**
{hotlines}

如果你愿意，可以告诉我更多你的情况。或者，我建议你联系上面的热线，他们可以提供专业的支持。`

const mediumResponseTemplate = `感谢你告诉我这些。

我很高兴你愿意表达自己的感受。如果你觉得：
- 难以承受
- 需要更多支持

**可以考虑寻求专业帮助：**
{hotlines}

我在这里陪着你，你想聊些什么都可以。`
