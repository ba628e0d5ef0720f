package prompt

import (
	"strings"

	"github.com/CoolBanHub/minghe/memory"
)

// AgePrompt 年龄段附加提示，未知年龄段返回空串
func AgePrompt(age memory.AgeGroup) string {
	return agePrompts[age]
}

// BuildSystemPrompt 基础提示 + 年龄段提示 + 用户历史 + 已使用工具，空段落省略
func BuildSystemPrompt(base string, age memory.AgeGroup, memoryContext string, toolsUsed []string) string {
	var b strings.Builder
	b.WriteString(base)
	b.WriteString(AgePrompt(age))
	if memoryContext != "" {
		b.WriteString("\n\n## 用户历史信息\n")
		b.WriteString(memoryContext)
		b.WriteString("\n")
	}
	if len(toolsUsed) > 0 {
		b.WriteString("\n\n## 已使用的工具\n")
		b.WriteString(strings.Join(toolsUsed, ", "))
		b.WriteString("\n")
	}
	return b.String()
}

func RenderRAG(template, context, question string) string {
	return strings.NewReplacer("{context}", context, "{question}", question).Replace(template)
}

// RenderWithMessage 指令在前，用户原话在后
func RenderWithMessage(instruction, message string) string {
	return instruction + "\n\n用户说：" + message
}

func RenderGeneral(message string) string {
	return "用户说：" + message + "\n\n请给出温暖、专业的回应。"
}
