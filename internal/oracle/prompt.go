package oracle

import "strings"

// SystemPrompt frames the oracle as an academic-paper structure analyst.
const SystemPrompt = `你是一个专业的学术论文结构分析助手。你只输出JSON，不输出任何其他文字。`

// ClassifyPrompt is the fixed instruction for structure classification.
// The response contract (keys and shapes) is relied on verbatim by the
// cascade's model stage.
const ClassifyPrompt = `请分析以下学术论文内容，识别其结构，并以JSON格式返回结果。JSON必须包含以下字段：

- "title": 论文标题（字符串）
- "abstract": 摘要段落的原文（字符串，找不到时为空字符串）
- "keywords": 关键词段落或关键词列表（字符串数组）
- "sections": 章节数组，每个元素为 {"title": 章节标题原文, "level": 层级(1或2), "content": 章节内容概要}
- "references": 参考文献条目的原文（字符串数组）

要求：
- "title"、"abstract" 和各 "sections" 的 "title" 必须逐字复制文档中的原文，不要改写、增删标点或空格
- 找不到的部分返回空字符串或空数组，不要编造
- 只返回JSON，不要返回任何解释文字`

// BuildPrompt appends the full document text to the fixed instruction.
func BuildPrompt(text string) string {
	var sb strings.Builder
	sb.WriteString(ClassifyPrompt)
	sb.WriteString("\n\n文档内容：\n")
	sb.WriteString(text)
	return sb.String()
}
