package common

import (
	"fmt"
	"strings"
)

// ExtractJSONObject 從 AI 回覆中取出第一個 '{' 到最後一個 '}' 之間的內容，
// 會先去除 markdown code fence
func ExtractJSONObject(content string) (string, error) {
	content = strings.TrimSpace(content)
	content = strings.TrimPrefix(content, "```json")
	content = strings.TrimPrefix(content, "```")
	content = strings.TrimSuffix(content, "```")
	content = strings.TrimSpace(content)

	start := strings.Index(content, "{")
	end := strings.LastIndex(content, "}")
	if start == -1 || end == -1 || end < start {
		return "", fmt.Errorf("no JSON object found in content")
	}
	return content[start : end+1], nil
}
