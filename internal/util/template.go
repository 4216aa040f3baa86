package util

import (
	"encoding/json"
	"html/template"
	"strings"
)

// FromJSON 模板过滤器：JSON字符串解析失败时返回空map，不报错
func FromJSON(value string) map[string]interface{} {
	result := map[string]interface{}{}
	if value == "" {
		return result
	}
	if err := json.Unmarshal([]byte(value), &result); err != nil {
		return map[string]interface{}{}
	}
	return result
}

// SplitTags 逗号分隔的标签串转列表，空白项丢弃
func SplitTags(tags string) []string {
	parts := strings.Split(tags, ",")
	out := make([]string, 0, len(parts))
	for _, p := range parts {
		if t := strings.TrimSpace(p); t != "" {
			out = append(out, t)
		}
	}
	return out
}

// TemplateFuncs 注册到gin渲染器的函数表
func TemplateFuncs() template.FuncMap {
	return template.FuncMap{
		"fromJSON":  FromJSON,
		"splitTags": SplitTags,
		"safeHTML":  func(s string) template.HTML { return template.HTML(s) },
	}
}
