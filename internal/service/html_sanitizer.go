package service

import "github.com/microcosm-cc/bluemonday"

// contentPolicy 对富文本编辑器产出的 HTML 做白名单清洗。
// 同一份策略同时用于入库前与渲染前，入库数据被污染时渲染层仍能兜底。
var contentPolicy = bluemonday.UGCPolicy()

// SanitizeHTML 按 UGC 白名单清洗一段 HTML。
func SanitizeHTML(input string) string {
	return contentPolicy.Sanitize(input)
}
