// Package slug 提供文章 URL 标识的归一化工具。
package slug

import (
	"regexp"
	"strings"
)

var (
	whitespaceRun   = regexp.MustCompile(`\s+`)
	invalidAutoChar = regexp.MustCompile(`[^\w-]+`)
	manualChar      = regexp.MustCompile(`[^a-z0-9-]+`)
	hyphenRun       = regexp.MustCompile(`--+`)
	leadingHyphen   = regexp.MustCompile(`^-+`)
	trailingHyphen  = regexp.MustCompile(`-+$`)
)

// Normalize 由标题自动生成 slug：小写、空白转连字符、去除非法字符、
// 折叠重复连字符并去掉首尾连字符。标题不含可保留字符时结果为空串，
// 是否允许空 slug 由调用方在持久化前把关。
func Normalize(title string) string {
	s := strings.ToLower(title)
	s = whitespaceRun.ReplaceAllString(s, "-")
	s = invalidAutoChar.ReplaceAllString(s, "")
	s = hyphenRun.ReplaceAllString(s, "-")
	s = leadingHyphen.ReplaceAllString(s, "")
	s = trailingHyphen.ReplaceAllString(s, "")
	return s
}

// Clean 用于手动编辑 slug 的严格模式：仅保留 [a-z0-9-] 并折叠重复连字符，
// 不修剪首尾连字符，输入逐字符清洗后原样返回。
func Clean(raw string) string {
	s := strings.ToLower(raw)
	s = manualChar.ReplaceAllString(s, "")
	s = hyphenRun.ReplaceAllString(s, "-")
	return s
}

// Valid 判断一个已生成的 slug 是否符合持久化要求：非空、小写字母数字
// 下划线与连字符，且无首尾或重复连字符。
func Valid(s string) bool {
	if s == "" {
		return false
	}
	return s == Normalize(s)
}
