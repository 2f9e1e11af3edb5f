package structure

import (
	"regexp"
	"strings"
)

// IsSectionHeading is the numbering test used while building the section
// index; IsMainHeading is the keyword test used to tell top-level
// chapters from subsections. A heading is level 1 only when both hold.

var (
	arabicHeadingRe  = regexp.MustCompile(`^[1-9]\. `)
	chineseHeadingRe = regexp.MustCompile(`^[一二三四五六七八九]、`)
)

// mainHeadingKeywords are chapter names common in Chinese academic papers.
var mainHeadingKeywords = []string{
	"引言", "介绍", "研究方法", "实验", "结果", "讨论", "结论", "参考文献",
	"研究背景", "理论基础", "实验方法", "结果分析", "实验结果",
}

// IsSectionHeading reports whether text looks like a numbered section
// heading: "1. " through "9. " (never 10+), or "一、" through "九、"
// (never 十).
func IsSectionHeading(text string) bool {
	return arabicHeadingRe.MatchString(text) || chineseHeadingRe.MatchString(text)
}

// IsMainHeading reports whether text names a top-level chapter, i.e. it
// contains one of the well-known chapter keywords.
func IsMainHeading(text string) bool {
	for _, kw := range mainHeadingKeywords {
		if strings.Contains(text, kw) {
			return true
		}
	}
	return false
}
