package utils

import (
	"strconv"
	"strings"
	"unicode"
)

// Slugify 将标题转换为 URL slug
// 非字母数字折叠为单个连字符，首尾连字符去除
func Slugify(title string) string {
	var sb strings.Builder
	lastDash := true // 抑制开头的连字符

	for _, r := range strings.ToLower(title) {
		switch {
		case unicode.IsLetter(r) || unicode.IsDigit(r):
			sb.WriteRune(r)
			lastDash = false
		default:
			if !lastDash {
				sb.WriteByte('-')
				lastDash = true
			}
		}
	}

	return strings.TrimRight(sb.String(), "-")
}

// UniqueSlug 在 base 后追加数字后缀直到 exists 返回 false
func UniqueSlug(base string, exists func(slug string) bool) string {
	if base == "" {
		base = "untitled"
	}
	slug := base
	for i := 2; exists(slug); i++ {
		slug = base + "-" + strconv.Itoa(i)
	}
	return slug
}
