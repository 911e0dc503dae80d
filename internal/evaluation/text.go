package evaluation

import (
	"strings"
	"unicode"
	"unicode/utf8"
)

func isWordRune(r rune) bool {
	return r == '_' || unicode.IsLetter(r) || unicode.IsNumber(r)
}

// normalize 只保留单词字符、空白和连字符，并转小写
func normalize(text string) string {
	var b strings.Builder
	b.Grow(len(text))
	for _, r := range text {
		if isWordRune(r) || unicode.IsSpace(r) || r == '-' {
			b.WriteRune(r)
		}
	}
	return strings.ToLower(b.String())
}

// sentences 按连续的 . ? ! 切分原文，去掉空句
func sentences(text string) []string {
	parts := strings.FieldsFunc(text, func(r rune) bool {
		return r == '.' || r == '?' || r == '!'
	})
	out := parts[:0]
	for _, p := range parts {
		if s := strings.TrimSpace(p); s != "" {
			out = append(out, s)
		}
	}
	return out
}

// boundaryAt 与正则 \b 一致：i 两侧恰有一侧是单词字符
func boundaryAt(s string, i int) bool {
	before, after := false, false
	if i > 0 {
		r, _ := utf8.DecodeLastRuneInString(s[:i])
		before = isWordRune(r)
	}
	if i < len(s) {
		r, _ := utf8.DecodeRuneInString(s[i:])
		after = isWordRune(r)
	}
	return before != after
}

// containsWord 整词匹配，"api" 不会命中 "rapid"
func containsWord(haystack, word string) bool {
	if word == "" {
		return false
	}
	for from := 0; from <= len(haystack)-len(word); {
		idx := strings.Index(haystack[from:], word)
		if idx < 0 {
			return false
		}
		start := from + idx
		end := start + len(word)
		if boundaryAt(haystack, start) && boundaryAt(haystack, end) {
			return true
		}
		_, size := utf8.DecodeRuneInString(haystack[start:])
		from = start + size
	}
	return false
}

// matchKeywords 含空格的短语按子串匹配，单词按整词匹配
func matchKeywords(normalized string, keywords []string) (matched, missed []string) {
	for _, kw := range keywords {
		k := strings.ToLower(kw)
		var hit bool
		if strings.Contains(k, " ") {
			hit = strings.Contains(normalized, k)
		} else {
			hit = containsWord(normalized, k)
		}
		if hit {
			matched = append(matched, kw)
		} else {
			missed = append(missed, kw)
		}
	}
	return matched, missed
}
