// Package lexicon 提供面向关键词表的文本匹配工具。
package lexicon

import (
	"strings"
	"unicode"

	"golang.org/x/text/unicode/norm"
)

// Text 是预处理过的输入：小写原文与按词切分后以空格包裹的形式。
type Text struct {
	lower  string
	padded string
}

// Normalize 对输入做 NFC 归一、小写化与分词，供后续多次匹配复用。
// 分解形式的重音字符（如 "esta\u0301"）会先合成，避免被拆成两个词。
func Normalize(raw string) Text {
	lower := fold(raw)
	words := strings.FieldsFunc(lower, func(r rune) bool {
		return !unicode.IsLetter(r) && !unicode.IsNumber(r) && r != '\''
	})
	return Text{
		lower:  lower,
		padded: " " + strings.Join(words, " ") + " ",
	}
}

// Empty 表示输入为空。
func (t Text) Empty() bool {
	return t.lower == ""
}

// Lower 返回小写原文。
func (t Text) Lower() string {
	return t.lower
}

// Contains 判断是否命中关键词。拉丁字母词按整词匹配，
// 无空格分词的文字（中日韩等）按子串匹配。
func (t Text) Contains(term string) bool {
	term = fold(term)
	if term == "" {
		return false
	}
	if !segmented(term) {
		return strings.Contains(t.lower, term)
	}
	return strings.Contains(t.padded, " "+term+" ")
}

// Matches 返回 terms 中被命中的去重列表，保持 terms 的顺序。
func (t Text) Matches(terms []string) []string {
	var hits []string
	seen := make(map[string]struct{}, len(terms))
	for _, term := range terms {
		if _, dup := seen[term]; dup {
			continue
		}
		if t.Contains(term) {
			seen[term] = struct{}{}
			hits = append(hits, term)
		}
	}
	return hits
}

func fold(s string) string {
	return strings.ToLower(norm.NFC.String(strings.TrimSpace(s)))
}

func segmented(term string) bool {
	for _, r := range term {
		if unicode.In(r, unicode.Han, unicode.Hiragana, unicode.Katakana, unicode.Thai) {
			return false
		}
	}
	return true
}
