// Package language infers the conversation language from raw user text.
package language

import (
	"unicode"

	"github.com/zhouzirui/persona-voice/backend/internal/analysis/lexicon"
	lang "github.com/zhouzirui/persona-voice/backend/internal/model/language"
)

type scriptRule struct {
	table    []*unicode.RangeTable
	language lang.Language
}

// Script checks run before keyword checks; the first matching script wins.
var scriptRules = []scriptRule{
	{table: []*unicode.RangeTable{unicode.Han}, language: lang.Chinese},
	{table: []*unicode.RangeTable{unicode.Hiragana, unicode.Katakana}, language: lang.Japanese},
	{table: []*unicode.RangeTable{unicode.Hangul}, language: lang.Korean},
	{table: []*unicode.RangeTable{unicode.Arabic}, language: lang.Arabic},
	{table: []*unicode.RangeTable{unicode.Devanagari}, language: lang.Hindi},
	{table: []*unicode.RangeTable{unicode.Cyrillic}, language: lang.Russian},
}

type keywordRule struct {
	language lang.Language
	keywords []string
}

// Keywords must not be shared between languages: Latin-script text is scored
// against every rule, and the rule with the most matches wins, ties by order.
var keywordRules = []keywordRule{
	{language: lang.Spanish, keywords: []string{
		"hola", "gracias", "estoy", "estás", "qué", "cómo", "muy", "por favor", "buenos días",
		"buenas noches", "ayuda", "necesito", "quiero", "tengo", "pero", "también",
	}},
	{language: lang.French, keywords: []string{
		"bonjour", "bonsoir", "merci", "je suis", "comment ça", "très", "salut", "ça va", "s'il vous plaît",
		"aujourd'hui", "pourquoi", "j'ai", "c'est", "avec", "beaucoup", "je veux",
	}},
	{language: lang.German, keywords: []string{
		"hallo", "danke", "ich bin", "wie geht", "bitte", "sehr", "guten", "heute", "warum", "ich habe",
		"nicht", "und", "mein", "mir", "traurig", "ich möchte",
	}},
	{language: lang.Italian, keywords: []string{
		"ciao", "grazie", "sono", "come stai", "molto", "buongiorno", "buonasera", "perché", "oggi",
		"ho bisogno", "voglio", "anche", "questo",
	}},
	{language: lang.Portuguese, keywords: []string{
		"olá", "obrigado", "obrigada", "estou", "você", "muito", "tudo bem", "bom dia", "boa noite",
		"preciso", "não", "hoje", "também", "eu quero",
	}},
}

// Detect returns the language of text. It never fails and always returns a
// supported code, defaulting to English.
func Detect(text string) lang.Language {
	for _, r := range text {
		for _, rule := range scriptRules {
			if unicode.In(r, rule.table...) {
				return firstScript(text)
			}
		}
	}

	normalized := lexicon.Normalize(text)
	if normalized.Empty() {
		return lang.Default
	}
	best, bestScore := lang.Default, 0
	for _, rule := range keywordRules {
		score := 0
		for _, keyword := range rule.keywords {
			if normalized.Contains(keyword) {
				score++
			}
		}
		if score > bestScore {
			best, bestScore = rule.language, score
		}
	}
	return best
}

// firstScript applies script rules in priority order over the whole text, so
// mixed-script input resolves by rule order rather than by character order.
func firstScript(text string) lang.Language {
	for _, rule := range scriptRules {
		for _, r := range text {
			if unicode.In(r, rule.table...) {
				return rule.language
			}
		}
	}
	return lang.Default
}

// Resolve picks the reply language: a non-default detection wins, otherwise
// the caller's hint (normally the session language) is kept.
func Resolve(text string, hint lang.Language) lang.Language {
	if detected := Detect(text); detected != lang.Default {
		return detected
	}
	if hint.Supported() {
		return hint
	}
	return lang.Default
}
