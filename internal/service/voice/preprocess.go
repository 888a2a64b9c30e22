package voice

import (
	"regexp"
	"strings"
	"unicode"
	"unicode/utf8"

	"github.com/zhouzirui/persona-voice/backend/internal/model/language"
	"github.com/zhouzirui/persona-voice/backend/internal/model/persona"
)

var (
	markdownLink   = regexp.MustCompile(`\[([^\]]+)\]\([^)]*\)`)
	markdownMarks  = regexp.MustCompile("(\\*\\*|__|\\*|`+|~~)")
	markdownHeader = regexp.MustCompile(`(?m)^\s{0,3}#{1,6}\s+`)
	listMarker     = regexp.MustCompile(`(?m)^\s*(?:[-*+•]|\d+[.)])\s+`)
	spaces         = regexp.MustCompile(`[ \t]+`)
	newlines       = regexp.MustCompile(`\s*\n+\s*`)
	periodEnd      = regexp.MustCompile(`([\p{L}\p{N}"')])\.\s+`)
	questionEnd    = regexp.MustCompile(`([!?])\s+`)
)

type contraction struct {
	pattern *regexp.Regexp
	short   string
}

func newContraction(long, short string) contraction {
	return contraction{pattern: regexp.MustCompile(`(?i)\b` + long + `\b`), short: short}
}

// contractions 只在对话型人格下使用，tutor 保留完整写法。
var contractions = map[language.Language][]contraction{
	language.English: {
		newContraction("I am", "I'm"),
		newContraction("do not", "don't"),
		newContraction("does not", "doesn't"),
		newContraction("did not", "didn't"),
		newContraction("cannot", "can't"),
		newContraction("will not", "won't"),
		newContraction("it is", "it's"),
		newContraction("that is", "that's"),
		newContraction("you are", "you're"),
		newContraction("we are", "we're"),
		newContraction("they are", "they're"),
		newContraction("let us", "let's"),
		newContraction("I will", "I'll"),
		newContraction("you will", "you'll"),
	},
	language.Spanish: {
		newContraction("a el", "al"),
		newContraction("de el", "del"),
	},
	language.Portuguese: {
		newContraction("de o", "do"),
		newContraction("de a", "da"),
		newContraction("em o", "no"),
		newContraction("em a", "na"),
	},
	language.Italian: {
		newContraction("di il", "del"),
		newContraction("a il", "al"),
	},
}

// Preprocess prepares text for speech: markdown is removed, conversational
// personas get contractions, and the therapist speaks with longer pauses.
func Preprocess(text string, lang language.Language, mode persona.Mode) string {
	out := markdownLink.ReplaceAllString(text, "$1")
	out = markdownHeader.ReplaceAllString(out, "")
	out = listMarker.ReplaceAllString(out, "")
	out = markdownMarks.ReplaceAllString(out, "")
	out = newlines.ReplaceAllString(out, " ")
	out = spaces.ReplaceAllString(out, " ")
	out = strings.TrimSpace(out)
	if out == "" {
		return ""
	}

	if mode.Conversational() {
		for _, c := range contractions[lang] {
			out = c.pattern.ReplaceAllStringFunc(out, func(match string) string {
				return matchCase(match, c.short)
			})
		}
	}

	if mode == persona.Therapist {
		out = periodEnd.ReplaceAllString(out, "$1... ")
		out = questionEnd.ReplaceAllString(out, "$1 ... ")
	}
	return out
}

// matchCase keeps the capitalization of the original first letter.
func matchCase(original, replacement string) string {
	first, _ := utf8.DecodeRuneInString(original)
	head, size := utf8.DecodeRuneInString(replacement)
	if unicode.IsUpper(first) {
		return string(unicode.ToUpper(head)) + replacement[size:]
	}
	if head == 'I' && replacement[size:] != "" && replacement[size] == '\'' {
		return replacement
	}
	return string(unicode.ToLower(head)) + replacement[size:]
}
