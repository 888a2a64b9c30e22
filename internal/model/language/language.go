// Package language defines the closed set of conversation languages.
package language

import "strings"

// Language is a supported ISO-639-1 conversation language.
type Language string

const (
	English    Language = "en"
	Spanish    Language = "es"
	French     Language = "fr"
	German     Language = "de"
	Italian    Language = "it"
	Portuguese Language = "pt"
	Chinese    Language = "zh"
	Japanese   Language = "ja"
	Korean     Language = "ko"
	Arabic     Language = "ar"
	Hindi      Language = "hi"
	Russian    Language = "ru"
)

// Default is used whenever detection or lookup misses.
const Default = English

// All lists every supported language in declaration order.
var All = []Language{
	English, Spanish, French, German, Italian, Portuguese,
	Chinese, Japanese, Korean, Arabic, Hindi, Russian,
}

var tags = map[Language]string{
	English:    "en-US",
	Spanish:    "es-ES",
	French:     "fr-FR",
	German:     "de-DE",
	Italian:    "it-IT",
	Portuguese: "pt-BR",
	Chinese:    "zh-CN",
	Japanese:   "ja-JP",
	Korean:     "ko-KR",
	Arabic:     "ar-SA",
	Hindi:      "hi-IN",
	Russian:    "ru-RU",
}

var names = map[Language]string{
	English:    "English",
	Spanish:    "Spanish",
	French:     "French",
	German:     "German",
	Italian:    "Italian",
	Portuguese: "Portuguese",
	Chinese:    "Simplified Chinese",
	Japanese:   "Japanese",
	Korean:     "Korean",
	Arabic:     "Arabic",
	Hindi:      "Hindi",
	Russian:    "Russian",
}

// Parse normalizes a code or BCP-47 tag ("es", "ES", "es-MX", "pt_BR") into a
// supported language, returning Default for anything outside the set.
func Parse(raw string) Language {
	code := strings.ToLower(strings.TrimSpace(raw))
	if i := strings.IndexAny(code, "-_"); i >= 0 {
		code = code[:i]
	}
	lang := Language(code)
	if lang.Supported() {
		return lang
	}
	return Default
}

// Supported reports whether l belongs to the closed set.
func (l Language) Supported() bool {
	_, ok := tags[l]
	return ok
}

// Tag returns the BCP-47 tag used for speech synthesis.
func (l Language) Tag() string {
	if tag, ok := tags[l]; ok {
		return tag
	}
	return tags[Default]
}

// Name returns the English display name used in prompt directives.
func (l Language) Name() string {
	if name, ok := names[l]; ok {
		return name
	}
	return names[Default]
}

func (l Language) String() string {
	return string(l)
}
