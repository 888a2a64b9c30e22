package ai

import (
	"hash/fnv"
	"math/rand/v2"
	"strconv"
	"strings"
	"unicode"
	"unicode/utf8"

	"github.com/zhouzirui/persona-voice/backend/internal/analysis/emotion"
	"github.com/zhouzirui/persona-voice/backend/internal/model/language"
	"github.com/zhouzirui/persona-voice/backend/internal/model/persona"
)

// fillerProbability 是 naturalizer 添加开头填充词的概率。
const fillerProbability = 0.35

// Rand is the randomness used by the naturalizer. *rand.Rand satisfies it.
type Rand interface {
	Float64() float64
	IntN(n int) int
}

// globalRand 使用 math/rand/v2 的全局源，可并发调用。
type globalRand struct{}

func (globalRand) Float64() float64 { return rand.Float64() }
func (globalRand) IntN(n int) int    { return rand.IntN(n) }

// fallbackReplies 按 mode → 同语言 general → 英文 的顺序查找回复列表。
func fallbackReplies(mode persona.Mode, lang language.Language, bucket emotion.Bucket) []string {
	if !lang.Supported() {
		lang = language.Default
	}
	candidates := []struct {
		mode persona.Mode
		lang language.Language
	}{
		{mode, lang},
		{persona.General, lang},
		{mode, language.Default},
		{persona.General, language.Default},
	}
	for _, c := range candidates {
		if replies := fallbackBank[c.mode][c.lang][bucket]; len(replies) > 0 {
			return replies
		}
	}
	return fallbackBank[persona.General][language.Default][emotion.BucketNeutral]
}

// pickFallback chooses a reply deterministically from the user text and the
// conversation length, so the same turn always yields the same base reply.
func pickFallback(replies []string, userText string, historyLen int) string {
	h := fnv.New32a()
	_, _ = h.Write([]byte(userText))
	_, _ = h.Write([]byte(strconv.Itoa(historyLen)))
	return replies[int(h.Sum32()%uint32(len(replies)))]
}

// naturalize prepends a language-specific filler some of the time, unless the
// reply already opens with one.
func naturalize(text string, lang language.Language, rnd Rand) string {
	options := fillers[lang]
	if len(options) == 0 || rnd == nil {
		return text
	}
	if opensWithFiller(text, options) {
		return text
	}
	if rnd.Float64() >= fillerProbability {
		return text
	}
	filler := options[rnd.IntN(len(options))]
	return filler + lowerFirst(text, filler)
}

func opensWithFiller(text string, options []string) bool {
	lower := strings.ToLower(strings.TrimSpace(text))
	for _, filler := range options {
		core := strings.ToLower(strings.TrimRight(filler, " ,，、،"))
		if core == "" || !strings.HasPrefix(lower, core) {
			continue
		}
		last, _ := utf8.DecodeLastRuneInString(core)
		if unicode.In(last, unicode.Han, unicode.Hiragana, unicode.Katakana) {
			return true
		}
		// "So" must not match "Sounds".
		next, _ := utf8.DecodeRuneInString(lower[len(core):])
		if !unicode.IsLetter(next) {
			return true
		}
	}
	return false
}

// lowerFirst 仅在填充词以空格结尾时把首字母变小写，保留 "I"、缩写等。
func lowerFirst(text, filler string) string {
	if !strings.HasSuffix(filler, " ") {
		return text
	}
	first, size := utf8.DecodeRuneInString(text)
	if first == utf8.RuneError || !unicode.IsUpper(first) {
		return text
	}
	next, _ := utf8.DecodeRuneInString(text[size:])
	if !unicode.IsLower(next) {
		return text
	}
	return string(unicode.ToLower(first)) + text[size:]
}

func crisisReply(lang language.Language) string {
	if reply, ok := crisisReplies[lang]; ok {
		return reply
	}
	return crisisReplies[language.Default]
}
