package ai

import (
	"testing"

	"github.com/zhouzirui/persona-voice/backend/internal/analysis/emotion"
	"github.com/zhouzirui/persona-voice/backend/internal/model/language"
	"github.com/zhouzirui/persona-voice/backend/internal/model/persona"
)

var buckets = []emotion.Bucket{emotion.BucketNeutral, emotion.BucketDistress, emotion.BucketPositive}

func TestBankCoverage(t *testing.T) {
	for _, lang := range language.All {
		if crisisReplies[lang] == "" {
			t.Errorf("missing crisis reply for %s", lang)
		}
		if len(fillers[lang]) == 0 {
			t.Errorf("missing fillers for %s", lang)
		}
		for _, b := range buckets {
			if len(fallbackBank[persona.General][lang][b]) == 0 {
				t.Errorf("missing general bank for %s/%s", lang, b)
			}
		}
	}
	for _, mode := range persona.Modes {
		for _, b := range buckets {
			if len(fallbackBank[mode][language.English][b]) == 0 {
				t.Errorf("missing english bank for %s/%s", mode, b)
			}
		}
	}
}

func TestFallbackRepliesLookupOrder(t *testing.T) {
	tests := []struct {
		name string
		mode persona.Mode
		lang language.Language
		want []string
	}{
		{"exact", persona.Friend, language.Spanish, fallbackBank[persona.Friend][language.Spanish][emotion.BucketNeutral]},
		{"same language general", persona.Tutor, language.Japanese, fallbackBank[persona.General][language.Japanese][emotion.BucketNeutral]},
		{"unsupported language", persona.Tutor, language.Language("xx"), fallbackBank[persona.Tutor][language.English][emotion.BucketNeutral]},
		{"unknown mode", persona.Mode("pirate"), language.French, fallbackBank[persona.General][language.French][emotion.BucketNeutral]},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := fallbackReplies(tt.mode, tt.lang, emotion.BucketNeutral)
			if len(got) != len(tt.want) || got[0] != tt.want[0] {
				t.Fatalf("fallbackReplies = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestNaturalize(t *testing.T) {
	tests := []struct {
		name string
		text string
		lang language.Language
		rnd  Rand
		want string
	}{
		{"adds filler and lowers first letter", "That sounds hard.", language.English, fixedRand{f: 0.1, n: 0}, "Well, that sounds hard."},
		{"keeps pronoun I", "I hear you.", language.English, fixedRand{f: 0.1, n: 1}, "You know, I hear you."},
		{"above probability", "That sounds hard.", language.English, fixedRand{f: 0.35, n: 0}, "That sounds hard."},
		{"already opens with filler", "Well, maybe.", language.English, fixedRand{f: 0.0, n: 2}, "Well, maybe."},
		{"word boundary", "Sounds good!", language.English, fixedRand{f: 0.1, n: 0}, "Well, sounds good!"},
		{"chinese", "太好了！", language.Chinese, fixedRand{f: 0.1, n: 0}, "嗯，太好了！"},
		{"chinese already", "其实我也这么想。", language.Chinese, fixedRand{f: 0.1, n: 0}, "其实我也这么想。"},
		{"nil rand", "Hi.", language.English, nil, "Hi."},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := naturalize(tt.text, tt.lang, tt.rnd); got != tt.want {
				t.Fatalf("naturalize = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestPickFallbackStable(t *testing.T) {
	replies := []string{"a", "b", "c"}
	first := pickFallback(replies, "hello", 3)
	for range 10 {
		if got := pickFallback(replies, "hello", 3); got != first {
			t.Fatalf("pickFallback not stable: %q vs %q", got, first)
		}
	}
}
