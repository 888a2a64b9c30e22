package voice

import (
	"testing"

	"github.com/zhouzirui/persona-voice/backend/internal/model/language"
	"github.com/zhouzirui/persona-voice/backend/internal/model/persona"
)

func TestResolve(t *testing.T) {
	tests := []struct {
		name   string
		lang   language.Language
		gender persona.Gender
		mode   persona.Mode
		want   string
	}{
		{"exact entry", language.English, persona.Male, persona.Coach, voiceJosh},
		{"mode missing in bucket", language.English, persona.GenderGeneral, persona.Tutor, voiceRachel},
		{"bucket general", language.Spanish, persona.Female, persona.Therapist, voiceBella},
		{"missing gender bucket", language.Arabic, persona.Female, persona.Friend, voiceAdam},
		{"missing female bucket uses general", language.Russian, persona.Female, persona.General, voiceAdam},
		{"unsupported language", language.Language("xx"), persona.Male, persona.Coach, DefaultVoiceID},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := Resolve(tt.lang, tt.gender, tt.mode); got != tt.want {
				t.Errorf("Resolve(%s, %s, %s) = %s, want %s", tt.lang, tt.gender, tt.mode, got, tt.want)
			}
		})
	}
}

func TestEveryLanguageHasGeneralVoice(t *testing.T) {
	for _, lang := range language.All {
		byGender, ok := voiceTable[lang]
		if !ok {
			t.Errorf("language %s has no voice table", lang)
			continue
		}
		if byGender[persona.GenderGeneral][persona.General] == "" {
			t.Errorf("language %s has no general voice", lang)
		}
		for _, gender := range []persona.Gender{persona.Female, persona.Male, persona.GenderGeneral} {
			for _, mode := range persona.Modes {
				if Resolve(lang, gender, mode) == "" {
					t.Errorf("Resolve(%s, %s, %s) is empty", lang, gender, mode)
				}
			}
		}
	}
}

func TestSettingsAndProsodyCoverModes(t *testing.T) {
	for _, mode := range persona.Modes {
		if s := SettingsFor(mode); s.SimilarityBoost == 0 {
			t.Errorf("SettingsFor(%s) is empty", mode)
		}
		if p := ProsodyFor(mode); p.Rate == 0 {
			t.Errorf("ProsodyFor(%s) is empty", mode)
		}
	}
	if SettingsFor(persona.Mode("unknown")) != SettingsFor(persona.General) {
		t.Error("unknown mode should use general settings")
	}
}
