package voice

import (
	"testing"

	"github.com/zhouzirui/persona-voice/backend/internal/model/language"
	"github.com/zhouzirui/persona-voice/backend/internal/model/persona"
)

func TestPreprocess(t *testing.T) {
	tests := []struct {
		name string
		text string
		lang language.Language
		mode persona.Mode
		want string
	}{
		{
			name: "markdown removed",
			text: "## Plan\n- **Drink** water\n- read [this](https://example.com)",
			lang: language.English,
			mode: persona.Tutor,
			want: "Plan Drink water read this",
		},
		{
			name: "english contractions for friend",
			text: "I am sure it is fine. You are doing great!",
			lang: language.English,
			mode: persona.Friend,
			want: "I'm sure it's fine. You're doing great!",
		},
		{
			name: "lower case contraction",
			text: "we do not stop",
			lang: language.English,
			mode: persona.Coach,
			want: "we don't stop",
		},
		{
			name: "tutor keeps full forms",
			text: "It is a verb. I am here.",
			lang: language.English,
			mode: persona.Tutor,
			want: "It is a verb. I am here.",
		},
		{
			name: "therapist pauses",
			text: "I hear you. That is hard? Take a breath.",
			lang: language.English,
			mode: persona.Therapist,
			want: "I hear you... That's hard? ... Take a breath.",
		},
		{
			name: "spanish contractions",
			text: "Vamos a el parque de el barrio",
			lang: language.Spanish,
			mode: persona.Friend,
			want: "Vamos al parque del barrio",
		},
		{
			name: "only markup",
			text: "** __ **",
			lang: language.English,
			mode: persona.General,
			want: "",
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := Preprocess(tt.text, tt.lang, tt.mode); got != tt.want {
				t.Errorf("Preprocess() = %q, want %q", got, tt.want)
			}
		})
	}
}
