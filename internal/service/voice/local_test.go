package voice

import (
	"context"
	"io"
	"os"
	"path/filepath"
	"runtime"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/zhouzirui/persona-voice/backend/internal/model/persona"
)

const espeakVoices = `Pty Language       Age/Gender VoiceName          File                 Other Languages
 5  af              --/M      Afrikaans          gmw/af
 5  en-gb           --/M      English_(Great_Britain) gmw/en           (en 2)
 2  en-us           --/F      English_(America)  gmw/en-US            (en 3)
 5  es              --/M      Spanish_(Spain)    roa/es
 5  fr-fr           --/M      French_(France)    roa/fr               (fr 5)
 5  de              --/-      German_woman       gmw/de
`

func TestParseEspeakVoices(t *testing.T) {
	voices := parseEspeakVoices([]byte(espeakVoices))
	require.Len(t, voices, 6)

	assert.Equal(t, LocalVoice{Identifier: "en-gb", Language: "en-gb", Name: "English (Great Britain)", Gender: persona.Male}, voices[1])
	assert.Equal(t, persona.Female, voices[2].Gender)
	assert.Equal(t, persona.Female, voices[5].Gender, "gender from name")
}

func TestGenderFromName(t *testing.T) {
	tests := map[string]persona.Gender{
		"German woman":   persona.Female,
		"Alex (male)":    persona.Male,
		"Female Voice 2": persona.Female,
		"Samantha":       persona.GenderGeneral,
		"Manuela":        persona.GenderGeneral,
	}
	for name, want := range tests {
		if got := genderFromName(name); got != want {
			t.Errorf("genderFromName(%q) = %s, want %s", name, got, want)
		}
	}
}

func TestSelectVoice(t *testing.T) {
	voices := parseEspeakVoices([]byte(espeakVoices))

	tests := []struct {
		name   string
		tag    string
		gender persona.Gender
		want   string
		ok     bool
	}{
		{"exact tag and gender", "en-US", persona.Female, "en-us", true},
		{"same language other region for gender", "en-US", persona.Male, "en-gb", true},
		{"general gender", "es-ES", persona.GenderGeneral, "es", true},
		{"region insensitive", "fr-FR", persona.Female, "fr-fr", true},
		{"gender from name", "de-DE", persona.Female, "de", true},
		{"no voice for language", "ja-JP", persona.Female, "", false},
		{"invalid tag", "??", persona.Female, "", false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, ok := SelectVoice(voices, tt.tag, tt.gender)
			assert.Equal(t, tt.ok, ok)
			if tt.ok {
				assert.Equal(t, tt.want, got.Identifier)
			}
		})
	}

	_, ok := SelectVoice(nil, "en-US", persona.Female)
	assert.False(t, ok)
}

func TestVariantFor(t *testing.T) {
	male := LocalVoice{Identifier: "en-gb", Gender: persona.Male}
	female := LocalVoice{Identifier: "en-us", Gender: persona.Female}

	assert.Equal(t, "en-gb+f3", variantFor(male, persona.Female))
	assert.Equal(t, "en-us+m3", variantFor(female, persona.Male))
	assert.Equal(t, "en-gb", variantFor(male, persona.Male))
	assert.Equal(t, "en-us", variantFor(female, persona.GenderGeneral))
}

func TestScale(t *testing.T) {
	assert.Equal(t, 175, scale(175, 1.0, 80, 450))
	assert.Equal(t, 149, scale(175, 0.85, 80, 450))
	assert.Equal(t, 50, scale(50, 0, 0, 99))
	assert.Equal(t, 200, scale(100, 5, 0, 200))
}

// stubEspeak 写入一个模拟 espeak-ng 的脚本：列出一个英语声音，合成时执行 body。
func stubEspeak(t *testing.T, body string) *Espeak {
	t.Helper()
	if runtime.GOOS == "windows" {
		t.Skip("shell stub needs a POSIX shell")
	}
	script := "#!/bin/sh\n" +
		"if [ \"$1\" = \"--voices\" ]; then\n" +
		"  echo 'Pty Language Age/Gender VoiceName File'\n" +
		"  echo ' 5  en-us --/F English_(America) gmw/en-US'\n" +
		"  exit 0\n" +
		"fi\n" + body + "\n"
	path := filepath.Join(t.TempDir(), "espeak-ng")
	require.NoError(t, os.WriteFile(path, []byte(script), 0o755))
	engine, err := NewEspeak(path)
	require.NoError(t, err)
	return engine
}

func TestEspeakExitStatusOnClose(t *testing.T) {
	engine := stubEspeak(t, "printf RIFF\necho 'unknown voice' >&2\nexit 1")

	stream, err := engine.Synthesize(context.Background(), LocalRequest{Text: "hello", VoiceName: "en-us"})
	require.NoError(t, err)
	data, err := io.ReadAll(stream)
	require.NoError(t, err)
	assert.Equal(t, "RIFF", string(data))

	err = stream.Close()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "unknown voice")
	assert.Equal(t, err, stream.Close(), "close is idempotent")
}

func TestEspeakCleanExit(t *testing.T) {
	engine := stubEspeak(t, "printf RIFF")

	stream, err := engine.Synthesize(context.Background(), LocalRequest{Text: "hello", VoiceName: "en-us"})
	require.NoError(t, err)
	_, err = io.ReadAll(stream)
	require.NoError(t, err)
	assert.NoError(t, stream.Close())
}

func TestEspeakEarlyCloseIsNotFailure(t *testing.T) {
	engine := stubEspeak(t, "printf RIFF\nexec sleep 5")

	stream, err := engine.Synthesize(context.Background(), LocalRequest{Text: "hello", VoiceName: "en-us"})
	require.NoError(t, err)
	buf := make([]byte, 4)
	_, err = io.ReadFull(stream, buf)
	require.NoError(t, err)
	assert.NoError(t, stream.Close(), "killing the process ourselves is not an engine failure")
}

func TestSpeakLocalExitFailureEmitsNotice(t *testing.T) {
	engine := stubEspeak(t, "printf RIFF\necho 'bad voice' >&2\nexit 1")
	player := &recordingPlayer{}
	var notices []string
	synth := NewSynthesizer(player, WithLocal(engine), WithNotifier(func(n string) { notices = append(notices, n) }))

	res, err := synth.Speak(context.Background(), english("Hello"))
	require.NoError(t, err)
	assert.Equal(t, NoticeFailed, res.Notice)
	assert.Equal(t, []string{NoticeFailed}, notices)
}
