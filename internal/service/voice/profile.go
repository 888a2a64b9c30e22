package voice

import (
	"github.com/zhouzirui/persona-voice/backend/internal/model/language"
	"github.com/zhouzirui/persona-voice/backend/internal/model/persona"
)

// DefaultVoiceID is used when a language has no voice table at all.
const DefaultVoiceID = "21m00Tcm4TlvDq8ikWAM"

// ElevenLabs 多语言模型下可用的预置音色。
const (
	voiceRachel = "21m00Tcm4TlvDq8ikWAM"
	voiceBella  = "EXAVITQu4vr4xnSDxMaL"
	voiceElli   = "MF3mGyEYCl7XYWbV9V6O"
	voiceDomi   = "AZnzlk1XvdvUeBnXmlld"
	voiceAdam   = "pNInz6obpgDQGcFmaJgB"
	voiceAntoni = "ErXwobaYiN019PkySvjV"
	voiceJosh   = "TxGEqnHWrfWFTfGW9XjX"
	voiceSam    = "yoZ06aMxZJJ28mfd3POQ"
)

type modeVoices map[persona.Mode]string

// voiceTable: language → gender → mode。每个 gender 桶都应有 General 条目。
var voiceTable = map[language.Language]map[persona.Gender]modeVoices{
	language.English: {
		persona.Female: {
			persona.General:   voiceRachel,
			persona.Therapist: voiceBella,
			persona.Friend:    voiceElli,
			persona.Coach:     voiceDomi,
			persona.Tutor:     voiceRachel,
		},
		persona.Male: {
			persona.General:   voiceAdam,
			persona.Therapist: voiceAntoni,
			persona.Coach:     voiceJosh,
			persona.Friend:    voiceSam,
			persona.Tutor:     voiceAdam,
		},
		persona.GenderGeneral: {
			persona.General:   voiceRachel,
			persona.Therapist: voiceBella,
			persona.Coach:     voiceJosh,
			persona.Friend:    voiceElli,
		},
	},
	language.Spanish: {
		persona.Female:        {persona.General: voiceBella, persona.Friend: voiceElli},
		persona.Male:          {persona.General: voiceAntoni, persona.Coach: voiceJosh},
		persona.GenderGeneral: {persona.General: voiceBella},
	},
	language.French: {
		persona.Female:        {persona.General: voiceBella},
		persona.Male:          {persona.General: voiceAntoni},
		persona.GenderGeneral: {persona.General: voiceBella},
	},
	language.German: {
		persona.Female:        {persona.General: voiceRachel},
		persona.Male:          {persona.General: voiceAdam},
		persona.GenderGeneral: {persona.General: voiceRachel},
	},
	language.Italian: {
		persona.Female:        {persona.General: voiceBella},
		persona.Male:          {persona.General: voiceAntoni},
		persona.GenderGeneral: {persona.General: voiceBella},
	},
	language.Portuguese: {
		persona.Female:        {persona.General: voiceBella},
		persona.Male:          {persona.General: voiceAntoni},
		persona.GenderGeneral: {persona.General: voiceBella},
	},
	language.Chinese: {
		persona.Female:        {persona.General: voiceRachel},
		persona.Male:          {persona.General: voiceAdam},
		persona.GenderGeneral: {persona.General: voiceRachel},
	},
	language.Japanese: {
		persona.Female:        {persona.General: voiceElli},
		persona.Male:          {persona.General: voiceSam},
		persona.GenderGeneral: {persona.General: voiceElli},
	},
	language.Korean: {
		persona.Female:        {persona.General: voiceElli},
		persona.Male:          {persona.General: voiceSam},
		persona.GenderGeneral: {persona.General: voiceElli},
	},
	language.Arabic: {
		persona.GenderGeneral: {persona.General: voiceAdam},
	},
	language.Hindi: {
		persona.GenderGeneral: {persona.General: voiceRachel},
	},
	language.Russian: {
		persona.Male:          {persona.General: voiceAdam},
		persona.GenderGeneral: {persona.General: voiceAdam},
	},
}

// Resolve maps (language, gender, mode) to a provider voice id. A missing
// gender bucket falls back to the language's general bucket; a missing
// language falls back to DefaultVoiceID.
func Resolve(lang language.Language, gender persona.Gender, mode persona.Mode) string {
	byGender, ok := voiceTable[lang]
	if !ok {
		return DefaultVoiceID
	}
	general := byGender[persona.GenderGeneral]

	bucket, ok := byGender[gender]
	if !ok {
		bucket = general
	}
	if id := bucket[mode]; id != "" {
		return id
	}
	if id := bucket[persona.General]; id != "" {
		return id
	}
	if id := general[persona.General]; id != "" {
		return id
	}
	return DefaultVoiceID
}

// Settings are the ElevenLabs voice_settings for a persona.
type Settings struct {
	Stability       float64 `json:"stability"`
	SimilarityBoost float64 `json:"similarity_boost"`
	Style           float64 `json:"style"`
	UseSpeakerBoost bool    `json:"use_speaker_boost"`
}

var modeSettings = map[persona.Mode]Settings{
	persona.Coach:     {Stability: 0.45, SimilarityBoost: 0.8, Style: 0.6, UseSpeakerBoost: true},
	persona.Therapist: {Stability: 0.75, SimilarityBoost: 0.75, Style: 0.2, UseSpeakerBoost: true},
	persona.Tutor:     {Stability: 0.7, SimilarityBoost: 0.8, Style: 0.1, UseSpeakerBoost: true},
	persona.Friend:    {Stability: 0.4, SimilarityBoost: 0.75, Style: 0.55, UseSpeakerBoost: true},
	persona.General:   {Stability: 0.6, SimilarityBoost: 0.75, Style: 0.3, UseSpeakerBoost: true},
}

// SettingsFor returns the voice settings for mode.
func SettingsFor(mode persona.Mode) Settings {
	if s, ok := modeSettings[mode]; ok {
		return s
	}
	return modeSettings[persona.General]
}

// Prosody drives local synthesis; 1.0 is the engine default.
type Prosody struct {
	Rate   float64
	Pitch  float64
	Volume float64
}

var modeProsody = map[persona.Mode]Prosody{
	persona.Coach:     {Rate: 1.1, Pitch: 1.05, Volume: 1.0},
	persona.Therapist: {Rate: 0.85, Pitch: 0.95, Volume: 0.9},
	persona.Tutor:     {Rate: 0.95, Pitch: 1.0, Volume: 1.0},
	persona.Friend:    {Rate: 1.05, Pitch: 1.1, Volume: 1.0},
	persona.General:   {Rate: 1.0, Pitch: 1.0, Volume: 1.0},
}

// ProsodyFor returns the local synthesis prosody for mode.
func ProsodyFor(mode persona.Mode) Prosody {
	if p, ok := modeProsody[mode]; ok {
		return p
	}
	return modeProsody[persona.General]
}
