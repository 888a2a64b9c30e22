// Package prompt 负责拼装人格化、本地化的系统提示词与开场白。
package prompt

import (
	"fmt"
	"strings"

	"github.com/zhouzirui/persona-voice/backend/internal/analysis/crisis"
	"github.com/zhouzirui/persona-voice/backend/internal/analysis/emotion"
	"github.com/zhouzirui/persona-voice/backend/internal/model/language"
	"github.com/zhouzirui/persona-voice/backend/internal/model/persona"
)

// Input carries everything the builder needs for one turn.
type Input struct {
	Mode         persona.Mode
	Language     language.Language
	Emotion      emotion.Context
	Crisis       crisis.Assessment
	Preferences  persona.Preferences
	Continuing   bool
	LearningMode bool
}

// Build composes the system prompt: persona template, speaking style,
// language directive, then the clauses that apply to this turn.
func Build(in Input) string {
	lang := in.Language
	if !lang.Supported() {
		lang = language.Default
	}

	var builder strings.Builder
	builder.WriteString(template(in.Mode, lang))
	builder.WriteString("\n\n")
	builder.WriteString(naturalSpeech)
	builder.WriteString("\n\n")
	builder.WriteString(languageDirective(lang))

	if clause := empathyClause(in.Emotion); clause != "" {
		builder.WriteString("\n\n")
		builder.WriteString(clause)
	}
	if in.Crisis.IsCrisis {
		builder.WriteString("\n\n")
		builder.WriteString(crisisClause(in.Crisis))
	}
	if in.Continuing {
		builder.WriteString("\n\nThis is an ongoing conversation. Do not greet the user again or reintroduce yourself; pick up naturally from the previous turns.")
	}
	if clause := preferenceClause(in.Mode, in.Preferences); clause != "" {
		builder.WriteString("\n\n")
		builder.WriteString(clause)
	}
	if in.LearningMode {
		builder.WriteString("\n\nLearning mode is on: be precise, correct any factual or grammar mistakes the user makes, and finish with one short question that checks understanding.")
	}

	return builder.String()
}

func template(mode persona.Mode, lang language.Language) string {
	byLang, ok := personaTemplates[mode]
	if !ok {
		byLang = personaTemplates[persona.General]
	}
	if text, ok := byLang[lang]; ok {
		return text
	}
	return byLang[language.Default]
}

func languageDirective(lang language.Language) string {
	return fmt.Sprintf("Always reply in %s (%s), even if the user mixes languages. Never switch languages unless the user explicitly asks.", lang.Name(), lang.Tag())
}

func empathyClause(ctx emotion.Context) string {
	desc := describeEmotion(ctx.DetectedEmotion)
	if desc == "" {
		return ""
	}
	clause := fmt.Sprintf("Emotional context: %s (confidence %d%%).", desc, ctx.Confidence)
	if len(ctx.Triggers) > 0 {
		clause += fmt.Sprintf(" Cues: %s.", strings.Join(ctx.Triggers, ", "))
	}
	return clause + " Acknowledge how they feel before anything else."
}

func describeEmotion(label emotion.Label) string {
	switch label {
	case emotion.Happy:
		return "the user sounds happy, so match their warmth and celebrate with them"
	case emotion.Sad:
		return "the user sounds sad, so be gentle, slow down and validate the feeling"
	case emotion.Angry:
		return "the user sounds angry or frustrated, so stay steady and calm without being defensive"
	case emotion.Anxious:
		return "the user sounds anxious, so be reassuring and offer one small grounding step"
	case emotion.Confused:
		return "the user sounds confused, so simplify and check what part is unclear"
	case emotion.Excited:
		return "the user sounds excited, so keep the energy up and be curious about the details"
	default:
		return ""
	}
}

func crisisClause(a crisis.Assessment) string {
	return fmt.Sprintf("Safety: the user may be at risk of self-harm (severity %s). Respond with compassion, take them seriously, encourage them to contact a local crisis line or emergency services right away, and do not give any advice about methods.", a.Severity)
}

func preferenceClause(mode persona.Mode, prefs persona.Preferences) string {
	var parts []string
	if tone := strings.TrimSpace(prefs.Tone); tone != "" {
		parts = append(parts, fmt.Sprintf("use a %s tone", tone))
	}
	switch prefs.Age {
	case persona.AgeChild:
		parts = append(parts, "the user is a child, so use simple words, short sentences and keep everything age-appropriate")
	case persona.AgeTeen:
		parts = append(parts, "the user is a teenager, so be relaxed and relatable without being condescending")
	case persona.AgeAdult:
		if mode == persona.Friend {
			parts = append(parts, "the user is an adult")
		}
	}
	if len(parts) == 0 {
		return ""
	}
	return "User preferences: " + strings.Join(parts, "; ") + "."
}
