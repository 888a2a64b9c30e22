// Package crisis flags messages that may indicate self-harm risk.
package crisis

import "strings"

// Severity grades a crisis assessment.
type Severity string

const (
	Low      Severity = "low"
	Medium   Severity = "medium"
	High     Severity = "high"
	Critical Severity = "critical"
)

// Assessment is computed per turn and never persisted.
type Assessment struct {
	IsCrisis bool     `json:"isCrisis"`
	Severity Severity `json:"severity"`
	Triggers []string `json:"triggers,omitempty"`
}

// criticalTerms force Critical regardless of how many other terms matched.
var criticalTerms = []string{
	"kill myself", "suicide", "suicidal", "end my life", "want to die", "overdose",
	"suicidarme", "quiero morir", "matarme", "quitarme la vida",
	"me suicider", "me tuer", "envie de mourir",
	"mich umbringen", "selbstmord", "sterben will",
	"uccidermi", "voglio morire", "suicidio",
	"me matar", "quero morrer",
	"自杀", "不想活", "死にたい", "自殺", "자살", "죽고 싶", "покончить с собой", "суицид",
	"انتحار", "أريد أن أموت", "आत्महत्या",
}

var elevatedTerms = []string{
	"self harm", "self-harm", "hurt myself", "cut myself", "no reason to live", "better off dead",
	"can't go on", "cannot go on", "hopeless", "end it all", "give up on life", "worthless",
	"hacerme daño", "sin esperanza", "no puedo más", "me faire du mal", "sans espoir",
	"mir wehtun", "hoffnungslos", "farmi del male", "senza speranza", "me machucar", "sem esperança",
	"伤害自己", "绝望", "消えたい", "自傷", "절망", "не хочу жить", "безнадежно", "बेकार हूँ",
}

// Lexicon returns every term that can flag a crisis.
func Lexicon() []string {
	all := make([]string, 0, len(criticalTerms)+len(elevatedTerms))
	all = append(all, criticalTerms...)
	return append(all, elevatedTerms...)
}

// Detect reports a crisis iff some lexicon term is a substring of the
// lower-cased input. Severity grows with the number of distinct triggers.
func Detect(text string) Assessment {
	lower := strings.ToLower(text)

	var (
		triggers []string
		critical bool
	)
	for _, term := range criticalTerms {
		if strings.Contains(lower, term) {
			triggers = append(triggers, term)
			critical = true
		}
	}
	for _, term := range elevatedTerms {
		if strings.Contains(lower, term) {
			triggers = append(triggers, term)
		}
	}

	if len(triggers) == 0 {
		return Assessment{Severity: Low}
	}

	return Assessment{
		IsCrisis: true,
		Severity: grade(len(triggers), critical),
		Triggers: triggers,
	}
}

func grade(count int, critical bool) Severity {
	switch {
	case critical:
		return Critical
	case count >= 3:
		return High
	case count >= 2:
		return Medium
	default:
		return Low
	}
}

// Rank orders severities for comparisons.
func (s Severity) Rank() int {
	switch s {
	case Critical:
		return 3
	case High:
		return 2
	case Medium:
		return 1
	default:
		return 0
	}
}
