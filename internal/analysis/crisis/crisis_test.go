package crisis

import (
	"strings"
	"testing"
)

func TestDetectCriticalScenario(t *testing.T) {
	got := Detect("I want to kill myself")
	if !got.IsCrisis {
		t.Fatal("expected crisis")
	}
	if got.Severity != Critical {
		t.Fatalf("expected critical severity, got %s", got.Severity)
	}
}

func TestDetectNoCrisis(t *testing.T) {
	got := Detect("Hola, estoy muy triste")
	if got.IsCrisis {
		t.Fatalf("unexpected crisis: %+v", got)
	}
	if len(got.Triggers) != 0 {
		t.Fatalf("expected no triggers, got %v", got.Triggers)
	}
}

func TestDetectSeverityGrades(t *testing.T) {
	tests := []struct {
		text string
		want Severity
	}{
		{text: "I feel hopeless", want: Low},
		{text: "I feel hopeless and worthless", want: Medium},
		{text: "I feel hopeless, worthless and I can't go on", want: High},
		{text: "Hopeless. Suicide crossed my mind", want: Critical},
		{text: "SUICIDAL", want: Critical},
	}
	for _, tt := range tests {
		got := Detect(tt.text)
		if !got.IsCrisis || got.Severity != tt.want {
			t.Errorf("Detect(%q) = %+v, want crisis with %s", tt.text, got, tt.want)
		}
	}
}

func TestDetectMatchesEveryLexiconTerm(t *testing.T) {
	for _, term := range Lexicon() {
		got := Detect("prefix " + strings.ToUpper(term) + " suffix")
		if !got.IsCrisis {
			t.Errorf("term %q should flag a crisis", term)
		}
	}
}

func TestSeverityMonotonicInTriggerCount(t *testing.T) {
	prev := -1
	text := ""
	for _, term := range elevatedTerms[:4] {
		text += " " + term
		got := Detect(text)
		if rank := got.Severity.Rank(); rank < prev {
			t.Fatalf("severity decreased at %q: %s", text, got.Severity)
		} else {
			prev = rank
		}
	}
}
