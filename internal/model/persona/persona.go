package persona

import "strings"

// Mode identifies one of the AI personas.
type Mode string

const (
	Coach     Mode = "coach"
	Therapist Mode = "therapist"
	Tutor     Mode = "tutor"
	Friend    Mode = "friend"
	General   Mode = "general"
)

// Modes lists every persona in declaration order.
var Modes = []Mode{Coach, Therapist, Tutor, Friend, General}

// ParseMode returns General for unknown input.
func ParseMode(raw string) Mode {
	m := Mode(strings.ToLower(strings.TrimSpace(raw)))
	for _, known := range Modes {
		if m == known {
			return m
		}
	}
	return General
}

// Conversational reports whether the persona favors variety over precision.
func (m Mode) Conversational() bool {
	return m != Tutor
}

// Gender is the preferred voice gender.
type Gender string

const (
	Female        Gender = "female"
	Male          Gender = "male"
	GenderGeneral Gender = "general"
)

// ParseGender returns GenderGeneral for unknown input.
func ParseGender(raw string) Gender {
	switch Gender(strings.ToLower(strings.TrimSpace(raw))) {
	case Female:
		return Female
	case Male:
		return Male
	default:
		return GenderGeneral
	}
}

// AgeVariant selects the friend persona's register.
type AgeVariant string

const (
	AgeChild AgeVariant = "child"
	AgeTeen  AgeVariant = "teen"
	AgeAdult AgeVariant = "adult"
)

// ParseAge returns the empty variant for unknown input, which callers treat as adult.
func ParseAge(raw string) AgeVariant {
	switch AgeVariant(strings.ToLower(strings.TrimSpace(raw))) {
	case AgeChild:
		return AgeChild
	case AgeTeen:
		return AgeTeen
	case AgeAdult:
		return AgeAdult
	default:
		return ""
	}
}

// Preferences captures user-tunable persona settings.
type Preferences struct {
	Tone           string     `json:"tone,omitempty"`
	Age            AgeVariant `json:"age,omitempty"`
	Gender         Gender     `json:"gender,omitempty"`
	PersistHistory bool       `json:"persistHistory"`
}

// Persona captures the presentation attributes exposed to the frontend.
type Persona struct {
	Mode        Mode     `json:"mode"`
	Name        string   `json:"name"`
	Title       string   `json:"title"`
	Tone        string   `json:"tone"`
	Description string   `json:"description,omitempty"`
	Traits      []string `json:"traits,omitempty"`
}

// Seed provides the built-in personas, one per mode.
func Seed() []Persona {
	return []Persona{
		{
			Mode:        Coach,
			Name:        "Max",
			Title:       "Motivation coach",
			Tone:        "energetic, direct, encouraging",
			Description: "Helps the user set goals, build habits and keep momentum.",
			Traits:      []string{"optimistic", "action-oriented", "accountable"},
		},
		{
			Mode:        Therapist,
			Name:        "Dr. Rivera",
			Title:       "Supportive listener",
			Tone:        "calm, warm, non-judgmental",
			Description: "Offers a safe space to talk through feelings, grounded in reflective listening.",
			Traits:      []string{"patient", "empathetic", "gentle"},
		},
		{
			Mode:        Tutor,
			Name:        "Professor Lee",
			Title:       "Patient tutor",
			Tone:        "clear, precise, encouraging",
			Description: "Explains concepts step by step and checks understanding along the way.",
			Traits:      []string{"methodical", "accurate", "curious"},
		},
		{
			Mode:        Friend,
			Name:        "Sam",
			Title:       "Friendly companion",
			Tone:        "casual, playful, supportive",
			Description: "Chats about anything, shares a laugh and listens like a good friend.",
			Traits:      []string{"fun", "loyal", "easy-going"},
		},
		{
			Mode:        General,
			Name:        "Aria",
			Title:       "Helpful assistant",
			Tone:        "friendly, balanced, informative",
			Description: "An all-round assistant for everyday questions and conversation.",
			Traits:      []string{"helpful", "versatile", "honest"},
		},
	}
}
