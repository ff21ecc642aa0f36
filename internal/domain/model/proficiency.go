package model

import "strings"

// Proficiency is a skill's self-assessed level. Unknown values are kept verbatim.
type Proficiency string

// Proficiency levels, lowest first.
const (
	Beginner     Proficiency = "Beginner"
	Novice       Proficiency = "Novice"
	Intermediate Proficiency = "Intermediate"
	Competent    Proficiency = "Competent"
	Proficient   Proficiency = "Proficient"
	Advanced     Proficiency = "Advanced"
	Expert       Proficiency = "Expert"
	Master       Proficiency = "Master"
)

var proficiencyOrder = []Proficiency{
	Beginner, Novice, Intermediate, Competent, Proficient, Advanced, Expert, Master,
}

// ParseProficiency normalizes case ("expert" -> Expert). Unknown input is returned trimmed.
func ParseProficiency(s string) Proficiency {
	s = strings.TrimSpace(s)
	for _, p := range proficiencyOrder {
		if strings.EqualFold(s, string(p)) {
			return p
		}
	}
	return Proficiency(s)
}

// Rank is 1 (Beginner) through 8 (Master), 0 for unknown levels.
func (p Proficiency) Rank() int {
	for i, q := range proficiencyOrder {
		if p == q {
			return i + 1
		}
	}
	return 0
}

// Valid reports whether p is one of the eight known levels.
func (p Proficiency) Valid() bool { return p.Rank() > 0 }
