// Package family holds the person model the renderer reads from.
//
// Only the attributes that influence drawing are modelled: a display name,
// a dates string, gender, and the deceased/infant flags. Persons are
// identified by pointer; layouts key their positions by *Person.
package family

import (
	"strings"
)

// Gender selects the sex classification of a person marker.
type Gender int

// Any value other than GenderMale and GenderFemale is treated as
// GenderOther.
const (
	GenderOther Gender = iota
	GenderMale
	GenderFemale
)

var genderNames = map[Gender]string{
	GenderOther:  "other",
	GenderMale:   "male",
	GenderFemale: "female",
}

// String returns "male", "female" or "other".
func (g Gender) String() string {
	if s, ok := genderNames[g]; ok {
		return s
	}
	return genderNames[GenderOther]
}

// ParseGender maps a case-insensitive name to a Gender. Unknown and empty
// names map to GenderOther.
func ParseGender(s string) Gender {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "male", "m":
		return GenderMale
	case "female", "f":
		return GenderFemale
	default:
		return GenderOther
	}
}

// Person is one individual of a family tree.
type Person struct {
	ID        string
	FirstName string
	LastName  string
	Birth     string // free-form, typically a year
	Death     string // free-form; may be empty for deceased persons with unknown date
	Gender    Gender
	Deceased  bool
	Child     bool // drawn with the infant marker
}

// FullName joins the first and last name.
func (p *Person) FullName() string {
	return strings.TrimSpace(p.FirstName + " " + p.LastName)
}

// Dates formats the life span shown under the name, e.g. "1901 – 1980".
// Living persons show only their birth date; unknown death dates of
// deceased persons render as "?".
func (p *Person) Dates() string {
	birth, death := p.Birth, p.Death
	if !p.Deceased && death == "" {
		return birth
	}
	if birth == "" {
		birth = "?"
	}
	if death == "" {
		death = "?"
	}
	return birth + " – " + death
}

// IsChild reports whether the person is drawn as an infant.
func (p *Person) IsChild() bool {
	return p.Child
}
