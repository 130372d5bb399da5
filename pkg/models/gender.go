package models

import "strings"

// Gender is the gender label attached to catalog products and outfits.
type Gender string

const (
	GenderMale   Gender = "Male"
	GenderFemale Gender = "Female"
	GenderUnisex Gender = "Unisex"
)

// ParseGender validates a free-form gender string against the fixed enum.
// External inference capabilities return plain strings; anything outside the
// enum must be treated as invalid by the caller rather than propagated.
func ParseGender(s string) (Gender, bool) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "male", "men", "man":
		return GenderMale, true
	case "female", "women", "woman":
		return GenderFemale, true
	case "unisex":
		return GenderUnisex, true
	}
	return "", false
}
