package catalog

import "strings"

// Gender is the closed performer gender enumeration of the catalog.
type Gender string

const (
	GenderMale              Gender = "MALE"
	GenderFemale            Gender = "FEMALE"
	GenderTransgenderMale   Gender = "TRANSGENDER_MALE"
	GenderTransgenderFemale Gender = "TRANSGENDER_FEMALE"
	GenderIntersex          Gender = "INTERSEX"
	GenderNonBinary         Gender = "NON_BINARY"
)

var genders = map[Gender]struct{}{
	GenderMale:              {},
	GenderFemale:            {},
	GenderTransgenderMale:   {},
	GenderTransgenderFemale: {},
	GenderIntersex:          {},
	GenderNonBinary:         {},
}

// ParseGender uppercases value and replaces spaces with underscores. It
// returns false when the result is not a known gender.
func ParseGender(value string) (Gender, bool) {
	normalized := strings.ReplaceAll(strings.ToUpper(strings.TrimSpace(value)), " ", "_")
	g := Gender(normalized)
	if _, ok := genders[g]; !ok {
		return "", false
	}
	return g, true
}
