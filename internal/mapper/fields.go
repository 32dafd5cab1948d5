package mapper

import (
	"fmt"
	"strconv"
	"strings"

	"bulkscrape/internal/catalog"
)

// ParseDuration converts "SS", "MM:SS", or "H:MM:SS" into total seconds.
func ParseDuration(value string) (int, error) {
	value = strings.TrimSpace(value)
	if value == "" {
		return 0, fmt.Errorf("empty duration")
	}
	switch strings.Count(value, ":") {
	case 0:
		value = "00:00:" + value
	case 1:
		value = "00:" + value
	}
	parts := strings.Split(value, ":")
	if len(parts) != 3 {
		return 0, fmt.Errorf("duration %q has too many segments", value)
	}
	total := 0
	for _, part := range parts {
		n, err := strconv.Atoi(strings.TrimSpace(part))
		if err != nil || n < 0 {
			return 0, fmt.Errorf("duration segment %q is not a number", part)
		}
		total = total*60 + n
	}
	return total, nil
}

// NormalizeGender maps free text onto the catalog gender enumeration.
func NormalizeGender(value string) (catalog.Gender, bool) {
	return catalog.ParseGender(value)
}

// ParseWeight casts a scraped weight string to an integer.
func ParseWeight(value string) (int, error) {
	return strconv.Atoi(strings.TrimSpace(value))
}

// embeddedImage returns value when it is a data URI image and nil otherwise.
// Remote image URLs are not accepted by the catalog update inputs.
func embeddedImage(value *string) *string {
	if !catalog.Present(value) || !strings.HasPrefix(catalog.Value(value), "data:image") {
		return nil
	}
	return catalog.CopyString(value)
}
