package catalog

import "strings"

// Present reports whether a scraped scalar carries a usable value. Absent and
// blank values are treated alike.
func Present(value *string) bool {
	return value != nil && strings.TrimSpace(*value) != ""
}

// Value returns the trimmed scalar or the empty string when absent.
func Value(value *string) string {
	if value == nil {
		return ""
	}
	return strings.TrimSpace(*value)
}

// CopyString returns a fresh trimmed pointer for present values and nil
// otherwise.
func CopyString(value *string) *string {
	if !Present(value) {
		return nil
	}
	v := Value(value)
	return &v
}

// Ptr returns a pointer to a copy of v.
func Ptr[T any](v T) *T {
	return &v
}

func anyPresent(values ...*string) bool {
	for _, v := range values {
		if Present(v) {
			return true
		}
	}
	return false
}
