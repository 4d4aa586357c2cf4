package normalize

import (
	"strconv"
	"strings"
)

// ParseSalary extracts a number from a raw salary string. Everything except
// digits and '.' is stripped first, so "$95,000+" parses to 95000. Values
// with no parsable number ("Competitive", "DOE") yield nil, not an error.
func ParseSalary(s string) *float64 {
	var b strings.Builder
	for _, r := range s {
		if (r >= '0' && r <= '9') || r == '.' {
			b.WriteRune(r)
		}
	}
	cleaned := b.String()
	if cleaned == "" {
		return nil
	}
	v, err := strconv.ParseFloat(cleaned, 64)
	if err != nil {
		return nil
	}
	return &v
}
