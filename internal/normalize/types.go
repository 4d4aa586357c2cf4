package normalize

import "strings"

// jobTypeCanon maps canonicalized employment-type keys to their normalized
// form. Keys are produced by canonicalKey (lowercase, separators collapsed
// to '_'), so "Full-Time", "full time" and "FULLTIME" all land on full_time.
var jobTypeCanon = map[string]string{
	"full_time":  "full-time",
	"fulltime":   "full-time",
	"permanent":  "full-time",
	"part_time":  "part-time",
	"parttime":   "part-time",
	"contract":   "contract",
	"contractor": "contract",
	"intern":     "internship",
	"internship": "internship",
	"temp":       "temporary",
	"temporary":  "temporary",
}

var remoteTypeCanon = map[string]string{
	"remote":         "remote",
	"fully_remote":   "remote",
	"work_from_home": "remote",
	"wfh":            "remote",
	"true":           "remote",
	"hybrid":         "hybrid",
	"onsite":         "onsite",
	"on_site":        "onsite",
	"in_office":      "onsite",
	"in_person":      "onsite",
	"office":         "onsite",
}

// NormalizeJobType canonicalizes an employment type. Unrecognized values pass
// through in canonical-key form instead of being rejected.
func NormalizeJobType(s string) string {
	key := canonicalKey(s)
	if v, ok := jobTypeCanon[key]; ok {
		return v
	}
	return key
}

// NormalizeRemoteType canonicalizes a remote/workplace tag. "None" and
// "false" mean "no information" (nil); "true" means remote. Unrecognized
// values pass through in canonical-key form.
func NormalizeRemoteType(s string) *string {
	key := canonicalKey(s)
	switch key {
	case "", "none", "false":
		return nil
	}
	if v, ok := remoteTypeCanon[key]; ok {
		return &v
	}
	return &key
}

// canonicalKey lowercases and collapses runs of whitespace and hyphens into a
// single underscore.
func canonicalKey(s string) string {
	s = strings.ToLower(strings.TrimSpace(s))
	fields := strings.FieldsFunc(s, func(r rune) bool {
		return r == ' ' || r == '\t' || r == '-' || r == '_'
	})
	return strings.Join(fields, "_")
}
