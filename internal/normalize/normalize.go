// Package normalize maps arbitrarily-shaped raw scraper rows onto the
// canonical job record. Field resolution is table-driven (see aliases.go);
// the only hard requirement for a row to survive is a title and a company.
package normalize

import (
	"fmt"
	"strings"

	"jobmatch-engine/internal/domain"
)

// Normalize resolves a raw row into a CanonicalJob. ok=false means the row is
// rejected (missing title or company after alias resolution); rejection is a
// count-and-move-on condition, never an error. Source is assigned by the
// caller, not resolved from the row.
func Normalize(raw map[string]any) (job domain.CanonicalJob, ok bool) {
	title, _ := resolve(raw, fieldTitle)
	company, _ := resolve(raw, fieldCompany)
	if title == "" || company == "" {
		return domain.CanonicalJob{}, false
	}
	job.Title = title
	job.Company = company

	if v, found := resolve(raw, fieldLocation); found {
		job.Location = &v
	}
	if v, found := resolve(raw, fieldURL); found {
		job.URL = &v
	}
	if v, found := resolve(raw, fieldSourceJobID); found {
		job.SourceJobID = &v
	}

	if desc, found := resolve(raw, fieldDescription); found {
		if strings.HasPrefix(desc, "<") {
			clean := StripHTML(desc)
			job.JDRaw = &desc
			job.JDClean = &clean
		} else {
			job.JDClean = &desc
		}
	}

	if v, found := resolve(raw, fieldSalaryMin); found {
		job.SalaryMin = ParseSalary(v)
	}
	if v, found := resolve(raw, fieldSalaryMax); found {
		job.SalaryMax = ParseSalary(v)
	}

	if v, found := resolve(raw, fieldJobType); found {
		job.JobType = NormalizeJobType(v)
	}
	if v, found := resolve(raw, fieldRemoteType); found {
		job.RemoteType = NormalizeRemoteType(v)
	}

	return job, true
}

// resolve walks the alias list for a canonical field and returns the first
// usable value: present, non-empty after trimming, and not the "None"
// sentinel some exports emit for missing data.
func resolve(raw map[string]any, field string) (string, bool) {
	for _, key := range aliasTable[field] {
		v, present := raw[key]
		if !present {
			continue
		}
		s := strings.TrimSpace(stringify(v))
		if s == "" || s == "None" {
			continue
		}
		return s, true
	}
	return "", false
}

// stringify renders scalar raw values. JSON decoding hands us float64 for
// every number, so integers need the trailing ".0" shaved off (a numeric
// job id must round-trip as "12345", not "12345.0"). Maps and slices are
// never usable field values.
func stringify(v any) string {
	switch t := v.(type) {
	case nil:
		return ""
	case string:
		return t
	case bool:
		if t {
			return "true"
		}
		return "false"
	case float64:
		if t == float64(int64(t)) {
			return fmt.Sprintf("%d", int64(t))
		}
		return fmt.Sprintf("%v", t)
	case int, int32, int64:
		return fmt.Sprintf("%d", t)
	case map[string]any, []any:
		return ""
	default:
		return fmt.Sprintf("%v", t)
	}
}
