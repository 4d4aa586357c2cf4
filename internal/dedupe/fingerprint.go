// Package dedupe recognizes re-scraped listings before they are admitted.
// Identity is content-addressed: a stable digest over the normalized fields
// that survive reformatting, plus an external-id fallback for boards that
// rewrite their descriptions between scrapes.
package dedupe

import (
	"crypto/sha256"
	"encoding/hex"
	"strings"

	"jobmatch-engine/internal/domain"
)

// jdPrefixLen bounds how much of the description feeds the fingerprint.
// Boards append boilerplate (EEO statements, benefits blurbs) at the tail;
// the first 500 characters are the part that identifies the job.
const jdPrefixLen = 500

// fieldSep joins fingerprint inputs. Double pipe does not occur in job
// titles or company names in practice.
const fieldSep = "||"

// Fingerprint computes the content hash for a canonical job. It depends on
// exactly {title, company, location, jdClean prefix}, each lowercased and
// trimmed; url, salary and the rest do not participate, so tracking-param
// churn never defeats dedup.
func Fingerprint(j domain.CanonicalJob) string {
	loc := ""
	if j.Location != nil {
		loc = *j.Location
	}
	jd := ""
	if j.JDClean != nil {
		jd = *j.JDClean
	}
	if r := []rune(jd); len(r) > jdPrefixLen {
		jd = string(r[:jdPrefixLen])
	}

	parts := []string{
		norm(j.Title),
		norm(j.Company),
		norm(loc),
		norm(jd),
	}
	sum := sha256.Sum256([]byte(strings.Join(parts, fieldSep)))
	return hex.EncodeToString(sum[:])
}

func norm(s string) string {
	return strings.ToLower(strings.TrimSpace(s))
}
