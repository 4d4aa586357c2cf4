package dedupe

import (
	"strings"
	"testing"

	"jobmatch-engine/internal/domain"
)

func job(title, company string, mut ...func(*domain.CanonicalJob)) domain.CanonicalJob {
	j := domain.CanonicalJob{Source: "test", Title: title, Company: company}
	for _, m := range mut {
		m(&j)
	}
	return j
}

func withLocation(loc string) func(*domain.CanonicalJob) {
	return func(j *domain.CanonicalJob) { j.Location = &loc }
}

func withJD(jd string) func(*domain.CanonicalJob) {
	return func(j *domain.CanonicalJob) { j.JDClean = &jd }
}

func TestFingerprintCaseAndWhitespaceInvariant(t *testing.T) {
	a := Fingerprint(job("Go Developer", "Acme", withLocation("Berlin"), withJD("Build things")))
	b := Fingerprint(job("  go developer ", "ACME  ", withLocation(" berlin"), withJD("  BUILD THINGS ")))
	if a != b {
		t.Error("fingerprint should be invariant to case and surrounding whitespace")
	}
}

func TestFingerprintIgnoresNonContentFields(t *testing.T) {
	base := job("Go Developer", "Acme", withLocation("Berlin"), withJD("Build things"))
	a := Fingerprint(base)

	changed := base
	url := "https://somewhere.example/other?utm_source=x"
	sal := 123456.0
	sjid := "gh-999"
	changed.URL = &url
	changed.SalaryMin = &sal
	changed.SalaryMax = &sal
	changed.SourceJobID = &sjid
	changed.JobType = "contract"

	if Fingerprint(changed) != a {
		t.Error("url/salary/id/type must not change the fingerprint")
	}
}

func TestFingerprintDependsOnContentFields(t *testing.T) {
	base := job("Go Developer", "Acme", withLocation("Berlin"), withJD("Build things"))
	a := Fingerprint(base)

	cases := []struct {
		name string
		j    domain.CanonicalJob
	}{
		{"title", job("Rust Developer", "Acme", withLocation("Berlin"), withJD("Build things"))},
		{"company", job("Go Developer", "Other", withLocation("Berlin"), withJD("Build things"))},
		{"location", job("Go Developer", "Acme", withLocation("Munich"), withJD("Build things"))},
		{"jd", job("Go Developer", "Acme", withLocation("Berlin"), withJD("Break things"))},
		{"nil location", job("Go Developer", "Acme", withJD("Build things"))},
	}
	for _, c := range cases {
		if Fingerprint(c.j) == a {
			t.Errorf("changing %s should change the fingerprint", c.name)
		}
	}
}

func TestFingerprintUsesOnlyDescriptionPrefix(t *testing.T) {
	prefix := strings.Repeat("x", jdPrefixLen)
	a := Fingerprint(job("T", "C", withJD(prefix+"tail one")))
	b := Fingerprint(job("T", "C", withJD(prefix+"completely different tail")))
	if a != b {
		t.Error("text beyond the prefix must not affect the fingerprint")
	}

	c := Fingerprint(job("T", "C", withJD("y"+prefix[1:]+"tail one")))
	if c == a {
		t.Error("text inside the prefix must affect the fingerprint")
	}
}
