package normalize

import "testing"

func TestNormalizeAliasResolution(t *testing.T) {
	tests := []struct {
		name        string
		raw         map[string]any
		wantTitle   string
		wantCompany string
	}{
		{
			name:        "plain keys",
			raw:         map[string]any{"title": "Go Developer", "company": "Acme"},
			wantTitle:   "Go Developer",
			wantCompany: "Acme",
		},
		{
			name:        "vendor keys",
			raw:         map[string]any{"text": "Backend Engineer", "employer": "Widgets Inc"},
			wantTitle:   "Backend Engineer",
			wantCompany: "Widgets Inc",
		},
		{
			name:        "csv export keys with surrounding whitespace",
			raw:         map[string]any{"job_title": "  SRE  ", "company_name": " Initech "},
			wantTitle:   "SRE",
			wantCompany: "Initech",
		},
		{
			name: "earlier alias wins over later",
			raw: map[string]any{
				"title":    "Primary Title",
				"job_title": "Secondary Title",
				"company":  "Acme",
			},
			wantTitle:   "Primary Title",
			wantCompany: "Acme",
		},
		{
			name: "sentinel None skipped in favor of next alias",
			raw: map[string]any{
				"title":    "None",
				"job_title": "Real Title",
				"company":  "Acme",
			},
			wantTitle:   "Real Title",
			wantCompany: "Acme",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			job, ok := Normalize(tt.raw)
			if !ok {
				t.Fatalf("Normalize rejected row %v", tt.raw)
			}
			if job.Title != tt.wantTitle {
				t.Errorf("Title = %q, want %q", job.Title, tt.wantTitle)
			}
			if job.Company != tt.wantCompany {
				t.Errorf("Company = %q, want %q", job.Company, tt.wantCompany)
			}
		})
	}
}

func TestNormalizeRejectsMissingTitleOrCompany(t *testing.T) {
	tests := []struct {
		name string
		raw  map[string]any
	}{
		{"empty row", map[string]any{}},
		{"no title", map[string]any{"company": "Acme", "location": "Berlin"}},
		{"no company", map[string]any{"title": "Engineer", "url": "https://x"}},
		{"whitespace title", map[string]any{"title": "   ", "company": "Acme"}},
		{"sentinel company", map[string]any{"title": "Engineer", "company": "None"}},
		{"title under no known alias", map[string]any{"headline": "Engineer", "company": "Acme"}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if _, ok := Normalize(tt.raw); ok {
				t.Errorf("Normalize accepted row %v, want rejection", tt.raw)
			}
		})
	}
}

func TestNormalizeDescription(t *testing.T) {
	htmlRow := map[string]any{
		"title":       "Engineer",
		"company":     "Acme",
		"description": "<div><p>Build &amp; run   services</p><script>x()</script></div>",
	}
	job, ok := Normalize(htmlRow)
	if !ok {
		t.Fatal("rejected html row")
	}
	if job.JDRaw == nil || *job.JDRaw != htmlRow["description"] {
		t.Errorf("JDRaw not preserved: %v", job.JDRaw)
	}
	if job.JDClean == nil || *job.JDClean != "Build & run services" {
		t.Errorf("JDClean = %v, want %q", job.JDClean, "Build & run services")
	}

	plainRow := map[string]any{
		"title":       "Engineer",
		"company":     "Acme",
		"description": "Just plain text",
	}
	job, _ = Normalize(plainRow)
	if job.JDRaw != nil {
		t.Errorf("JDRaw should be nil for plain text, got %q", *job.JDRaw)
	}
	if job.JDClean == nil || *job.JDClean != "Just plain text" {
		t.Errorf("JDClean = %v, want verbatim text", job.JDClean)
	}
}

func TestNormalizeNumericSourceJobID(t *testing.T) {
	// JSON numbers decode as float64; ids must not grow a ".0" suffix.
	job, ok := Normalize(map[string]any{
		"title":   "Engineer",
		"company": "Acme",
		"id":      float64(4012345),
	})
	if !ok {
		t.Fatal("rejected row")
	}
	if job.SourceJobID == nil || *job.SourceJobID != "4012345" {
		t.Errorf("SourceJobID = %v, want \"4012345\"", job.SourceJobID)
	}
}

func TestParseSalary(t *testing.T) {
	tests := []struct {
		in   string
		want *float64
	}{
		{"$95,000+", f(95000)},
		{"120000", f(120000)},
		{"80.5k", f(80.5)},
		{"Competitive", nil},
		{"DOE", nil},
		{"", nil},
	}
	for _, tt := range tests {
		got := ParseSalary(tt.in)
		switch {
		case tt.want == nil && got != nil:
			t.Errorf("ParseSalary(%q) = %v, want nil", tt.in, *got)
		case tt.want != nil && got == nil:
			t.Errorf("ParseSalary(%q) = nil, want %v", tt.in, *tt.want)
		case tt.want != nil && got != nil && *got != *tt.want:
			t.Errorf("ParseSalary(%q) = %v, want %v", tt.in, *got, *tt.want)
		}
	}
}

func TestNormalizeJobType(t *testing.T) {
	tests := []struct {
		in   string
		want string
	}{
		{"Full-Time", "full-time"},
		{"full time", "full-time"},
		{"FULLTIME", "full-time"},
		{"Part-Time", "part-time"},
		{"Contractor", "contract"},
		{"Internship", "internship"},
		{"freelance", "freelance"}, // unmapped passes through
		{"Gig Work", "gig_work"},
	}
	for _, tt := range tests {
		if got := NormalizeJobType(tt.in); got != tt.want {
			t.Errorf("NormalizeJobType(%q) = %q, want %q", tt.in, got, tt.want)
		}
	}
}

func TestNormalizeRemoteType(t *testing.T) {
	tests := []struct {
		in   string
		want *string // nil = no information
	}{
		{"Remote", s("remote")},
		{"true", s("remote")},
		{"Work From Home", s("remote")},
		{"Hybrid", s("hybrid")},
		{"On-Site", s("onsite")},
		{"None", nil},
		{"false", nil},
		{"flexible", s("flexible")}, // unmapped passes through
	}
	for _, tt := range tests {
		got := NormalizeRemoteType(tt.in)
		switch {
		case tt.want == nil && got != nil:
			t.Errorf("NormalizeRemoteType(%q) = %q, want nil", tt.in, *got)
		case tt.want != nil && got == nil:
			t.Errorf("NormalizeRemoteType(%q) = nil, want %q", tt.in, *tt.want)
		case tt.want != nil && got != nil && *got != *tt.want:
			t.Errorf("NormalizeRemoteType(%q) = %q, want %q", tt.in, *got, *tt.want)
		}
	}
}

func TestNormalizeBooleanRemoteValue(t *testing.T) {
	// Raw JSON true must land as remote, raw false as no-information.
	job, _ := Normalize(map[string]any{"title": "E", "company": "A", "remote": true})
	if job.RemoteType == nil || *job.RemoteType != "remote" {
		t.Errorf("remote=true should normalize to remote, got %v", job.RemoteType)
	}
	job, _ = Normalize(map[string]any{"title": "E", "company": "A", "remote": false})
	if job.RemoteType != nil {
		t.Errorf("remote=false should mean no information, got %q", *job.RemoteType)
	}
}

func f(v float64) *float64 { return &v }
func s(v string) *string   { return &v }
