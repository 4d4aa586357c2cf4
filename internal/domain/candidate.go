package domain

// Candidate is owned by the surrounding system; the core only enumerates
// active candidates for scoring and never mutates them.
type Candidate struct {
	ID         int64    `json:"id"`
	FullName   string   `json:"fullName"`
	Email      string   `json:"email"`
	Headline   string   `json:"headline,omitempty"`
	Skills     []string `json:"skills"`
	ResumeText string   `json:"resumeText,omitempty"`
	IsActive   bool     `json:"isActive"`
}
