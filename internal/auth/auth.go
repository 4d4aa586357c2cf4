// Package auth is the admin-authorization collaborator: the pipeline
// consumes a decision from it, nothing more. A check yields a tagged result
// (Authorized with the caller identity, or Denied with a ready-made status
// and reason) so callers branch on the outcome explicitly instead of
// juggling an ad hoc (identity, error, status) triple.
package auth

import (
	"crypto/subtle"
	"net/http"
	"strings"
)

type Result interface{ isResult() }

type Authorized struct {
	Identity string
}

type Denied struct {
	Status int
	Reason string
}

func (Authorized) isResult() {}
func (Denied) isResult()     {}

// Checker validates the admin bearer token. Token is a func so the secret is
// resolved lazily (keyring or env) and can rotate without a restart.
type Checker struct {
	Token func() string
}

// Check inspects the request's Authorization header (or X-Admin-Token) and
// returns the decision.
func (c *Checker) Check(r *http.Request) Result {
	expected := ""
	if c.Token != nil {
		expected = strings.TrimSpace(c.Token())
	}
	if expected == "" {
		return Denied{Status: http.StatusServiceUnavailable, Reason: "admin token not configured"}
	}

	got := bearerToken(r)
	if got == "" {
		return Denied{Status: http.StatusUnauthorized, Reason: "missing admin token"}
	}
	if subtle.ConstantTimeCompare([]byte(got), []byte(expected)) != 1 {
		return Denied{Status: http.StatusForbidden, Reason: "invalid admin token"}
	}
	return Authorized{Identity: "admin"}
}

func bearerToken(r *http.Request) string {
	if h := r.Header.Get("Authorization"); h != "" {
		if tok, ok := strings.CutPrefix(h, "Bearer "); ok {
			return strings.TrimSpace(tok)
		}
	}
	return strings.TrimSpace(r.Header.Get("X-Admin-Token"))
}
