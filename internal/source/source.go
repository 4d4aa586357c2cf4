// Package source pulls raw rows from external job boards. Fetchers emit rows
// under each vendor's native key names; the normalizer's alias tables absorb
// the differences, so nothing downstream knows which board a row came from.
package source

import "context"

// Result is one board's haul for a fetch cycle.
type Result struct {
	Source string
	Rows   []map[string]any
}

type Fetcher interface {
	Name() string
	Fetch(ctx context.Context) (Result, error)
}
