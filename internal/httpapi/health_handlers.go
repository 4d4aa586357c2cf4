package httpapi

import (
	"net/http"
	"time"
)

type HealthHandler struct{}

// Health carries no auth gate; the desktop shell polls it before any token
// exists to learn when the engine is up.
func (HealthHandler) Health(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, map[string]any{
		"ok":   true,
		"time": time.Now().UTC().Format(time.RFC3339),
	})
}
