package httpapi

import "net/http"

// NewMux returns the raw mux so main() can still attach /shutdown (needs srv+token).
func NewMux(d Deps) *http.ServeMux {
	mux := http.NewServeMux()

	admin := RequireAdmin(d.Auth)
	adminOnly := func(h http.HandlerFunc) http.HandlerFunc {
		return admin(h).ServeHTTP
	}

	// Health
	mux.HandleFunc("/health", byMethod(map[string]http.HandlerFunc{
		http.MethodGet: HealthHandler{}.Health,
	}))

	// Ingestion
	ih := IngestHandler{Orch: d.Orch, PollStatus: d.PollStatus}
	mux.HandleFunc("/ingest", byMethod(map[string]http.HandlerFunc{
		http.MethodPost: adminOnly(ih.Run),
	}))
	mux.HandleFunc("/ingest/status", byMethod(map[string]http.HandlerFunc{
		http.MethodGet: ih.Status,
	}))

	// Matching
	mh := MatchHandler{Engine: d.Engine}
	mux.HandleFunc("/match/run", byMethod(map[string]http.HandlerFunc{
		http.MethodPost: adminOnly(mh.Run),
	}))

	// Jobs
	jh := JobsHandler{DB: d.DB}
	mux.HandleFunc("/jobs", byMethod(map[string]http.HandlerFunc{
		http.MethodGet: jh.List,
	}))

	// Candidates
	cah := CandidatesHandler{DB: d.DB}
	mux.HandleFunc("/candidates", byMethod(map[string]http.HandlerFunc{
		http.MethodGet:  cah.List,
		http.MethodPost: adminOnly(cah.Create),
	}))
	mux.HandleFunc("/candidates/", byMethod(map[string]http.HandlerFunc{
		http.MethodGet: cah.Matches, // expects /candidates/{id}/matches
	}))

	// Config
	ch := ConfigHandler{
		CfgVal:      d.CfgVal,
		UserCfgPath: d.UserCfgPath,
		LoadCfg:     d.LoadCfg,
	}
	mux.HandleFunc("/config", byMethod(map[string]http.HandlerFunc{
		http.MethodGet: ch.Get,
		http.MethodPut: adminOnly(ch.Put),
	}))
	mux.HandleFunc("/config/path", byMethod(map[string]http.HandlerFunc{
		http.MethodGet: ch.Path,
	}))

	// Secrets (use CfgVal, NOT a snapshot cfg)
	sh := SecretsHandler{CfgVal: d.CfgVal}
	mux.HandleFunc("/api/secrets/token", byMethod(map[string]http.HandlerFunc{
		http.MethodPost: sh.SetToken,
	}))

	// SSE events
	eh := EventsHandler{Hub: d.Hub}
	mux.HandleFunc("/events", byMethod(map[string]http.HandlerFunc{
		http.MethodGet: eh.ServeSSE,
	}))

	return mux
}
