package poll

import (
	"context"
	"log"
	"sync/atomic"
	"time"

	"jobmatch-engine/internal/config"
	"jobmatch-engine/internal/ingest"
)

// Status is the poller's last-run snapshot, served by the HTTP API.
type Status struct {
	LastRunAt    string `json:"last_run_at"`
	LastOkAt     string `json:"last_ok_at"`
	LastError    string `json:"last_error"`
	LastInserted int    `json:"last_inserted"`
	Running      bool   `json:"running"`
}

// StartPoller runs the fetch-ingest cycle on a ticker until ctx ends. Config
// is re-read from the atomic.Value each cycle, so PUT /config changes take
// effect without a restart.
func StartPoller(ctx context.Context, orch *ingest.Orchestrator, cfgVal *atomic.Value, statusVal *atomic.Value) {
	go pollLoop(ctx, orch, cfgVal, statusVal)
}

func pollLoop(ctx context.Context, orch *ingest.Orchestrator, cfgVal *atomic.Value, statusVal *atomic.Value) {
	ticker := time.NewTicker(time.Second)
	defer ticker.Stop()

	for {
		// config not stored yet: retry shortly
		interval := time.Second
		if cfgAny := cfgVal.Load(); cfgAny != nil {
			cfg := cfgAny.(config.Config)

			interval = time.Duration(cfg.Polling.IntervalSeconds) * time.Second
			if interval <= 0 {
				interval = 5 * time.Minute
			}
			if cfg.Polling.Enabled && anySourceEnabled(cfg) {
				runCycle(cfg, orch, statusVal)
			}
		}

		ticker.Reset(interval)
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
		}
	}
}

func runCycle(cfg config.Config, orch *ingest.Orchestrator, statusVal *atomic.Value) {
	setStatus(statusVal, func(st *Status) {
		st.Running = true
		st.LastRunAt = time.Now().Format(time.RFC3339)
	})

	inserted, err := RunOnce(cfg, orch)

	setStatus(statusVal, func(st *Status) {
		st.Running = false
		st.LastInserted = inserted
		if err != nil {
			st.LastError = err.Error()
		} else {
			st.LastError = ""
			st.LastOkAt = time.Now().Format(time.RFC3339)
		}
	})
	if err != nil {
		log.Printf("[poll] error: %v", err)
	} else {
		log.Printf("[poll] ok inserted=%d", inserted)
	}
}

func anySourceEnabled(cfg config.Config) bool {
	return cfg.Sources.Greenhouse.Enabled ||
		cfg.Sources.Lever.Enabled ||
		cfg.Sources.SmartRecruiters.Enabled ||
		cfg.Sources.Workday.Enabled
}

func setStatus(statusVal *atomic.Value, mut func(*Status)) {
	st := Status{}
	if v := statusVal.Load(); v != nil {
		st = v.(Status)
	}
	mut(&st)
	statusVal.Store(st)
}
