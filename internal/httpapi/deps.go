package httpapi

import (
	"database/sql"
	"sync/atomic"

	"jobmatch-engine/internal/auth"
	"jobmatch-engine/internal/config"
	"jobmatch-engine/internal/events"
	"jobmatch-engine/internal/ingest"
	"jobmatch-engine/internal/match"
)

type Deps struct {
	DB *sql.DB

	Hub  *events.Hub
	Auth *auth.Checker

	Orch   *ingest.Orchestrator
	Engine *match.Engine

	// Atomic stores
	CfgVal     *atomic.Value // stores config.Config
	PollStatus *atomic.Value // stores poll.Status

	// Config persistence
	UserCfgPath string
	LoadCfg     func() (config.Config, error)
}
