package main

import (
	"context"
	"log"
	"net"
	"net/http"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"sync/atomic"
	"time"

	"github.com/gofrs/flock"

	"jobmatch-engine/internal/auth"
	"jobmatch-engine/internal/config"
	"jobmatch-engine/internal/events"
	"jobmatch-engine/internal/httpapi"
	"jobmatch-engine/internal/ingest"
	"jobmatch-engine/internal/match"
	"jobmatch-engine/internal/poll"
	"jobmatch-engine/internal/scheduler"
	"jobmatch-engine/internal/secrets"
	"jobmatch-engine/internal/store"
)

func main() {
	// Engine data dir: use env if provided (desktop shell can pass one),
	// else local folder.
	dataDir := os.Getenv("JOBMATCH_DATA_DIR")
	if dataDir == "" {
		dataDir = "."
	}
	if err := os.MkdirAll(dataDir, 0o755); err != nil {
		log.Fatal(err)
	}

	// Single-instance guard: a second engine on the same data dir would
	// fight over the sqlite writer.
	lock := flock.New(filepath.Join(dataDir, "engine.lock"))
	locked, err := lock.TryLock()
	if err != nil {
		log.Fatalf("instance lock: %v", err)
	}
	if !locked {
		log.Fatalf("another engine is already running on %s", dataDir)
	}
	defer lock.Unlock()

	defaultCfgPath := filepath.Join("config", "config.yml")
	userCfgPath, err := config.EnsureUserConfig(dataDir, defaultCfgPath)
	if err != nil {
		log.Fatalf("config bootstrap failed: %v", err)
	}

	// Load config and keep it reloadable
	var cfgVal atomic.Value // stores config.Config
	loadCfg := func() (config.Config, error) {
		return config.Load(userCfgPath)
	}
	cfg, err := loadCfg()
	if err != nil {
		log.Fatalf("config load failed (%s): %v", userCfgPath, err)
	}
	cfgVal.Store(cfg)

	dbPath := filepath.Join(dataDir, "jobmatch.db")
	db, err := store.Open(dbPath)
	if err != nil {
		log.Fatal(err)
	}
	defer db.Close()

	if err := store.Migrate(db.Pool); err != nil {
		log.Fatal(err)
	}

	hub := events.NewHub()

	// Admin token: env var override first (CI, docker), else OS keychain.
	checker := &auth.Checker{Token: func() string {
		c, _ := cfgVal.Load().(config.Config)
		if c.Auth.TokenEnv != "" {
			if tok := strings.TrimSpace(os.Getenv(c.Auth.TokenEnv)); tok != "" {
				return tok
			}
		}
		tok, err := secrets.GetAdminToken(c.Auth.KeyringAccount)
		if err != nil {
			return ""
		}
		return tok
	}}

	var scorer match.Scorer = match.KeywordScorer{}
	if cfg.Scoring.Scorer == "rules" {
		scorer = match.RuleScorer{
			Boosts:    cfg.Scoring.Boosts,
			Penalties: cfg.Scoring.Penalties,
		}
	}
	engine := &match.Engine{DB: db.Pool, Scorer: scorer}
	orch := &ingest.Orchestrator{
		DB:          db.Pool,
		Hub:         hub,
		RunMatching: engine.Run,
	}

	rootCtx, cancelRoot := context.WithCancel(context.Background())
	defer cancelRoot()

	var pollStatus atomic.Value // stores poll.Status
	pollStatus.Store(poll.Status{})
	poll.StartPoller(rootCtx, orch, &cfgVal, &pollStatus)

	// Retention housekeeping: deactivate postings past the configured age.
	go scheduler.Every(rootCtx, 12*time.Hour, "retention", func(ctx context.Context) error {
		c, _ := cfgVal.Load().(config.Config)
		if c.Retention.DeactivateAfterDays <= 0 {
			return nil
		}
		n, err := store.DeactivateStalePostings(db.Pool, c.Retention.DeactivateAfterDays)
		if err != nil {
			return err
		}
		if n > 0 {
			log.Printf("[retention] deactivated=%d", n)
		}
		return nil
	})

	mux := httpapi.NewMux(httpapi.Deps{
		DB:          db.Pool,
		Hub:         hub,
		Auth:        checker,
		Orch:        orch,
		Engine:      engine,
		CfgVal:      &cfgVal,
		PollStatus:  &pollStatus,
		UserCfgPath: userCfgPath,
		LoadCfg:     loadCfg,
	})

	port := cfg.App.Port
	if port == 0 {
		port = 38471
	}
	addr := net.JoinHostPort("127.0.0.1", strconv.Itoa(port))
	ln, err := net.Listen("tcp", addr)
	if err != nil {
		log.Fatal(err)
	}

	srv := &http.Server{
		Handler: httpapi.Chain(mux,
			httpapi.RequestID,
			httpapi.AccessLog,
			httpapi.Recover,
			httpapi.Cors,
		),
		ReadHeaderTimeout: 5 * time.Second,
	}

	// Local-only, token-guarded stop endpoint for the desktop shell.
	shutdownToken, err := randomToken(16)
	if err != nil {
		log.Fatal(err)
	}
	mux.HandleFunc("/shutdown", shutdownHandler(&shutdownToken, srv))

	log.Printf("engine listening on http://%s (db=%s)", addr, dbPath)
	log.Printf("shutdown token: %s", shutdownToken)

	if err := srv.Serve(ln); err != nil && err != http.ErrServerClosed {
		log.Fatal(err)
	}
}
