package httpapi

import (
	"encoding/json"
	"net/http"
	"sync/atomic"

	"jobmatch-engine/internal/config"
)

type ConfigHandler struct {
	CfgVal      *atomic.Value
	UserCfgPath string
	LoadCfg     func() (config.Config, error)
}

func (h ConfigHandler) Get(w http.ResponseWriter, r *http.Request) {
	cfg, _ := h.CfgVal.Load().(config.Config)
	writeJSON(w, cfg)
}

// Put validates, persists and hot-swaps the running config. The poller and
// auth read the atomic value on every use, so the new config takes effect
// without a restart.
func (h ConfigHandler) Put(w http.ResponseWriter, r *http.Request) {
	var cfg config.Config
	dec := json.NewDecoder(r.Body)
	dec.DisallowUnknownFields()
	if err := dec.Decode(&cfg); err != nil {
		WriteError(w, r, http.StatusBadRequest, "invalid_json", "invalid JSON: "+err.Error())
		return
	}
	if err := config.Validate(cfg); err != nil {
		WriteError(w, r, http.StatusBadRequest, "invalid_config", err.Error())
		return
	}
	if err := config.SaveAtomic(h.UserCfgPath, cfg); err != nil {
		WriteError(w, r, http.StatusInternalServerError, "save_failed", err.Error())
		return
	}

	// Re-read the file we just wrote so the in-memory view always matches
	// what is on disk.
	fresh, err := h.LoadCfg()
	if err != nil {
		WriteError(w, r, http.StatusInternalServerError, "reload_failed", err.Error())
		return
	}
	h.CfgVal.Store(fresh)
	writeJSON(w, fresh)
}

func (h ConfigHandler) Path(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, map[string]string{"path": h.UserCfgPath})
}
