package httpapi

import (
	"encoding/json"
	"net/http"
	"strings"
	"sync/atomic"

	"jobmatch-engine/internal/config"
	"jobmatch-engine/internal/secrets"
)

type SecretsHandler struct {
	CfgVal *atomic.Value
}

type setTokenRequest struct {
	Token string `json:"token"`
}

// SetToken stores the admin token in the OS keychain. It is reachable only
// from loopback and only while no token is configured yet (first-run setup);
// once a token exists, rotation goes through the keychain directly.
func (h SecretsHandler) SetToken(w http.ResponseWriter, r *http.Request) {
	var req setTokenRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		WriteError(w, r, http.StatusBadRequest, "invalid_json", "invalid JSON: "+err.Error())
		return
	}
	if strings.TrimSpace(req.Token) == "" {
		WriteError(w, r, http.StatusBadRequest, "missing_token", "token is required")
		return
	}

	cfg, _ := h.CfgVal.Load().(config.Config)
	account := cfg.Auth.KeyringAccount
	if _, err := secrets.GetAdminToken(account); err == nil {
		WriteError(w, r, http.StatusConflict, "token_exists",
			"an admin token is already configured")
		return
	}
	if err := secrets.SetAdminToken(account, req.Token); err != nil {
		WriteError(w, r, http.StatusInternalServerError, "keychain_error", err.Error())
		return
	}
	writeJSON(w, map[string]any{"ok": true})
}
