package config

import (
	"os"

	"gopkg.in/yaml.v3"
)

// Board is one external job board to pull from. For workday, Slug is the
// full board URL rather than a bare identifier.
type Board struct {
	Slug string `yaml:"slug" json:"slug"`
	Name string `yaml:"name" json:"name"`
}

// Rule bumps a match score when any of its needles appears in the job text.
type Rule struct {
	Tag    string   `yaml:"tag" json:"tag"`
	Weight int      `yaml:"weight" json:"weight"`
	Any    []string `yaml:"any" json:"any"`
}

// Penalty is a negative-weight rule kept separate so configs read clearly.
type Penalty struct {
	Reason string   `yaml:"reason" json:"reason"`
	Weight int      `yaml:"weight" json:"weight"`
	Any    []string `yaml:"any" json:"any"`
}

type Config struct {
	App struct {
		Port    int    `yaml:"port" json:"port"`
		DataDir string `yaml:"data_dir" json:"data_dir"`
	} `yaml:"app" json:"app"`

	Auth struct {
		// KeyringAccount is where the admin token lives in the OS keychain.
		KeyringAccount string `yaml:"keyring_account" json:"keyring_account"`
		// TokenEnv names an env var that overrides the keychain (CI, docker).
		TokenEnv string `yaml:"token_env" json:"token_env"`
	} `yaml:"auth" json:"auth"`

	Polling struct {
		Enabled         bool `yaml:"enabled" json:"enabled"`
		IntervalSeconds int  `yaml:"interval_seconds" json:"interval_seconds"`
	} `yaml:"polling" json:"polling"`

	Sources struct {
		Greenhouse struct {
			Enabled bool    `yaml:"enabled" json:"enabled"`
			Boards  []Board `yaml:"boards" json:"boards"`
		} `yaml:"greenhouse" json:"greenhouse"`
		Lever struct {
			Enabled bool    `yaml:"enabled" json:"enabled"`
			Boards  []Board `yaml:"boards" json:"boards"`
		} `yaml:"lever" json:"lever"`
		SmartRecruiters struct {
			Enabled bool    `yaml:"enabled" json:"enabled"`
			Boards  []Board `yaml:"boards" json:"boards"`
		} `yaml:"smartrecruiters" json:"smartrecruiters"`
		Workday struct {
			Enabled bool    `yaml:"enabled" json:"enabled"`
			Boards  []Board `yaml:"boards" json:"boards"`
		} `yaml:"workday" json:"workday"`
	} `yaml:"sources" json:"sources"`

	Scoring struct {
		// Scorer picks the matching backend: "keyword" (skills overlap)
		// or "rules" (config-driven boosts/penalties on top of overlap).
		Scorer    string    `yaml:"scorer" json:"scorer"`
		Boosts    []Rule    `yaml:"boosts" json:"boosts"`
		Penalties []Penalty `yaml:"penalties" json:"penalties"`
	} `yaml:"scoring" json:"scoring"`

	Ingest struct {
		// SkipMatching suppresses background scoring for polled batches.
		SkipMatching bool `yaml:"skip_matching" json:"skip_matching"`
	} `yaml:"ingest" json:"ingest"`

	Retention struct {
		DeactivateAfterDays int `yaml:"deactivate_after_days" json:"deactivate_after_days"`
	} `yaml:"retention" json:"retention"`
}

func Load(path string) (Config, error) {
	var cfg Config
	b, err := os.ReadFile(path)
	if err != nil {
		return cfg, err
	}
	err = yaml.Unmarshal(b, &cfg)
	return cfg, err
}
