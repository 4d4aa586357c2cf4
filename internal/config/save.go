package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"gopkg.in/yaml.v3"
)

func Validate(cfg Config) error {
	var errs []string

	if cfg.App.Port <= 0 || cfg.App.Port > 65535 {
		errs = append(errs, "app.port must be 1..65535")
	}
	if cfg.Polling.Enabled && cfg.Polling.IntervalSeconds <= 0 {
		errs = append(errs, "polling.interval_seconds must be > 0 when polling is enabled")
	}
	if cfg.Retention.DeactivateAfterDays < 0 {
		errs = append(errs, "retention.deactivate_after_days must be >= 0")
	}

	checkBoards := func(name string, enabled bool, boards []Board) {
		if !enabled {
			return
		}
		if len(boards) == 0 {
			errs = append(errs, fmt.Sprintf("sources.%s.boards must have at least 1 entry when enabled", name))
		}
		for i, b := range boards {
			if strings.TrimSpace(b.Slug) == "" {
				errs = append(errs, fmt.Sprintf("sources.%s.boards[%d].slug is required", name, i))
			}
			if strings.TrimSpace(b.Name) == "" {
				errs = append(errs, fmt.Sprintf("sources.%s.boards[%d].name is required", name, i))
			}
		}
	}
	checkBoards("greenhouse", cfg.Sources.Greenhouse.Enabled, cfg.Sources.Greenhouse.Boards)
	checkBoards("lever", cfg.Sources.Lever.Enabled, cfg.Sources.Lever.Boards)
	checkBoards("smartrecruiters", cfg.Sources.SmartRecruiters.Enabled, cfg.Sources.SmartRecruiters.Boards)
	checkBoards("workday", cfg.Sources.Workday.Enabled, cfg.Sources.Workday.Boards)

	switch cfg.Scoring.Scorer {
	case "", "keyword", "rules":
	default:
		errs = append(errs, fmt.Sprintf("scoring.scorer %q unknown (want keyword or rules)", cfg.Scoring.Scorer))
	}

	if len(errs) > 0 {
		return errors.New("config validation failed:\n- " + strings.Join(errs, "\n- "))
	}
	return nil
}

func SaveAtomic(path string, cfg Config) error {
	if err := Validate(cfg); err != nil {
		return err
	}

	b, err := yaml.Marshal(&cfg)
	if err != nil {
		return err
	}

	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return err
	}

	tmp := path + ".tmp"
	bak := path + ".bak"

	if err := os.WriteFile(tmp, b, 0o644); err != nil {
		return err
	}

	_ = os.Remove(bak)
	_ = os.Rename(path, bak)

	return os.Rename(tmp, path)
}
