package source

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"time"

	"jobmatch-engine/internal/config"
)

// Greenhouse pulls the public board API. Rows keep greenhouse's own key
// names (absolute_url, content, numeric id); the alias tables map them.
type Greenhouse struct {
	boards  []config.Board
	limiter *HostLimiter
	hc      *http.Client
}

func NewGreenhouse(boards []config.Board, limiter *HostLimiter) *Greenhouse {
	return &Greenhouse{
		boards:  boards,
		limiter: limiter,
		hc:      &http.Client{Timeout: 20 * time.Second},
	}
}

func (g *Greenhouse) Name() string { return "greenhouse" }

type ghJobs struct {
	Jobs []struct {
		ID          int64  `json:"id"`
		Title       string `json:"title"`
		AbsoluteURL string `json:"absolute_url"`
		Content     string `json:"content"`
		Location    struct {
			Name string `json:"name"`
		} `json:"location"`
		Metadata []struct {
			Name  string          `json:"name"`
			Value json.RawMessage `json:"value"`
		} `json:"metadata"`
	} `json:"jobs"`
}

func (g *Greenhouse) Fetch(ctx context.Context) (Result, error) {
	res := Result{Source: "greenhouse"}
	for _, board := range g.boards {
		rows, err := g.fetchBoard(ctx, board)
		if err != nil {
			// one board down must not sink the others
			continue
		}
		res.Rows = append(res.Rows, rows...)
	}
	return res, nil
}

func (g *Greenhouse) fetchBoard(ctx context.Context, board config.Board) ([]map[string]any, error) {
	u := fmt.Sprintf("https://boards-api.greenhouse.io/v1/boards/%s/jobs?content=true", board.Slug)
	if err := g.limiter.WaitURL(ctx, u); err != nil {
		return nil, err
	}

	req, _ := http.NewRequestWithContext(ctx, http.MethodGet, u, nil)
	req.Header.Set("User-Agent", "jobmatch-engine/1.0 (+local)")

	resp, err := g.hc.Do(req)
	if err != nil {
		return nil, fmt.Errorf("greenhouse get board: %w", err)
	}
	defer resp.Body.Close()
	if resp.StatusCode >= 400 {
		return nil, fmt.Errorf("greenhouse board status %d", resp.StatusCode)
	}

	var payload ghJobs
	if err := json.NewDecoder(resp.Body).Decode(&payload); err != nil {
		return nil, fmt.Errorf("greenhouse decode: %w", err)
	}

	rows := make([]map[string]any, 0, len(payload.Jobs))
	for _, j := range payload.Jobs {
		rows = append(rows, map[string]any{
			"id":           fmt.Sprintf("gh-%d", j.ID),
			"title":        j.Title,
			"company":      board.Name,
			"absolute_url": j.AbsoluteURL,
			"content":      j.Content, // HTML; normalizer strips it
			"location":     j.Location.Name,
		})
	}
	return rows, nil
}
