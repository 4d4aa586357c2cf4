package source

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"time"

	"jobmatch-engine/internal/config"
)

// Lever pulls the public postings API. Rows keep lever's key names (text,
// hostedUrl, descriptionPlain, workplaceType, commitment).
type Lever struct {
	boards  []config.Board
	limiter *HostLimiter
	hc      *http.Client
}

func NewLever(boards []config.Board, limiter *HostLimiter) *Lever {
	return &Lever{
		boards:  boards,
		limiter: limiter,
		hc:      &http.Client{Timeout: 20 * time.Second},
	}
}

func (l *Lever) Name() string { return "lever" }

type leverPosting struct {
	ID               string `json:"id"`
	Text             string `json:"text"`
	HostedURL        string `json:"hostedUrl"`
	DescriptionPlain string `json:"descriptionPlain"`
	WorkplaceType    string `json:"workplaceType"`
	Categories       struct {
		Location   string `json:"location"`
		Commitment string `json:"commitment"`
	} `json:"categories"`
}

func (l *Lever) Fetch(ctx context.Context) (Result, error) {
	res := Result{Source: "lever"}
	for _, board := range l.boards {
		rows, err := l.fetchBoard(ctx, board)
		if err != nil {
			continue
		}
		res.Rows = append(res.Rows, rows...)
	}
	return res, nil
}

func (l *Lever) fetchBoard(ctx context.Context, board config.Board) ([]map[string]any, error) {
	u := fmt.Sprintf("https://api.lever.co/v0/postings/%s?mode=json", board.Slug)
	if err := l.limiter.WaitURL(ctx, u); err != nil {
		return nil, err
	}

	req, _ := http.NewRequestWithContext(ctx, http.MethodGet, u, nil)
	req.Header.Set("User-Agent", "jobmatch-engine/1.0 (+local)")

	resp, err := l.hc.Do(req)
	if err != nil {
		return nil, fmt.Errorf("lever get postings: %w", err)
	}
	defer resp.Body.Close()
	if resp.StatusCode >= 400 {
		return nil, fmt.Errorf("lever postings status %d", resp.StatusCode)
	}

	var postings []leverPosting
	if err := json.NewDecoder(resp.Body).Decode(&postings); err != nil {
		return nil, fmt.Errorf("lever decode: %w", err)
	}

	rows := make([]map[string]any, 0, len(postings))
	for _, p := range postings {
		rows = append(rows, map[string]any{
			"id":               p.ID,
			"text":             p.Text, // lever's name for the title
			"company":          board.Name,
			"hostedUrl":        p.HostedURL,
			"descriptionPlain": p.DescriptionPlain,
			"location":         p.Categories.Location,
			"commitment":       p.Categories.Commitment,
			"workplaceType":    p.WorkplaceType,
		})
	}
	return rows, nil
}
