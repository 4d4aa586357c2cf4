package source

import (
	"context"
	"encoding/json"
	"fmt"
	"log"
	"net/http"
	"net/url"
	"strings"
	"sync"
	"time"

	"jobmatch-engine/internal/config"
)

// SmartRecruiters pulls the public postings API, paginated per company.
// Companies are fetched by a small worker pool because the API caps page
// size at 100 and bigger tenants need several round trips.
type SmartRecruiters struct {
	boards  []config.Board
	limiter *HostLimiter
	hc      *http.Client
}

func NewSmartRecruiters(boards []config.Board, limiter *HostLimiter) *SmartRecruiters {
	return &SmartRecruiters{
		boards:  boards,
		limiter: limiter,
		hc:      &http.Client{Timeout: 25 * time.Second},
	}
}

func (s *SmartRecruiters) Name() string { return "smartrecruiters" }

// Response schema (public API) is typically:
// { "content": [...], "totalFound": N, "offset": O, "limit": L };
// only the fields we read are declared.
type srPostings struct {
	Content    []srPosting `json:"content"`
	TotalFound int         `json:"totalFound"`
}

type srPosting struct {
	ID       string `json:"id"`
	UUID     string `json:"uuid"`
	Name     string `json:"name"`
	Ref      string `json:"ref"`
	Location struct {
		City    string `json:"city"`
		Region  string `json:"region"`
		Country string `json:"country"`
		Remote  bool   `json:"remote"`
	} `json:"location"`
}

func (s *SmartRecruiters) Fetch(ctx context.Context) (Result, error) {
	const workers = 4

	res := Result{Source: "smartrecruiters"}
	rowsCh := make(chan []map[string]any, len(s.boards))
	workCh := make(chan config.Board)

	var wg sync.WaitGroup
	wg.Add(workers)

	for i := 0; i < workers; i++ {
		go func() {
			defer wg.Done()
			for board := range workCh {
				cctx, cancel := context.WithTimeout(ctx, 20*time.Second)
				rows, err := s.fetchCompany(cctx, board)
				cancel()
				if err != nil {
					log.Printf("[source:smartrecruiters] company=%q slug=%q err=%v", board.Name, board.Slug, err)
					continue
				}
				if len(rows) > 0 {
					rowsCh <- rows
				}
			}
		}()
	}

	go func() {
		defer close(workCh)
		for _, board := range s.boards {
			select {
			case <-ctx.Done():
				return
			case workCh <- board:
			}
		}
	}()

	wg.Wait()
	close(rowsCh)

	for rows := range rowsCh {
		res.Rows = append(res.Rows, rows...)
	}
	return res, nil
}

func (s *SmartRecruiters) fetchCompany(ctx context.Context, board config.Board) ([]map[string]any, error) {
	slug := strings.TrimSpace(board.Slug)
	if slug == "" {
		return nil, fmt.Errorf("empty slug")
	}

	base := fmt.Sprintf("https://api.smartrecruiters.com/v1/companies/%s/postings", url.PathEscape(slug))

	limit := 100
	offset := 0
	var out []map[string]any

	for {
		select {
		case <-ctx.Done():
			return out, ctx.Err()
		default:
		}

		u := fmt.Sprintf("%s?limit=%d&offset=%d", base, limit, offset)
		if err := s.limiter.WaitURL(ctx, u); err != nil {
			return out, err
		}

		req, _ := http.NewRequestWithContext(ctx, http.MethodGet, u, nil)
		req.Header.Set("User-Agent", "jobmatch-engine/1.0 (+local)")
		req.Header.Set("Accept", "application/json")

		resp, err := s.hc.Do(req)
		if err != nil {
			return out, fmt.Errorf("smartrecruiters get: %w", err)
		}
		var page srPostings
		decErr := json.NewDecoder(resp.Body).Decode(&page)
		resp.Body.Close()
		if resp.StatusCode >= 400 {
			return out, fmt.Errorf("smartrecruiters status %d", resp.StatusCode)
		}
		if decErr != nil {
			return out, fmt.Errorf("smartrecruiters decode: %w", decErr)
		}

		if len(page.Content) == 0 {
			break
		}

		for _, p := range page.Content {
			title := strings.TrimSpace(p.Name)
			id := strings.TrimSpace(firstNonEmpty(p.ID, p.UUID, p.Ref))
			if title == "" || id == "" {
				continue
			}
			out = append(out, map[string]any{
				"id":       "sr-" + id,
				"name":     title, // smartrecruiters calls the title "name"
				"company":  board.Name,
				"url":      fmt.Sprintf("https://jobs.smartrecruiters.com/%s/%s", slug, id),
				"location": strings.Join(nonEmpty(p.Location.City, p.Location.Region, p.Location.Country), ", "),
				"remote":   p.Location.Remote,
			})
		}

		offset += limit
		if page.TotalFound > 0 && offset >= page.TotalFound {
			break
		}
		// runaway guard for tenants that misreport totalFound
		if offset > 5000 {
			break
		}
	}

	return out, nil
}

func firstNonEmpty(vals ...string) string {
	for _, v := range vals {
		if strings.TrimSpace(v) != "" {
			return v
		}
	}
	return ""
}

func nonEmpty(vals ...string) []string {
	out := make([]string, 0, len(vals))
	for _, v := range vals {
		v = strings.TrimSpace(v)
		if v != "" {
			out = append(out, v)
		}
	}
	return out
}
