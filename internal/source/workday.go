package source

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log"
	"net/http"
	"net/http/cookiejar"
	"net/url"
	"strings"
	"sync"
	"time"

	"jobmatch-engine/internal/config"
)

// Workday pulls the CXS postings endpoint. The board "slug" is the full
// board URL (https://<tenant>.wd5.myworkdayjobs.com/[en-US/]<site>); tenant,
// site and locale are derived from it. Some tenants sit behind Cloudflare
// and 403 the API; once a host does that we skip its remaining boards for
// the rest of the cycle.
type Workday struct {
	boards  []config.Board
	limiter *HostLimiter

	mu          sync.Mutex
	blockedHost map[string]bool
}

func NewWorkday(boards []config.Board, limiter *HostLimiter) *Workday {
	return &Workday{
		boards:      boards,
		limiter:     limiter,
		blockedHost: map[string]bool{},
	}
}

func (w *Workday) Name() string { return "workday" }

var errWorkdayBlocked = errors.New("workday blocked by cloudflare")

type wdBoard struct {
	Scheme string
	Host   string
	Tenant string
	Site   string
	Locale string
}

type wdRequest struct {
	AppliedFacets map[string]any `json:"appliedFacets"`
	Limit         int            `json:"limit"`
	Offset        int            `json:"offset"`
	SearchText    string         `json:"searchText"`
}

type wdResponse struct {
	Total       int `json:"total"`
	JobPostings []struct {
		ID            string `json:"id"`
		Title         string `json:"title"`
		ExternalPath  string `json:"externalPath"`
		ExternalURL   string `json:"externalUrl"`
		LocationsText string `json:"locationsText"`
		JobReqID      string `json:"jobRequisitionId"`
	} `json:"jobPostings"`
}

func (w *Workday) Fetch(ctx context.Context) (Result, error) {
	res := Result{Source: "workday"}
	for _, board := range w.boards {
		rows, err := w.fetchBoard(ctx, board)
		if err != nil {
			if errors.Is(err, errWorkdayBlocked) {
				log.Printf("[source:workday] host blocked; skipping board=%q", board.Name)
				continue
			}
			log.Printf("[source:workday] board=%q err=%v", board.Name, err)
			continue
		}
		res.Rows = append(res.Rows, rows...)
	}
	return res, nil
}

func parseWorkdayBoardURL(raw string) (wdBoard, error) {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return wdBoard{}, errors.New("empty board url")
	}
	u, err := url.Parse(raw)
	if err != nil {
		return wdBoard{}, err
	}
	if u.Scheme == "" {
		u.Scheme = "https"
	}
	if u.Host == "" {
		return wdBoard{}, fmt.Errorf("missing host in %q", raw)
	}

	parts := strings.Split(u.Host, ".")
	if len(parts) < 3 {
		return wdBoard{}, fmt.Errorf("unexpected host %q", u.Host)
	}
	tenant := parts[0]

	segs := strings.Split(strings.Trim(u.Path, "/"), "/")
	if len(segs) == 0 || segs[0] == "" {
		return wdBoard{}, fmt.Errorf("unexpected path %q", u.Path)
	}

	// drop a leading locale segment like "en-US"
	locale := ""
	if len(segs) >= 2 && looksLikeLocale(segs[0]) {
		locale = segs[0]
		segs = segs[1:]
	}

	site := segs[len(segs)-1]
	if site == "" {
		return wdBoard{}, fmt.Errorf("could not derive site from path %q", u.Path)
	}

	return wdBoard{Scheme: u.Scheme, Host: u.Host, Tenant: tenant, Site: site, Locale: locale}, nil
}

func looksLikeLocale(s string) bool {
	if len(s) != 5 || s[2] != '-' {
		return false
	}
	return isAlpha(s[0:2]) && isAlpha(s[3:5])
}

func isAlpha(s string) bool {
	for i := 0; i < len(s); i++ {
		c := s[i]
		if !((c >= 'a' && c <= 'z') || (c >= 'A' && c <= 'Z')) {
			return false
		}
	}
	return true
}

func (b wdBoard) jobsEndpoint() string {
	base := fmt.Sprintf("%s://%s/wday/cxs/%s/%s/jobs", b.Scheme, b.Host, b.Tenant, b.Site)
	if b.Locale == "" {
		return base
	}
	return base + "?locale=" + url.QueryEscape(b.Locale)
}

func (w *Workday) fetchBoard(ctx context.Context, board config.Board) ([]map[string]any, error) {
	b, err := parseWorkdayBoardURL(board.Slug)
	if err != nil {
		return nil, err
	}

	w.mu.Lock()
	blocked := w.blockedHost[b.Host]
	w.mu.Unlock()
	if blocked {
		return nil, errWorkdayBlocked
	}

	// Per-board client with a cookie jar so session cookies persist across pages.
	jar, _ := cookiejar.New(nil)
	hc := &http.Client{Jar: jar, Timeout: 20 * time.Second}

	endpoint := b.jobsEndpoint()

	limit := 50
	offset := 0
	var out []map[string]any

	for {
		select {
		case <-ctx.Done():
			return out, ctx.Err()
		default:
		}

		if err := w.limiter.WaitURL(ctx, endpoint); err != nil {
			return out, err
		}

		payload, _ := json.Marshal(wdRequest{
			AppliedFacets: map[string]any{},
			Limit:         limit,
			Offset:        offset,
		})
		req, _ := http.NewRequestWithContext(ctx, http.MethodPost, endpoint, bytes.NewReader(payload))
		req.Header.Set("Content-Type", "application/json")
		req.Header.Set("Accept", "application/json")
		req.Header.Set("User-Agent", "jobmatch-engine/1.0 (+local)")

		resp, err := hc.Do(req)
		if err != nil {
			return out, fmt.Errorf("workday post: %w", err)
		}
		if resp.StatusCode == http.StatusForbidden {
			resp.Body.Close()
			w.mu.Lock()
			w.blockedHost[b.Host] = true
			w.mu.Unlock()
			return out, errWorkdayBlocked
		}
		var page wdResponse
		decErr := json.NewDecoder(resp.Body).Decode(&page)
		resp.Body.Close()
		if resp.StatusCode >= 400 {
			return out, fmt.Errorf("workday status %d", resp.StatusCode)
		}
		if decErr != nil {
			return out, fmt.Errorf("workday decode: %w", decErr)
		}

		if len(page.JobPostings) == 0 {
			break
		}

		for _, p := range page.JobPostings {
			title := strings.TrimSpace(p.Title)
			id := strings.TrimSpace(firstNonEmpty(p.JobReqID, p.ID))
			if title == "" || id == "" {
				continue
			}
			out = append(out, map[string]any{
				"id":       "wd-" + b.Tenant + "-" + id,
				"title":    title,
				"company":  board.Name,
				"url":      absoluteWorkdayURL(b, p.ExternalURL, p.ExternalPath),
				"location": p.LocationsText,
			})
		}

		offset += limit
		if page.Total > 0 && offset >= page.Total {
			break
		}
		if offset > 5000 {
			break
		}
	}

	return out, nil
}

func absoluteWorkdayURL(b wdBoard, external, path string) string {
	if external = strings.TrimSpace(external); external != "" {
		return external
	}
	path = strings.TrimSpace(path)
	if path == "" {
		return ""
	}
	if strings.HasPrefix(path, "http://") || strings.HasPrefix(path, "https://") {
		return path
	}
	if !strings.HasPrefix(path, "/") {
		path = "/" + path
	}
	return fmt.Sprintf("%s://%s%s", b.Scheme, b.Host, path)
}
