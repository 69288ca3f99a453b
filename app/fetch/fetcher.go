package fetch

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"sync"
	"time"
)

// Request identifies one listing's calendar feed to retrieve.
type Request struct {
	URL         string
	ListingID   string
	ListingName string
}

// Result is the outcome of one request. Err is set instead of Body when the
// fetch failed; a failure never affects the other requests in the batch.
type Result struct {
	ListingID   string
	ListingName string
	Body        []byte
	Err         error
}

// Fetcher retrieves calendar feed bodies concurrently with a bounded worker
// pool. Results always come back in request order regardless of completion
// order.
type Fetcher struct {
	httpClient  *http.Client
	userAgent   string
	timeout     time.Duration
	workerCount int
}

func NewFetcher(httpClient *http.Client, userAgent string, timeout time.Duration, workerCount int) *Fetcher {
	if workerCount < 1 {
		workerCount = 1
	}
	return &Fetcher{
		httpClient:  httpClient,
		userAgent:   userAgent,
		timeout:     timeout,
		workerCount: workerCount,
	}
}

// Run fetches every request and returns one result per request, index for
// index. Individual failures (network errors, timeouts, non-200 statuses)
// are recorded on the matching result.
func (f *Fetcher) Run(ctx context.Context, reqs []Request) []Result {
	results := make([]Result, len(reqs))
	if len(reqs) == 0 {
		return results
	}

	workers := f.workerCount
	if workers > len(reqs) {
		workers = len(reqs)
	}

	jobs := make(chan int)
	var wg sync.WaitGroup

	for w := 0; w < workers; w++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for i := range jobs {
				req := reqs[i]
				body, err := f.fetchOne(ctx, req.URL)
				if err != nil {
					slog.Warn("Feed fetch failed", "listing", req.ListingName, "error", err)
				}
				results[i] = Result{
					ListingID:   req.ListingID,
					ListingName: req.ListingName,
					Body:        body,
					Err:         err,
				}
			}
		}()
	}

	for i := range reqs {
		jobs <- i
	}
	close(jobs)
	wg.Wait()

	return results
}

func (f *Fetcher) fetchOne(ctx context.Context, url string) ([]byte, error) {
	timeoutCtx, cancel := context.WithTimeout(ctx, f.timeout)
	defer cancel()

	req, err := http.NewRequestWithContext(timeoutCtx, "GET", url, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}

	req.Header.Set("User-Agent", f.userAgent)

	resp, err := f.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch feed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("HTTP error: %d %s", resp.StatusCode, resp.Status)
	}

	data, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("failed to read response body: %w", err)
	}

	return data, nil
}
