package retrieval

import (
	"context"
	"log"
	"net/url"
	"regexp"
	"sync"
	"time"

	"github.com/panjf2000/ants/v2"

	"hs-chat-be/pkg/retrieval/fetch"
	"hs-chat-be/pkg/retrieval/rank"
)

const (
	maxCandidates = 3
	maxSeedURLs   = 3

	// thinDocThreshold triggers the seed-URL fallback when the best
	// ranked document is shorter than this.
	thinDocThreshold = 400

	// softBudget caps total retrieval time for one turn; whatever has
	// completed by then is ranked as-is.
	softBudget = 15 * time.Second
)

var urlRe = regexp.MustCompile(`https?://[^\s<>"']+`)

// Result is the outcome of one turn's retrieval. BestDoc is nil when
// nothing usable was found; retrieval failure is never an error.
type Result struct {
	BestDoc       *fetch.Document
	AttemptedURLs map[string]bool
}

// Searcher is the candidate-URL source (the web-search adapter).
type Searcher interface {
	Search(ctx context.Context, query string, maxResults int) []string
}

// Fetcher retrieves and cleans one URL.
type Fetcher interface {
	Fetch(ctx context.Context, rawURL string, maxChars int) (fetch.Document, error)
}

// Orchestrator composes search, fetch, and ranking into "get the best
// grounding document for this turn".
type Orchestrator struct {
	searcher        Searcher
	fetcher         Fetcher
	pool            *ants.Pool
	preferredDomain string
	maxResults      int
	maxChars        int
	logger          *log.Logger
}

func NewOrchestrator(searcher Searcher, fetcher Fetcher, preferredDomain string, maxResults, maxChars int, logger *log.Logger) *Orchestrator {
	if maxResults <= 0 {
		maxResults = maxCandidates
	}
	if maxChars <= 0 {
		maxChars = fetch.DefaultMaxChars
	}
	// Fetches within a turn are independent; the pool bounds them to
	// the candidate count.
	pool, _ := ants.NewPool(maxResults)
	return &Orchestrator{
		searcher:        searcher,
		fetcher:         fetcher,
		pool:            pool,
		preferredDomain: preferredDomain,
		maxResults:      maxResults,
		maxChars:        maxChars,
		logger:          logger,
	}
}

// Release frees the fetch worker pool.
func (o *Orchestrator) Release() {
	o.pool.Release()
}

// Retrieve returns the best grounding document for the turn. URLs
// present in the message are fetched directly and search is skipped;
// otherwise the query goes through the search adapter. A thin best
// document triggers the topic seed-URL fallback.
func (o *Orchestrator) Retrieve(ctx context.Context, message, query string) Result {
	ctx, cancel := context.WithTimeout(ctx, softBudget)
	defer cancel()

	result := Result{AttemptedURLs: make(map[string]bool)}

	candidates := extractURLs(message)
	if len(candidates) == 0 {
		candidates = o.searcher.Search(ctx, query, o.maxResults)
	}

	docs := o.fetchAll(ctx, candidates, result.AttemptedURLs)
	best := rank.SelectBest(docs, query, o.preferredDomain)

	if best == nil || len(best.Text) < thinDocThreshold {
		best = o.seedFallback(ctx, query, docs, best, result.AttemptedURLs)
	}

	result.BestDoc = best
	return result
}

// seedFallback fetches the seed URLs for any topic keywords found in
// the query, re-ranks the union, and replaces the current best only
// when a strictly different URL wins.
func (o *Orchestrator) seedFallback(ctx context.Context, query string, docs []fetch.Document, best *fetch.Document, attempted map[string]bool) *fetch.Document {
	seeds := seedURLsFor(query)
	if len(seeds) == 0 {
		return best
	}

	fresh := make([]string, 0, len(seeds))
	for _, u := range seeds {
		if !attempted[u] {
			fresh = append(fresh, u)
		}
	}
	seedDocs := o.fetchAll(ctx, fresh, attempted)
	if len(seedDocs) == 0 {
		return best
	}

	union := append(append([]fetch.Document{}, docs...), seedDocs...)
	reranked := rank.SelectBest(union, query, o.preferredDomain)
	if reranked == nil {
		return best
	}
	if best != nil && reranked.URL == best.URL {
		return best
	}
	o.logger.Printf("[RETRIEVE] seed fallback replaced %s with %s", bestURL(best), reranked.URL)
	return reranked
}

// fetchAll retrieves the given URLs concurrently through the bounded
// pool. Failed fetches are skipped; whatever completes is returned in
// input order.
func (o *Orchestrator) fetchAll(ctx context.Context, urls []string, attempted map[string]bool) []fetch.Document {
	if len(urls) == 0 {
		return nil
	}

	results := make([]*fetch.Document, len(urls))
	var wg sync.WaitGroup
	for i, u := range urls {
		attempted[u] = true
		wg.Add(1)
		i, u := i, u
		submitErr := o.pool.Submit(func() {
			defer wg.Done()
			doc, err := o.fetcher.Fetch(ctx, u, o.maxChars)
			if err != nil {
				o.logger.Printf("[RETRIEVE] skipping %s: %v", u, err)
				return
			}
			results[i] = &doc
		})
		if submitErr != nil {
			wg.Done()
		}
	}
	wg.Wait()

	docs := make([]fetch.Document, 0, len(urls))
	for _, d := range results {
		if d != nil {
			docs = append(docs, *d)
		}
	}
	return docs
}

// extractURLs pulls well-formed absolute URLs out of the message.
func extractURLs(message string) []string {
	matches := urlRe.FindAllString(message, maxCandidates)
	var urls []string
	for _, m := range matches {
		if parsed, err := url.Parse(m); err == nil && parsed.Host != "" {
			urls = append(urls, m)
		}
	}
	return urls
}

func bestURL(d *fetch.Document) string {
	if d == nil {
		return "<none>"
	}
	return d.URL
}
