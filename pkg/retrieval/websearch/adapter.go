package websearch

import (
	"context"
	"fmt"
	"log"
	"net/url"
	"sort"
	"strings"
	"time"

	"github.com/PuerkitoBio/goquery"
	"github.com/go-resty/resty/v2"
)

const (
	// DefaultMaxResults caps a candidate set.
	DefaultMaxResults = 3

	requestTimeout = 8 * time.Second

	browserUA = "Mozilla/5.0 (Windows NT 10.0; Win64; x64) AppleWebKit/537.36 (KHTML, like Gecko) Chrome/125.0.0.0 Safari/537.36"
)

// backend is one HTML search endpoint with its anchor-extraction rule.
// Backends are tried in order; a parse or transport failure degrades
// to no results.
type backend struct {
	name     string
	endpoint string
	param    string
	selector string
}

var defaultBackends = []backend{
	{name: "ddg-html", endpoint: "https://html.duckduckgo.com/html/", param: "q", selector: "a.result__a"},
	{name: "ddg-lite", endpoint: "https://lite.duckduckgo.com/lite/", param: "q", selector: "a.result-link"},
	{name: "bing", endpoint: "https://www.bing.com/search", param: "q", selector: "li.b_algo h2 a"},
}

// Adapter queries external web-search backends and normalizes results
// to a deduplicated, preferred-domain-first URL list. It never fails
// loudly: total failure yields an empty set.
type Adapter struct {
	client          *resty.Client
	backends        []backend
	preferredDomain string
	orgName         string
	logger          *log.Logger
}

func NewAdapter(preferredDomain, orgName string, logger *log.Logger) *Adapter {
	client := resty.New().
		SetTimeout(requestTimeout).
		SetRedirectPolicy(resty.FlexibleRedirectPolicy(10)).
		SetHeader("User-Agent", browserUA).
		SetHeader("Accept-Language", "en-US,en;q=0.9")

	return &Adapter{
		client:          client,
		backends:        defaultBackends,
		preferredDomain: preferredDomain,
		orgName:         orgName,
		logger:          logger,
	}
}

// Search collects up to maxResults distinct result URLs for query.
// Query variants are tried in order (site-restricted, org-prefixed,
// raw), stopping as soon as enough distinct URLs are found.
func (a *Adapter) Search(ctx context.Context, query string, maxResults int) []string {
	if maxResults <= 0 {
		maxResults = DefaultMaxResults
	}

	seen := make(map[string]bool)
	var collected []string

	for _, variant := range a.variants(query) {
		if len(collected) >= maxResults {
			break
		}
		for _, u := range a.searchOnce(ctx, variant) {
			if seen[u] {
				continue
			}
			seen[u] = true
			collected = append(collected, u)
		}
	}

	a.sortPreferredFirst(collected)
	if len(collected) > maxResults {
		collected = collected[:maxResults]
	}
	if collected == nil {
		collected = []string{}
	}
	return collected
}

func (a *Adapter) variants(query string) []string {
	return []string{
		fmt.Sprintf("%s site:%s", query, a.preferredDomain),
		fmt.Sprintf("%s %s", a.orgName, query),
		query,
	}
}

// searchOnce runs one query through the backend chain, returning the
// first backend's non-empty anchor list.
func (a *Adapter) searchOnce(ctx context.Context, query string) []string {
	for _, b := range a.backends {
		urls, err := a.queryBackend(ctx, b, query)
		if err != nil {
			a.logger.Printf("[SEARCH] backend %s failed for %q: %v", b.name, query, err)
			continue
		}
		if len(urls) > 0 {
			return urls
		}
	}
	return nil
}

func (a *Adapter) queryBackend(ctx context.Context, b backend, query string) ([]string, error) {
	resp, err := a.client.R().
		SetContext(ctx).
		SetQueryParam(b.param, query).
		Get(b.endpoint)
	if err != nil {
		return nil, err
	}
	if resp.StatusCode() >= 400 {
		return nil, fmt.Errorf("status %d", resp.StatusCode())
	}

	doc, err := goquery.NewDocumentFromReader(strings.NewReader(resp.String()))
	if err != nil {
		return nil, err
	}

	var urls []string
	doc.Find(b.selector).Each(func(_ int, s *goquery.Selection) {
		href, ok := s.Attr("href")
		if !ok {
			return
		}
		if resolved := normalizeResultURL(href); resolved != "" {
			urls = append(urls, resolved)
		}
	})
	return urls, nil
}

// normalizeResultURL unwraps engine redirect links (DuckDuckGo's
// uddg parameter) and drops anything that is not an absolute
// http(s) URL.
func normalizeResultURL(href string) string {
	if strings.HasPrefix(href, "//") {
		href = "https:" + href
	}
	parsed, err := url.Parse(href)
	if err != nil {
		return ""
	}
	if uddg := parsed.Query().Get("uddg"); uddg != "" {
		if unwrapped, err := url.QueryUnescape(uddg); err == nil {
			href = unwrapped
			parsed, err = url.Parse(href)
			if err != nil {
				return ""
			}
		}
	}
	if parsed.Scheme != "http" && parsed.Scheme != "https" {
		return ""
	}
	if parsed.Host == "" {
		return ""
	}
	return href
}

// sortPreferredFirst orders preferred-domain URLs first, breaking
// ties lexically so results are stable for identical inputs.
func (a *Adapter) sortPreferredFirst(urls []string) {
	sort.SliceStable(urls, func(i, j int) bool {
		pi, pj := a.isPreferred(urls[i]), a.isPreferred(urls[j])
		if pi != pj {
			return pi
		}
		return urls[i] < urls[j]
	})
}

func (a *Adapter) isPreferred(rawURL string) bool {
	parsed, err := url.Parse(rawURL)
	if err != nil {
		return false
	}
	host := strings.ToLower(parsed.Hostname())
	return host == a.preferredDomain || strings.HasSuffix(host, "."+a.preferredDomain)
}
