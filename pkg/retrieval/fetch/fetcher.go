package fetch

import (
	"context"
	"fmt"
	"net/url"
	"regexp"
	"strings"
	"time"
	"unicode/utf8"

	"github.com/PuerkitoBio/goquery"
	"github.com/go-resty/resty/v2"
)

const (
	// DefaultMaxChars caps a grounding document's text.
	DefaultMaxChars = 3000
	// ExcerptMaxChars is the tighter cap used when the text is inlined
	// into a prompt.
	ExcerptMaxChars = 2400

	requestTimeout = 8 * time.Second
	minPrimaryText = 300
	minProxyText   = 200

	browserUA = "Mozilla/5.0 (Windows NT 10.0; Win64; x64) AppleWebKit/537.36 (KHTML, like Gecko) Chrome/125.0.0.0 Safari/537.36"
)

// boilerplateSelector lists the non-content elements removed before
// text extraction.
const boilerplateSelector = "script, style, noscript, nav, header, footer, aside, iframe, form, svg"

// blockedMarkers flag pages that came back as a JavaScript wall or a
// bot check instead of content.
var blockedMarkers = []string{
	"enable javascript",
	"javascript is required",
	"javascript is disabled",
	"captcha",
	"are you a robot",
	"access denied",
}

var spaceRe = regexp.MustCompile(`\s+`)

// Document is one fetched, cleaned web page.
type Document struct {
	URL       string
	Title     string
	Text      string
	FetchedAt time.Time
}

// FetchError marks a total transport failure for one URL. Callers
// must treat it as skippable.
type FetchError struct {
	URL string
	Err error
}

func (e *FetchError) Error() string {
	return fmt.Sprintf("fetch %s: %v", e.URL, e.Err)
}

func (e *FetchError) Unwrap() error { return e.Err }

// Fetcher retrieves a URL, strips boilerplate, and degrades to a
// readability-proxy fetch when the primary response looks blocked or
// empty.
type Fetcher struct {
	client    *resty.Client
	proxyHost string
}

// NewFetcher builds a fetcher. proxyHost is the readability proxy
// (e.g. "r.jina.ai"); empty disables the fallback.
func NewFetcher(proxyHost string) *Fetcher {
	client := resty.New().
		SetTimeout(requestTimeout).
		SetRedirectPolicy(resty.FlexibleRedirectPolicy(10)).
		SetHeader("User-Agent", browserUA).
		SetHeader("Accept-Language", "en-US,en;q=0.9")

	return &Fetcher{
		client:    client,
		proxyHost: proxyHost,
	}
}

// Fetch returns the cleaned document for rawURL, its text capped at
// maxChars. It fails with *FetchError only when the primary transport
// fails outright.
func (f *Fetcher) Fetch(ctx context.Context, rawURL string, maxChars int) (Document, error) {
	if maxChars <= 0 {
		maxChars = DefaultMaxChars
	}

	resp, err := f.client.R().SetContext(ctx).Get(rawURL)
	if err != nil {
		return Document{}, &FetchError{URL: rawURL, Err: err}
	}

	title, text := extract(resp.String())

	if degraded(resp.StatusCode(), text) {
		if proxyText, proxyTitle, ok := f.fetchViaProxy(ctx, rawURL); ok {
			text = proxyText
			if title == "" {
				title = proxyTitle
			}
		}
	}

	if title == "" {
		title = rawURL
	}

	return Document{
		URL:       rawURL,
		Title:     title,
		Text:      Truncate(text, maxChars),
		FetchedAt: time.Now(),
	}, nil
}

func degraded(status int, text string) bool {
	if status >= 400 || len(text) < minPrimaryText {
		return true
	}
	lower := strings.ToLower(text)
	for _, marker := range blockedMarkers {
		if strings.Contains(lower, marker) {
			return true
		}
	}
	return false
}

// fetchViaProxy asks the readability proxy for a rendered plain-text
// version of the page. Best effort: any failure keeps the primary
// extraction. The proxy may return HTML or plain text; both are
// handled.
func (f *Fetcher) fetchViaProxy(ctx context.Context, rawURL string) (text, title string, ok bool) {
	if f.proxyHost == "" {
		return "", "", false
	}
	parsed, err := url.Parse(rawURL)
	if err != nil || parsed.Host == "" {
		return "", "", false
	}

	proxyURL := "https://" + f.proxyHost + "/http://" + parsed.Host + parsed.Path
	if parsed.RawQuery != "" {
		proxyURL += "?" + parsed.RawQuery
	}

	resp, err := f.client.R().SetContext(ctx).Get(proxyURL)
	if err != nil || resp.StatusCode() >= 400 {
		return "", "", false
	}

	body := resp.String()
	if strings.Contains(body, "<html") || strings.Contains(body, "<body") {
		title, text = extract(body)
	} else {
		text = collapse(body)
	}
	if len(text) < minProxyText {
		return "", "", false
	}
	return text, title, true
}

// extract parses HTML, drops non-content elements, and returns the
// page title and collapsed body text. Unparseable markup degrades to
// empty text, never an error.
func extract(html string) (title, text string) {
	doc, err := goquery.NewDocumentFromReader(strings.NewReader(html))
	if err != nil {
		return "", ""
	}

	title = strings.TrimSpace(doc.Find("title").First().Text())

	doc.Find(boilerplateSelector).Remove()

	body := doc.Find("body")
	if body.Length() == 0 {
		return title, collapse(doc.Text())
	}
	return title, collapse(body.Text())
}

func collapse(s string) string {
	return strings.TrimSpace(spaceRe.ReplaceAllString(s, " "))
}

// Truncate caps s at maxChars bytes without splitting a multi-byte
// rune at the cut point.
func Truncate(s string, maxChars int) string {
	if len(s) <= maxChars {
		return s
	}
	cut := maxChars
	for cut > 0 && !utf8.RuneStart(s[cut]) {
		cut--
	}
	return s[:cut]
}
