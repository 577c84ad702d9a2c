package rank

import (
	"strings"
	"testing"

	"hs-chat-be/pkg/retrieval/fetch"
)

func longText(n int) string {
	return strings.Repeat("scholarship information for students ", n/37+1)[:n]
}

func TestSelectBest(t *testing.T) {
	onDomain := fetch.Document{
		URL:   "https://harbour.space/scholarships",
		Title: "Scholarships",
		Text:  longText(800),
	}
	offDomain := fetch.Document{
		URL:   "https://example.com/scholarships",
		Title: "Scholarships",
		Text:  longText(800),
	}
	stub := fetch.Document{
		URL:   "https://example.com/stub",
		Title: "Page",
		Text:  "too short",
	}

	tests := []struct {
		name    string
		docs    []fetch.Document
		query   string
		wantURL string
	}{
		{
			name:    "single document wins by default",
			docs:    []fetch.Document{offDomain},
			query:   "scholarships",
			wantURL: offDomain.URL,
		},
		{
			name:    "preferred domain outranks equal content",
			docs:    []fetch.Document{offDomain, onDomain},
			query:   "scholarships",
			wantURL: onDomain.URL,
		},
		{
			name:    "substantial text outranks a stub",
			docs:    []fetch.Document{stub, offDomain},
			query:   "scholarships",
			wantURL: offDomain.URL,
		},
		{
			name:    "tie keeps the first document",
			docs:    []fetch.Document{offDomain, offDomain},
			query:   "scholarships",
			wantURL: offDomain.URL,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := SelectBest(tt.docs, tt.query, "harbour.space")
			if got == nil {
				t.Fatal("SelectBest() = nil, want a document")
			}
			if got.URL != tt.wantURL {
				t.Errorf("SelectBest().URL = %q, want %q", got.URL, tt.wantURL)
			}
		})
	}
}

func TestSelectBestEmpty(t *testing.T) {
	if got := SelectBest(nil, "anything", "harbour.space"); got != nil {
		t.Errorf("SelectBest(nil) = %v, want nil", got)
	}
}

func TestScore(t *testing.T) {
	terms := queryTerms("scholarship deadlines barcelona")

	t.Run("domain bonus dominates term hits", func(t *testing.T) {
		on := Score(fetch.Document{URL: "https://harbour.space/x", Text: longText(300)}, terms, "harbour.space")
		off := Score(fetch.Document{URL: "https://example.com/x", Text: longText(300)}, terms, "harbour.space")
		if diff := on - off; diff < 4.999 || diff > 5.001 {
			t.Errorf("domain bonus = %v, want 5.0", diff)
		}
	})

	t.Run("subdomain counts as preferred", func(t *testing.T) {
		sub := Score(fetch.Document{URL: "https://apply.harbour.space/x", Text: longText(300)}, terms, "harbour.space")
		off := Score(fetch.Document{URL: "https://example.com/x", Text: longText(300)}, terms, "harbour.space")
		if sub <= off {
			t.Errorf("subdomain score %v not above off-domain %v", sub, off)
		}
	})

	t.Run("lookalike domain is not preferred", func(t *testing.T) {
		fake := Score(fetch.Document{URL: "https://notharbour.space.evil.com/x", Text: longText(300)}, terms, "harbour.space")
		off := Score(fetch.Document{URL: "https://example.com/x", Text: longText(300)}, terms, "harbour.space")
		if fake != off {
			t.Errorf("lookalike domain scored %v, off-domain %v; want equal", fake, off)
		}
	})

	t.Run("title hit outweighs text hit", func(t *testing.T) {
		inTitle := Score(fetch.Document{Title: "Scholarship info", Text: longText(300)}, []string{"scholarship"}, "")
		base := Score(fetch.Document{Title: "Other", Text: longText(300)}, []string{"scholarship"}, "")
		// longText already contains the term, so only the title delta remains.
		if diff := inTitle - base; diff < 1.499 || diff > 1.501 {
			t.Errorf("title delta = %v, want 1.5", diff)
		}
	})

	t.Run("short text is penalized", func(t *testing.T) {
		short := Score(fetch.Document{Text: "tiny"}, nil, "")
		if short != -1.0 {
			t.Errorf("short text score = %v, want -1.0", short)
		}
	})

	t.Run("length bonus is capped", func(t *testing.T) {
		huge := Score(fetch.Document{Text: longText(20000)}, nil, "")
		if huge != 2.0 {
			t.Errorf("capped length score = %v, want 2.0", huge)
		}
	})
}

func TestQueryTerms(t *testing.T) {
	tests := []struct {
		name  string
		query string
		want  []string
	}{
		{"drops short tokens", "is it on at harbour", []string{"harbour"}},
		{"splits on punctuation", "visa,housing;fees", []string{"visa", "housing", "fees"}},
		{"caps at eight terms", "alpha bravo charlie delta echo foxtrot golf hotel india juliet", []string{"alpha", "bravo", "charlie", "delta", "echo", "foxtrot", "golf", "hotel"}},
		{"empty query", "", nil},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := queryTerms(tt.query)
			if len(got) != len(tt.want) {
				t.Fatalf("queryTerms(%q) = %v, want %v", tt.query, got, tt.want)
			}
			for i := range got {
				if got[i] != tt.want[i] {
					t.Errorf("queryTerms(%q)[%d] = %q, want %q", tt.query, i, got[i], tt.want[i])
				}
			}
		})
	}
}
