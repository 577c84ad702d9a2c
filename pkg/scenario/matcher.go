package scenario

import (
	"regexp"
	"strings"

	"github.com/xrash/smetrics"
)

// fuzzyCutoff is the minimum similarity for the fuzzy stages.
const fuzzyCutoff = 0.75

var (
	nonAlnumRe   = regexp.MustCompile(`[^a-z0-9\s]+`)
	whitespaceRe = regexp.MustCompile(`\s+`)
)

// Matcher is the deterministic alias classifier. It needs no network
// and is the fallback/offline path next to the LLM classifier.
type Matcher struct {
	patterns map[Name][]*regexp.Regexp
	corpora  map[Name][]string
}

// NewMatcher compiles the alias phrase patterns once.
func NewMatcher() *Matcher {
	m := &Matcher{
		patterns: make(map[Name][]*regexp.Regexp, len(Names)),
		corpora:  make(map[Name][]string, len(Names)),
	}
	for _, name := range Names {
		corpus := corpusFor(name)
		m.corpora[name] = corpus
		pats := make([]*regexp.Regexp, 0, len(corpus))
		for _, alias := range corpus {
			words := strings.Fields(alias)
			if len(words) == 0 {
				continue
			}
			for i, w := range words {
				words[i] = regexp.QuoteMeta(w)
			}
			// Whole-word phrase match, any run of spaces between words.
			pats = append(pats, regexp.MustCompile(`\b`+strings.Join(words, `\s+`)+`\b`))
		}
		m.patterns[name] = pats
	}
	return m
}

// corpusFor returns the label's aliases plus its canonical form with
// underscores replaced by spaces.
func corpusFor(name Name) []string {
	canonical := strings.ReplaceAll(string(name), "_", " ")
	corpus := make([]string, 0, len(aliases[name])+1)
	corpus = append(corpus, aliases[name]...)
	for _, a := range corpus {
		if a == canonical {
			return corpus
		}
	}
	return append(corpus, canonical)
}

// Normalize lowercases, folds underscores to spaces, strips other
// non-alphanumerics, and collapses whitespace runs.
func Normalize(text string) string {
	text = strings.ToLower(text)
	text = strings.ReplaceAll(text, "_", " ")
	text = nonAlnumRe.ReplaceAllString(text, " ")
	return strings.TrimSpace(whitespaceRe.ReplaceAllString(text, " "))
}

// Match resolves free text to a label, or "" when nothing matches.
// Stages run in order, first hit wins: phrase match, substring match,
// token fuzzy match, whole-string fuzzy match. Labels are always
// tested in declared order.
func (m *Matcher) Match(text string) Name {
	q := Normalize(text)
	if q == "" {
		return ""
	}

	for _, name := range Names {
		for _, p := range m.patterns[name] {
			if p.MatchString(q) {
				return name
			}
		}
	}

	for _, name := range Names {
		for _, alias := range m.corpora[name] {
			if strings.Contains(q, alias) {
				return name
			}
		}
	}

	tokens := strings.Fields(q)
	for _, name := range Names {
		for _, token := range tokens {
			for _, alias := range m.corpora[name] {
				if similarity(token, alias) >= fuzzyCutoff {
					return name
				}
			}
		}
	}

	for _, name := range Names {
		canonical := strings.ReplaceAll(string(name), "_", " ")
		if similarity(q, canonical) >= fuzzyCutoff {
			return name
		}
	}

	return ""
}

// similarity is a normalized Levenshtein ratio: 1 minus edit distance
// over the longer length. Stricter than prefix-weighted metrics, so
// near-misses like "visit" vs "visa" stay below the cutoff.
func similarity(a, b string) float64 {
	if a == "" || b == "" {
		return 0
	}
	longer := len(a)
	if len(b) > longer {
		longer = len(b)
	}
	dist := smetrics.WagnerFischer(a, b, 1, 1, 1)
	return 1 - float64(dist)/float64(longer)
}
