package rank

import (
	"net/url"
	"regexp"
	"strings"

	"hs-chat-be/pkg/retrieval/fetch"
)

const (
	domainBonus    = 5.0
	titleTermScore = 1.5
	textTermScore  = 0.5
	shortPenalty   = 1.0
	shortThreshold = 250
	lengthDivisor  = 2000.0
	lengthCap      = 2.0
	maxQueryTerms  = 8
	minTermLen     = 3
)

var termSplitRe = regexp.MustCompile(`\W+`)

// SelectBest scores each document against the query and returns the
// highest scorer, first document winning ties. Pure and deterministic;
// returns nil on an empty input set.
func SelectBest(docs []fetch.Document, query, preferredDomain string) *fetch.Document {
	if len(docs) == 0 {
		return nil
	}

	terms := queryTerms(query)

	bestIdx := 0
	bestScore := Score(docs[0], terms, preferredDomain)
	for i := 1; i < len(docs); i++ {
		if s := Score(docs[i], terms, preferredDomain); s > bestScore {
			bestIdx, bestScore = i, s
		}
	}
	return &docs[bestIdx]
}

// Score computes the additive relevance score for one document.
func Score(doc fetch.Document, terms []string, preferredDomain string) float64 {
	var score float64

	if onDomain(doc.URL, preferredDomain) {
		score += domainBonus
	}

	title := strings.ToLower(doc.Title)
	text := strings.ToLower(doc.Text)
	for _, term := range terms {
		if strings.Contains(title, term) {
			score += titleTermScore
		}
		if strings.Contains(text, term) {
			score += textTermScore
		}
	}

	// Diminishing-returns length shaping: punish stubs, reward body
	// text up to a cap.
	if len(doc.Text) < shortThreshold {
		score -= shortPenalty
	} else {
		bonus := float64(len(doc.Text)) / lengthDivisor
		if bonus > lengthCap {
			bonus = lengthCap
		}
		score += bonus
	}

	return score
}

// queryTerms splits the query on non-word characters, keeps terms
// longer than two characters, and caps at the first eight.
func queryTerms(query string) []string {
	var terms []string
	for _, t := range termSplitRe.Split(strings.ToLower(query), -1) {
		if len(t) < minTermLen {
			continue
		}
		terms = append(terms, t)
		if len(terms) == maxQueryTerms {
			break
		}
	}
	return terms
}

func onDomain(rawURL, preferredDomain string) bool {
	if preferredDomain == "" {
		return false
	}
	parsed, err := url.Parse(rawURL)
	if err != nil {
		return false
	}
	host := strings.ToLower(parsed.Hostname())
	return host == preferredDomain || strings.HasSuffix(host, "."+preferredDomain)
}
