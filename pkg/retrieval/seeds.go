package retrieval

import "strings"

// topicSeeds maps a retrieval topic to the trigger keywords found in
// queries and the hand-curated URLs fetched when search yields
// nothing usable. One shared table; read-only after init.
type topicSeeds struct {
	topic    string
	keywords []string
	urls     []string
}

var seedTable = []topicSeeds{
	{
		topic:    "scholarships",
		keywords: []string{"scholarship", "scholarships", "funding", "financial aid", "grant", "tuition"},
		urls: []string{
			"https://harbour.space/scholarships",
			"https://harbour.space/admissions",
		},
	},
	{
		topic:    "deadlines",
		keywords: []string{"deadline", "deadlines", "intake", "intakes", "academic calendar", "term dates", "apply by"},
		urls: []string{
			"https://harbour.space/academic-calendar",
			"https://harbour.space/admissions",
		},
	},
	{
		topic:    "foundation",
		keywords: []string{"undergraduate", "bachelor", "bachelors", "foundation"},
		urls: []string{
			"https://harbour.space/bachelors",
			"https://harbour.space/programmes",
		},
	},
	{
		topic:    "visa",
		keywords: []string{"visa", "visas", "residence permit", "immigration"},
		urls: []string{
			"https://harbour.space/visa-legalization",
			"https://harbour.space/international-office",
		},
	},
	{
		topic:    "housing",
		keywords: []string{"housing", "accommodation", "dorm", "dorms", "residence"},
		urls: []string{
			"https://harbour.space/student-housing",
		},
	},
	{
		topic:    "careers",
		keywords: []string{"career", "careers", "internship", "internships", "jobs", "employment"},
		urls: []string{
			"https://harbour.space/careers",
		},
	},
}

// seedURLsFor scans the query for topic keywords and returns the
// matched topics' seed URLs, deduplicated and capped at maxSeedURLs.
func seedURLsFor(query string) []string {
	q := strings.ToLower(query)
	seen := make(map[string]bool)
	var urls []string
	for _, ts := range seedTable {
		for _, kw := range ts.keywords {
			if !strings.Contains(q, kw) {
				continue
			}
			for _, u := range ts.urls {
				if seen[u] {
					continue
				}
				seen[u] = true
				urls = append(urls, u)
				if len(urls) == maxSeedURLs {
					return urls
				}
			}
			break
		}
	}
	return urls
}
