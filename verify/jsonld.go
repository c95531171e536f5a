package verify

import (
	"encoding/json"
	"net/url"
	"regexp"
	"strings"

	"github.com/PuerkitoBio/goquery"
)

// jobPosting is the subset of a schema.org JobPosting entry the verifier
// compares against the expected job.
type jobPosting struct {
	Title      string
	OrgName    string
	URL        string
	Identifier string
}

// extractJobPostings pulls schema.org/JobPosting entries out of the page's
// JSON-LD script blocks. Entries may appear as a single object, an array, or
// nested under @graph; all forms are handled.
func extractJobPostings(doc *goquery.Document) []jobPosting {
	var postings []jobPosting
	doc.Find(`script[type="application/ld+json"]`).Each(func(_ int, s *goquery.Selection) {
		var payload interface{}
		if err := json.Unmarshal([]byte(s.Text()), &payload); err != nil {
			return
		}
		collectJobPostings(payload, &postings)
	})
	return postings
}

func collectJobPostings(v interface{}, out *[]jobPosting) {
	switch node := v.(type) {
	case []interface{}:
		for _, item := range node {
			collectJobPostings(item, out)
		}
	case map[string]interface{}:
		if graph, ok := node["@graph"]; ok {
			collectJobPostings(graph, out)
		}
		if !typeIs(node["@type"], "JobPosting") {
			return
		}
		*out = append(*out, jobPosting{
			Title:      stringField(node, "title"),
			OrgName:    orgName(node["hiringOrganization"]),
			URL:        stringField(node, "url"),
			Identifier: identifierValue(node["identifier"]),
		})
	}
}

// typeIs matches "@type" whether it is a string or a list of strings
func typeIs(v interface{}, want string) bool {
	switch t := v.(type) {
	case string:
		return strings.EqualFold(t, want)
	case []interface{}:
		for _, item := range t {
			if s, ok := item.(string); ok && strings.EqualFold(s, want) {
				return true
			}
		}
	}
	return false
}

func stringField(node map[string]interface{}, key string) string {
	if s, ok := node[key].(string); ok {
		return strings.TrimSpace(s)
	}
	return ""
}

func orgName(v interface{}) string {
	switch org := v.(type) {
	case string:
		return strings.TrimSpace(org)
	case map[string]interface{}:
		return stringField(org, "name")
	}
	return ""
}

func identifierValue(v interface{}) string {
	switch id := v.(type) {
	case string:
		return strings.TrimSpace(id)
	case map[string]interface{}:
		return stringField(id, "value")
	}
	return ""
}

// looseTokenMatch tests whether enough significant tokens of expected appear
// in the text: at least two shared tokens of length > 2, or every token when
// fewer than two exist.
func looseTokenMatch(text, expected string) bool {
	tokens := significantTokens(expected)
	if len(tokens) == 0 {
		return false
	}
	lower := strings.ToLower(text)
	matched := 0
	for _, tok := range tokens {
		if strings.Contains(lower, tok) {
			matched++
		}
	}
	if len(tokens) < 2 {
		return matched == len(tokens)
	}
	return matched >= 2
}

func significantTokens(s string) []string {
	fields := strings.Fields(strings.ToLower(s))
	out := make([]string, 0, len(fields))
	for _, f := range fields {
		f = strings.Trim(f, ".,:;()[]/-&")
		if len(f) > 2 {
			out = append(out, f)
		}
	}
	return out
}

var numericIDPattern = regexp.MustCompile(`\d{6,}`)

// urlCorresponds decides whether a JSON-LD canonical URL or identifier could
// plausibly describe the URL being checked: a shared long numeric id, or an
// overlapping path segment. An absent canonical always corresponds.
func urlCorresponds(canonical, checked string) bool {
	if canonical == "" {
		return true
	}
	canonIDs := numericIDPattern.FindAllString(canonical, -1)
	checkedIDs := map[string]bool{}
	for _, id := range numericIDPattern.FindAllString(checked, -1) {
		checkedIDs[id] = true
	}
	for _, id := range canonIDs {
		if checkedIDs[id] {
			return true
		}
	}
	return sharesPathSegment(canonical, checked)
}

func sharesPathSegment(a, b string) bool {
	bSegs := map[string]bool{}
	for _, seg := range pathSegments(b) {
		bSegs[seg] = true
	}
	for _, seg := range pathSegments(a) {
		if bSegs[seg] {
			return true
		}
	}
	return false
}

// pathSegments returns the distinctive segments of a URL path: long enough to
// mean something, short generic words like "jobs" or "view" excluded
func pathSegments(rawURL string) []string {
	u, err := url.Parse(rawURL)
	if err != nil {
		return nil
	}
	var out []string
	for _, seg := range strings.Split(strings.ToLower(u.Path), "/") {
		if len(seg) > 4 {
			out = append(out, seg)
		}
	}
	return out
}
