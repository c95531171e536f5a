package jobs

import (
	"net/url"
	"strings"
)

// minJobIDLength is the shortest identifier a board detail-page URL must carry
// before we trust it to point at one specific posting.
const minJobIDLength = 6

var jobBoardHosts = []string{"linkedin.com", "glassdoor.com", "indeed.com"}

func hostMatches(host, domain string) bool {
	host = strings.ToLower(host)
	return host == domain || strings.HasSuffix(host, "."+domain)
}

func isJobBoardHost(host string) bool {
	for _, d := range jobBoardHosts {
		if hostMatches(host, d) {
			return true
		}
	}
	return false
}

func parseHTTPURL(raw string) *url.URL {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return nil
	}
	u, err := url.Parse(raw)
	if err != nil {
		return nil
	}
	if (u.Scheme != "http" && u.Scheme != "https") || u.Host == "" {
		return nil
	}
	return u
}

// isGenericSearchURL rejects search/listing pages that show many jobs rather
// than one posting: Google result pages, LinkedIn keyword searches, and the
// boards' own search endpoints.
func isGenericSearchURL(u *url.URL) bool {
	path := strings.ToLower(u.Path)
	switch {
	case hostMatches(u.Host, "google.com"):
		return strings.HasPrefix(path, "/search") || u.Query().Get("q") != ""
	case hostMatches(u.Host, "linkedin.com"):
		return strings.Contains(path, "/jobs/search") || u.Query().Get("keywords") != ""
	case hostMatches(u.Host, "indeed.com"):
		return strings.HasPrefix(path, "/jobs") && u.Query().Get("q") != ""
	case hostMatches(u.Host, "glassdoor.com"):
		return strings.Contains(path, "/job/") && u.Query().Get("sc.keyword") != ""
	}
	return false
}

// ValidateCompanyURL accepts a well-formed http(s) URL that is hosted on the
// company's own site: not a job board, not a Google search page. Returns ""
// when the URL is unusable.
func ValidateCompanyURL(raw string) string {
	u := parseHTTPURL(raw)
	if u == nil {
		return ""
	}
	if isJobBoardHost(u.Host) {
		return ""
	}
	if isGenericSearchURL(u) {
		return ""
	}
	return u.String()
}

// ValidateSourceURL accepts a job-board detail-page URL: hosted on a known
// board, not a search listing, and carrying a recognizable job identifier of
// at least six characters. Returns "" when the URL is unusable.
func ValidateSourceURL(raw string) string {
	u := parseHTTPURL(raw)
	if u == nil {
		return ""
	}
	if !isJobBoardHost(u.Host) {
		return ""
	}
	if isGenericSearchURL(u) {
		return ""
	}

	path := strings.ToLower(u.Path)
	switch {
	case hostMatches(u.Host, "linkedin.com"):
		if id := pathSegmentAfter(path, "/jobs/view/"); len(id) >= minJobIDLength {
			return u.String()
		}
	case hostMatches(u.Host, "indeed.com"):
		jk := u.Query().Get("jk")
		if len(jk) >= minJobIDLength && strings.Contains(path, "/viewjob") {
			return u.String()
		}
	case hostMatches(u.Host, "glassdoor.com"):
		if !strings.Contains(path, "/job-listing/") {
			return ""
		}
		if id := u.Query().Get("jl"); len(id) >= minJobIDLength {
			return u.String()
		}
		if id := u.Query().Get("jobListingId"); len(id) >= minJobIDLength {
			return u.String()
		}
	}
	return ""
}

// pathSegmentAfter returns the path segment immediately following prefix
func pathSegmentAfter(path, prefix string) string {
	idx := strings.Index(path, prefix)
	if idx == -1 {
		return ""
	}
	rest := path[idx+len(prefix):]
	if slash := strings.IndexByte(rest, '/'); slash != -1 {
		rest = rest[:slash]
	}
	return rest
}

// classifyLegacyURL sorts a bare `url` field into company or source territory
// by host, then validates it under the matching rules. Exactly one of the
// returned strings is non-empty on success.
func classifyLegacyURL(raw string) (companyURL, sourceURL string) {
	u := parseHTTPURL(raw)
	if u == nil {
		return "", ""
	}
	if isJobBoardHost(u.Host) {
		return "", ValidateSourceURL(raw)
	}
	return ValidateCompanyURL(raw), ""
}

// FallbackSearchURL builds the deterministic search-engine URL used when no
// direct posting URL survived validation. Downstream always has something to
// display, even if verification later rejects it.
func FallbackSearchURL(source, company, title, location string) string {
	q := url.Values{}
	q.Set("q", strings.TrimSpace(strings.Join([]string{source, company, title, location, "job opening"}, " ")))
	return "https://www.google.com/search?" + q.Encode()
}
