package fetch

import (
	"net/url"
	"sort"
	"strings"

	"github.com/PuerkitoBio/goquery"
)

// LinkExtractionError reports a failure to parse a page for links.
type LinkExtractionError struct {
	Message string
	Cause   error
}

func (e *LinkExtractionError) Error() string {
	if e.Cause != nil {
		return "link extraction: " + e.Message + ": " + e.Cause.Error()
	}
	return "link extraction: " + e.Message
}

func (e *LinkExtractionError) Unwrap() error {
	return e.Cause
}

// ExtractLinks returns every href on the page resolved against baseURL,
// deduplicated and sorted. External links are kept: career pages frequently
// hand off to hosted ATS domains.
func ExtractLinks(htmlContent, baseURL string) ([]string, error) {
	base, err := url.Parse(baseURL)
	if err != nil {
		return nil, &LinkExtractionError{Message: "failed to parse base URL", Cause: err}
	}
	if base.Scheme == "" || base.Host == "" {
		return nil, &LinkExtractionError{Message: "base URL must have scheme and host: " + baseURL}
	}

	doc, err := goquery.NewDocumentFromReader(strings.NewReader(htmlContent))
	if err != nil {
		return nil, &LinkExtractionError{Message: "failed to parse HTML", Cause: err}
	}

	seen := make(map[string]bool)
	links := make([]string, 0)

	doc.Find("a[href]").Each(func(_ int, s *goquery.Selection) {
		href, ok := s.Attr("href")
		if !ok || href == "" {
			return
		}
		linkURL, err := url.Parse(href)
		if err != nil {
			return // skip malformed hrefs
		}
		resolved := base.ResolveReference(linkURL)
		if resolved.Scheme != "http" && resolved.Scheme != "https" {
			return
		}
		resolved.Fragment = ""
		abs := strings.TrimSuffix(resolved.String(), "/")
		if abs == "" || seen[abs] {
			return
		}
		seen[abs] = true
		links = append(links, abs)
	})

	sort.Strings(links)
	return links, nil
}
