package sources

import (
	"context"
	"fmt"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/PuerkitoBio/goquery"
	"go.uber.org/zap"

	"github.com/priya/jobscout/internal/types"
)

const defaultSearchURL = "https://html.duckduckgo.com/html/"

// The five boards a deep scan sweeps. Site-scoped search queries keep the
// adapter on listing pages instead of blog posts and aggregator spam.
var deepScanSites = []string{
	"linkedin.com/jobs",
	"indeed.com",
	"glassdoor.com",
	"naukri.com",
	"ziprecruiter.com",
}

// DeepScanner sweeps multiple job boards through an HTML search engine,
// one site-scoped query per board. It is the expensive adapter: the
// dispatcher rate-limits it behind the deep-scan guard.
type DeepScanner struct {
	searchURL string
	sites     []string
	client    *http.Client
	log       *zap.Logger
}

// NewDeepScanner builds the multi-site adapter with the default search
// endpoint and board list.
func NewDeepScanner(log *zap.Logger) *DeepScanner {
	return &DeepScanner{
		searchURL: defaultSearchURL,
		sites:     deepScanSites,
		client:    &http.Client{Timeout: 20 * time.Second},
		log:       log,
	}
}

func (d *DeepScanner) Name() string { return "deep-scan" }

// Search runs one site-scoped query per board and merges the results up to
// q.Limit rows overall. Board failures are logged and skipped.
func (d *DeepScanner) Search(ctx context.Context, q Query) []RawListing {
	limit := q.Limit
	if limit <= 0 {
		limit = 10
	}

	seen := make(map[string]bool)
	var listings []RawListing
	for _, site := range d.sites {
		if len(listings) >= limit {
			break
		}
		rows, err := d.searchSite(ctx, site, q)
		if err != nil {
			d.log.Warn("deep scan site failed",
				zap.String("site", site),
				zap.Error(err))
			continue
		}
		for _, row := range rows {
			if len(listings) >= limit {
				break
			}
			if row.ApplyLink == "" || seen[row.ApplyLink] {
				continue
			}
			seen[row.ApplyLink] = true
			listings = append(listings, row)
		}
	}
	return listings
}

func (d *DeepScanner) searchSite(ctx context.Context, site string, q Query) ([]RawListing, error) {
	terms := fmt.Sprintf("site:%s %q", site, q.Role)
	if q.IsInternship {
		terms += " internship"
	}
	if q.IsRemote {
		terms += " remote"
	} else if q.Location != "" {
		terms += " " + q.Location
	}
	terms += " India"

	endpoint := d.searchURL + "?q=" + url.QueryEscape(terms)
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to build search request: %w", err)
	}
	req.Header.Set("User-Agent", "Mozilla/5.0 (compatible; JobScout/1.0)")

	resp, err := d.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("failed to call search engine: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("search engine returned status %d", resp.StatusCode)
	}

	doc, err := goquery.NewDocumentFromReader(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("failed to parse search results: %w", err)
	}

	var rows []RawListing
	doc.Find("div.result").Each(func(_ int, sel *goquery.Selection) {
		anchor := sel.Find("a.result__a").First()
		href, ok := anchor.Attr("href")
		if !ok {
			return
		}
		link := resolveResultLink(href)
		if link == "" {
			return
		}
		title := strings.TrimSpace(anchor.Text())
		snippet := strings.TrimSpace(sel.Find(".result__snippet").First().Text())
		if title == "" {
			return
		}
		rows = append(rows, RawListing{
			Title:       cleanResultTitle(title),
			Company:     companyFromTitle(title, site),
			ApplyLink:   link,
			Description: snippet,
			Source:      sourceForLink(link),
			Site:        site,
		})
	})
	return rows, nil
}

// resolveResultLink unwraps the search engine's redirect links and rejects
// anything that is not plain http(s).
func resolveResultLink(href string) string {
	u, err := url.Parse(href)
	if err != nil {
		return ""
	}
	if target := u.Query().Get("uddg"); target != "" {
		if decoded, err := url.QueryUnescape(target); err == nil {
			href = decoded
			u, err = url.Parse(href)
			if err != nil {
				return ""
			}
		}
	}
	if u.Scheme != "http" && u.Scheme != "https" {
		return ""
	}
	u.Fragment = ""
	return strings.TrimSuffix(u.String(), "/")
}

// cleanResultTitle strips the trailing "| Board" decoration search results
// carry on most boards.
func cleanResultTitle(title string) string {
	if idx := strings.LastIndex(title, " | "); idx > 0 {
		title = title[:idx]
	}
	return strings.TrimSpace(title)
}

// companyFromTitle pulls a company name out of result titles shaped like
// "Role at Company" or "Role - Company | Board". Falls back to the board's
// domain label when no separator is present.
func companyFromTitle(title, site string) string {
	title = cleanResultTitle(title)
	if idx := strings.Index(title, " at "); idx > 0 {
		return strings.TrimSpace(title[idx+4:])
	}
	if idx := strings.LastIndex(title, " - "); idx > 0 {
		return strings.TrimSpace(title[idx+3:])
	}
	label := site
	if idx := strings.Index(label, "."); idx > 0 {
		label = label[:idx]
	}
	if label == "" {
		return site
	}
	return strings.ToUpper(label[:1]) + label[1:]
}

func sourceForLink(link string) types.ListingSource {
	lower := strings.ToLower(link)
	switch {
	case strings.Contains(lower, "linkedin.com"):
		return types.SourceLinkedIn
	case strings.Contains(lower, "unstop.com"):
		return types.SourceUnstop
	case strings.Contains(lower, "greenhouse.io"),
		strings.Contains(lower, "lever.co"),
		strings.Contains(lower, "workday"):
		return types.SourceOfficial
	default:
		return types.SourceOther
	}
}
