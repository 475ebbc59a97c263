package sources

import (
	"context"
	"errors"
	"net/url"
	"strings"

	"go.uber.org/zap"

	"github.com/priya/jobscout/internal/fetch"
	"github.com/priya/jobscout/internal/types"
)

// maxFollowUps caps per-company page fetches so one bloated careers page
// cannot eat the whole deep-scan budget.
const maxFollowUps = 8

// Hosted ATS vendors. A link into any of these from a careers page is a
// job posting regardless of the path shape.
var atsDomains = []string{
	"greenhouse.io",
	"lever.co",
	"workday.com",
	"myworkdayjobs.com",
	"smartrecruiters.com",
	"ashbyhq.com",
}

// Path fragments that mark an internal link as a posting rather than
// navigation chrome.
var jobPathKeywords = []string{"/job/", "/careers/", "/position/", "/opening/", "/role/"}

// CrawlResult is the per-company outcome of a portal crawl. Exactly one of
// the failure fields is set on failure; on success Listings holds whatever
// postings matched the desired roles, possibly none.
type CrawlResult struct {
	Listings   []RawListing
	NoLinks    bool
	HTTPStatus int
	Err        error
}

// PortalCrawler walks company career pages from the knowledge base and
// pulls postings that match the candidate's desired roles.
type PortalCrawler struct {
	useBrowser bool
	fetchPage  func(ctx context.Context, pageURL string) (*fetch.Result, error)
	renderPage func(ctx context.Context, pageURL string) (string, error)
	log        *zap.Logger
}

// NewPortalCrawler builds the crawler. When useBrowser is set, a page that
// yields no candidate links on the plain fetch is retried through a
// headless browser before being written off as NO_LINKS; client-rendered
// career pages are common among the hosted ATS vendors.
func NewPortalCrawler(useBrowser bool, log *zap.Logger) *PortalCrawler {
	return &PortalCrawler{
		useBrowser: useBrowser,
		fetchPage: func(ctx context.Context, pageURL string) (*fetch.Result, error) {
			return fetch.URL(ctx, pageURL, fetch.DefaultOptions())
		},
		renderPage: fetch.RenderWithBrowser,
		log:        log,
	}
}

// Crawl fetches one company's portal, extracts candidate posting links and
// follows up to maxFollowUps of them, keeping postings whose title matches
// a desired role and whose text mentions the target geography.
func (c *PortalCrawler) Crawl(ctx context.Context, portal types.PortalEntry, roles []string) CrawlResult {
	result, err := c.fetchPage(ctx, portal.PortalURL)
	if err != nil {
		var fetchErr *fetch.Error
		if errors.As(err, &fetchErr) && fetchErr.StatusCode != 0 {
			return CrawlResult{HTTPStatus: fetchErr.StatusCode, Err: err}
		}
		return CrawlResult{Err: err}
	}

	candidates := c.candidateLinks(result.HTML, portal.PortalURL)
	if len(candidates) == 0 && c.useBrowser {
		rendered, err := c.renderPage(ctx, portal.PortalURL)
		if err != nil {
			c.log.Warn("browser render failed",
				zap.String("company", portal.Company),
				zap.Error(err))
		} else {
			candidates = c.candidateLinks(rendered, portal.PortalURL)
		}
	}
	if len(candidates) == 0 {
		return CrawlResult{NoLinks: true}
	}
	if len(candidates) > maxFollowUps {
		candidates = candidates[:maxFollowUps]
	}

	var listings []RawListing
	onsite := types.ModeOnsite
	for _, link := range candidates {
		page, err := c.fetchPage(ctx, link)
		if err != nil {
			c.log.Warn("posting fetch failed",
				zap.String("url", link),
				zap.Error(err))
			continue
		}
		title := fetch.ExtractTitle(page.HTML)
		if title == "" || !roleMatches(title, roles) {
			continue
		}
		description, err := fetch.ExtractText(page.HTML)
		if err != nil {
			c.log.Warn("text extraction failed",
				zap.String("url", link),
				zap.Error(err))
			continue
		}
		if !mentionsTargetGeography(description) {
			continue
		}
		listings = append(listings, RawListing{
			Title:       title,
			Company:     portal.Company,
			ApplyLink:   link,
			Description: description,
			Location:    "India (Official)",
			WorkMode:    &onsite,
			Source:      types.SourceOfficial,
			Site:        "portal",
		})
	}
	return CrawlResult{Listings: listings}
}

// candidateLinks filters a page's links down to probable job postings:
// links into a hosted ATS vendor, or internal links whose path carries a
// posting keyword and which are meaningfully longer than the portal URL
// itself (drops the page's own landing link).
func (c *PortalCrawler) candidateLinks(htmlContent, portalURL string) []string {
	links, err := fetch.ExtractLinks(htmlContent, portalURL)
	if err != nil {
		c.log.Warn("link extraction failed",
			zap.String("url", portalURL),
			zap.Error(err))
		return nil
	}

	portalHost := hostOf(portalURL)
	var candidates []string
	for _, link := range links {
		lower := strings.ToLower(link)
		if isATSLink(lower) {
			candidates = append(candidates, link)
			continue
		}
		if hostOf(link) != portalHost {
			continue
		}
		if !hasJobPath(lower) {
			continue
		}
		if len(link) <= len(portalURL)+5 {
			continue
		}
		candidates = append(candidates, link)
	}
	return candidates
}

func isATSLink(lowerLink string) bool {
	host := hostOf(lowerLink)
	for _, domain := range atsDomains {
		if host == domain || strings.HasSuffix(host, "."+domain) {
			return true
		}
	}
	return false
}

func hasJobPath(lowerLink string) bool {
	for _, kw := range jobPathKeywords {
		if strings.Contains(lowerLink, kw) {
			return true
		}
	}
	return false
}

func hostOf(rawURL string) string {
	u, err := url.Parse(rawURL)
	if err != nil {
		return ""
	}
	return strings.ToLower(u.Hostname())
}

func roleMatches(title string, roles []string) bool {
	lowerTitle := strings.ToLower(title)
	for _, role := range roles {
		role = strings.ToLower(strings.TrimSpace(role))
		if role != "" && strings.Contains(lowerTitle, role) {
			return true
		}
	}
	return false
}

func mentionsTargetGeography(text string) bool {
	lower := strings.ToLower(text)
	return strings.Contains(lower, "india") ||
		strings.Contains(lower, "bangalore") ||
		strings.Contains(lower, "remote")
}
