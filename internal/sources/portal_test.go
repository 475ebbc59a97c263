package sources

import (
	"context"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/priya/jobscout/internal/fetch"
	"github.com/priya/jobscout/internal/types"
)

const portalPage = `<html><body>
<a href="https://boards.greenhouse.io/acme/jobs/101">Backend Engineer</a>
<a href="/careers/backend-engineer-bangalore">Backend Engineer</a>
<a href="/careers/">All openings</a>
<a href="/about">About us</a>
<a href="https://twitter.com/acme">Twitter</a>
</body></html>`

const postingPage = `<html><head><title>Acme</title></head><body>
<h1>Backend Engineer</h1>
<p>Join our platform team in Bangalore, India.</p>
</body></html>`

const offTopicPage = `<html><body>
<h1>Staff Accountant</h1>
<p>Office role in Bangalore, India.</p>
</body></html>`

func fakeFetcher(pages map[string]string) func(context.Context, string) (*fetch.Result, error) {
	return func(_ context.Context, pageURL string) (*fetch.Result, error) {
		html, ok := pages[pageURL]
		if !ok {
			return nil, &fetch.Error{URL: pageURL, Message: "not found", StatusCode: 404}
		}
		return &fetch.Result{URL: pageURL, HTML: html, StatusCode: 200}, nil
	}
}

func testPortal() types.PortalEntry {
	return types.PortalEntry{Company: "Acme", PortalURL: "https://acme.example.com/careers"}
}

func TestPortalCrawl(t *testing.T) {
	crawler := NewPortalCrawler(false, zap.NewNop())
	crawler.fetchPage = fakeFetcher(map[string]string{
		"https://acme.example.com/careers":                            portalPage,
		"https://boards.greenhouse.io/acme/jobs/101":                  postingPage,
		"https://acme.example.com/careers/backend-engineer-bangalore": offTopicPage,
	})

	res := crawler.Crawl(context.Background(), testPortal(), []string{"backend engineer"})
	require.NoError(t, res.Err)
	assert.False(t, res.NoLinks)

	// the ATS link matches the desired role, the internal page does not
	require.Len(t, res.Listings, 1)
	got := res.Listings[0]
	assert.Equal(t, "Backend Engineer", got.Title)
	assert.Equal(t, "Acme", got.Company)
	assert.Equal(t, "https://boards.greenhouse.io/acme/jobs/101", got.ApplyLink)
	assert.Equal(t, types.SourceOfficial, got.Source)
	assert.Equal(t, "India (Official)", got.Location)
	require.NotNil(t, got.WorkMode)
	assert.Equal(t, types.ModeOnsite, *got.WorkMode)
}

func TestPortalCrawlNoLinks(t *testing.T) {
	crawler := NewPortalCrawler(false, zap.NewNop())
	crawler.fetchPage = fakeFetcher(map[string]string{
		"https://acme.example.com/careers": `<html><body><a href="/about">About</a></body></html>`,
	})

	res := crawler.Crawl(context.Background(), testPortal(), []string{"backend engineer"})
	assert.True(t, res.NoLinks)
	assert.Empty(t, res.Listings)
}

func TestPortalCrawlHTTPFailure(t *testing.T) {
	crawler := NewPortalCrawler(false, zap.NewNop())
	crawler.fetchPage = fakeFetcher(map[string]string{})

	res := crawler.Crawl(context.Background(), testPortal(), []string{"backend engineer"})
	assert.Equal(t, 404, res.HTTPStatus)
	assert.Error(t, res.Err)
}

func TestPortalCrawlBrowserRetry(t *testing.T) {
	crawler := NewPortalCrawler(true, zap.NewNop())
	crawler.fetchPage = fakeFetcher(map[string]string{
		"https://acme.example.com/careers":           `<html><body>loading...</body></html>`,
		"https://boards.greenhouse.io/acme/jobs/101": postingPage,
	})
	crawler.renderPage = func(_ context.Context, _ string) (string, error) {
		return portalPage, nil
	}

	res := crawler.Crawl(context.Background(), testPortal(), []string{"backend engineer"})
	assert.False(t, res.NoLinks)
	require.Len(t, res.Listings, 1)
}

func TestPortalCrawlFollowUpCap(t *testing.T) {
	portalHTML := "<html><body>"
	pages := map[string]string{}
	for i := 0; i < 12; i++ {
		link := fmt.Sprintf("https://boards.greenhouse.io/acme/jobs/%d", i)
		portalHTML += fmt.Sprintf(`<a href="%s">Job</a>`, link)
		pages[link] = postingPage
	}
	portalHTML += "</body></html>"
	pages["https://acme.example.com/careers"] = portalHTML

	var fetched int
	base := fakeFetcher(pages)
	crawler := NewPortalCrawler(false, zap.NewNop())
	crawler.fetchPage = func(ctx context.Context, pageURL string) (*fetch.Result, error) {
		if pageURL != "https://acme.example.com/careers" {
			fetched++
		}
		return base(ctx, pageURL)
	}

	res := crawler.Crawl(context.Background(), testPortal(), []string{"backend engineer"})
	require.NoError(t, res.Err)
	assert.Equal(t, maxFollowUps, fetched)
}

func TestCandidateLinkHeuristics(t *testing.T) {
	crawler := NewPortalCrawler(false, zap.NewNop())
	candidates := crawler.candidateLinks(portalPage, "https://acme.example.com/careers")

	assert.Contains(t, candidates, "https://boards.greenhouse.io/acme/jobs/101")
	assert.Contains(t, candidates, "https://acme.example.com/careers/backend-engineer-bangalore")
	// the landing link itself and plain navigation are excluded
	assert.NotContains(t, candidates, "https://acme.example.com/careers")
	assert.NotContains(t, candidates, "https://acme.example.com/about")
	assert.NotContains(t, candidates, "https://twitter.com/acme")
}
