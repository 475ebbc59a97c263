package sources

import (
	"context"
	"fmt"
	"net/http"
	"net/http/httptest"
	"net/url"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/priya/jobscout/internal/types"
)

const searchResultPage = `<html><body>
<div class="result">
  <a class="result__a" href="%s">Python Developer - Acme Corp | LinkedIn</a>
  <a class="result__snippet" href="#">Acme Corp is hiring in Bangalore.</a>
</div>
<div class="result">
  <a class="result__a" href="javascript:void(0)">Not a job</a>
</div>
</body></html>`

func TestDeepScannerSearch(t *testing.T) {
	target := "https://www.linkedin.com/jobs/view/12345"
	var sawQuery string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		sawQuery = r.URL.Query().Get("q")
		redirect := "//duckduckgo.com/l/?uddg=" + url.QueryEscape(target)
		fmt.Fprintf(w, searchResultPage, redirect)
	}))
	defer srv.Close()

	scanner := NewDeepScanner(zap.NewNop())
	scanner.searchURL = srv.URL
	scanner.sites = []string{"linkedin.com/jobs"}

	listings := scanner.Search(context.Background(), Query{
		Role:         "Python Developer",
		IsInternship: true,
		Limit:        10,
	})

	assert.Contains(t, sawQuery, `site:linkedin.com/jobs`)
	assert.Contains(t, sawQuery, "internship")
	assert.Contains(t, sawQuery, "India")

	require.Len(t, listings, 1)
	assert.Equal(t, target, listings[0].ApplyLink)
	assert.Equal(t, "Python Developer - Acme Corp", listings[0].Title)
	assert.Equal(t, "Acme Corp", listings[0].Company)
	assert.Equal(t, types.SourceLinkedIn, listings[0].Source)
}

func TestDeepScannerLimit(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		site := r.URL.Query().Get("q")
		for i := 0; i < 5; i++ {
			fmt.Fprintf(w, `<div class="result"><a class="result__a" href="https://example.com/%s/%d">Go Developer at Acme</a></div>`,
				url.PathEscape(site), i)
		}
	}))
	defer srv.Close()

	scanner := NewDeepScanner(zap.NewNop())
	scanner.searchURL = srv.URL
	scanner.sites = []string{"a.com", "b.com", "c.com"}

	listings := scanner.Search(context.Background(), Query{Role: "Go Developer", Limit: 7})
	assert.Len(t, listings, 7)
}

func TestDeepScannerSiteFailureSkipped(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		http.Error(w, "blocked", http.StatusForbidden)
	}))
	defer srv.Close()

	scanner := NewDeepScanner(zap.NewNop())
	scanner.searchURL = srv.URL

	assert.Empty(t, scanner.Search(context.Background(), Query{Role: "Go Developer"}))
}

func TestCompanyFromTitle(t *testing.T) {
	assert.Equal(t, "Acme Corp", companyFromTitle("Python Developer at Acme Corp", "indeed.com"))
	assert.Equal(t, "Acme Corp", companyFromTitle("Python Developer - Acme Corp | Indeed", "indeed.com"))
	assert.Equal(t, "Indeed", companyFromTitle("Python Developer", "indeed.com"))
}

func TestSourceForLink(t *testing.T) {
	assert.Equal(t, types.SourceLinkedIn, sourceForLink("https://www.linkedin.com/jobs/view/1"))
	assert.Equal(t, types.SourceUnstop, sourceForLink("https://unstop.com/jobs/1"))
	assert.Equal(t, types.SourceOfficial, sourceForLink("https://boards.greenhouse.io/acme/jobs/1"))
	assert.Equal(t, types.SourceOther, sourceForLink("https://example.com/jobs/1"))
}
