package sources

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/priya/jobscout/internal/types"
)

func TestExcludeKeywords(t *testing.T) {
	assert.Contains(t, excludeKeywords(0), "Senior")
	assert.Contains(t, excludeKeywords(0), "Director")
	assert.NotContains(t, excludeKeywords(2), "Senior")
	assert.Contains(t, excludeKeywords(2), "Principal")
	assert.Equal(t, "", excludeKeywords(5))
}

func TestAggregatorSearch(t *testing.T) {
	var queries []string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		queries = append(queries, r.URL.Query().Get("what"))
		assert.Equal(t, "id", r.URL.Query().Get("app_id"))
		assert.Equal(t, "Remote", r.URL.Query().Get("where"))
		assert.Equal(t, "20", r.URL.Query().Get("results_per_page"))

		resp := adzunaResponse{Results: []adzunaResult{
			{
				Title:       "Python Developer",
				RedirectURL: "https://example.com/jobs/1",
				Description: "Build services",
				SalaryMin:   500000,
				SalaryMax:   800000,
			},
			// duplicate redirect URL across sub-queries is dropped
			{
				Title:       "Python Developer",
				RedirectURL: "https://example.com/jobs/1",
			},
		}}
		require.NoError(t, json.NewEncoder(w).Encode(resp))
	}))
	defer srv.Close()

	agg := NewAggregator("id", "key", "in", zap.NewNop())
	agg.baseURL = srv.URL

	listings := agg.Search(context.Background(), Query{
		Role:     "Python Developer OR Backend Developer OR Data Engineer OR DevOps Engineer",
		IsRemote: true,
	})

	// four OR terms collapse to three sub-queries, one request each
	require.Len(t, queries, 3)
	assert.Equal(t, "Python Developer", queries[0])
	assert.Equal(t, "Backend Developer", queries[1])
	assert.Equal(t, "Data Engineer", queries[2])

	require.Len(t, listings, 1)
	assert.Equal(t, "https://example.com/jobs/1", listings[0].ApplyLink)
	assert.Equal(t, types.SourceOther, listings[0].Source)
	require.NotNil(t, listings[0].SalaryMin)
	assert.Equal(t, 500000, *listings[0].SalaryMin)
}

func TestAggregatorInternshipSuffix(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "SDE Intern Internship", r.URL.Query().Get("what"))
		assert.Equal(t, "India", r.URL.Query().Get("where"))
		require.NoError(t, json.NewEncoder(w).Encode(adzunaResponse{}))
	}))
	defer srv.Close()

	agg := NewAggregator("id", "key", "in", zap.NewNop())
	agg.baseURL = srv.URL

	listings := agg.Search(context.Background(), Query{Role: "SDE Intern", IsInternship: true})
	assert.Empty(t, listings)
}

func TestAggregatorWithoutCredentials(t *testing.T) {
	agg := NewAggregator("", "", "in", zap.NewNop())
	assert.Nil(t, agg.Search(context.Background(), Query{Role: "Python Developer"}))
}

func TestAggregatorUpstreamFailure(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		http.Error(w, "rate limited", http.StatusTooManyRequests)
	}))
	defer srv.Close()

	agg := NewAggregator("id", "key", "in", zap.NewNop())
	agg.baseURL = srv.URL

	// upstream failures surface as an empty result, never a panic or error
	assert.Empty(t, agg.Search(context.Background(), Query{Role: "Python Developer"}))
}
