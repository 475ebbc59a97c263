package sources

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"go.uber.org/zap"

	"github.com/priya/jobscout/internal/types"
)

const (
	adzunaBaseURL        = "https://api.adzuna.com/v1/api/jobs"
	adzunaResultsPerPage = 20
	maxSubQueries        = 3
)

// Exclusion keyword sets keyed off the candidate's experience band. Fresh
// candidates get the widest net since senior noise dominates board results
// for common role titles.
var (
	excludeFresher     = "Senior Lead Principal Manager Architect Head VP Director"
	excludeEarlyCareer = "Principal Director VP Head Architect"
)

// Aggregator queries the Adzuna job board API. When credentials are not
// configured it logs a warning and sits out the batch rather than failing it.
type Aggregator struct {
	appID   string
	appKey  string
	country string
	baseURL string
	client  *http.Client
	log     *zap.Logger
}

// NewAggregator builds an Adzuna adapter. Country is the two-letter market
// code in the API path.
func NewAggregator(appID, appKey, country string, log *zap.Logger) *Aggregator {
	return &Aggregator{
		appID:   appID,
		appKey:  appKey,
		country: country,
		baseURL: adzunaBaseURL,
		client:  &http.Client{Timeout: 15 * time.Second},
		log:     log,
	}
}

func (a *Aggregator) Name() string { return "adzuna" }

type adzunaResponse struct {
	Results []adzunaResult `json:"results"`
}

type adzunaResult struct {
	Title       string `json:"title"`
	RedirectURL string `json:"redirect_url"`
	Description string `json:"description"`
	Company     struct {
		DisplayName string `json:"display_name"`
	} `json:"company"`
	Location struct {
		DisplayName string `json:"display_name"`
	} `json:"location"`
	SalaryMin float64 `json:"salary_min"`
	SalaryMax float64 `json:"salary_max"`
}

// Search splits the role on " OR " into at most three sub-queries and runs
// one API call per sub-query, deduplicating by redirect URL across calls.
func (a *Aggregator) Search(ctx context.Context, q Query) []RawListing {
	if a.appID == "" || a.appKey == "" {
		a.log.Warn("adzuna credentials not configured, skipping aggregator")
		return nil
	}

	subQueries := strings.Split(q.Role, " OR ")
	if len(subQueries) > maxSubQueries {
		subQueries = subQueries[:maxSubQueries]
	}

	seen := make(map[string]bool)
	var listings []RawListing
	for _, sub := range subQueries {
		sub = strings.TrimSpace(sub)
		if sub == "" {
			continue
		}
		results, err := a.fetch(ctx, sub, q)
		if err != nil {
			a.log.Warn("adzuna query failed",
				zap.String("query", sub),
				zap.Error(err))
			continue
		}
		for _, r := range results {
			if r.RedirectURL == "" || seen[r.RedirectURL] {
				continue
			}
			seen[r.RedirectURL] = true
			listings = append(listings, a.toRawListing(r))
		}
	}
	return listings
}

func (a *Aggregator) fetch(ctx context.Context, role string, q Query) ([]adzunaResult, error) {
	what := role
	if q.IsInternship {
		what += " Internship"
	}

	where := "India"
	if q.IsRemote {
		where = "Remote"
	} else if q.Location != "" {
		where = q.Location
	}

	params := url.Values{}
	params.Set("app_id", a.appID)
	params.Set("app_key", a.appKey)
	params.Set("what", what)
	params.Set("where", where)
	params.Set("results_per_page", fmt.Sprintf("%d", adzunaResultsPerPage))
	params.Set("content-type", "application/json")
	if exclude := excludeKeywords(q.ExperienceYears); exclude != "" {
		params.Set("what_exclude", exclude)
	}

	endpoint := fmt.Sprintf("%s/%s/search/1?%s", a.baseURL, a.country, params.Encode())
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to build adzuna request: %w", err)
	}

	resp, err := a.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("failed to call adzuna: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		body, _ := io.ReadAll(io.LimitReader(resp.Body, 512))
		return nil, fmt.Errorf("adzuna returned status %d: %s", resp.StatusCode, string(body))
	}

	var decoded adzunaResponse
	if err := json.NewDecoder(resp.Body).Decode(&decoded); err != nil {
		return nil, fmt.Errorf("failed to decode adzuna response: %w", err)
	}
	return decoded.Results, nil
}

func (a *Aggregator) toRawListing(r adzunaResult) RawListing {
	raw := RawListing{
		Title:       r.Title,
		Company:     r.Company.DisplayName,
		ApplyLink:   r.RedirectURL,
		Description: r.Description,
		Location:    r.Location.DisplayName,
		Source:      types.SourceOther,
		Site:        "adzuna",
	}
	if r.SalaryMin > 0 {
		min := int(r.SalaryMin)
		raw.SalaryMin = &min
	}
	if r.SalaryMax > 0 {
		max := int(r.SalaryMax)
		raw.SalaryMax = &max
	}
	return raw
}

// excludeKeywords picks the exclusion set for an experience band. Seasoned
// candidates get no exclusions since senior roles are what they want.
func excludeKeywords(experienceYears int) string {
	switch {
	case experienceYears <= 0:
		return excludeFresher
	case experienceYears <= 3:
		return excludeEarlyCareer
	default:
		return ""
	}
}
