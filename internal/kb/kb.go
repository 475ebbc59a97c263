// Package kb maintains the career-portal knowledge base: the learned crawl
// health of each company's careers page. Deep scans read it to skip portals
// that failed terminally, and write back what each crawl taught them.
package kb

import (
	"context"
	"fmt"
	"net/http"

	"go.uber.org/zap"

	"github.com/priya/jobscout/internal/types"
)

// PortalStore is the persistence surface the knowledge base needs.
type PortalStore interface {
	ActivePortals(ctx context.Context) ([]types.PortalEntry, error)
	MarkPortalWorking(ctx context.Context, company string) error
	MarkPortalNonWorking(ctx context.Context, company, reason string) error
	UpsertPortal(ctx context.Context, p *types.PortalEntry) error
}

// Outcome summarizes one portal crawl for learning purposes.
type Outcome struct {
	Saved      int
	NoLinks    bool
	HTTPStatus int
	Err        error
}

// Recorder applies crawl outcomes to the knowledge base.
type Recorder struct {
	store PortalStore
	log   *zap.Logger
}

func NewRecorder(store PortalStore, log *zap.Logger) *Recorder {
	return &Recorder{store: store, log: log}
}

// CrawlQueue returns the portals a deep scan should visit. Portals marked
// NON-WORKING were excluded by the store query, so failed portals cost
// nothing until something flips them back.
func (r *Recorder) CrawlQueue(ctx context.Context) ([]types.PortalEntry, error) {
	portals, err := r.store.ActivePortals(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to load portal crawl queue: %w", err)
	}
	return portals, nil
}

// RecordOutcome updates a company's entry from a crawl outcome. NO_LINKS
// and hard HTTP failures (403, 404) mark the portal NON-WORKING with a
// reason; a clean crawl marks it WORKING and refreshes the timestamp, even
// when zero listings matched. Transient failures leave the entry untouched
// so the portal is retried next run.
func (r *Recorder) RecordOutcome(ctx context.Context, company string, o Outcome) error {
	switch {
	case o.NoLinks:
		return r.store.MarkPortalNonWorking(ctx, company, "no job links found")
	case o.HTTPStatus == http.StatusForbidden || o.HTTPStatus == http.StatusNotFound:
		return r.store.MarkPortalNonWorking(ctx, company, fmt.Sprintf("HTTP %d", o.HTTPStatus))
	case o.HTTPStatus != 0, o.Err != nil:
		r.log.Warn("portal crawl failed transiently",
			zap.String("company", company),
			zap.Int("http_status", o.HTTPStatus),
			zap.Error(o.Err))
		return nil
	default:
		return r.store.MarkPortalWorking(ctx, company)
	}
}
