// Package dispatch runs the task queue: it picks up pending tasks, fans
// search tasks out to the source adapters through the ingestion gate, and
// scores resumes for ATS tasks.
package dispatch

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/priya/jobscout/internal/ats"
	"github.com/priya/jobscout/internal/ingest"
	"github.com/priya/jobscout/internal/kb"
	"github.com/priya/jobscout/internal/sources"
	"github.com/priya/jobscout/internal/types"
)

// Result caps per deep-scan invocation. A full DEEP task gets the larger
// budget; the automatic fallback out of a thin FAST scan runs in light mode.
const (
	lightScanLimit = 10
	deepScanLimit  = 20
)

// errGuardBlocked stops a batch when a DEEP task hits the rate guard. The
// task is already back in pending by the time this surfaces.
var errGuardBlocked = errors.New("deep scan guard window not elapsed")

// Store is the persistence surface the dispatcher needs beyond the
// ingestion gate's own.
type Store interface {
	PendingTasks(ctx context.Context) ([]types.SearchTask, error)
	SetTaskStatus(ctx context.Context, id uuid.UUID, status types.TaskStatus) error
	GetJobPreference(ctx context.Context, userID uuid.UUID) (*types.JobPreference, error)
	InsertResumeScore(ctx context.Context, score *types.ResumeScore) error
}

type portalCrawler interface {
	Crawl(ctx context.Context, portal types.PortalEntry, roles []string) sources.CrawlResult
}

type portalRecorder interface {
	CrawlQueue(ctx context.Context) ([]types.PortalEntry, error)
	RecordOutcome(ctx context.Context, company string, o kb.Outcome) error
}

// Dispatcher processes queued tasks one at a time, sequentially. Within a
// task, roles run one at a time and sources one at a time; there is no
// parallel fan-out, so a slow upstream slows the batch rather than
// overloading it.
type Dispatcher struct {
	store             Store
	gate              *ingest.Gate
	aggregator        sources.Source
	deepScanner       sources.Source
	crawler           portalCrawler
	portals           portalRecorder
	guard             *Guard
	analyzer          *ats.Analyzer
	fetchResume       func(ctx context.Context, url string) (string, error)
	autoDeepThreshold int
	log               *zap.Logger
}

// Options wires the dispatcher's collaborators.
type Options struct {
	Store             Store
	Gate              *ingest.Gate
	Aggregator        sources.Source
	DeepScanner       sources.Source
	Crawler           portalCrawler
	Portals           portalRecorder
	Guard             *Guard
	AutoDeepThreshold int
	Logger            *zap.Logger
}

func New(opts Options) *Dispatcher {
	return &Dispatcher{
		store:             opts.Store,
		gate:              opts.Gate,
		aggregator:        opts.Aggregator,
		deepScanner:       opts.DeepScanner,
		crawler:           opts.Crawler,
		portals:           opts.Portals,
		guard:             opts.Guard,
		analyzer:          &ats.Analyzer{},
		fetchResume:       ats.FetchResumeText,
		autoDeepThreshold: opts.AutoDeepThreshold,
		log:               opts.Logger,
	}
}

// RunBatch drains the pending queue once. Each task moves to processing
// before work starts, then to completed or failed; a failing task never
// aborts the rest of the batch. The one exception is a DEEP task blocked by
// the rate guard: it goes back to pending and the batch exits so the queue
// is retried whole on the next run.
func (d *Dispatcher) RunBatch(ctx context.Context) error {
	tasks, err := d.store.PendingTasks(ctx)
	if err != nil {
		return fmt.Errorf("failed to load pending tasks: %w", err)
	}

	for _, task := range tasks {
		if err := d.store.SetTaskStatus(ctx, task.ID, types.TaskProcessing); err != nil {
			d.log.Error("failed to mark task processing",
				zap.String("task_id", task.ID.String()),
				zap.Error(err))
			continue
		}

		err := d.processTask(ctx, &task)
		if errors.Is(err, errGuardBlocked) {
			d.log.Info("deep scan guard active, exiting batch",
				zap.String("task_id", task.ID.String()))
			return nil
		}
		if err != nil {
			d.log.Error("task failed",
				zap.String("task_id", task.ID.String()),
				zap.String("task_type", string(task.TaskType)),
				zap.Error(err))
			if err := d.store.SetTaskStatus(ctx, task.ID, types.TaskFailed); err != nil {
				d.log.Error("failed to mark task failed",
					zap.String("task_id", task.ID.String()),
					zap.Error(err))
			}
			continue
		}

		if err := d.store.SetTaskStatus(ctx, task.ID, types.TaskCompleted); err != nil {
			d.log.Error("failed to mark task completed",
				zap.String("task_id", task.ID.String()),
				zap.Error(err))
		}
	}
	return nil
}

func (d *Dispatcher) processTask(ctx context.Context, task *types.SearchTask) error {
	switch task.TaskType {
	case types.TaskSearch:
		return d.handleSearch(ctx, task)
	case types.TaskATS:
		return d.handleATS(ctx, task)
	default:
		return fmt.Errorf("unknown task type %q", task.TaskType)
	}
}

// handleSearch resolves roles and experience from the user's stored
// preferences when present, falling back to the task itself, and runs each
// role through the adapter chosen by the scan mode.
func (d *Dispatcher) handleSearch(ctx context.Context, task *types.SearchTask) error {
	roles, experience := d.resolveProfile(ctx, task)
	if len(roles) == 0 {
		return errors.New("no roles to search")
	}

	if task.Filters.ScanMode == types.ScanDeep {
		if !d.guard.Allow() {
			if err := d.store.SetTaskStatus(ctx, task.ID, types.TaskPending); err != nil {
				d.log.Error("failed to revert guarded task to pending",
					zap.String("task_id", task.ID.String()),
					zap.Error(err))
			}
			return errGuardBlocked
		}
		if err := d.runDeepScan(ctx, task, roles, experience); err != nil {
			return err
		}
		if err := d.guard.Update(); err != nil {
			d.log.Warn("failed to update deep scan guard", zap.Error(err))
		}
		return nil
	}

	// The fallback is judged per role, not over the whole task: a role the
	// aggregator covers well must not mask one it returned nothing for.
	params := ingest.Params{DefaultLocation: task.Filters.Location, ExperienceYears: experience}
	for _, role := range roles {
		q := d.queryForRole(task, role, experience, 0)
		rows := d.aggregator.Search(ctx, q)
		saved := d.gate.Process(ctx, rows, params)
		d.log.Info("aggregator scan finished",
			zap.String("role", role),
			zap.Int("fetched", len(rows)),
			zap.Int("saved", saved))

		if saved < d.autoDeepThreshold && task.Filters.AutoDeepFallback {
			d.log.Info("thin aggregator results, falling back to light deep scan",
				zap.String("role", role),
				zap.Int("saved", saved),
				zap.Int("threshold", d.autoDeepThreshold))
			dq := d.queryForRole(task, role, experience, lightScanLimit)
			d.gate.Process(ctx, d.deepScanner.Search(ctx, dq), params)
		}
	}
	return nil
}

// runDeepScan sweeps the job boards for every role, then crawls the career
// portals from the knowledge base once for the whole task, feeding crawl
// outcomes back into the knowledge base.
func (d *Dispatcher) runDeepScan(ctx context.Context, task *types.SearchTask, roles []string, experience int) error {
	params := ingest.Params{DefaultLocation: task.Filters.Location, ExperienceYears: experience}

	for _, role := range roles {
		q := d.queryForRole(task, role, experience, deepScanLimit)
		rows := d.deepScanner.Search(ctx, q)
		saved := d.gate.Process(ctx, rows, params)
		d.log.Info("deep scan finished",
			zap.String("role", role),
			zap.Int("fetched", len(rows)),
			zap.Int("saved", saved))
	}

	portals, err := d.portals.CrawlQueue(ctx)
	if err != nil {
		return err
	}
	// Portal rows always pass the entry-level gate, whatever the task's
	// experience says.
	portalParams := ingest.Params{DefaultLocation: task.Filters.Location}
	for _, portal := range portals {
		res := d.crawler.Crawl(ctx, portal, roles)
		saved := d.gate.Process(ctx, res.Listings, portalParams)
		outcome := kb.Outcome{
			Saved:      saved,
			NoLinks:    res.NoLinks,
			HTTPStatus: res.HTTPStatus,
			Err:        res.Err,
		}
		if err := d.portals.RecordOutcome(ctx, portal.Company, outcome); err != nil {
			d.log.Warn("failed to record portal outcome",
				zap.String("company", portal.Company),
				zap.Error(err))
		}
	}
	return nil
}

// handleATS resolves resume text from the payload or a PDF URL, scores it
// against the job description, and appends the result.
func (d *Dispatcher) handleATS(ctx context.Context, task *types.SearchTask) error {
	payload := task.Payload
	resume := payload.ResumeText
	if resume == "" {
		if payload.ResumeURL == "" {
			return errors.New("ats task has no resume text")
		}
		// A failed download scores as an empty resume; the task still
		// completes and records the result.
		text, err := d.fetchResume(ctx, payload.ResumeURL)
		if err != nil {
			d.log.Warn("failed to fetch resume, scoring without it",
				zap.String("resume_url", payload.ResumeURL),
				zap.Error(err))
		}
		resume = text
	}
	if payload.JobDescription == "" {
		return errors.New("ats task has no job description")
	}

	score := d.analyzer.Score(resume, payload.JobDescription)
	missing := d.analyzer.WorkerMissingKeywords(resume, payload.JobDescription)
	recs := d.analyzer.Recommendations(score, missing)

	record := &types.ResumeScore{
		UserID:          task.UserID,
		JobID:           payload.JobID,
		Score:           score,
		MissingKeywords: missing,
		Recommendations: recs,
	}
	if err := d.store.InsertResumeScore(ctx, record); err != nil {
		return err
	}
	d.log.Info("resume scored",
		zap.Float64("score", score),
		zap.Int("missing_keywords", len(missing)))
	return nil
}

// resolveProfile prefers the user's stored preferences over the task's own
// query and filters. The free-text query splits on " OR " as the fallback
// role list.
func (d *Dispatcher) resolveProfile(ctx context.Context, task *types.SearchTask) ([]string, int) {
	experience := task.Filters.ExperienceYears

	var pref *types.JobPreference
	if task.UserID != nil {
		p, err := d.store.GetJobPreference(ctx, *task.UserID)
		if err != nil {
			d.log.Warn("failed to load job preference",
				zap.String("user_id", task.UserID.String()),
				zap.Error(err))
		} else {
			pref = p
		}
	}

	var roles []string
	if pref != nil && len(pref.DesiredRoles) > 0 {
		roles = pref.DesiredRoles
	} else {
		for _, role := range strings.Split(task.Query, " OR ") {
			if role = strings.TrimSpace(role); role != "" {
				roles = append(roles, role)
			}
		}
	}
	if pref != nil {
		experience = pref.ExperienceYears
	}
	return roles, experience
}

func (d *Dispatcher) queryForRole(task *types.SearchTask, role string, experience, limit int) sources.Query {
	return sources.Query{
		Role:            role,
		Location:        task.Filters.Location,
		IsRemote:        task.Filters.IsRemote,
		IsInternship:    task.Filters.IsInternship,
		ExperienceYears: experience,
		Limit:           limit,
	}
}
