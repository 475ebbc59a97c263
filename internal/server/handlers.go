package server

import (
	"encoding/json"
	"net/http"
	"strconv"
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/priya/jobscout/internal/ats"
	"github.com/priya/jobscout/internal/db"
	"github.com/priya/jobscout/internal/server/middleware"
	"github.com/priya/jobscout/internal/types"
)

// DiscoverRequest enqueues a job discovery task.
type DiscoverRequest struct {
	Skills           []string `json:"skills" validate:"required,min=1,dive,min=1"`
	Location         string   `json:"location,omitempty"`
	IsRemote         bool     `json:"is_remote,omitempty"`
	IsInternship     bool     `json:"is_internship,omitempty"`
	ExperienceYears  int      `json:"experience_years,omitempty" validate:"gte=0,lte=50"`
	ScanMode         string   `json:"scan_mode,omitempty" validate:"omitempty,oneof=FAST DEEP"`
	AutoDeepFallback bool     `json:"auto_deep_fallback,omitempty"`
}

// TaskResponse acknowledges an enqueued task.
type TaskResponse struct {
	TaskID string `json:"task_id"`
	Status string `json:"status"`
}

// AtsScanRequest scores a resume against a job description synchronously.
type AtsScanRequest struct {
	ResumeText     string     `json:"resume_text,omitempty" validate:"required_without=ResumeURL"`
	ResumeURL      string     `json:"resume_url,omitempty" validate:"omitempty,url"`
	JobDescription string     `json:"job_description" validate:"required"`
	JobID          *uuid.UUID `json:"job_id,omitempty"`
}

// AtsScanResponse is the synchronous scoring result.
type AtsScanResponse struct {
	Score           float64  `json:"score"`
	MissingKeywords []string `json:"missing_keywords"`
	Recommendations []string `json:"recommendations"`
}

// PreferencesRequest replaces a user's stored search preferences.
type PreferencesRequest struct {
	DesiredRoles    []string `json:"desired_roles" validate:"required,min=1,dive,min=1"`
	ExperienceYears int      `json:"experience_years" validate:"gte=0,lte=50"`
}

// PortalUpdateRequest creates or replaces a career-portal entry.
type PortalUpdateRequest struct {
	PortalURL string `json:"portal_url" validate:"required,url"`
	Status    string `json:"status,omitempty" validate:"omitempty,oneof=WORKING NON-WORKING"`
	Reason    string `json:"reason,omitempty"`
}

// ListingsResponse pages through persisted listings.
type ListingsResponse struct {
	Listings []types.Listing `json:"listings"`
	Total    int             `json:"total"`
	Limit    int             `json:"limit"`
	Offset   int             `json:"offset"`
}

// handleDiscover enqueues a SEARCH task for the authenticated user. The
// skill list joins into the " OR " query the dispatcher splits back apart.
func (s *Server) handleDiscover(w http.ResponseWriter, r *http.Request) {
	var req DiscoverRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		s.errorResponse(w, http.StatusBadRequest, "Invalid request body: "+err.Error())
		return
	}
	if err := s.validate.Struct(req); err != nil {
		s.errorResponse(w, http.StatusBadRequest, validationMessage(err))
		return
	}

	userID, err := middleware.GetUserID(r)
	if err != nil {
		s.errorResponse(w, http.StatusUnauthorized, "Unauthorized")
		return
	}

	scanMode := types.ScanMode(req.ScanMode)
	if scanMode == "" {
		scanMode = types.ScanFast
	}
	filters := types.SearchFilters{
		Location:         req.Location,
		IsRemote:         req.IsRemote,
		IsInternship:     req.IsInternship,
		ExperienceYears:  req.ExperienceYears,
		ScanMode:         scanMode,
		AutoDeepFallback: req.AutoDeepFallback,
	}

	query := strings.Join(req.Skills, " OR ")
	taskID, err := s.store.CreateSearchTask(r.Context(), &userID, query, filters)
	if err != nil {
		s.log.Error("failed to create search task", zap.Error(err))
		s.errorResponse(w, http.StatusInternalServerError, "Failed to create task")
		return
	}

	s.jsonResponse(w, http.StatusAccepted, TaskResponse{
		TaskID: taskID.String(),
		Status: string(types.TaskPending),
	})
}

// handleAtsScan scores a resume inline and records the result. This is the
// interactive path: it uses the narrower keyword budget so the response
// stays readable.
func (s *Server) handleAtsScan(w http.ResponseWriter, r *http.Request) {
	var req AtsScanRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		s.errorResponse(w, http.StatusBadRequest, "Invalid request body: "+err.Error())
		return
	}
	if err := s.validate.Struct(req); err != nil {
		s.errorResponse(w, http.StatusBadRequest, validationMessage(err))
		return
	}

	userID, err := middleware.GetUserID(r)
	if err != nil {
		s.errorResponse(w, http.StatusUnauthorized, "Unauthorized")
		return
	}

	resume := req.ResumeText
	if resume == "" {
		text, err := s.fetchResume(r.Context(), req.ResumeURL)
		if err != nil {
			s.errorResponse(w, http.StatusBadGateway, "Failed to fetch resume: "+err.Error())
			return
		}
		resume = text
	}

	score := s.analyzer.Score(resume, req.JobDescription)
	missing := s.analyzer.MissingKeywords(resume, req.JobDescription, ats.APIKeywordLimit)
	recs := s.analyzer.Recommendations(score, missing)

	record := &types.ResumeScore{
		UserID:          &userID,
		JobID:           req.JobID,
		Score:           score,
		MissingKeywords: missing,
		Recommendations: recs,
	}
	if err := s.store.InsertResumeScore(r.Context(), record); err != nil {
		s.log.Error("failed to record resume score", zap.Error(err))
		s.errorResponse(w, http.StatusInternalServerError, "Failed to record score")
		return
	}

	s.jsonResponse(w, http.StatusOK, AtsScanResponse{
		Score:           score,
		MissingKeywords: missing,
		Recommendations: recs,
	})
}

// handleListListings filters and pages the persisted listings.
func (s *Server) handleListListings(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	filters := db.ListingFilters{
		Source:  types.ListingSource(q.Get("source")),
		Status:  types.ListingStatus(q.Get("status")),
		JobType: types.JobType(q.Get("job_type")),
		Company: q.Get("company"),
	}
	filters.Limit = intParam(q.Get("limit"), 20)
	filters.Offset = intParam(q.Get("offset"), 0)

	listings, total, err := s.store.ListListings(r.Context(), filters)
	if err != nil {
		s.log.Error("failed to list listings", zap.Error(err))
		s.errorResponse(w, http.StatusInternalServerError, "Failed to list listings")
		return
	}
	if listings == nil {
		listings = []types.Listing{}
	}

	s.jsonResponse(w, http.StatusOK, ListingsResponse{
		Listings: listings,
		Total:    total,
		Limit:    filters.Limit,
		Offset:   filters.Offset,
	})
}

func (s *Server) handleGetListing(w http.ResponseWriter, r *http.Request) {
	id, err := uuid.Parse(r.PathValue("id"))
	if err != nil {
		s.errorResponse(w, http.StatusBadRequest, "Invalid listing ID")
		return
	}

	listing, err := s.store.GetListing(r.Context(), id)
	if err != nil {
		s.log.Error("failed to get listing", zap.Error(err))
		s.errorResponse(w, http.StatusInternalServerError, "Failed to get listing")
		return
	}
	if listing == nil {
		s.errorResponse(w, http.StatusNotFound, "Listing not found")
		return
	}
	s.jsonResponse(w, http.StatusOK, listing)
}

func (s *Server) handleListTasks(w http.ResponseWriter, r *http.Request) {
	limit := intParam(r.URL.Query().Get("limit"), 50)
	tasks, err := s.store.ListTasks(r.Context(), limit)
	if err != nil {
		s.log.Error("failed to list tasks", zap.Error(err))
		s.errorResponse(w, http.StatusInternalServerError, "Failed to list tasks")
		return
	}
	if tasks == nil {
		tasks = []types.SearchTask{}
	}
	s.jsonResponse(w, http.StatusOK, map[string]any{"tasks": tasks})
}

func (s *Server) handleGetTask(w http.ResponseWriter, r *http.Request) {
	id, err := uuid.Parse(r.PathValue("id"))
	if err != nil {
		s.errorResponse(w, http.StatusBadRequest, "Invalid task ID")
		return
	}

	task, err := s.store.GetTask(r.Context(), id)
	if err != nil {
		s.log.Error("failed to get task", zap.Error(err))
		s.errorResponse(w, http.StatusInternalServerError, "Failed to get task")
		return
	}
	if task == nil {
		s.errorResponse(w, http.StatusNotFound, "Task not found")
		return
	}
	s.jsonResponse(w, http.StatusOK, task)
}

// handleListScores returns the authenticated user's scoring history. Users
// can only read their own scores.
func (s *Server) handleListScores(w http.ResponseWriter, r *http.Request) {
	pathID, err := uuid.Parse(r.PathValue("id"))
	if err != nil {
		s.errorResponse(w, http.StatusBadRequest, "Invalid user ID")
		return
	}

	userID, err := middleware.GetUserID(r)
	if err != nil {
		s.errorResponse(w, http.StatusUnauthorized, "Unauthorized")
		return
	}
	if pathID != userID {
		s.errorResponse(w, http.StatusForbidden, "Forbidden")
		return
	}

	scores, err := s.store.ListResumeScores(r.Context(), userID)
	if err != nil {
		s.log.Error("failed to list resume scores", zap.Error(err))
		s.errorResponse(w, http.StatusInternalServerError, "Failed to list scores")
		return
	}
	if scores == nil {
		scores = []types.ResumeScore{}
	}
	s.jsonResponse(w, http.StatusOK, map[string]any{"scores": scores})
}

// handleUpsertPreferences stores the role list and experience the dispatcher
// prefers over a task's own query and filters. Users can only write their own.
func (s *Server) handleUpsertPreferences(w http.ResponseWriter, r *http.Request) {
	pathID, err := uuid.Parse(r.PathValue("id"))
	if err != nil {
		s.errorResponse(w, http.StatusBadRequest, "Invalid user ID")
		return
	}

	userID, err := middleware.GetUserID(r)
	if err != nil {
		s.errorResponse(w, http.StatusUnauthorized, "Unauthorized")
		return
	}
	if pathID != userID {
		s.errorResponse(w, http.StatusForbidden, "Forbidden")
		return
	}

	var req PreferencesRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		s.errorResponse(w, http.StatusBadRequest, "Invalid request body: "+err.Error())
		return
	}
	if err := s.validate.Struct(req); err != nil {
		s.errorResponse(w, http.StatusBadRequest, validationMessage(err))
		return
	}

	pref := &types.JobPreference{
		UserID:          userID,
		DesiredRoles:    req.DesiredRoles,
		ExperienceYears: req.ExperienceYears,
	}
	if err := s.store.UpsertJobPreference(r.Context(), pref); err != nil {
		s.log.Error("failed to upsert job preference", zap.Error(err))
		s.errorResponse(w, http.StatusInternalServerError, "Failed to save preferences")
		return
	}
	s.jsonResponse(w, http.StatusOK, pref)
}

func (s *Server) handleListPortals(w http.ResponseWriter, r *http.Request) {
	portals, err := s.store.ListPortals(r.Context())
	if err != nil {
		s.log.Error("failed to list portals", zap.Error(err))
		s.errorResponse(w, http.StatusInternalServerError, "Failed to list portals")
		return
	}
	if portals == nil {
		portals = []types.PortalEntry{}
	}
	s.jsonResponse(w, http.StatusOK, map[string]any{"portals": portals})
}

// handleUpsertPortal registers or fixes a company's career portal entry.
// Setting status back to WORKING is how an operator re-enables a portal the
// crawler gave up on.
func (s *Server) handleUpsertPortal(w http.ResponseWriter, r *http.Request) {
	company := r.PathValue("company")
	if company == "" {
		s.errorResponse(w, http.StatusBadRequest, "Company is required")
		return
	}

	var req PortalUpdateRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		s.errorResponse(w, http.StatusBadRequest, "Invalid request body: "+err.Error())
		return
	}
	if err := s.validate.Struct(req); err != nil {
		s.errorResponse(w, http.StatusBadRequest, validationMessage(err))
		return
	}

	status := types.PortalStatus(req.Status)
	if status == "" {
		status = types.PortalWorking
	}
	entry := &types.PortalEntry{
		Company:   company,
		PortalURL: req.PortalURL,
		Status:    status,
		Reason:    req.Reason,
	}
	if err := s.store.UpsertPortal(r.Context(), entry); err != nil {
		s.log.Error("failed to upsert portal", zap.Error(err))
		s.errorResponse(w, http.StatusInternalServerError, "Failed to upsert portal")
		return
	}
	s.jsonResponse(w, http.StatusOK, entry)
}

func intParam(raw string, def int) int {
	if raw == "" {
		return def
	}
	n, err := strconv.Atoi(raw)
	if err != nil || n < 0 {
		return def
	}
	return n
}

// validationMessage flattens validator errors into one readable line.
func validationMessage(err error) string {
	if errs, ok := err.(validator.ValidationErrors); ok {
		parts := make([]string, 0, len(errs))
		for _, fe := range errs {
			parts = append(parts, fe.Field()+" failed "+fe.Tag()+" validation")
		}
		return "Validation failed: " + strings.Join(parts, "; ")
	}
	return "Validation failed: " + err.Error()
}
