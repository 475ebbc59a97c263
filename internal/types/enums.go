// Package types defines the shared domain model: queue tasks, listings,
// the career-portal knowledge base, and resume score records.
package types

// TaskStatus is the lifecycle state of a queued task.
type TaskStatus string

const (
	TaskPending    TaskStatus = "pending"
	TaskProcessing TaskStatus = "processing"
	TaskCompleted  TaskStatus = "completed"
	TaskFailed     TaskStatus = "failed"
)

// TaskType selects which handler processes a queued task.
type TaskType string

const (
	TaskSearch TaskType = "SEARCH"
	TaskATS    TaskType = "ATS"
)

// ScanMode controls how aggressively a search task fans out.
type ScanMode string

const (
	ScanFast ScanMode = "FAST"
	ScanDeep ScanMode = "DEEP"
)

// JobType classifies the employment arrangement of a listing.
type JobType string

const (
	JobInternship JobType = "internship"
	JobFullTime   JobType = "full_time"
	JobContract   JobType = "contract"
)

// WorkMode classifies where the work happens.
type WorkMode string

const (
	ModeOnsite WorkMode = "onsite"
	ModeHybrid WorkMode = "hybrid"
	ModeRemote WorkMode = "remote"
)

// ListingSource identifies where a listing was discovered.
type ListingSource string

const (
	SourceLinkedIn ListingSource = "linkedin"
	SourceUnstop   ListingSource = "unstop"
	SourceOfficial ListingSource = "official"
	SourceOther    ListingSource = "other"
)

// ListingStatus marks whether a listing is still believed open.
type ListingStatus string

const (
	ListingOpen   ListingStatus = "open"
	ListingClosed ListingStatus = "closed"
	ListingHold   ListingStatus = "hold"
)

// PortalStatus is the learned crawl health of a company career page.
type PortalStatus string

const (
	PortalWorking    PortalStatus = "WORKING"
	PortalNonWorking PortalStatus = "NON-WORKING"
)
