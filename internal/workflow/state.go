package workflow

import "github.com/jonathan/advisor-agent/internal/types"

// Stage is the coarse lifecycle phase of the active advising session.
type Stage string

const (
	// StageIdle means no transcript has been ingested yet this session.
	StageIdle Stage = "idle"
	// StageUploading means a transcript upload is in flight.
	StageUploading Stage = "uploading"
	// StageRecommendationPending means recommendation generation is in flight.
	StageRecommendationPending Stage = "recommendation_pending"
	// StageRecommendationReady means an active recommendation is available.
	StageRecommendationReady Stage = "recommendation_ready"
	// StageError means the last stage-changing operation failed. Error is
	// non-terminal; a retry re-enters Uploading or RecommendationPending.
	StageError Stage = "error"
)

// BusyLock is the mutual-exclusion flag for long-running operations.
// It admits exactly one non-none value at a time.
type BusyLock string

const (
	// LockNone means no exclusive operation is in flight.
	LockNone BusyLock = "none"
	// LockIngesting covers the upload-then-recommend unit.
	LockIngesting BusyLock = "ingesting"
	// LockRecommending covers recommendation regeneration.
	LockRecommending BusyLock = "recommending"
	// LockFetchingScholarships covers the scholarship fetch.
	LockFetchingScholarships BusyLock = "fetching_scholarships"
	// LockGeneratingSummary covers summary text generation.
	LockGeneratingSummary BusyLock = "generating_summary"
	// LockSaving covers the summary save.
	LockSaving BusyLock = "saving"
)

// Snapshot is an immutable view of workflow state handed to observers.
type Snapshot struct {
	Stage                  Stage
	Busy                   BusyLock
	ActiveRecommendationID int64
	Documents              []string
	Courses                []types.Course
	Scholarships           []types.Scholarship
	SummaryText            string
	Summaries              []types.Summary
	Err                    error
}
