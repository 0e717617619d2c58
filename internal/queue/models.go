package queue

import (
	"strings"
	"time"
)

// Status represents the lifecycle of a queue item.
type Status string

const (
	StatusPending      Status = "pending"
	StatusScanning     Status = "scanning"
	StatusScanned      Status = "scanned"
	StatusDownloading  Status = "downloading"
	StatusDownloaded   Status = "downloaded"
	StatusTranscribing Status = "transcribing"
	StatusTranscribed  Status = "transcribed"
	StatusAnalyzing    Status = "analyzing"
	StatusAnalyzed     Status = "analyzed"
	StatusReporting    Status = "reporting"
	StatusCompleted    Status = "completed"
	StatusFailed       Status = "failed"
	StatusReview       Status = "review"
)

// UserStopReason is the review reason set when a user explicitly stops an item.
const UserStopReason = "Stop requested by user"

// DaemonStopReason is the error message set when items are failed due to daemon shutdown.
const DaemonStopReason = "Daemon stopped"

var allStatuses = []Status{
	StatusPending,
	StatusScanning,
	StatusScanned,
	StatusDownloading,
	StatusDownloaded,
	StatusTranscribing,
	StatusTranscribed,
	StatusAnalyzing,
	StatusAnalyzed,
	StatusReporting,
	StatusCompleted,
	StatusFailed,
	StatusReview,
}

var statusSet = func() map[Status]struct{} {
	set := make(map[Status]struct{}, len(allStatuses))
	for _, status := range allStatuses {
		set[status] = struct{}{}
	}
	return set
}()

var processingStatuses = map[Status]struct{}{
	StatusScanning:     {},
	StatusDownloading:  {},
	StatusTranscribing: {},
	StatusAnalyzing:    {},
	StatusReporting:    {},
}

type statusTransition struct {
	from Status
	to   Status
}

var stageRollbackTransitions = []statusTransition{
	{from: StatusScanning, to: StatusPending},
	{from: StatusDownloading, to: StatusScanned},
	{from: StatusTranscribing, to: StatusDownloaded},
	{from: StatusAnalyzing, to: StatusTranscribed},
	{from: StatusReporting, to: StatusAnalyzed},
}

// DatabaseHealth captures diagnostic information about the queue database.
type DatabaseHealth struct {
	DBPath           string
	DatabaseExists   bool
	DatabaseReadable bool
	SchemaVersion    string
	TableExists      bool
	ColumnsPresent   []string
	MissingColumns   []string
	IntegrityCheck   bool
	TotalItems       int
	Error            string
}

// HealthSummary describes aggregated queue counts per key lifecycle states.
type HealthSummary struct {
	Total      int
	Pending    int
	Processing int
	Failed     int
	Review     int
	Completed  int
}

// Item represents one page analysis run persisted in SQLite.
type Item struct {
	ID              int64
	PageRef         string
	PageID          string
	PageName        string
	Language        string
	Status          Status
	AdsJSON         string
	AnalysisJSON    string
	ReportPath      string
	ItemLogPath     string
	ErrorMessage    string
	CreatedAt       time.Time
	UpdatedAt       time.Time
	ProgressStage   string
	ProgressPercent float64
	ProgressMessage string
	AdsFound        int64
	AdsTranscribed  int64
	LastHeartbeat   *time.Time
	NeedsReview     bool
	ReviewReason    string
}

// AllStatuses returns the ordered list of known statuses.
func AllStatuses() []Status {
	cp := make([]Status, len(allStatuses))
	copy(cp, allStatuses)
	return cp
}

// ParseStatus converts a string into a known Status.
func ParseStatus(value string) (Status, bool) {
	normalized := Status(strings.ToLower(strings.TrimSpace(value)))
	if normalized == "" {
		return "", false
	}
	_, ok := statusSet[normalized]
	return normalized, ok
}

// IsProcessing returns true when the status reflects an in-flight stage.
func (i Item) IsProcessing() bool {
	_, ok := processingStatuses[i.Status]
	return ok
}

// IsProcessingStatus reports whether a status reflects an in-flight stage.
func IsProcessingStatus(status Status) bool {
	_, ok := processingStatuses[status]
	return ok
}

// IsUserStopReason reports whether a review reason represents a user-initiated stop.
func IsUserStopReason(reason string) bool {
	return strings.EqualFold(strings.TrimSpace(reason), UserStopReason)
}

// InitProgress resets progress fields for a new stage. If ProgressStage is
// currently empty it is set to stage; otherwise the existing stage is
// preserved to support resume. ErrorMessage is cleared.
func (i *Item) InitProgress(stage, message string) {
	if i.ProgressStage == "" {
		i.ProgressStage = stage
	}
	i.ProgressMessage = message
	i.ProgressPercent = 0
	i.ErrorMessage = ""
}

// SetProgress updates all three progress fields together.
func (i *Item) SetProgress(stage, message string, percent float64) {
	i.ProgressStage = stage
	i.ProgressMessage = message
	i.ProgressPercent = percent
}

// SetProgressComplete sets progress to 100% with the given stage and message.
func (i *Item) SetProgressComplete(stage, message string) {
	i.SetProgress(stage, message, 100)
}

// SetFailed marks the item as failed with the given error message and clears
// the heartbeat.
func (i *Item) SetFailed(message string) {
	i.Status = StatusFailed
	i.ErrorMessage = message
	i.ProgressPercent = 0
	i.ProgressMessage = message
	i.LastHeartbeat = nil
	i.ProgressStage = "Failed"
}

// SetReview parks the item for operator attention with the given reason.
func (i *Item) SetReview(message, reason string) {
	i.Status = StatusReview
	i.NeedsReview = true
	i.ReviewReason = reason
	i.ErrorMessage = message
	i.ProgressMessage = message
	i.ProgressPercent = 0
	i.LastHeartbeat = nil
	i.ProgressStage = "Review"
}

// DisplayName returns the best human label for the item.
func (i Item) DisplayName() string {
	if name := strings.TrimSpace(i.PageName); name != "" {
		return name
	}
	return strings.TrimSpace(i.PageRef)
}

// StageKey returns the normalized stage identifier used in API/CLI presentation.
func (s Status) StageKey() string {
	switch s {
	case "":
		return ""
	case StatusPending:
		return "planned"
	case StatusCompleted:
		return "final"
	default:
		if _, ok := statusSet[s]; ok {
			return string(s)
		}
		return ""
	}
}

// ProcessingLane partitions the workflow into the user-facing scan stage and
// the long-running background stages.
type ProcessingLane string

const (
	LaneForeground ProcessingLane = "foreground"
	LaneBackground ProcessingLane = "background"
)

// LaneForItem maps a queue item to its processing lane for observability purposes.
func LaneForItem(item *Item) ProcessingLane {
	if item == nil {
		return LaneForeground
	}
	switch item.Status {
	case StatusPending, StatusScanning:
		return LaneForeground
	case StatusScanned:
		// Scanned items are claimed by the background lane's download stage.
		return LaneBackground
	case StatusFailed, StatusReview:
		if item.ItemLogPath != "" {
			return LaneBackground
		}
		return LaneForeground
	default:
		return LaneBackground
	}
}
