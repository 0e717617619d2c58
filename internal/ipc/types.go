package ipc

import "adscribe/internal/api"

// StartRequest asks the daemon to begin queue processing.
type StartRequest struct{}

// StartResponse reports whether processing started.
type StartResponse struct {
	Started bool   `json:"started"`
	Message string `json:"message,omitempty"`
}

// StopRequest asks the daemon to halt queue processing.
type StopRequest struct{}

// StopResponse reports whether processing stopped.
type StopResponse struct {
	Stopped bool   `json:"stopped"`
	Message string `json:"message,omitempty"`
}

// StatusRequest fetches daemon runtime status.
type StatusRequest struct{}

// StatusResponse carries daemon and workflow diagnostics.
type StatusResponse struct {
	Running      bool                   `json:"running"`
	PID          int                    `json:"pid"`
	QueueStats   map[string]int         `json:"queueStats"`
	LastError    string                 `json:"lastError,omitempty"`
	LastItem     *api.QueueItem         `json:"lastItem,omitempty"`
	StageHealth  []api.StageHealth      `json:"stageHealth"`
	Dependencies []api.DependencyStatus `json:"dependencies,omitempty"`
	LockPath     string                 `json:"lockPath"`
	QueueDBPath  string                 `json:"queueDbPath"`
	LogPath      string                 `json:"logPath"`

	// Filled in by the CLI-side status snapshot, not by the daemon.
	SystemChecks      []api.StatusLine      `json:"systemChecks,omitempty"`
	OutputPaths       []api.StatusLine      `json:"outputPaths,omitempty"`
	DependencySummary api.DependencySummary `json:"dependencySummary,omitempty"`
}

// AnalyzeRequest enqueues a page reference for the full pipeline.
type AnalyzeRequest struct {
	PageRef  string `json:"pageRef"`
	Language string `json:"language,omitempty"`
}

// AnalyzeResponse returns the queued item.
type AnalyzeResponse struct {
	Item api.QueueItem `json:"item"`
}

// QueueListRequest lists queue items, optionally filtered by status.
type QueueListRequest struct {
	Statuses []string `json:"statuses,omitempty"`
}

// QueueListResponse carries the matching queue items.
type QueueListResponse struct {
	Items []api.QueueItem `json:"items"`
}

// QueueDescribeRequest fetches a single queue item.
type QueueDescribeRequest struct {
	ID int64 `json:"id"`
}

// QueueDescribeResponse carries the described item.
type QueueDescribeResponse struct {
	Item api.QueueItem `json:"item"`
}

// QueueStopRequest parks an in-flight item in review.
type QueueStopRequest struct {
	ID int64 `json:"id"`
}

// QueueStopResponse carries the stopped item.
type QueueStopResponse struct {
	Item api.QueueItem `json:"item"`
}

// QueueRemoveRequest deletes a queue item.
type QueueRemoveRequest struct {
	ID int64 `json:"id"`
}

// QueueRemoveResponse reports whether a row was deleted.
type QueueRemoveResponse struct {
	Removed bool `json:"removed"`
}

// QueueClearRequest removes all queue items.
type QueueClearRequest struct{}

// QueueClearResponse reports the number of removed items.
type QueueClearResponse struct {
	Removed int64 `json:"removed"`
}

// QueueClearCompletedRequest removes completed queue items.
type QueueClearCompletedRequest struct{}

// QueueClearCompletedResponse reports the number of removed items.
type QueueClearCompletedResponse struct {
	Removed int64 `json:"removed"`
}

// QueueClearFailedRequest removes failed queue items.
type QueueClearFailedRequest struct{}

// QueueClearFailedResponse reports the number of removed items.
type QueueClearFailedResponse struct {
	Removed int64 `json:"removed"`
}

// QueueResetRequest rolls stuck in-flight items back to their stage start.
type QueueResetRequest struct{}

// QueueResetResponse reports the number of reset items.
type QueueResetResponse struct {
	Reset int64 `json:"reset"`
}

// QueueRetryRequest retries failed items, or all failed items when IDs is
// empty.
type QueueRetryRequest struct {
	IDs []int64 `json:"ids,omitempty"`
}

// QueueRetryResponse reports the number of retried items.
type QueueRetryResponse struct {
	Retried int64 `json:"retried"`
}

// QueueHealthRequest fetches aggregate queue counts.
type QueueHealthRequest struct{}

// QueueHealthResponse carries aggregate queue counts.
type QueueHealthResponse struct {
	Total      int `json:"total"`
	Pending    int `json:"pending"`
	Processing int `json:"processing"`
	Failed     int `json:"failed"`
	Review     int `json:"review"`
	Completed  int `json:"completed"`
}

// DatabaseHealthRequest fetches detailed database diagnostics.
type DatabaseHealthRequest struct{}

// DatabaseHealthResponse carries database diagnostics.
type DatabaseHealthResponse struct {
	DBPath           string   `json:"dbPath"`
	DatabaseExists   bool     `json:"databaseExists"`
	DatabaseReadable bool     `json:"databaseReadable"`
	SchemaVersion    string   `json:"schemaVersion"`
	TableExists      bool     `json:"tableExists"`
	ColumnsPresent   []string `json:"columnsPresent,omitempty"`
	MissingColumns   []string `json:"missingColumns,omitempty"`
	IntegrityCheck   bool     `json:"integrityCheck"`
	TotalItems       int      `json:"totalItems"`
	Error            string   `json:"error,omitempty"`
}

// LogTailRequest reads lines from the daemon log. A negative offset
// requests the last Limit lines.
type LogTailRequest struct {
	Offset     int64 `json:"offset"`
	Limit      int   `json:"limit"`
	Follow     bool  `json:"follow"`
	WaitMillis int   `json:"waitMillis,omitempty"`
}

// LogTailResponse carries log lines and the offset to resume from.
type LogTailResponse struct {
	Lines   []string `json:"lines"`
	Offset  int64    `json:"offset"`
	LogPath string   `json:"logPath"`
}

// TestNotificationRequest triggers a test push notification.
type TestNotificationRequest struct{}

// TestNotificationResponse reports the notification outcome.
type TestNotificationResponse struct {
	Sent    bool   `json:"sent"`
	Message string `json:"message,omitempty"`
}
