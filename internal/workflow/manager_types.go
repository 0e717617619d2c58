package workflow

import (
	"log/slog"

	"adscribe/internal/queue"
	"adscribe/internal/stage"
)

// StageSet bundles the concrete workflow handlers the manager orchestrates.
type StageSet struct {
	Scanner     stage.Handler
	Downloader  stage.Handler
	Transcriber stage.Handler
	Analyzer    stage.Handler
	Reporter    stage.Handler
}

type pipelineStage struct {
	name             string
	handler          stage.Handler
	startStatus      queue.Status
	processingStatus queue.Status
	doneStatus       queue.Status
}

type laneKind string

const (
	laneForeground laneKind = "foreground"
	laneBackground laneKind = "background"
)

type laneState struct {
	kind                 laneKind
	name                 string
	stages               []pipelineStage
	statusOrder          []queue.Status
	stageByStart         map[queue.Status]pipelineStage
	processingStatuses   []queue.Status
	logger               *slog.Logger
	notificationsEnabled bool
	runReclaimer         bool
}

// finalize derives the lookup tables from the stage list: claim order for
// NextForStatuses and the set of processing statuses the reclaimer may
// roll back.
func (l *laneState) finalize() {
	if l == nil {
		return
	}
	l.stageByStart = make(map[queue.Status]pipelineStage, len(l.stages))
	l.statusOrder = l.statusOrder[:0]
	l.processingStatuses = l.processingStatuses[:0]
	seen := make(map[queue.Status]struct{}, len(l.stages))
	for _, stg := range l.stages {
		l.stageByStart[stg.startStatus] = stg
		l.statusOrder = append(l.statusOrder, stg.startStatus)
		if stg.processingStatus == "" {
			continue
		}
		if _, dup := seen[stg.processingStatus]; dup {
			continue
		}
		seen[stg.processingStatus] = struct{}{}
		l.processingStatuses = append(l.processingStatuses, stg.processingStatus)
	}
}

func (l *laneState) stageForStatus(status queue.Status) (pipelineStage, bool) {
	if l == nil {
		return pipelineStage{}, false
	}
	stg, ok := l.stageByStart[status]
	return stg, ok
}
