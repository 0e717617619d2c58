package workflow

import "adscribe/internal/queue"

// ConfigureStages registers the concrete stage handlers the workflow will run.
func (m *Manager) ConfigureStages(set StageSet) {
	foreground := &laneState{kind: laneForeground, name: "foreground", notificationsEnabled: true}
	background := &laneState{kind: laneBackground, name: "background", notificationsEnabled: false}

	if set.Scanner != nil {
		foreground.stages = append(foreground.stages, pipelineStage{
			name:             "scanner",
			handler:          set.Scanner,
			startStatus:      queue.StatusPending,
			processingStatus: queue.StatusScanning,
			doneStatus:       queue.StatusScanned,
		})
	}
	if set.Downloader != nil {
		background.stages = append(background.stages, pipelineStage{
			name:             "downloader",
			handler:          set.Downloader,
			startStatus:      queue.StatusScanned,
			processingStatus: queue.StatusDownloading,
			doneStatus:       queue.StatusDownloaded,
		})
	}
	// When the download stage is absent (scan-only deployments) the
	// transcriber picks items up straight from scanned.
	transcriberStart := queue.StatusDownloaded
	if set.Downloader == nil {
		transcriberStart = queue.StatusScanned
	}
	if set.Transcriber != nil {
		background.stages = append(background.stages, pipelineStage{
			name:             "transcriber",
			handler:          set.Transcriber,
			startStatus:      transcriberStart,
			processingStatus: queue.StatusTranscribing,
			doneStatus:       queue.StatusTranscribed,
		})
	}
	if set.Analyzer != nil {
		background.stages = append(background.stages, pipelineStage{
			name:             "analyzer",
			handler:          set.Analyzer,
			startStatus:      queue.StatusTranscribed,
			processingStatus: queue.StatusAnalyzing,
			doneStatus:       queue.StatusAnalyzed,
		})
	}
	if set.Reporter != nil {
		background.stages = append(background.stages, pipelineStage{
			name:             "reporter",
			handler:          set.Reporter,
			startStatus:      queue.StatusAnalyzed,
			processingStatus: queue.StatusReporting,
			doneStatus:       queue.StatusCompleted,
		})
	}

	lanes := make(map[laneKind]*laneState)
	order := make([]laneKind, 0, 2)

	if len(foreground.stages) > 0 {
		foreground.finalize()
		lanes[foreground.kind] = foreground
		order = append(order, foreground.kind)
	}
	if len(background.stages) > 0 {
		background.finalize()
		lanes[background.kind] = background
		order = append(order, background.kind)
	}

	for _, lane := range lanes {
		lane.runReclaimer = len(lane.processingStatuses) > 0
	}

	m.mu.Lock()
	m.lanes = lanes
	m.laneOrder = order
	m.mu.Unlock()
}
