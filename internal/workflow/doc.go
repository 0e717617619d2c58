// Package workflow advances queue items through the analysis pipeline.
//
// The Manager polls the queue, reclaims stale work via heartbeats, and
// feeds items into registered stage handlers (scanner, downloader,
// transcriber, analyzer, reporter) while capturing progress and failure
// metadata. It also aggregates queue stats, calls stage health checks, and
// emits queue-level notifications when processing starts or completes.
//
// Two independent lanes run side by side: foreground handles the quick
// library scan, background handles the long downloads, transcription,
// analysis, and reporting. Each lane polls for items matching its statuses
// and processes them independently, so a new page can be scanned while an
// earlier one is still transcribing.
package workflow
