// Package ads defines the structured payload shared between workflow stages.
//
// The Envelope type captures the scanned page identity, per-ad creative
// metadata, and realised artefacts as items progress through scanning,
// downloading, transcription, and analysis. Stages read and extend the
// envelope rather than maintaining separate state, so the envelope is the
// single source of truth for what the page ran and what has been produced.
//
// # Key Types
//
// Envelope: root container with PageID, PageName, Country, and Ads.
// Persisted as JSON in queue.ads_json.
//
// Ad: one ad creative from the ads library (archive ID, start date, body
// text, call to action) plus the video, audio, and transcript artefacts
// later stages attach to it.
//
// # Lifecycle
//
// Scanning populates PageID, PageName, and the Ads slice. Downloading adds
// VideoPath and AudioPath per ad. Transcription adds Transcript and
// TranscriptPath. Analysis reads transcripts and persists its results in
// queue.analysis_json instead of the envelope.
//
// # Entry Points
//
// Parse: load envelope from JSON (returns empty envelope on blank input).
// Envelope.Encode: serialise envelope to JSON for persistence.
package ads
