// Package downloader implements the workflow stage that fetches each
// scanned ad's video and extracts a transcription-ready audio track.
//
// Per-ad failures are tolerated: an ad whose video cannot be fetched or
// converted is marked with a skip reason and the stage moves on, mirroring
// the reality that library entries expire. The stage only fails when not a
// single ad yields audio.
package downloader
