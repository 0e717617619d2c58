// Package media wraps the external tooling for ad video handling: yt-dlp
// for downloading creatives and ffmpeg for extracting transcription-ready
// audio tracks.
//
// Downloads are idempotent: an existing non-trivial video file is reused
// rather than fetched again, so re-running a stage after a partial failure
// only pays for the missing ads. Extracted audio is mono 16 kHz WAV, the
// input format whisper models expect.
package media
