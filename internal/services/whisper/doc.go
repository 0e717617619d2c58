// Package whisper runs speech-to-text transcription for ad audio tracks.
//
// The openai-whisper CLI is executed through uvx so no Python environment
// management is required beyond uv itself. Transcripts are cached per ad
// archive ID so re-running an analysis never re-transcribes audio that has
// already been processed.
package whisper
