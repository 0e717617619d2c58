// Package transcriber implements the workflow stage that turns downloaded
// ad audio into text via whisper.
//
// Transcripts are served from the cache when possible, so retries and
// repeat analyses of the same page skip the expensive model run. Media
// files are removed once a transcript exists unless the configuration asks
// to keep them.
package transcriber
