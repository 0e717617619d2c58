// Package language normalizes transcription language codes.
//
// Whisper expects ISO 639-1 codes but users configure languages as BCP 47
// tags or plain words ("en", "en-US", "english"). This package maps all of
// those to the two-letter code whisper understands and provides display
// names for reports.
package language
