// Package textutil provides text processing utilities for fingerprinting,
// similarity, and filename sanitization.
//
// The primary use cases are:
//   - Creating token-based fingerprints from transcripts for comparison
//   - Computing cosine similarity between fingerprints
//   - Computing sequence similarity ratios between raw texts
//   - Sanitizing filenames and path segments for safe filesystem use
//
// Fingerprints use term frequency vectors normalized for efficient
// comparison. Tokenization lowercases text, splits on non-alphanumeric
// characters, and filters tokens shorter than 3 characters.
package textutil
