// Package analysis groups ad transcripts into script families and scores
// them.
//
// Grouping is greedy: transcripts are visited in scan order and each one is
// either attached to the most similar earlier original or becomes a new
// original itself. Scores reward longevity (how long an ad has been
// running) and reuse (how many variants share the script), the two signals
// that indicate an advertiser keeps paying for a creative because it works.
package analysis
