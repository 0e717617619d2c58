package analysis

import (
	"sort"
	"strings"
	"time"

	"adscribe/internal/ads"
	"adscribe/internal/textutil"
)

// original tracks a group leader during greedy grouping.
type original struct {
	index       int
	transcript  string
	fingerprint *textutil.Fingerprint
}

// Analyze groups the envelope's transcribed ads into script families and
// scores them. Ads without a transcript are ignored. The threshold is the
// minimum similarity ratio for an ad to join an earlier group.
func Analyze(env ads.Envelope, threshold float64, now time.Time) Result {
	result := Result{
		PageID:     env.PageID,
		PageName:   env.PageName,
		AnalyzedAt: now.UTC(),
		TotalAds:   len(env.Ads),
	}

	var originals []original
	for _, ad := range env.Ads {
		if !ad.HasTranscript() {
			continue
		}

		script := Script{
			ArchiveID:    ad.ArchiveID,
			LibraryURL:   ad.LibraryURL,
			Transcript:   ad.Transcript,
			Body:         ad.Body,
			CallToAction: ad.CallToAction,
			StartedDate:  ad.StartedDate,
			DurationDays: ad.DaysRunning(now),
		}

		lowered := strings.ToLower(ad.Transcript)
		fingerprint := textutil.NewFingerprint(lowered)
		matched := false
		for _, orig := range originals {
			// Cheap fingerprint check before the quadratic sequence match.
			// Short-word transcripts have no fingerprint, so they go
			// straight to the sequence match.
			if fingerprint != nil && orig.fingerprint != nil &&
				textutil.CosineSimilarity(fingerprint, orig.fingerprint) < threshold/2 {
				continue
			}
			ratio := textutil.SequenceRatio(lowered, orig.transcript)
			if ratio >= threshold {
				leader := &result.Scripts[orig.index]
				leader.VariantCount++
				script.SimilarTo = leader.ArchiveID
				script.Similarity = ratio
				matched = true
				break
			}
		}
		if !matched {
			script.IsOriginal = true
			originals = append(originals, original{
				index:       len(result.Scripts),
				transcript:  lowered,
				fingerprint: fingerprint,
			})
		}
		result.Scripts = append(result.Scripts, script)
	}

	for i := range result.Scripts {
		script := &result.Scripts[i]
		script.Score = scoreScript(script.DurationDays, script.IsOriginal, script.VariantCount)
		if script.IsOriginal {
			result.Originals++
		} else {
			result.Variants++
		}
	}

	rank(result.Scripts)
	return result
}

// rank orders scripts by score, breaking ties with longevity, and assigns
// 1-based ranks.
func rank(scripts []Script) {
	sort.SliceStable(scripts, func(i, j int) bool {
		if scripts[i].Score != scripts[j].Score {
			return scripts[i].Score > scripts[j].Score
		}
		return scripts[i].DurationDays > scripts[j].DurationDays
	})
	for i := range scripts {
		scripts[i].Rank = i + 1
	}
}
