package textutil

import "strings"

// CosineSimilarity computes the cosine similarity between two fingerprints.
// Returns 0 if either fingerprint is nil or has zero norm.
func CosineSimilarity(a, b *Fingerprint) float64 {
	if a == nil || b == nil || a.norm == 0 || b.norm == 0 {
		return 0
	}
	var dot float64
	for token, count := range a.tokens {
		if other, ok := b.tokens[token]; ok {
			dot += count * other
		}
	}
	if dot == 0 {
		return 0
	}
	return dot / (a.norm * b.norm)
}

// SequenceRatio computes a Ratcliff/Obershelp similarity ratio over the
// lowercased token sequences of two texts: 2*M / (len(a)+len(b)) where M is
// the total length of recursively matched blocks. Identical texts score 1,
// disjoint texts score 0.
func SequenceRatio(a, b string) float64 {
	ta := Tokenize(a)
	tb := Tokenize(b)
	if len(ta) == 0 || len(tb) == 0 {
		// Transcripts made of short words ("on y va") filter down to
		// nothing, so retokenize without the length floor.
		ta = splitTokens(a)
		tb = splitTokens(b)
	}
	if len(ta) == 0 && len(tb) == 0 {
		if strings.EqualFold(strings.TrimSpace(a), strings.TrimSpace(b)) {
			return 1
		}
		return 0
	}
	if len(ta) == 0 || len(tb) == 0 {
		return 0
	}
	matched := matchingBlocks(ta, tb)
	return 2 * float64(matched) / float64(len(ta)+len(tb))
}

func matchingBlocks(a, b []string) int {
	alo, ahi := 0, len(a)
	blo, bhi := 0, len(b)
	return recursiveMatch(a, b, alo, ahi, blo, bhi)
}

func recursiveMatch(a, b []string, alo, ahi, blo, bhi int) int {
	i, j, size := longestMatch(a, b, alo, ahi, blo, bhi)
	if size == 0 {
		return 0
	}
	total := size
	total += recursiveMatch(a, b, alo, i, blo, j)
	total += recursiveMatch(a, b, i+size, ahi, j+size, bhi)
	return total
}

func longestMatch(a, b []string, alo, ahi, blo, bhi int) (int, int, int) {
	bestI, bestJ, bestSize := alo, blo, 0
	// j2len[j] holds the length of the match ending at a[i-1], b[j-1].
	j2len := make(map[int]int)
	for i := alo; i < ahi; i++ {
		next := make(map[int]int)
		for j := blo; j < bhi; j++ {
			if !strings.EqualFold(a[i], b[j]) {
				continue
			}
			k := j2len[j-1] + 1
			next[j] = k
			if k > bestSize {
				bestI, bestJ, bestSize = i-k+1, j-k+1, k
			}
		}
		j2len = next
	}
	return bestI, bestJ, bestSize
}
