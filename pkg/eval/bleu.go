package eval

import (
	"math"
	"regexp"
	"strings"
)

const (
	// bleuOrder is the longest n-gram considered.
	bleuOrder = 4
	// bleuEpsilon floors zero n-gram matches so short or disjoint
	// texts score low instead of collapsing to zero.
	bleuEpsilon = 0.1
)

// tokenPattern splits lowercased text into words (with internal
// apostrophes), numbers, and individual punctuation marks.
var tokenPattern = regexp.MustCompile(`[a-z0-9]+(?:'[a-z0-9]+)*|[^\sa-z0-9]`)

func tokenize(text string) []string {
	return tokenPattern.FindAllString(strings.ToLower(text), -1)
}

// BLEU computes a smoothed BLEU-4 similarity of candidate against
// reference, with uniform n-gram weights and a brevity penalty for
// short candidates.
func BLEU(candidate, reference string) float64 {
	candTokens := tokenize(candidate)
	refTokens := tokenize(reference)
	if len(candTokens) == 0 || len(refTokens) == 0 {
		return 0
	}

	logSum := 0.0
	for n := 1; n <= bleuOrder; n++ {
		logSum += math.Log(modifiedPrecision(candTokens, refTokens, n)) / bleuOrder
	}

	return brevityPenalty(len(candTokens), len(refTokens)) * math.Exp(logSum)
}

// modifiedPrecision is the clipped n-gram precision: each candidate
// n-gram counts at most as often as it appears in the reference.
func modifiedPrecision(cand, ref []string, n int) float64 {
	candCounts := ngramCounts(cand, n)
	refCounts := ngramCounts(ref, n)

	matched, total := 0, 0
	for gram, count := range candCounts {
		total += count
		if refCount, ok := refCounts[gram]; ok {
			if count < refCount {
				matched += count
			} else {
				matched += refCount
			}
		}
	}

	if total == 0 {
		total = 1
	}
	if matched == 0 {
		return bleuEpsilon / float64(total)
	}
	return float64(matched) / float64(total)
}

func ngramCounts(tokens []string, n int) map[string]int {
	counts := make(map[string]int)
	for i := 0; i+n <= len(tokens); i++ {
		counts[strings.Join(tokens[i:i+n], " ")]++
	}
	return counts
}

func brevityPenalty(candLen, refLen int) float64 {
	if candLen >= refLen {
		return 1
	}
	return math.Exp(1 - float64(refLen)/float64(candLen))
}
