// Package match scores a query string against candidate strings.
//
// Scoring is tiered: exact match, prefix match, substring match, then a
// fuzzy subsequence pass. Tiers are tried in order and the first hit wins,
// so tier ranges never overlap: exact (100) > prefix (~90) > substring
// (~70) > fuzzy (capped at 60). A zero score means no match.
package match

import "strings"

// Scoring constants. The fuzzy values are tuned empirically; changing them
// changes relative ordering of partial matches.
const (
	exactMatchScore     = 100.0
	prefixBaseScore     = 90.0
	prefixLengthPenalty = 0.1
	substringBaseScore  = 70.0
	substringPosPenalty = 0.5
	fuzzyCharScore      = 10.0
	fuzzyFullMatchBonus = 20.0
	fuzzyScoreCap       = 60.0
)

// Options controls how candidates are scored.
type Options struct {
	// CaseSensitive disables case folding before comparison.
	CaseSensitive bool
	// Fuzzy enables the fuzzy subsequence tier for candidates that fail
	// the exact/prefix/substring tiers.
	Fuzzy bool
}

// Score rates how well candidate matches query on a 0..100 scale.
// Zero means no match at all; callers drop zero-scored candidates.
func Score(query, candidate string, opts Options) float64 {
	if query == "" || candidate == "" {
		return 0
	}

	if !opts.CaseSensitive {
		query = strings.ToLower(query)
		candidate = strings.ToLower(candidate)
	}

	if query == candidate {
		return exactMatchScore
	}

	queryRunes := []rune(query)
	candidateRunes := []rune(candidate)

	if strings.HasPrefix(candidate, query) {
		return clampScore(prefixBaseScore - float64(len(candidateRunes)-len(queryRunes))*prefixLengthPenalty)
	}

	if idx := runeIndex(candidateRunes, queryRunes); idx >= 0 {
		return clampScore(substringBaseScore - float64(idx)*substringPosPenalty)
	}

	if opts.Fuzzy {
		return fuzzyScore(queryRunes, candidateRunes)
	}

	return 0
}

// fuzzyScore rates a subsequence match: query characters must appear in
// candidate in order, not necessarily contiguous. Earlier matches score
// higher. A full subsequence earns a bonus; a partial one is scaled down
// by the fraction of query characters matched.
func fuzzyScore(query, candidate []rune) float64 {
	if len(query) > len(candidate) {
		return 0
	}

	score := 0.0
	queryPos := 0

	for i, r := range candidate {
		if queryPos < len(query) && r == query[queryPos] {
			score += fuzzyCharScore * (1.0 - float64(i)/float64(len(candidate)))
			queryPos++
		}
	}

	if queryPos == len(query) {
		score += fuzzyFullMatchBonus
	} else {
		score *= float64(queryPos) / float64(len(query))
	}

	if score > fuzzyScoreCap {
		score = fuzzyScoreCap
	}
	return score
}

// runeIndex returns the rune position of needle in haystack, or -1.
// Positions are counted in runes so positional penalties stay consistent
// for multi-byte input.
func runeIndex(haystack, needle []rune) int {
	if len(needle) == 0 || len(needle) > len(haystack) {
		return -1
	}
	for i := 0; i+len(needle) <= len(haystack); i++ {
		found := true
		for j := range needle {
			if haystack[i+j] != needle[j] {
				found = false
				break
			}
		}
		if found {
			return i
		}
	}
	return -1
}

func clampScore(s float64) float64 {
	if s < 0 {
		return 0
	}
	return s
}
