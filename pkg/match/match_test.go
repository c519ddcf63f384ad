package match

import (
	"fmt"
	"testing"
)

// Tier expectations:
// exact match > prefix match > substring match > fuzzy subsequence > no match

func TestScoreTiers(t *testing.T) {
	opts := Options{Fuzzy: true}

	testCases := []struct {
		query       string
		candidate   string
		expected    float64
		description string
	}{
		// exact matches
		{"apple", "apple", 100, "Exact match"},
		{"Apple", "apple", 100, "Exact match case folded"},
		{"APPLE", "Apple", 100, "Exact match both folded"},

		// prefix matches: 90 - 0.1 per extra candidate char
		{"ap", "apple", 90 - 0.3, "Prefix with 3 extra chars"},
		{"ap", "apricot", 90 - 0.5, "Prefix with 5 extra chars"},
		{"hell", "hello", 90 - 0.1, "Prefix with 1 extra char"},

		// substring matches: 70 - 0.5 per leading char
		{"ell", "hello", 70 - 0.5, "Substring at index 1"},
		{"lo", "hello", 70 - 1.5, "Substring at index 3"},

		// no match at all
		{"xyz", "apple", 0, "No overlap"},
		{"", "apple", 0, "Empty query"},
		{"apple", "", 0, "Empty candidate"},
		{"", "", 0, "Both empty"},
	}

	for _, tc := range testCases {
		t.Run(tc.description, func(t *testing.T) {
			got := Score(tc.query, tc.candidate, opts)
			if !almostEqual(got, tc.expected) {
				t.Errorf("Score(%q, %q) = %v, want %v", tc.query, tc.candidate, got, tc.expected)
			}
		})
	}
}

func TestScoreRange(t *testing.T) {
	opts := Options{Fuzzy: true}
	queries := []string{"", "a", "ap", "apple", "xyz", "aegis", "zzzzzz"}
	candidates := []string{"", "apple", "Apricot", "banana", "a very long candidate string with many words"}

	for _, q := range queries {
		for _, c := range candidates {
			s := Score(q, c, opts)
			if s < 0 || s > 100 {
				t.Errorf("Score(%q, %q) = %v, out of [0,100]", q, c, s)
			}
		}
	}
}

func TestScoreIdentity(t *testing.T) {
	for _, s := range []string{"a", "apple", "Mixed Case", "with space"} {
		if got := Score(s, s, Options{}); got != 100 {
			t.Errorf("Score(%q, %q) = %v, want 100", s, s, got)
		}
	}
}

func TestCaseSensitive(t *testing.T) {
	opts := Options{CaseSensitive: true, Fuzzy: true}

	if got := Score("Apple", "apple", opts); got == 100 {
		t.Error("case-sensitive exact match should not fold case")
	}
	if got := Score("apple", "apple", opts); got != 100 {
		t.Errorf("Score = %v, want 100", got)
	}
}

// Prefix matches must outrank substring-only matches of comparable length.
func TestPrefixBeatsSubstring(t *testing.T) {
	prefix := Score("ap", "apses", Options{})
	substring := Score("ap", "snaps", Options{})
	if prefix <= substring {
		t.Errorf("prefix score %v should beat substring score %v", prefix, substring)
	}
}

// Shorter candidates win between two prefix matches.
func TestShorterPrefixWins(t *testing.T) {
	apple := Score("ap", "apple", Options{})
	apricot := Score("ap", "apricot", Options{})
	if apple <= apricot {
		t.Errorf("shorter prefix candidate should score higher: apple=%v apricot=%v", apple, apricot)
	}
}

func TestFuzzySubsequence(t *testing.T) {
	opts := Options{Fuzzy: true}

	// "ale" is a subsequence of "apple": a(0) l(3) e(4)
	got := Score("ale", "apple", opts)
	want := 10.0*(1.0-0.0/5.0) + 10.0*(1.0-3.0/5.0) + 10.0*(1.0-4.0/5.0) + 20.0
	if want > 60 {
		want = 60
	}
	if !almostEqual(got, want) {
		t.Errorf("Score(ale, apple) = %v, want %v", got, want)
	}
}

func TestFuzzyPartialPenalty(t *testing.T) {
	opts := Options{Fuzzy: true}

	// "az" matches only 'a' in "apple"; partial penalty scales by 1/2.
	got := Score("az", "apple", opts)
	want := 10.0 * (1.0 - 0.0/5.0) / 2.0
	if !almostEqual(got, want) {
		t.Errorf("Score(az, apple) = %v, want %v", got, want)
	}
}

func TestFuzzyCap(t *testing.T) {
	opts := Options{Fuzzy: true}

	// A dense early subsequence must stay below the substring tier.
	seq := Score("abcdefg", "azbcdefg", opts)
	if seq > 60 {
		t.Errorf("fuzzy score %v exceeds cap 60", seq)
	}
	if seq <= 0 {
		t.Errorf("fuzzy score %v, want > 0 for full subsequence", seq)
	}
}

func TestFuzzyQueryLongerThanCandidate(t *testing.T) {
	if got := Score("longer", "log", Options{Fuzzy: true}); got != 0 {
		t.Errorf("Score = %v, want 0 for query longer than candidate", got)
	}
}

func TestFuzzyDisabled(t *testing.T) {
	// "ale" is a subsequence of "apple" but fuzzy is off.
	if got := Score("ale", "apple", Options{}); got != 0 {
		t.Errorf("Score = %v, want 0 with fuzzy disabled", got)
	}
}

func TestRuneIndexMultibyte(t *testing.T) {
	// Positional penalty counts runes, not bytes.
	got := Score("fee", "café feed", Options{})
	want := 70.0 - 0.5*5.0
	if !almostEqual(got, want) {
		t.Errorf("Score(fee, café feed) = %v, want %v", got, want)
	}
}

func almostEqual(a, b float64) bool {
	diff := a - b
	if diff < 0 {
		diff = -diff
	}
	return diff < 1e-9
}

func BenchmarkScore(b *testing.B) {
	opts := Options{Fuzzy: true}
	candidates := make([]string, 1000)
	for i := range candidates {
		candidates[i] = fmt.Sprintf("candidate-%d", i)
	}

	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		Score("cand42", candidates[i%len(candidates)], opts)
	}
}
