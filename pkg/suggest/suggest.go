// Package suggest is the core ranking engine: it collects candidate
// suggestions from static lists and pluggable sources, scores them with
// pkg/match, and returns a bounded, rank-ordered slice per query.
package suggest

import (
	"sort"

	"github.com/charmbracelet/log"

	"github.com/fluentkit/sift/pkg/match"
)

// DefaultMaxSuggestions bounds ranked results when no explicit limit is set.
const DefaultMaxSuggestions = 8

// Suggestion is one ranked candidate. Score is transient: it is recomputed
// on every Rank call and only meaningful relative to the query it was
// ranked against.
type Suggestion struct {
	Text    string
	Payload any
	Score   float64
}

// Source supplies query-dependent candidates. Implementations must be
// synchronous and fast: they run inline on every ranked query.
type Source interface {
	Suggest(query string) []Suggestion
}

// SourceFunc adapts a plain function to the Source interface.
type SourceFunc func(query string) []Suggestion

// Suggest implements Source.
func (f SourceFunc) Suggest(query string) []Suggestion { return f(query) }

// Strings adapts a bare-string provider to a Source. Each string becomes a
// Suggestion with a nil payload.
func Strings(fn func(query string) []string) Source {
	return SourceFunc(func(query string) []Suggestion {
		return FromStrings(fn(query))
	})
}

// FromStrings wraps bare strings into Suggestions with nil payloads.
func FromStrings(texts []string) []Suggestion {
	items := make([]Suggestion, len(texts))
	for i, t := range texts {
		items[i] = Suggestion{Text: t}
	}
	return items
}

// Rank scores every candidate from static and dynamic against query and
// returns the top maxResults in descending score order. Candidates that do
// not match at all are dropped. Ties keep insertion order: static items
// first, then dynamic, each in the order their source produced them.
//
// static is never mutated; results are freshly allocated per call. A nil
// dynamic source is skipped. A panicking dynamic source is logged and
// treated as having produced nothing; static results are unaffected.
// maxResults below 1 falls back to DefaultMaxSuggestions.
func Rank(query string, static []Suggestion, dynamic Source, maxResults int, opts match.Options) []Suggestion {
	if maxResults < 1 {
		maxResults = DefaultMaxSuggestions
	}

	var ranked []Suggestion
	for _, item := range static {
		if score := match.Score(query, item.Text, opts); score > 0 {
			item.Score = score
			ranked = append(ranked, item)
		}
	}

	if dynamic != nil {
		for _, item := range collectDynamic(dynamic, query) {
			if score := match.Score(query, item.Text, opts); score > 0 {
				item.Score = score
				ranked = append(ranked, item)
			}
		}
	}

	sort.SliceStable(ranked, func(i, j int) bool {
		return ranked[i].Score > ranked[j].Score
	})

	if len(ranked) > maxResults {
		ranked = ranked[:maxResults]
	}
	return ranked
}

// collectDynamic invokes the source, converting a panic into an empty
// result so one misbehaving source cannot take down the whole query.
func collectDynamic(src Source, query string) (items []Suggestion) {
	defer func() {
		if r := recover(); r != nil {
			log.Warnf("suggestion source panicked for query %q: %v", query, r)
			items = nil
		}
	}()
	return src.Suggest(query)
}
