package suggest

import (
	"strings"
	"time"
	"unicode/utf8"

	"github.com/fluentkit/sift/pkg/debounce"
	"github.com/fluentkit/sift/pkg/match"
)

// DefaultMinQueryLength gates suggestion evaluation below this many runes.
const DefaultMinQueryLength = 1

// AutoSuggest is the headless controller behind an autocomplete input:
// it owns the static candidate list, an optional dynamic Source, the
// debouncer, and the current ranked suggestions, and surfaces results
// through callbacks instead of painting anything.
//
// All state is single-owner. OnSuggestionsReady fires on the debounce
// timer goroutine after quiet periods, and inline from Select, Clear and
// suppression paths; callers that need strict event-loop ordering should
// forward callback payloads onto their own loop.
type AutoSuggest struct {
	static    []Suggestion
	dynamic   Source
	debouncer *debounce.Debouncer

	matchOpts      match.Options
	maxSuggestions int
	minQueryLength int

	text     string
	current  []Suggestion
	selected int

	// OnSuggestionsReady receives the ranked list after each evaluation;
	// an empty list means "clear". OnSuggestionSelected fires when a
	// suggestion is chosen. OnQuerySubmitted fires when a raw query is
	// submitted with nothing selected.
	OnSuggestionsReady   func([]Suggestion)
	OnSuggestionSelected func(Suggestion)
	OnQuerySubmitted     func(string)
}

// NewAutoSuggest creates a controller with default limits: eight
// suggestions, one-rune minimum query, fuzzy matching on, case folding on,
// 200ms debounce.
func NewAutoSuggest() *AutoSuggest {
	a := &AutoSuggest{
		matchOpts:      match.Options{Fuzzy: true},
		maxSuggestions: DefaultMaxSuggestions,
		minQueryLength: DefaultMinQueryLength,
		selected:       -1,
	}
	a.debouncer = debounce.New(debounce.DefaultDelay, a.evaluate)
	a.debouncer.SetMinLength(a.minQueryLength)
	a.debouncer.SetSuppressed(a.clearSuggestions)
	return a
}

// SetStaticSuggestions replaces the static candidate list. The slice is
// copied so later caller mutations cannot leak into ranking.
func (a *AutoSuggest) SetStaticSuggestions(items []Suggestion) {
	a.static = append([]Suggestion(nil), items...)
}

// AddStaticStrings appends bare strings as static candidates.
func (a *AutoSuggest) AddStaticStrings(texts []string) {
	a.static = append(a.static, FromStrings(texts)...)
}

// SetDynamicSource installs a query-dependent candidate source; nil
// removes it.
func (a *AutoSuggest) SetDynamicSource(src Source) {
	a.dynamic = src
}

// SetMaxSuggestions bounds ranked results. Values below 1 clamp to 1.
func (a *AutoSuggest) SetMaxSuggestions(n int) {
	if n < 1 {
		n = 1
	}
	a.maxSuggestions = n
}

// SetMinQueryLength sets the minimum rune count before evaluation.
// Negative values clamp to zero.
func (a *AutoSuggest) SetMinQueryLength(n int) {
	if n < 0 {
		n = 0
	}
	a.minQueryLength = n
	a.debouncer.SetMinLength(n)
}

// SetFuzzyMatching toggles the fuzzy subsequence tier.
func (a *AutoSuggest) SetFuzzyMatching(enabled bool) {
	a.matchOpts.Fuzzy = enabled
}

// SetCaseSensitive toggles case folding during scoring.
func (a *AutoSuggest) SetCaseSensitive(sensitive bool) {
	a.matchOpts.CaseSensitive = sensitive
}

// SetDelay changes the debounce quiet period.
func (a *AutoSuggest) SetDelay(delay time.Duration) {
	a.debouncer.SetDelay(delay)
}

// SetText feeds a keystroke-level text change through the debouncer.
func (a *AutoSuggest) SetText(text string) {
	a.text = text
	a.debouncer.Input(text)
}

// Text returns the current input text.
func (a *AutoSuggest) Text() string {
	return a.text
}

// Suggestions returns the current ranked list.
func (a *AutoSuggest) Suggestions() []Suggestion {
	return a.current
}

// Selected returns the highlighted suggestion index, -1 for none.
func (a *AutoSuggest) Selected() int {
	return a.selected
}

// Navigate moves the highlight by delta with wrap-around.
func (a *AutoSuggest) Navigate(delta int) {
	if len(a.current) == 0 {
		return
	}
	next := a.selected + delta
	if next < 0 {
		next = len(a.current) - 1
	} else if next >= len(a.current) {
		next = 0
	}
	a.selected = next
}

// Select chooses the suggestion at index: the input text becomes the
// suggestion text, the list clears, and OnSuggestionSelected fires.
// Out-of-range indices are ignored.
func (a *AutoSuggest) Select(index int) {
	if index < 0 || index >= len(a.current) {
		return
	}
	chosen := a.current[index]
	a.text = chosen.Text
	a.debouncer.Cancel()
	a.clearSuggestions()
	if a.OnSuggestionSelected != nil {
		a.OnSuggestionSelected(chosen)
	}
}

// Submit resolves enter-key semantics: a highlighted suggestion wins,
// otherwise the raw query is submitted and the list clears.
func (a *AutoSuggest) Submit() {
	if a.selected >= 0 && a.selected < len(a.current) {
		a.Select(a.selected)
		return
	}
	a.debouncer.Cancel()
	a.clearSuggestions()
	if a.OnQuerySubmitted != nil {
		a.OnQuerySubmitted(a.text)
	}
}

// Clear resets the input and drops any pending or visible suggestions.
func (a *AutoSuggest) Clear() {
	a.text = ""
	a.debouncer.Cancel()
	a.clearSuggestions()
}

// Refresh evaluates the current text immediately, cancelling any pending
// debounced evaluation. Useful for programmatic queries.
func (a *AutoSuggest) Refresh() {
	a.debouncer.Cancel()
	a.evaluate(a.text)
}

// evaluate is the debounce fire target: rank the current query and
// publish the result.
func (a *AutoSuggest) evaluate(query string) {
	query = strings.TrimSpace(query)
	if utf8.RuneCountInString(query) < a.minQueryLength {
		a.clearSuggestions()
		return
	}

	a.current = Rank(query, a.static, a.dynamic, a.maxSuggestions, a.matchOpts)
	a.selected = -1
	if a.OnSuggestionsReady != nil {
		a.OnSuggestionsReady(a.current)
	}
}

func (a *AutoSuggest) clearSuggestions() {
	if len(a.current) == 0 && a.selected == -1 {
		return
	}
	a.current = nil
	a.selected = -1
	if a.OnSuggestionsReady != nil {
		a.OnSuggestionsReady(nil)
	}
}
