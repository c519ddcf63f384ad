// Package filtersort provides the headless controllers behind filterable,
// sortable data views: a filter bar with debounced text input, bounded
// history, and category selection, and a sort menu with exclusive field
// checking and a direction toggle.
package filtersort

import (
	"time"

	"github.com/charmbracelet/log"

	"github.com/fluentkit/sift/pkg/debounce"
)

const (
	// DefaultFilterDelay is the quiet period before a text change emits.
	DefaultFilterDelay = 300 * time.Millisecond
	// DefaultMaxHistoryItems bounds the filter-text history.
	DefaultMaxHistoryItems = 20
	// AllCategories is the sentinel category meaning "no category filter".
	AllCategories = "All"
)

// FilterState is a snapshot of the active filter.
type FilterState struct {
	Text     string
	Category string
}

// FilterBar tracks filter text and a category selection. Text changes are
// debounced before OnFilterChanged fires; category changes and ClearFilters
// emit immediately. Non-empty text is recorded in a bounded FIFO history
// that skips adjacent duplicates.
type FilterBar struct {
	categories []string
	text       string
	category   string
	history    []string
	maxHistory int
	debouncer  *debounce.Debouncer

	// OnFilterChanged receives the filter text and category after a text
	// change settles, and immediately on category changes and clears.
	OnFilterChanged func(text, category string)
}

// NewFilterBar creates a filter bar over the given category names. The
// categories may be nil, in which case any category string is accepted.
func NewFilterBar(categories []string) *FilterBar {
	fb := &FilterBar{
		categories: append([]string(nil), categories...),
		maxHistory: DefaultMaxHistoryItems,
	}
	fb.debouncer = debounce.New(DefaultFilterDelay, fb.emitText)
	return fb
}

// SetDelay changes the text debounce quiet period.
func (fb *FilterBar) SetDelay(delay time.Duration) {
	fb.debouncer.SetDelay(delay)
}

// SetMaxHistoryItems bounds the filter-text history. Negative values clamp
// to zero, which disables history. An existing oversized history is trimmed
// from the front.
func (fb *FilterBar) SetMaxHistoryItems(n int) {
	if n < 0 {
		n = 0
	}
	fb.maxHistory = n
	if len(fb.history) > n {
		fb.history = fb.history[len(fb.history)-n:]
	}
}

// SetFilterText records a text change and arms the debounce timer. The
// emitted filter reflects the text current at fire time, so rapid edits
// coalesce into one notification.
func (fb *FilterBar) SetFilterText(text string) {
	fb.text = text
	fb.recordHistory(text)
	fb.debouncer.Input(text)
}

// SetCategory switches the category filter and emits immediately. The
// AllCategories sentinel and the empty string both mean "no category".
// Unknown categories are ignored when a category list was declared.
func (fb *FilterBar) SetCategory(category string) {
	if category == AllCategories {
		category = ""
	}
	if category != "" && len(fb.categories) > 0 && !fb.hasCategory(category) {
		log.Debug("ignoring unknown filter category", "category", category)
		return
	}
	if category == fb.category {
		return
	}
	fb.category = category
	fb.emit()
}

// ClearFilters resets text and category and emits the empty filter
// immediately, cancelling any pending text notification.
func (fb *FilterBar) ClearFilters() {
	fb.debouncer.Cancel()
	fb.text = ""
	fb.category = ""
	fb.emit()
}

// Flush emits a pending text change immediately instead of waiting out the
// quiet period.
func (fb *FilterBar) Flush() {
	fb.debouncer.Flush()
}

// CurrentFilter returns the active filter snapshot.
func (fb *FilterBar) CurrentFilter() FilterState {
	return FilterState{Text: fb.text, Category: fb.category}
}

// Categories returns the declared category names.
func (fb *FilterBar) Categories() []string {
	return append([]string(nil), fb.categories...)
}

// History returns the recorded filter texts, oldest first.
func (fb *FilterBar) History() []string {
	return append([]string(nil), fb.history...)
}

func (fb *FilterBar) recordHistory(text string) {
	if text == "" || fb.maxHistory == 0 {
		return
	}
	if n := len(fb.history); n > 0 && fb.history[n-1] == text {
		return
	}
	fb.history = append(fb.history, text)
	if len(fb.history) > fb.maxHistory {
		fb.history = fb.history[len(fb.history)-fb.maxHistory:]
	}
}

func (fb *FilterBar) hasCategory(name string) bool {
	for _, c := range fb.categories {
		if c == name {
			return true
		}
	}
	return false
}

// emitText is the debounce fire target. The debouncer hands back the text
// current at fire time; the category is read from the bar.
func (fb *FilterBar) emitText(text string) {
	if fn := fb.OnFilterChanged; fn != nil {
		fn(text, fb.category)
	}
}

func (fb *FilterBar) emit() {
	if fn := fb.OnFilterChanged; fn != nil {
		fn(fb.text, fb.category)
	}
}
