package suggest

import (
	"sync"
	"testing"
	"time"
)

// readyRecorder collects OnSuggestionsReady payloads across goroutines.
type readyRecorder struct {
	mu    sync.Mutex
	calls [][]Suggestion
}

func (r *readyRecorder) record(items []Suggestion) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.calls = append(r.calls, items)
}

func (r *readyRecorder) count() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return len(r.calls)
}

func (r *readyRecorder) last() []Suggestion {
	r.mu.Lock()
	defer r.mu.Unlock()
	if len(r.calls) == 0 {
		return nil
	}
	return r.calls[len(r.calls)-1]
}

func newTestBox(rec *readyRecorder) *AutoSuggest {
	a := NewAutoSuggest()
	a.SetDelay(30 * time.Millisecond)
	a.AddStaticStrings([]string{"Apple", "Apricot", "Banana"})
	a.OnSuggestionsReady = rec.record
	return a
}

func TestAutoSuggestDebouncedEvaluation(t *testing.T) {
	rec := &readyRecorder{}
	a := newTestBox(rec)

	a.SetText("a")
	time.Sleep(5 * time.Millisecond)
	a.SetText("ap")
	time.Sleep(5 * time.Millisecond)
	a.SetText("app")

	time.Sleep(100 * time.Millisecond)

	if got := rec.count(); got != 1 {
		t.Fatalf("OnSuggestionsReady fired %d times, want 1", got)
	}
	got := texts(rec.last())
	if len(got) != 2 || got[0] != "Apple" {
		t.Errorf("got %v, want Apple ranked first for %q", got, "app")
	}
}

func TestAutoSuggestMinQueryLength(t *testing.T) {
	rec := &readyRecorder{}
	a := newTestBox(rec)
	a.SetMinQueryLength(3)

	a.SetText("ap")
	time.Sleep(80 * time.Millisecond)

	if got := rec.count(); got != 0 {
		t.Errorf("short input produced %d evaluations, want 0", got)
	}
}

func TestAutoSuggestShortInputClearsPrevious(t *testing.T) {
	rec := &readyRecorder{}
	a := newTestBox(rec)
	a.SetMinQueryLength(2)

	a.SetText("ap")
	time.Sleep(80 * time.Millisecond)
	if len(a.Suggestions()) == 0 {
		t.Fatal("expected suggestions for valid query")
	}

	a.SetText("a")
	if len(a.Suggestions()) != 0 {
		t.Error("short input should clear current suggestions")
	}
	if items := rec.last(); len(items) != 0 {
		t.Errorf("last notification %v, want empty clear", texts(items))
	}
}

func TestAutoSuggestSelect(t *testing.T) {
	rec := &readyRecorder{}
	a := newTestBox(rec)

	var chosen Suggestion
	a.OnSuggestionSelected = func(s Suggestion) { chosen = s }

	a.SetText("ap")
	a.Refresh()

	a.Navigate(1)
	a.Navigate(1)
	if a.Selected() != 1 {
		t.Fatalf("Selected = %d, want 1", a.Selected())
	}

	a.Submit()
	if chosen.Text != "Apricot" {
		t.Errorf("selected %q, want Apricot", chosen.Text)
	}
	if a.Text() != "Apricot" {
		t.Errorf("text %q, want selection applied", a.Text())
	}
	if len(a.Suggestions()) != 0 {
		t.Error("selection should clear the suggestion list")
	}
}

func TestAutoSuggestNavigateWraps(t *testing.T) {
	a := newTestBox(&readyRecorder{})
	a.SetText("ap")
	a.Refresh()

	a.Navigate(-1)
	if a.Selected() != len(a.Suggestions())-1 {
		t.Errorf("Selected = %d, want wrap to last", a.Selected())
	}
	a.Navigate(1)
	if a.Selected() != 0 {
		t.Errorf("Selected = %d, want wrap to first", a.Selected())
	}
}

func TestAutoSuggestSubmitRawQuery(t *testing.T) {
	a := newTestBox(&readyRecorder{})

	var submitted string
	a.OnQuerySubmitted = func(q string) { submitted = q }

	a.SetText("plain query")
	a.Submit()

	if submitted != "plain query" {
		t.Errorf("submitted %q, want raw text", submitted)
	}
}

func TestAutoSuggestMaxSuggestionsClamp(t *testing.T) {
	a := NewAutoSuggest()
	a.SetMaxSuggestions(-5)
	a.AddStaticStrings([]string{"aa", "ab", "ac"})

	a.SetText("a")
	a.Refresh()

	if got := len(a.Suggestions()); got != 1 {
		t.Errorf("got %d suggestions, want clamp to 1", got)
	}
}

func TestAutoSuggestClear(t *testing.T) {
	a := newTestBox(&readyRecorder{})
	a.SetText("ap")
	a.Refresh()

	a.Clear()
	if a.Text() != "" || len(a.Suggestions()) != 0 {
		t.Errorf("Clear left text=%q suggestions=%v", a.Text(), texts(a.Suggestions()))
	}
}
