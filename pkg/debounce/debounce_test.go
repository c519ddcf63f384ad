package debounce

import (
	"sync"
	"sync/atomic"
	"testing"
	"time"
)

func TestDebouncerCoalesces(t *testing.T) {
	var fired atomic.Int32
	var mu sync.Mutex
	var lastQuery string

	d := New(50*time.Millisecond, func(q string) {
		fired.Add(1)
		mu.Lock()
		lastQuery = q
		mu.Unlock()
	})

	d.Input("a")
	time.Sleep(10 * time.Millisecond)
	d.Input("ap")
	time.Sleep(10 * time.Millisecond)
	d.Input("app")

	time.Sleep(120 * time.Millisecond)

	if got := fired.Load(); got != 1 {
		t.Errorf("fired %d times, want 1", got)
	}
	mu.Lock()
	defer mu.Unlock()
	if lastQuery != "app" {
		t.Errorf("fired with %q, want last input %q", lastQuery, "app")
	}
}

func TestDebouncerSpacedInputs(t *testing.T) {
	var fired atomic.Int32

	d := New(30*time.Millisecond, func(q string) {
		fired.Add(1)
	})

	for _, text := range []string{"one", "two", "three"} {
		d.Input(text)
		time.Sleep(80 * time.Millisecond)
	}

	if got := fired.Load(); got != 3 {
		t.Errorf("fired %d times, want 3", got)
	}
}

func TestDebouncerShortInputSuppresses(t *testing.T) {
	var fired atomic.Int32
	var suppressed atomic.Int32

	d := New(30*time.Millisecond, func(q string) {
		fired.Add(1)
	})
	d.SetMinLength(3)
	d.SetSuppressed(func() {
		suppressed.Add(1)
	})

	d.Input("ap")
	time.Sleep(80 * time.Millisecond)

	if got := fired.Load(); got != 0 {
		t.Errorf("fired %d times, want 0 for short input", got)
	}
	if got := suppressed.Load(); got != 1 {
		t.Errorf("suppressed %d times, want 1", got)
	}
}

func TestDebouncerShortInputCancelsPending(t *testing.T) {
	var fired atomic.Int32

	d := New(50*time.Millisecond, func(q string) {
		fired.Add(1)
	})
	d.SetMinLength(2)

	d.Input("app")
	if !d.Pending() {
		t.Fatal("expected pending after long input")
	}
	d.Input("a")
	if d.Pending() {
		t.Error("short input should cancel the pending timer")
	}

	time.Sleep(120 * time.Millisecond)
	if got := fired.Load(); got != 0 {
		t.Errorf("fired %d times, want 0", got)
	}
}

func TestDebouncerCancel(t *testing.T) {
	var fired atomic.Int32

	d := New(40*time.Millisecond, func(q string) {
		fired.Add(1)
	})

	d.Input("query")
	d.Cancel()

	time.Sleep(100 * time.Millisecond)
	if got := fired.Load(); got != 0 {
		t.Errorf("fired %d times, want 0 after cancel", got)
	}
}

func TestDebouncerFlush(t *testing.T) {
	var fired atomic.Int32

	d := New(200*time.Millisecond, func(q string) {
		fired.Add(1)
	})

	d.Input("query")
	d.Flush()

	if got := fired.Load(); got != 1 {
		t.Errorf("fired %d times, want 1 immediately after Flush", got)
	}

	// The timer was cancelled; nothing else should arrive.
	time.Sleep(250 * time.Millisecond)
	if got := fired.Load(); got != 1 {
		t.Errorf("fired %d times, want 1 after delay", got)
	}
}

func TestDebouncerFlushIdle(t *testing.T) {
	var fired atomic.Int32

	d := New(20*time.Millisecond, func(q string) {
		fired.Add(1)
	})

	d.Flush()
	if got := fired.Load(); got != 0 {
		t.Errorf("fired %d times, want 0 for idle Flush", got)
	}
}
