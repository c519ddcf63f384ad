// Package debounce coalesces rapid input events into single trailing-edge
// evaluations, with a minimum-length gate for query-style input.
package debounce

import (
	"sync"
	"time"
	"unicode/utf8"
)

// DefaultDelay is the quiet period before a query evaluates.
const DefaultDelay = 200 * time.Millisecond

// state tracks the two-state machine: idle (no timer armed) and
// pending (timer armed, waiting for the input to go quiet).
type state int

const (
	stateIdle state = iota
	statePending
)

// Debouncer coalesces rapid input events into a single trailing-edge
// evaluation. Every new input cancels and re-arms the delay timer, so the
// fire callback runs once per quiet period with the text that was current
// at fire time, never a stale snapshot.
//
// Input shorter than the minimum length suppresses immediately: any armed
// timer is cancelled, no new one is armed, and the suppress callback (if
// set) runs so the owner can clear stale pending suggestions.
//
// The timer goroutine is the only concurrency here; a mutex plus a
// generation counter keeps cancelled timers from firing stale text.
type Debouncer struct {
	mu        sync.Mutex
	delay     time.Duration
	minLength int
	text      string
	state     state
	timer     *time.Timer
	seq       uint64
	fire      func(query string)
	suppress  func()
}

// New creates a debouncer that calls fire with the current text after the
// input has been quiet for delay. A non-positive delay falls back to
// DefaultDelay.
func New(delay time.Duration, fire func(query string)) *Debouncer {
	if delay <= 0 {
		delay = DefaultDelay
	}
	return &Debouncer{delay: delay, fire: fire}
}

// SetMinLength sets the minimum rune count before input arms the timer.
// Negative values clamp to zero.
func (d *Debouncer) SetMinLength(n int) {
	d.mu.Lock()
	defer d.mu.Unlock()
	if n < 0 {
		n = 0
	}
	d.minLength = n
}

// SetDelay changes the quiet period for subsequent inputs. Non-positive
// values clamp to DefaultDelay.
func (d *Debouncer) SetDelay(delay time.Duration) {
	d.mu.Lock()
	defer d.mu.Unlock()
	if delay <= 0 {
		delay = DefaultDelay
	}
	d.delay = delay
}

// SetSuppressed sets the callback invoked when short input suppresses a
// pending evaluation.
func (d *Debouncer) SetSuppressed(fn func()) {
	d.mu.Lock()
	defer d.mu.Unlock()
	d.suppress = fn
}

// Input records the latest text and re-arms the timer, or suppresses if
// the text is below the minimum length.
func (d *Debouncer) Input(text string) {
	d.mu.Lock()

	d.text = text
	if utf8.RuneCountInString(text) < d.minLength {
		d.cancelLocked()
		suppress := d.suppress
		d.mu.Unlock()
		if suppress != nil {
			suppress()
		}
		return
	}

	d.seq++
	currentSeq := d.seq
	if d.timer != nil {
		d.timer.Stop()
	}
	d.state = statePending
	d.timer = time.AfterFunc(d.delay, func() {
		d.mu.Lock()
		if d.state != statePending || d.seq != currentSeq {
			d.mu.Unlock()
			return
		}
		d.state = stateIdle
		d.timer = nil
		query := d.text
		fire := d.fire
		d.mu.Unlock()
		if fire != nil {
			fire(query)
		}
	})
	d.mu.Unlock()
}

// Flush fires a pending evaluation immediately with the current text,
// cancelling the armed timer. No-op when idle.
func (d *Debouncer) Flush() {
	d.mu.Lock()
	if d.state != statePending {
		d.mu.Unlock()
		return
	}
	d.cancelLocked()
	query := d.text
	fire := d.fire
	d.mu.Unlock()
	if fire != nil {
		fire(query)
	}
}

// Cancel drops any pending evaluation outright.
func (d *Debouncer) Cancel() {
	d.mu.Lock()
	defer d.mu.Unlock()
	d.cancelLocked()
}

// Pending reports whether a timer is armed.
func (d *Debouncer) Pending() bool {
	d.mu.Lock()
	defer d.mu.Unlock()
	return d.state == statePending
}

func (d *Debouncer) cancelLocked() {
	if d.timer != nil {
		d.timer.Stop()
		d.timer = nil
	}
	d.seq++
	d.state = stateIdle
}
