// Package watchdog implements the idle-timeout watchdog for the
// interactive session. The watchdog is armed once, re-armed on every
// user input, and fires exactly once when a full idle window passes
// with no reset. Expiry is delivered by closing a channel the session
// loop selects on; the timer callback never touches the task store.
package watchdog

import (
	"sync"
	"time"
)

// DefaultWindow is the idle window used when no timeout is configured.
const DefaultWindow = 180 * time.Second

// Watchdog is a single-shot idle timer. State machine: Armed, re-armed
// by Reset, terminal Expired after one full idle window. Once expired
// or stopped, resets are no-ops and the expiry callback can no longer
// fire.
type Watchdog struct {
	window time.Duration

	mu      sync.Mutex
	timer   *time.Timer
	fired   bool
	stopped bool

	expired chan struct{}
}

// New creates a watchdog with the given idle window. A non-positive
// window falls back to DefaultWindow. The watchdog is inert until
// Start is called.
func New(window time.Duration) *Watchdog {
	if window <= 0 {
		window = DefaultWindow
	}
	return &Watchdog{
		window:  window,
		expired: make(chan struct{}),
	}
}

// Window returns the configured idle window.
func (w *Watchdog) Window() time.Duration {
	return w.window
}

// Start arms the watchdog. Calling Start on a running, expired or
// stopped watchdog is a no-op.
func (w *Watchdog) Start() {
	w.mu.Lock()
	defer w.mu.Unlock()
	if w.timer != nil || w.fired || w.stopped {
		return
	}
	w.timer = time.AfterFunc(w.window, w.expire)
}

// Reset cancels the pending expiry and starts a fresh idle window.
// Safe to call from the input path at any time; after expiry or Stop
// it does nothing.
func (w *Watchdog) Reset() {
	w.mu.Lock()
	defer w.mu.Unlock()
	if w.timer == nil || w.fired || w.stopped {
		return
	}
	w.timer.Stop()
	w.timer.Reset(w.window)
}

// Stop tears the watchdog down. After Stop returns, the expiry
// callback cannot fire: the callback takes the same mutex and checks
// the stopped flag before signaling.
func (w *Watchdog) Stop() {
	w.mu.Lock()
	defer w.mu.Unlock()
	w.stopped = true
	if w.timer != nil {
		w.timer.Stop()
	}
}

// Expired returns the channel that is closed when the idle window
// elapses with no reset. It fires at most once.
func (w *Watchdog) Expired() <-chan struct{} {
	return w.expired
}

func (w *Watchdog) expire() {
	w.mu.Lock()
	defer w.mu.Unlock()
	if w.fired || w.stopped {
		return
	}
	w.fired = true
	close(w.expired)
}
