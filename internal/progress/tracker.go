package progress

import (
	"context"
	"sync"
)

// subscriberBuffer is the channel capacity per subscriber. A slow consumer
// loses intermediate updates (oldest first) but always receives the latest
// state and the terminal state.
const subscriberBuffer = 16

// subscriber pairs the delivery channel with a quit signal used to release
// the context watchdog goroutine when the stream ends by completion.
type subscriber struct {
	ch   chan State
	quit chan struct{}
}

// Tracker records the progress of a single summarization request.
// It is safe for concurrent use. All methods are nil-safe so pipeline
// components can run without a tracker attached (e.g. in unit tests).
type Tracker struct {
	mu    sync.Mutex
	state State
	subs  map[*subscriber]struct{}
}

// NewTracker creates a tracker in the idle state.
func NewTracker() *Tracker {
	return &Tracker{
		subs: make(map[*subscriber]struct{}),
	}
}

// Update records a new stage, progress percentage, and message.
//
// Progress is monotonic: an update with a lower percentage than the current
// one keeps the current percentage while still updating stage and message.
// Updates after the tracker reached a terminal state are ignored.
func (t *Tracker) Update(stage Stage, percent int, message string) {
	if t == nil {
		return
	}

	t.mu.Lock()
	defer t.mu.Unlock()

	if t.state.Done() {
		return
	}
	if percent < t.state.Progress {
		percent = t.state.Progress
	}
	if percent > 100 {
		percent = 100
	}

	next := State{Stage: stage, Progress: percent, Message: message}
	if next == t.state {
		return
	}
	t.state = next

	for sub := range t.subs {
		push(sub.ch, next)
		if next.Done() {
			t.removeLocked(sub)
		}
	}
}

// push delivers a state to a subscriber without blocking the pipeline.
// If the subscriber's buffer is full, the oldest pending state is dropped.
func push(ch chan State, s State) {
	for {
		select {
		case ch <- s:
			return
		default:
			select {
			case <-ch:
			default:
			}
		}
	}
}

// State returns the current progress snapshot.
func (t *Tracker) State() State {
	if t == nil {
		return State{}
	}
	t.mu.Lock()
	defer t.mu.Unlock()
	return t.state
}

// Subscribe returns a channel that yields the current state immediately and
// then every subsequent state change. The channel is closed once progress
// reaches 100 or the context is canceled, whichever comes first.
func (t *Tracker) Subscribe(ctx context.Context) <-chan State {
	ch := make(chan State, subscriberBuffer)

	if t == nil {
		close(ch)
		return ch
	}

	t.mu.Lock()
	current := t.state
	ch <- current
	if current.Done() {
		t.mu.Unlock()
		close(ch)
		return ch
	}
	sub := &subscriber{ch: ch, quit: make(chan struct{})}
	t.subs[sub] = struct{}{}
	t.mu.Unlock()

	go func() {
		select {
		case <-ctx.Done():
			t.remove(sub)
		case <-sub.quit:
		}
	}()

	return ch
}

// remove drops a subscriber and closes its channel if still registered.
func (t *Tracker) remove(sub *subscriber) {
	t.mu.Lock()
	defer t.mu.Unlock()
	if _, ok := t.subs[sub]; ok {
		t.removeLocked(sub)
	}
}

// removeLocked must be called with t.mu held.
func (t *Tracker) removeLocked(sub *subscriber) {
	delete(t.subs, sub)
	close(sub.ch)
	close(sub.quit)
}
