package progress

import "sync"

// Hub registers trackers by request ID so that concurrent summarization
// requests each report their own progress. The hub additionally remembers the
// most recently registered tracker for clients that poll without a request ID
// (the original single-user behavior of the service).
type Hub struct {
	mu       sync.RWMutex
	trackers map[string]*Tracker
	latest   *Tracker
}

// NewHub creates an empty hub.
func NewHub() *Hub {
	return &Hub{
		trackers: make(map[string]*Tracker),
	}
}

// Register creates a tracker for the given request ID and makes it the
// latest. Registering the same ID twice replaces the previous tracker.
func (h *Hub) Register(requestID string) *Tracker {
	t := NewTracker()

	h.mu.Lock()
	defer h.mu.Unlock()
	h.trackers[requestID] = t
	h.latest = t
	return t
}

// Get returns the tracker for a request ID.
func (h *Hub) Get(requestID string) (*Tracker, bool) {
	h.mu.RLock()
	defer h.mu.RUnlock()
	t, ok := h.trackers[requestID]
	return t, ok
}

// Latest returns the most recently registered tracker, or nil when no request
// has been tracked yet. Tracker methods are nil-safe, so callers may use the
// result directly.
func (h *Hub) Latest() *Tracker {
	h.mu.RLock()
	defer h.mu.RUnlock()
	return h.latest
}

// Release removes a tracker from the ID index. The latest pointer is kept so
// polling clients can still read the terminal state of a finished request.
func (h *Hub) Release(requestID string) {
	h.mu.Lock()
	defer h.mu.Unlock()
	delete(h.trackers, requestID)
}
