package progress

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestHub_RegisterAndGet(t *testing.T) {
	hub := NewHub()

	tr := hub.Register("req-1")
	require.NotNil(t, tr)

	got, ok := hub.Get("req-1")
	require.True(t, ok)
	assert.Same(t, tr, got)

	_, ok = hub.Get("req-unknown")
	assert.False(t, ok)
}

func TestHub_LatestFollowsRegistration(t *testing.T) {
	hub := NewHub()
	assert.Nil(t, hub.Latest())

	first := hub.Register("req-1")
	assert.Same(t, first, hub.Latest())

	second := hub.Register("req-2")
	assert.Same(t, second, hub.Latest())
}

func TestHub_ConcurrentRequestsDoNotClobberSubscribedStream(t *testing.T) {
	hub := NewHub()

	first := hub.Register("req-1")
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	ch := first.Subscribe(ctx)
	<-ch // initial snapshot

	// A second request starts and writes its own progress.
	second := hub.Register("req-2")
	second.Update(StageSummarizing, 50, "Summarizing chunk 1 of 2...")

	// The first request's stream only sees the first tracker's updates.
	first.Update(StageInit, 5, "Analyzing text...")
	first.Update(StageComplete, 100, "Summary complete!")

	var states []State
	for s := range ch {
		states = append(states, s)
	}
	for _, s := range states {
		assert.NotEqual(t, "Summarizing chunk 1 of 2...", s.Message,
			"stream for req-1 must not observe req-2 updates")
	}
	assert.Equal(t, 100, states[len(states)-1].Progress)
}

func TestHub_ReleaseKeepsLatest(t *testing.T) {
	hub := NewHub()
	tr := hub.Register("req-1")
	tr.Update(StageComplete, 100, "Summary complete!")

	hub.Release("req-1")

	_, ok := hub.Get("req-1")
	assert.False(t, ok)
	assert.Same(t, tr, hub.Latest(), "latest pointer survives release for polling clients")
}
