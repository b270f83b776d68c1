package monitor

import (
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"digital.vasic.expect/pkg/poll"
)

func TestEventCollector_Emit(t *testing.T) {
	c := NewEventCollector()

	var received []PollEvent
	var mu sync.Mutex
	c.OnEvent(func(e PollEvent) {
		mu.Lock()
		received = append(received, e)
		mu.Unlock()
	})

	c.Emit(PollEvent{Type: EventStarted, RunID: "r-1", Matcher: "to_be"})

	mu.Lock()
	defer mu.Unlock()
	require.Len(t, received, 1)
	assert.Equal(t, EventStarted, received[0].Type)
	assert.False(t, received[0].Timestamp.IsZero())
}

func TestEventCollector_ObservesPoll(t *testing.T) {
	c := NewEventCollector()

	n := 0
	err := poll.New(func() (int, error) {
		n++
		if n == 1 {
			return 0, errors.New("not ready")
		}
		return n, nil
	},
		poll.WithTimeout(time.Minute),
		poll.WithIntervals(0),
		poll.WithObserver(c),
	).ToBe(3)
	require.NoError(t, err)

	events := c.Events()
	require.Len(t, events, 5)
	assert.Equal(t, EventStarted, events[0].Type)
	assert.Equal(t, "to be 3", events[0].Description)
	assert.Equal(t, "not ready", events[1].Error)
	assert.Equal(t, "2", events[2].Value)
	assert.False(t, events[2].Passed)
	assert.True(t, events[3].Passed)
	assert.Equal(t, EventMatched, events[4].Type)
	assert.Equal(t, 3, events[4].Attempt)
	assert.Equal(t, "3", events[4].Value)

	for _, e := range events {
		assert.Equal(t, events[0].RunID, e.RunID)
	}

	stats := c.Stats()
	assert.Equal(t, 1, stats.Polls)
	assert.Equal(t, 1, stats.Matched)
	assert.Equal(t, 0, stats.Active)
	assert.Equal(t, 3, stats.Attempts)
	assert.Equal(t, 1, stats.ProbeErrors)
}

func TestEventCollector_FailedPoll(t *testing.T) {
	c := NewEventCollector()
	err := poll.New(func() (int, error) {
		return 0, errors.New("down")
	}, poll.WithTimeout(0), poll.WithObserver(c)).ToBe(1)
	require.Error(t, err)

	events := c.Events()
	last := events[len(events)-1]
	assert.Equal(t, EventFailed, last.Type)
	assert.Equal(t, "down", last.Error)
	assert.Empty(t, last.Value)
	assert.Equal(t, 1, c.Stats().Failed)
}

func TestEventCollector_Reset(t *testing.T) {
	c := NewEventCollector()
	c.Emit(PollEvent{Type: EventStarted, RunID: "r-1"})
	c.Reset()

	assert.Empty(t, c.Events())
	assert.Equal(t, 0, c.Stats().Polls)
}

func TestEventCollector_Concurrent(t *testing.T) {
	c := NewEventCollector()
	var wg sync.WaitGroup
	for i := 0; i < 20; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			_ = poll.New(poll.Func(func() bool { return true }),
				poll.WithTimeout(0), poll.WithObserver(c),
			).ToBeTruthy()
		}()
	}
	wg.Wait()

	stats := c.Stats()
	assert.Equal(t, 20, stats.Polls)
	assert.Equal(t, 20, stats.Matched)
	assert.Len(t, c.Events(), 60)
}

func TestEventCollector_KeepsRecentEvents(t *testing.T) {
	c := NewEventCollector(WithEventLimit(3))
	for i := 1; i <= 10; i++ {
		c.Emit(PollEvent{Type: EventAttempt, Attempt: i})
	}

	events := c.Events()
	require.Len(t, events, 3)
	assert.Equal(t, []int{8, 9, 10},
		[]int{events[0].Attempt, events[1].Attempt, events[2].Attempt})
	assert.Equal(t, 10, c.Stats().Attempts)
	assert.LessOrEqual(t, len(c.events), 6)
}

func TestDashboard_UpdateFromEvents(t *testing.T) {
	c := NewEventCollector()
	c.Emit(PollEvent{Type: EventStarted, RunID: "a", Matcher: "to_be"})
	c.Emit(PollEvent{Type: EventAttempt, RunID: "a", Attempt: 1, Value: "1"})
	c.Emit(PollEvent{Type: EventStarted, RunID: "b", Matcher: "to_match"})
	c.Emit(PollEvent{Type: EventMatched, RunID: "a", Attempt: 1})
	c.Emit(PollEvent{Type: EventStarted, RunID: "c"})
	c.Emit(PollEvent{Type: EventFailed, RunID: "c", Attempt: 4})

	snap := BuildDashboard(c).Snapshot()
	require.Len(t, snap.Polls, 3)
	assert.Equal(t, "matched", snap.Polls["a"].Status)
	assert.Equal(t, "1", snap.Polls["a"].LastValue)
	assert.Equal(t, "polling", snap.Polls["b"].Status)
	assert.Equal(t, 4, snap.Polls["c"].Attempts)
	assert.Equal(t, 3, snap.Summary.Total)
	assert.Equal(t, 1, snap.Summary.Polling)
	assert.InDelta(t, 50.0, snap.Summary.MatchRate, 0.001)
}

func TestDashboard_SnapshotIsCopy(t *testing.T) {
	d := NewDashboard()
	d.UpdateFromEvent(PollEvent{Type: EventStarted, RunID: "a"})

	snap := d.Snapshot()
	snap.Polls["b"] = PollState{}

	assert.Len(t, d.Snapshot().Polls, 1)
}
