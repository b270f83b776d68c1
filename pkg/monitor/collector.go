package monitor

import (
	"sync"
	"time"

	"digital.vasic.expect/pkg/assertion"
	"digital.vasic.expect/pkg/poll"
)

// EventCollector captures poll events and aggregate counts. It
// implements poll.Observer.
type EventCollector struct {
	mu       sync.RWMutex
	limit    int
	events   []PollEvent
	handlers []func(PollEvent)
	stats    CollectorStats
}

var _ poll.Observer = (*EventCollector)(nil)

// CollectorStats holds aggregate statistics.
type CollectorStats struct {
	Polls       int           `json:"polls"`
	Matched     int           `json:"matched"`
	Failed      int           `json:"failed"`
	Active      int           `json:"active"`
	Attempts    int           `json:"attempts"`
	ProbeErrors int           `json:"probe_errors"`
	StartTime   time.Time     `json:"start_time"`
	Duration    time.Duration `json:"duration"`
}

// DefaultEventLimit is the number of recent events a collector
// keeps unless WithEventLimit says otherwise.
const DefaultEventLimit = 1024

// CollectorOption configures an EventCollector.
type CollectorOption func(*EventCollector)

// WithEventLimit bounds how many recent events are kept. Older
// events are dropped; statistics still count them.
func WithEventLimit(n int) CollectorOption {
	return func(c *EventCollector) {
		if n > 0 {
			c.limit = n
		}
	}
}

// NewEventCollector creates a new event collector.
func NewEventCollector(opts ...CollectorOption) *EventCollector {
	c := &EventCollector{
		limit: DefaultEventLimit,
		stats: CollectorStats{StartTime: time.Now()},
	}
	for _, o := range opts {
		o(c)
	}
	c.events = make([]PollEvent, 0, min(c.limit, 64))
	return c
}

// OnEvent registers a handler to be called for each event.
func (c *EventCollector) OnEvent(handler func(PollEvent)) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.handlers = append(c.handlers, handler)
}

// Emit records an event and notifies all handlers.
func (c *EventCollector) Emit(event PollEvent) {
	if event.Timestamp.IsZero() {
		event.Timestamp = time.Now()
	}

	c.mu.Lock()
	c.events = append(c.events, event)
	// Trim in batches so each append stays amortized O(1).
	if len(c.events) >= 2*c.limit {
		c.events = append(c.events[:0], c.events[len(c.events)-c.limit:]...)
	}
	switch event.Type {
	case EventStarted:
		c.stats.Polls++
		c.stats.Active++
	case EventAttempt:
		c.stats.Attempts++
		if event.Error != "" {
			c.stats.ProbeErrors++
		}
	case EventMatched:
		c.stats.Matched++
		c.stats.Active--
	case EventFailed:
		c.stats.Failed++
		c.stats.Active--
	}
	c.stats.Duration = time.Since(c.stats.StartTime)
	handlers := make([]func(PollEvent), len(c.handlers))
	copy(handlers, c.handlers)
	c.mu.Unlock()

	for _, h := range handlers {
		h(event)
	}
}

func (c *EventCollector) PollStarted(run poll.Run) {
	c.Emit(PollEvent{
		Type:        EventStarted,
		RunID:       run.ID,
		Matcher:     run.Matcher,
		Description: run.Description,
		Timestamp:   run.Started,
	})
}

func (c *EventCollector) AttemptFinished(run poll.Run, a poll.Attempt) {
	e := PollEvent{
		Type:    EventAttempt,
		RunID:   run.ID,
		Matcher: run.Matcher,
		Attempt: a.Number,
		Passed:  a.Passed,
		Reason:  a.Reason,
		Elapsed: a.Elapsed,
	}
	if a.Err != nil {
		e.Error = a.Err.Error()
	} else {
		e.Value = assertion.Repr(a.Value)
	}
	c.Emit(e)
}

func (c *EventCollector) PollFinished(o poll.Outcome) {
	e := PollEvent{
		Type:        EventFailed,
		RunID:       o.ID,
		Matcher:     o.Matcher,
		Description: o.Description,
		Attempt:     o.Attempts,
		Reason:      o.Reason,
		Elapsed:     o.Elapsed,
	}
	if o.State == poll.StateMatched {
		e.Type, e.Passed = EventMatched, true
	}
	if o.LastFailed && o.Err != nil {
		e.Error = o.Err.Error()
	} else if o.HasValue {
		e.Value = assertion.Repr(o.Value)
	}
	c.Emit(e)
}

// Events returns a copy of the most recent events, oldest
// first.
func (c *EventCollector) Events() []PollEvent {
	c.mu.RLock()
	defer c.mu.RUnlock()
	events := c.events
	if len(events) > c.limit {
		events = events[len(events)-c.limit:]
	}
	result := make([]PollEvent, len(events))
	copy(result, events)
	return result
}

// Stats returns the current aggregate statistics.
func (c *EventCollector) Stats() CollectorStats {
	c.mu.RLock()
	defer c.mu.RUnlock()
	s := c.stats
	s.Duration = time.Since(s.StartTime)
	return s
}

// Reset clears all collected events and statistics.
func (c *EventCollector) Reset() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.events = c.events[:0]
	c.stats = CollectorStats{StartTime: time.Now()}
}
