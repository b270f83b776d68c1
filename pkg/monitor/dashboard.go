package monitor

import (
	"sync"
	"time"
)

// Dashboard tracks running and finished polls for live display.
type Dashboard struct {
	mu   sync.RWMutex
	data DashboardData
}

// DashboardData is a snapshot of the dashboard.
type DashboardData struct {
	StartTime time.Time            `json:"start_time"`
	Polls     map[string]PollState `json:"polls"`
	Summary   DashboardSummary     `json:"summary"`
}

// PollState is the latest known state of one poll.
type PollState struct {
	RunID       string        `json:"run_id"`
	Matcher     string        `json:"matcher"`
	Description string        `json:"description"`
	Status      string        `json:"status"`
	Attempts    int           `json:"attempts"`
	LastValue   string        `json:"last_value,omitempty"`
	LastError   string        `json:"last_error,omitempty"`
	Elapsed     time.Duration `json:"elapsed"`
}

// DashboardSummary holds aggregate stats for the dashboard.
type DashboardSummary struct {
	Total     int     `json:"total"`
	Matched   int     `json:"matched"`
	Failed    int     `json:"failed"`
	Polling   int     `json:"polling"`
	MatchRate float64 `json:"match_rate"`
	Elapsed   string  `json:"elapsed"`
}

// NewDashboard creates an empty dashboard.
func NewDashboard() *Dashboard {
	return &Dashboard{data: DashboardData{
		StartTime: time.Now(),
		Polls:     make(map[string]PollState),
	}}
}

// UpdateFromEvent updates dashboard state from a poll event.
func (d *Dashboard) UpdateFromEvent(event PollEvent) {
	d.mu.Lock()
	defer d.mu.Unlock()

	state, exists := d.data.Polls[event.RunID]
	if !exists {
		state = PollState{RunID: event.RunID, Matcher: event.Matcher}
	}
	if event.Description != "" {
		state.Description = event.Description
	}

	switch event.Type {
	case EventStarted:
		state.Status = "polling"
	case EventAttempt:
		state.Attempts = event.Attempt
		state.LastValue, state.LastError = event.Value, event.Error
		state.Elapsed = event.Elapsed
	case EventMatched, EventFailed:
		state.Status = string(event.Type)
		state.Attempts = event.Attempt
		state.Elapsed = event.Elapsed
	}

	d.data.Polls[event.RunID] = state
	d.recalcSummary()
}

func (d *Dashboard) recalcSummary() {
	s := DashboardSummary{}
	for _, p := range d.data.Polls {
		s.Total++
		switch p.Status {
		case "matched":
			s.Matched++
		case "failed":
			s.Failed++
		default:
			s.Polling++
		}
	}
	if done := s.Matched + s.Failed; done > 0 {
		s.MatchRate = float64(s.Matched) / float64(done) * 100
	}
	s.Elapsed = time.Since(d.data.StartTime).Round(time.Millisecond).String()
	d.data.Summary = s
}

// Snapshot returns a copy of the current dashboard state.
func (d *Dashboard) Snapshot() DashboardData {
	d.mu.RLock()
	defer d.mu.RUnlock()
	snap := d.data
	snap.Polls = make(map[string]PollState, len(d.data.Polls))
	for k, v := range d.data.Polls {
		snap.Polls[k] = v
	}
	return snap
}

// BuildDashboard replays the events of a collector into a new
// dashboard.
func BuildDashboard(collector *EventCollector) *Dashboard {
	data := NewDashboard()
	for _, event := range collector.Events() {
		data.UpdateFromEvent(event)
	}
	return data
}
