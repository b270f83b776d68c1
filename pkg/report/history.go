package report

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	_ "github.com/mattn/go-sqlite3"

	"digital.vasic.expect/pkg/assertion"
	"digital.vasic.expect/pkg/runner"
)

const schema = `
CREATE TABLE IF NOT EXISTS poll_history (
	id          INTEGER PRIMARY KEY AUTOINCREMENT,
	run_id      TEXT NOT NULL,
	check_name  TEXT NOT NULL,
	matcher     TEXT NOT NULL,
	description TEXT NOT NULL,
	state       TEXT NOT NULL,
	attempts    INTEGER NOT NULL,
	elapsed_ns  INTEGER NOT NULL,
	last_value  TEXT NOT NULL DEFAULT '',
	last_error  TEXT NOT NULL DEFAULT '',
	reason      TEXT NOT NULL DEFAULT '',
	recorded_at TIMESTAMP NOT NULL
);
CREATE INDEX IF NOT EXISTS poll_history_check
	ON poll_history (check_name, recorded_at);
`

// HistoricalEntry is one recorded check outcome.
type HistoricalEntry struct {
	ID          int64         `json:"id"`
	RunID       string        `json:"run_id"`
	Check       string        `json:"check"`
	Matcher     string        `json:"matcher"`
	Description string        `json:"description"`
	State       string        `json:"state"`
	Attempts    int           `json:"attempts"`
	Elapsed     time.Duration `json:"elapsed"`
	LastValue   string        `json:"last_value,omitempty"`
	LastError   string        `json:"last_error,omitempty"`
	Reason      string        `json:"reason,omitempty"`
	RecordedAt  time.Time     `json:"recorded_at"`
}

// History stores check outcomes in a SQLite database.
type History struct {
	db *sql.DB
}

// OpenHistory opens or creates the history database at path.
// ":memory:" keeps it in memory.
func OpenHistory(path string) (*History, error) {
	db, err := sql.Open("sqlite3", path)
	if err != nil {
		return nil, fmt.Errorf("open history %s: %w", path, err)
	}
	// Each connection to ":memory:" is a separate database.
	db.SetMaxOpenConns(1)

	if _, err := db.Exec(schema); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("create history schema: %w", err)
	}
	return &History{db: db}, nil
}

// Close closes the database.
func (h *History) Close() error {
	return h.db.Close()
}

// Append stores e. RecordedAt defaults to now.
func (h *History) Append(ctx context.Context, e HistoricalEntry) (int64, error) {
	if e.RecordedAt.IsZero() {
		e.RecordedAt = time.Now()
	}
	res, err := h.db.ExecContext(ctx, `
		INSERT INTO poll_history (
			run_id, check_name, matcher, description, state,
			attempts, elapsed_ns, last_value, last_error, reason,
			recorded_at
		) VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		e.RunID, e.Check, e.Matcher, e.Description, e.State,
		e.Attempts, int64(e.Elapsed), e.LastValue, e.LastError, e.Reason,
		e.RecordedAt.UTC(),
	)
	if err != nil {
		return 0, fmt.Errorf("append history entry: %w", err)
	}
	return res.LastInsertId()
}

// AppendResult stores the outcome of a runner check.
func (h *History) AppendResult(ctx context.Context, r runner.Result) error {
	_, err := h.Append(ctx, EntryFromResult(r))
	return err
}

// EntryFromResult converts a runner result into a history entry.
func EntryFromResult(r runner.Result) HistoricalEntry {
	o := r.Outcome
	e := HistoricalEntry{
		RunID:       o.ID,
		Check:       r.Check,
		Matcher:     o.Matcher,
		Description: o.Description,
		State:       string(o.State),
		Attempts:    o.Attempts,
		Elapsed:     o.Elapsed,
		Reason:      o.Reason,
	}
	switch {
	case o.LastFailed && o.Err != nil:
		e.LastError = o.Err.Error()
	case o.HasValue:
		e.LastValue = assertion.Repr(o.Value)
	}
	if o.Attempts == 0 && r.Err != nil {
		e.State = "aborted"
		e.LastError = r.Err.Error()
	}
	return e
}

// Recent returns up to limit entries, newest first. A non-empty
// check restricts them to that check.
func (h *History) Recent(
	ctx context.Context,
	check string,
	limit int,
) ([]HistoricalEntry, error) {
	query := `
		SELECT id, run_id, check_name, matcher, description, state,
			attempts, elapsed_ns, last_value, last_error, reason,
			recorded_at
		FROM poll_history`
	args := []any{}
	if check != "" {
		query += ` WHERE check_name = ?`
		args = append(args, check)
	}
	query += ` ORDER BY id DESC LIMIT ?`
	args = append(args, limit)

	rows, err := h.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("query history: %w", err)
	}
	defer rows.Close()

	var entries []HistoricalEntry
	for rows.Next() {
		var e HistoricalEntry
		var elapsed int64
		if err := rows.Scan(
			&e.ID, &e.RunID, &e.Check, &e.Matcher, &e.Description,
			&e.State, &e.Attempts, &elapsed, &e.LastValue,
			&e.LastError, &e.Reason, &e.RecordedAt,
		); err != nil {
			return nil, fmt.Errorf("scan history: %w", err)
		}
		e.Elapsed = time.Duration(elapsed)
		entries = append(entries, e)
	}
	return entries, rows.Err()
}

// PassRate returns the share of matched outcomes for check, in
// percent, and the number of outcomes considered.
func (h *History) PassRate(ctx context.Context, check string) (float64, int, error) {
	var total, matched int
	err := h.db.QueryRowContext(ctx, `
		SELECT COUNT(*), COALESCE(SUM(state = 'matched'), 0)
		FROM poll_history WHERE check_name = ?`, check,
	).Scan(&total, &matched)
	if err != nil {
		return 0, 0, fmt.Errorf("query pass rate: %w", err)
	}
	if total == 0 {
		return 0, 0, nil
	}
	return float64(matched) / float64(total) * 100, total, nil
}
