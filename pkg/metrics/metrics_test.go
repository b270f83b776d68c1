package metrics

import (
	"io"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestImplementsInterface(t *testing.T) {
	var _ Recorder = NoopMetrics{}
	var _ Recorder = &PrometheusMetrics{}
}

func TestNoopMetrics(t *testing.T) {
	assert.NotPanics(t, func() {
		m := NoopMetrics{}
		m.RecordPoll("to_be", "matched", 1, time.Millisecond)
		m.RecordProbeError("to_be")
		m.AddActivePolls(1)
	})
}

func TestPrometheusMetrics_RecordPoll(t *testing.T) {
	m := NewPrometheusMetrics()

	m.RecordPoll("to_be", "matched", 3, 30*time.Millisecond)
	m.RecordPoll("to_be", "matched", 1, time.Millisecond)
	m.RecordPoll("to_be", "failed", 6, 50*time.Millisecond)

	assert.Equal(t, 2.0,
		testutil.ToFloat64(m.polls.WithLabelValues("to_be", "matched")))
	assert.Equal(t, 1.0,
		testutil.ToFloat64(m.polls.WithLabelValues("to_be", "failed")))
	assert.Equal(t, 1, testutil.CollectAndCount(m.attempts))
}

func TestPrometheusMetrics_ProbeErrorsAndActive(t *testing.T) {
	m := NewPrometheusMetrics()

	m.RecordProbeError("to_match")
	m.RecordProbeError("to_match")
	m.AddActivePolls(2)
	m.AddActivePolls(-1)

	assert.Equal(t, 2.0,
		testutil.ToFloat64(m.probeErrors.WithLabelValues("to_match")))
	assert.Equal(t, 1.0, testutil.ToFloat64(m.active))
}

func TestPrometheusMetrics_Handler(t *testing.T) {
	m := NewPrometheusMetrics()
	m.RecordPoll("to_be_truthy", "matched", 1, time.Millisecond)

	srv := httptest.NewServer(m.Handler())
	defer srv.Close()

	resp, err := srv.Client().Get(srv.URL)
	require.NoError(t, err)
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	require.NoError(t, err)
	assert.True(t, strings.Contains(string(body),
		`expect_polls_total{matcher="to_be_truthy",state="matched"} 1`))
	assert.NotNil(t, m.Registry())
}
