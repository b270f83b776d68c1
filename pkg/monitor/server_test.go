package monitor

import (
	"context"
	"encoding/json"
	"io"
	"net"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/gorilla/websocket"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"digital.vasic.expect/pkg/metrics"
	"digital.vasic.expect/pkg/poll"
)

func readMessage(t *testing.T, conn *websocket.Conn) Message {
	t.Helper()
	require.NoError(t, conn.SetReadDeadline(time.Now().Add(5*time.Second)))
	_, data, err := conn.ReadMessage()
	require.NoError(t, err)

	var msg Message
	require.NoError(t, json.Unmarshal(data, &msg))
	return msg
}

func waitClients(t *testing.T, s *Server, n int) {
	t.Helper()
	require.Eventually(t, func() bool { return s.Clients() == n },
		5*time.Second, 10*time.Millisecond)
}

func TestServer_StreamsPollEvents(t *testing.T) {
	c := NewEventCollector()
	s := NewServer("", c)
	ts := httptest.NewServer(s.Handler())
	defer ts.Close()

	url := "ws" + strings.TrimPrefix(ts.URL, "http") + "/ws"
	conn, _, err := websocket.DefaultDialer.Dial(url, nil)
	require.NoError(t, err)
	defer conn.Close()

	assert.Equal(t, "dashboard", readMessage(t, conn).Type)
	waitClients(t, s, 1)

	err = poll.New(poll.Func(func() string { return "ready" }),
		poll.WithTimeout(0), poll.WithObserver(c),
	).ToBe("ready")
	require.NoError(t, err)

	var types []string
	for i := 0; i < 3; i++ {
		msg := readMessage(t, conn)
		assert.Equal(t, "event", msg.Type)
		event := msg.Data.(map[string]any)
		types = append(types, event["type"].(string))
	}
	assert.Equal(t, []string{"started", "attempt", "matched"}, types)

	require.NoError(t, conn.Close())
	waitClients(t, s, 0)
}

func TestServer_HTTPEndpoints(t *testing.T) {
	c := NewEventCollector()
	m := metrics.NewPrometheusMetrics()
	s := NewServer("", c, WithMetricsHandler(m.Handler()))
	ts := httptest.NewServer(s.Handler())
	defer ts.Close()

	_ = poll.New(poll.Func(func() int { return 1 }),
		poll.WithTimeout(0), poll.WithObserver(c), poll.WithMetrics(m),
	).ToBe(2)

	body := func(path string) string {
		resp, err := http.Get(ts.URL + path)
		require.NoError(t, err)
		defer resp.Body.Close()
		assert.Equal(t, http.StatusOK, resp.StatusCode)
		data, err := io.ReadAll(resp.Body)
		require.NoError(t, err)
		return string(data)
	}

	assert.Equal(t, "ok", body("/health"))

	var stats CollectorStats
	require.NoError(t, json.Unmarshal([]byte(body("/stats")), &stats))
	assert.Equal(t, 1, stats.Failed)

	var dash DashboardData
	require.NoError(t, json.Unmarshal([]byte(body("/dashboard")), &dash))
	assert.Equal(t, 1, dash.Summary.Failed)

	assert.Contains(t, body("/metrics"), "expect_polls_total")
}

func TestServer_StartAndStop(t *testing.T) {
	ln, err := net.Listen("tcp", "127.0.0.1:0")
	require.NoError(t, err)
	addr := ln.Addr().String()
	require.NoError(t, ln.Close())

	s := NewServer(addr, NewEventCollector())
	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan error, 1)
	go func() { done <- s.Start(ctx) }()

	require.Eventually(t, func() bool {
		resp, err := http.Get("http://" + addr + "/health")
		if err != nil {
			return false
		}
		resp.Body.Close()
		return resp.StatusCode == http.StatusOK
	}, 5*time.Second, 20*time.Millisecond)

	conn, _, err := websocket.DefaultDialer.Dial("ws://"+addr+"/ws", nil)
	require.NoError(t, err)
	defer conn.Close()
	readMessage(t, conn)

	cancel()
	select {
	case err := <-done:
		assert.NoError(t, err)
	case <-time.After(10 * time.Second):
		t.Fatal("server did not stop")
	}

	_, _, err = conn.ReadMessage()
	assert.Error(t, err)
}
