package logging

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

// mockLogger records calls for delegation tests.
type mockLogger struct {
	mock.Mock
}

func (m *mockLogger) Info(msg string, fields ...Field) {
	m.Called(msg, fields)
}

func (m *mockLogger) Warn(msg string, fields ...Field) {
	m.Called(msg, fields)
}

func (m *mockLogger) Error(msg string, fields ...Field) {
	m.Called(msg, fields)
}

func (m *mockLogger) Debug(msg string, fields ...Field) {
	m.Called(msg, fields)
}

func (m *mockLogger) WithFields(fields ...Field) Logger {
	args := m.Called(fields)
	return args.Get(0).(Logger)
}

func (m *mockLogger) Close() error {
	args := m.Called()
	return args.Error(0)
}

func TestMultiLogger_Delegates(t *testing.T) {
	a, b := new(mockLogger), new(mockLogger)
	fields := []Field{IntField("attempts", 2)}

	for _, m := range []*mockLogger{a, b} {
		m.On("Info", "info", fields).Return()
		m.On("Warn", "warn", []Field(nil)).Return()
		m.On("Error", "error", []Field(nil)).Return()
		m.On("Debug", "debug", []Field(nil)).Return()
	}

	ml := NewMultiLogger(a, b)
	ml.Info("info", fields...)
	ml.Warn("warn")
	ml.Error("error")
	ml.Debug("debug")

	a.AssertExpectations(t)
	b.AssertExpectations(t)
}

func TestMultiLogger_WithFields(t *testing.T) {
	a := new(mockLogger)
	child := new(mockLogger)
	fields := []Field{StringField("run_id", "r1")}

	a.On("WithFields", fields).Return(child)
	child.On("Info", "hello", []Field(nil)).Return()

	got := NewMultiLogger(a).WithFields(fields...)
	require.IsType(t, &MultiLogger{}, got)
	got.Info("hello")

	a.AssertExpectations(t)
	child.AssertExpectations(t)
}

func TestMultiLogger_CloseJoinsErrors(t *testing.T) {
	a, b := new(mockLogger), new(mockLogger)
	a.On("Close").Return(errors.New("first"))
	b.On("Close").Return(errors.New("second"))

	err := NewMultiLogger(a, b).Close()
	require.Error(t, err)
	assert.Equal(t, "first\nsecond", err.Error())
}

func TestMultiLogger_SkipsNil(t *testing.T) {
	a := new(mockLogger)
	a.On("Info", "x", []Field(nil)).Return()

	NewMultiLogger(nil, a).Info("x")
	a.AssertExpectations(t)
}

func TestMultiLogger_Empty(t *testing.T) {
	ml := NewMultiLogger()
	assert.NotPanics(t, func() {
		ml.Info("x")
		ml.WithFields(StringField("a", "b")).Warn("y")
	})
	assert.NoError(t, ml.Close())
}
