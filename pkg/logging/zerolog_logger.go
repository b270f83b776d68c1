package logging

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"time"

	"github.com/rs/zerolog"
)

// LoggerConfig configures a JSON logger.
type LoggerConfig struct {
	// OutputPath is the log file. Empty means stdout.
	OutputPath string
	Level      LogLevel
	// Verbose enables Debug output regardless of Level.
	Verbose bool
	Fields  map[string]any
}

// ZeroLogger implements Logger on top of a zerolog.Logger.
type ZeroLogger struct {
	zl     zerolog.Logger
	closer io.Closer
}

// NewJSONLogger creates a logger writing JSON lines. If
// OutputPath is empty, logs are written to stdout.
func NewJSONLogger(config LoggerConfig) (*ZeroLogger, error) {
	var (
		out    io.Writer = os.Stdout
		closer io.Closer
	)

	if config.OutputPath != "" {
		dir := filepath.Dir(config.OutputPath)
		if err := os.MkdirAll(dir, 0755); err != nil {
			return nil, fmt.Errorf(
				"failed to create log directory: %w", err,
			)
		}
		file, err := os.OpenFile(
			config.OutputPath,
			os.O_CREATE|os.O_WRONLY|os.O_APPEND,
			0644,
		)
		if err != nil {
			return nil, fmt.Errorf(
				"failed to open log file: %w", err,
			)
		}
		out, closer = file, file
	}

	logger := NewWriterLogger(out, config.Level, config.Verbose)
	logger.closer = closer
	if len(config.Fields) > 0 {
		logger.zl = logger.zl.With().Fields(config.Fields).Logger()
	}
	return logger, nil
}

// NewWriterLogger creates a JSON logger on an arbitrary writer.
// The writer is not closed by Close.
func NewWriterLogger(
	w io.Writer, level LogLevel, verbose bool,
) *ZeroLogger {
	if verbose {
		level = LevelDebug
	}
	zl := zerolog.New(w).
		Level(level.zerolog()).
		With().
		Timestamp().
		Logger()
	return &ZeroLogger{zl: zl}
}

// NewConsoleLogger creates a human-readable, colored logger on
// stdout. When verbose is true, debug messages are emitted.
func NewConsoleLogger(verbose bool) *ZeroLogger {
	return NewConsoleLoggerTo(os.Stdout, verbose, false)
}

// NewConsoleLoggerTo creates a console logger on w.
func NewConsoleLoggerTo(
	w io.Writer, verbose, noColor bool,
) *ZeroLogger {
	return NewConsoleLoggerAt(w, LevelInfo, verbose, noColor)
}

// NewConsoleLoggerAt creates a console logger on w filtering
// below level. Verbose lowers the level to debug.
func NewConsoleLoggerAt(
	w io.Writer, level LogLevel, verbose, noColor bool,
) *ZeroLogger {
	cw := zerolog.ConsoleWriter{
		Out:        w,
		NoColor:    noColor,
		TimeFormat: "15:04:05",
	}
	if verbose {
		level = LevelDebug
	}
	zl := zerolog.New(cw).
		Level(level.zerolog()).
		With().
		Timestamp().
		Logger()
	return &ZeroLogger{zl: zl}
}

// FromZerolog wraps an existing zerolog.Logger.
func FromZerolog(zl zerolog.Logger) *ZeroLogger {
	return &ZeroLogger{zl: zl}
}

// Info logs an informational message.
func (l *ZeroLogger) Info(msg string, fields ...Field) {
	emit(l.zl.Info(), msg, fields)
}

// Warn logs a warning message.
func (l *ZeroLogger) Warn(msg string, fields ...Field) {
	emit(l.zl.Warn(), msg, fields)
}

// Error logs an error message.
func (l *ZeroLogger) Error(msg string, fields ...Field) {
	emit(l.zl.Error(), msg, fields)
}

// Debug logs a debug message.
func (l *ZeroLogger) Debug(msg string, fields ...Field) {
	emit(l.zl.Debug(), msg, fields)
}

// WithFields returns a new Logger with additional default
// fields. The returned logger shares the underlying writer and
// does not close it.
func (l *ZeroLogger) WithFields(fields ...Field) Logger {
	ctx := l.zl.With()
	for _, f := range fields {
		ctx = ctx.Interface(f.Key, f.Value)
	}
	return &ZeroLogger{zl: ctx.Logger()}
}

// Close closes the log file, if the logger owns one.
func (l *ZeroLogger) Close() error {
	if l.closer == nil {
		return nil
	}
	err := l.closer.Close()
	l.closer = nil
	return err
}

// emit is a no-op for disabled levels: zerolog returns a nil
// event and every method on it does nothing.
func emit(e *zerolog.Event, msg string, fields []Field) {
	if e == nil {
		return
	}
	for _, f := range fields {
		switch v := f.Value.(type) {
		case error:
			e = e.AnErr(f.Key, v)
		case time.Duration:
			e = e.Dur(f.Key, v)
		default:
			e = e.Interface(f.Key, v)
		}
	}
	e.Msg(msg)
}

// SetupLogging creates a JSON logger writing to expect.log in
// the given logs directory.
func SetupLogging(
	logsDir string,
	verbose bool,
) (*ZeroLogger, error) {
	return NewJSONLogger(LoggerConfig{
		OutputPath: filepath.Join(logsDir, "expect.log"),
		Level:      LevelInfo,
		Verbose:    verbose,
	})
}
