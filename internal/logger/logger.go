package logger

import (
	"fmt"
	"os"
	"path/filepath"
	"sync"
	"time"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

// DefaultPath is the log file, relative to the working directory.
const DefaultPath = "logs/game.log"

// maxLines bounds the in-memory history shown by the HUD.
const maxLines = 64

// Logger writes structured entries to stderr and to a JSON log file, and
// keeps the most recent messages in memory.
type Logger struct {
	zap *zap.Logger

	mu    *sync.Mutex
	lines *[]string
}

// New builds a logger at level ("debug", "info", "warn", "error") writing
// console output to stderr and JSON to path. An empty path disables the file.
func New(path, level string) (*Logger, error) {
	lvl, err := zapcore.ParseLevel(level)
	if err != nil {
		return nil, fmt.Errorf("log level: %w", err)
	}
	enabled := zap.NewAtomicLevelAt(lvl)

	consoleCfg := zap.NewDevelopmentEncoderConfig()
	consoleCfg.EncodeTime = zapcore.TimeEncoderOfLayout("15:04:05.000")
	cores := []zapcore.Core{
		zapcore.NewCore(zapcore.NewConsoleEncoder(consoleCfg), zapcore.Lock(os.Stderr), enabled),
	}

	if path != "" {
		if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
			return nil, err
		}
		f, err := os.OpenFile(path, os.O_APPEND|os.O_CREATE|os.O_WRONLY, 0644)
		if err != nil {
			return nil, err
		}
		cores = append(cores, zapcore.NewCore(
			zapcore.NewJSONEncoder(zap.NewProductionEncoderConfig()),
			zapcore.AddSync(f),
			enabled,
		))
	}
	return wrap(zap.New(zapcore.NewTee(cores...))), nil
}

// NewNop returns a logger that discards output but still records lines.
func NewNop() *Logger {
	return wrap(zap.NewNop())
}

func wrap(z *zap.Logger) *Logger {
	lines := make([]string, 0, maxLines)
	return &Logger{zap: z, mu: &sync.Mutex{}, lines: &lines}
}

// With returns a child logger that adds fields to every entry. It shares
// the line history with its parent.
func (l *Logger) With(fields ...zap.Field) *Logger {
	return &Logger{zap: l.zap.With(fields...), mu: l.mu, lines: l.lines}
}

func (l *Logger) Debug(msg string, fields ...zap.Field) { l.zap.Debug(msg, fields...) }

func (l *Logger) Info(msg string, fields ...zap.Field) {
	l.record(msg)
	l.zap.Info(msg, fields...)
}

func (l *Logger) Warn(msg string, fields ...zap.Field) {
	l.record(msg)
	l.zap.Warn(msg, fields...)
}

func (l *Logger) Error(msg string, fields ...zap.Field) {
	l.record(msg)
	l.zap.Error(msg, fields...)
}

// Sync flushes buffered entries.
func (l *Logger) Sync() error {
	return l.zap.Sync()
}

func (l *Logger) record(msg string) {
	stamped := "[" + time.Now().Format("15:04:05") + "] " + msg
	l.mu.Lock()
	defer l.mu.Unlock()
	if len(*l.lines) == maxLines {
		copy(*l.lines, (*l.lines)[1:])
		*l.lines = (*l.lines)[:maxLines-1]
	}
	*l.lines = append(*l.lines, stamped)
}

// Lines returns a copy of the recent info-or-higher messages, oldest first.
func (l *Logger) Lines() []string {
	l.mu.Lock()
	defer l.mu.Unlock()
	out := make([]string, len(*l.lines))
	copy(out, *l.lines)
	return out
}
