package synclog

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/samber/lo"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

// TimeLayout is the timestamp written in front of every line.
const TimeLayout = "2006-01-02T15:04:05.000Z07:00"

// Log is the append-only sync log. Every line is `[<timestamp>] <message>`
// and is mirrored to the application logger.
type Log struct {
	path string
	file *os.File
	sink *zap.Logger

	logger *zap.Logger
}

func New(config Config, logger *zap.Logger) (*Log, error) {
	if err := os.MkdirAll(filepath.Dir(config.Path), 0o750); err != nil {
		return nil, fmt.Errorf("%w: %w", ErrOpen, err)
	}

	file, err := os.OpenFile(config.Path, os.O_CREATE|os.O_APPEND|os.O_WRONLY, 0o640)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrOpen, err)
	}

	core := zapcore.NewCore(
		zapcore.NewConsoleEncoder(zapcore.EncoderConfig{
			TimeKey:          "time",
			MessageKey:       "message",
			LineEnding:       "\n",
			EncodeTime:       encodeTime,
			ConsoleSeparator: " ",
		}),
		zapcore.Lock(file),
		zapcore.InfoLevel,
	)

	return &Log{
		path: config.Path,
		file: file,
		sink: zap.New(core),

		logger: logger,
	}, nil
}

func encodeTime(t time.Time, enc zapcore.PrimitiveArrayEncoder) {
	enc.AppendString("[" + t.UTC().Format(TimeLayout) + "]")
}

// Path returns the location of the log file.
func (l *Log) Path() string {
	return l.path
}

// Append writes one line. Line breaks in message are folded so every entry
// keeps its timestamp prefix. Fields only reach the application logger.
func (l *Log) Append(message string, fields ...zap.Field) {
	message = singleLine(message)

	l.sink.Info(message)
	l.logger.Info(message, fields...)
}

//nolint:gochecknoglobals //stateless replacer
var lineBreaks = strings.NewReplacer("\r\n", lineBreakSeparator, "\n", lineBreakSeparator, "\r", lineBreakSeparator)

const lineBreakSeparator = " | "

func singleLine(message string) string {
	return lineBreaks.Replace(strings.TrimSpace(message))
}

// Appendf is Append with a formatted message.
func (l *Log) Appendf(format string, args ...any) {
	l.Append(fmt.Sprintf(format, args...))
}

// Read returns the whole log. A missing file reads as empty.
func (l *Log) Read() (string, error) {
	if err := l.sink.Sync(); err != nil {
		l.logger.Warn("failed to flush sync log", zap.Error(err))
	}

	data, err := os.ReadFile(l.path)
	if errors.Is(err, fs.ErrNotExist) {
		return "", nil
	}
	if err != nil {
		return "", fmt.Errorf("%w: %w", ErrRead, err)
	}

	return string(data), nil
}

// Tail returns the last n lines, or every line when n is not positive.
func (l *Log) Tail(n int) ([]string, error) {
	content, err := l.Read()
	if err != nil {
		return nil, err
	}

	lines := lo.Compact(strings.Split(content, "\n"))
	if n <= 0 || n >= len(lines) {
		return lines, nil
	}

	return lines[len(lines)-n:], nil
}

func (l *Log) Close() error {
	_ = l.sink.Sync()

	if err := l.file.Close(); err != nil {
		return fmt.Errorf("%w: %w", ErrWrite, err)
	}

	return nil
}
