package badgerfx

import (
	"fmt"
	"strings"

	"github.com/dgraph-io/badger/v4"
	"go.uber.org/zap"
)

type zapLogger struct {
	logger *zap.Logger
}

func newLogger(l *zap.Logger) *zapLogger {
	return &zapLogger{
		logger: l.WithOptions(zap.AddCallerSkip(1)),
	}
}

// badger terminates most of its messages with a newline.
func format(template string, a ...any) string {
	return strings.TrimRight(fmt.Sprintf(template, a...), "\n")
}

// Debugf implements badger.Logger.
func (l *zapLogger) Debugf(template string, a ...any) {
	l.logger.Debug(format(template, a...))
}

// Errorf implements badger.Logger.
func (l *zapLogger) Errorf(template string, a ...any) {
	l.logger.Error(format(template, a...))
}

// Infof implements badger.Logger.
func (l *zapLogger) Infof(template string, a ...any) {
	l.logger.Info(format(template, a...))
}

// Warningf implements badger.Logger.
func (l *zapLogger) Warningf(template string, a ...any) {
	l.logger.Warn(format(template, a...))
}

var _ badger.Logger = (*zapLogger)(nil)
