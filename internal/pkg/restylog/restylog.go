// Package restylog routes resty's internal log lines through slog.
package restylog

import (
	"context"
	"fmt"
	"log/slog"
	"strings"

	"github.com/go-resty/resty/v2"
)

// Logger implements resty.Logger on top of a *slog.Logger.
type Logger struct {
	logger *slog.Logger
}

var _ resty.Logger = Logger{}

// New wraps logger.
func New(logger *slog.Logger) Logger {
	return Logger{logger: logger}
}

func (l Logger) Errorf(format string, v ...any) {
	l.log(slog.LevelError, format, v...)
}

func (l Logger) Warnf(format string, v ...any) {
	l.log(slog.LevelWarn, format, v...)
}

func (l Logger) Debugf(format string, v ...any) {
	l.log(slog.LevelDebug, format, v...)
}

func (l Logger) log(level slog.Level, format string, v ...any) {
	ctx := context.Background()
	if !l.logger.Enabled(ctx, level) {
		return
	}
	l.logger.Log(ctx, level, strings.TrimSpace(fmt.Sprintf(format, v...)), "source", "resty")
}
