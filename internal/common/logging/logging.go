// Package logging создает логгеры сервисов и передает их через context.
package logging

import (
	"context"
	"io"
	"os"

	"github.com/charmbracelet/log"
)

// New создает логгер с префиксом сервиса. Неизвестный уровень трактуется как info.
func New(w io.Writer, prefix, level string) *log.Logger {
	lvl, err := log.ParseLevel(level)
	if err != nil {
		lvl = log.InfoLevel
	}
	if w == nil {
		w = os.Stderr
	}
	return log.NewWithOptions(w, log.Options{
		ReportTimestamp: true,
		TimeFormat:      "15:04:05.00",
		Prefix:          prefix,
		Level:           lvl,
	})
}

type ctxKey int

const loggerKey ctxKey = 0

// WithLogger кладет логгер в контекст.
func WithLogger(ctx context.Context, l *log.Logger) context.Context {
	return context.WithValue(ctx, loggerKey, l)
}

// FromContext достает логгер из контекста, по умолчанию log.Default().
func FromContext(ctx context.Context) *log.Logger {
	if l, ok := ctx.Value(loggerKey).(*log.Logger); ok {
		return l
	}
	return log.Default()
}
