package log

import (
	"context"
	"os"
	"sync"

	"github.com/sirupsen/logrus"
)

type ctxKey struct{}

var (
	base     *logrus.Logger
	baseOnce sync.Once
)

func baseLogger() *logrus.Logger {
	baseOnce.Do(func() {
		base = logrus.New()
		base.SetOutput(os.Stdout)
		base.SetFormatter(&logrus.TextFormatter{FullTimestamp: true})
	})
	return base
}

// GetLogger returns the logrus entry attached to ctx, or a fresh entry on the
// shared logger when none is attached.
func GetLogger(ctx context.Context) *logrus.Entry {
	if ctx != nil {
		if entry, ok := ctx.Value(ctxKey{}).(*logrus.Entry); ok {
			return entry
		}
	}
	return logrus.NewEntry(baseLogger())
}

// WithLogger attaches entry to ctx so downstream code picks up its fields.
func WithLogger(ctx context.Context, entry *logrus.Entry) context.Context {
	return context.WithValue(ctx, ctxKey{}, entry)
}
