// Package logging centralizes construction of the *zap.SugaredLogger every
// table variant accepts via its WithLogger option.
package logging

import "go.uber.org/zap"

// New builds a zap development logger if dev is true and a production logger
// otherwise, or a no-op logger if that config fails to build (falls back
// rather than panicking,
// since this is an optional ambient concern, not load-bearing for the
// dictionary's own correctness).
func New(dev bool) *zap.SugaredLogger {
	var (
		l   *zap.Logger
		err error
	)
	if dev {
		l, err = zap.NewDevelopment()
	} else {
		l, err = zap.NewProduction()
	}
	if err != nil {
		return zap.NewNop().Sugar()
	}
	return l.Sugar()
}
