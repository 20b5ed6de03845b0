// Package state defines shared program state.
package state

import (
	"context"
	"io"
	"os"
	"time"

	"go.uber.org/zap"

	"ubelt/config"
	"ubelt/units"
)

type envKey struct{}

// LocalEnv keeps everything program needs in a single place.
type LocalEnv struct {
	Cfg *config.Config
	Rpt *config.Report
	Log *zap.Logger

	// Out receives command results, logging never goes there.
	Out io.Writer

	start         time.Time
	restoreStdLog func()
}

func newLocalEnv() *LocalEnv {
	return &LocalEnv{
		Out:   os.Stdout,
		start: time.Now(),
	}
}

func EnvFromContext(ctx context.Context) *LocalEnv {
	if env, ok := ctx.Value(envKey{}).(*LocalEnv); ok {
		return env
	}
	// this should never happen
	panic("localenv not found in context")
}

func ContextWithEnv(ctx context.Context) context.Context {
	return context.WithValue(ctx, envKey{}, newLocalEnv())
}

func (e *LocalEnv) Uptime() time.Duration {
	return time.Since(e.start)
}

// UnitsContext returns conversion context from configuration, browser
// defaults are used when configuration is not loaded.
func (e *LocalEnv) UnitsContext() units.Context {
	if e.Cfg == nil {
		return units.DefaultContext
	}
	return units.Context{
		BaseFontSize:   e.Cfg.Units.BaseFontSize,
		ViewportWidth:  e.Cfg.Units.ViewportWidth,
		ViewportHeight: e.Cfg.Units.ViewportHeight,
	}
}

// Precision returns number of decimal digits for displayed values.
func (e *LocalEnv) Precision() int {
	if e.Cfg == nil {
		return units.DefaultPrecision
	}
	return e.Cfg.Units.Precision
}

func (e *LocalEnv) RedirectStdLog() {
	if e.Log == nil {
		return
	}
	e.restoreStdLog = zap.RedirectStdLog(e.Log)
}

func (e *LocalEnv) RestoreStdLog() {
	if e.Log != nil {
		_ = e.Log.Sync()
	}
	if e.restoreStdLog != nil {
		e.restoreStdLog()
		e.restoreStdLog = nil
	}
}
