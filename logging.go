//go:build !ios && !android && (amd64 || arm64)

package reapgo

import (
	"strings"
	"sync/atomic"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"

	"github.com/obinnaokechukwu/reapgo/raw"
	"github.com/obinnaokechukwu/reapgo/thread"
)

var logger atomic.Pointer[zap.Logger]

// Logger returns the package logger. It uses a no-op logger by default.
func Logger() *zap.Logger {
	if l := logger.Load(); l != nil {
		return l
	}
	return zap.NewNop()
}

// SetLogger replaces the package logger used by new sessions and applies
// it to the loaded session, if any.
func SetLogger(l *zap.Logger) {
	if l == nil {
		l = zap.NewNop()
	}
	logger.Store(l)
	if s, err := Get(); err == nil {
		s.SetLogger(l)
	}
}

// consoleCore writes log entries to the host's console window.
type consoleCore struct {
	zapcore.LevelEnabler
	enc   zapcore.Encoder
	fns   raw.Functions
	guard *thread.Guard
}

// NewConsoleCore returns a core printing to the host console. The console
// may only be written from the main thread; entries logged elsewhere are
// dropped.
//
//	core := zapcore.NewTee(fileCore, reapgo.NewConsoleCore(s, zapcore.WarnLevel))
//	s.SetLogger(zap.New(core))
func NewConsoleCore(s *Session, enab zapcore.LevelEnabler) zapcore.Core {
	cfg := zap.NewDevelopmentEncoderConfig()
	cfg.TimeKey = ""
	cfg.CallerKey = ""
	return &consoleCore{
		LevelEnabler: enab,
		enc:          zapcore.NewConsoleEncoder(cfg),
		fns:          s.fns,
		guard:        s.guard,
	}
}

func (c *consoleCore) With(fields []zapcore.Field) zapcore.Core {
	clone := *c
	clone.enc = c.enc.Clone()
	for _, f := range fields {
		f.AddTo(clone.enc)
	}
	return &clone
}

func (c *consoleCore) Check(ent zapcore.Entry, ce *zapcore.CheckedEntry) *zapcore.CheckedEntry {
	if c.Enabled(ent.Level) {
		return ce.AddCore(ent, c)
	}
	return ce
}

func (c *consoleCore) Write(ent zapcore.Entry, fields []zapcore.Field) error {
	if !c.guard.OnMain() {
		return nil
	}
	buf, err := c.enc.EncodeEntry(ent, fields)
	if err != nil {
		return err
	}
	msg := buf.String()
	buf.Free()
	if !strings.HasSuffix(msg, "\n") {
		msg += "\n"
	}
	c.fns.ShowConsoleMsg(msg)
	return nil
}

func (c *consoleCore) Sync() error { return nil }
