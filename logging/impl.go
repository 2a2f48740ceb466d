package logging

import (
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

// impl filters a shared set of outputs through its own level, so subloggers can be quieter or
// louder than their parent without touching it.
type impl struct {
	*zap.SugaredLogger
	level zap.AtomicLevel
	core  zapcore.Core
}

func newImpl(name string, level zap.AtomicLevel, core zapcore.Core) *impl {
	leveled := &leveledCore{Core: core, level: level}
	return &impl{
		SugaredLogger: zap.New(leveled, zap.AddCaller()).Named(name).Sugar(),
		level:         level,
		core:          core,
	}
}

func (imp *impl) Sublogger(subname string) Logger {
	name := subname
	if parent := imp.Desugar().Name(); parent != "" {
		name = parent + "." + subname
	}
	return newImpl(name, zap.NewAtomicLevelAt(imp.level.Level()), imp.core)
}

func (imp *impl) SetLevel(level zapcore.Level) {
	imp.level.SetLevel(level)
}

func (imp *impl) Level() zapcore.Level {
	return imp.level.Level()
}

type leveledCore struct {
	zapcore.Core
	level zap.AtomicLevel
}

func (c *leveledCore) Enabled(level zapcore.Level) bool {
	return c.level.Enabled(level) && c.Core.Enabled(level)
}

func (c *leveledCore) With(fields []zapcore.Field) zapcore.Core {
	return &leveledCore{Core: c.Core.With(fields), level: c.level}
}

func (c *leveledCore) Check(entry zapcore.Entry, checked *zapcore.CheckedEntry) *zapcore.CheckedEntry {
	if c.Enabled(entry.Level) {
		return checked.AddCore(entry, c)
	}
	return checked
}
