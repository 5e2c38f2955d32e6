// Package logging builds the console zap.Logger used across css-compare.
//
// The engine has no persisted state and no file output (spec §6), so this
// is a deliberately small slice of the teacher's logging setup
// (config/logger.go in the originating ebook converter): console-only,
// no file sink, no debug report bundle.
package logging

import (
	"os"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"golang.org/x/term"
)

// Level selects how verbose the console logger is.
type Level string

const (
	LevelNone   Level = "none"
	LevelNormal Level = "normal"
	LevelDebug  Level = "debug"
)

// Prepare builds the standard zap.Logger for the given level, splitting
// stdout (debug/info/warn) from stderr (error and above) the way the teacher's
// console logger does, with color enabled only when the destination is a
// terminal.
func Prepare(level Level) *zap.Logger {
	ec := zap.NewDevelopmentEncoderConfig()
	ec.EncodeCaller = nil
	ec.TimeKey = zapcore.OmitKey
	if enableColor(os.Stdout) {
		ec.EncodeLevel = zapcore.CapitalColorLevelEncoder
	} else {
		ec.EncodeLevel = zapcore.CapitalLevelEncoder
	}
	encoder := zapcore.NewConsoleEncoder(ec)

	highPriority := zap.LevelEnablerFunc(func(lvl zapcore.Level) bool {
		return lvl >= zapcore.ErrorLevel
	})

	var lowCore, highCore zapcore.Core
	switch level {
	case LevelDebug:
		lowCore = zapcore.NewCore(encoder, zapcore.Lock(os.Stdout), zap.LevelEnablerFunc(func(lvl zapcore.Level) bool {
			return zapcore.DebugLevel <= lvl && lvl < zapcore.ErrorLevel
		}))
		highCore = zapcore.NewCore(encoder, zapcore.Lock(os.Stderr), highPriority)
	case LevelNormal:
		lowCore = zapcore.NewCore(encoder, zapcore.Lock(os.Stdout), zap.LevelEnablerFunc(func(lvl zapcore.Level) bool {
			return zapcore.InfoLevel <= lvl && lvl < zapcore.ErrorLevel
		}))
		highCore = zapcore.NewCore(encoder, zapcore.Lock(os.Stderr), highPriority)
	default:
		lowCore = zapcore.NewNopCore()
		highCore = zapcore.NewNopCore()
	}

	return zap.New(zapcore.NewTee(lowCore, highCore)).Named("csscmp")
}

// enableColor reports whether stream is a terminal that can render ANSI
// color codes, the way the teacher's config.EnableColorOutput does.
func enableColor(stream *os.File) bool {
	return term.IsTerminal(int(stream.Fd()))
}
