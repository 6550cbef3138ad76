// Where: internal/logging/zap.go
// What: zap logger construction from a preset name and level.
// Why: Give every command the same diagnostic logger on stderr.
package logging

import (
	"fmt"
	"io"
	"time"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

// Presets lists the accepted preset names, in help order.
var Presets = []string{"console", "console-nocolor", "console-notime", "systemd", "production", "development"}

// NewZapLogger returns a new [*zap.Logger] writing to w with the given preset and level.
//
// The available presets are:
//
//   - "console" (default): colored console output with timestamps.
//   - "console-nocolor": Same as "console", but without color.
//   - "console-notime": Same as "console", but without timestamps.
//   - "systemd": Same as "console", but without color and timestamps.
//   - "production": zap's JSON encoder with production field names.
//   - "development": zap's development console encoder with caller info.
func NewZapLogger(w io.Writer, preset string, level zapcore.Level) (*zap.Logger, error) {
	switch preset {
	case "console", "":
		return NewConsoleZapLogger(w, level, false, false), nil
	case "console-nocolor":
		return NewConsoleZapLogger(w, level, true, false), nil
	case "console-notime":
		return NewConsoleZapLogger(w, level, false, true), nil
	case "systemd":
		return NewConsoleZapLogger(w, level, true, true), nil
	case "production":
		enc := zapcore.NewJSONEncoder(zap.NewProductionEncoderConfig())
		return zap.New(zapcore.NewCore(enc, zapcore.AddSync(w), level)), nil
	case "development":
		enc := zapcore.NewConsoleEncoder(zap.NewDevelopmentEncoderConfig())
		return zap.New(zapcore.NewCore(enc, zapcore.AddSync(w), level), zap.AddCaller()), nil
	}
	return nil, fmt.Errorf("unknown log preset %q", preset)
}

// ParseLevel parses a level name such as "debug" or "warn".
func ParseLevel(name string) (zapcore.Level, error) {
	level, err := zapcore.ParseLevel(name)
	if err != nil {
		return zapcore.InvalidLevel, fmt.Errorf("parse log level: %w", err)
	}
	return level, nil
}

// NewConsoleZapLogger creates a console [*zap.Logger] with terse field names.
func NewConsoleZapLogger(w io.Writer, level zapcore.Level, noColor, noTime bool) *zap.Logger {
	enc := zapcore.NewConsoleEncoder(NewConsoleEncoderConfig(noColor, noTime))
	core := zapcore.NewCore(enc, zapcore.Lock(zapcore.AddSync(w)), level)
	var opts []zap.Option
	if noTime {
		opts = append(opts, zap.WithClock(fakeClock{}))
	}
	return zap.New(core, opts...)
}

// NewConsoleEncoderConfig returns the [zapcore.EncoderConfig] used by the console presets.
func NewConsoleEncoderConfig(noColor, noTime bool) zapcore.EncoderConfig {
	ec := zapcore.EncoderConfig{
		TimeKey:          "T",
		LevelKey:         "L",
		NameKey:          "N",
		CallerKey:        "C",
		FunctionKey:      zapcore.OmitKey,
		MessageKey:       "M",
		StacktraceKey:    "S",
		LineEnding:       zapcore.DefaultLineEnding,
		EncodeLevel:      zapcore.CapitalColorLevelEncoder,
		EncodeTime:       zapcore.ISO8601TimeEncoder,
		EncodeDuration:   zapcore.StringDurationEncoder,
		EncodeCaller:     zapcore.ShortCallerEncoder,
		ConsoleSeparator: " ",
	}

	if noColor {
		ec.EncodeLevel = zapcore.CapitalLevelEncoder
	}

	if noTime {
		ec.TimeKey = zapcore.OmitKey
		ec.EncodeTime = nil
	}

	return ec
}

// fakeClock always returns the zero time.
type fakeClock struct{}

func (fakeClock) Now() time.Time {
	return time.Time{}
}

func (fakeClock) NewTicker(d time.Duration) *time.Ticker {
	return time.NewTicker(d)
}
