package log

import (
	"io"
	"time"

	"github.com/rs/zerolog"
)

// Zerolog implements Logger on top of zerolog.
type Zerolog struct {
	logger zerolog.Logger
}

// NewZerolog wraps an existing zerolog.Logger.
func NewZerolog(logger zerolog.Logger) *Zerolog {
	return &Zerolog{logger: logger}
}

// NewConsole creates a human-readable zerolog logger writing to w at the
// given level. An unknown level falls back to info.
func NewConsole(w io.Writer, level string) *Zerolog {
	lvl, err := zerolog.ParseLevel(level)
	if err != nil || level == "" {
		lvl = zerolog.InfoLevel
	}
	out := zerolog.ConsoleWriter{Out: w, TimeFormat: time.RFC3339}
	return &Zerolog{logger: zerolog.New(out).Level(lvl).With().Timestamp().Logger()}
}

func (z *Zerolog) Debug(msg string, fields ...Field) { emit(z.logger.Debug(), msg, fields) }
func (z *Zerolog) Info(msg string, fields ...Field)  { emit(z.logger.Info(), msg, fields) }
func (z *Zerolog) Warn(msg string, fields ...Field)  { emit(z.logger.Warn(), msg, fields) }
func (z *Zerolog) Error(msg string, fields ...Field) { emit(z.logger.Error(), msg, fields) }

// Zerolog returns the underlying zerolog.Logger.
func (z *Zerolog) Zerolog() zerolog.Logger {
	return z.logger
}

func emit(event *zerolog.Event, msg string, fields []Field) {
	// Disabled levels return a nil event.
	if event == nil {
		return
	}
	for _, f := range fields {
		event = addField(event, f)
	}
	event.Msg(msg)
}

func addField(event *zerolog.Event, f Field) *zerolog.Event {
	switch v := f.Value.(type) {
	case string:
		return event.Str(f.Key, v)
	case int:
		return event.Int(f.Key, v)
	case int64:
		return event.Int64(f.Key, v)
	case uint64:
		return event.Uint64(f.Key, v)
	case float64:
		return event.Float64(f.Key, v)
	case bool:
		return event.Bool(f.Key, v)
	case time.Duration:
		return event.Dur(f.Key, v)
	case error:
		return event.AnErr(f.Key, v)
	default:
		return event.Interface(f.Key, v)
	}
}
