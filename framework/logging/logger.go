package logging

import (
	"io"
	"os"
	"strings"
	"sync"

	"github.com/rs/zerolog"

	"github.com/km-arc/go-foundation/framework/config"
)

// Logger is the framework's structured logger, a thin wrapper over
// zerolog configured from LOG_LEVEL / LOG_PRETTY.
type Logger struct {
	zl zerolog.Logger
}

// New builds a Logger from the application config: pretty console output
// when cfg.Log.Pretty, JSON lines otherwise.
func New(cfg *config.Config) *Logger {
	var w io.Writer = os.Stdout
	if cfg.Log.Pretty {
		w = zerolog.ConsoleWriter{Out: os.Stderr}
	}
	return NewWriter(w, cfg.Log.Level)
}

// NewWriter builds a Logger writing to w at the named level.
// Unknown level names fall back to "info".
func NewWriter(w io.Writer, level string) *Logger {
	lvl, err := zerolog.ParseLevel(strings.ToLower(level))
	if err != nil || lvl == zerolog.NoLevel {
		lvl = zerolog.InfoLevel
	}
	zl := zerolog.New(w).Level(lvl).With().Timestamp().Logger()
	return &Logger{zl: zl}
}

// WithField returns a child Logger with a permanent field attached.
func (l *Logger) WithField(key string, value any) *Logger {
	return &Logger{zl: l.zl.With().Interface(key, value).Logger()}
}

// Raw exposes the underlying zerolog.Logger.
func (l *Logger) Raw() zerolog.Logger { return l.zl }

func (l *Logger) Trace(msg string) { l.zl.Trace().Msg(msg) }
func (l *Logger) Debug(msg string) { l.zl.Debug().Msg(msg) }
func (l *Logger) Info(msg string)  { l.zl.Info().Msg(msg) }
func (l *Logger) Warn(msg string)  { l.zl.Warn().Msg(msg) }
func (l *Logger) Error(msg string) { l.zl.Error().Msg(msg) }

// Err logs msg at error level with err attached.
func (l *Logger) Err(err error, msg string) {
	l.zl.Error().Err(err).Msg(msg)
}

// ── ConsoleLogger ─────────────────────────────────────────────────────────────

// ConsoleLogger writes human-readable lines to stderr. The zero value is
// ready to use, so the container can construct it without arguments.
type ConsoleLogger struct {
	once sync.Once
	zl   *zerolog.Logger
}

func (l *ConsoleLogger) logger() *zerolog.Logger {
	l.once.Do(func() {
		zl := zerolog.New(zerolog.ConsoleWriter{Out: os.Stderr}).
			With().Timestamp().Logger()
		l.zl = &zl
	})
	return l.zl
}

func (l *ConsoleLogger) Debug(msg string) { l.logger().Debug().Msg(msg) }
func (l *ConsoleLogger) Info(msg string)  { l.logger().Info().Msg(msg) }
func (l *ConsoleLogger) Warn(msg string)  { l.logger().Warn().Msg(msg) }
func (l *ConsoleLogger) Error(msg string) { l.logger().Error().Msg(msg) }
