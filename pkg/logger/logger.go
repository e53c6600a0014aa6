package logger

import (
	"io"
	"os"
	"sync"
	"time"

	"github.com/rs/zerolog"
	"gopkg.in/natefinch/lumberjack.v2"
)

var (
	logger zerolog.Logger
	once   sync.Once
)

type Option func(*config)

type config struct {
	fileName string
	console  bool
	level    zerolog.Level
}

func WithFile(fileName string) Option {
	return func(c *config) { c.fileName = fileName }
}

func WithConsole() Option {
	return func(c *config) { c.console = true }
}

func WithLevel(level zerolog.Level) Option {
	return func(c *config) { c.level = level }
}

// Init configures the process-wide logger. Safe to call once; later calls
// are no-ops.
func Init(serviceName string, opts ...Option) {
	once.Do(func() {
		zerolog.TimeFieldFormat = time.RFC3339Nano
		c := &config{level: zerolog.InfoLevel}
		for _, opt := range opts {
			opt(c)
		}

		writers := make([]io.Writer, 0, 2)
		if c.console {
			writers = append(writers, zerolog.ConsoleWriter{
				Out:        os.Stdout,
				TimeFormat: time.RFC3339,
			})
		}
		if c.fileName != "" {
			writers = append(writers, &lumberjack.Logger{
				Filename:   c.fileName,
				MaxSize:    5,
				MaxBackups: 10,
				MaxAge:     14,
				Compress:   true,
			})
		}
		if len(writers) == 0 {
			writers = append(writers, os.Stdout)
		}

		logger = zerolog.New(zerolog.MultiLevelWriter(writers...)).
			Level(c.level).
			With().
			Timestamp().
			Str("service", serviceName).
			Logger()
	})
}

func Get() zerolog.Logger {
	return logger
}
