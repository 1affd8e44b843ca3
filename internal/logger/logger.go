// Package logger builds the leveled console logger shared by pricewatch.
package logger

import (
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/phuslu/log"
)

const timeFormat = "2006-01-02 15:04:05"

// Options configures the logger.
type Options struct {
	Level  string    // trace, debug, info, warn, error (default: info)
	Color  bool      // Colorize level names
	Writer io.Writer // Output destination (default: stdout)
}

// Levels lists the accepted level names.
var Levels = []string{"trace", "debug", "info", "warn", "error"}

// ValidLevel reports whether name is an accepted level.
func ValidLevel(name string) bool {
	name = strings.ToLower(strings.TrimSpace(name))
	for _, l := range Levels {
		if l == name {
			return true
		}
	}
	return false
}

// New creates a console logger with the given options.
func New(opts Options) *log.Logger {
	level := strings.ToLower(strings.TrimSpace(opts.Level))
	if !ValidLevel(level) {
		level = "info"
	}

	output := opts.Writer
	if output == nil {
		output = os.Stdout
	}

	return &log.Logger{
		Level:      log.ParseLevel(level),
		TimeFormat: timeFormat,
		Writer: &log.ConsoleWriter{
			ColorOutput:    opts.Color,
			EndWithMessage: true,
			Writer:         output,
		},
	}
}

// Discard returns a logger that drops everything; used by tests.
func Discard() *log.Logger {
	return &log.Logger{
		Level:  log.PanicLevel,
		Writer: &log.IOWriter{Writer: io.Discard},
	}
}

// CronAdapter exposes a *log.Logger through the cron.Logger interface.
type CronAdapter struct {
	Logger *log.Logger
}

// Info logs routine scheduler messages at debug level.
func (a CronAdapter) Info(msg string, keysAndValues ...interface{}) {
	withPairs(a.Logger.Debug(), keysAndValues).Msg(msg)
}

// Error logs scheduler errors.
func (a CronAdapter) Error(err error, msg string, keysAndValues ...interface{}) {
	withPairs(a.Logger.Error().Err(err), keysAndValues).Msg(msg)
}

func withPairs(e *log.Entry, kv []interface{}) *log.Entry {
	for i := 0; i+1 < len(kv); i += 2 {
		e = e.Str(fmt.Sprint(kv[i]), fmt.Sprint(kv[i+1]))
	}
	return e
}
