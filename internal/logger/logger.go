// Package logger hands out component-tagged leveled loggers that share one
// output and level.
package logger

import (
	"io"
	"os"
	"strings"
	"sync"

	"github.com/labstack/gommon/log"
)

const header = "${time_rfc3339} ${level} [${prefix}]"

var mu sync.Mutex

var (
	level   = log.INFO
	out     = io.Writer(os.Stderr)
	loggers = map[string]*log.Logger{}
)

// For returns the logger for component, creating it on first use.
func For(component string) *log.Logger {
	mu.Lock()
	defer mu.Unlock()

	if l, ok := loggers[component]; ok {
		return l
	}
	l := log.New(component)
	l.SetHeader(header)
	l.DisableColor()
	l.SetLevel(level)
	l.SetOutput(out)
	loggers[component] = l
	return l
}

// Configure applies lvl and w to every existing and future logger.
func Configure(lvl log.Lvl, w io.Writer) {
	mu.Lock()
	defer mu.Unlock()

	level = lvl
	if w != nil {
		out = w
	}
	for _, l := range loggers {
		l.SetLevel(level)
		l.SetOutput(out)
	}
}

// ParseLevel maps debug|info|warn|error|off to a level. Unknown names map to info.
func ParseLevel(s string) log.Lvl {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "debug":
		return log.DEBUG
	case "warn", "warning":
		return log.WARN
	case "error":
		return log.ERROR
	case "off":
		return log.OFF
	default:
		return log.INFO
	}
}

// Badger adapts a logger to the interface badger expects.
type Badger struct {
	*log.Logger
}

func (b Badger) Warningf(format string, args ...interface{}) {
	b.Warnf(format, args...)
}
