package salinity

import (
	"os"
	"sync"

	"github.com/charmbracelet/log"
)

var (
	logger = log.NewWithOptions(os.Stderr, log.Options{
		Prefix: "salinity",
		Level:  log.WarnLevel,
	})

	warnedMu sync.Mutex
	warned   = map[string]struct{}{}
)

// SetLogger replaces the package logger. Passing nil restores a default
// stderr logger.
func SetLogger(l *log.Logger) {
	if l == nil {
		l = log.NewWithOptions(os.Stderr, log.Options{Prefix: "salinity", Level: log.WarnLevel})
	}
	logger = l
}

// Logger returns the package logger.
func Logger() *log.Logger {
	return logger
}

// warnOnce logs msg at warn level the first time key is seen.
func warnOnce(key, msg string, keyvals ...any) {
	warnedMu.Lock()
	_, seen := warned[key]
	if !seen {
		warned[key] = struct{}{}
	}
	warnedMu.Unlock()
	if !seen {
		logger.Warn(msg, keyvals...)
	}
}
