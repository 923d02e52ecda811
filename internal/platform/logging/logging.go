// Package logging builds the shared application logger.
package logging

import (
	"fmt"
	"os"
	"strings"

	"github.com/hashicorp/go-hclog"
)

// New returns a named hclog logger at the given level. Unknown levels fall
// back to info.
func New(name, level string) hclog.Logger {
	return hclog.New(&hclog.LoggerOptions{
		Name:   name,
		Level:  parseLevel(level),
		Output: os.Stderr,
	})
}

func parseLevel(level string) hclog.Level {
	switch strings.ToLower(strings.TrimSpace(level)) {
	case "trace":
		return hclog.Trace
	case "debug":
		return hclog.Debug
	case "warn":
		return hclog.Warn
	case "error":
		return hclog.Error
	default:
		return hclog.Info
	}
}

// RestyAdapter forwards resty's log calls to an hclog.Logger.
type RestyAdapter struct {
	logger hclog.Logger
}

// NewRestyAdapter wraps an hclog.Logger for use as a resty logger.
func NewRestyAdapter(logger hclog.Logger) *RestyAdapter {
	return &RestyAdapter{logger: logger}
}

// Errorf logs a message at error level.
func (a *RestyAdapter) Errorf(format string, v ...interface{}) {
	a.logger.Error(fmt.Sprintf(format, v...))
}

// Warnf logs a message at warning level.
func (a *RestyAdapter) Warnf(format string, v ...interface{}) {
	a.logger.Warn(fmt.Sprintf(format, v...))
}

// Debugf logs a message at debug level.
func (a *RestyAdapter) Debugf(format string, v ...interface{}) {
	a.logger.Debug(fmt.Sprintf(format, v...))
}
