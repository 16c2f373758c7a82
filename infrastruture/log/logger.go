// Package log provides the component loggers used across the service, backed by logrus.
package log

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/beka-birhanu/vinom-agents/config"
	"github.com/sirupsen/logrus"
)

var ErrEmptyPrefix = errors.New("logger prefix is required")

// Logger writes leveled messages tagged with a colored component prefix, e.g.
// "[SIMULATION] [INFO] session started".
type Logger struct {
	entry *logrus.Logger
}

// New creates a logger for the named component writing to w.
func New(prefix string, color string, w io.Writer) (*Logger, error) {
	if strings.TrimSpace(prefix) == "" {
		return nil, ErrEmptyPrefix
	}

	l := logrus.New()
	l.SetOutput(w)
	l.SetFormatter(&prefixFormatter{prefix: prefix, color: color})
	l.SetLevel(logrus.InfoLevel)
	return &Logger{entry: l}, nil
}

// SetLevel parses and applies a minimum level such as "debug" or "warning".
func (l *Logger) SetLevel(level string) error {
	lvl, err := logrus.ParseLevel(level)
	if err != nil {
		return err
	}
	l.entry.SetLevel(lvl)
	return nil
}

// Info logs an informational message.
func (l *Logger) Info(msg string) { l.entry.Info(msg) }

// Warning logs a recoverable problem.
func (l *Logger) Warning(msg string) { l.entry.Warn(msg) }

// Error logs a failure.
func (l *Logger) Error(msg string) { l.entry.Error(msg) }

// Debug logs diagnostics that are hidden unless the level is debug.
func (l *Logger) Debug(msg string) { l.entry.Debug(msg) }

type prefixFormatter struct {
	prefix string
	color  string
}

func (f *prefixFormatter) Format(e *logrus.Entry) ([]byte, error) {
	var b bytes.Buffer
	fmt.Fprintf(&b, "%s %s[%s]%s %s[%s]%s %s\n",
		e.Time.Format("2006/01/02 15:04:05"),
		f.color, f.prefix, config.ColorReset,
		levelColor(e.Level), levelName(e.Level), config.LogColorReset,
		e.Message,
	)
	return b.Bytes(), nil
}

func levelName(level logrus.Level) string {
	if level == logrus.WarnLevel {
		return "WARNING"
	}
	return strings.ToUpper(level.String())
}

func levelColor(level logrus.Level) string {
	switch level {
	case logrus.DebugLevel, logrus.TraceLevel:
		return config.LogDebugColor
	case logrus.WarnLevel:
		return config.LogWarningColor
	case logrus.InfoLevel:
		return config.LogInfoColor
	default:
		return config.LogErrorColor
	}
}
