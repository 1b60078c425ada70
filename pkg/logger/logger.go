package logger

import (
	"os"
	"strings"

	"github.com/sirupsen/logrus"
)

type Logger struct {
	info  *logrus.Entry
	error *logrus.Entry
	warn  *logrus.Entry
	debug *logrus.Entry
	base  *logrus.Logger
}

func New() *Logger {
	base := logrus.New()
	base.SetOutput(os.Stdout)
	base.SetFormatter(&logrus.TextFormatter{FullTimestamp: true})
	base.SetLevel(parseLevel(os.Getenv("LOG_LEVEL")))
	if os.Getenv("GIN_MODE") == "release" {
		base.SetFormatter(&logrus.JSONFormatter{})
	}
	return fromEntry(base, logrus.NewEntry(base))
}

func fromEntry(base *logrus.Logger, entry *logrus.Entry) *Logger {
	return &Logger{
		info:  entry.WithField("severity", "info"),
		error: entry.WithField("severity", "error"),
		warn:  entry.WithField("severity", "warn"),
		debug: entry.WithField("severity", "debug"),
		base:  base,
	}
}

// With returns a child logger that attaches key=value to every line.
func (l *Logger) With(key string, value interface{}) *Logger {
	return fromEntry(l.base, l.info.WithField(key, value))
}

func (l *Logger) Info(format string, v ...interface{}) {
	l.info.Infof(format, v...)
}

func (l *Logger) Error(format string, v ...interface{}) {
	l.error.Errorf(format, v...)
}

func (l *Logger) Warn(format string, v ...interface{}) {
	l.warn.Warnf(format, v...)
}

func (l *Logger) Debug(format string, v ...interface{}) {
	l.debug.Debugf(format, v...)
}

// Logrus exposes the underlying logger for libraries that accept one.
func (l *Logger) Logrus() *logrus.Logger {
	return l.base
}

func parseLevel(s string) logrus.Level {
	level, err := logrus.ParseLevel(strings.ToLower(strings.TrimSpace(s)))
	if err != nil {
		return logrus.InfoLevel
	}
	return level
}
