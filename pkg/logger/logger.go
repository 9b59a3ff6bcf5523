package logger

import (
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/sirupsen/logrus"
)

// Leveled logger facade used across the service.
// - package-level helpers so callers never carry a logger around
// - backed by logrus; Init(level) and SetFormat(format) configure it

var std = newStd()

func newStd() *logrus.Logger {
	l := logrus.New()
	l.SetOutput(os.Stdout)
	l.SetLevel(logrus.InfoLevel)
	l.SetFormatter(&logrus.TextFormatter{FullTimestamp: true, DisableColors: true})
	return l
}

// Init sets the global log level (case-insensitive: debug, info, warn, error, fatal).
// Unknown values fall back to info.
func Init(l string) {
	switch strings.ToLower(strings.TrimSpace(l)) {
	case "debug":
		std.SetLevel(logrus.DebugLevel)
	case "warn", "warning":
		std.SetLevel(logrus.WarnLevel)
	case "error":
		std.SetLevel(logrus.ErrorLevel)
	case "fatal":
		std.SetLevel(logrus.FatalLevel)
	default:
		std.SetLevel(logrus.InfoLevel)
	}
}

// SetFormat switches between "json" and the default text output.
func SetFormat(format string) {
	if strings.EqualFold(strings.TrimSpace(format), "json") {
		std.SetFormatter(&logrus.JSONFormatter{})
		return
	}
	std.SetFormatter(&logrus.TextFormatter{FullTimestamp: true, DisableColors: true})
}

// SetOutput redirects log output; tests use it to capture lines.
func SetOutput(w io.Writer) { std.SetOutput(w) }

// L exposes the underlying logger for structured fields.
func L() *logrus.Logger { return std }

// WithFields starts a structured entry.
func WithFields(f map[string]interface{}) *logrus.Entry { return std.WithFields(logrus.Fields(f)) }

func Debugf(format string, v ...interface{}) { std.Debugf(format, v...) }
func Infof(format string, v ...interface{})  { std.Infof(format, v...) }
func Warnf(format string, v ...interface{})  { std.Warnf(format, v...) }
func Errorf(format string, v ...interface{}) { std.Errorf(format, v...) }
func Fatalf(format string, v ...interface{}) { std.Fatalf(format, v...) }

// Println kept for brief messages (maps to Info)
func Println(v ...interface{}) {
	std.Info(strings.TrimSuffix(fmt.Sprintln(v...), "\n"))
}

func Debug(v string) { std.Debug(v) }
func Info(v string)  { std.Info(v) }
func Warn(v string)  { std.Warn(v) }
func Error(v string) { std.Error(v) }

// LevelString returns the current level as text.
func LevelString() string {
	switch std.GetLevel() {
	case logrus.DebugLevel, logrus.TraceLevel:
		return "debug"
	case logrus.WarnLevel:
		return "warn"
	case logrus.ErrorLevel:
		return "error"
	case logrus.FatalLevel, logrus.PanicLevel:
		return "fatal"
	}
	return "info"
}
