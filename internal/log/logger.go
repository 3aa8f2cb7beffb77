// Package log provides a global logger with configurable logging level. The library uses it to
// trace HTTP traffic with the StarLine servers; it is silent unless a host raises the level.

package log

import (
	"fmt"
	"io"
	"os"
	"sync"
	"time"
)

type Level int

const (
	LevelNone    Level = iota // Disables logging.
	LevelError                // Logs anomalies that are not expected to occur during normal use.
	LevelWarning              // Logs anomalies that are expected to occur occasionally.
	LevelInfo                 // Logs major events.
	LevelDebug                // Logs request and response bodies.
)

var (
	logMutex       sync.Mutex
	globalLogLevel Level
	output         io.Writer = os.Stderr
)

var labels = map[Level]string{
	LevelDebug:   "[debug]",
	LevelInfo:    "[info ]",
	LevelWarning: "[warn ]",
	LevelError:   "[error]",
}

func SetLevel(level Level) {
	logMutex.Lock()
	defer logMutex.Unlock()
	globalLogLevel = level
}

// SetOutput redirects log lines to w. Passing nil restores os.Stderr.
func SetOutput(w io.Writer) {
	logMutex.Lock()
	defer logMutex.Unlock()
	if w == nil {
		w = os.Stderr
	}
	output = w
}

// Enabled reports whether messages at level are currently written.
func Enabled(level Level) bool {
	logMutex.Lock()
	defer logMutex.Unlock()
	return level != LevelNone && level <= globalLogLevel
}

func log(level Level, format string, a ...interface{}) {
	if !Enabled(level) {
		return
	}
	msg := fmt.Sprintf("%s %s %s", time.Now().Format(time.RFC3339), labels[level], fmt.Sprintf(format, a...))
	logMutex.Lock()
	defer logMutex.Unlock()
	fmt.Fprintln(output, msg)
}

func Debug(format string, a ...interface{}) {
	log(LevelDebug, format, a...)
}

func Info(format string, a ...interface{}) {
	log(LevelInfo, format, a...)
}

func Warning(format string, a ...interface{}) {
	log(LevelWarning, format, a...)
}

func Error(format string, a ...interface{}) {
	log(LevelError, format, a...)
}
