// Package logging is a small level-filtered logger writing to stderr.
package logging

import (
	"fmt"
	"io"
	"log"
	"os"
	"strings"
	"sync/atomic"
	"time"
)

// LogLevel represents severity.
type LogLevel int32

const (
	LevelDebug LogLevel = iota
	LevelInfo
	LevelWarn
	LevelError
)

var levelNames = map[string]LogLevel{
	"debug":   LevelDebug,
	"info":    LevelInfo,
	"warn":    LevelWarn,
	"warning": LevelWarn,
	"error":   LevelError,
}

var currentLevel int32 = int32(LevelInfo)

var baseLogger = log.New(os.Stderr, "", log.Ldate|log.Ltime|log.Lmicroseconds)

// SetLogLevel parses and sets the global log level. Unknown names are reported as an error
// and leave the level unchanged.
func SetLogLevel(s string) error {
	l, ok := levelNames[strings.ToLower(strings.TrimSpace(s))]
	if !ok {
		return fmt.Errorf("unknown log level %q (want debug|info|warn|error)", s)
	}
	atomic.StoreInt32(&currentLevel, int32(l))
	return nil
}

// SetOutput redirects log output; used by the CLI to honour cobra's error writer.
func SetOutput(w io.Writer) { baseLogger.SetOutput(w) }

func getLevel() LogLevel { return LogLevel(atomic.LoadInt32(&currentLevel)) }

// GetLogLevel returns the current global log level.
func GetLogLevel() LogLevel { return getLevel() }

func logf(l LogLevel, format string, args ...interface{}) {
	if getLevel() > l {
		return
	}
	prefix := "INFO"
	switch l {
	case LevelDebug:
		prefix = "DEBUG"
	case LevelWarn:
		prefix = "WARN"
	case LevelError:
		prefix = "ERROR"
	}
	// Without args the input is already a message; formatting it again would mangle literal '%'.
	if len(args) == 0 {
		baseLogger.Printf("[%s] %s", prefix, format)
		return
	}
	baseLogger.Printf("[%s] %s", prefix, fmt.Sprintf(format, args...))
}

// Public helpers
func Debugf(format string, a ...interface{}) { logf(LevelDebug, format, a...) }
func Infof(format string, a ...interface{})  { logf(LevelInfo, format, a...) }
func Warnf(format string, a ...interface{})  { logf(LevelWarn, format, a...) }
func Errorf(format string, a ...interface{}) { logf(LevelError, format, a...) }

// TimeTrack logs the duration of a phase at debug level.
func TimeTrack(start time.Time, label string) {
	Debugf("%s took %s", label, time.Since(start))
}
