// Package logger provides the leveled console logger used across the
// aggregator. Verbose mode enables Debug output; silent mode suppresses
// everything except errors, for scheduler-driven runs that only want the
// artifacts.
package logger

import (
	"io"
	"log"
	"os"
)

var (
	defaultLogger = log.New(os.Stdout, "", log.LstdFlags)

	verbose bool
	silent  bool
)

// Init sets the logging modes. The output destination is left alone so a
// rotation writer installed via SetOutput survives re-initialization.
func Init(verboseMode bool, silentMode bool) {
	verbose = verboseMode
	silent = silentMode
}

// SetOutput sets the output destination for the logger
func SetOutput(w io.Writer) {
	defaultLogger.SetOutput(w)
}

// Info logs an informational message
func Info(format string, v ...interface{}) {
	if !silent {
		defaultLogger.Printf("[INFO] "+format, v...)
	}
}

// Debug logs a debug message (only in verbose mode)
func Debug(format string, v ...interface{}) {
	if verbose && !silent {
		defaultLogger.Printf("[DEBUG] "+format, v...)
	}
}

// Warn logs a warning message
func Warn(format string, v ...interface{}) {
	if !silent {
		defaultLogger.Printf("[WARN] "+format, v...)
	}
}

// Error logs an error message
func Error(format string, v ...interface{}) {
	defaultLogger.Printf("[ERROR] "+format, v...)
}

// Fatal logs a fatal error message and exits
func Fatal(format string, v ...interface{}) {
	defaultLogger.Fatalf("[FATAL] "+format, v...)
}
