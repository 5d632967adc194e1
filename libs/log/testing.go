package log

import (
	"io"
	"os"
	"sync"
	"testing"
)

var (
	// reuse the same logger across all tests
	testingLoggerMtx = sync.Mutex{}
	testingLogger    Logger
)

// TestingLogger returns a Logger which writes to STDOUT if test(s) are being
// run with the verbose (-v) flag, NopLogger otherwise.
//
// NOTE:
// - A call to NewTestingLogger() must be made inside a test (not in the init func)
// because verbose flag only set at the time of testing.
func TestingLogger() Logger {
	testingLoggerMtx.Lock()
	defer testingLoggerMtx.Unlock()

	if testingLogger != nil {
		return testingLogger
	}

	if testing.Verbose() {
		testingLogger = MustNewDefaultLoggerWithWriter(os.Stdout, LogFormatText, LogLevelDebug)
	} else {
		testingLogger = NewNopLogger()
	}

	return testingLogger
}

// MustNewDefaultLoggerWithWriter is NewDefaultLoggerWithWriter that panics on
// error.
func MustNewDefaultLoggerWithWriter(w io.Writer, format, level string) Logger {
	logger, err := NewDefaultLoggerWithWriter(w, format, level)
	if err != nil {
		panic(err)
	}
	return logger
}
