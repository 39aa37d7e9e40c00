// Package diag provides the small structured-logging shim used throughout
// kevlar for the informational messages required by the library's
// observability contract: bootstrap, side-channel warnings, latch resets,
// and authentication recovery outcomes.
//
// kevlar is a library, not a service, so diag intentionally stops short of
// pulling in a logging framework: it wraps the standard library's log.Logger
// behind a narrow interface so tests can substitute a capturing logger and
// assert on emitted lines, the same way errors_test.go in the teacher
// package asserts on sentinel errors instead of string matching stdout.
package diag

import (
	"log"
	"os"
	"sync"
)

// Logger is the narrow logging surface kevlar depends on. *log.Logger
// satisfies it directly.
type Logger interface {
	Printf(format string, v ...interface{})
}

var (
	mu      sync.RWMutex
	current Logger = log.New(os.Stderr, "kevlar: ", log.LstdFlags)
)

// SetLogger replaces the package-wide logger. Passing nil restores the
// default stderr logger. Intended for tests that want to capture and assert
// on emitted log lines.
func SetLogger(l Logger) {
	mu.Lock()
	defer mu.Unlock()
	if l == nil {
		current = log.New(os.Stderr, "kevlar: ", log.LstdFlags)
		return
	}
	current = l
}

// Infof emits an informational message.
func Infof(format string, v ...interface{}) {
	mu.RLock()
	l := current
	mu.RUnlock()
	l.Printf("INFO: "+format, v...)
}

// Warnf emits a warning message.
func Warnf(format string, v ...interface{}) {
	mu.RLock()
	l := current
	mu.RUnlock()
	l.Printf("WARNING: "+format, v...)
}

// Errorf emits an error message.
func Errorf(format string, v ...interface{}) {
	mu.RLock()
	l := current
	mu.RUnlock()
	l.Printf("ERROR: "+format, v...)
}
