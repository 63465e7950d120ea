// Package logger provides namespace-scoped debug logging controlled by the
// DEBUG environment variable, in the style of the npm "debug" package.
//
// Loggers are created with a namespace such as "compiler:graph" and stay
// silent unless the namespace matches a pattern in DEBUG. Patterns support a
// trailing wildcard ("compiler:*"), comma-separated lists, and "-" prefixed
// exclusions:
//
//	DEBUG=*                      enable everything
//	DEBUG=compiler:*             enable the compiler namespace
//	DEBUG=compiler:*,cli:*       enable multiple namespaces
//	DEBUG=*,-compiler:emit       enable everything except one logger
//
// Output goes to stderr so it never mixes with generated artifacts or
// structured command output on stdout.
package logger

import (
	"fmt"
	"os"
	"strings"
	"sync"
	"time"
)

// Logger writes debug messages for a single namespace.
type Logger struct {
	namespace string
	enabled   bool

	mu   sync.Mutex
	last time.Time
}

// New creates a logger for the given namespace. Enablement is resolved once
// from the DEBUG environment variable at creation time.
func New(namespace string) *Logger {
	return &Logger{
		namespace: namespace,
		enabled:   namespaceEnabled(namespace, os.Getenv("DEBUG")),
	}
}

// Enabled reports whether this logger will produce output.
func (l *Logger) Enabled() bool {
	return l.enabled
}

// Printf logs a formatted message when the logger is enabled.
// Formatting follows fmt.Printf conventions.
func (l *Logger) Printf(format string, args ...any) {
	if !l.enabled {
		return
	}
	l.emit(fmt.Sprintf(format, args...))
}

// Print logs a message when the logger is enabled, concatenating arguments
// like fmt.Sprint.
func (l *Logger) Print(args ...any) {
	if !l.enabled {
		return
	}
	l.emit(fmt.Sprint(args...))
}

// emit writes the message with the namespace prefix and the elapsed time
// since the previous message from this logger.
func (l *Logger) emit(msg string) {
	l.mu.Lock()
	now := time.Now()
	var delta time.Duration
	if !l.last.IsZero() {
		delta = now.Sub(l.last)
	}
	l.last = now
	l.mu.Unlock()

	fmt.Fprintf(os.Stderr, "%s %s +%s\n", l.namespace, msg, delta)
}

// namespaceEnabled evaluates the DEBUG pattern list against a namespace.
// Exclusion patterns win over inclusion patterns.
func namespaceEnabled(namespace, debug string) bool {
	if debug == "" {
		return false
	}

	enabled := false
	for _, raw := range strings.Split(debug, ",") {
		pattern := strings.TrimSpace(raw)
		if pattern == "" {
			continue
		}
		negate := strings.HasPrefix(pattern, "-")
		if negate {
			pattern = pattern[1:]
		}
		if !matchPattern(pattern, namespace) {
			continue
		}
		if negate {
			return false
		}
		enabled = true
	}
	return enabled
}

// matchPattern matches a namespace against a pattern with an optional
// trailing "*" wildcard.
func matchPattern(pattern, namespace string) bool {
	if pattern == "*" {
		return true
	}
	if strings.HasSuffix(pattern, "*") {
		return strings.HasPrefix(namespace, strings.TrimSuffix(pattern, "*"))
	}
	return pattern == namespace
}
