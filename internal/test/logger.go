// Package test provides helpers shared by the package tests.
package test

import (
	"fmt"
	"sync"
)

// Entry is a single recorded log call.
type Entry struct {
	Level string
	Msg   string
	Args  []any
}

// Attr returns the value logged under key.
func (e Entry) Attr(key string) (any, bool) {
	for i := 0; i+1 < len(e.Args); i += 2 {
		if k, ok := e.Args[i].(string); ok && k == key {
			return e.Args[i+1], true
		}
	}
	return nil, false
}

// String returns the value under key formatted with %v, or "" if absent.
func (e Entry) String(key string) string {
	v, ok := e.Attr(key)
	if !ok {
		return ""
	}
	return fmt.Sprint(v)
}

// Logger records log calls for assertions. It is safe for concurrent use.
type Logger struct {
	mu      sync.Mutex
	entries []Entry
}

func (l *Logger) record(level, msg string, args []any) {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.entries = append(l.entries, Entry{Level: level, Msg: msg, Args: args})
}

func (l *Logger) Debug(msg string, args ...any) { l.record("debug", msg, args) }
func (l *Logger) Info(msg string, args ...any)  { l.record("info", msg, args) }
func (l *Logger) Warn(msg string, args ...any)  { l.record("warn", msg, args) }
func (l *Logger) Error(msg string, args ...any) { l.record("error", msg, args) }

// Entries returns a copy of all recorded entries in call order.
func (l *Logger) Entries() []Entry {
	l.mu.Lock()
	defer l.mu.Unlock()
	out := make([]Entry, len(l.entries))
	copy(out, l.entries)
	return out
}

// Find returns the entries with the given message in call order.
func (l *Logger) Find(msg string) []Entry {
	var out []Entry
	for _, e := range l.Entries() {
		if e.Msg == msg {
			out = append(out, e)
		}
	}
	return out
}

// FindWith returns the entries with the given message whose attribute key
// formats to value.
func (l *Logger) FindWith(msg, key, value string) []Entry {
	var out []Entry
	for _, e := range l.Find(msg) {
		if e.String(key) == value {
			out = append(out, e)
		}
	}
	return out
}
