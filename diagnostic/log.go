/*
Copyright 2026 Benny Powers. All rights reserved.
Use of this source code is governed by the GPLv3
license that can be found in the LICENSE file.
*/

package diagnostic

import (
	"slices"
	"sync"

	"bennypowers.dev/tokencraft/internal/logger"
)

// Sink receives diagnostics as they are reported.
type Sink func(Diagnostic)

// Log accumulates diagnostics. It is safe for concurrent use.
type Log struct {
	mu      sync.Mutex
	items   []Diagnostic
	strict  bool
	onWarn  Sink
	onError Sink
}

// Option configures a Log.
type Option func(*Log)

// WithStrict makes Report return escalating diagnostics as errors.
func WithStrict(strict bool) Option {
	return func(l *Log) { l.strict = strict }
}

// WithWarnSink sets the callback for warning-severity diagnostics.
func WithWarnSink(s Sink) Option {
	return func(l *Log) { l.onWarn = s }
}

// WithErrorSink sets the callback for error-severity diagnostics.
func WithErrorSink(s Sink) Option {
	return func(l *Log) { l.onError = s }
}

// WithLogger routes diagnostics to the process logger.
func WithLogger() Option {
	return func(l *Log) {
		l.onWarn = func(d Diagnostic) { logger.Warn("%s", d.Error()) }
		l.onError = func(d Diagnostic) { logger.Error("%s", d.Error()) }
	}
}

// NewLog creates an empty diagnostic log.
func NewLog(opts ...Option) *Log {
	l := &Log{}
	for _, opt := range opts {
		opt(l)
	}
	return l
}

// Strict reports whether the log escalates diagnostics to errors.
func (l *Log) Strict() bool {
	return l.strict
}

// Report records d and notifies the matching sink. In strict mode it
// returns d as an error when its code escalates and it was not
// downgraded to a warning; otherwise nil.
func (l *Log) Report(d Diagnostic) error {
	l.Record(d)
	if l.Strict() && d.Code.Escalates() && d.Severity == SeverityError {
		return d
	}
	return nil
}

// Record records d and notifies the matching sink without escalating.
func (l *Log) Record(d Diagnostic) {
	l.mu.Lock()
	l.items = append(l.items, d)
	sink := l.onWarn
	if d.Severity == SeverityError {
		sink = l.onError
	}
	l.mu.Unlock()

	if sink != nil {
		sink(d)
	}
}

// Diagnostics returns a copy of everything reported so far.
func (l *Log) Diagnostics() []Diagnostic {
	l.mu.Lock()
	defer l.mu.Unlock()
	return slices.Clone(l.items)
}

// Len returns the number of diagnostics reported.
func (l *Log) Len() int {
	l.mu.Lock()
	defer l.mu.Unlock()
	return len(l.items)
}

// Count returns how many diagnostics carry the given code.
func (l *Log) Count(code Code) int {
	l.mu.Lock()
	defer l.mu.Unlock()
	n := 0
	for _, d := range l.items {
		if d.Code == code {
			n++
		}
	}
	return n
}

// HasErrors reports whether any error-severity diagnostic was reported.
func (l *Log) HasErrors() bool {
	l.mu.Lock()
	defer l.mu.Unlock()
	return HasErrors(l.items)
}

// Reset discards all recorded diagnostics.
func (l *Log) Reset() {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.items = nil
}

// HasErrors reports whether ds contains an error-severity diagnostic.
// Blocking codes downgraded with AsWarning do not count.
func HasErrors(ds []Diagnostic) bool {
	return slices.ContainsFunc(ds, func(d Diagnostic) bool {
		return d.Severity == SeverityError
	})
}
