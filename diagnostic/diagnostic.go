/*
Copyright 2026 Benny Powers. All rights reserved.
Use of this source code is governed by the GPLv3
license that can be found in the LICENSE file.
*/

// Package diagnostic provides typed resolution diagnostics and an
// accumulator that decides which of them block a build.
package diagnostic

import (
	"strings"

	"bennypowers.dev/tokencraft/schema"
)

// Code identifies the kind of a diagnostic.
type Code string

const (
	// Circular means a path references itself within one resolution chain.
	Circular Code = "CIRCULAR"

	// Missing means a referenced path, modifier, or source does not exist.
	Missing Code = "MISSING"

	// TypeMismatch means an unsupported version or an undefined context value.
	TypeMismatch Code = "TYPE_MISMATCH"

	// UnresolvedFallback means every candidate of a fallback chain failed.
	UnresolvedFallback Code = "UNRESOLVED_FALLBACK"

	// DepthExceeded means the visited stack reached the depth limit.
	DepthExceeded Code = "DEPTH_EXCEEDED"
)

// Blocking reports whether the presence of this code should fail a build.
func (c Code) Blocking() bool {
	switch c {
	case Missing, TypeMismatch, DepthExceeded:
		return true
	default:
		return false
	}
}

// Escalates reports whether strict mode turns this code into an error.
// CIRCULAR and UNRESOLVED_FALLBACK always degrade gracefully.
func (c Code) Escalates() bool {
	return c.Blocking()
}

// Severity grades a diagnostic for display.
type Severity int

const (
	// SeverityWarning is informational; resolution continued normally.
	SeverityWarning Severity = iota

	// SeverityError means the output contains a best-effort value.
	SeverityError
)

// String returns the lower-case severity name.
func (s Severity) String() string {
	if s == SeverityError {
		return "error"
	}
	return "warning"
}

// MarshalText encodes the severity by name.
func (s Severity) MarshalText() ([]byte, error) {
	return []byte(s.String()), nil
}

// UnmarshalText decodes a severity name. Unknown names are warnings.
func (s *Severity) UnmarshalText(text []byte) error {
	*s = SeverityWarning
	if string(text) == "error" {
		*s = SeverityError
	}
	return nil
}

// Diagnostic is a single resolution finding.
type Diagnostic struct {
	// Code is the diagnostic kind.
	Code Code `json:"code"`

	// Severity grades the finding.
	Severity Severity `json:"severity"`

	// Path is the token path, modifier name, or reference involved.
	Path string `json:"path,omitempty"`

	// Message describes what happened.
	Message string `json:"message"`

	// Hint suggests a fix.
	Hint string `json:"hint,omitempty"`
}

// New creates a diagnostic whose severity follows its code.
func New(code Code, path, message string) Diagnostic {
	sev := SeverityWarning
	if code.Blocking() {
		sev = SeverityError
	}
	return Diagnostic{Code: code, Severity: sev, Path: path, Message: message}
}

// WithHint returns a copy of d carrying the given hint.
func (d Diagnostic) WithHint(hint string) Diagnostic {
	d.Hint = hint
	return d
}

// AsWarning returns a copy of d with warning severity.
func (d Diagnostic) AsWarning() Diagnostic {
	d.Severity = SeverityWarning
	return d
}

// Error implements the error interface.
func (d Diagnostic) Error() string {
	var sb strings.Builder
	sb.WriteString(string(d.Code))
	if d.Path != "" {
		sb.WriteString(" ")
		sb.WriteString(d.Path)
	}
	sb.WriteString(": ")
	sb.WriteString(d.Message)
	if d.Hint != "" {
		sb.WriteString(" (")
		sb.WriteString(d.Hint)
		sb.WriteString(")")
	}
	return sb.String()
}

// Unwrap maps the diagnostic code to its sentinel error.
func (d Diagnostic) Unwrap() error {
	switch d.Code {
	case Circular:
		return schema.ErrCircularReference
	case Missing:
		return schema.ErrUnresolvedReference
	case TypeMismatch:
		return schema.ErrTypeMismatch
	case UnresolvedFallback:
		return schema.ErrUnresolvedFallback
	case DepthExceeded:
		return schema.ErrDepthExceeded
	default:
		return nil
	}
}
