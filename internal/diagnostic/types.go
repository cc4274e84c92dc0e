package diagnostic

import (
	"fmt"
	"strings"
)

// Codes of the diagnostics emitted during a run.
const (
	CodeEntrySkipped   = "entry_skipped"
	CodeNoURLField     = "no_url_field"
	CodeNothingRemoved = "nothing_removed"
)

// Diagnostics holds every diagnostic produced for one or more entries.
type Diagnostics struct {
	Warnings []Diagnostic
	Infos    []Diagnostic
}

// Diagnostic represents a single diagnostic message.
type Diagnostic struct {
	Severity Severity
	// Code is a unique identifier for this type of diagnostic.
	Code string
	// Message is the human-readable description.
	Message string
	// Key is the top-level key of the entry this relates to (if any).
	Key string
	// Field is the entry field this relates to (if any).
	Field string
}

// Severity represents the severity level of a diagnostic.
type Severity int

const (
	SeverityInfo Severity = iota
	SeverityWarning
)

// String returns a human-readable severity name.
func (s Severity) String() string {
	switch s {
	case SeverityInfo:
		return "info"
	case SeverityWarning:
		return "warning"
	default:
		return "unknown"
	}
}

// AddWarning adds a warning diagnostic.
func (d *Diagnostics) AddWarning(code, message, key, field string) {
	d.Warnings = append(d.Warnings, Diagnostic{
		Severity: SeverityWarning,
		Code:     code,
		Message:  message,
		Key:      key,
		Field:    field,
	})
}

// AddInfo adds an info diagnostic.
func (d *Diagnostics) AddInfo(code, message, key, field string) {
	d.Infos = append(d.Infos, Diagnostic{
		Severity: SeverityInfo,
		Code:     code,
		Message:  message,
		Key:      key,
		Field:    field,
	})
}

// HasWarnings returns true if there are any warning diagnostics.
func (d *Diagnostics) HasWarnings() bool {
	return len(d.Warnings) > 0
}

// HasCode reports whether a warning or info with the given code was recorded.
func (d *Diagnostics) HasCode(code string) bool {
	for _, w := range d.Warnings {
		if w.Code == code {
			return true
		}
	}

	for _, i := range d.Infos {
		if i.Code == code {
			return true
		}
	}

	return false
}

// WithKey returns a copy of d with Key set on every diagnostic that has none.
func (d Diagnostics) WithKey(key string) Diagnostics {
	out := Diagnostics{
		Warnings: withKey(d.Warnings, key),
		Infos:    withKey(d.Infos, key),
	}

	return out
}

func withKey(in []Diagnostic, key string) []Diagnostic {
	if in == nil {
		return nil
	}

	out := make([]Diagnostic, len(in))
	for i, diag := range in {
		if diag.Key == "" {
			diag.Key = key
		}

		out[i] = diag
	}

	return out
}

// Merge merges another Diagnostics instance into this one.
func (d *Diagnostics) Merge(other Diagnostics) {
	d.Warnings = append(d.Warnings, other.Warnings...)
	d.Infos = append(d.Infos, other.Infos...)
}

// String returns a formatted diagnostic string.
func (d Diagnostic) String() string {
	var prefix []string
	if d.Key != "" {
		prefix = append(prefix, "["+d.Key+"]")
	}

	if d.Field != "" {
		prefix = append(prefix, d.Field)
	}

	msg := d.Message
	if d.Code != "" {
		msg = fmt.Sprintf("[%s] %s", d.Code, msg)
	}

	if len(prefix) > 0 {
		return strings.Join(prefix, " ") + ": " + msg
	}

	return msg
}
