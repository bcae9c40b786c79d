// Package diag owns the compiler's error and warning taxonomy: stable codes,
// positioned diagnostics, and their human-readable rendering. Every other
// compiler package reports problems through it.
package diag

import (
	"fmt"
	"strings"

	"github.com/hashicorp/hcl/v2"
)

// Severity distinguishes blocking errors from advisory warnings.
type Severity int

const (
	// Error blocks a successful compilation.
	Error Severity = iota
	// Warning is advisory and never blocks.
	Warning
)

// String returns the lowercase name of the severity.
func (s Severity) String() string {
	if s == Warning {
		return "warning"
	}
	return "error"
}

// MarshalJSON renders the severity as its lowercase name.
func (s Severity) MarshalJSON() ([]byte, error) {
	return []byte(`"` + s.String() + `"`), nil
}

// Diagnostic is one positioned, coded compile problem. Errors and warnings
// share this shape; only Severity differs.
type Diagnostic struct {
	Code       Code       `json:"code"`
	Severity   Severity   `json:"severity"`
	Summary    string     `json:"summary"`
	Detail     string     `json:"detail,omitempty"`
	Suggestion string     `json:"suggestion,omitempty"`
	Subject    *hcl.Range `json:"-"`
	Snippet    string     `json:"snippet,omitempty"`
}

// File returns the file the diagnostic points at, or "" when positionless.
func (d *Diagnostic) File() string {
	if d.Subject == nil {
		return ""
	}
	return d.Subject.Filename
}

// Error formats the diagnostic compactly, including code and position.
func (d *Diagnostic) Error() string {
	var b strings.Builder
	fmt.Fprintf(&b, "[%s] %s", d.Code, d.Summary)
	if d.Subject != nil {
		fmt.Fprintf(&b, " at %s:%d,%d", d.Subject.Filename, d.Subject.Start.Line, d.Subject.Start.Column)
	}
	if d.Detail != "" {
		fmt.Fprintf(&b, ": %s", d.Detail)
	}
	return b.String()
}

// Diagnostics is an ordered collection of diagnostics. The zero value is
// ready to use; Append and Extend return the updated slice.
type Diagnostics []*Diagnostic

// Append adds one diagnostic, tolerating nil.
func (ds Diagnostics) Append(d *Diagnostic) Diagnostics {
	if d == nil {
		return ds
	}
	return append(ds, d)
}

// Extend concatenates another collection.
func (ds Diagnostics) Extend(more Diagnostics) Diagnostics {
	return append(ds, more...)
}

// HasErrors reports whether any diagnostic carries error severity.
func (ds Diagnostics) HasErrors() bool {
	for _, d := range ds {
		if d.Severity == Error {
			return true
		}
	}
	return false
}

// Errors returns only the error-severity diagnostics, preserving order.
func (ds Diagnostics) Errors() Diagnostics {
	var out Diagnostics
	for _, d := range ds {
		if d.Severity == Error {
			out = append(out, d)
		}
	}
	return out
}

// Warnings returns only the warning-severity diagnostics, preserving order.
func (ds Diagnostics) Warnings() Diagnostics {
	var out Diagnostics
	for _, d := range ds {
		if d.Severity == Warning {
			out = append(out, d)
		}
	}
	return out
}

// Error summarizes the collection as a single error string.
func (ds Diagnostics) Error() string {
	switch len(ds) {
	case 0:
		return "no diagnostics"
	case 1:
		return ds[0].Error()
	default:
		return fmt.Sprintf("%s (and %d more)", ds[0].Error(), len(ds)-1)
	}
}

// ToHCL converts the collection for rendering with hcl's diagnostic writer.
func (ds Diagnostics) ToHCL() hcl.Diagnostics {
	out := make(hcl.Diagnostics, 0, len(ds))
	for _, d := range ds {
		sev := hcl.DiagError
		if d.Severity == Warning {
			sev = hcl.DiagWarning
		}
		detail := d.Detail
		if d.Suggestion != "" {
			detail = strings.TrimSpace(detail + " " + d.Suggestion)
		}
		out = append(out, &hcl.Diagnostic{
			Severity: sev,
			Summary:  fmt.Sprintf("%s (%s)", d.Summary, d.Code),
			Detail:   detail,
			Subject:  d.Subject,
		})
	}
	return out
}

// WithSnippets fills in missing context snippets from the given per-file
// source map. Diagnostics that already carry a snippet keep it.
func (ds Diagnostics) WithSnippets(sources map[string]string) {
	for _, d := range ds {
		if d.Snippet != "" || d.Subject == nil {
			continue
		}
		src, ok := sources[d.Subject.Filename]
		if !ok {
			continue
		}
		d.Snippet = renderSnippet(src, d.Subject.Start.Line, 0)
	}
}
