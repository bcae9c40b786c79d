package diag

import (
	"fmt"
	"strings"

	"github.com/hashicorp/hcl/v2"
)

// snippetRadius is the number of context lines shown on each side of the
// offending line.
const snippetRadius = 2

// Context locates a problem inside a buffer that may have been reassembled
// from several files. Line is 1-based and relative to Content; LineOffset is
// the number of buffer lines that precede the owning file's portion, so the
// file-relative line is Line - LineOffset. Context values are rebound as
// scanning progresses, never mutated in place.
type Context struct {
	File       string
	Content    string
	LineOffset int
	Line       int
	Column     int
}

// At rebinds the context to a new buffer position.
func (c Context) At(line, column int) Context {
	c.Line = line
	c.Column = column
	return c
}

// Pos computes the file-relative position of the context.
func (c Context) Pos() hcl.Pos {
	line := c.Line - c.LineOffset
	if line < 1 {
		line = 1
	}
	col := c.Column
	if col < 1 {
		col = 1
	}
	return hcl.Pos{Line: line, Column: col}
}

// Range wraps Pos in a zero-width range for use as a diagnostic subject.
func (c Context) Range() *hcl.Range {
	pos := c.Pos()
	return &hcl.Range{Filename: c.File, Start: pos, End: pos}
}

// New builds a diagnostic for a code at a context position. The summary,
// explanation and fix come from the code catalog; unknown codes fall back to
// a generic triple rather than failing.
func New(code Code, sev Severity, ctx Context) *Diagnostic {
	m := Describe(code)
	return &Diagnostic{
		Code:       code,
		Severity:   sev,
		Summary:    m.Summary,
		Detail:     m.Explanation,
		Suggestion: m.Fix,
		Subject:    ctx.Range(),
		Snippet:    renderSnippet(ctx.Content, ctx.Line, ctx.LineOffset),
	}
}

// Newf builds a diagnostic like New but with a formatted detail in front of
// the catalog explanation.
func Newf(code Code, sev Severity, ctx Context, format string, args ...any) *Diagnostic {
	d := New(code, sev, ctx)
	d.Detail = strings.TrimSpace(fmt.Sprintf(format, args...) + " " + d.Detail)
	return d
}

// NewAt builds a diagnostic for a code pointing at an existing source range,
// typically one reported by the payload parser. The snippet is filled in
// later from the source map.
func NewAt(code Code, sev Severity, rng hcl.Range) *Diagnostic {
	m := Describe(code)
	return &Diagnostic{
		Code:       code,
		Severity:   sev,
		Summary:    m.Summary,
		Detail:     m.Explanation,
		Suggestion: m.Fix,
		Subject:    rng.Ptr(),
	}
}

// NewAtf is NewAt with a formatted detail in front of the catalog explanation.
func NewAtf(code Code, sev Severity, rng hcl.Range, format string, args ...any) *Diagnostic {
	d := NewAt(code, sev, rng)
	d.Detail = strings.TrimSpace(fmt.Sprintf(format, args...) + " " + d.Detail)
	return d
}

// FromHCL adopts diagnostics produced by the hcl toolchain under a stable
// code, keeping their precise positions.
func FromHCL(in hcl.Diagnostics, code Code) Diagnostics {
	var out Diagnostics
	for _, hd := range in {
		sev := Error
		if hd.Severity == hcl.DiagWarning {
			sev = Warning
		}
		m := Describe(code)
		out = append(out, &Diagnostic{
			Code:       code,
			Severity:   sev,
			Summary:    m.Summary,
			Detail:     strings.TrimSpace(hd.Summary + ". " + hd.Detail),
			Suggestion: m.Fix,
			Subject:    hd.Subject,
		})
	}
	return out
}

// renderSnippet draws a small window of source around a buffer line, labeled
// with file-relative line numbers. An empty content or out-of-range line
// yields an empty snippet.
func renderSnippet(content string, bufferLine, lineOffset int) string {
	if content == "" || bufferLine < 1 {
		return ""
	}
	lines := strings.Split(content, "\n")
	if bufferLine > len(lines) {
		return ""
	}

	start := bufferLine - snippetRadius
	if start < 1 {
		start = 1
	}
	end := bufferLine + snippetRadius
	if end > len(lines) {
		end = len(lines)
	}

	var b strings.Builder
	for n := start; n <= end; n++ {
		marker := "  "
		if n == bufferLine {
			marker = "> "
		}
		fmt.Fprintf(&b, "%s%4d | %s\n", marker, n-lineOffset, lines[n-1])
	}
	return strings.TrimRight(b.String(), "\n")
}
