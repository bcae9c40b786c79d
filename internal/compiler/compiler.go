// Package compiler sequences the compilation pipeline: file merging, block
// segmentation, parsing and schema validation. It aggregates every
// diagnostic the stages produce and returns one result; it never panics
// across inputs and never throws partial work away because a single block
// was broken.
package compiler

import (
	"context"
	"fmt"
	"time"

	"github.com/The-Breeth/bui-compiler/internal/ctxlog"
	"github.com/The-Breeth/bui-compiler/internal/diag"
	"github.com/The-Breeth/bui-compiler/internal/document"
	"github.com/The-Breeth/bui-compiler/internal/merge"
	"github.com/The-Breeth/bui-compiler/internal/parser"
	"github.com/The-Breeth/bui-compiler/internal/probe"
)

// Default resource ceilings, applied when an option is left zero.
const (
	DefaultMaxFileSize  = 1 << 20
	DefaultMaxFiles     = 10
	DefaultProbeTimeout = 5 * time.Second
)

// Options is the configuration surface the core consumes.
type Options struct {
	MaxFileSize     int64
	MaxFiles        int
	ProbeURLs       bool
	ProbeTimeout    time.Duration
	IncludeMetadata bool
}

func (o Options) withDefaults() Options {
	if o.MaxFileSize == 0 {
		o.MaxFileSize = DefaultMaxFileSize
	}
	if o.MaxFiles == 0 {
		o.MaxFiles = DefaultMaxFiles
	}
	if o.ProbeTimeout == 0 {
		o.ProbeTimeout = DefaultProbeTimeout
	}
	return o
}

// Metadata describes a build when the caller asks for it.
type Metadata struct {
	IncludedFiles []string          `json:"includedFiles"`
	ServiceFiles  map[string]string `json:"serviceFiles"`
	Elapsed       time.Duration     `json:"elapsed"`
	TotalBytes    int64             `json:"totalBytes"`
}

// Result is the final artifact of a compilation. Success is true exactly
// when no error-severity diagnostic exists; warnings never block.
type Result struct {
	Document *document.Document
	Errors   diag.Diagnostics
	Warnings diag.Diagnostics
	Success  bool
	Metadata *Metadata
	// Sources maps file paths to the content diagnostics refer to, for
	// rendering.
	Sources map[string]string
}

// Compile runs the whole pipeline on the project rooted at entryPath.
// Concurrent compilations of different inputs are independent; each call
// owns its own buffers and diagnostic lists.
func Compile(ctx context.Context, entryPath string, opts Options) (res *Result) {
	opts = opts.withDefaults()
	logger := ctxlog.FromContext(ctx)
	start := time.Now()

	res = &Result{Document: document.New(), Sources: map[string]string{}}

	var diags diag.Diagnostics
	defer func() {
		if r := recover(); r != nil {
			d := diag.NewAtf(diag.CodeInternalError, diag.Error,
				*diag.Context{File: entryPath, Line: 1, Column: 1}.Range(),
				"%v.", r)
			diags = diags.Append(d)
			finish(res, diags)
		}
	}()

	merged := merge.Merge(ctx, entryPath, merge.Limits{
		MaxFileSize: opts.MaxFileSize,
		MaxFiles:    opts.MaxFiles,
	})
	diags = diags.Extend(merged.Diags)
	res.Sources = merged.Sources

	parsed := parser.Parse(ctx, merged)
	res.Document = parsed.Document
	diags = diags.Extend(parsed.Diags)
	diags.WithSnippets(merged.Sources)

	finish(res, diags)

	if opts.IncludeMetadata {
		res.Metadata = &Metadata{
			IncludedFiles: merged.Paths(),
			ServiceFiles:  parsed.ServiceFiles,
			Elapsed:       time.Since(start),
			TotalBytes:    merged.Stats.TotalBytes,
		}
	}

	if opts.ProbeURLs {
		probe.Launch(ctx, collectURLs(res.Document), opts.ProbeTimeout)
	}

	logger.Info("compilation finished",
		"success", res.Success,
		"services", len(res.Document.Services),
		"errors", len(res.Errors),
		"warnings", len(res.Warnings),
		"elapsed", time.Since(start).String(),
	)
	return res
}

func finish(res *Result, diags diag.Diagnostics) {
	res.Errors = diags.Errors()
	res.Warnings = diags.Warnings()
	res.Success = !diags.HasErrors()
}

// collectURLs gathers the external URLs worth a reachability check.
func collectURLs(doc *document.Document) []string {
	seen := map[string]bool{}
	var urls []string
	add := func(u string) {
		if u != "" && !seen[u] {
			seen[u] = true
			urls = append(urls, u)
		}
	}
	if doc.Profile != nil {
		add(doc.Profile.Logo)
		add(doc.Profile.Website)
	}
	for _, svc := range doc.Services {
		add(svc.API.URL)
	}
	return urls
}

// RenderJSON serializes the compiled document, failing when no document was
// produced at all.
func (r *Result) RenderJSON() ([]byte, error) {
	if r.Document == nil {
		return nil, fmt.Errorf("no document to render")
	}
	return r.Document.RenderJSON()
}
