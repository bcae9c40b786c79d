// SPDX-License-Identifier: MIT
// Copyright (c) 2025 The Breeth Authors
//
// This file turns the merged block stream into a validated document.
//
// Why a fold?
//
// The parser is a reducer threaded through the ordered block list: each step
// takes the current scanning state (owning file, line offset into the merged
// buffer, names seen so far) and one block, and yields the next state plus
// any diagnostics. Provenance markers advance the state; every other block
// is interpreted under it. Keeping the state explicit makes the file/offset
// bookkeeping testable on its own, instead of living in shared mutable
// variables updated from several places.
package parser

import (
	"context"
	"regexp"
	"strings"

	"github.com/hashicorp/hcl/v2"

	"github.com/The-Breeth/bui-compiler/internal/block"
	"github.com/The-Breeth/bui-compiler/internal/ctxlog"
	"github.com/The-Breeth/bui-compiler/internal/diag"
	"github.com/The-Breeth/bui-compiler/internal/document"
	"github.com/The-Breeth/bui-compiler/internal/merge"
	"github.com/The-Breeth/bui-compiler/internal/payload"
	"github.com/The-Breeth/bui-compiler/internal/validate"
)

// bpodNameRe matches the quoted service name right after the b-pod keyword.
var bpodNameRe = regexp.MustCompile(`^"([^"]*)"`)

// Result is the outcome of parsing a merged buffer.
type Result struct {
	Document *document.Document
	// ServiceFiles maps each accepted service to the file that declared it.
	ServiceFiles map[string]string
	Diags        diag.Diagnostics
}

// state is the scanning position of the fold: which file the upcoming blocks
// belong to and how many merged-buffer lines precede that file's portion.
type state struct {
	file        string
	lineOffset  int
	seenVersion bool
	seenProfile bool
}

type run struct {
	entry   string
	merged  *merge.Result
	markers map[string]int
	doc     *document.Document
	names   map[string]bool
	files   map[string]string
}

// Parse walks the merged buffer block by block and assembles the document.
// It collects every diagnostic it can instead of stopping at the first one;
// services keep the order their blocks were encountered in.
func Parse(ctx context.Context, merged *merge.Result) *Result {
	res := &Result{Document: document.New(), ServiceFiles: map[string]string{}}
	entry := merged.Entry()
	if entry == nil {
		return res
	}

	r := &run{
		entry:   entry.Path,
		merged:  merged,
		markers: markerLines(merged),
		doc:     res.Document,
		names:   map[string]bool{},
		files:   res.ServiceFiles,
	}

	st := state{file: entry.Path}
	for _, b := range block.Segment(merged.Merged) {
		if next, ok := r.matchMarker(st, b); ok {
			st = next
			continue
		}
		var ds diag.Diagnostics
		st, ds = r.reduce(st, b)
		res.Diags = res.Diags.Extend(ds)
	}

	if !st.seenVersion {
		res.Diags = res.Diags.Append(diag.Newf(diag.CodeInvalidVersion, diag.Warning,
			diag.Context{File: r.entry, Content: merged.Merged, Line: 1, Column: 1},
			"No version block was declared; assuming %q.", document.SupportedVersion))
	}

	ctxlog.FromContext(ctx).Debug("parse finished",
		"services", len(res.Document.Services), "diagnostics", len(res.Diags))
	return res
}

// markerLines lists the provenance marker contents the fold may encounter.
// Single-file projects get none: a short block that happens to look like a
// path must never be mistaken for a marker.
func markerLines(merged *merge.Result) map[string]int {
	if len(merged.Files) < 2 {
		return nil
	}
	out := make(map[string]int, len(merged.Files)-1)
	for _, f := range merged.Files[1:] {
		out[f.Path] = 0
	}
	return out
}

// matchMarker recognizes a provenance marker block and rebinds the scanning
// state to the file it names.
func (r *run) matchMarker(st state, b block.Block) (state, bool) {
	if r.markers == nil {
		return st, false
	}
	if _, ok := r.markers[strings.TrimSpace(b.Content)]; !ok {
		return st, false
	}
	st.file = strings.TrimSpace(b.Content)
	st.lineOffset = b.Line + 1
	return st, true
}

// reduce interprets one block under the current state.
func (r *run) reduce(st state, b block.Block) (state, diag.Diagnostics) {
	blockCtx := diag.Context{
		File:       st.file,
		Content:    r.merged.Merged,
		LineOffset: st.lineOffset,
		Line:       b.Line,
		Column:     1,
	}

	switch b.Kind {
	case block.Version:
		return r.reduceVersion(st, b, blockCtx)
	case block.Profile:
		return r.reduceProfile(st, b, blockCtx)
	case block.Service:
		return st, r.reduceService(st, b, blockCtx)
	case block.Files:
		// Consumed by the merger; inert here.
		return st, nil
	default:
		if !b.HasColon {
			return st, diag.Diagnostics{}.Append(diag.New(diag.CodeMissingColon, diag.Error, blockCtx))
		}
		return st, diag.Diagnostics{}.Append(diag.Newf(diag.CodeInvalidSyntax, diag.Error,
			blockCtx, "Unknown block keyword %q.", b.Keyword))
	}
}

func (r *run) reduceVersion(st state, b block.Block, blockCtx diag.Context) (state, diag.Diagnostics) {
	var ds diag.Diagnostics
	if st.file != r.entry {
		return st, ds.Append(diag.Newf(diag.CodeInvalidSyntax, diag.Error,
			blockCtx, "A version: block may only appear in the entry file."))
	}
	if st.seenVersion {
		return st, ds.Append(diag.Newf(diag.CodeInvalidSyntax, diag.Error,
			blockCtx, "The version was already declared."))
	}
	st.seenVersion = true

	literal := strings.Trim(strings.TrimSpace(b.Body()), `"'`)
	if literal != document.SupportedVersion {
		return st, ds.Append(diag.Newf(diag.CodeInvalidVersion, diag.Error,
			blockCtx, "Found %q.", literal))
	}
	r.doc.Version = literal
	return st, ds
}

func (r *run) reduceProfile(st state, b block.Block, blockCtx diag.Context) (state, diag.Diagnostics) {
	var ds diag.Diagnostics
	if st.file != r.entry {
		return st, ds.Append(diag.Newf(diag.CodeInvalidSyntax, diag.Error,
			blockCtx, "A profile: block may only appear in the entry file."))
	}
	if st.seenProfile {
		return st, ds.Append(diag.Newf(diag.CodeInvalidSyntax, diag.Error,
			blockCtx, "The profile was already declared."))
	}
	st.seenProfile = true

	attrs, payloadDiags := r.parsePayload(b, blockCtx, diag.CodeInvalidProfileJSON)
	ds = ds.Extend(payloadDiags)
	if attrs == nil {
		return st, ds
	}

	profile, valDiags := validate.Profile(attrs, blockCtx)
	ds = ds.Extend(valDiags)
	if profile != nil {
		r.doc.Profile = profile
	}
	return st, ds
}

func (r *run) reduceService(st state, b block.Block, blockCtx diag.Context) diag.Diagnostics {
	var ds diag.Diagnostics

	m := bpodNameRe.FindStringSubmatch(b.Body())
	if m == nil || strings.TrimSpace(m[1]) == "" {
		return ds.Append(diag.New(diag.CodeMissingBPodName, diag.Error, blockCtx))
	}
	name := strings.TrimSpace(m[1])

	if r.names[name] {
		return ds.Append(diag.Newf(diag.CodeDuplicateBPodName, diag.Error,
			blockCtx, "%q was already declared.", name))
	}
	r.names[name] = true

	attrs, payloadDiags := r.parsePayload(b, blockCtx, diag.CodeInvalidBPodJSON)
	ds = ds.Extend(payloadDiags)
	if attrs == nil {
		return ds
	}

	svc, valDiags := validate.Service(name, attrs, blockCtx)
	ds = ds.Extend(valDiags)
	if svc == nil {
		return ds
	}

	crossDiags := validate.ExtensionFormat(svc, attrs, blockCtx)
	crossDiags = crossDiags.Extend(validate.BodyTemplate(svc, attrs, blockCtx))
	ds = ds.Extend(crossDiags)
	if crossDiags.HasErrors() {
		return ds
	}

	r.doc.Services = append(r.doc.Services, *svc)
	r.files[name] = st.file
	return ds
}

// parsePayload extracts the `{ ... }` span of a block and parses it as a
// JSON object positioned at its true file-relative location.
func (r *run) parsePayload(b block.Block, blockCtx diag.Context, code diag.Code) (map[string]payload.Attr, diag.Diagnostics) {
	src, lineDelta, ok := jsonSpan(b.Content)
	if !ok {
		return nil, diag.Diagnostics{}.Append(diag.Newf(code, diag.Error,
			blockCtx, "No JSON object found in the block."))
	}

	start := hcl.Pos{Line: blockCtx.Pos().Line + lineDelta, Column: 1}
	attrs, hclDiags := payload.Object(src, blockCtx.File, start)
	if hclDiags.HasErrors() {
		return nil, diag.FromHCL(hclDiags, code)
	}
	return attrs, nil
}

// jsonSpan locates the outermost braces of a block's content and how many
// lines precede the opening one.
func jsonSpan(content string) (src string, lineDelta int, ok bool) {
	start := strings.Index(content, "{")
	end := strings.LastIndex(content, "}")
	if start < 0 || end < start {
		return "", 0, false
	}
	return content[start : end+1], strings.Count(content[:start], "\n"), true
}
