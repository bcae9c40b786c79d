// SPDX-License-Identifier: MIT
// Copyright (c) 2025 The Breeth Authors
//
// This file implements multi-file resolution and merging.
//
// Why merge into one buffer?
//
// A project is a single entry file plus the files its files: block names.
// Later stages want one ordered stream of blocks, so the merger concatenates
// everything into a single working buffer. Each included file's portion is
// preceded by a provenance marker (the file's resolved path between two
// separators) so the parser can attribute every block, and every diagnostic,
// to the file it actually came from.
package merge

import (
	"context"
	"os"
	"path/filepath"
	"strings"

	"github.com/The-Breeth/bui-compiler/internal/block"
	"github.com/The-Breeth/bui-compiler/internal/ctxlog"
	"github.com/The-Breeth/bui-compiler/internal/diag"
	"github.com/The-Breeth/bui-compiler/internal/payload"
)

// Extension is the reserved extension of all project files.
const Extension = ".bui"

// EntryName is the required file name of a project's entry file.
const EntryName = "index" + Extension

// Limits are the resource ceilings enforced before any expensive work.
type Limits struct {
	MaxFileSize int64
	MaxFiles    int
}

// SourceFile records an included file. Immutable once created.
type SourceFile struct {
	Path string
	Dir  string
	Size int64
}

// Stats carries per-file byte sizes for optional build metadata.
type Stats struct {
	FileSizes  map[string]int64
	TotalBytes int64
}

// Result is the outcome of a merge. Diags may carry errors and warnings;
// project-wide failures (missing entry, unreadable entry) leave Merged empty.
type Result struct {
	Merged string
	// Files lists the merged files in order, entry first.
	Files []SourceFile
	// Sources maps each file path to the content its diagnostics refer to.
	Sources map[string]string
	Diags   diag.Diagnostics
	Stats   Stats
}

// Entry returns the entry file, or nil when resolution failed outright.
func (r *Result) Entry() *SourceFile {
	if len(r.Files) == 0 {
		return nil
	}
	return &r.Files[0]
}

// Paths returns the resolved paths of all merged files, entry first.
func (r *Result) Paths() []string {
	out := make([]string, len(r.Files))
	for i, f := range r.Files {
		out[i] = f.Path
	}
	return out
}

// includeRef is one entry of a files: block, remembered with the block's
// position for diagnostics.
type includeRef struct {
	rel  string
	line int
}

// Merge resolves a project starting at entryPath and concatenates it into one
// buffer. entryPath may name the entry file or its directory. Merge never
// returns an error: all problems are reported as diagnostics so the caller
// decides how far to keep going.
func Merge(ctx context.Context, entryPath string, limits Limits) *Result {
	logger := ctxlog.FromContext(ctx)
	res := &Result{
		Sources: map[string]string{},
		Stats:   Stats{FileSizes: map[string]int64{}},
	}

	entryAbs, err := filepath.Abs(entryPath)
	if err != nil {
		res.Diags = res.Diags.Append(diag.Newf(diag.CodeInvalidFilePath, diag.Error,
			diag.Context{File: entryPath, Line: 1}, "Cannot resolve %q.", entryPath))
		return res
	}
	if info, statErr := os.Stat(entryAbs); statErr == nil && info.IsDir() {
		entryAbs = filepath.Join(entryAbs, EntryName)
	}

	fileCtx := diag.Context{File: entryAbs, Line: 1, Column: 1}

	info, err := os.Stat(entryAbs)
	if err != nil {
		res.Diags = res.Diags.Append(diag.Newf(diag.CodeFileNotFound, diag.Error,
			fileCtx, "Entry file %q does not exist.", entryAbs))
		return res
	}
	if filepath.Base(entryAbs) != EntryName {
		res.Diags = res.Diags.Append(diag.Newf(diag.CodeInvalidFilePath, diag.Error,
			fileCtx, "The entry file must be named %s.", EntryName))
		return res
	}
	if limits.MaxFileSize > 0 && info.Size() > limits.MaxFileSize {
		res.Diags = res.Diags.Append(diag.Newf(diag.CodeFileTooLarge, diag.Error,
			fileCtx, "Entry file is %d bytes, limit is %d.", info.Size(), limits.MaxFileSize))
		return res
	}

	raw, err := os.ReadFile(entryAbs)
	if err != nil {
		res.Diags = res.Diags.Append(diag.Newf(diag.CodeFileReadError, diag.Error,
			fileCtx, "Reading %q failed: %v.", entryAbs, err))
		return res
	}
	entryContent := string(raw)
	entryDir := filepath.Dir(entryAbs)

	res.Files = append(res.Files, SourceFile{Path: entryAbs, Dir: entryDir, Size: info.Size()})
	res.Sources[entryAbs] = entryContent
	res.Stats.FileSizes[entryAbs] = info.Size()
	res.Stats.TotalBytes += info.Size()

	includes, incDiags := collectIncludes(entryAbs, entryContent)
	res.Diags = res.Diags.Extend(incDiags)

	var merged strings.Builder
	merged.WriteString(entryContent)

	if limits.MaxFiles > 0 && len(includes) > limits.MaxFiles {
		res.Diags = res.Diags.Append(diag.Newf(diag.CodeTooManyFiles, diag.Error,
			diag.Context{File: entryAbs, Content: entryContent, Line: includeLine(includes)},
			"The project references %d files, limit is %d.", len(includes), limits.MaxFiles))
		res.Merged = merged.String()
		return res
	}

	seen := map[string]bool{entryAbs: true}
	for _, inc := range includes {
		incCtx := diag.Context{File: entryAbs, Content: entryContent, Line: inc.line, Column: 1}

		resolved, ok := resolvePath(entryDir, inc.rel)
		if !ok {
			res.Diags = res.Diags.Append(diag.Newf(diag.CodeInvalidFilePath, diag.Error,
				incCtx, "%q resolves outside the project directory or lacks the %s extension.", inc.rel, Extension))
			continue
		}
		if seen[resolved] {
			res.Diags = res.Diags.Append(diag.Newf(diag.CodeDuplicateFile, diag.Warning,
				incCtx, "%q is already part of the project.", inc.rel))
			continue
		}

		info, err := os.Stat(resolved)
		if err != nil {
			res.Diags = res.Diags.Append(diag.Newf(diag.CodeFileNotFound, diag.Error,
				incCtx, "Included file %q does not exist.", inc.rel))
			continue
		}
		if limits.MaxFileSize > 0 && info.Size() > limits.MaxFileSize {
			res.Diags = res.Diags.Append(diag.Newf(diag.CodeFileTooLarge, diag.Error,
				incCtx, "%q is %d bytes, limit is %d.", inc.rel, info.Size(), limits.MaxFileSize))
			continue
		}

		raw, err := os.ReadFile(resolved)
		if err != nil {
			res.Diags = res.Diags.Append(diag.Newf(diag.CodeFileReadError, diag.Error,
				incCtx, "Reading %q failed: %v.", inc.rel, err))
			continue
		}

		seen[resolved] = true
		stream, streamDiags := extractServices(resolved, string(raw))
		res.Diags = res.Diags.Extend(streamDiags)

		res.Files = append(res.Files, SourceFile{Path: resolved, Dir: filepath.Dir(resolved), Size: info.Size()})
		res.Sources[resolved] = string(raw)
		res.Stats.FileSizes[resolved] = info.Size()
		res.Stats.TotalBytes += info.Size()

		merged.WriteString("\n" + block.Separator + "\n")
		merged.WriteString(resolved)
		merged.WriteString("\n" + block.Separator + "\n")
		merged.WriteString(stream)

		logger.Debug("merged include", "path", resolved, "bytes", info.Size())
	}

	res.Merged = merged.String()
	return res
}

// collectIncludes parses every files: block of the entry file into include
// references.
func collectIncludes(entryPath, content string) ([]includeRef, diag.Diagnostics) {
	var refs []includeRef
	var diags diag.Diagnostics

	for _, b := range block.Segment(content) {
		if b.Kind != block.Files {
			continue
		}
		paths, err := payload.StringList(b.Body())
		if err != nil {
			diags = diags.Append(diag.Newf(diag.CodeInvalidFilesJSON, diag.Error,
				diag.Context{File: entryPath, Content: content, Line: b.Line, Column: 1},
				"%v.", err))
			continue
		}
		for _, p := range paths {
			refs = append(refs, includeRef{rel: p, line: b.Line})
		}
	}
	return refs, diags
}

// resolvePath resolves rel against dir, rejecting paths that escape the
// directory subtree or use a foreign extension.
func resolvePath(dir, rel string) (string, bool) {
	if rel == "" || filepath.IsAbs(rel) {
		return "", false
	}
	if filepath.Ext(rel) != Extension {
		return "", false
	}
	resolved := filepath.Clean(filepath.Join(dir, rel))
	relBack, err := filepath.Rel(dir, resolved)
	if err != nil || relBack == ".." || strings.HasPrefix(relBack, ".."+string(filepath.Separator)) {
		return "", false
	}
	return resolved, true
}

// extractServices keeps only the b-pod blocks of an included file. The
// returned stream has exactly as many lines as the original content, with
// rejected blocks blanked out line by line, so every surviving line keeps
// its original file line number. A version: or profile: block outside the
// entry file is a structural error; the parser re-checks the same rule on
// anything that slips through.
func extractServices(path, content string) (string, diag.Diagnostics) {
	lines := strings.Split(content, "\n")
	var diags diag.Diagnostics

	// handle classifies the segment lines[start:end) and blanks it unless it
	// is a b-pod block.
	handle := func(start, end int) {
		seg := strings.TrimSpace(strings.Join(lines[start:end], "\n"))
		if seg == "" {
			return
		}
		first := start
		for strings.TrimSpace(lines[first]) == "" {
			first++
		}
		fileCtx := diag.Context{File: path, Content: content, Line: first + 1, Column: 1}

		idx := strings.Index(seg, ":")
		kind := block.Unknown
		keyword := ""
		if idx >= 0 {
			keyword = strings.TrimSpace(seg[:idx])
			kind = block.Classify(keyword)
		}

		switch kind {
		case block.Service:
			return
		case block.Version, block.Profile:
			diags = diags.Append(diag.Newf(diag.CodeInvalidSyntax, diag.Error,
				fileCtx, "A %s: block may only appear in the entry file.", keyword))
		case block.Files:
			diags = diags.Append(diag.Newf(diag.CodeInvalidSyntax, diag.Warning,
				fileCtx, "Nested file inclusion is not supported; this files: block is ignored."))
		default:
			if idx < 0 {
				diags = diags.Append(diag.New(diag.CodeMissingColon, diag.Error, fileCtx))
			} else {
				diags = diags.Append(diag.Newf(diag.CodeInvalidSyntax, diag.Error,
					fileCtx, "Unknown block keyword %q.", keyword))
			}
		}
		for i := start; i < end; i++ {
			lines[i] = ""
		}
	}

	segStart := 0
	for i, line := range lines {
		if strings.TrimSpace(line) == block.Separator {
			handle(segStart, i)
			segStart = i + 1
		}
	}
	handle(segStart, len(lines))

	return strings.Join(lines, "\n"), diags
}

// includeLine picks a representative line for project-wide include errors.
func includeLine(refs []includeRef) int {
	if len(refs) == 0 {
		return 1
	}
	return refs[0].line
}
