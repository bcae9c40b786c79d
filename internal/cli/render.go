package cli

import (
	"fmt"
	"io"

	"github.com/hashicorp/hcl/v2"

	"github.com/The-Breeth/bui-compiler/internal/compiler"
	"github.com/The-Breeth/bui-compiler/internal/diag"
)

// renderWidth is the wrap width for diagnostic output.
const renderWidth = 100

// renderDiagnostics prints every diagnostic of a compile with its source
// snippet, errors first, then a one-line summary.
func renderDiagnostics(w io.Writer, res *compiler.Result) {
	all := diag.Diagnostics{}.Extend(res.Errors).Extend(res.Warnings)
	if len(all) == 0 {
		return
	}

	files := make(map[string]*hcl.File, len(res.Sources))
	for path, src := range res.Sources {
		files[path] = &hcl.File{Bytes: []byte(src)}
	}

	writer := hcl.NewDiagnosticTextWriter(w, files, renderWidth, false)
	_ = writer.WriteDiagnostics(all.ToHCL())

	fmt.Fprintf(w, "%d error(s), %d warning(s)\n", len(res.Errors), len(res.Warnings))
}
