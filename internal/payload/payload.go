// Package payload parses the JSON object literals embodied in profile and
// b-pod blocks. Payloads are parsed with hcl's JSON syntax so every problem
// inside a payload carries an exact file/line/column, even though the payload
// sits somewhere in the middle of a larger source file.
package payload

import (
	"fmt"

	"github.com/hashicorp/hcl/v2"
	hcljson "github.com/hashicorp/hcl/v2/json"
	"github.com/zclconf/go-cty/cty"
	ctyjson "github.com/zclconf/go-cty/cty/json"
)

// Attr is one top-level payload field: its fully evaluated value and the
// source range it was written at.
type Attr struct {
	Value cty.Value
	Range hcl.Range
}

// Object parses a JSON object literal that starts at the given file-relative
// position. All nested structure is evaluated into cty values up front.
func Object(src, filename string, start hcl.Pos) (map[string]Attr, hcl.Diagnostics) {
	file, diags := hcljson.ParseWithStartPos([]byte(src), filename, start)
	if diags.HasErrors() || file == nil || file.Body == nil {
		return nil, diags
	}

	attrs, moreDiags := file.Body.JustAttributes()
	diags = append(diags, moreDiags...)
	if moreDiags.HasErrors() {
		return nil, diags
	}

	out := make(map[string]Attr, len(attrs))
	for name, attr := range attrs {
		val, valDiags := attr.Expr.Value(nil)
		diags = append(diags, valDiags...)
		if valDiags.HasErrors() {
			continue
		}
		out[name] = Attr{Value: val, Range: attr.Range}
	}
	return out, diags
}

// StringList decodes a JSON array of strings, as used by the files block.
func StringList(src string) ([]string, error) {
	ty, err := ctyjson.ImpliedType([]byte(src))
	if err != nil {
		return nil, err
	}
	if !ty.IsTupleType() && !ty.IsListType() {
		return nil, fmt.Errorf("expected a JSON array, got %s", ty.FriendlyName())
	}

	val, err := ctyjson.Unmarshal([]byte(src), ty)
	if err != nil {
		return nil, err
	}

	var out []string
	it := val.ElementIterator()
	for it.Next() {
		_, elem := it.Element()
		if elem.IsNull() || elem.Type() != cty.String {
			return nil, fmt.Errorf("expected a JSON array of strings")
		}
		out = append(out, elem.AsString())
	}
	return out, nil
}
