package validate

import (
	"strconv"
	"strings"

	"github.com/zclconf/go-cty/cty"

	"github.com/The-Breeth/bui-compiler/internal/diag"
	"github.com/The-Breeth/bui-compiler/internal/document"
	"github.com/The-Breeth/bui-compiler/internal/payload"
)

// validateInput checks one element of a service's inputs array. idx is only
// used to name the input in diagnostics when it has no usable name.
func validateInput(idx int, v cty.Value, owner payload.Attr, ctx diag.Context) (*document.Input, diag.Diagnostics) {
	var ds diag.Diagnostics

	if !isObject(v) {
		return nil, ds.Append(diag.NewAtf(diag.CodeInvalidServiceField, diag.Error, owner.Range,
			"inputs[%d] must be an object.", idx))
	}

	fields := v.AsValueMap()
	input := &document.Input{}

	label := inputLabel(idx, fields)

	if name, ok := asString(field(fields, "name")); !ok || strings.TrimSpace(name) == "" {
		ds = ds.Append(diag.NewAtf(diag.CodeInvalidServiceField, diag.Error, owner.Range,
			"%s must carry a non-empty string name.", label))
	} else {
		input.Name = name
	}

	if typ, ok := asString(field(fields, "type")); !ok {
		ds = ds.Append(diag.NewAtf(diag.CodeInvalidInputType, diag.Error, owner.Range,
			"%s must carry a string type.", label))
	} else if !document.ValidInputType(typ) {
		ds = ds.Append(diag.NewAtf(diag.CodeInvalidInputType, diag.Error, owner.Range,
			"%s has type %q.", label, typ))
	} else {
		input.Type = typ
	}

	input.Label, ds = optionalString(field(fields, "label"), label+": label", owner.Range, ds)
	input.Placeholder, ds = optionalString(field(fields, "placeholder"), label+": placeholder", owner.Range, ds)

	if req := field(fields, "required"); !req.IsNull() {
		if b, ok := asBool(req); !ok {
			ds = ds.Append(diag.NewAtf(diag.CodeInvalidServiceField, diag.Error, owner.Range,
				"%s: required must be a boolean.", label))
		} else {
			input.Required = b
		}
	}

	// The options rule depends only on the declared type string, so it fires
	// even when other fields of the input are broken.
	if typ, _ := asString(field(fields, "type")); document.NeedsOptions(typ) {
		if opts, ok := asStringSlice(field(fields, "options")); !ok || len(opts) == 0 {
			ds = ds.Append(diag.NewAtf(diag.CodeMissingInputOptions, diag.Error, owner.Range,
				"%s is a %s input.", label, typ))
		} else {
			input.Options = opts
		}
	} else if opts, ok := asStringSlice(field(fields, "options")); ok {
		input.Options = opts
	}

	if val := field(fields, "validation"); !val.IsNull() {
		validation, valDiags := validateInputValidation(label, val, owner)
		ds = ds.Extend(valDiags)
		input.Validation = validation
	}

	if ds.HasErrors() {
		return nil, ds
	}
	return input, ds
}

// validateInputValidation checks the nested validation object of an input.
func validateInputValidation(label string, v cty.Value, owner payload.Attr) (*document.InputValidation, diag.Diagnostics) {
	var ds diag.Diagnostics

	if !isObject(v) {
		return nil, ds.Append(diag.NewAtf(diag.CodeInvalidServiceField, diag.Error, owner.Range,
			"%s: validation must be an object.", label))
	}

	fields := v.AsValueMap()
	out := &document.InputValidation{}

	if minVal := field(fields, "min"); !minVal.IsNull() {
		if f, ok := asNumber(minVal); !ok {
			ds = ds.Append(diag.NewAtf(diag.CodeInvalidServiceField, diag.Error, owner.Range,
				"%s: validation.min must be a number.", label))
		} else {
			out.Min = &f
		}
	}
	if maxVal := field(fields, "max"); !maxVal.IsNull() {
		if f, ok := asNumber(maxVal); !ok {
			ds = ds.Append(diag.NewAtf(diag.CodeInvalidServiceField, diag.Error, owner.Range,
				"%s: validation.max must be a number.", label))
		} else {
			out.Max = &f
		}
	}
	if out.Min != nil && out.Max != nil && *out.Min > *out.Max {
		ds = ds.Append(diag.NewAtf(diag.CodeInvalidValidationRange, diag.Error, owner.Range,
			"%s has min %v and max %v.", label, *out.Min, *out.Max))
	}

	out.Pattern, ds = optionalString(field(fields, "pattern"), label+": validation.pattern", owner.Range, ds)
	out.Message, ds = optionalString(field(fields, "message"), label+": validation.message", owner.Range, ds)

	if ds.HasErrors() {
		return nil, ds
	}
	return out, ds
}

// inputLabel names an input for diagnostics, preferring its declared name.
func inputLabel(idx int, fields map[string]cty.Value) string {
	if name, ok := asString(field(fields, "name")); ok && name != "" {
		return "input \"" + name + "\""
	}
	return "input #" + strconv.Itoa(idx)
}
