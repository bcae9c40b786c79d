// Package validate applies the structural and cross-field schema rules to
// parsed profile and service payloads. Validation is total: advisory
// conditions are always re-checked and reported as warnings even when the
// payload is otherwise valid, and every violated constraint is surfaced in
// one pass rather than stopping at the first.
package validate

import (
	"github.com/hashicorp/hcl/v2"
	"github.com/zclconf/go-cty/cty"

	"github.com/The-Breeth/bui-compiler/internal/diag"
)

// field looks up a key of an unwrapped object, standing in a null for
// absent keys.
func field(fields map[string]cty.Value, key string) cty.Value {
	if v, ok := fields[key]; ok {
		return v
	}
	return cty.NullVal(cty.DynamicPseudoType)
}

// optionalString unwraps an optional string field. An absent field is fine;
// a present field of the wrong type is reported, never silently dropped.
func optionalString(v cty.Value, what string, rng hcl.Range, ds diag.Diagnostics) (string, diag.Diagnostics) {
	if v.IsNull() {
		return "", ds
	}
	if s, ok := asString(v); ok {
		return s, ds
	}
	return "", ds.Append(diag.NewAtf(diag.CodeInvalidServiceField, diag.Error, rng,
		"%s must be a string.", what))
}

// asString unwraps a non-null cty string.
func asString(v cty.Value) (string, bool) {
	if v.IsNull() || v.Type() != cty.String {
		return "", false
	}
	return v.AsString(), true
}

// asNumber unwraps a non-null cty number as float64.
func asNumber(v cty.Value) (float64, bool) {
	if v.IsNull() || v.Type() != cty.Number {
		return 0, false
	}
	f, _ := v.AsBigFloat().Float64()
	return f, true
}

// asInt unwraps a non-null whole cty number.
func asInt(v cty.Value) (int, bool) {
	if v.IsNull() || v.Type() != cty.Number {
		return 0, false
	}
	bf := v.AsBigFloat()
	if !bf.IsInt() {
		return 0, false
	}
	i, _ := bf.Int64()
	return int(i), true
}

// asBool unwraps a non-null cty bool.
func asBool(v cty.Value) (bool, bool) {
	if v.IsNull() || v.Type() != cty.Bool {
		return false, false
	}
	return v.True(), true
}

// isList reports whether v is a JSON array value.
func isList(v cty.Value) bool {
	return !v.IsNull() && (v.Type().IsTupleType() || v.Type().IsListType())
}

// isObject reports whether v is a JSON object value.
func isObject(v cty.Value) bool {
	return !v.IsNull() && (v.Type().IsObjectType() || v.Type().IsMapType())
}

// asStringSlice unwraps a JSON array whose elements are all strings.
func asStringSlice(v cty.Value) ([]string, bool) {
	if !isList(v) {
		return nil, false
	}
	out := []string{}
	it := v.ElementIterator()
	for it.Next() {
		_, elem := it.Element()
		s, ok := asString(elem)
		if !ok {
			return nil, false
		}
		out = append(out, s)
	}
	return out, true
}

// asStringMap unwraps a JSON object whose values are all strings.
func asStringMap(v cty.Value) (map[string]string, bool) {
	if !isObject(v) {
		return nil, false
	}
	out := map[string]string{}
	it := v.ElementIterator()
	for it.Next() {
		key, elem := it.Element()
		s, ok := asString(elem)
		if !ok {
			return nil, false
		}
		out[key.AsString()] = s
	}
	return out, true
}
