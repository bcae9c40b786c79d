package validate

import (
	"strings"

	"github.com/The-Breeth/bui-compiler/internal/diag"
	"github.com/The-Breeth/bui-compiler/internal/document"
	"github.com/The-Breeth/bui-compiler/internal/payload"
)

var serviceFields = map[string]bool{
	"accepts": true, "inputs": true, "submit": true, "api": true,
	"description": true, "tags": true,
}

// Service validates a parsed b-pod payload under its extracted name. On
// structural failure the service is nil and every violated constraint is
// reported; advisory warnings are returned either way.
func Service(name string, attrs map[string]payload.Attr, ctx diag.Context) (*document.Service, diag.Diagnostics) {
	var ds diag.Diagnostics
	svc := &document.Service{Name: name}

	if attr, ok := attrs["accepts"]; !ok {
		ds = ds.Append(diag.New(diag.CodeMissingBPodAccepts, diag.Error, ctx))
	} else if accepts, ok := asStringSlice(attr.Value); !ok {
		ds = ds.Append(diag.NewAtf(diag.CodeMissingBPodAccepts, diag.Error, attr.Range,
			"accepts must be an array of strings."))
	} else if len(accepts) == 0 {
		ds = ds.Append(diag.NewAtf(diag.CodeMissingBPodAccepts, diag.Error, attr.Range,
			"The accepts array is empty."))
	} else {
		svc.Accepts = accepts
	}

	if attr, ok := attrs["inputs"]; ok {
		if !isList(attr.Value) {
			ds = ds.Append(diag.NewAtf(diag.CodeInvalidServiceField, diag.Error, attr.Range,
				"inputs must be an array of objects."))
		} else {
			idx := 0
			it := attr.Value.ElementIterator()
			for it.Next() {
				_, elem := it.Element()
				input, inputDiags := validateInput(idx, elem, attr, ctx)
				ds = ds.Extend(inputDiags)
				if input != nil {
					svc.Inputs = append(svc.Inputs, *input)
				}
				idx++
			}
		}
	}

	submit, submitDiags := validateSubmit(attrs, ctx)
	ds = ds.Extend(submitDiags)
	if submit != nil {
		svc.Submit = *submit
	}

	api, apiDiags := validateAPI(attrs, ctx)
	ds = ds.Extend(apiDiags)
	if api != nil {
		svc.API = *api
	}

	if attr, ok := attrs["description"]; !ok {
		ds = ds.Append(diag.New(diag.CodeMissingServiceDescription, diag.Warning, ctx))
	} else if desc, ok := asString(attr.Value); !ok {
		ds = ds.Append(diag.NewAtf(diag.CodeInvalidServiceField, diag.Error, attr.Range,
			"The description must be a string."))
	} else {
		if len(desc) > maxDescriptionLen {
			ds = ds.Append(diag.NewAtf(diag.CodeDescriptionTooLong, diag.Error, attr.Range,
				"The description is %d characters, limit is %d.", len(desc), maxDescriptionLen))
		}
		svc.Description = desc
	}

	if attr, ok := attrs["tags"]; !ok {
		ds = ds.Append(diag.New(diag.CodeMissingTags, diag.Warning, ctx))
	} else if tags, ok := asStringSlice(attr.Value); !ok {
		ds = ds.Append(diag.NewAtf(diag.CodeInvalidServiceField, diag.Error, attr.Range,
			"tags must be an array of strings."))
	} else {
		svc.Tags = tags
	}

	ds = ds.Extend(unknownFields(attrs, serviceFields))

	if ds.HasErrors() {
		return nil, ds
	}
	return svc, ds
}

// validateSubmit checks the submit block: the label is required, everything
// else is free-form.
func validateSubmit(attrs map[string]payload.Attr, ctx diag.Context) (*document.Submit, diag.Diagnostics) {
	var ds diag.Diagnostics

	attr, ok := attrs["submit"]
	if !ok {
		return nil, ds.Append(diag.NewAtf(diag.CodeMissingSubmitLabel, diag.Error, *ctx.Range(),
			"The service declares no submit block."))
	}
	if !isObject(attr.Value) {
		return nil, ds.Append(diag.NewAtf(diag.CodeInvalidServiceField, diag.Error, attr.Range,
			"submit must be an object."))
	}

	fields := attr.Value.AsValueMap()
	submit := &document.Submit{}

	if label, ok := asString(field(fields, "label")); !ok || strings.TrimSpace(label) == "" {
		ds = ds.Append(diag.NewAtf(diag.CodeMissingSubmitLabel, diag.Error, attr.Range,
			"submit.label must be a non-empty string."))
	} else {
		submit.Label = label
	}

	submit.Action, ds = optionalString(field(fields, "action"), "submit.action", attr.Range, ds)
	submit.Disabled, ds = optionalString(field(fields, "disabled"), "submit.disabled", attr.Range, ds)
	submit.Loading, ds = optionalString(field(fields, "loading"), "submit.loading", attr.Range, ds)

	if ds.HasErrors() {
		return nil, ds
	}
	return submit, ds
}
