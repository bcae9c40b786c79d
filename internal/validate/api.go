package validate

import (
	"github.com/The-Breeth/bui-compiler/internal/diag"
	"github.com/The-Breeth/bui-compiler/internal/document"
	"github.com/The-Breeth/bui-compiler/internal/payload"
)

// validateAPI checks the remote contract of a service. Each field rule is
// evaluated independently so one malformed api block reports everything
// wrong with it at once.
func validateAPI(attrs map[string]payload.Attr, ctx diag.Context) (*document.API, diag.Diagnostics) {
	var ds diag.Diagnostics

	attr, ok := attrs["api"]
	if !ok {
		return nil, ds.Append(diag.NewAtf(diag.CodeInvalidServiceField, diag.Error, *ctx.Range(),
			"The service declares no api block."))
	}
	if !isObject(attr.Value) {
		return nil, ds.Append(diag.NewAtf(diag.CodeInvalidServiceField, diag.Error, attr.Range,
			"api must be an object."))
	}

	fields := attr.Value.AsValueMap()
	api := &document.API{}

	if u, ok := asString(field(fields, "url")); !ok {
		ds = ds.Append(diag.NewAtf(diag.CodeInvalidAPIURL, diag.Error, attr.Range,
			"api.url must be a string."))
	} else if !httpsURL(u) {
		ds = ds.Append(diag.NewAtf(diag.CodeInvalidAPIURL, diag.Error, attr.Range,
			"Found %q.", u))
	} else {
		api.URL = u
	}

	if method, ok := asString(field(fields, "method")); !ok {
		ds = ds.Append(diag.NewAtf(diag.CodeInvalidHTTPMethod, diag.Error, attr.Range,
			"api.method must be a string."))
	} else if method != "GET" && method != "POST" {
		ds = ds.Append(diag.NewAtf(diag.CodeInvalidHTTPMethod, diag.Error, attr.Range,
			"Found %q.", method))
	} else {
		api.Method = method
	}

	if params, ok := asStringSlice(field(fields, "fileParams")); !ok {
		ds = ds.Append(diag.NewAtf(diag.CodeMissingFileParams, diag.Error, attr.Range,
			"api.fileParams must be an array of strings."))
	} else if len(params) == 0 {
		ds = ds.Append(diag.NewAtf(diag.CodeMissingFileParams, diag.Error, attr.Range,
			"The fileParams array is empty."))
	} else {
		api.FileParams = params
	}

	if bt := field(fields, "bodyTemplate"); !bt.IsNull() {
		if m, ok := asStringMap(bt); !ok {
			ds = ds.Append(diag.NewAtf(diag.CodeInvalidServiceField, diag.Error, attr.Range,
				"api.bodyTemplate must be an object of string values."))
		} else {
			api.BodyTemplate = m
		}
	}

	if rt, ok := asString(field(fields, "responseType")); !ok {
		ds = ds.Append(diag.NewAtf(diag.CodeInvalidResponseType, diag.Error, attr.Range,
			"api.responseType must be a string."))
	} else if rt != "file" && rt != "json" {
		ds = ds.Append(diag.NewAtf(diag.CodeInvalidResponseType, diag.Error, attr.Range,
			"Found %q.", rt))
	} else {
		api.ResponseType = rt
	}

	if headers := field(fields, "headers"); headers.IsNull() {
		ds = ds.Append(diag.NewAt(diag.CodeMissingHeaders, diag.Warning, attr.Range))
	} else if m, ok := asStringMap(headers); !ok {
		ds = ds.Append(diag.NewAtf(diag.CodeInvalidServiceField, diag.Error, attr.Range,
			"api.headers must be an object of string values."))
	} else {
		api.Headers = m
	}

	if timeout := field(fields, "timeout"); timeout.IsNull() {
		ds = ds.Append(diag.NewAt(diag.CodeMissingTimeout, diag.Warning, attr.Range))
	} else if t, ok := asInt(timeout); !ok || t <= 0 {
		ds = ds.Append(diag.NewAtf(diag.CodeInvalidTimeout, diag.Error, attr.Range,
			"api.timeout must be a positive whole number of milliseconds."))
	} else {
		api.Timeout = t
	}

	if retries := field(fields, "retries"); !retries.IsNull() {
		if r, ok := asInt(retries); !ok || r < 0 || r > 5 {
			ds = ds.Append(diag.NewAtf(diag.CodeInvalidRetries, diag.Error, attr.Range,
				"api.retries must be a whole number between 0 and 5."))
		} else {
			api.Retries = r
		}
	}

	if ds.HasErrors() {
		return nil, ds
	}
	return api, ds
}
