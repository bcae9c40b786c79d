package validate

import (
	"strings"
	"testing"

	"github.com/hashicorp/hcl/v2"
	"github.com/stretchr/testify/require"
	"github.com/zclconf/go-cty/cty"

	"github.com/The-Breeth/bui-compiler/internal/diag"
	"github.com/The-Breeth/bui-compiler/internal/document"
	"github.com/The-Breeth/bui-compiler/internal/payload"
)

func testCtx() diag.Context {
	return diag.Context{File: "index.bui", Line: 1, Column: 1}
}

// attr wraps a cty value with a distinct range so tests can tell field-level
// positions from block-level ones.
func attr(line int, v cty.Value) payload.Attr {
	pos := hcl.Pos{Line: line, Column: 3}
	return payload.Attr{Value: v, Range: hcl.Range{Filename: "index.bui", Start: pos, End: pos}}
}

func str(s string) cty.Value { return cty.StringVal(s) }

func strList(items ...string) cty.Value {
	vals := make([]cty.Value, len(items))
	for i, s := range items {
		vals[i] = cty.StringVal(s)
	}
	return cty.TupleVal(vals)
}

func fullProfileAttrs() map[string]payload.Attr {
	return map[string]payload.Attr{
		"name":        attr(2, str("Acme")),
		"logo":        attr(3, str("https://acme.test/logo.png")),
		"description": attr(4, str("Converts things.")),
		"website":     attr(5, str("https://acme.test")),
	}
}

func validAPI() cty.Value {
	return cty.ObjectVal(map[string]cty.Value{
		"url":          str("https://api.acme.test/run"),
		"method":       str("POST"),
		"fileParams":   strList("file"),
		"bodyTemplate": cty.ObjectVal(map[string]cty.Value{"callback": str("{webhook_url}"), "document": str("{file}")}),
		"responseType": str("file"),
		"headers":      cty.ObjectVal(map[string]cty.Value{"x-key": str("k")}),
		"timeout":      cty.NumberIntVal(30000),
	})
}

func fullServiceAttrs() map[string]payload.Attr {
	return map[string]payload.Attr{
		"accepts":     attr(2, strList("txt")),
		"description": attr(3, str("Converts text.")),
		"tags":        attr(4, strList("text")),
		"submit":      attr(5, cty.ObjectVal(map[string]cty.Value{"label": str("Go")})),
		"api":         attr(6, validAPI()),
	}
}

func codeSet(ds diag.Diagnostics) map[diag.Code]bool {
	out := map[diag.Code]bool{}
	for _, d := range ds {
		out[d.Code] = true
	}
	return out
}

func TestProfile_Valid(t *testing.T) {
	t.Parallel()

	p, ds := Profile(fullProfileAttrs(), testCtx())

	require.Empty(t, ds, "diagnostics: %v", ds)
	require.NotNil(t, p)
	require.Equal(t, "Acme", p.Name)
	require.Equal(t, "https://acme.test", p.Website)
}

func TestProfile_MissingNameIsFatal(t *testing.T) {
	t.Parallel()

	attrs := fullProfileAttrs()
	delete(attrs, "name")

	p, ds := Profile(attrs, testCtx())

	require.Nil(t, p)
	require.True(t, ds.HasErrors())
	require.True(t, codeSet(ds)[diag.CodeMissingProfileName])
}

func TestProfile_MissingLogoGetsDefault(t *testing.T) {
	t.Parallel()

	// --- Arrange ---
	attrs := fullProfileAttrs()
	delete(attrs, "logo")

	// --- Act ---
	p, ds := Profile(attrs, testCtx())

	// --- Assert ---
	require.NotNil(t, p, "a missing logo is advisory only")
	require.False(t, ds.HasErrors())
	require.True(t, codeSet(ds)[diag.CodeMissingLogo])
	require.Equal(t, document.DefaultLogoURL, p.Logo)
}

func TestProfile_RejectsPlainHTTP(t *testing.T) {
	t.Parallel()

	attrs := fullProfileAttrs()
	attrs["logo"] = attr(3, str("http://acme.test/logo.png"))
	attrs["website"] = attr(5, str("ftp://acme.test"))

	p, ds := Profile(attrs, testCtx())

	require.Nil(t, p)
	codes := codeSet(ds)
	require.True(t, codes[diag.CodeInvalidLogoURL])
	require.True(t, codes[diag.CodeInvalidWebsiteURL])
}

func TestProfile_DescriptionTooLong(t *testing.T) {
	t.Parallel()

	attrs := fullProfileAttrs()
	attrs["description"] = attr(4, str(strings.Repeat("x", maxDescriptionLen+1)))

	p, ds := Profile(attrs, testCtx())

	require.Nil(t, p)
	require.True(t, codeSet(ds)[diag.CodeDescriptionTooLong])
}

func TestProfile_UnknownFieldsWarnInOrder(t *testing.T) {
	t.Parallel()

	// --- Arrange ---
	attrs := fullProfileAttrs()
	attrs["zeta"] = attr(7, str("x"))
	attrs["alpha"] = attr(6, str("y"))

	// --- Act ---
	p, ds := Profile(attrs, testCtx())

	// --- Assert ---
	require.NotNil(t, p)
	warnings := ds.Warnings()
	require.Len(t, warnings, 2)
	require.Equal(t, diag.CodeUnknownField, warnings[0].Code)
	require.Contains(t, warnings[0].Detail, `"alpha"`, "unknown fields report in name order")
	require.Contains(t, warnings[1].Detail, `"zeta"`)
}

func TestService_Valid(t *testing.T) {
	t.Parallel()

	svc, ds := Service("Convert", fullServiceAttrs(), testCtx())

	require.Empty(t, ds, "diagnostics: %v", ds)
	require.NotNil(t, svc)
	require.Equal(t, "Convert", svc.Name)
	require.Equal(t, []string{"txt"}, svc.Accepts)
	require.Equal(t, "Go", svc.Submit.Label)
	require.Equal(t, "https://api.acme.test/run", svc.API.URL)
	require.Equal(t, map[string]string{"x-key": "k"}, svc.API.Headers)
}

func TestService_CollectsEveryViolation(t *testing.T) {
	t.Parallel()

	// --- Arrange ---
	// Four independent problems in one payload; all must surface at once.
	attrs := map[string]payload.Attr{
		"accepts": attr(2, cty.EmptyTupleVal),
		"submit":  attr(3, cty.ObjectVal(map[string]cty.Value{"label": str("  ")})),
		"api": attr(4, cty.ObjectVal(map[string]cty.Value{
			"url":          str("http://insecure.test"),
			"method":       str("PATCH"),
			"fileParams":   strList("file"),
			"responseType": str("file"),
			"headers":      cty.EmptyObjectVal,
			"timeout":      cty.NumberIntVal(100),
		})),
		"description": attr(5, str("d")),
		"tags":        attr(6, strList("t")),
	}

	// --- Act ---
	svc, ds := Service("Broken", attrs, testCtx())

	// --- Assert ---
	require.Nil(t, svc)
	codes := codeSet(ds.Errors())
	require.True(t, codes[diag.CodeMissingBPodAccepts])
	require.True(t, codes[diag.CodeMissingSubmitLabel])
	require.True(t, codes[diag.CodeInvalidAPIURL])
	require.True(t, codes[diag.CodeInvalidHTTPMethod])
}

func TestService_WrongTypedSubmitFieldsAreReported(t *testing.T) {
	t.Parallel()

	// --- Arrange ---
	attrs := fullServiceAttrs()
	attrs["submit"] = attr(5, cty.ObjectVal(map[string]cty.Value{
		"label":  str("Go"),
		"action": cty.NumberIntVal(42),
	}))

	// --- Act ---
	svc, ds := Service("A", attrs, testCtx())

	// --- Assert ---
	require.Nil(t, svc, "a present field of the wrong type must not validate clean")
	errs := ds.Errors()
	require.Len(t, errs, 1)
	require.Equal(t, diag.CodeInvalidServiceField, errs[0].Code)
	require.Contains(t, errs[0].Detail, "submit.action")
}

func TestService_WrongTypedInputLabelIsReported(t *testing.T) {
	t.Parallel()

	// --- Arrange ---
	attrs := fullServiceAttrs()
	attrs["inputs"] = attr(7, cty.TupleVal([]cty.Value{
		cty.ObjectVal(map[string]cty.Value{
			"name":  str("quality"),
			"type":  str("number"),
			"label": cty.NumberIntVal(7),
		}),
	}))

	// --- Act ---
	svc, ds := Service("A", attrs, testCtx())

	// --- Assert ---
	require.Nil(t, svc)
	errs := ds.Errors()
	require.Len(t, errs, 1)
	require.Equal(t, diag.CodeInvalidServiceField, errs[0].Code)
	require.Contains(t, errs[0].Detail, "label")
}

func TestService_WrongTypedValidationPatternIsReported(t *testing.T) {
	t.Parallel()

	attrs := fullServiceAttrs()
	attrs["inputs"] = attr(7, cty.TupleVal([]cty.Value{
		cty.ObjectVal(map[string]cty.Value{
			"name": str("n"),
			"type": str("text"),
			"validation": cty.ObjectVal(map[string]cty.Value{
				"pattern": cty.NumberIntVal(1),
			}),
		}),
	}))

	svc, ds := Service("A", attrs, testCtx())

	require.Nil(t, svc)
	require.True(t, codeSet(ds.Errors())[diag.CodeInvalidServiceField])
	require.Contains(t, ds.Errors()[0].Detail, "validation.pattern")
}

func TestService_MissingDescriptionAndTagsWarn(t *testing.T) {
	t.Parallel()

	attrs := fullServiceAttrs()
	delete(attrs, "description")
	delete(attrs, "tags")

	svc, ds := Service("A", attrs, testCtx())

	require.NotNil(t, svc)
	require.False(t, ds.HasErrors())
	codes := codeSet(ds)
	require.True(t, codes[diag.CodeMissingServiceDescription])
	require.True(t, codes[diag.CodeMissingTags])
}

func TestService_APIWarnings(t *testing.T) {
	t.Parallel()

	// --- Arrange ---
	attrs := fullServiceAttrs()
	attrs["api"] = attr(6, cty.ObjectVal(map[string]cty.Value{
		"url":          str("https://api.acme.test/run"),
		"method":       str("GET"),
		"fileParams":   strList("file"),
		"responseType": str("json"),
	}))

	// --- Act ---
	svc, ds := Service("A", attrs, testCtx())

	// --- Assert ---
	require.NotNil(t, svc, "missing headers and timeout are advisory")
	require.False(t, ds.HasErrors())
	codes := codeSet(ds)
	require.True(t, codes[diag.CodeMissingHeaders])
	require.True(t, codes[diag.CodeMissingTimeout])
}

func TestService_APIRetriesRange(t *testing.T) {
	t.Parallel()

	base := fullServiceAttrs()
	apiFields := base["api"].Value.AsValueMap()
	apiFields["retries"] = cty.NumberIntVal(9)
	base["api"] = attr(6, cty.ObjectVal(apiFields))

	svc, ds := Service("A", base, testCtx())

	require.Nil(t, svc)
	require.True(t, codeSet(ds)[diag.CodeInvalidRetries])
}

func TestService_InvalidTimeout(t *testing.T) {
	t.Parallel()

	base := fullServiceAttrs()
	apiFields := base["api"].Value.AsValueMap()
	apiFields["timeout"] = cty.NumberIntVal(0)
	base["api"] = attr(6, cty.ObjectVal(apiFields))

	svc, ds := Service("A", base, testCtx())

	require.Nil(t, svc)
	require.True(t, codeSet(ds)[diag.CodeInvalidTimeout])
}

func TestService_InputsValidated(t *testing.T) {
	t.Parallel()

	// --- Arrange ---
	attrs := fullServiceAttrs()
	attrs["inputs"] = attr(7, cty.TupleVal([]cty.Value{
		cty.ObjectVal(map[string]cty.Value{
			"name":  str("quality"),
			"type":  str("number"),
			"label": str("Quality"),
			"validation": cty.ObjectVal(map[string]cty.Value{
				"min": cty.NumberIntVal(1),
				"max": cty.NumberIntVal(100),
			}),
		}),
	}))

	// --- Act ---
	svc, ds := Service("A", attrs, testCtx())

	// --- Assert ---
	require.Empty(t, ds, "diagnostics: %v", ds)
	require.Len(t, svc.Inputs, 1)
	in := svc.Inputs[0]
	require.Equal(t, "quality", in.Name)
	require.NotNil(t, in.Validation)
	require.Equal(t, float64(1), *in.Validation.Min)
}

func TestService_RadioInputNeedsOptions(t *testing.T) {
	t.Parallel()

	attrs := fullServiceAttrs()
	attrs["inputs"] = attr(7, cty.TupleVal([]cty.Value{
		cty.ObjectVal(map[string]cty.Value{"name": str("mode"), "type": str("radio")}),
	}))

	svc, ds := Service("A", attrs, testCtx())

	require.Nil(t, svc)
	require.True(t, codeSet(ds)[diag.CodeMissingInputOptions])
}

func TestService_InvalidInputType(t *testing.T) {
	t.Parallel()

	attrs := fullServiceAttrs()
	attrs["inputs"] = attr(7, cty.TupleVal([]cty.Value{
		cty.ObjectVal(map[string]cty.Value{"name": str("x"), "type": str("slider")}),
	}))

	svc, ds := Service("A", attrs, testCtx())

	require.Nil(t, svc)
	require.True(t, codeSet(ds)[diag.CodeInvalidInputType])
}

func TestService_ValidationRangeInverted(t *testing.T) {
	t.Parallel()

	attrs := fullServiceAttrs()
	attrs["inputs"] = attr(7, cty.TupleVal([]cty.Value{
		cty.ObjectVal(map[string]cty.Value{
			"name": str("n"),
			"type": str("number"),
			"validation": cty.ObjectVal(map[string]cty.Value{
				"min": cty.NumberIntVal(10),
				"max": cty.NumberIntVal(1),
			}),
		}),
	}))

	svc, ds := Service("A", attrs, testCtx())

	require.Nil(t, svc)
	require.True(t, codeSet(ds)[diag.CodeInvalidValidationRange])
}

func TestExtensionFormat(t *testing.T) {
	t.Parallel()

	// --- Arrange ---
	attrs := fullServiceAttrs()
	attrs["accepts"] = attr(2, strList("txt", ".pdf", "TXT", "mp4"))
	svc := &document.Service{Name: "A", Accepts: []string{"txt", ".pdf", "TXT", "mp4"}}

	// --- Act ---
	ds := ExtensionFormat(svc, attrs, testCtx())

	// --- Assert ---
	require.Len(t, ds, 2, "one diagnostic per malformed extension")
	for _, d := range ds {
		require.Equal(t, diag.CodeInvalidFileExtension, d.Code)
	}
}

func TestBodyTemplate_GETMustNotCarryOne(t *testing.T) {
	t.Parallel()

	svc := &document.Service{
		Name: "A",
		API:  document.API{Method: "GET", BodyTemplate: map[string]string{"k": "v"}},
	}

	ds := BodyTemplate(svc, fullServiceAttrs(), testCtx())

	require.Len(t, ds, 1)
	require.Equal(t, diag.CodeBodyTemplateOnGet, ds[0].Code)
}

func TestBodyTemplate_GETWithoutTemplatePasses(t *testing.T) {
	t.Parallel()

	svc := &document.Service{Name: "A", API: document.API{Method: "GET"}}

	ds := BodyTemplate(svc, fullServiceAttrs(), testCtx())

	require.Empty(t, ds)
}

func TestBodyTemplate_POSTRequiresPlaceholders(t *testing.T) {
	t.Parallel()

	// --- Arrange ---
	svc := &document.Service{
		Name: "A",
		API: document.API{
			Method:       "POST",
			FileParams:   []string{"file", "thumb"},
			BodyTemplate: map[string]string{"document": "{file}"},
		},
	}

	// --- Act ---
	ds := BodyTemplate(svc, fullServiceAttrs(), testCtx())

	// --- Assert ---
	codes := codeSet(ds)
	require.True(t, codes[diag.CodeMissingWebhookURL], "the webhook placeholder is mandatory on POST")
	require.True(t, codes[diag.CodeMissingFileParamReference], "{thumb} is never referenced")
	require.Len(t, ds, 2)
}

func TestBodyTemplate_PlaceholdersMayLiveInAnyValue(t *testing.T) {
	t.Parallel()

	svc := &document.Service{
		Name: "A",
		API: document.API{
			Method:       "POST",
			FileParams:   []string{"file"},
			BodyTemplate: map[string]string{"cb": "{webhook_url}", "doc": "{file}"},
		},
	}

	ds := BodyTemplate(svc, fullServiceAttrs(), testCtx())

	require.Empty(t, ds)
}
