package validate

import (
	"regexp"
	"sort"
	"strings"

	"github.com/The-Breeth/bui-compiler/internal/diag"
	"github.com/The-Breeth/bui-compiler/internal/document"
	"github.com/The-Breeth/bui-compiler/internal/payload"
)

// extensionRe constrains accepted file extensions: lowercase alphanumeric,
// no leading dot.
var extensionRe = regexp.MustCompile(`^[a-z0-9]+$`)

// webhookPlaceholder must appear somewhere in a POST service's body template.
const webhookPlaceholder = "{webhook_url}"

// ExtensionFormat checks every accepted extension of an already validated
// service. It correlates nothing but still runs separately from Service so a
// format problem can block the service without re-running the whole schema.
func ExtensionFormat(svc *document.Service, attrs map[string]payload.Attr, ctx diag.Context) diag.Diagnostics {
	var ds diag.Diagnostics
	rng := attrRange(attrs, "accepts", ctx)

	for _, ext := range svc.Accepts {
		if !extensionRe.MatchString(ext) {
			ds = ds.Append(diag.NewAtf(diag.CodeInvalidFileExtension, diag.Error, rng,
				"Service %q accepts %q.", svc.Name, ext))
		}
	}
	return ds
}

// BodyTemplate checks the completeness of a service's body template against
// its declared file parameters and method. GET services must not carry a
// template at all; POST services must reference the webhook placeholder and
// every file parameter.
func BodyTemplate(svc *document.Service, attrs map[string]payload.Attr, ctx diag.Context) diag.Diagnostics {
	var ds diag.Diagnostics
	rng := attrRange(attrs, "api", ctx)

	if svc.API.Method == "GET" {
		if len(svc.API.BodyTemplate) > 0 {
			ds = ds.Append(diag.NewAtf(diag.CodeBodyTemplateOnGet, diag.Error, rng,
				"Service %q uses GET.", svc.Name))
		}
		return ds
	}

	var joined strings.Builder
	keys := make([]string, 0, len(svc.API.BodyTemplate))
	for k := range svc.API.BodyTemplate {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	for _, k := range keys {
		joined.WriteString(svc.API.BodyTemplate[k])
		joined.WriteString("\n")
	}
	body := joined.String()

	if !strings.Contains(body, webhookPlaceholder) {
		ds = ds.Append(diag.NewAtf(diag.CodeMissingWebhookURL, diag.Error, rng,
			"Service %q.", svc.Name))
	}
	for _, param := range svc.API.FileParams {
		if !strings.Contains(body, "{"+param+"}") {
			ds = ds.Append(diag.NewAtf(diag.CodeMissingFileParamReference, diag.Error, rng,
				"Service %q never references {%s}.", svc.Name, param))
		}
	}
	return ds
}
