package validate

import (
	"net/url"
	"sort"
	"strings"

	"github.com/hashicorp/hcl/v2"

	"github.com/The-Breeth/bui-compiler/internal/diag"
	"github.com/The-Breeth/bui-compiler/internal/document"
	"github.com/The-Breeth/bui-compiler/internal/payload"
)

// maxDescriptionLen caps profile and service descriptions.
const maxDescriptionLen = 500

var profileFields = map[string]bool{
	"name": true, "logo": true, "description": true, "website": true, "contact": true,
}

// Profile validates a parsed profile payload. On success it returns the
// typed profile along with any advisory warnings; on structural failure the
// profile is nil and every violated constraint is reported.
func Profile(attrs map[string]payload.Attr, ctx diag.Context) (*document.Profile, diag.Diagnostics) {
	var ds diag.Diagnostics
	p := &document.Profile{}

	if attr, ok := attrs["name"]; !ok {
		ds = ds.Append(diag.New(diag.CodeMissingProfileName, diag.Error, ctx))
	} else if name, ok := asString(attr.Value); !ok || strings.TrimSpace(name) == "" {
		ds = ds.Append(diag.NewAtf(diag.CodeMissingProfileName, diag.Error, attr.Range,
			"The name must be a non-empty string."))
	} else {
		p.Name = name
	}

	if attr, ok := attrs["logo"]; !ok {
		ds = ds.Append(diag.New(diag.CodeMissingLogo, diag.Warning, ctx))
		p.Logo = document.DefaultLogoURL
	} else if logo, ok := asString(attr.Value); !ok {
		ds = ds.Append(diag.NewAtf(diag.CodeInvalidProfileField, diag.Error, attr.Range,
			"The logo must be a string."))
	} else if !httpsURL(logo) {
		ds = ds.Append(diag.NewAtf(diag.CodeInvalidLogoURL, diag.Error, attr.Range,
			"Found %q.", logo))
	} else {
		p.Logo = logo
	}

	if attr, ok := attrs["description"]; !ok {
		ds = ds.Append(diag.New(diag.CodeMissingDescription, diag.Warning, ctx))
	} else if desc, ok := asString(attr.Value); !ok {
		ds = ds.Append(diag.NewAtf(diag.CodeInvalidProfileField, diag.Error, attr.Range,
			"The description must be a string."))
	} else {
		// Length is checked independently of the type check so both kinds
		// of problems surface in one compile.
		if len(desc) > maxDescriptionLen {
			ds = ds.Append(diag.NewAtf(diag.CodeDescriptionTooLong, diag.Error, attr.Range,
				"The description is %d characters, limit is %d.", len(desc), maxDescriptionLen))
		}
		p.Description = desc
	}

	if attr, ok := attrs["website"]; !ok {
		ds = ds.Append(diag.New(diag.CodeMissingWebsite, diag.Warning, ctx))
	} else if site, ok := asString(attr.Value); !ok {
		ds = ds.Append(diag.NewAtf(diag.CodeInvalidProfileField, diag.Error, attr.Range,
			"The website must be a string."))
	} else if !httpsURL(site) {
		ds = ds.Append(diag.NewAtf(diag.CodeInvalidWebsiteURL, diag.Error, attr.Range,
			"Found %q.", site))
	} else {
		p.Website = site
	}

	if attr, ok := attrs["contact"]; ok {
		if contact, ok := asString(attr.Value); !ok {
			ds = ds.Append(diag.NewAtf(diag.CodeInvalidProfileField, diag.Error, attr.Range,
				"The contact must be a string."))
		} else {
			p.Contact = contact
		}
	}

	ds = ds.Extend(unknownFields(attrs, profileFields))

	if ds.HasErrors() {
		return nil, ds
	}
	return p, ds
}

// httpsURL reports whether s is an absolute https:// URL.
func httpsURL(s string) bool {
	u, err := url.Parse(s)
	return err == nil && u.Scheme == "https" && u.Host != ""
}

// unknownFields warns about payload keys outside the known set, in a stable
// order.
func unknownFields(attrs map[string]payload.Attr, known map[string]bool) diag.Diagnostics {
	var names []string
	for name := range attrs {
		if !known[name] {
			names = append(names, name)
		}
	}
	sort.Strings(names)

	var ds diag.Diagnostics
	for _, name := range names {
		ds = ds.Append(diag.NewAtf(diag.CodeUnknownField, diag.Warning, attrs[name].Range,
			"Field %q is not part of the schema.", name))
	}
	return ds
}

// attrRange picks the source range of a field, falling back to the owning
// block when the field is absent.
func attrRange(attrs map[string]payload.Attr, key string, ctx diag.Context) hcl.Range {
	if attr, ok := attrs[key]; ok {
		return attr.Range
	}
	return *ctx.Range()
}
