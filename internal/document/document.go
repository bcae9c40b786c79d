// SPDX-License-Identifier: MIT
// Copyright (c) 2025 The Breeth Authors
//
// This file defines the Document structure, the root artifact produced by a
// compilation.
//
// Why a separate document package?
//
// The document is the boundary between the compiler and its consumers: the
// code generators and the CLI only ever see this package. It carries no
// source positions, raw blocks or cty values; by the time a Document exists,
// everything in it has been validated. Consumers must tolerate a nil Profile
// and an empty Services list.
package document

// SupportedVersion is the only version literal the compiler accepts.
const SupportedVersion = "1.0.0"

// DefaultLogoURL is substituted when a profile declares no logo.
const DefaultLogoURL = "https://breeth.com/assets/default-logo.png"

// Document is the validated compilation result. It is immutable once
// produced.
type Document struct {
	Version  string    `json:"version"`
	Profile  *Profile  `json:"profile,omitempty"`
	Services []Service `json:"services"`
}

// New returns an empty document at the supported version.
func New() *Document {
	return &Document{Version: SupportedVersion, Services: []Service{}}
}

// Profile describes the publisher of a project. At most one exists per
// document.
type Profile struct {
	Name        string `json:"name"`
	Logo        string `json:"logo,omitempty"`
	Description string `json:"description,omitempty"`
	Website     string `json:"website,omitempty"`
	Contact     string `json:"contact,omitempty"`
}

// Service is one pluggable unit: the files it accepts, the inputs it renders,
// a submit action and a remote API contract. Identity is the name, unique
// across the whole project.
type Service struct {
	Name        string   `json:"name"`
	Accepts     []string `json:"accepts"`
	Inputs      []Input  `json:"inputs,omitempty"`
	Submit      Submit   `json:"submit"`
	API         API      `json:"api"`
	Description string   `json:"description,omitempty"`
	Tags        []string `json:"tags,omitempty"`
}

// Input is one form control of a service.
type Input struct {
	Name        string           `json:"name"`
	Type        string           `json:"type"`
	Label       string           `json:"label,omitempty"`
	Options     []string         `json:"options,omitempty"`
	Required    bool             `json:"required,omitempty"`
	Placeholder string           `json:"placeholder,omitempty"`
	Validation  *InputValidation `json:"validation,omitempty"`
}

// InputValidation constrains the values of an input.
type InputValidation struct {
	Min     *float64 `json:"min,omitempty"`
	Max     *float64 `json:"max,omitempty"`
	Pattern string   `json:"pattern,omitempty"`
	Message string   `json:"message,omitempty"`
}

// Submit describes the submit control of a service form.
type Submit struct {
	Label    string `json:"label"`
	Action   string `json:"action,omitempty"`
	Disabled string `json:"disabled,omitempty"`
	Loading  string `json:"loading,omitempty"`
}

// API is the remote contract a service submits to.
type API struct {
	URL          string            `json:"url"`
	Method       string            `json:"method"`
	FileParams   []string          `json:"fileParams"`
	BodyTemplate map[string]string `json:"bodyTemplate,omitempty"`
	ResponseType string            `json:"responseType,omitempty"`
	Headers      map[string]string `json:"headers,omitempty"`
	Timeout      int               `json:"timeout,omitempty"`
	Retries      int               `json:"retries,omitempty"`
}

// InputTypes is the closed set of supported input types.
var InputTypes = []string{
	"text", "textarea", "number", "checkbox", "radio", "dropdown", "toggle", "hidden",
}

// ValidInputType reports whether t is a supported input type.
func ValidInputType(t string) bool {
	for _, known := range InputTypes {
		if t == known {
			return true
		}
	}
	return false
}

// NeedsOptions reports whether the input type requires an options list.
func NeedsOptions(t string) bool {
	return t == "radio" || t == "dropdown"
}
