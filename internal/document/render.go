package document

import (
	"encoding/json"
	"fmt"
)

// RenderJSON serializes the document for the generator collaborators. The
// output round-trips through ParseJSON without field loss.
func (d *Document) RenderJSON() ([]byte, error) {
	out, err := json.MarshalIndent(d, "", "  ")
	if err != nil {
		return nil, fmt.Errorf("render document: %w", err)
	}
	return out, nil
}

// ParseJSON reads a document previously produced by RenderJSON.
func ParseJSON(data []byte) (*Document, error) {
	var d Document
	if err := json.Unmarshal(data, &d); err != nil {
		return nil, fmt.Errorf("parse document: %w", err)
	}
	if d.Services == nil {
		d.Services = []Service{}
	}
	return &d, nil
}
