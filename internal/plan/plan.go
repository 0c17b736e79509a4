// Package plan holds the plan document model and the validator that checks a
// plan against the operation catalog and a live context snapshot before
// anything is dispatched.
package plan

import (
	"encoding/json"
	"fmt"
)

// SupportedVersion is the only plan schema version this engine accepts.
const SupportedVersion = "1.0"

// Target identifies which project/timeline the plan was written against.
// Timeline may be nil when no timeline is active.
type Target struct {
	Project  string  `json:"project"`
	Timeline *string `json:"timeline"`
}

// Operation is one named, schema-constrained mutation request. Params keeps
// the raw decoded JSON values; the validator interprets them against the
// catalog. Once parsed an operation is never mutated.
type Operation struct {
	Op     string                 `json:"op"`
	Params map[string]interface{} `json:"params,omitempty"`
}

// Plan is an ordered, versioned document of preconditions and operations.
// The operation order is load-bearing: later operations may depend on state
// produced by earlier ones, so it must survive serialization unchanged.
type Plan struct {
	Version       string         `json:"version"`
	Target        *Target        `json:"target,omitempty"`
	Preconditions []Precondition `json:"preconditions,omitempty"`
	Operations    []Operation    `json:"operations"`
}

// Declined is the terminal document the interpreter returns when a request
// cannot be satisfied. It shares the plan's JSON envelope but is a distinct
// type so it can never reach the dispatcher.
type Declined struct {
	Version    string `json:"version"`
	Error      string `json:"error"`
	Suggestion string `json:"suggestion,omitempty"`
}

// document is the raw union shape used only during parsing.
type document struct {
	Version       string         `json:"version"`
	Error         string         `json:"error,omitempty"`
	Suggestion    string         `json:"suggestion,omitempty"`
	Target        *Target        `json:"target,omitempty"`
	Preconditions []Precondition `json:"preconditions,omitempty"`
	Operations    []Operation    `json:"operations,omitempty"`
}

// Parse decodes a plan document into exactly one of its two variants. The
// structural JSON-schema pass runs first, so a document carrying both an
// error field and operations is rejected here rather than half-loaded.
func Parse(data []byte) (*Plan, *Declined, error) {
	if err := validateDocumentSchema(data); err != nil {
		return nil, nil, err
	}
	var doc document
	if err := json.Unmarshal(data, &doc); err != nil {
		return nil, nil, fmt.Errorf("decode plan document: %w", err)
	}
	if doc.Error != "" {
		return nil, &Declined{Version: doc.Version, Error: doc.Error, Suggestion: doc.Suggestion}, nil
	}
	return &Plan{
		Version:       doc.Version,
		Target:        doc.Target,
		Preconditions: doc.Preconditions,
		Operations:    doc.Operations,
	}, nil, nil
}

// Encode serializes the plan back to JSON. Round-tripping through
// Encode/Parse preserves the operation order exactly.
func (p *Plan) Encode() ([]byte, error) {
	return json.Marshal(p)
}
