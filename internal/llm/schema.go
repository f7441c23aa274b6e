package llm

import (
	"bytes"
	"encoding/json"
	"fmt"

	"github.com/santhosh-tekuri/jsonschema/v6"
)

// OutputSchema is a JSON Schema the model's answer must satisfy. It is
// compiled once when declared.
type OutputSchema struct {
	// Name is sent to vendors that label structured output, e.g.
	// "diagnosis-results".
	Name        string
	Description string
	Definition  map[string]any

	raw      json.RawMessage
	compiled *jsonschema.Schema
}

// NewOutputSchema compiles def.
func NewOutputSchema(name, description string, def map[string]any) (*OutputSchema, error) {
	raw, err := json.Marshal(def)
	if err != nil {
		return nil, fmt.Errorf("encode schema %s: %w", name, err)
	}
	doc, err := jsonschema.UnmarshalJSON(bytes.NewReader(raw))
	if err != nil {
		return nil, fmt.Errorf("decode schema %s: %w", name, err)
	}

	url := "mem://" + name + ".json"
	c := jsonschema.NewCompiler()
	if err := c.AddResource(url, doc); err != nil {
		return nil, fmt.Errorf("load schema %s: %w", name, err)
	}
	compiled, err := c.Compile(url)
	if err != nil {
		return nil, fmt.Errorf("compile schema %s: %w", name, err)
	}

	return &OutputSchema{
		Name:        name,
		Description: description,
		Definition:  def,
		raw:         raw,
		compiled:    compiled,
	}, nil
}

// MustOutputSchema is NewOutputSchema for package-level declarations.
func MustOutputSchema(name, description string, def map[string]any) *OutputSchema {
	s, err := NewOutputSchema(name, description, def)
	if err != nil {
		panic(err)
	}
	return s
}

// JSON returns the encoded definition.
func (s *OutputSchema) JSON() json.RawMessage { return s.raw }

// Check validates body. Failures are *Error with Kind InvalidOutput.
func (s *OutputSchema) Check(body []byte) error {
	doc, err := jsonschema.UnmarshalJSON(bytes.NewReader(body))
	if err != nil {
		return &Error{Kind: InvalidOutput, Body: body, Err: fmt.Errorf("not JSON: %w", err)}
	}
	if err := s.compiled.Validate(doc); err != nil {
		return &Error{Kind: InvalidOutput, Body: body, Err: err}
	}
	return nil
}
