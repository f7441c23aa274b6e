package diagnosis

import (
	"encoding/json"
	"errors"
	"fmt"
	"sync"

	"github.com/santhosh-tekuri/jsonschema/v6"
)

// Shape records which envelope a diagnosis response arrived in.
type Shape int

const (
	// ShapeBare is a top-level JSON array of result pairs.
	ShapeBare Shape = iota
	// ShapeWrapped is an object carrying the pairs under "results".
	ShapeWrapped
)

func (s Shape) String() string {
	if s == ShapeWrapped {
		return "wrapped"
	}
	return "bare"
}

// Response is a diagnosis response normalized at the boundary. Whatever
// the envelope, Results holds the entries in service order.
type Response struct {
	Shape   Shape
	Status  string // only set for ShapeWrapped
	Results []RawResult
}

type wrappedResponse struct {
	Status  string      `json:"status"`
	Message string      `json:"message"`
	Results []RawResult `json:"results"`
}

// DecodeResponse validates and normalizes a diagnosis response body.
//
// A wrapped body with status "error" is reported as *TransportError.
// Any body that fails the response schema, including a single bad entry,
// is rejected as *MalformedResponseError.
func DecodeResponse(body []byte) (*Response, error) {
	var parsed any
	if err := json.Unmarshal(body, &parsed); err != nil {
		return nil, &MalformedResponseError{
			Body: body,
			Err:  fmt.Errorf("invalid JSON: %w", err),
		}
	}

	if obj, ok := parsed.(map[string]any); ok {
		if status, _ := obj["status"].(string); status == "error" {
			msg, _ := obj["message"].(string)
			return nil, &TransportError{Message: msg}
		}
	}

	compiled, err := responseSchema()
	if err != nil {
		return nil, fmt.Errorf("compile response schema: %w", err)
	}
	if err := compiled.Validate(parsed); err != nil {
		return nil, &MalformedResponseError{
			Body: body,
			Err:  fmt.Errorf("schema validation failed: %w", err),
		}
	}

	if _, ok := parsed.([]any); ok {
		var results []RawResult
		if err := json.Unmarshal(body, &results); err != nil {
			return nil, &MalformedResponseError{Body: body, Err: err}
		}
		return &Response{Shape: ShapeBare, Results: nonNil(results)}, nil
	}

	var wrapped wrappedResponse
	if err := json.Unmarshal(body, &wrapped); err != nil {
		return nil, &MalformedResponseError{Body: body, Err: err}
	}
	return &Response{
		Shape:   ShapeWrapped,
		Status:  wrapped.Status,
		Results: nonNil(wrapped.Results),
	}, nil
}

// IsMalformed reports whether err is a *MalformedResponseError.
func IsMalformed(err error) bool {
	var me *MalformedResponseError
	return errors.As(err, &me)
}

func nonNil(results []RawResult) []RawResult {
	if results == nil {
		return []RawResult{}
	}
	return results
}

var (
	compileOnce    sync.Once
	compiledSchema *jsonschema.Schema
	compileErr     error
)

// responseSchema compiles ResponseSchema once.
func responseSchema() (*jsonschema.Schema, error) {
	compileOnce.Do(func() {
		// The compiler wants a plain decoded JSON value, so round-trip the
		// Go map through encoding/json.
		defBytes, err := json.Marshal(ResponseSchema)
		if err != nil {
			compileErr = fmt.Errorf("marshal schema definition: %w", err)
			return
		}
		var def any
		if err := json.Unmarshal(defBytes, &def); err != nil {
			compileErr = fmt.Errorf("parse schema definition: %w", err)
			return
		}

		c := jsonschema.NewCompiler()
		const url = "schema://diagnosis-response.json"
		if err := c.AddResource(url, def); err != nil {
			compileErr = fmt.Errorf("add resource: %w", err)
			return
		}
		compiledSchema, compileErr = c.Compile(url)
	})
	return compiledSchema, compileErr
}
