package diagnosis

// resultPairSchema describes one [label, confidence] entry.
var resultPairSchema = map[string]any{
	"type": "array",
	"prefixItems": []any{
		map[string]any{
			"type":        "string",
			"minLength":   1,
			"description": "Condition name, or condition names joined with '_' for a co-occurrence",
		},
		map[string]any{
			"type":        "number",
			"minimum":     0,
			"maximum":     100,
			"description": "Confidence percentage",
		},
	},
	"minItems": 2,
	"maxItems": 2,
}

// ResponseSchema accepts either a bare ranked list of result pairs or an
// object exposing that list under "results".
var ResponseSchema = map[string]any{
	"$schema": "https://json-schema.org/draft/2020-12/schema",
	"$defs": map[string]any{
		"results": map[string]any{
			"type":  "array",
			"items": resultPairSchema,
		},
	},
	"anyOf": []any{
		map[string]any{"$ref": "#/$defs/results"},
		map[string]any{
			"type":     "object",
			"required": []any{"results"},
			"properties": map[string]any{
				"results": map[string]any{"$ref": "#/$defs/results"},
				"status":  map[string]any{"type": "string"},
			},
		},
	},
}
