package diagnosis

import (
	"encoding/json"
	"fmt"
	"strings"
)

// Separator joins condition names in a co-occurrence label ("dengue_malaria").
const Separator = "_"

// RawResult is one ranked entry returned by the diagnosis service.
// On the wire it is the pair [label, confidence].
type RawResult struct {
	Label      string
	Confidence float64 // 0–100
}

// MarshalJSON encodes the result as a [label, confidence] pair.
func (r RawResult) MarshalJSON() ([]byte, error) {
	return json.Marshal([2]any{r.Label, r.Confidence})
}

// UnmarshalJSON decodes a [label, confidence] pair. It does not validate
// ranges; DecodeResponse does that against the response schema.
func (r *RawResult) UnmarshalJSON(data []byte) error {
	var pair []json.RawMessage
	if err := json.Unmarshal(data, &pair); err != nil {
		return fmt.Errorf("result must be a [label, confidence] pair: %w", err)
	}
	if len(pair) != 2 {
		return fmt.Errorf("result must have 2 items, got %d", len(pair))
	}
	if err := json.Unmarshal(pair[0], &r.Label); err != nil {
		return fmt.Errorf("label: %w", err)
	}
	if err := json.Unmarshal(pair[1], &r.Confidence); err != nil {
		return fmt.Errorf("confidence: %w", err)
	}
	return nil
}

// IsCoOccurrence reports whether label names more than one condition.
func IsCoOccurrence(label string) bool {
	return strings.Contains(label, Separator)
}

// SplitLabel returns the condition names in a co-occurrence label, in
// label order.
func SplitLabel(label string) []string {
	return strings.Split(label, Separator)
}

// SingleCandidate is a result naming one condition.
type SingleCandidate struct {
	Label          string  `json:"label"`
	Confidence     float64 `json:"confidence"`
	HighConfidence bool    `json:"high_confidence"` // display emphasis only
}

// CoOccurrence is a significant result naming two or more conditions
// suspected together.
type CoOccurrence struct {
	Label      string   `json:"label"`
	Conditions []string `json:"conditions"`
	Phrase     string   `json:"phrase"` // conditions joined with " + "
	Confidence float64  `json:"confidence"`
	Severity   Severity `json:"severity"`
	Message    string   `json:"message"`
}

// ResultSet is the classified, presentation-ready form of one diagnosis
// response. Both slices are always non-nil so an empty bucket encodes as [].
type ResultSet struct {
	Singles       []SingleCandidate `json:"singles"`
	CoOccurrences []CoOccurrence    `json:"co_occurrences"`
}

// IsEmpty reports whether neither bucket has entries.
func (r *ResultSet) IsEmpty() bool {
	return len(r.Singles) == 0 && len(r.CoOccurrences) == 0
}

// HighestSeverity returns the most urgent tier among the co-occurrences
// and false when there are none.
func (r *ResultSet) HighestSeverity() (Severity, bool) {
	if len(r.CoOccurrences) == 0 {
		return SeverityMild, false
	}
	top := r.CoOccurrences[0].Severity
	for _, c := range r.CoOccurrences[1:] {
		if c.Severity > top {
			top = c.Severity
		}
	}
	return top, true
}
