package diagnosis

import (
	"fmt"
	"math"
)

// Severity grades the urgency of a co-occurrence candidate.
type Severity int

const (
	SeverityMild Severity = iota
	SeverityModerate
	SeveritySevere
)

func (s Severity) String() string {
	switch s {
	case SeveritySevere:
		return "Severe"
	case SeverityModerate:
		return "Moderate"
	default:
		return "Mild"
	}
}

// MarshalText encodes the severity by name.
func (s Severity) MarshalText() ([]byte, error) {
	return []byte(s.String()), nil
}

// UnmarshalText decodes a severity name.
func (s *Severity) UnmarshalText(text []byte) error {
	switch string(text) {
	case "Severe":
		*s = SeveritySevere
	case "Moderate":
		*s = SeverityModerate
	case "Mild":
		*s = SeverityMild
	default:
		return fmt.Errorf("unknown severity %q", text)
	}
	return nil
}

// SeverityBand maps confidences at or above Min to a tier and its advice.
type SeverityBand struct {
	Min      float64
	Severity Severity
	Message  string
}

// SeverityBands is evaluated top-down; the first band whose Min the
// confidence reaches wins. The last band catches everything.
var SeverityBands = []SeverityBand{
	{Min: 70, Severity: SeveritySevere, Message: "Immediate medical attention recommended"},
	{Min: 50, Severity: SeverityModerate, Message: "Medical consultation advised"},
	{Min: math.Inf(-1), Severity: SeverityMild, Message: "Monitor symptoms carefully"},
}

// Grade returns the first band in bands matching confidence.
func Grade(bands []SeverityBand, confidence float64) SeverityBand {
	for _, b := range bands {
		if confidence >= b.Min {
			return b
		}
	}
	return bands[len(bands)-1]
}
