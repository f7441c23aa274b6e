package diagnosis

import "strings"

const (
	// HighConfidenceThreshold is the confidence (exclusive) above which a
	// single candidate is emphasized.
	HighConfidenceThreshold = 60.0

	// SignificantThreshold is the confidence (exclusive) a co-occurrence
	// must exceed to be shown at all.
	SignificantThreshold = 40.0
)

// ClassifierConfig holds the thresholds used by a Classifier.
type ClassifierConfig struct {
	HighConfidence float64
	Significant    float64
	Bands          []SeverityBand
}

// DefaultClassifierConfig returns the standard thresholds and severity table.
func DefaultClassifierConfig() ClassifierConfig {
	return ClassifierConfig{
		HighConfidence: HighConfidenceThreshold,
		Significant:    SignificantThreshold,
		Bands:          SeverityBands,
	}
}

// Classifier turns a ranked result list into a ResultSet.
// It holds no mutable state and is safe for concurrent use.
type Classifier struct {
	cfg ClassifierConfig
}

// NewClassifier creates a Classifier.
func NewClassifier(cfg ClassifierConfig) *Classifier {
	if len(cfg.Bands) == 0 {
		cfg.Bands = SeverityBands
	}
	return &Classifier{cfg: cfg}
}

// Classify partitions results into singles and significant co-occurrences.
// Input order is preserved within each bucket.
func (c *Classifier) Classify(results []RawResult) *ResultSet {
	set := &ResultSet{
		Singles:       []SingleCandidate{},
		CoOccurrences: []CoOccurrence{},
	}

	for _, r := range results {
		if !IsCoOccurrence(r.Label) {
			set.Singles = append(set.Singles, SingleCandidate{
				Label:          r.Label,
				Confidence:     r.Confidence,
				HighConfidence: r.Confidence > c.cfg.HighConfidence,
			})
			continue
		}

		if r.Confidence <= c.cfg.Significant {
			continue
		}

		conditions := SplitLabel(r.Label)
		band := Grade(c.cfg.Bands, r.Confidence)
		set.CoOccurrences = append(set.CoOccurrences, CoOccurrence{
			Label:      r.Label,
			Conditions: conditions,
			Phrase:     strings.Join(conditions, " + "),
			Confidence: r.Confidence,
			Severity:   band.Severity,
			Message:    band.Message,
		})
	}

	return set
}

var defaultClassifier = NewClassifier(DefaultClassifierConfig())

// Classify runs the default Classifier.
func Classify(results []RawResult) *ResultSet {
	return defaultClassifier.Classify(results)
}
