package store

import (
	"context"
	"time"
)

// QueryOpts narrows an event query. Zero values leave a bound off.
// After and Before are exclusive sequence bounds; From and To are
// inclusive timestamps.
type QueryOpts struct {
	Limit  int
	After  int64
	Before int64
	From   time.Time
	To     time.Time
}

// DiagnosisEventData captures one diagnosis submission and its outcome.
// The selected symptoms themselves are never stored, only their count.
type DiagnosisEventData struct {
	SessionID         string
	RequestID         string
	Backend           string
	SymptomCount      int
	Success           bool
	ErrorKind         string
	ErrorMessage      string
	LatencyMs         int64
	SingleCount       int
	CoOccurrenceCount int
	TopLabel          string
	TopConfidence     float64
	HighestSeverity   string
	ResultJSON        string // classified ResultSet, empty on failure
}

// DiagnosisEvent is a stored DiagnosisEventData row.
type DiagnosisEvent struct {
	ID        int
	Sequence  int64
	Timestamp time.Time
	DiagnosisEventData
}

// DiagnosisStats aggregates diagnosis outcomes.
type DiagnosisStats struct {
	Total        int
	Succeeded    int
	Failed       int
	AvgLatencyMs int64
	ByErrorKind  map[string]int
}

// LLMRequestEventData is one call to a language model. RequestBody is the
// transcript that was sent; ResponseBody is the raw answer, kept for
// failed calls too when one came back.
type LLMRequestEventData struct {
	Provider     string
	Model        string
	Purpose      string
	InputTokens  int
	OutputTokens int
	LatencyMs    int64
	Success      bool
	ErrorMessage string
	RequestBody  string
	ResponseBody string
}

// LLMRequestEvent is a stored LLMRequestEventData row.
type LLMRequestEvent struct {
	ID        int
	Sequence  int64
	Timestamp time.Time
	LLMRequestEventData
}

// LLMUsage aggregates LLM token usage for one purpose or model.
type LLMUsage struct {
	Purpose      string
	Model        string
	Calls        int
	InputTokens  int
	OutputTokens int
	AvgLatencyMs int64
}

// EventRepo provides append and query access to domain events.
type EventRepo interface {
	// AppendDiagnosis records a diagnosis submission outcome.
	AppendDiagnosis(ctx context.Context, data DiagnosisEventData) error

	// QueryDiagnosisEvents returns diagnosis events, newest first.
	QueryDiagnosisEvents(ctx context.Context, opts QueryOpts) ([]DiagnosisEvent, error)

	// GetDiagnosisEvent returns the event with id, or nil if absent.
	GetDiagnosisEvent(ctx context.Context, id int) (*DiagnosisEvent, error)

	// DiagnosisStats aggregates every recorded diagnosis event.
	DiagnosisStats(ctx context.Context) (*DiagnosisStats, error)

	// AppendLLMRequest records one model call.
	AppendLLMRequest(ctx context.Context, data LLMRequestEventData) error

	// QueryLLMEvents returns LLM request events, newest first.
	QueryLLMEvents(ctx context.Context, opts QueryOpts) ([]LLMRequestEvent, error)

	// GetLLMEvent returns the event with id, or nil if absent.
	GetLLMEvent(ctx context.Context, id int) (*LLMRequestEvent, error)

	// LLMUsageByPurpose aggregates token usage per purpose label.
	LLMUsageByPurpose(ctx context.Context) ([]LLMUsage, error)

	// LLMUsageByModel aggregates token usage per model.
	LLMUsageByModel(ctx context.Context) ([]LLMUsage, error)
}
