// Package session ties a symptom selection to a diagnosis backend and
// records each submission.
package session

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"sync/atomic"
	"time"

	"github.com/google/uuid"

	"github.com/abhisek/symcheck/internal/backend"
	"github.com/abhisek/symcheck/internal/diagnosis"
	"github.com/abhisek/symcheck/internal/store"
	"github.com/abhisek/symcheck/internal/symptom"
)

// User-facing notices.
const (
	NoticeNoSymptoms = "Please select at least one symptom"
	NoticeFailed     = "Error analyzing symptoms. Please try again."
)

// Options configures a Session.
type Options struct {
	Catalog    symptom.Catalog
	Backend    backend.Backend
	Classifier *diagnosis.Classifier // nil uses the default thresholds
	EventRepo  store.EventRepo       // nil disables event recording
}

// Session holds one user's selection and submits it for diagnosis.
//
// The selector is owned by the caller's goroutine. Prepare snapshots it
// synchronously; Run may then execute elsewhere. When submissions overlap,
// only the latest generation should be displayed.
type Session struct {
	ID      string
	Catalog symptom.Catalog

	selector   *symptom.Selector
	backend    backend.Backend
	classifier *diagnosis.Classifier
	events     store.EventRepo

	generation atomic.Uint64
	now        func() time.Time
}

// New creates a Session with a fresh, empty selection.
func New(opts Options) *Session {
	classifier := opts.Classifier
	if classifier == nil {
		classifier = diagnosis.NewClassifier(diagnosis.DefaultClassifierConfig())
	}
	catalog := opts.Catalog
	if len(catalog.Categories) == 0 {
		catalog = symptom.DefaultCatalog()
	}
	return &Session{
		ID:         uuid.NewString(),
		Catalog:    catalog,
		selector:   symptom.NewSelector(),
		backend:    opts.Backend,
		classifier: classifier,
		events:     opts.EventRepo,
		now:        time.Now,
	}
}

// Selector returns the session's selection.
func (s *Session) Selector() *symptom.Selector {
	return s.selector
}

// BackendName names the configured backend.
func (s *Session) BackendName() string {
	return s.backend.Name()
}

// Submission is a frozen request ready to send.
type Submission struct {
	Generation uint64
	RequestID  string
	Symptoms   []symptom.ID
}

// Outcome is the result of running a Submission. Exactly one of Result
// and Err is set.
type Outcome struct {
	Submission *Submission
	Response   *diagnosis.Response
	Result     *diagnosis.ResultSet
	Err        error
	Latency    time.Duration
}

// Prepare snapshots the current selection into a new Submission. It fails
// with diagnosis.ErrNoSymptoms when nothing is selected; no generation is
// consumed in that case.
func (s *Session) Prepare() (*Submission, error) {
	return s.PrepareSymptoms(s.selector.Snapshot())
}

// PrepareSymptoms builds a Submission for an explicit symptom list.
// Duplicates are removed and the set is sorted.
func (s *Session) PrepareSymptoms(ids []symptom.ID) (*Submission, error) {
	sel := symptom.NewSelector()
	for _, id := range ids {
		if !sel.Has(id) {
			sel.Toggle(id)
		}
	}
	if sel.IsEmpty() {
		return nil, diagnosis.ErrNoSymptoms
	}
	return &Submission{
		Generation: s.generation.Add(1),
		RequestID:  uuid.NewString(),
		Symptoms:   sel.Snapshot(),
	}, nil
}

// IsLatest reports whether gen belongs to the most recent Submission.
func (s *Session) IsLatest(gen uint64) bool {
	return s.generation.Load() == gen
}

// Run sends sub to the backend, classifies the response and records the
// attempt. It is safe to call from any goroutine.
func (s *Session) Run(ctx context.Context, sub *Submission) *Outcome {
	start := s.now()
	out := &Outcome{Submission: sub}

	resp, err := s.backend.Diagnose(ctx, sub.Symptoms)
	out.Latency = s.now().Sub(start)
	if err != nil {
		out.Err = err
	} else {
		out.Response = resp
		out.Result = s.classifier.Classify(resp.Results)
	}

	s.record(ctx, out)
	return out
}

// Submit prepares and runs the current selection.
func (s *Session) Submit(ctx context.Context) *Outcome {
	sub, err := s.Prepare()
	if err != nil {
		return &Outcome{Err: err}
	}
	return s.Run(ctx, sub)
}

// record appends a diagnosis event. Failures are reported but never fail
// the submission.
func (s *Session) record(ctx context.Context, out *Outcome) {
	if s.events == nil {
		return
	}

	data := store.DiagnosisEventData{
		SessionID:    s.ID,
		RequestID:    out.Submission.RequestID,
		Backend:      s.backend.Name(),
		SymptomCount: len(out.Submission.Symptoms),
		Success:      out.Err == nil,
		ErrorKind:    diagnosis.ErrorKind(out.Err),
		LatencyMs:    out.Latency.Milliseconds(),
	}
	if out.Err != nil {
		data.ErrorMessage = out.Err.Error()
	}
	if out.Result != nil {
		data.SingleCount = len(out.Result.Singles)
		data.CoOccurrenceCount = len(out.Result.CoOccurrences)
		if sev, ok := out.Result.HighestSeverity(); ok {
			data.HighestSeverity = sev.String()
		}
		if b, err := json.Marshal(out.Result); err == nil {
			data.ResultJSON = string(b)
		}
	}
	if out.Response != nil {
		if top, ok := topResult(out.Response.Results); ok {
			data.TopLabel = top.Label
			data.TopConfidence = top.Confidence
		}
	}

	// A canceled caller still gets its attempt recorded.
	if ctx.Err() != nil {
		ctx = context.WithoutCancel(ctx)
	}
	if err := s.events.AppendDiagnosis(ctx, data); err != nil {
		fmt.Fprintf(os.Stderr, "warning: failed to record diagnosis event: %v\n", err)
	}
}

func topResult(results []diagnosis.RawResult) (diagnosis.RawResult, bool) {
	if len(results) == 0 {
		return diagnosis.RawResult{}, false
	}
	top := results[0]
	for _, r := range results[1:] {
		if r.Confidence > top.Confidence {
			top = r
		}
	}
	return top, true
}

// Notice returns the single-line message to show for a failed submission,
// or "" when err is nil or the request was canceled.
func Notice(err error) string {
	switch {
	case err == nil:
		return ""
	case errors.Is(err, diagnosis.ErrNoSymptoms):
		return NoticeNoSymptoms
	case errors.Is(err, context.Canceled):
		return ""
	default:
		return NoticeFailed
	}
}
