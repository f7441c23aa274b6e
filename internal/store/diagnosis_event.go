package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	entsql "entgo.io/ent/dialect/sql"
)

var diagnosisColumns = []string{
	"session_id", "request_id", "backend", "symptom_count", "success",
	"error_kind", "error_message", "latency_ms", "single_count",
	"co_occurrence_count", "top_label", "top_confidence",
	"highest_severity", "result_json",
}

func (r *eventRepo) AppendDiagnosis(ctx context.Context, data DiagnosisEventData) error {
	err := r.insert(ctx, diagnosisEventsTable, diagnosisColumns, []any{
		data.SessionID,
		data.RequestID,
		data.Backend,
		data.SymptomCount,
		data.Success,
		data.ErrorKind,
		data.ErrorMessage,
		data.LatencyMs,
		data.SingleCount,
		data.CoOccurrenceCount,
		data.TopLabel,
		data.TopConfidence,
		data.HighestSeverity,
		data.ResultJSON,
	})
	if err != nil {
		return fmt.Errorf("save diagnosis event: %w", err)
	}
	return nil
}

func (r *eventRepo) QueryDiagnosisEvents(ctx context.Context, opts QueryOpts) ([]DiagnosisEvent, error) {
	cols := append([]string{"id", "sequence", "timestamp"}, diagnosisColumns...)
	query, args := selectEvents(diagnosisEventsTable, cols, opts).Query()

	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("query diagnosis events: %w", err)
	}
	defer rows.Close()

	var events []DiagnosisEvent
	for rows.Next() {
		e, err := scanDiagnosisEvent(rows)
		if err != nil {
			return nil, fmt.Errorf("scan diagnosis event: %w", err)
		}
		events = append(events, *e)
	}
	return events, rows.Err()
}

func (r *eventRepo) GetDiagnosisEvent(ctx context.Context, id int) (*DiagnosisEvent, error) {
	t := sqlite().Table(diagnosisEventsTable)
	cols := append([]string{"id", "sequence", "timestamp"}, diagnosisColumns...)
	query, args := sqlite().Select(t.Columns(cols...)...).
		From(t).
		Where(entsql.EQ(t.C("id"), id)).
		Query()

	e, err := scanDiagnosisEvent(r.db.QueryRowContext(ctx, query, args...))
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("get diagnosis event: %w", err)
	}
	return e, nil
}

func (r *eventRepo) DiagnosisStats(ctx context.Context) (*DiagnosisStats, error) {
	t := sqlite().Table(diagnosisEventsTable)
	query, args := sqlite().Select(
		t.C("success"),
		t.C("error_kind"),
		entsql.Count("*"),
		entsql.Sum(t.C("latency_ms")),
	).From(t).GroupBy(t.C("success"), t.C("error_kind")).Query()

	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("query diagnosis stats: %w", err)
	}
	defer rows.Close()

	stats := &DiagnosisStats{ByErrorKind: map[string]int{}}
	var latencySum int64
	for rows.Next() {
		var (
			success bool
			kind    string
			count   int
			latency int64
		)
		if err := rows.Scan(&success, &kind, &count, &latency); err != nil {
			return nil, fmt.Errorf("scan diagnosis stats: %w", err)
		}
		stats.Total += count
		latencySum += latency
		if success {
			stats.Succeeded += count
			continue
		}
		stats.Failed += count
		stats.ByErrorKind[kind] += count
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	if stats.Total > 0 {
		stats.AvgLatencyMs = latencySum / int64(stats.Total)
	}
	return stats, nil
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanDiagnosisEvent(row rowScanner) (*DiagnosisEvent, error) {
	var e DiagnosisEvent
	err := row.Scan(
		&e.ID,
		&e.Sequence,
		&e.Timestamp,
		&e.SessionID,
		&e.RequestID,
		&e.Backend,
		&e.SymptomCount,
		&e.Success,
		&e.ErrorKind,
		&e.ErrorMessage,
		&e.LatencyMs,
		&e.SingleCount,
		&e.CoOccurrenceCount,
		&e.TopLabel,
		&e.TopConfidence,
		&e.HighestSeverity,
		&e.ResultJSON,
	)
	if err != nil {
		return nil, err
	}
	return &e, nil
}
