package store

import (
	"entgo.io/ent/dialect/sql/schema"
	"entgo.io/ent/schema/field"
)

const (
	diagnosisEventsTable  = "diagnosis_events"
	llmRequestEventsTable = "llm_request_events"
)

// eventColumns prepends the columns shared by every event table: an
// auto-increment id, the global sequence number and the UTC timestamp.
func eventColumns(cols ...*schema.Column) []*schema.Column {
	base := []*schema.Column{
		{Name: "id", Type: field.TypeInt, Increment: true},
		{Name: "sequence", Type: field.TypeInt64, Unique: true},
		{Name: "timestamp", Type: field.TypeTime},
	}
	return append(base, cols...)
}

// eventTable builds a table whose first column is the primary key, indexed
// on timestamp plus the named columns.
func eventTable(name string, cols []*schema.Column, indexed ...string) *schema.Table {
	t := &schema.Table{
		Name:       name,
		Columns:    cols,
		PrimaryKey: []*schema.Column{cols[0]},
	}
	byName := make(map[string]*schema.Column, len(cols))
	for _, c := range cols {
		byName[c.Name] = c
	}
	for _, n := range append([]string{"timestamp"}, indexed...) {
		t.Indexes = append(t.Indexes, &schema.Index{
			Name:    name + "_" + n,
			Columns: []*schema.Column{byName[n]},
		})
	}
	return t
}

var (
	diagnosisEventColumns = eventColumns(
		&schema.Column{Name: "session_id", Type: field.TypeString},
		&schema.Column{Name: "request_id", Type: field.TypeString},
		&schema.Column{Name: "backend", Type: field.TypeString},
		&schema.Column{Name: "symptom_count", Type: field.TypeInt, Default: 0},
		&schema.Column{Name: "success", Type: field.TypeBool},
		&schema.Column{Name: "error_kind", Type: field.TypeString, Default: ""},
		&schema.Column{Name: "error_message", Type: field.TypeString, Default: ""},
		&schema.Column{Name: "latency_ms", Type: field.TypeInt64, Default: 0},
		&schema.Column{Name: "single_count", Type: field.TypeInt, Default: 0},
		&schema.Column{Name: "co_occurrence_count", Type: field.TypeInt, Default: 0},
		&schema.Column{Name: "top_label", Type: field.TypeString, Default: ""},
		&schema.Column{Name: "top_confidence", Type: field.TypeFloat64, Default: 0},
		&schema.Column{Name: "highest_severity", Type: field.TypeString, Default: ""},
		&schema.Column{Name: "result_json", Type: field.TypeString, Size: 2147483647, Default: ""},
	)
	diagnosisEventTable = eventTable(diagnosisEventsTable, diagnosisEventColumns,
		"session_id", "success")

	llmRequestEventColumns = eventColumns(
		&schema.Column{Name: "provider", Type: field.TypeString},
		&schema.Column{Name: "model", Type: field.TypeString},
		&schema.Column{Name: "purpose", Type: field.TypeString},
		&schema.Column{Name: "input_tokens", Type: field.TypeInt, Default: 0},
		&schema.Column{Name: "output_tokens", Type: field.TypeInt, Default: 0},
		&schema.Column{Name: "latency_ms", Type: field.TypeInt64, Default: 0},
		&schema.Column{Name: "success", Type: field.TypeBool},
		&schema.Column{Name: "error_message", Type: field.TypeString, Default: ""},
		&schema.Column{Name: "request_body", Type: field.TypeString, Size: 2147483647, Default: ""},
		&schema.Column{Name: "response_body", Type: field.TypeString, Size: 2147483647, Default: ""},
	)
	llmRequestEventTable = eventTable(llmRequestEventsTable, llmRequestEventColumns,
		"provider", "purpose", "success")

	// sequenceTable holds a single row, the next sequence number to hand out.
	sequenceColumns = []*schema.Column{
		{Name: "id", Type: field.TypeInt},
		{Name: "next_val", Type: field.TypeInt64, Default: 1},
	}
	sequenceTable = &schema.Table{
		Name:       sequenceTableName,
		Columns:    sequenceColumns,
		PrimaryKey: sequenceColumns[:1],
	}

	tables = []*schema.Table{
		diagnosisEventTable,
		llmRequestEventTable,
		sequenceTable,
	}
)
