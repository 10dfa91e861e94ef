package profile

import "time"

// SemanticType is the inferred analytical category of a column,
// distinct from its raw storage form.
type SemanticType string

const (
	TypeNumeric     SemanticType = "numeric"
	TypeCategorical SemanticType = "categorical"
	TypeDatetime    SemanticType = "datetime"
	TypeText        SemanticType = "text"
	TypeBoolean     SemanticType = "boolean"
)

// ColumnProfile summarises one column of a dataset snapshot. It is
// immutable once computed.
type ColumnProfile struct {
	Name          string       `json:"name"`
	Type          SemanticType `json:"type"`
	NullRatio     float64      `json:"null_ratio"`
	DistinctCount int          `json:"distinct_count"`

	// Monotonic is only meaningful for numeric and datetime columns.
	Monotonic bool `json:"monotonic,omitempty"`

	// Min/Max are set for numeric columns, MinTime/MaxTime for
	// datetime columns.
	Min     *float64   `json:"min,omitempty"`
	Max     *float64   `json:"max,omitempty"`
	MinTime *time.Time `json:"min_time,omitempty"`
	MaxTime *time.Time `json:"max_time,omitempty"`

	// Degraded marks a column that could not be read cleanly and was
	// forced to text instead of aborting the whole profile.
	Degraded bool `json:"degraded,omitempty"`
}

// DatasetProfile is the ordered per-column summary of one dataset
// snapshot. It is created per import and discarded with the session.
type DatasetProfile struct {
	Dataset  string          `json:"dataset"`
	RowCount int             `json:"row_count"`
	Columns  []ColumnProfile `json:"columns"`

	// Sampled reports whether statistics were computed over a row
	// sample rather than the full dataset, and SampledRows how many
	// rows the sample contained.
	Sampled     bool `json:"sampled"`
	SampledRows int  `json:"sampled_rows"`

	// Warnings carries per-column profiling failures that were
	// absorbed as degraded columns.
	Warnings []string `json:"warnings,omitempty"`
}

// Column returns the profile of the named column, or nil if the
// dataset has no such column.
func (dp *DatasetProfile) Column(name string) *ColumnProfile {
	for i := range dp.Columns {
		if dp.Columns[i].Name == name {
			return &dp.Columns[i]
		}
	}
	return nil
}
