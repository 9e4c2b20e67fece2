package domain

// Entity names used in log attributes, metric labels, and load reports.
const (
	EntityArticle   = "article"
	EntityReference = "reference"
	EntityLink      = "link"
)

// ValidEntities contains every entity name.
var ValidEntities = []string{EntityArticle, EntityReference, EntityLink}

// IsValidEntity checks if name is one of ValidEntities.
func IsValidEntity(name string) bool {
	for _, e := range ValidEntities {
		if e == name {
			return true
		}
	}
	return false
}

// RecordError describes one rejected record in a multi-record load.
type RecordError struct {
	Row    int    `json:"row"`
	Entity string `json:"entity"`
	Field  string `json:"field"`
	Reason string `json:"reason"`
}

// LoadResult summarizes a fixture load. Each record is stored on its own;
// one failure does not undo the others.
type LoadResult struct {
	TotalRecords int           `json:"total_records"`
	SuccessCount int           `json:"success_count"`
	FailureCount int           `json:"failure_count"`
	Errors       []RecordError `json:"errors,omitempty"`
}

// Fail records one rejected record and the field errors that rejected it.
func (r *LoadResult) Fail(errs ...RecordError) {
	r.FailureCount++
	r.Errors = append(r.Errors, errs...)
}
