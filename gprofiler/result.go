package gprofiler

import (
	"bytes"
	"encoding/json"
	"fmt"
)

// Result is one enriched term returned by the g:GOSt profile endpoint. The
// service does not guarantee a complete column set, so every statistical field
// is optional: a nil pointer means the service omitted that value. Naming also
// varies between API versions, so decoding falls back across known aliases
// (term_name <- name <- description, term_id <- native <- id).
type Result struct {
	Source   string
	TermID   string
	TermName string

	PValue              *float64
	AdjustedPValue      *float64
	IntersectionSize    *int
	EffectiveDomainSize *int
	QuerySize           *int
	Precision           *float64
	Recall              *float64

	// Intersections holds the intersecting gene identifiers when the service
	// returns a list. Scalar values land in IntersectionsScalar verbatim.
	Intersections       []string
	IntersectionsScalar string
	HasIntersections    bool
}

type resultJSON struct {
	Source      string `json:"source"`
	TermID      string `json:"term_id"`
	Native      string `json:"native"`
	ID          string `json:"id"`
	TermName    string `json:"term_name"`
	Name        string `json:"name"`
	Description string `json:"description"`

	PValue              *float64 `json:"p_value"`
	AdjustedPValue      *float64 `json:"adjusted_p_value"`
	IntersectionSize    *int     `json:"intersection_size"`
	EffectiveDomainSize *int     `json:"effective_domain_size"`
	QuerySize           *int     `json:"query_size"`
	Precision           *float64 `json:"precision"`
	Recall              *float64 `json:"recall"`

	Intersections json.RawMessage `json:"intersections"`
}

func (r *Result) UnmarshalJSON(data []byte) error {
	var raw resultJSON
	if err := json.Unmarshal(data, &raw); err != nil {
		return err
	}

	r.Source = raw.Source
	r.TermID = firstNonEmpty(raw.TermID, raw.Native, raw.ID)
	r.TermName = firstNonEmpty(raw.TermName, raw.Name, raw.Description)
	r.PValue = raw.PValue
	r.AdjustedPValue = raw.AdjustedPValue
	r.IntersectionSize = raw.IntersectionSize
	r.EffectiveDomainSize = raw.EffectiveDomainSize
	r.QuerySize = raw.QuerySize
	r.Precision = raw.Precision
	r.Recall = raw.Recall

	r.Intersections = nil
	r.IntersectionsScalar = ""
	r.HasIntersections = false
	if len(raw.Intersections) == 0 || bytes.Equal(raw.Intersections, []byte("null")) {
		return nil
	}

	var list []string
	if err := json.Unmarshal(raw.Intersections, &list); err == nil {
		r.Intersections = list
		r.HasIntersections = true
		return nil
	}

	var scalar interface{}
	if err := json.Unmarshal(raw.Intersections, &scalar); err == nil && scalar != nil {
		r.IntersectionsScalar = fmt.Sprint(scalar)
		r.HasIntersections = true
	}

	return nil
}

func firstNonEmpty(candidates ...string) string {
	for _, c := range candidates {
		if c != "" {
			return c
		}
	}

	return ""
}
