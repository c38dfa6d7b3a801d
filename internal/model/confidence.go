package model

import "sort"

// LowConfidenceThreshold is the score below which an extracted field is
// flagged for human review.
const LowConfidenceThreshold = 70.0

// Confidences maps dot-notation field paths to confidence scores (0-100).
type Confidences map[string]float64

// Clamped returns a copy with every score clamped into [0, 100]. Scores
// outside the range are clamped rather than rejected.
func (c Confidences) Clamped() Confidences {
	out := make(Confidences, len(c))
	for path, score := range c {
		if score < 0 {
			score = 0
		} else if score > 100 {
			score = 100
		}
		out[path] = score
	}
	return out
}

// LowConfidence returns the field paths whose clamped score is below
// LowConfidenceThreshold, sorted lexicographically for determinism.
func (c Confidences) LowConfidence() []string {
	paths := make([]string, 0, len(c))
	for path, score := range c.Clamped() {
		if score < LowConfidenceThreshold {
			paths = append(paths, path)
		}
	}
	sort.Strings(paths)
	return paths
}

// LOIFieldsWithConfidence pairs an LOI record with its per-field confidence
// map and the derived list of low-confidence field paths.
type LOIFieldsWithConfidence struct {
	Data                LOIFields   `json:"data"`
	FieldConfidences    Confidences `json:"field_confidences"`
	LowConfidenceFields []string    `json:"low_confidence_fields"`
}

// NewLOIFieldsWithConfidence clamps the confidence map and derives the
// low-confidence field list.
func NewLOIFieldsWithConfidence(data LOIFields, confidences Confidences) LOIFieldsWithConfidence {
	clamped := confidences.Clamped()
	low := clamped.LowConfidence()
	return LOIFieldsWithConfidence{
		Data:                data,
		FieldConfidences:    clamped,
		LowConfidenceFields: low,
	}
}
