package racecard

// Field carries one source's claim about a single attribute: the observed
// value, a heuristic confidence weight in [0,1], and a provenance note
// describing where the value was read from (for example "feed: WinOdds").
// Absent observations are represented by a nil *Field, never by a sentinel
// value.
type Field[T any] struct {
	Value      T       `json:"value"`
	Confidence float64 `json:"confidence"`
	Provenance string  `json:"provenance,omitempty"`
}

// NewField is a convenience constructor for observed fields.
func NewField[T any](value T, confidence float64, provenance string) *Field[T] {
	return &Field[T]{Value: value, Confidence: confidence, Provenance: provenance}
}

// Clone returns an independent copy of the field.
func (f *Field[T]) Clone() *Field[T] {
	if f == nil {
		return nil
	}
	copied := *f
	return &copied
}
