package model

// RowStatus tags a batch row with the mutation it requests. The grid on the
// client submits edited rows with one of these three tags; anything else is
// rejected instead of being silently skipped.
type RowStatus string

const (
	RowInsert RowStatus = "INSERT"
	RowUpdate RowStatus = "UPDATE"
	RowDelete RowStatus = "DELETE"
)

// Valid reports whether the tag is one of the three known mutations.
func (s RowStatus) Valid() bool {
	switch s {
	case RowInsert, RowUpdate, RowDelete:
		return true
	}
	return false
}

func (s RowStatus) String() string {
	return string(s)
}
