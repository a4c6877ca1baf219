package screening

// Field names with meaning beyond display.
const (
	candidateKey = "Candidate Name"
	errorKey     = "Error"
	ratingKey    = "Rating"
)

// Record is an insertion-ordered mapping of field names to string values.
// The rendered table's column order follows first appearance, so plain maps
// are not enough.
type Record struct {
	keys   []string
	values map[string]string
}

// NewRecord returns an empty record.
func NewRecord() *Record {
	return &Record{values: make(map[string]string)}
}

// ErrorRecord returns a record with exactly one field, Error.
func ErrorRecord(msg string) *Record {
	rec := NewRecord()
	rec.Set(errorKey, msg)
	return rec
}

// Set inserts or overwrites a field. An existing field keeps its position.
func (r *Record) Set(key, value string) {
	if _, ok := r.values[key]; !ok {
		r.keys = append(r.keys, key)
	}
	r.values[key] = value
}

// Get returns the field's value and whether it is present.
func (r *Record) Get(key string) (string, bool) {
	v, ok := r.values[key]
	return v, ok
}

// Keys returns the field names in insertion order.
func (r *Record) Keys() []string {
	return r.keys
}

// Len returns the number of fields.
func (r *Record) Len() int {
	return len(r.keys)
}
