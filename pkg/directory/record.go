// Package directory defines the canonical account and entitlement domain
// objects for the roster connector, along with the record mapping,
// attribute-delta resolution, and schema inference that translate between
// the backing store's untyped field bags and those objects.
package directory

// Record is one raw row from the backing store: a store-assigned internal
// identifier plus an untyped set of named fields. Field values may be
// strings, numbers, booleans, arrays, or linked-record references depending
// on how the table is configured; the mapping layer is responsible for
// coercing them defensively.
type Record struct {
	ID     string
	Fields map[string]any
}

// Get returns the named field value, or nil if absent.
func (r Record) Get(name string) any {
	if r.Fields == nil {
		return nil
	}
	return r.Fields[name]
}

// EnsureString coerces a raw field value to a string. Any value whose
// underlying type is not a plain string yields the empty string: numbers,
// booleans, arrays, attachments, and linked-record references are all
// flattened to "".
func EnsureString(v any) string {
	if s, ok := v.(string); ok {
		return s
	}
	return ""
}
