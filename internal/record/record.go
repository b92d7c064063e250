package record

import (
	orderedmap "github.com/wk8/go-ordered-map/v2"
)

// Record is a destination object whose keys keep the order they were first
// set in. It marshals to a JSON object in that order.
type Record struct {
	fields *orderedmap.OrderedMap[string, any]
}

// New returns an empty Record.
func New() *Record {
	return &Record{fields: orderedmap.New[string, any]()}
}

// Set stores v under key. Re-setting a key keeps its original position.
func (r *Record) Set(key string, v any) {
	r.fields.Set(key, v)
}

// Get returns the value stored under key.
func (r *Record) Get(key string) (any, bool) {
	return r.fields.Get(key)
}

// Value returns the value stored under key, or nil.
func (r *Record) Value(key string) any {
	v, _ := r.fields.Get(key)
	return v
}

// Has reports whether key is set.
func (r *Record) Has(key string) bool {
	_, ok := r.fields.Get(key)
	return ok
}

// Delete removes key.
func (r *Record) Delete(key string) {
	r.fields.Delete(key)
}

// Len returns the number of keys.
func (r *Record) Len() int {
	return r.fields.Len()
}

// Keys returns the keys in insertion order.
func (r *Record) Keys() []string {
	keys := make([]string, 0, r.fields.Len())
	for pair := r.fields.Oldest(); pair != nil; pair = pair.Next() {
		keys = append(keys, pair.Key)
	}

	return keys
}

// Each calls fn for every key in insertion order.
func (r *Record) Each(fn func(key string, v any)) {
	for pair := r.fields.Oldest(); pair != nil; pair = pair.Next() {
		fn(pair.Key, pair.Value)
	}
}

// MarshalJSON implements json.Marshaler.
func (r *Record) MarshalJSON() ([]byte, error) {
	return r.fields.MarshalJSON()
}
