package document

import (
	orderedmap "github.com/wk8/go-ordered-map/v2"
)

// Mapping is a string-keyed mapping that preserves insertion order.
type Mapping struct {
	om *orderedmap.OrderedMap[string, Value]
}

// NewMapping returns an empty [Mapping].
func NewMapping() *Mapping {
	return &Mapping{om: orderedmap.New[string, Value]()}
}

// Set stores v under key. Setting an existing key replaces its value in
// place, keeping the key's original position.
func (m *Mapping) Set(key string, v Value) {
	m.om.Set(key, v)
}

// Get returns the value stored under key.
func (m *Mapping) Get(key string) (Value, bool) {
	if m == nil {
		return Value{}, false
	}

	return m.om.Get(key)
}

// Len returns the number of entries.
func (m *Mapping) Len() int {
	if m == nil {
		return 0
	}

	return m.om.Len()
}

// Keys returns the keys in insertion order.
func (m *Mapping) Keys() []string {
	keys := make([]string, 0, m.Len())
	m.Range(func(k string, _ Value) bool {
		keys = append(keys, k)

		return true
	})

	return keys
}

// Range calls fn for each entry in insertion order until fn returns false.
func (m *Mapping) Range(fn func(key string, v Value) bool) {
	if m == nil {
		return
	}

	for pair := m.om.Oldest(); pair != nil; pair = pair.Next() {
		if !fn(pair.Key, pair.Value) {
			return
		}
	}
}

// Equal reports whether m and o hold the same entries, ignoring order.
func (m *Mapping) Equal(o *Mapping) bool {
	if m.Len() != o.Len() {
		return false
	}

	equal := true

	m.Range(func(k string, v Value) bool {
		ov, ok := o.Get(k)
		if !ok || !v.Equal(ov) {
			equal = false
		}

		return equal
	})

	return equal
}
