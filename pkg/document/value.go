package document

import (
	"fmt"
	"math"
	"strconv"
	"strings"

	"github.com/MacroPower/kluars/pkg/kluarserrors"
)

// Kind identifies which variant a [Value] holds.
type Kind int

const (
	KindNull Kind = iota
	KindBool
	KindNumber
	KindString
	KindList
	KindMapping
)

func (k Kind) String() string {
	switch k {
	case KindNull:
		return "null"
	case KindBool:
		return "bool"
	case KindNumber:
		return "number"
	case KindString:
		return "string"
	case KindList:
		return "list"
	case KindMapping:
		return "mapping"
	default:
		return "Kind(" + strconv.Itoa(int(k)) + ")"
	}
}

// Value is one node of a document tree. The zero Value is null.
type Value struct {
	m    *Mapping
	s    string
	list []Value
	n    float64
	kind Kind
	b    bool
}

// Null returns the null [Value].
func Null() Value {
	return Value{}
}

// NewBool returns a bool [Value].
func NewBool(b bool) Value {
	return Value{kind: KindBool, b: b}
}

// NewNumber returns a number [Value].
func NewNumber(n float64) Value {
	return Value{kind: KindNumber, n: n}
}

// NewString returns a string [Value].
func NewString(s string) Value {
	return Value{kind: KindString, s: s}
}

// NewList returns a list [Value] holding items in order.
func NewList(items ...Value) Value {
	if items == nil {
		items = []Value{}
	}

	return Value{kind: KindList, list: items}
}

// FromMapping wraps m as a [Value]. A nil m is treated as an empty mapping.
func FromMapping(m *Mapping) Value {
	if m == nil {
		m = NewMapping()
	}

	return Value{kind: KindMapping, m: m}
}

// Kind returns the variant held by v.
func (v Value) Kind() Kind {
	return v.kind
}

// IsNull reports whether v is null.
func (v Value) IsNull() bool {
	return v.kind == KindNull
}

// AsBool returns the bool held by v.
func (v Value) AsBool() (bool, error) {
	if v.kind != KindBool {
		return false, v.kindError(KindBool)
	}

	return v.b, nil
}

// AsNumber returns the number held by v.
func (v Value) AsNumber() (float64, error) {
	if v.kind != KindNumber {
		return 0, v.kindError(KindNumber)
	}

	return v.n, nil
}

// AsString returns the string held by v.
func (v Value) AsString() (string, error) {
	if v.kind != KindString {
		return "", v.kindError(KindString)
	}

	return v.s, nil
}

// AsList returns the items held by v. The returned slice must not be
// modified.
func (v Value) AsList() ([]Value, error) {
	if v.kind != KindList {
		return nil, v.kindError(KindList)
	}

	return v.list, nil
}

// AsMapping returns the [Mapping] held by v.
func (v Value) AsMapping() (*Mapping, error) {
	if v.kind != KindMapping {
		return nil, v.kindError(KindMapping)
	}

	return v.m, nil
}

// Len returns the number of items in a list or entries in a mapping, and
// zero for every other kind.
func (v Value) Len() int {
	switch v.kind {
	case KindList:
		return len(v.list)
	case KindMapping:
		return v.m.Len()
	default:
		return 0
	}
}

// Index returns the item at the 1-based position i. Lists are indexed
// directly; mappings are probed for the key formatted from i, which is how
// integer-keyed script tables that are not pure sequences are represented.
func (v Value) Index(i int) (Value, bool) {
	switch v.kind {
	case KindList:
		if i < 1 || i > len(v.list) {
			return Value{}, false
		}

		return v.list[i-1], true
	case KindMapping:
		return v.m.Get(strconv.Itoa(i))
	default:
		return Value{}, false
	}
}

// Lookup walks path through nested mappings and returns the value found at
// the end. It returns false if any element along the path is absent or is
// not a mapping.
func (v Value) Lookup(path ...string) (Value, bool) {
	cur := v
	for _, key := range path {
		if cur.kind != KindMapping {
			return Value{}, false
		}

		next, ok := cur.m.Get(key)
		if !ok {
			return Value{}, false
		}

		cur = next
	}

	return cur, true
}

// StringField returns the string found at path. It fails if the field is
// absent, null, or not a string.
func (v Value) StringField(path ...string) (string, error) {
	s, ok, err := v.OptionalStringField(path...)
	if err != nil {
		return "", err
	}

	if !ok {
		return "", fmt.Errorf("%w: missing field %q", kluarserrors.ErrShape, strings.Join(path, "."))
	}

	return s, nil
}

// OptionalStringField returns the string found at path. An absent or null
// field reports false with no error; a field of any other kind is an error.
func (v Value) OptionalStringField(path ...string) (string, bool, error) {
	f, ok := v.Lookup(path...)
	if !ok || f.IsNull() {
		return "", false, nil
	}

	s, err := f.AsString()
	if err != nil {
		return "", false, fmt.Errorf("field %q: %w", strings.Join(path, "."), err)
	}

	return s, true, nil
}

// Equal reports whether v and o hold the same tree. Mapping entry order is
// not significant.
func (v Value) Equal(o Value) bool {
	if v.kind != o.kind {
		return false
	}

	switch v.kind {
	case KindNull:
		return true
	case KindBool:
		return v.b == o.b
	case KindNumber:
		return v.n == o.n || (math.IsNaN(v.n) && math.IsNaN(o.n))
	case KindString:
		return v.s == o.s
	case KindList:
		if len(v.list) != len(o.list) {
			return false
		}

		for i := range v.list {
			if !v.list[i].Equal(o.list[i]) {
				return false
			}
		}

		return true
	case KindMapping:
		return v.m.Equal(o.m)
	default:
		return false
	}
}

// String returns a compact human-readable rendering of v, for log messages.
func (v Value) String() string {
	switch v.kind {
	case KindNull:
		return "null"
	case KindBool:
		return strconv.FormatBool(v.b)
	case KindNumber:
		return formatNumber(v.n)
	case KindString:
		return strconv.Quote(v.s)
	case KindList:
		return fmt.Sprintf("list(%d)", len(v.list))
	case KindMapping:
		return fmt.Sprintf("mapping(%d)", v.m.Len())
	default:
		return v.kind.String()
	}
}

func (v Value) kindError(want Kind) error {
	return fmt.Errorf("%w: expected %s, got %s", kluarserrors.ErrShape, want, v.kind)
}

// integral returns n as an int64 when it has no fractional part and fits.
func integral(n float64) (int64, bool) {
	if math.IsNaN(n) || math.IsInf(n, 0) || n != math.Trunc(n) {
		return 0, false
	}

	if n < math.MinInt64 || n >= math.MaxInt64 {
		return 0, false
	}

	return int64(n), true
}

func formatNumber(n float64) string {
	if i, ok := integral(n); ok {
		return strconv.FormatInt(i, 10)
	}

	return strconv.FormatFloat(n, 'g', -1, 64)
}
