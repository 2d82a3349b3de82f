package quadlet

import (
	"errors"
	"fmt"
	"sort"
	"strconv"
	"strings"
)

// Kind identifies the variant held by a Value.
type Kind int

// Value kinds.
const (
	KindNull Kind = iota
	KindBool
	KindInt
	KindStr
	KindPath
	KindList
	KindMapping
)

var kindNames = map[Kind]string{
	KindNull:    "null",
	KindBool:    "bool",
	KindInt:     "int",
	KindStr:     "string",
	KindPath:    "path",
	KindList:    "list",
	KindMapping: "mapping",
}

func (k Kind) String() string {
	if name, ok := kindNames[k]; ok {
		return name
	}
	return "kind(" + strconv.Itoa(int(k)) + ")"
}

// IsScalar reports whether k is a primitive that can appear inside a List.
func (k Kind) IsScalar() bool {
	switch k {
	case KindBool, KindInt, KindStr, KindPath:
		return true
	default:
		return false
	}
}

// Value is a configuration value. The set of implementations is closed:
// Null, Bool, Int, Str, Path, List and *Mapping.
type Value interface {
	Kind() Kind
	// String returns the text used when the value is written to a unit file.
	String() string
	isValue()
}

// Null marks an absent value. It renders as the empty string.
type Null struct{}

// Bool renders as lowercase true or false.
type Bool bool

// Int is a signed integer value.
type Int int64

// Str is a plain string value.
type Str string

// Path is a filesystem path. It is a distinct primitive from Str.
type Path string

// List holds primitive values of a single kind.
type List []Value

func (Null) Kind() Kind { return KindNull }
func (Bool) Kind() Kind { return KindBool }
func (Int) Kind() Kind { return KindInt }
func (Str) Kind() Kind { return KindStr }
func (Path) Kind() Kind { return KindPath }
func (List) Kind() Kind { return KindList }
func (*Mapping) Kind() Kind { return KindMapping }

func (Null) String() string { return "" }

func (b Bool) String() string {
	if b {
		return "true"
	}
	return "false"
}

func (i Int) String() string { return strconv.FormatInt(int64(i), 10) }
func (s Str) String() string { return string(s) }
func (p Path) String() string { return string(p) }

// String joins the elements with spaces. Unit files never use this form; the
// serializer repeats the key instead.
func (l List) String() string {
	parts := make([]string, len(l))
	for i, v := range l {
		parts[i] = v.String()
	}
	return strings.Join(parts, " ")
}

func (Null) isValue() {}
func (Bool) isValue() {}
func (Int) isValue() {}
func (Str) isValue() {}
func (Path) isValue() {}
func (List) isValue() {}
func (*Mapping) isValue() {}

// ListOf builds a List from the given values.
func ListOf(values ...Value) List {
	l := make(List, len(values))
	copy(l, values)
	return l
}

// Strs builds a List of Str.
func Strs(values ...string) List {
	l := make(List, len(values))
	for i, s := range values {
		l[i] = Str(s)
	}
	return l
}

// ElemKind returns the kind of the list's elements, or KindNull for an empty list.
func (l List) ElemKind() Kind {
	if len(l) == 0 {
		return KindNull
	}
	return l[0].Kind()
}

// Strings returns the elements as strings and whether every element was a Str.
func (l List) Strings() ([]string, bool) {
	out := make([]string, 0, len(l))
	for _, v := range l {
		s, ok := v.(Str)
		if !ok {
			return nil, false
		}
		out = append(out, string(s))
	}
	return out, true
}

// Mapping is an insertion-ordered map from string keys to values.
// The zero value is not usable; create one with NewMapping.
type Mapping struct {
	keys   []string
	values map[string]Value
}

// NewMapping returns an empty mapping.
func NewMapping() *Mapping {
	return &Mapping{values: make(map[string]Value)}
}

// Set stores v under key. New keys are appended to the iteration order;
// existing keys keep their position. A nil v is stored as Null.
func (m *Mapping) Set(key string, v Value) *Mapping {
	if v == nil {
		v = Null{}
	}
	if _, exists := m.values[key]; !exists {
		m.keys = append(m.keys, key)
	}
	m.values[key] = v
	return m
}

// Get returns the value under key.
func (m *Mapping) Get(key string) (Value, bool) {
	if m == nil {
		return nil, false
	}
	v, ok := m.values[key]
	return v, ok
}

// Has reports whether key is present.
func (m *Mapping) Has(key string) bool {
	_, ok := m.Get(key)
	return ok
}

// Keys returns the keys in insertion order.
func (m *Mapping) Keys() []string {
	if m == nil {
		return nil
	}
	keys := make([]string, len(m.keys))
	copy(keys, m.keys)
	return keys
}

// Len returns the number of entries.
func (m *Mapping) Len() int {
	if m == nil {
		return 0
	}
	return len(m.keys)
}

// Section returns the nested mapping stored under name, or nil if the key is
// missing or holds a non-mapping value.
func (m *Mapping) Section(name string) *Mapping {
	v, ok := m.Get(name)
	if !ok {
		return nil
	}
	sub, _ := v.(*Mapping)
	return sub
}

// Clone returns a deep copy of m.
func (m *Mapping) Clone() *Mapping {
	out := NewMapping()
	if m == nil {
		return out
	}
	for _, k := range m.keys {
		out.Set(k, clone(m.values[k]))
	}
	return out
}

// String renders the mapping in the same form as Describe.
func (m *Mapping) String() string {
	return Describe(m)
}

func clone(v Value) Value {
	switch val := v.(type) {
	case *Mapping:
		return val.Clone()
	case List:
		return ListOf(val...)
	default:
		return v
	}
}

// Equal reports whether a and b hold the same variant and contents.
func Equal(a, b Value) bool {
	if a == nil || b == nil {
		return a == nil && b == nil
	}
	if a.Kind() != b.Kind() {
		return false
	}
	switch av := a.(type) {
	case List:
		bv := b.(List)
		if len(av) != len(bv) {
			return false
		}
		for i := range av {
			if !Equal(av[i], bv[i]) {
				return false
			}
		}
		return true
	case *Mapping:
		bv := b.(*Mapping)
		if av.Len() != bv.Len() {
			return false
		}
		for _, k := range av.keys {
			other, ok := bv.values[k]
			if !ok || !Equal(av.values[k], other) {
				return false
			}
		}
		return true
	default:
		return a == b
	}
}

// Describe renders v for humans, quoting strings so that values such as
// "" and null stay distinguishable.
func Describe(v Value) string {
	switch val := v.(type) {
	case nil, Null:
		return "null"
	case Str:
		return strconv.Quote(string(val))
	case Path:
		return strconv.Quote(string(val))
	case List:
		parts := make([]string, len(val))
		for i, e := range val {
			parts[i] = Describe(e)
		}
		return "[" + strings.Join(parts, ", ") + "]"
	case *Mapping:
		if val.Len() == 0 {
			return "{ }"
		}
		parts := make([]string, 0, val.Len())
		for _, k := range val.keys {
			parts = append(parts, strconv.Quote(k)+": "+Describe(val.values[k]))
		}
		return "{ " + strings.Join(parts, ", ") + " }"
	default:
		return v.String()
	}
}

// ErrInvalidValue is returned by FromAny for values outside the model.
var ErrInvalidValue = errors.New("invalid value")

// FromAny classifies a decoded Go value into a Value. Maps with string keys
// become Mappings with keys sorted, since Go maps carry no order; callers that
// care about order should build Mappings directly.
func FromAny(raw any) (Value, error) {
	switch v := raw.(type) {
	case nil:
		return Null{}, nil
	case Value:
		return v, nil
	case bool:
		return Bool(v), nil
	case int:
		return Int(v), nil
	case int32:
		return Int(v), nil
	case int64:
		return Int(v), nil
	case uint:
		return Int(v), nil
	case uint32:
		return Int(v), nil
	case string:
		return Str(v), nil
	case []string:
		return Strs(v...), nil
	case []any:
		return listFromAny(v)
	case map[string]any:
		keys := make([]string, 0, len(v))
		for k := range v {
			keys = append(keys, k)
		}
		sort.Strings(keys)
		m := NewMapping()
		for _, k := range keys {
			val, err := FromAny(v[k])
			if err != nil {
				return nil, fmt.Errorf("key %q: %w", k, err)
			}
			m.Set(k, val)
		}
		return m, nil
	default:
		return nil, fmt.Errorf("%w: unsupported type %T", ErrInvalidValue, raw)
	}
}

func listFromAny(items []any) (List, error) {
	out := make(List, 0, len(items))
	for i, item := range items {
		v, err := FromAny(item)
		if err != nil {
			return nil, fmt.Errorf("index %d: %w", i, err)
		}
		out = append(out, v)
	}
	if err := CheckList(out); err != nil {
		return nil, err
	}
	return out, nil
}

// CheckList verifies the list invariant: primitive elements of a single kind.
func CheckList(l List) error {
	for i, v := range l {
		if !v.Kind().IsScalar() {
			return fmt.Errorf("%w: list element %d is %s, want a primitive", ErrInvalidValue, i, v.Kind())
		}
		if v.Kind() != l.ElemKind() {
			return fmt.Errorf("%w: list mixes %s and %s", ErrInvalidValue, l.ElemKind(), v.Kind())
		}
	}
	return nil
}
