package lang

import (
	"bytes"
	"iter"
	"slices"

	"github.com/goccy/go-yaml"
)

// Kind tags the variant held by a [Node].
type Kind uint8

const (
	KindScalar  Kind = iota // scalar
	KindMapping             // mapping
)

// String returns the name of the kind.
func (k Kind) String() string {
	switch k {
	case KindScalar:
		return "scalar"
	case KindMapping:
		return "mapping"
	default:
		return "unknown"
	}
}

// Node is one value in the configuration tree: either a scalar string or a
// nested [Mapping].
type Node struct {
	kind    Kind
	scalar  string
	mapping *Mapping
}

// Scalar returns a scalar node holding v verbatim.
func Scalar(v string) *Node {
	return &Node{kind: KindScalar, scalar: v}
}

// Nested returns a mapping node wrapping m.
// A nil m is replaced with an empty mapping.
func Nested(m *Mapping) *Node {
	if m == nil {
		m = NewMapping()
	}

	return &Node{kind: KindMapping, mapping: m}
}

// Kind reports which variant n holds.
func (n *Node) Kind() Kind { return n.kind }

// Scalar returns the scalar value of n and whether n is a scalar.
func (n *Node) Scalar() (string, bool) {
	return n.scalar, n.kind == KindScalar
}

// Mapping returns the mapping held by n and whether n is a mapping.
func (n *Node) Mapping() (*Mapping, bool) {
	if n.kind != KindMapping {
		return nil, false
	}

	return n.mapping, true
}

func (n *Node) clone() *Node {
	if n.kind == KindMapping {
		return Nested(n.mapping.Clone())
	}

	return Scalar(n.scalar)
}

// MarshalJSON implements json.Marshaler.
func (n *Node) MarshalJSON() ([]byte, error) {
	if n.kind == KindMapping {
		return n.mapping.MarshalJSON()
	}

	return marshalString(n.scalar)
}

func (n *Node) yamlValue() any {
	if n.kind == KindMapping {
		return n.mapping.yamlValue()
	}

	return n.scalar
}

// Mapping is a string-keyed map that remembers insertion order.
// Replacing the value of an existing key keeps the key's position.
type Mapping struct {
	keys   []string
	values map[string]*Node
}

// NewMapping returns an empty mapping.
func NewMapping() *Mapping {
	return &Mapping{values: make(map[string]*Node)}
}

// Len returns the number of keys in m.
func (m *Mapping) Len() int {
	if m == nil {
		return 0
	}

	return len(m.keys)
}

// Keys returns the keys of m in insertion order.
func (m *Mapping) Keys() []string {
	if m == nil {
		return nil
	}

	return slices.Clone(m.keys)
}

// All returns an iterator over the entries of m in insertion order.
func (m *Mapping) All() iter.Seq2[string, *Node] {
	return func(yield func(string, *Node) bool) {
		if m == nil {
			return
		}

		for _, k := range m.keys {
			if !yield(k, m.values[k]) {
				return
			}
		}
	}
}

// Get returns the node stored under key.
func (m *Mapping) Get(key string) (*Node, bool) {
	if m == nil {
		return nil, false
	}

	n, ok := m.values[key]

	return n, ok
}

// Set stores n under key.
func (m *Mapping) Set(key string, n *Node) {
	if _, ok := m.values[key]; !ok {
		m.keys = append(m.keys, key)
	}

	m.values[key] = n
}

// SetScalar stores the scalar v under key.
func (m *Mapping) SetScalar(key, v string) {
	m.Set(key, Scalar(v))
}

// Ensure returns the mapping stored under key, creating it if key is absent.
// A scalar stored under key is replaced by a new empty mapping.
func (m *Mapping) Ensure(key string) *Mapping {
	if n, ok := m.values[key]; ok {
		if sub, ok := n.Mapping(); ok {
			return sub
		}
	}

	sub := NewMapping()
	m.Set(key, Nested(sub))

	return sub
}

// Clone returns a deep copy of m.
func (m *Mapping) Clone() *Mapping {
	c := NewMapping()

	for k, n := range m.All() {
		c.Set(k, n.clone())
	}

	return c
}

// Merge returns a new mapping holding the entries of m overridden by the
// entries of over. The merge is shallow: a key present in both takes the
// value from over as a whole.
func (m *Mapping) Merge(over *Mapping) *Mapping {
	c := m.Clone()

	for k, n := range over.All() {
		c.Set(k, n.clone())
	}

	return c
}

// MarshalJSON implements json.Marshaler, preserving key order.
func (m *Mapping) MarshalJSON() ([]byte, error) {
	if m == nil {
		return []byte("{}"), nil
	}

	var buf bytes.Buffer

	buf.WriteByte('{')

	for i, k := range m.keys {
		if i > 0 {
			buf.WriteByte(',')
		}

		key, err := marshalString(k)
		if err != nil {
			return nil, err
		}

		val, err := m.values[k].MarshalJSON()
		if err != nil {
			return nil, err
		}

		buf.Write(key)
		buf.WriteByte(':')
		buf.Write(val)
	}

	buf.WriteByte('}')

	return buf.Bytes(), nil
}

func (m *Mapping) yamlValue() any {
	s := make(yaml.MapSlice, 0, m.Len())

	for k, n := range m.All() {
		s = append(s, yaml.MapItem{Key: k, Value: n.yamlValue()})
	}

	return s
}
