package entity

import (
	"bytes"
	"encoding/json"
	"fmt"
	"sort"

	"gopkg.in/yaml.v3"
)

// Fields is an insertion-ordered mapping of field names to values. It is the
// shape of every compiled payload: values are scalars, []any sequences, or
// nested *Fields mappings, never live descriptors. Marshalling to JSON or
// YAML preserves insertion order, so repeated marshals of the same Fields
// are byte-identical.
type Fields struct {
	keys   []string
	values map[string]any
}

// NewFields returns an empty ordered mapping.
func NewFields() *Fields {
	return &Fields{values: make(map[string]any)}
}

// FieldsFromMap builds a Fields from a plain map, converting nested maps all
// the way down. Keys are inserted in sorted order since Go maps carry no
// ordering of their own.
func FieldsFromMap(m map[string]any) *Fields {
	f := NewFields()
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	for _, k := range keys {
		f.Set(k, cloneValue(m[k]))
	}
	return f
}

// Set assigns a value. A new key is appended at the end; re-setting an
// existing key keeps its original position. Returns f for chaining.
func (f *Fields) Set(key string, value any) *Fields {
	if _, ok := f.values[key]; !ok {
		f.keys = append(f.keys, key)
	}
	f.values[key] = value
	return f
}

// Get returns the value for key and whether it is present.
func (f *Fields) Get(key string) (any, bool) {
	v, ok := f.values[key]
	return v, ok
}

// GetString returns the value for key if it is a string.
func (f *Fields) GetString(key string) (string, bool) {
	v, ok := f.values[key]
	if !ok {
		return "", false
	}
	s, ok := v.(string)
	return s, ok
}

// GetList returns the value for key if it is a sequence.
func (f *Fields) GetList(key string) ([]any, bool) {
	v, ok := f.values[key]
	if !ok {
		return nil, false
	}
	l, ok := v.([]any)
	return l, ok
}

// GetFields returns the value for key if it is a nested mapping.
func (f *Fields) GetFields(key string) (*Fields, bool) {
	v, ok := f.values[key]
	if !ok {
		return nil, false
	}
	m, ok := v.(*Fields)
	return m, ok
}

// Has reports whether key is present.
func (f *Fields) Has(key string) bool {
	_, ok := f.values[key]
	return ok
}

// Delete removes key and returns its previous value.
func (f *Fields) Delete(key string) (any, bool) {
	v, ok := f.values[key]
	if !ok {
		return nil, false
	}
	delete(f.values, key)
	for i, k := range f.keys {
		if k == key {
			f.keys = append(f.keys[:i], f.keys[i+1:]...)
			break
		}
	}
	return v, true
}

// Keys returns the field names in insertion order.
func (f *Fields) Keys() []string {
	out := make([]string, len(f.keys))
	copy(out, f.keys)
	return out
}

// Len returns the number of entries.
func (f *Fields) Len() int {
	return len(f.keys)
}

// Clone returns a deep copy. Nested Fields and sequences are copied; scalar
// values are shared.
func (f *Fields) Clone() *Fields {
	out := NewFields()
	for _, k := range f.keys {
		out.Set(k, cloneValue(f.values[k]))
	}
	return out
}

// ToMap converts to a plain nested map, discarding ordering. Used where a
// collaborator wants ordinary maps, e.g. JSON-schema validation.
func (f *Fields) ToMap() map[string]any {
	out := make(map[string]any, len(f.keys))
	for _, k := range f.keys {
		out[k] = plainValue(f.values[k])
	}
	return out
}

func cloneValue(v any) any {
	switch t := v.(type) {
	case *Fields:
		return t.Clone()
	case map[string]any:
		return FieldsFromMap(t)
	case []any:
		out := make([]any, len(t))
		for i, el := range t {
			out[i] = cloneValue(el)
		}
		return out
	default:
		return v
	}
}

func plainValue(v any) any {
	switch t := v.(type) {
	case *Fields:
		return t.ToMap()
	case []any:
		out := make([]any, len(t))
		for i, el := range t {
			out[i] = plainValue(el)
		}
		return out
	default:
		return v
	}
}

// MarshalJSON emits the mapping as a JSON object in insertion order.
func (f *Fields) MarshalJSON() ([]byte, error) {
	var buf bytes.Buffer
	buf.WriteByte('{')
	for i, k := range f.keys {
		if i > 0 {
			buf.WriteByte(',')
		}
		kb, err := json.Marshal(k)
		if err != nil {
			return nil, err
		}
		buf.Write(kb)
		buf.WriteByte(':')
		vb, err := json.Marshal(f.values[k])
		if err != nil {
			return nil, fmt.Errorf("marshal field %q: %w", k, err)
		}
		buf.Write(vb)
	}
	buf.WriteByte('}')
	return buf.Bytes(), nil
}

// MarshalYAML emits the mapping as a YAML mapping node in insertion order.
func (f *Fields) MarshalYAML() (interface{}, error) {
	node := &yaml.Node{Kind: yaml.MappingNode, Tag: "!!map"}
	for _, k := range f.keys {
		keyNode := &yaml.Node{}
		keyNode.SetString(k)
		valNode := &yaml.Node{}
		if err := valNode.Encode(f.values[k]); err != nil {
			return nil, fmt.Errorf("marshal field %q: %w", k, err)
		}
		node.Content = append(node.Content, keyNode, valNode)
	}
	return node, nil
}
