package entity

import (
	"fmt"
	"sort"
	"sync"
)

// HookFunc is a type-specific compile transform. It receives the validated
// mapping and returns a transformed mapping. Hooks must not mutate their
// input; they work on a clone and may restructure, rename, drop, or
// synthesize fields.
type HookFunc func(*Fields) (*Fields, error)

// Schema is the registered definition of one entity type: its ordered field
// descriptors and an optional compile hook.
type Schema struct {
	Name   string
	Fields []FieldDescriptor
	Hook   HookFunc
}

// Registry maps schema names to their definitions. Registration is
// append-only: there is no removal, and re-registering a name is an error.
// A registry is safe for concurrent lookups once fully populated.
type Registry struct {
	schemas map[string]*Schema
}

// NewRegistry returns an empty schema registry.
func NewRegistry() *Registry {
	return &Registry{schemas: make(map[string]*Schema)}
}

// Register adds a schema definition. Registering the same name twice is an
// error; schemas are never replaced at runtime.
func (r *Registry) Register(s *Schema) error {
	if s.Name == "" {
		return fmt.Errorf("schema has no name")
	}
	if _, exists := r.schemas[s.Name]; exists {
		return fmt.Errorf("schema %q already registered", s.Name)
	}
	r.schemas[s.Name] = s
	return nil
}

// Lookup returns the schema registered under name.
func (r *Registry) Lookup(name string) (*Schema, error) {
	s, ok := r.schemas[name]
	if !ok {
		return nil, UnknownSchemaError{Schema: name}
	}
	return s, nil
}

// IsRegistered reports whether name has a registered schema.
func (r *Registry) IsRegistered(name string) bool {
	_, ok := r.schemas[name]
	return ok
}

// SchemaNames returns the registered schema names, sorted.
func (r *Registry) SchemaNames() []string {
	names := make([]string, 0, len(r.schemas))
	for name := range r.schemas {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

var (
	defaultOnce     sync.Once
	defaultRegistry *Registry
)

// Default returns the process-wide registry holding the built-in schemas.
// It is populated exactly once and read-only afterwards, so concurrent
// compiles need no locking.
func Default() *Registry {
	defaultOnce.Do(func() {
		defaultRegistry = NewRegistry()
		for _, s := range builtinSchemas() {
			if err := defaultRegistry.Register(s); err != nil {
				panic(fmt.Sprintf("entity: registering builtin schema: %v", err))
			}
		}
	})
	return defaultRegistry
}
