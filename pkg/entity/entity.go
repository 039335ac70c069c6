package entity

import "sort"

// Descriptor is one declared resource definition: a schema name, a field
// value mapping, and zero or more base descriptors it extends. Descriptors
// are immutable once declared and are never mutated by compilation.
type Descriptor struct {
	schema string
	name   string
	fields map[string]any
	bases  []*Descriptor
}

// Declare builds a descriptor. The field map is copied so later edits to the
// caller's map do not leak into the declaration. Bases are merged left to
// right at compile time, with this descriptor's own fields taking precedence.
func Declare(schema, name string, fields map[string]any, bases ...*Descriptor) *Descriptor {
	own := make(map[string]any, len(fields))
	for k, v := range fields {
		own[k] = v
	}
	return &Descriptor{
		schema: schema,
		name:   name,
		fields: own,
		bases:  bases,
	}
}

// Schema returns the schema name this descriptor was declared against.
func (d *Descriptor) Schema() string { return d.schema }

// Name returns the declared resource name.
func (d *Descriptor) Name() string { return d.name }

// resolvedFields merges the base descriptors' fields left to right, then
// overlays this descriptor's own assignments. Most-derived wins.
func (d *Descriptor) resolvedFields() map[string]any {
	merged := make(map[string]any)
	for _, base := range d.bases {
		for k, v := range base.resolvedFields() {
			merged[k] = v
		}
	}
	for k, v := range d.fields {
		merged[k] = v
	}
	return merged
}

// Compile validates the resolved field set against the schema and produces
// the compiled payload mapping. Field order follows the schema's declared
// descriptor order. A failure anywhere aborts the whole compile; no partial
// payload is ever returned.
func (d *Descriptor) Compile(reg *Registry) (*Fields, error) {
	schema, err := reg.Lookup(d.schema)
	if err != nil {
		return nil, err
	}

	resolved := d.resolvedFields()

	declared := make(map[string]bool, len(schema.Fields))
	for _, fd := range schema.Fields {
		declared[fd.Name] = true
	}
	unknown := make([]string, 0)
	for name := range resolved {
		if !declared[name] {
			unknown = append(unknown, name)
		}
	}
	if len(unknown) > 0 {
		sort.Strings(unknown)
		return nil, UnexpectedFieldError{Schema: d.schema, Field: unknown[0]}
	}

	out := NewFields()
	for _, fd := range schema.Fields {
		value, ok := resolved[fd.Name]
		if !ok || value == nil {
			if fd.Default != nil {
				value = cloneValue(fd.Default)
			} else if fd.Optional {
				continue
			} else {
				return nil, MissingFieldError{Schema: d.schema, Field: fd.Name}
			}
		}

		value, err = resolveValue(reg, value)
		if err != nil {
			return nil, err
		}
		value, err = validateField(fd, value)
		if err != nil {
			return nil, err
		}
		if fd.Kind == KindSecret {
			value = markSecretValue(value)
		}
		out.Set(fd.Name, value)
	}

	if schema.Hook != nil {
		return schema.Hook(out)
	}
	return out, nil
}

// resolveValue compiles nested descriptors into plain mappings so that the
// compiled payload never references a live descriptor.
func resolveValue(reg *Registry, value any) (any, error) {
	switch t := value.(type) {
	case *Descriptor:
		return t.Compile(reg)
	case []any:
		out := make([]any, len(t))
		for i, el := range t {
			resolved, err := resolveValue(reg, el)
			if err != nil {
				return nil, err
			}
			out[i] = resolved
		}
		return out, nil
	default:
		return value, nil
	}
}
