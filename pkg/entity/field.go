package entity

import (
	"fmt"
)

// Kind tags the capability a field value must satisfy.
type Kind string

const (
	KindString    Kind = "string"
	KindInt       Kind = "int"
	KindBool      Kind = "bool"
	KindMap       Kind = "map"
	KindList      Kind = "list"
	KindReference Kind = "reference"
	KindSecret    Kind = "secret"
	KindQuota     Kind = "quota"
)

// FieldDescriptor declares one field of a schema: its name, the kind of value
// it accepts, an optional default, and whether it may be omitted. Descriptors
// are owned by the schema registry and shared read-only by every entity of
// that schema.
type FieldDescriptor struct {
	Name     string
	Kind     Kind
	Default  any
	Optional bool
}

// validateFunc checks a candidate value against a field descriptor and
// returns the normalized value. Validators are stateless and registered once
// at process start.
type validateFunc func(FieldDescriptor, any) (any, error)

var fieldValidators = map[Kind]validateFunc{
	KindString:    validateString,
	KindInt:       validateInt,
	KindBool:      validateBool,
	KindMap:       validateMap,
	KindList:      validateList,
	KindReference: validateReference,
	KindSecret:    validateSecret,
	KindQuota:     validateQuota,
}

// validateField dispatches on the descriptor's kind. Unknown kinds indicate a
// broken schema registration and fail loudly.
func validateField(fd FieldDescriptor, value any) (any, error) {
	validate, ok := fieldValidators[fd.Kind]
	if !ok {
		return nil, ValidationError{Field: fd.Name, Reason: fmt.Sprintf("no validator for kind %q", fd.Kind)}
	}
	return validate(fd, value)
}

func validateString(fd FieldDescriptor, value any) (any, error) {
	s, ok := value.(string)
	if !ok {
		return nil, ValidationError{Field: fd.Name, Reason: fmt.Sprintf("expected string, got %T", value)}
	}
	return s, nil
}

func validateInt(fd FieldDescriptor, value any) (any, error) {
	switch t := value.(type) {
	case int:
		return int64(t), nil
	case int64:
		return t, nil
	case float64:
		if t == float64(int64(t)) {
			return int64(t), nil
		}
		return nil, ValidationError{Field: fd.Name, Reason: fmt.Sprintf("expected integer, got %v", t)}
	default:
		return nil, ValidationError{Field: fd.Name, Reason: fmt.Sprintf("expected integer, got %T", value)}
	}
}

func validateBool(fd FieldDescriptor, value any) (any, error) {
	b, ok := value.(bool)
	if !ok {
		return nil, ValidationError{Field: fd.Name, Reason: fmt.Sprintf("expected bool, got %T", value)}
	}
	return b, nil
}

func validateMap(fd FieldDescriptor, value any) (any, error) {
	f, err := asFields(value)
	if err != nil {
		return nil, ValidationError{Field: fd.Name, Reason: err.Error()}
	}
	return f, nil
}

func validateList(fd FieldDescriptor, value any) (any, error) {
	l, ok := value.([]any)
	if !ok {
		return nil, ValidationError{Field: fd.Name, Reason: fmt.Sprintf("expected list, got %T", value)}
	}
	out := make([]any, len(l))
	for i, el := range l {
		switch t := el.(type) {
		case *Fields:
			out[i] = t
		case map[string]any:
			out[i] = FieldsFromMap(t)
		default:
			out[i] = el
		}
	}
	return out, nil
}

// validateReference accepts a mapping carrying at least a kind and a name or
// uuid to resolve against.
func validateReference(fd FieldDescriptor, value any) (any, error) {
	f, err := asFields(value)
	if err != nil {
		return nil, ValidationError{Field: fd.Name, Reason: err.Error()}
	}
	kind, _ := f.GetString("kind")
	if kind == "" {
		return nil, ValidationError{Field: fd.Name, Reason: "reference is missing a kind"}
	}
	name, _ := f.GetString("name")
	id, _ := f.GetString("uuid")
	if name == "" && id == "" {
		return nil, ValidationError{Field: fd.Name, Reason: "reference needs a name or a uuid"}
	}
	return f, nil
}

// validateSecret accepts the raw secret string. Compile attaches the secret
// marker afterwards, see markSecretValue.
func validateSecret(fd FieldDescriptor, value any) (any, error) {
	switch t := value.(type) {
	case string:
		return t, nil
	case *Fields:
		if _, ok := t.Get("value"); !ok {
			return nil, ValidationError{Field: fd.Name, Reason: "secret mapping is missing a value"}
		}
		return t, nil
	default:
		return nil, ValidationError{Field: fd.Name, Reason: fmt.Sprintf("expected secret string, got %T", value)}
	}
}

// validateQuota accepts a mapping of resource names to non-negative counts.
func validateQuota(fd FieldDescriptor, value any) (any, error) {
	f, err := asFields(value)
	if err != nil {
		return nil, ValidationError{Field: fd.Name, Reason: err.Error()}
	}
	out := NewFields()
	for _, k := range f.Keys() {
		raw, _ := f.Get(k)
		n, err := validateInt(FieldDescriptor{Name: fd.Name}, raw)
		if err != nil {
			return nil, ValidationError{Field: fd.Name, Reason: fmt.Sprintf("quota %q is not an integer", k)}
		}
		if n.(int64) < 0 {
			return nil, ValidationError{Field: fd.Name, Reason: fmt.Sprintf("quota %q is negative", k)}
		}
		out.Set(k, n)
	}
	return out, nil
}

func asFields(value any) (*Fields, error) {
	switch t := value.(type) {
	case *Fields:
		return t, nil
	case map[string]any:
		return FieldsFromMap(t), nil
	default:
		return nil, fmt.Errorf("expected mapping, got %T", value)
	}
}
