package entity

import "github.com/google/uuid"

// newUUID generates identifiers for reference stamps and payload metadata.
var newUUID = uuid.NewString

// Stamper assigns unique identifiers to nested list elements and resolves
// same-named elements to the same identifier within one stamping call. The
// name map is scoped to the Stamper instance; stamping never consults or
// mutates state outside it.
type Stamper struct {
	ids   map[string]string
	newID func() string
}

// NewStamper returns a stamper with an empty name map.
func NewStamper() *Stamper {
	return &Stamper{
		ids:   make(map[string]string),
		newID: func() string { return newUUID() },
	}
}

// Stamp returns a copy of list in which every element carries a non-empty
// uuid, recursing into nested element lists (an action may contain child
// actions or tasks). Elements that already carry a uuid keep it, so stamping
// is idempotent within one call.
func (s *Stamper) Stamp(list []any) ([]any, error) {
	out := make([]any, len(list))
	for i, el := range list {
		stamped, err := s.stampElement(el)
		if err != nil {
			return nil, err
		}
		out[i] = stamped
	}
	return out, nil
}

func (s *Stamper) stampElement(el any) (*Fields, error) {
	src, err := asFields(el)
	if err != nil {
		return nil, err
	}
	f := src.Clone()

	name, _ := f.GetString("name")
	if id, ok := f.GetString("uuid"); ok && id != "" {
		if name != "" {
			s.ids[name] = id
		}
	} else {
		id := ""
		if name != "" {
			id = s.ids[name]
		}
		if id == "" {
			id = s.newID()
			if name != "" {
				s.ids[name] = id
			}
		}
		f.Set("uuid", id)
	}

	for _, key := range f.Keys() {
		value, _ := f.Get(key)
		nested, ok := value.([]any)
		if !ok || !isElementList(nested) {
			continue
		}
		stamped, err := s.Stamp(nested)
		if err != nil {
			return nil, err
		}
		f.Set(key, stamped)
	}
	return f, nil
}

// isElementList reports whether every entry of a non-empty list is a mapping,
// i.e. a nested element list that needs stamping.
func isElementList(list []any) bool {
	if len(list) == 0 {
		return false
	}
	for _, el := range list {
		switch el.(type) {
		case *Fields, map[string]any:
		default:
			return false
		}
	}
	return true
}

// SecretAttrs is the marker the management API requires alongside any secret
// value supplied at compile time. It tells the remote side that the value,
// not its redacted placeholder, is authoritative on write.
func SecretAttrs() *Fields {
	return NewFields().
		Set("is_secret_modified", true).
		Set("type", "SECRET")
}

// MarkSecrets attaches the secret marker to every SECRET-typed entry of a
// variable or auth-schema list. Input elements are not mutated.
func MarkSecrets(list []any) ([]any, error) {
	out := make([]any, len(list))
	for i, el := range list {
		src, err := asFields(el)
		if err != nil {
			return nil, err
		}
		f := src.Clone()
		if t, _ := f.GetString("type"); t == "SECRET" {
			f.Set("attrs", SecretAttrs())
		}
		out[i] = f
	}
	return out, nil
}

// markSecretValue normalizes a compiled secret field so the emitted entry
// always carries the secret marker next to the value.
func markSecretValue(value any) *Fields {
	var f *Fields
	if m, ok := value.(*Fields); ok {
		f = m.Clone()
	} else {
		f = NewFields().Set("value", value)
	}
	f.Set("attrs", SecretAttrs())
	return f
}
