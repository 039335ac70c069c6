// Package loader reads declarative definition files into entity descriptors.
// A definition file holds one or more YAML documents, each declaring a single
// entity; documents may extend earlier documents in the same file by name.
// Mapping order in the file is preserved so compiled output stays stable.
package loader

import (
	"fmt"
	"io"
	"os"
	"path/filepath"

	enterrors "github.com/systmms/entops/internal/errors"
	"github.com/systmms/entops/pkg/entity"
	"gopkg.in/yaml.v3"
)

// document is the on-disk shape of one entity declaration.
type document struct {
	Kind    string    `yaml:"kind"`
	Name    string    `yaml:"name"`
	Extends []string  `yaml:"extends,omitempty"`
	Spec    yaml.Node `yaml:"spec"`
}

// Load reads every definition document from path, in file order. Documents
// named in an extends clause must appear earlier in the same file.
func Load(path string) ([]*entity.Descriptor, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, enterrors.UserError{
			Message:    fmt.Sprintf("Failed to read definition file %s", path),
			Details:    err.Error(),
			Suggestion: "Verify the path exists and is readable",
			Err:        err,
		}
	}
	defer f.Close()

	dec := yaml.NewDecoder(f)
	byName := make(map[string]*entity.Descriptor)
	var descriptors []*entity.Descriptor

	for {
		var doc document
		if err := dec.Decode(&doc); err != nil {
			if err == io.EOF {
				break
			}
			return nil, enterrors.ConfigError{
				Field:      "definition",
				Value:      path,
				Message:    fmt.Sprintf("invalid YAML: %v", err),
				Suggestion: "Check for indentation errors and missing quotes",
			}
		}
		if doc.Kind == "" {
			return nil, enterrors.ConfigError{
				Field:      "kind",
				Value:      path,
				Message:    "definition document has no kind",
				Suggestion: "Every document needs 'kind: <schema name>'",
			}
		}
		if doc.Name == "" {
			return nil, enterrors.ConfigError{
				Field:      "name",
				Value:      path,
				Message:    "definition document has no name",
				Suggestion: "Every document needs 'name: <entity name>'",
			}
		}

		fields, err := decodeSpec(&doc, filepath.Dir(path))
		if err != nil {
			return nil, err
		}

		bases := make([]*entity.Descriptor, 0, len(doc.Extends))
		for _, baseName := range doc.Extends {
			base, ok := byName[baseName]
			if !ok {
				return nil, enterrors.ConfigError{
					Field:      "extends",
					Value:      baseName,
					Message:    fmt.Sprintf("document %q extends unknown definition %q", doc.Name, baseName),
					Suggestion: "Base definitions must appear earlier in the same file",
				}
			}
			bases = append(bases, base)
		}

		d := entity.Declare(doc.Kind, doc.Name, fields, bases...)
		byName[doc.Name] = d
		descriptors = append(descriptors, d)
	}

	if len(descriptors) == 0 {
		return nil, enterrors.UserError{
			Message:    fmt.Sprintf("No definitions found in %s", path),
			Suggestion: "A definition file needs at least one document with kind, name, and spec",
		}
	}
	return descriptors, nil
}

// Primary returns the definition a file is "about": the last document, by
// convention, with earlier documents serving as its bases.
func Primary(descriptors []*entity.Descriptor) *entity.Descriptor {
	if len(descriptors) == 0 {
		return nil
	}
	return descriptors[len(descriptors)-1]
}

// ReadSpec loads a raw provider spec blob from a YAML file.
func ReadSpec(path string) (map[string]any, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, enterrors.UserError{
			Message:    fmt.Sprintf("Failed to read spec file %s", path),
			Details:    err.Error(),
			Suggestion: "Verify the path exists and is readable",
			Err:        err,
		}
	}
	var spec map[string]any
	if err := yaml.Unmarshal(data, &spec); err != nil {
		return nil, enterrors.ConfigError{
			Field:      "spec",
			Value:      path,
			Message:    fmt.Sprintf("invalid YAML: %v", err),
			Suggestion: "Check for indentation errors and missing quotes",
		}
	}
	return spec, nil
}

func decodeSpec(doc *document, dir string) (map[string]any, error) {
	if doc.Spec.Kind == 0 {
		return map[string]any{}, nil
	}
	value, err := decodeNode(&doc.Spec)
	if err != nil {
		return nil, enterrors.ConfigError{
			Field:      "spec",
			Value:      doc.Name,
			Message:    err.Error(),
			Suggestion: "The spec section must be a mapping of field names to values",
		}
	}
	spec, ok := value.(*entity.Fields)
	if !ok {
		return nil, enterrors.ConfigError{
			Field:      "spec",
			Value:      doc.Name,
			Message:    "spec section is not a mapping",
			Suggestion: "The spec section must be a mapping of field names to values",
		}
	}

	fields := make(map[string]any, spec.Len())
	for _, key := range spec.Keys() {
		v, _ := spec.Get(key)
		fields[key] = v
	}

	// Substrates may keep their provider spec blob in a separate file,
	// referenced relative to the definition file.
	if doc.Kind == entity.SchemaSubstrate {
		if specPath, ok := fields["spec_file"].(string); ok {
			if !filepath.IsAbs(specPath) {
				specPath = filepath.Join(dir, specPath)
			}
			blob, err := ReadSpec(specPath)
			if err != nil {
				return nil, err
			}
			delete(fields, "spec_file")
			fields["spec"] = blob
		}
	}

	// Project provider sub-entities get their own schema so nested
	// declarations are validated like any other entity.
	if doc.Kind == entity.SchemaProject {
		if raw, ok := fields["provider_list"].([]any); ok {
			providers := make([]any, len(raw))
			for i, el := range raw {
				pf, ok := el.(*entity.Fields)
				if !ok {
					return nil, enterrors.ConfigError{
						Field:      "provider_list",
						Value:      doc.Name,
						Message:    fmt.Sprintf("entry %d is not a mapping", i),
						Suggestion: "Each provider_list entry must be a mapping",
					}
				}
				sub := make(map[string]any, pf.Len())
				for _, key := range pf.Keys() {
					v, _ := pf.Get(key)
					sub[key] = v
				}
				providers[i] = entity.Declare(entity.SchemaProjectProvider, "", sub)
			}
			fields["provider_list"] = providers
		}
	}

	return fields, nil
}

// decodeNode converts a YAML node into the compiler's value forms: ordered
// Fields for mappings, []any for sequences, plain Go scalars otherwise.
func decodeNode(n *yaml.Node) (any, error) {
	switch n.Kind {
	case yaml.DocumentNode:
		if len(n.Content) != 1 {
			return nil, fmt.Errorf("unexpected document structure")
		}
		return decodeNode(n.Content[0])
	case yaml.MappingNode:
		f := entity.NewFields()
		for i := 0; i+1 < len(n.Content); i += 2 {
			var key string
			if err := n.Content[i].Decode(&key); err != nil {
				return nil, fmt.Errorf("mapping key at line %d: %w", n.Content[i].Line, err)
			}
			value, err := decodeNode(n.Content[i+1])
			if err != nil {
				return nil, err
			}
			f.Set(key, value)
		}
		return f, nil
	case yaml.SequenceNode:
		out := make([]any, len(n.Content))
		for i, el := range n.Content {
			value, err := decodeNode(el)
			if err != nil {
				return nil, err
			}
			out[i] = value
		}
		return out, nil
	case yaml.AliasNode:
		return decodeNode(n.Alias)
	default:
		var value any
		if err := n.Decode(&value); err != nil {
			return nil, fmt.Errorf("scalar at line %d: %w", n.Line, err)
		}
		return value, nil
	}
}
