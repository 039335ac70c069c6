package commands

import (
	"encoding/json"
	"fmt"
	"io"

	"gopkg.in/yaml.v3"

	enterrors "github.com/systmms/entops/internal/errors"
	"github.com/systmms/entops/internal/loader"
	"github.com/systmms/entops/internal/substrate"
	"github.com/systmms/entops/pkg/entity"
)

// compileResult is the outcome of compiling one definition file. Exactly one
// of Payload and Bundle is set; credential provider accounts compile to a
// bundle, everything else to a single payload.
type compileResult struct {
	Kind    string
	Name    string
	Payload *entity.Payload
	Bundle  *entity.Bundle
}

// compileDefinition loads, compiles, and assembles the primary definition in
// a file. Substrate definitions additionally have their provider spec checked
// against the validator for their platform.
func compileDefinition(path string) (*compileResult, error) {
	descriptors, err := loader.Load(path)
	if err != nil {
		return nil, err
	}
	primary := loader.Primary(descriptors)

	fields, err := primary.Compile(entity.Default())
	if err != nil {
		return nil, err
	}

	schema := primary.Schema()
	name := primary.Name()

	if schema == entity.SchemaSubstrate {
		if err := validateSubstrateSpec(fields, name); err != nil {
			return nil, err
		}
	}

	if schema == entity.SchemaAccount {
		if accountType, _ := fields.GetString("type"); accountType == entity.AccountTypeCredentialProvider {
			bundle, err := entity.AssembleCredentialProvider(name, fields)
			if err != nil {
				return nil, err
			}
			return &compileResult{Kind: entity.KindAccount, Name: name, Bundle: bundle}, nil
		}
	}

	kind, err := kindForSchema(schema)
	if err != nil {
		return nil, err
	}
	return &compileResult{
		Kind:    kind,
		Name:    name,
		Payload: entity.Assemble(kind, name, fields),
	}, nil
}

func validateSubstrateSpec(fields *entity.Fields, name string) error {
	providerType, _ := fields.GetString("provider_type")
	specFields, ok := fields.GetFields("spec")
	if !ok {
		return enterrors.UserError{
			Message:    fmt.Sprintf("Substrate %q has no spec section", name),
			Suggestion: "Declare a spec mapping describing the machine to provision",
		}
	}
	_, err := entity.ValidateProviderSpec(specFields.ToMap(), providerType, name, substrate.NewRegistry())
	return err
}

// kindForSchema maps a definition schema to its API collection kind.
func kindForSchema(schema string) (string, error) {
	switch schema {
	case entity.SchemaAccount:
		return entity.KindAccount, nil
	case entity.SchemaProvider:
		return entity.KindProvider, nil
	case entity.SchemaResourceType:
		return entity.KindResourceType, nil
	case entity.SchemaProject:
		return entity.KindProject, nil
	case entity.SchemaSubstrate:
		return entity.KindSubstrate, nil
	default:
		return "", enterrors.UserError{
			Message:    fmt.Sprintf("Unknown definition kind %q", schema),
			Suggestion: "Declare one of: account, provider, resource_type, project, substrate",
		}
	}
}

// writeOutput encodes a compiled payload or bundle as JSON or YAML.
func writeOutput(w io.Writer, format string, value any) error {
	switch format {
	case "json":
		enc := json.NewEncoder(w)
		enc.SetIndent("", "  ")
		return enc.Encode(value)
	case "yaml":
		enc := yaml.NewEncoder(w)
		enc.SetIndent(2)
		defer enc.Close()
		return enc.Encode(value)
	default:
		return enterrors.UserError{
			Message:    fmt.Sprintf("Unknown output format %q", format),
			Suggestion: "Use --output json or --output yaml",
		}
	}
}
