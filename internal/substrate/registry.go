// Package substrate provides the structural validators for provider spec
// blobs, keyed by provider type. The entity compiler dispatches here after
// confirming that a spec's declared kind agrees with the substrate's
// provider type.
package substrate

import (
	"sort"

	"github.com/systmms/entops/pkg/entity"
)

// Registry maps provider types to their spec validators.
type Registry struct {
	validators map[string]entity.SpecValidator
}

// NewRegistry returns a registry with validators for the built-in provider
// types.
func NewRegistry() *Registry {
	r := &Registry{validators: make(map[string]entity.SpecValidator)}

	r.Register("AHV_VM", newSchemaValidator("AHV_VM", ahvVMSchema))
	r.Register("AWS_VM", newSchemaValidator("AWS_VM", awsVMSchema))
	r.Register("VMWARE_VM", newSchemaValidator("VMWARE_VM", vmwareVMSchema))
	r.Register("GCP_VM", newSchemaValidator("GCP_VM", gcpVMSchema))
	r.Register("AZURE_VM", newSchemaValidator("AZURE_VM", azureVMSchema))
	r.Register("EXISTING_VM", newSchemaValidator("EXISTING_VM", existingVMSchema))

	return r
}

// Register adds a validator for a provider type.
func (r *Registry) Register(providerType string, v entity.SpecValidator) {
	r.validators[providerType] = v
}

// Lookup implements entity.SpecValidators.
func (r *Registry) Lookup(providerType string) (entity.SpecValidator, bool) {
	v, ok := r.validators[providerType]
	return v, ok
}

// IsSupported reports whether a provider type has a registered validator.
func (r *Registry) IsSupported(providerType string) bool {
	_, ok := r.validators[providerType]
	return ok
}

// SupportedTypes returns the registered provider types, sorted.
func (r *Registry) SupportedTypes() []string {
	types := make([]string, 0, len(r.validators))
	for providerType := range r.validators {
		types = append(types, providerType)
	}
	sort.Strings(types)
	return types
}
