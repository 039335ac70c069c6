package entity

// specProviderTypes resolves a provision spec kind to the canonical provider
// type it provisions on. A substrate declares its target platform separately
// from the spec blob that describes how to provision there; the two must
// agree before either is sent to the management API.
var specProviderTypes = map[string]string{
	"PROVISION_AHV_VM":          "AHV_VM",
	"PROVISION_VMWARE_VM":       "VMWARE_VM",
	"PROVISION_GCP_VM":          "GCP_VM",
	"PROVISION_EXISTING_MACHINE": "EXISTING_VM",
	"PROVISION_AWS_VM":          "AWS_VM",
	"PROVISION_AZURE_VM":        "AZURE_VM",
}

// defaultSpecKind is assumed when a spec blob does not declare its kind.
const defaultSpecKind = "PROVISION_AHV_VM"

// SpecValidator validates the structure of one provider type's spec blobs.
// Implementations live outside the compiler and are looked up by provider
// type.
type SpecValidator interface {
	ValidateSpec(spec map[string]any) error
}

// SpecValidators looks up the structural validator for a provider type.
type SpecValidators interface {
	Lookup(providerType string) (SpecValidator, bool)
}

// ResolveSpecType maps a spec kind to its provider type.
func ResolveSpecType(specKind string) (string, bool) {
	providerType, ok := specProviderTypes[specKind]
	return providerType, ok
}

// ValidateProviderSpec confirms that the spec blob's declared kind resolves
// to the substrate's provider type, then delegates structural validation to
// the validator registered for that type. The context string names the
// substrate for error reporting. On success the spec is returned unchanged.
func ValidateProviderSpec(spec map[string]any, substrateType, context string, validators SpecValidators) (map[string]any, error) {
	specKind := defaultSpecKind
	if declared, ok := spec["type"].(string); ok && declared != "" {
		specKind = declared
	}

	specType, ok := ResolveSpecType(specKind)
	if !ok {
		return nil, ValidationError{Field: "type", Reason: "unknown provider spec kind " + specKind}
	}
	if specType != substrateType {
		return nil, ProviderTypeMismatchError{
			SubstrateType: substrateType,
			SpecType:      specType,
			Context:       context,
		}
	}

	validator, ok := validators.Lookup(substrateType)
	if !ok {
		return nil, ValidationError{
			Field:  "provider_type",
			Reason: "no spec validator registered for provider type " + substrateType,
		}
	}
	if err := validator.ValidateSpec(spec); err != nil {
		return nil, err
	}
	return spec, nil
}
