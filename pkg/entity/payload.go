package entity

import "fmt"

// Payload kinds understood by the management API.
const (
	KindAccount      = "account"
	KindProvider     = "provider"
	KindResourceType = "resource_type"
	KindProject      = "project"

	// KindSubstrate exists for compiled output only; substrates are embedded
	// in other entities and have no API collection of their own.
	KindSubstrate = "substrate"
)

// Metadata is the standard payload envelope header. SpecVersion is zero on
// creation; updates must carry the version the server currently holds.
type Metadata struct {
	Kind        string `json:"kind" yaml:"kind"`
	Name        string `json:"name" yaml:"name"`
	UUID        string `json:"uuid" yaml:"uuid"`
	SpecVersion int    `json:"spec_version,omitempty" yaml:"spec_version,omitempty"`
}

// PayloadSpec pairs the resource name with its compiled field mapping.
type PayloadSpec struct {
	Name      string  `json:"name" yaml:"name"`
	Resources *Fields `json:"resources" yaml:"resources"`
}

// Payload is a transport-ready request body: the compiled mapping wrapped
// with its envelope metadata.
type Payload struct {
	Metadata Metadata    `json:"metadata" yaml:"metadata"`
	Spec     PayloadSpec `json:"spec" yaml:"spec"`
}

// Assemble wraps a compiled field mapping with envelope metadata under a
// freshly generated identifier.
func Assemble(kind, name string, resources *Fields) *Payload {
	return &Payload{
		Metadata: Metadata{Kind: kind, Name: name, UUID: newUUID()},
		Spec:     PayloadSpec{Name: name, Resources: resources},
	}
}

// Secrets returns every secret value embedded in the payload, in document
// order. Transport code redacts these before logging request bodies.
func (p *Payload) Secrets() []string {
	return collectSecrets(p.Spec.Resources, nil)
}

func collectSecrets(f *Fields, out []string) []string {
	if f == nil {
		return out
	}
	secret := false
	if attrs, ok := f.GetFields("attrs"); ok {
		if t, _ := attrs.GetString("type"); t == "SECRET" {
			secret = true
		}
	}
	for _, key := range f.Keys() {
		value, _ := f.Get(key)
		switch v := value.(type) {
		case *Fields:
			out = collectSecrets(v, out)
		case []any:
			for _, el := range v {
				if nested, ok := el.(*Fields); ok {
					out = collectSecrets(nested, out)
				}
			}
		case string:
			if secret && key == "value" && v != "" {
				out = append(out, v)
			}
		}
	}
	return out
}

// Bundle holds the interdependent payloads produced from one credential
// provider account declaration. Each later payload embeds the earlier one's
// generated identifier, so creation order matters.
type Bundle struct {
	Provider     *Payload `json:"provider" yaml:"provider"`
	ResourceType *Payload `json:"resource_type" yaml:"resource_type"`
	Account      *Payload `json:"account" yaml:"account"`
}

// BundleEntry pairs a payload with the kind it must be created as.
type BundleEntry struct {
	Kind    string
	Payload *Payload
}

// InOrder returns the bundle payloads in required creation order: the
// provider first, then the resource type referencing it, then the account
// referencing the resource type.
func (b *Bundle) InOrder() []BundleEntry {
	return []BundleEntry{
		{Kind: KindProvider, Payload: b.Provider},
		{Kind: KindResourceType, Payload: b.ResourceType},
		{Kind: KindAccount, Payload: b.Account},
	}
}

// Secrets returns the secret values embedded across the bundle's payloads.
func (b *Bundle) Secrets() []string {
	out := b.Provider.Secrets()
	out = append(out, b.ResourceType.Secrets()...)
	return append(out, b.Account.Secrets()...)
}

// Repoint rewrites the bundle's cross references to the given identifiers.
// Used on update, when the server already holds the provider and resource
// type under identifiers the compile did not generate.
func (b *Bundle) Repoint(providerUUID, resourceTypeUUID string) {
	if ref, ok := b.ResourceType.Spec.Resources.GetFields("provider_reference"); ok {
		ref.Set("uuid", providerUUID)
	}
	if data, ok := b.Account.Spec.Resources.GetFields("data"); ok {
		if ref, ok := data.GetFields("resource_type_reference"); ok {
			ref.Set("uuid", resourceTypeUUID)
		}
	}
}

// AssembleCredentialProvider decomposes a compiled credential provider
// account into its three dependent payloads. The account's declared auth
// schema becomes both the provider's auth schema list and the account's
// variable list; the resource config's variables, credential attributes, and
// actions become the resource type.
func AssembleCredentialProvider(name string, account *Fields) (*Bundle, error) {
	data, ok := account.GetFields("data")
	if !ok {
		return nil, ValidationError{Field: "data", Reason: "credential provider account has no data mapping"}
	}

	provider, err := assembleProvider(name, data)
	if err != nil {
		return nil, err
	}
	resourceType, err := assembleResourceType(name, data, provider.Metadata.UUID)
	if err != nil {
		return nil, err
	}
	accountPayload, err := assembleCredentialAccount(name, data, resourceType.Metadata.UUID)
	if err != nil {
		return nil, err
	}

	return &Bundle{
		Provider:     provider,
		ResourceType: resourceType,
		Account:      accountPayload,
	}, nil
}

func assembleProvider(name string, data *Fields) (*Payload, error) {
	authSchema, _ := data.GetList("auth_schema_list")

	cleared := make([]any, len(authSchema))
	for i, el := range authSchema {
		entry, err := asFields(el)
		if err != nil {
			return nil, fmt.Errorf("auth schema entry %d: %w", i, err)
		}
		// The provider object declares the schema shape only; values belong
		// to the account.
		cleared[i] = entry.Clone().Set("value", "")
	}

	stamped, err := NewStamper().Stamp(cleared)
	if err != nil {
		return nil, err
	}
	marked, err := MarkSecrets(stamped)
	if err != nil {
		return nil, err
	}

	resources := NewFields().Set("auth_schema_list", marked)
	return Assemble(KindProvider, name, resources), nil
}

func assembleResourceType(name string, data *Fields, providerUUID string) (*Payload, error) {
	config, ok := data.GetFields("resource_config")
	if !ok {
		config = NewFields()
	}

	stamper := NewStamper()

	inputVars, _ := config.GetList("variables")
	outputVars, _ := config.GetList("cred_attrs")
	actions, _ := config.GetList("action_list")

	variableList, err := stampVariables(stamper, inputVars)
	if err != nil {
		return nil, err
	}
	schemaList, err := stampVariables(stamper, outputVars)
	if err != nil {
		return nil, err
	}
	actionList, err := stamper.Stamp(actions)
	if err != nil {
		return nil, err
	}

	resources := NewFields().
		Set("provider_reference", NewFields().
			Set("kind", KindProvider).
			Set("uuid", providerUUID)).
		Set("variable_list", variableList).
		Set("schema_list", schemaList).
		Set("action_list", actionList)
	return Assemble(KindResourceType, name, resources), nil
}

func assembleCredentialAccount(name string, data *Fields, resourceTypeUUID string) (*Payload, error) {
	authSchema, _ := data.GetList("auth_schema_list")
	variableList, err := stampVariables(NewStamper(), authSchema)
	if err != nil {
		return nil, err
	}

	resources := NewFields().
		Set("type", AccountTypeCustomProvider).
		Set("data", NewFields().
			Set("resource_type_reference", NewFields().
				Set("kind", KindResourceType).
				Set("uuid", resourceTypeUUID)).
			Set("variable_list", variableList))
	return Assemble(KindAccount, name, resources), nil
}

func stampVariables(stamper *Stamper, vars []any) ([]any, error) {
	stamped, err := stamper.Stamp(vars)
	if err != nil {
		return nil, err
	}
	return MarkSecrets(stamped)
}
