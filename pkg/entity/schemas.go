package entity

// Built-in schema names.
const (
	SchemaAccount         = "account"
	SchemaProvider        = "provider"
	SchemaResourceType    = "resource_type"
	SchemaProject         = "project"
	SchemaProjectProvider = "project_provider"
	SchemaSubstrate       = "substrate"
)

// Account types with special compile handling.
const (
	AccountTypeCredentialProvider = "credential_provider"
	AccountTypeCustomProvider     = "custom_provider"
)

// Provider types that contribute network configuration to projects.
const providerTypeNutanixPC = "nutanix_pc"

func builtinSchemas() []*Schema {
	return []*Schema{
		{
			Name: SchemaAccount,
			Fields: []FieldDescriptor{
				{Name: "type", Kind: KindString},
				{Name: "data", Kind: KindMap, Default: map[string]any{}},
				{Name: "sync_interval_secs", Kind: KindInt, Optional: true},
			},
		},
		{
			Name: SchemaProvider,
			Fields: []FieldDescriptor{
				{Name: "auth_schema_list", Kind: KindList, Default: []any{}},
			},
		},
		{
			Name: SchemaResourceType,
			Fields: []FieldDescriptor{
				{Name: "variables", Kind: KindList, Default: []any{}},
				{Name: "cred_attrs", Kind: KindList, Default: []any{}},
				{Name: "action_list", Kind: KindList, Default: []any{}},
			},
		},
		{
			Name: SchemaProject,
			Fields: []FieldDescriptor{
				{Name: "provider_list", Kind: KindList, Default: []any{}},
				{Name: "user_reference_list", Kind: KindList, Optional: true},
				{Name: "external_user_group_reference_list", Kind: KindList, Optional: true},
				{Name: "quotas", Kind: KindQuota, Optional: true},
				{Name: "environment_definition_list", Kind: KindList, Optional: true},
				{Name: "default_subnet_reference", Kind: KindReference, Optional: true},
			},
			Hook: projectHook,
		},
		{
			Name: SchemaProjectProvider,
			Fields: []FieldDescriptor{
				{Name: "provider_type", Kind: KindString},
				{Name: "account_reference", Kind: KindReference},
				{Name: "subnet_reference_list", Kind: KindList, Optional: true},
				{Name: "external_network_list", Kind: KindList, Optional: true},
				{Name: "default_subnet_reference", Kind: KindReference, Optional: true},
			},
		},
		{
			Name: SchemaSubstrate,
			Fields: []FieldDescriptor{
				{Name: "provider_type", Kind: KindString, Default: "AHV_VM"},
				{Name: "spec", Kind: KindMap},
				{Name: "os_type", Kind: KindString, Optional: true},
			},
		},
	}
}
