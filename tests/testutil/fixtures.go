// Package testutil provides shared helpers for writing definition files in
// tests.
package testutil

import (
	"os"
	"path/filepath"
	"testing"
)

// WriteDefinition writes a definition document to a temporary directory and
// returns its path. The file is removed with the test's temp dir.
func WriteDefinition(t *testing.T, content string) string {
	t.Helper()

	path := filepath.Join(t.TempDir(), "definition.yaml")
	if err := os.WriteFile(path, []byte(content), 0644); err != nil {
		t.Fatalf("writing definition fixture: %v", err)
	}
	return path
}

// CredentialProviderDefinition is a complete credential provider account
// declaration, the smallest definition that compiles to a bundle.
const CredentialProviderDefinition = `
kind: account
name: vault
spec:
  type: credential_provider
  data:
    auth_schema_list:
      - name: username
        type: STRING
        value: admin
      - name: password
        type: SECRET
        value: hunter2
    resource_config:
      variables: []
      cred_attrs: []
      action_list: []
`

// CustomProviderDefinition is a minimal account declaration that compiles to
// a single payload.
const CustomProviderDefinition = `
kind: account
name: store
spec:
  type: custom_provider
  data:
    endpoint: https://store.example.com
`

// AHVSubstrateDefinition is a substrate declaration whose provider spec
// passes structural validation.
const AHVSubstrateDefinition = `
kind: substrate
name: web-vm
spec:
  provider_type: AHV_VM
  spec:
    type: PROVISION_AHV_VM
    resources:
      memory_size_mib: 4096
      num_sockets: 2
`
