package loader

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/systmms/entops/pkg/entity"
	"github.com/systmms/entops/tests/testutil"
)

func TestLoadSingleDocument(t *testing.T) {
	t.Parallel()

	path := testutil.WriteDefinition(t, `
kind: account
name: store
spec:
  type: custom_provider
  data:
    endpoint: https://store.example.com
`)

	descriptors, err := Load(path)
	require.NoError(t, err)
	require.Len(t, descriptors, 1)

	d := Primary(descriptors)
	assert.Equal(t, "account", d.Schema())
	assert.Equal(t, "store", d.Name())

	compiled, err := d.Compile(entity.Default())
	require.NoError(t, err)
	accountType, _ := compiled.GetString("type")
	assert.Equal(t, "custom_provider", accountType)
}

func TestLoadMultiDocumentExtends(t *testing.T) {
	t.Parallel()

	path := testutil.WriteDefinition(t, `
kind: account
name: base
spec:
  type: custom_provider
  sync_interval_secs: 600
---
kind: account
name: derived
extends: [base]
spec:
  sync_interval_secs: 60
`)

	descriptors, err := Load(path)
	require.NoError(t, err)
	require.Len(t, descriptors, 2)

	compiled, err := Primary(descriptors).Compile(entity.Default())
	require.NoError(t, err)

	// Inherited from the base.
	accountType, _ := compiled.GetString("type")
	assert.Equal(t, "custom_provider", accountType)
	// Overridden locally.
	interval, _ := compiled.Get("sync_interval_secs")
	assert.Equal(t, int64(60), interval)
}

func TestLoadUnknownBase(t *testing.T) {
	t.Parallel()

	path := testutil.WriteDefinition(t, `
kind: account
name: derived
extends: [ghost]
spec:
  type: custom_provider
`)

	_, err := Load(path)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "ghost")
}

func TestLoadForwardExtendsRejected(t *testing.T) {
	t.Parallel()

	path := testutil.WriteDefinition(t, `
kind: account
name: derived
extends: [base]
spec: {}
---
kind: account
name: base
spec:
  type: custom_provider
`)

	_, err := Load(path)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "base")
}

func TestLoadPreservesMappingOrder(t *testing.T) {
	t.Parallel()

	path := testutil.WriteDefinition(t, `
kind: account
name: store
spec:
  type: custom_provider
  data:
    zebra: 1
    apple: 2
    mango: 3
`)

	descriptors, err := Load(path)
	require.NoError(t, err)

	compiled, err := Primary(descriptors).Compile(entity.Default())
	require.NoError(t, err)
	data, ok := compiled.GetFields("data")
	require.True(t, ok)
	assert.Equal(t, []string{"zebra", "apple", "mango"}, data.Keys())
}

func TestLoadProjectProviderEntries(t *testing.T) {
	t.Parallel()

	path := testutil.WriteDefinition(t, `
kind: project
name: team
spec:
  provider_list:
    - provider_type: nutanix_pc
      account_reference:
        kind: account
        name: pc-account
      subnet_reference_list:
        - kind: subnet
          name: subnet-a
`)

	descriptors, err := Load(path)
	require.NoError(t, err)

	compiled, err := Primary(descriptors).Compile(entity.Default())
	require.NoError(t, err)

	refs, ok := compiled.GetList("account_reference_list")
	require.True(t, ok)
	require.Len(t, refs, 1)
	ref := refs[0].(*entity.Fields)
	name, _ := ref.GetString("name")
	assert.Equal(t, "pc-account", name)
}

func TestLoadValidationErrors(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name    string
		content string
		wantErr string
	}{
		{
			name:    "missing kind",
			content: "name: x\nspec: {}\n",
			wantErr: "kind",
		},
		{
			name:    "missing name",
			content: "kind: account\nspec: {}\n",
			wantErr: "name",
		},
		{
			name:    "invalid yaml",
			content: "kind: [unclosed\n",
			wantErr: "YAML",
		},
		{
			name:    "empty file",
			content: "",
			wantErr: "No definitions",
		},
		{
			name:    "spec not a mapping",
			content: "kind: account\nname: x\nspec: [1, 2]\n",
			wantErr: "mapping",
		},
	}

	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			_, err := Load(testutil.WriteDefinition(t, tt.content))
			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.wantErr)
		})
	}
}

func TestLoadMissingFile(t *testing.T) {
	t.Parallel()

	_, err := Load("/nonexistent/definition.yaml")
	require.Error(t, err)
}

func TestLoadSubstrateSpecFile(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	specPath := filepath.Join(dir, "ahv-spec.yaml")
	require.NoError(t, os.WriteFile(specPath, []byte(`
type: PROVISION_AHV_VM
resources:
  memory_size_mib: 4096
  num_sockets: 2
`), 0644))
	defPath := filepath.Join(dir, "definition.yaml")
	require.NoError(t, os.WriteFile(defPath, []byte(`
kind: substrate
name: web-vm
spec:
  provider_type: AHV_VM
  spec_file: ahv-spec.yaml
`), 0644))

	descriptors, err := Load(defPath)
	require.NoError(t, err)

	compiled, err := Primary(descriptors).Compile(entity.Default())
	require.NoError(t, err)

	spec, ok := compiled.GetFields("spec")
	require.True(t, ok)
	kind, _ := spec.GetString("type")
	assert.Equal(t, "PROVISION_AHV_VM", kind)
	assert.False(t, compiled.Has("spec_file"))
}

func TestReadSpec(t *testing.T) {
	t.Parallel()

	path := testutil.WriteDefinition(t, `
type: PROVISION_AHV_VM
resources:
  memory_size_mib: 4096
  num_sockets: 2
`)

	spec, err := ReadSpec(path)
	require.NoError(t, err)
	assert.Equal(t, "PROVISION_AHV_VM", spec["type"])
	resources, ok := spec["resources"].(map[string]any)
	require.True(t, ok)
	assert.Equal(t, 4096, resources["memory_size_mib"])
}
