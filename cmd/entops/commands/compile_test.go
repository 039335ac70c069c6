package commands

import (
	"bytes"
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/systmms/entops/internal/config"
	"github.com/systmms/entops/internal/logging"
	"github.com/systmms/entops/tests/testutil"
)

func runCompile(t *testing.T, args []string) (string, error) {
	t.Helper()
	cfg := &config.Config{Logger: logging.New(false, true)}
	cmd := NewCompileCommand(cfg)
	var out bytes.Buffer
	cmd.SetOut(&out)
	cmd.SetErr(&out)
	cmd.SetArgs(args)
	err := cmd.Execute()
	return out.String(), err
}

func TestCompileCommand_Account(t *testing.T) {
	t.Parallel()

	path := testutil.WriteDefinition(t, testutil.CustomProviderDefinition)

	output, err := runCompile(t, []string{"--file", path})
	require.NoError(t, err)

	var payload map[string]any
	require.NoError(t, json.Unmarshal([]byte(output), &payload))

	metadata, ok := payload["metadata"].(map[string]any)
	require.True(t, ok)
	assert.Equal(t, "account", metadata["kind"])
	assert.Equal(t, "store", metadata["name"])
	assert.NotEmpty(t, metadata["uuid"])

	spec, ok := payload["spec"].(map[string]any)
	require.True(t, ok)
	assert.Equal(t, "store", spec["name"])
}

func TestCompileCommand_CredentialProviderBundle(t *testing.T) {
	t.Parallel()

	path := testutil.WriteDefinition(t, testutil.CredentialProviderDefinition)

	output, err := runCompile(t, []string{"--file", path})
	require.NoError(t, err)

	var bundle struct {
		Provider struct {
			Metadata struct {
				UUID string `json:"uuid"`
			} `json:"metadata"`
		} `json:"provider"`
		ResourceType struct {
			Metadata struct {
				UUID string `json:"uuid"`
			} `json:"metadata"`
			Spec struct {
				Resources struct {
					ProviderReference struct {
						UUID string `json:"uuid"`
					} `json:"provider_reference"`
				} `json:"resources"`
			} `json:"spec"`
		} `json:"resource_type"`
		Account struct {
			Spec struct {
				Resources struct {
					Type string `json:"type"`
					Data struct {
						ResourceTypeReference struct {
							UUID string `json:"uuid"`
						} `json:"resource_type_reference"`
					} `json:"data"`
				} `json:"resources"`
			} `json:"spec"`
		} `json:"account"`
	}
	require.NoError(t, json.Unmarshal([]byte(output), &bundle))

	assert.Equal(t, bundle.Provider.Metadata.UUID,
		bundle.ResourceType.Spec.Resources.ProviderReference.UUID)
	assert.Equal(t, bundle.ResourceType.Metadata.UUID,
		bundle.Account.Spec.Resources.Data.ResourceTypeReference.UUID)
	assert.Equal(t, "custom_provider", bundle.Account.Spec.Resources.Type)
}

func TestCompileCommand_SubstrateValidation(t *testing.T) {
	t.Parallel()

	t.Run("valid spec", func(t *testing.T) {
		path := testutil.WriteDefinition(t, testutil.AHVSubstrateDefinition)
		output, err := runCompile(t, []string{"--file", path})
		require.NoError(t, err)

		var payload map[string]any
		require.NoError(t, json.Unmarshal([]byte(output), &payload))
		metadata := payload["metadata"].(map[string]any)
		assert.Equal(t, "substrate", metadata["kind"])
	})

	t.Run("provider type mismatch", func(t *testing.T) {
		path := testutil.WriteDefinition(t, `
kind: substrate
name: web-vm
spec:
  provider_type: AWS_VM
  spec:
    type: PROVISION_AHV_VM
    resources: {}
`)
		_, err := runCompile(t, []string{"--file", path})
		require.Error(t, err)
		assert.Contains(t, err.Error(), "provider type mismatch")
	})
}

func TestCompileCommand_YAMLOutput(t *testing.T) {
	t.Parallel()

	path := testutil.WriteDefinition(t, `
kind: provider
name: infra
spec:
  auth_schema_list: []
`)

	output, err := runCompile(t, []string{"--file", path, "--output", "yaml"})
	require.NoError(t, err)
	assert.Contains(t, output, "kind: provider")
	assert.Contains(t, output, "name: infra")
}

func TestCompileCommand_Errors(t *testing.T) {
	t.Parallel()

	t.Run("missing file", func(t *testing.T) {
		_, err := runCompile(t, []string{"--file", "/nonexistent/definition.yaml"})
		require.Error(t, err)
	})

	t.Run("unexpected field", func(t *testing.T) {
		path := testutil.WriteDefinition(t, `
kind: account
name: store
spec:
  type: custom_provider
  bogus: true
`)
		_, err := runCompile(t, []string{"--file", path})
		require.Error(t, err)
		assert.Contains(t, err.Error(), "bogus")
	})

	t.Run("unknown schema", func(t *testing.T) {
		path := testutil.WriteDefinition(t, `
kind: gizmo
name: thing
spec: {}
`)
		_, err := runCompile(t, []string{"--file", path})
		require.Error(t, err)
	})
}
