package entity

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeSpecValidator struct {
	err  error
	seen map[string]any
}

func (f *fakeSpecValidator) ValidateSpec(spec map[string]any) error {
	f.seen = spec
	return f.err
}

type fakeSpecValidators map[string]SpecValidator

func (f fakeSpecValidators) Lookup(providerType string) (SpecValidator, bool) {
	v, ok := f[providerType]
	return v, ok
}

func TestResolveSpecType(t *testing.T) {
	t.Parallel()

	tests := []struct {
		kind string
		want string
	}{
		{kind: "PROVISION_AHV_VM", want: "AHV_VM"},
		{kind: "PROVISION_VMWARE_VM", want: "VMWARE_VM"},
		{kind: "PROVISION_GCP_VM", want: "GCP_VM"},
		{kind: "PROVISION_EXISTING_MACHINE", want: "EXISTING_VM"},
		{kind: "PROVISION_AWS_VM", want: "AWS_VM"},
		{kind: "PROVISION_AZURE_VM", want: "AZURE_VM"},
	}

	for _, tt := range tests {
		tt := tt
		t.Run(tt.kind, func(t *testing.T) {
			t.Parallel()
			got, ok := ResolveSpecType(tt.kind)
			require.True(t, ok)
			assert.Equal(t, tt.want, got)
		})
	}

	_, ok := ResolveSpecType("PROVISION_MAINFRAME")
	assert.False(t, ok)
}

func TestValidateProviderSpecSuccess(t *testing.T) {
	t.Parallel()

	validator := &fakeSpecValidator{}
	spec := map[string]any{"type": "PROVISION_AHV_VM", "resources": map[string]any{}}

	out, err := ValidateProviderSpec(spec, "AHV_VM", "web-vm", fakeSpecValidators{"AHV_VM": validator})
	require.NoError(t, err)
	assert.Equal(t, spec, out)
	assert.Equal(t, spec, validator.seen)
}

func TestValidateProviderSpecDefaultKind(t *testing.T) {
	t.Parallel()

	validator := &fakeSpecValidator{}
	spec := map[string]any{"resources": map[string]any{}}

	_, err := ValidateProviderSpec(spec, "AHV_VM", "web-vm", fakeSpecValidators{"AHV_VM": validator})
	require.NoError(t, err)
}

func TestValidateProviderSpecMismatch(t *testing.T) {
	t.Parallel()

	spec := map[string]any{"type": "PROVISION_AHV_VM"}

	_, err := ValidateProviderSpec(spec, "AWS_VM", "web-vm", fakeSpecValidators{})
	require.Error(t, err)
	var mismatch ProviderTypeMismatchError
	require.ErrorAs(t, err, &mismatch)
	assert.Equal(t, "AWS_VM", mismatch.SubstrateType)
	assert.Equal(t, "AHV_VM", mismatch.SpecType)
	assert.Equal(t, "web-vm", mismatch.Context)
	assert.Contains(t, err.Error(), "web-vm")
}

func TestValidateProviderSpecUnknownKind(t *testing.T) {
	t.Parallel()

	spec := map[string]any{"type": "PROVISION_MAINFRAME"}

	_, err := ValidateProviderSpec(spec, "AHV_VM", "web-vm", fakeSpecValidators{})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "PROVISION_MAINFRAME")
}

func TestValidateProviderSpecNoValidator(t *testing.T) {
	t.Parallel()

	spec := map[string]any{"type": "PROVISION_AHV_VM"}

	_, err := ValidateProviderSpec(spec, "AHV_VM", "web-vm", fakeSpecValidators{})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "no spec validator")
}

func TestValidateProviderSpecValidatorFailure(t *testing.T) {
	t.Parallel()

	validator := &fakeSpecValidator{err: errors.New("resources is required")}
	spec := map[string]any{"type": "PROVISION_AHV_VM"}

	_, err := ValidateProviderSpec(spec, "AHV_VM", "web-vm", fakeSpecValidators{"AHV_VM": validator})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "resources is required")
}
