package ir

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"mirrorgen/internal/analyze"
	"mirrorgen/internal/diagnostic"
)

func octalRegistry(t *testing.T, from analyze.TypePath) *Registry {
	t.Helper()

	reg := NewRegistry()
	reg.Add(&ConverterInfo{Path: octalPath, From: from})

	return reg
}

func TestValidateMissingRemoteType(t *testing.T) {
	spec := &TypeSpec{Mirror: mirrorPath}

	table, diags := Validate(spec, NewRegistry())
	assert.Nil(t, table)
	assert.True(t, diags.HasCode(diagnostic.CodeMissingRemoteType))
}

func TestValidateGetterOwnedWithoutGetter(t *testing.T) {
	spec := &TypeSpec{
		Mirror:  mirrorPath,
		Remotes: []analyze.TypePath{remotePath},
		Fields: []FieldSpec{
			{Name: "owner", MirrorType: analyze.TypePath{Name: "string"}, GetterOwned: true},
		},
	}

	table, diags := Validate(spec, NewRegistry())
	assert.Nil(t, table)
	require.True(t, diags.HasCode(diagnostic.CodeGetterOwnedWithoutGetter))
	assert.Equal(t, "owner", diags.Errors[0].Field)
}

func TestValidateAmbiguousConversion(t *testing.T) {
	wrongFrom := analyze.TypePath{PkgPath: "other/pkg", Name: "Mode"}

	field := FieldSpec{
		Name:       "Mode",
		MirrorType: modePath,
		FromType:   &modePath,
		Via:        &octalPath,
		Kind:       ConverterVia,
	}
	spec := &TypeSpec{
		Mirror:  mirrorPath,
		Remotes: []analyze.TypePath{remotePath},
		Fields:  []FieldSpec{field},
	}

	// Declared converter whose source type contradicts from(...): error.
	table, diags := Validate(spec, octalRegistry(t, wrongFrom))
	assert.Nil(t, table)
	assert.True(t, diags.HasCode(diagnostic.CodeAmbiguousConversion))

	// Matching declaration: passes.
	table, diags = Validate(spec, octalRegistry(t, modePath))
	require.NoError(t, diags.Error())
	require.NotNil(t, table)

	// Undeclared converter: best-effort check stays silent.
	table, diags = Validate(spec, NewRegistry())
	require.NoError(t, diags.Error())
	require.NotNil(t, table)
}

func TestValidateViaWithoutFromAlwaysPasses(t *testing.T) {
	// The converter may accept the remote field type directly; without
	// from(...) there is nothing to compare against.
	spec := &TypeSpec{
		Mirror:  mirrorPath,
		Remotes: []analyze.TypePath{remotePath},
		Fields: []FieldSpec{
			{Name: "Mode", MirrorType: modePath, Via: &octalPath, Kind: ConverterVia},
		},
	}

	table, diags := Validate(spec, octalRegistry(t, analyze.TypePath{PkgPath: "other/pkg", Name: "Mode"}))
	require.NoError(t, diags.Error())
	require.NotNil(t, table)
}

func TestValidateReconstructability(t *testing.T) {
	spec := &TypeSpec{
		Mirror:  mirrorPath,
		Remotes: []analyze.TypePath{remotePath},
		Fields: []FieldSpec{
			{Name: "Name", MirrorType: analyze.TypePath{Name: "string"}},
			{Name: "owner", MirrorType: analyze.TypePath{Name: "string"}, Getter: &ownerFunc},
		},
	}

	table, diags := Validate(spec, NewRegistry())
	require.NoError(t, diags.Error())
	require.NotNil(t, table)

	assert.True(t, table.Fields[0].Reconstructable)
	assert.False(t, table.Fields[1].Reconstructable)
	assert.False(t, table.FullyReconstructable)

	// Without the getter field the table is fully reconstructable.
	spec.Fields = spec.Fields[:1]
	table, diags = Validate(spec, NewRegistry())
	require.NoError(t, diags.Error())
	assert.True(t, table.FullyReconstructable)
}
