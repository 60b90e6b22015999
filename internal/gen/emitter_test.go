package gen

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"mirrorgen/internal/analyze"
	"mirrorgen/internal/ir"
)

var (
	mirrorPath      = analyze.TypePath{PkgPath: "mirrorgen/examples/mirrors", Name: "DirEntryMirror"}
	stampMirrorPath = analyze.TypePath{PkgPath: "mirrorgen/examples/mirrors", Name: "StampMirror"}
	remotePath      = analyze.TypePath{PkgPath: "mirrorgen/examples/extfs", Name: "DirEntry"}
	modePath        = analyze.TypePath{PkgPath: "mirrorgen/examples/extfs", Name: "Mode"}
	stampPath       = analyze.TypePath{PkgPath: "mirrorgen/examples/extfs", Name: "Stamp"}
	legacyPath      = analyze.TypePath{PkgPath: "mirrorgen/examples/extfs", Name: "LegacyStamp"}
	octalPath       = analyze.TypePath{PkgPath: "mirrorgen/examples/mirrors", Name: "AsOctal"}
	ownerFunc       = analyze.FuncPath{PkgPath: "mirrorgen/examples/extfs", Name: "Owner"}
	takeOwnerFunc   = analyze.FuncPath{PkgPath: "mirrorgen/examples/extfs", Name: "TakeOwner"}
)

func testConfig() Config {
	cfg := DefaultConfig()
	cfg.OutputDir = "" // no debug sidecars from tests

	return cfg
}

// dirEntryTable mixes all three conversion kinds plus a getter.
func dirEntryTable() *ir.Table {
	return &ir.Table{
		TypeSpec: ir.TypeSpec{
			Mirror:  mirrorPath,
			Remotes: []analyze.TypePath{remotePath},
			Fields: []ir.FieldSpec{
				{
					Name:            "Name",
					MirrorType:      analyze.TypePath{Name: "string"},
					Kind:            ir.ConverterIdentity,
					Reconstructable: true,
				},
				{
					Name:            "Mode",
					MirrorType:      modePath,
					FromType:        &modePath,
					Via:             &octalPath,
					Kind:            ir.ConverterVia,
					Reconstructable: true,
				},
				{
					Name:            "Modified",
					MirrorType:      stampMirrorPath,
					FromType:        &stampPath,
					Kind:            ir.ConverterSelf,
					Reconstructable: true,
				},
				{
					Name:       "owner",
					MirrorType: analyze.TypePath{Name: "string"},
					Getter:     &ownerFunc,
					Kind:       ir.ConverterIdentity,
				},
			},
		},
		FullyReconstructable: false,
	}
}

// stampTable is identity-only and fully reconstructable, with two remotes.
func stampTable() *ir.Table {
	return &ir.Table{
		TypeSpec: ir.TypeSpec{
			Mirror:  stampMirrorPath,
			Remotes: []analyze.TypePath{stampPath, legacyPath},
			Fields: []ir.FieldSpec{
				{Name: "Sec", MirrorType: analyze.TypePath{Name: "int64"}, Reconstructable: true},
				{Name: "Nsec", MirrorType: analyze.TypePath{Name: "int32"}, Reconstructable: true},
			},
		},
		FullyReconstructable: true,
	}
}

func emitAll(t *testing.T, table *ir.Table) map[string]string {
	t.Helper()

	e := NewEmitter(testConfig(), nil)

	files, err := e.EmitArchive(table)
	require.NoError(t, err)

	out := make(map[string]string)
	for _, f := range files {
		out[f.Filename] = string(f.Content)
	}

	return out
}

func TestEmitArchiveFilenames(t *testing.T) {
	files := emitAll(t, dirEntryTable())

	require.Len(t, files, 2)
	assert.Contains(t, files, "mirrors_direntrymirror_repr.go")
	assert.Contains(t, files, "extfs_direntry_via_mirrors_direntrymirror.go")
}

func TestEmitRepr(t *testing.T) {
	files := emitAll(t, dirEntryTable())
	repr := files["mirrors_direntrymirror_repr.go"]

	assert.Contains(t, repr, "// Code generated by mirrorgen. DO NOT EDIT.")
	assert.Contains(t, repr, "package adapters")

	assert.Contains(t, repr, "type MirrorsDirEntryMirrorRepr struct")
	assert.Contains(t, repr, "type MirrorsDirEntryMirrorResolver struct")

	// Identity member keeps the mirror field type; via members use the
	// converter's representation; self members use the sibling repr.
	assert.Contains(t, repr, "mirrors.AsOctalRepr")
	assert.Contains(t, repr, "MirrorsStampMirrorRepr")
	assert.Contains(t, repr, "MirrorsStampMirrorResolver")
	assert.Contains(t, repr, "archive.Resolver")
}

func TestEmitPair(t *testing.T) {
	files := emitAll(t, dirEntryTable())
	pair := files["extfs_direntry_via_mirrors_direntrymirror.go"]

	assert.Contains(t, pair,
		"func SerializeExtfsDirEntryViaMirrorsDirEntryMirror(src *extfs.DirEntry, s archive.Serializer) (MirrorsDirEntryMirrorResolver, error)")
	assert.Contains(t, pair,
		"func BuildExtfsDirEntryViaMirrorsDirEntryMirror(src *extfs.DirEntry, pos archive.Pos, res MirrorsDirEntryMirrorResolver, out *MirrorsDirEntryMirrorRepr)")
	assert.Contains(t, pair,
		"func ArchiveExtfsDirEntryViaMirrorsDirEntryMirror(src *extfs.DirEntry, s archive.Serializer) (MirrorsDirEntryMirrorRepr, error)")

	// Identity fields go through the no-op converter.
	assert.Contains(t, pair, "archive.Identity[string]{}.Serialize(&v, s)")

	// via converters are invoked verbatim in both phases.
	assert.Contains(t, pair, "mirrors.AsOctal{}.Serialize(&v, s)")
	assert.Contains(t, pair, "mirrors.AsOctal{}.Build(&v, pos")
	assert.Contains(t, pair, "unsafe.Offsetof(out.Mode)")
	assert.Contains(t, pair, "res.Mode, &out.Mode)")

	// Self conversion delegates to the sibling generated functions.
	assert.Contains(t, pair, "SerializeExtfsStampViaMirrorsStampMirror(&v, s)")
	assert.Contains(t, pair, "BuildExtfsStampViaMirrorsStampMirror(&v, pos")
	assert.Contains(t, pair, "unsafe.Offsetof(out.Modified)")
	assert.Contains(t, pair, "res.Modified, &out.Modified)")
}

func TestEmitPairGetterPrecedence(t *testing.T) {
	files := emitAll(t, dirEntryTable())
	pair := files["extfs_direntry_via_mirrors_direntrymirror.go"]

	// An explicit getter always wins over the direct field read.
	assert.Contains(t, pair, "extfs.Owner(src)")
	assert.NotContains(t, pair, "src.owner")
}

func TestEmitPairGetterOwned(t *testing.T) {
	table := dirEntryTable()
	table.Fields[3].Getter = &takeOwnerFunc
	table.Fields[3].GetterOwned = true

	files := emitAll(t, table)
	pair := files["extfs_direntry_via_mirrors_direntrymirror.go"]

	// The owned convention passes a copy of the instance by value.
	assert.Contains(t, pair, "extfs.TakeOwner(*src)")
	assert.NotContains(t, pair, "extfs.TakeOwner(src)")
}

func TestEmitDeserialize(t *testing.T) {
	e := NewEmitter(testConfig(), nil)

	file, err := e.EmitDeserialize(stampTable())
	require.NoError(t, err)
	require.NotNil(t, file)

	assert.Equal(t, "mirrors_stampmirror_deserialize.go", file.Filename)

	content := string(file.Content)

	// One structurally parallel function per remote, off the same table.
	assert.Contains(t, content,
		"func DeserializeExtfsStampViaMirrorsStampMirror(repr *MirrorsStampMirrorRepr, d archive.Deserializer) (extfs.Stamp, error)")
	assert.Contains(t, content,
		"func DeserializeExtfsLegacyStampViaMirrorsStampMirror(repr *MirrorsStampMirrorRepr, d archive.Deserializer) (extfs.LegacyStamp, error)")

	// Remotes are reconstructed by direct field assignment.
	assert.Contains(t, content, "archive.Identity[int64]{}.Deserialize(&repr.Sec, d)")
	assert.Contains(t, content, "out.Nsec = v")
}

func TestEmitDeserializeGating(t *testing.T) {
	e := NewEmitter(testConfig(), nil)

	// A table with any getter field never yields a deserialize unit.
	file, err := e.EmitDeserialize(dirEntryTable())
	require.NoError(t, err)
	assert.Nil(t, file)
}

func TestEmitMultiRemotePairs(t *testing.T) {
	files := emitAll(t, stampTable())

	require.Len(t, files, 3)
	assert.Contains(t, files, "mirrors_stampmirror_repr.go")
	assert.Contains(t, files, "extfs_stamp_via_mirrors_stampmirror.go")
	assert.Contains(t, files, "extfs_legacystamp_via_mirrors_stampmirror.go")

	// Both pair units share the mirror's repr and resolver types.
	assert.Contains(t, files["extfs_stamp_via_mirrors_stampmirror.go"], "MirrorsStampMirrorResolver")
	assert.Contains(t, files["extfs_legacystamp_via_mirrors_stampmirror.go"], "MirrorsStampMirrorResolver")
}

func TestEmitDeterministic(t *testing.T) {
	first := emitAll(t, dirEntryTable())
	second := emitAll(t, dirEntryTable())

	assert.Equal(t, first, second)
}

func TestEmitReprOverride(t *testing.T) {
	reg := ir.NewRegistry()
	reg.Add(&ir.ConverterInfo{
		Path: octalPath,
		Repr: analyze.TypePath{PkgPath: "other/pkg", Name: "OctalArchived"},
	})

	e := NewEmitter(testConfig(), reg)

	files, err := e.EmitArchive(dirEntryTable())
	require.NoError(t, err)

	repr := string(files[0].Content)
	assert.Contains(t, repr, "pkg.OctalArchived")
	assert.NotContains(t, repr, "AsOctalRepr")
}

func TestEmitNoComments(t *testing.T) {
	cfg := testConfig()
	cfg.GenerateComments = false

	e := NewEmitter(cfg, nil)

	files, err := e.EmitArchive(dirEntryTable())
	require.NoError(t, err)

	for _, f := range files {
		assert.NotContains(t, string(f.Content), "// Mode: converted via")
		assert.NotContains(t, string(f.Content), "// nested mirror")
	}
}

func TestEmitEmptyMirror(t *testing.T) {
	table := &ir.Table{
		TypeSpec: ir.TypeSpec{
			Mirror:  stampMirrorPath,
			Remotes: []analyze.TypePath{stampPath},
		},
		FullyReconstructable: true,
	}

	files := emitAll(t, table)
	require.Len(t, files, 2)

	// No fields means no unsafe import and no per-field blocks.
	pair := files["extfs_stamp_via_mirrors_stampmirror.go"]
	assert.NotContains(t, pair, "unsafe")
	assert.Contains(t, pair, "return res, nil")
}
