package ir

import (
	"mirrorgen/internal/analyze"
	"mirrorgen/internal/common"
)

// ConverterKind describes how a field's value crosses the archive boundary.
type ConverterKind int

const (
	// ConverterIdentity - the field value is directly representable and
	// used unchanged in both directions.
	ConverterIdentity ConverterKind = iota
	// ConverterSelf - the field's own mirror type is the converter
	// (nested mirror-of-mirror composition).
	ConverterSelf
	// ConverterVia - an explicitly named converter capability is used
	// verbatim in both directions.
	ConverterVia
)

// String returns a human-readable kind name.
func (k ConverterKind) String() string {
	switch k {
	case ConverterIdentity:
		return "identity"
	case ConverterSelf:
		return "self"
	case ConverterVia:
		return "via"
	default:
		return common.UnknownStr
	}
}

// FieldSpec is one field's correspondence rule. Built once per run,
// never mutated after validation, discarded after emission.
type FieldSpec struct {
	// Name is the field name, identical in mirror and remote type.
	Name string
	// MirrorType is the field's declared type in the mirror struct.
	MirrorType analyze.TypePath
	// TypeImports lists extra package paths a composite MirrorType
	// rendering depends on.
	TypeImports []string
	// FromType is the field's type in the remote struct, when it
	// differs from the mirror field's semantic counterpart.
	FromType *analyze.TypePath
	// Via names the converter capability, when explicit.
	Via *analyze.TypePath
	// Getter reads the field out of a remote instance when direct
	// field access is unavailable.
	Getter *analyze.FuncPath
	// GetterOwned selects the by-value call convention for Getter.
	GetterOwned bool
	// Kind is the inferred conversion kind.
	Kind ConverterKind
	// Reconstructable is true iff no getter was used for this field.
	// Set by Validate.
	Reconstructable bool
}

// SourceType returns the declared type of the value read from the remote
// instance: FromType when given, the mirror field type otherwise.
func (f *FieldSpec) SourceType() analyze.TypePath {
	if f.FromType != nil {
		return *f.FromType
	}

	return f.MirrorType
}

// Converter returns the effective converter type for self and via kinds.
// For identity fields the returned path is the zero TypePath.
func (f *FieldSpec) Converter() analyze.TypePath {
	switch f.Kind {
	case ConverterVia:
		return *f.Via
	case ConverterSelf:
		return f.MirrorType
	default:
		return analyze.TypePath{}
	}
}

// TypeSpec is one mirror type's unvalidated specification.
type TypeSpec struct {
	// Mirror is the mirror type's identity.
	Mirror analyze.TypePath
	// Remotes lists the remote types, in declaration order. Each entry
	// produces an independent emitted capability set.
	Remotes []analyze.TypePath
	// Fields holds the per-field rules in mirror declaration order,
	// which is preserved into emitted output.
	Fields []FieldSpec
}

// Table is the finalized, validated field mapping table for one mirror.
type Table struct {
	TypeSpec

	// FullyReconstructable is true iff every field is reconstructable.
	// Gates the deserialize emitter.
	FullyReconstructable bool
}
