package ir

import (
	"fmt"

	"mirrorgen/internal/common"
	"mirrorgen/internal/diagnostic"
)

// Validate checks a TypeSpec for completeness and internal consistency
// and freezes it into a Table. Checks, each with its own diagnostic code:
//
//   - MissingRemoteType: the remotes list is empty. Never inferred.
//   - GetterOwnedWithoutGetter: the owned flag without a getter.
//   - AmbiguousConversion: an explicit via converter whose declared
//     source type contradicts the field's from type. Best-effort only:
//     undeclared converters pass, and residual mismatches surface as
//     type errors in the emitted code.
//
// As a side effect each field is marked reconstructable iff it has no
// getter; the table is fully reconstructable iff every field is.
// Any error aborts emission for this mirror only.
func Validate(spec *TypeSpec, reg *Registry) (*Table, diagnostic.Diagnostics) {
	var diags diagnostic.Diagnostics

	mirror := spec.Mirror.String()

	if common.IsEmpty(spec.Remotes) {
		diags.AddError(diagnostic.CodeMissingRemoteType,
			"mirror type declares no remote types (remotes(...) is required)",
			mirror, "")
	}

	table := &Table{
		TypeSpec:             *spec,
		FullyReconstructable: true,
	}
	table.Fields = append([]FieldSpec(nil), spec.Fields...)

	for i := range table.Fields {
		field := &table.Fields[i]

		if field.GetterOwned && field.Getter == nil {
			diags.AddError(diagnostic.CodeGetterOwnedWithoutGetter,
				"getter_owned requires an explicit getter",
				mirror, field.Name)
		}

		checkConversion(field, reg, mirror, &diags)

		field.Reconstructable = field.Getter == nil
		if !field.Reconstructable {
			table.FullyReconstructable = false
		}
	}

	if diags.HasErrors() {
		return nil, diags
	}

	return table, diags
}

// checkConversion performs the best-effort static compatibility check
// between an explicit via converter and the field's declared from type.
// The check fires only when both sides are declared: the converter in
// the registry with a from type, and the field with from(...). A via
// without from is always accepted (the converter may take the remote
// field type directly).
func checkConversion(field *FieldSpec, reg *Registry, mirror string, diags *diagnostic.Diagnostics) {
	if field.Kind != ConverterVia || field.FromType == nil || reg == nil {
		return
	}

	info := reg.Get(*field.Via)
	if info == nil || info.From.IsZero() {
		return
	}

	if info.From != *field.FromType {
		diags.AddError(diagnostic.CodeAmbiguousConversion,
			fmt.Sprintf("converter %s accepts %s but field declares from(%s)",
				field.Via, info.From, field.FromType),
			mirror, field.Name)
	}
}
