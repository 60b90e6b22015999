package ir

import (
	"fmt"

	"mirrorgen/internal/analyze"
	"mirrorgen/internal/directive"
	"mirrorgen/internal/diagnostic"
)

// Build combines a mirror declaration with its checked directives into an
// unvalidated TypeSpec, applying the default-inference rules per field:
//
//  1. Neither from nor via: identity converter, value used unchanged.
//  2. from without via: the field's own mirror type is the converter.
//  3. via: used verbatim for both directions, from optional.
//  4. Getter defaults to a direct by-name field read; an explicit getter
//     overrides it and getter_owned selects the by-value convention.
//
// A directive naming a field absent from the declaration is an error;
// remote-type presence is deliberately not checked here (validator's job).
func Build(decl *analyze.MirrorDecl, dirs *directive.TypeDirectives) (*TypeSpec, diagnostic.Diagnostics) {
	var diags diagnostic.Diagnostics

	mirror := decl.Path.String()

	for i := range dirs.Fields {
		if decl.Field(dirs.Fields[i].Name) == nil {
			diags.AddError(diagnostic.CodeUnknownField,
				fmt.Sprintf("directive targets field %q which is not declared on %s",
					dirs.Fields[i].Name, mirror),
				mirror, dirs.Fields[i].Name)
		}
	}

	if diags.HasErrors() {
		return nil, diags
	}

	spec := &TypeSpec{
		Mirror:  decl.Path,
		Remotes: append([]analyze.TypePath(nil), dirs.Remotes...),
	}

	for i := range decl.Fields {
		fd := decl.Fields[i]
		spec.Fields = append(spec.Fields, buildField(&fd, dirs.Field(fd.Name)))
	}

	return spec, diags
}

// buildField applies the inference rules to a single declared field.
func buildField(decl *analyze.FieldDecl, dirs *directive.FieldDirectives) FieldSpec {
	spec := FieldSpec{
		Name:        decl.Name,
		MirrorType:  decl.Type,
		TypeImports: append([]string(nil), decl.TypeImports...),
		Kind:        ConverterIdentity,
	}

	if dirs == nil {
		return spec
	}

	spec.FromType = dirs.From
	spec.Via = dirs.Via
	spec.Getter = dirs.Getter
	spec.GetterOwned = dirs.GetterOwned

	switch {
	case dirs.Via != nil:
		spec.Kind = ConverterVia
	case dirs.From != nil:
		spec.Kind = ConverterSelf
	}

	return spec
}
