package ir

import (
	"fmt"

	"mirrorgen/internal/analyze"
	"mirrorgen/internal/directive"
	"mirrorgen/internal/diagnostic"
)

// Registry holds declared converter capabilities and provides lookup.
// Declarations are optional: an undeclared converter always passes the
// static checks and any mismatch surfaces later as a compile error in
// the emitted code.
type Registry struct {
	converters map[analyze.TypePath]*ConverterInfo
}

// ConverterInfo is one declared converter with resolved references.
type ConverterInfo struct {
	// Path is the converter type.
	Path analyze.TypePath
	// From is the source type the converter accepts; zero when the
	// declaration omitted it.
	From analyze.TypePath
	// Repr is the converter's archived representation type; zero when
	// the declaration omitted it (the naming convention applies).
	Repr analyze.TypePath
}

// NewRegistry creates an empty Registry.
func NewRegistry() *Registry {
	return &Registry{
		converters: make(map[analyze.TypePath]*ConverterInfo),
	}
}

// BuildRegistry resolves converter declarations from a spec file.
// Duplicate names and malformed references are reported as diagnostics;
// valid entries are still registered so unrelated mirrors can proceed.
func BuildRegistry(decls []directive.ConverterDecl) (*Registry, diagnostic.Diagnostics) {
	reg := NewRegistry()

	var diags diagnostic.Diagnostics

	for i := range decls {
		decl := &decls[i]

		path, err := analyze.ParseTypePath(decl.Name)
		if err != nil {
			diags.AddError(diagnostic.CodeSyntax,
				fmt.Sprintf("converter name: %v", err), "", decl.Name)
			continue
		}

		if _, ok := reg.converters[path]; ok {
			diags.AddError(diagnostic.CodeSyntax,
				fmt.Sprintf("duplicate converter %q", path), "", decl.Name)
			continue
		}

		info := &ConverterInfo{Path: path}

		if decl.From != "" {
			from, err := analyze.ParseTypePath(decl.From)
			if err != nil {
				diags.AddError(diagnostic.CodeSyntax,
					fmt.Sprintf("converter %q from: %v", path, err), "", decl.Name)
				continue
			}

			info.From = from
		}

		if decl.Repr != "" {
			repr, err := analyze.ParseTypePath(decl.Repr)
			if err != nil {
				diags.AddError(diagnostic.CodeSyntax,
					fmt.Sprintf("converter %q repr: %v", path, err), "", decl.Name)
				continue
			}

			info.Repr = repr
		}

		reg.converters[path] = info
	}

	return reg, diags
}

// Add registers a converter directly.
func (r *Registry) Add(info *ConverterInfo) {
	r.converters[info.Path] = info
}

// Get returns the declared converter for the given path, or nil.
func (r *Registry) Get(path analyze.TypePath) *ConverterInfo {
	return r.converters[path]
}

// ReprOf returns the archived representation type for a converter path.
// A declared repr wins; otherwise the "<Name>Repr" convention in the
// converter's own package applies.
func (r *Registry) ReprOf(path analyze.TypePath) analyze.TypePath {
	if info := r.Get(path); info != nil && !info.Repr.IsZero() {
		return info.Repr
	}

	return analyze.TypePath{PkgPath: path.PkgPath, Name: path.Name + "Repr"}
}
