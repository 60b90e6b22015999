package pipeline

import (
	"fmt"

	"mirrorgen/internal/analyze"
	"mirrorgen/internal/directive"
	"mirrorgen/internal/diagnostic"
	"mirrorgen/internal/gen"
	"mirrorgen/internal/ir"
)

// DeclSource resolves mirror type paths to their struct declarations.
// *analyze.Loader satisfies it.
type DeclSource interface {
	Decl(path analyze.TypePath) (*analyze.MirrorDecl, bool)
}

// TypeResult is one mirror's independent pipeline outcome.
type TypeResult struct {
	// Mirror is the textual mirror reference from the spec entry.
	Mirror string
	// Table is the validated field mapping table, nil when any stage
	// before validation failed.
	Table *ir.Table
	// Files are the emitted units for this mirror.
	Files []gen.GeneratedFile
	// Diags accumulates everything this mirror's pipeline reported.
	Diags diagnostic.Diagnostics
}

// Result is a whole-run outcome.
type Result struct {
	// Types holds one entry per mirror spec, in input order.
	Types []TypeResult
	// Global holds diagnostics not attached to any mirror (converter
	// registry problems).
	Global diagnostic.Diagnostics
}

// Files flattens all emitted files in input order.
func (r *Result) Files() []gen.GeneratedFile {
	var files []gen.GeneratedFile
	for i := range r.Types {
		files = append(files, r.Types[i].Files...)
	}

	return files
}

// HasErrors reports whether any mirror or the registry failed.
func (r *Result) HasErrors() bool {
	if r.Global.HasErrors() {
		return true
	}

	for i := range r.Types {
		if r.Types[i].Diags.HasErrors() {
			return true
		}
	}

	return false
}

// Run compiles every mirror entry of the spec file independently.
func Run(sf *directive.SpecFile, decls DeclSource, cfg gen.Config) *Result {
	result := &Result{}

	reg, regDiags := ir.BuildRegistry(sf.Converters)
	result.Global = regDiags

	emitter := gen.NewEmitter(cfg, reg)

	for i := range sf.Mirrors {
		result.Types = append(result.Types, runOne(&sf.Mirrors[i], decls, reg, emitter))
	}

	return result
}

// runOne executes the full pipeline for a single mirror entry.
func runOne(ms *directive.MirrorSpec, decls DeclSource, reg *ir.Registry, emitter *gen.Emitter) TypeResult {
	res := TypeResult{Mirror: ms.Mirror}

	dirs, diags := directive.Check(ms.Raw())
	res.Diags.Merge(diags)

	if dirs == nil {
		return res
	}

	decl, ok := decls.Decl(dirs.Mirror)
	if !ok {
		res.Diags.AddError(diagnostic.CodeUnknownMirror,
			fmt.Sprintf("mirror type %s not found in the loaded packages", dirs.Mirror),
			dirs.Mirror.String(), "")

		return res
	}

	spec, buildDiags := ir.Build(decl, dirs)
	res.Diags.Merge(buildDiags)

	if spec == nil {
		return res
	}

	table, validateDiags := ir.Validate(spec, reg)
	res.Diags.Merge(validateDiags)

	if table == nil {
		return res
	}

	res.Table = table

	files, err := emitter.EmitArchive(table)
	if err != nil {
		res.Diags.AddError(diagnostic.CodeEmitFailure, err.Error(), res.Mirror, "")
		return res
	}

	res.Files = files

	if !table.FullyReconstructable {
		// Deliberate absence of output, not a failure: the caller is
		// expected to supply the reconstruction manually.
		res.Diags.AddInfo(diagnostic.CodeNotReconstructable,
			"deserialize capability is not auto-derivable (one or more fields use a getter)",
			res.Mirror, "")

		return res
	}

	deser, err := emitter.EmitDeserialize(table)
	if err != nil {
		res.Diags.AddError(diagnostic.CodeEmitFailure, err.Error(), res.Mirror, "")
		return res
	}

	if deser != nil {
		res.Files = append(res.Files, *deser)
	}

	return res
}
