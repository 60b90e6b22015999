package gen

import (
	"bytes"
	"fmt"
	"go/format"
	"text/template"

	"mirrorgen/internal/common"
	"mirrorgen/internal/ir"
)

// Config holds configuration for code generation.
type Config struct {
	// PackageName is the name of the generated package.
	PackageName string
	// OutputDir is the directory where generated files are written.
	OutputDir string
	// ArchiveImport is the import path of the archiving contracts the
	// emitted code compiles against.
	ArchiveImport string
	// GenerateComments enables per-field explanatory comments.
	GenerateComments bool
}

// DefaultConfig returns the default emitter configuration.
func DefaultConfig() Config {
	return Config{
		PackageName:      "adapters",
		OutputDir:        "./generated",
		ArchiveImport:    "mirrorgen/archive",
		GenerateComments: true,
	}
}

// Emitter generates adapter code from validated field mapping tables.
type Emitter struct {
	config Config
	reg    *ir.Registry
}

// NewEmitter creates a new Emitter. A nil registry means no converter
// declarations are available (representation naming conventions apply).
func NewEmitter(config Config, reg *ir.Registry) *Emitter {
	if reg == nil {
		reg = ir.NewRegistry()
	}

	return &Emitter{config: config, reg: reg}
}

// GeneratedFile represents a generated Go source file.
type GeneratedFile struct {
	// Filename is the name of the file (e.g., "extfs_direntry_via_mirrors_direntrymirror.go").
	Filename string
	// Content is the formatted Go source code.
	Content []byte
}

// archiveAlias returns the package alias used for the archive contracts
// in emitted code.
func (e *Emitter) archiveAlias() string {
	return common.PkgAlias(e.config.ArchiveImport)
}

// EmitArchive emits the representation/resolver unit for the mirror and
// one serialize/build unit per remote type. Field processing follows the
// table's declaration order; multiple remotes produce structurally
// parallel units off the same table.
func (e *Emitter) EmitArchive(table *ir.Table) ([]GeneratedFile, error) {
	var files []GeneratedFile

	repr, err := e.emitRepr(table)
	if err != nil {
		return nil, fmt.Errorf("emitting representation for %s: %w", table.Mirror, err)
	}

	files = append(files, *repr)

	for _, remote := range table.Remotes {
		pair, err := e.emitPair(table, remote)
		if err != nil {
			return nil, fmt.Errorf("emitting %s via %s: %w", remote, table.Mirror, err)
		}

		files = append(files, *pair)
	}

	return files, nil
}

// EmitDeserialize emits the reconstruction unit for the mirror, with one
// function per remote type. It returns nil without error when the table
// is not fully reconstructable: the capability is not auto-derivable and
// the caller is expected to supply it manually.
func (e *Emitter) EmitDeserialize(table *ir.Table) (*GeneratedFile, error) {
	if !table.FullyReconstructable {
		return nil, nil
	}

	file, err := e.emitDeserialize(table)
	if err != nil {
		return nil, fmt.Errorf("emitting deserialize for %s: %w", table.Mirror, err)
	}

	return file, nil
}

// render executes a template and gofmt-formats the result. On formatting
// failure the unformatted content is kept in a debug sidecar and returned
// alongside the error so the caller can inspect it.
func (e *Emitter) render(tmpl *template.Template, filename string, data any) (*GeneratedFile, error) {
	var buf bytes.Buffer
	if err := tmpl.Execute(&buf, data); err != nil {
		return nil, fmt.Errorf("executing template: %w", err)
	}

	formatted, err := format.Source(buf.Bytes())
	if err != nil {
		if e.config.OutputDir != "" {
			_ = writeDebugUnformatted(e.config.OutputDir, filename, buf.Bytes())
		}

		return &GeneratedFile{
			Filename: filename,
			Content:  buf.Bytes(),
		}, fmt.Errorf("formatting code: %w", err)
	}

	return &GeneratedFile{
		Filename: filename,
		Content:  formatted,
	}, nil
}
