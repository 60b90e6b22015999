package main

import (
	"errors"
	"fmt"
	"os"

	"github.com/davecgh/go-spew/spew"

	"mirrorgen/internal/analyze"
	"mirrorgen/internal/directive"
	"mirrorgen/internal/diagnostic"
	"mirrorgen/internal/gen"
	"mirrorgen/internal/pipeline"
)

// specArgs are the inputs shared by every command.
type specArgs struct {
	Spec     string   `arg:"" help:"Path to the YAML mirror spec." type:"existingfile"`
	Packages []string `help:"Go package patterns containing the mirror types." default:"./..."`
}

// emitArgs are the generation knobs shared by gen and dump.
type emitArgs struct {
	Package       string `help:"Generated package name." default:"adapters"`
	Out           string `help:"Output directory." default:"./generated"`
	ArchiveImport string `help:"Import path of the archive contracts." default:"mirrorgen/archive"`
	NoComments    bool   `help:"Disable explanatory comments in generated code."`
}

func (a *emitArgs) config() gen.Config {
	return gen.Config{
		PackageName:      a.Package,
		OutputDir:        a.Out,
		ArchiveImport:    a.ArchiveImport,
		GenerateComments: !a.NoComments,
	}
}

// run loads the spec and the mirror declarations and executes the pipeline.
func (a *specArgs) run(cfg gen.Config) (*pipeline.Result, error) {
	sf, err := directive.LoadFile(a.Spec)
	if err != nil {
		return nil, err
	}

	loader := analyze.NewLoader()
	if err := loader.LoadPackages(a.Packages...); err != nil {
		return nil, err
	}

	return pipeline.Run(sf, loader, cfg), nil
}

// report prints all diagnostics, errors to stderr and the rest to stdout.
func report(result *pipeline.Result) {
	printDiags(&result.Global)

	for i := range result.Types {
		printDiags(&result.Types[i].Diags)
	}
}

func printDiags(d *diagnostic.Diagnostics) {
	for _, e := range d.Errors {
		fmt.Fprintln(os.Stderr, "error: "+e.String())
	}

	for _, w := range d.Warnings {
		fmt.Println("warning: " + w.String())
	}

	for _, i := range d.Infos {
		fmt.Println("info: " + i.String())
	}
}

type genCmd struct {
	specArgs
	emitArgs
}

// Run generates adapter files. Mirrors that fail still leave their
// siblings' output intact; the command exits non-zero if anything failed.
func (c *genCmd) Run() error {
	result, err := c.specArgs.run(c.config())
	if err != nil {
		return err
	}

	report(result)

	if files := result.Files(); len(files) > 0 {
		if err := gen.WriteFiles(files, c.Out); err != nil {
			return err
		}

		fmt.Printf("wrote %d file(s) to %s\n", len(files), c.Out)
	}

	if result.HasErrors() {
		return errors.New("one or more mirrors failed; see diagnostics above")
	}

	return nil
}

type checkCmd struct {
	specArgs
}

// Run validates the spec without writing any files.
func (c *checkCmd) Run() error {
	cfg := gen.DefaultConfig()
	cfg.OutputDir = "" // suppress debug sidecars

	result, err := c.specArgs.run(cfg)
	if err != nil {
		return err
	}

	report(result)

	if result.HasErrors() {
		return errors.New("spec has errors")
	}

	fmt.Println("spec is valid")

	return nil
}

type dumpCmd struct {
	specArgs
}

// Run prints the resolved, validated field mapping tables.
func (c *dumpCmd) Run() error {
	cfg := gen.DefaultConfig()
	cfg.OutputDir = ""

	result, err := c.specArgs.run(cfg)
	if err != nil {
		return err
	}

	report(result)

	for i := range result.Types {
		if result.Types[i].Table != nil {
			spew.Dump(result.Types[i].Table)
		}
	}

	if result.HasErrors() {
		return errors.New("spec has errors")
	}

	return nil
}
