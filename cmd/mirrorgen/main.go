// Package main provides the CLI entrypoint for mirrorgen.
//
// mirrorgen is a codegen tool that:
//   - Parses Go packages (go/types) to read mirror struct declarations
//   - Checks per-type and per-field archiving directives from a YAML spec
//   - Validates the resulting field mapping tables
//   - Generates archive/serialize adapters per (mirror, remote) pair and
//     deserialize adapters where reconstruction is possible
package main

import (
	"github.com/alecthomas/kong"
	kongyaml "github.com/alecthomas/kong-yaml"
)

type cli struct {
	Gen   genCmd   `cmd:"" help:"Generate adapter code from a mirror spec."`
	Check checkCmd `cmd:"" help:"Validate a mirror spec without emitting files."`
	Dump  dumpCmd  `cmd:"" help:"Print the resolved field mapping tables."`
}

func main() {
	var c cli

	ctx := kong.Parse(&c,
		kong.Name("mirrorgen"),
		kong.Description("Generates binary-archive adapters that let mirror types stand in for remote types."),
		kong.UsageOnError(),
		// Flag defaults may come from a config file; flags and env override.
		kong.Configuration(kong.JSON, ".mirrorgen.json"),
		kong.Configuration(kongyaml.Loader, ".mirrorgen.yaml", ".mirrorgen.yml"),
	)

	err := ctx.Run()
	ctx.FatalIfErrorf(err)
}
