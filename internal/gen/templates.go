package gen

import (
	"text/template"

	"mirrorgen/internal/analyze"
	"mirrorgen/internal/ir"
)

// emitRepr renders the representation/resolver unit for one mirror.
func (e *Emitter) emitRepr(table *ir.Table) (*GeneratedFile, error) {
	return e.render(reprTemplate, reprFilename(table.Mirror), e.buildReprData(table))
}

// emitPair renders the serialize/build unit for one (mirror, remote) pair.
func (e *Emitter) emitPair(table *ir.Table, remote analyze.TypePath) (*GeneratedFile, error) {
	return e.render(pairTemplate, pairFilename(remote, table.Mirror), e.buildPairData(table, remote))
}

// emitDeserialize renders the reconstruction unit for one mirror.
func (e *Emitter) emitDeserialize(table *ir.Table) (*GeneratedFile, error) {
	return e.render(deserTemplate, deserializeFilename(table.Mirror), e.buildDeserData(table))
}

var reprTemplate = template.Must(template.New("repr").Parse(`// Code generated by mirrorgen. DO NOT EDIT.

package {{.PackageName}}

{{if .Imports}}import (
{{range .Imports}}	{{if .Alias}}{{.Alias}} {{end}}"{{.Path}}"
{{end}})
{{end}}
// {{.ReprName}} is the archived representation of {{.MirrorRef}},
// one member per field in declaration order.
type {{.ReprName}} struct {
{{range .Members}}	{{.Name}} {{.ReprType}}{{if .Comment}} // {{.Comment}}{{end}}
{{end}}}

// {{.ResolverName}} holds the per-field resolver tokens produced by
// serializing through {{.MirrorRef}} and consumed when building the
// representation.
type {{.ResolverName}} struct {
{{range .Members}}	{{.Name}} {{.ResolverType}}
{{end}}}
`))

var pairTemplate = template.Must(template.New("pair").Parse(`// Code generated by mirrorgen. DO NOT EDIT.

package {{.PackageName}}

{{if .Imports}}import (
{{range .Imports}}	{{if .Alias}}{{.Alias}} {{end}}"{{.Path}}"
{{end}})
{{end}}
// {{.SerializeFunc}} serializes a {{.RemoteRef}} through {{.MirrorRef}},
// returning the resolver consumed by {{.BuildFunc}}.
func {{.SerializeFunc}}(src *{{.RemoteRef}}, s {{.ArchiveAlias}}.Serializer) ({{.ResolverName}}, error) {
	var res {{.ResolverName}}
{{if .Fields}}
	var err error
{{end}}{{range .Fields}}
	{
{{if .Comment}}		// {{.Comment}}
{{end}}		var v {{.SourceType}} = {{.SourceExpr}}
		res.{{.Name}}, err = {{.SerializeCall}}
		if err != nil {
			return res, err
		}
	}
{{end}}
	return res, nil
}

// {{.BuildFunc}} finalizes the archived representation of a {{.RemoteRef}}
// at pos. {{.SerializeFunc}} must run first; the two are a pair.
func {{.BuildFunc}}(src *{{.RemoteRef}}, pos {{.ArchiveAlias}}.Pos, res {{.ResolverName}}, out *{{.ReprName}}) {
{{range .Fields}}	{
		var v {{.SourceType}} = {{.SourceExpr}}
		{{.BuildCall}}
	}
{{end}}}

// {{.ArchiveFunc}} runs the two-phase protocol as a pair: serialize
// first, then build at the current position.
func {{.ArchiveFunc}}(src *{{.RemoteRef}}, s {{.ArchiveAlias}}.Serializer) ({{.ReprName}}, error) {
	var out {{.ReprName}}

	res, err := {{.SerializeFunc}}(src, s)
	if err != nil {
		return out, err
	}

	{{.BuildFunc}}(src, s.Pos(), res, &out)

	return out, nil
}
`))

var deserTemplate = template.Must(template.New("deserialize").Parse(`// Code generated by mirrorgen. DO NOT EDIT.

package {{.PackageName}}

{{if .Imports}}import (
{{range .Imports}}	{{if .Alias}}{{.Alias}} {{end}}"{{.Path}}"
{{end}})
{{end}}{{$top := .}}{{range .Units}}
// {{.DeserializeFunc}} reconstructs a {{.RemoteRef}} from the archived
// representation by direct field assignment.
func {{.DeserializeFunc}}(repr *{{$top.ReprName}}, d {{$top.ArchiveAlias}}.Deserializer) ({{.RemoteRef}}, error) {
	var out {{.RemoteRef}}
{{range $top.Fields}}
	{
		v, err := {{.DeserializeCall}}
		if err != nil {
			return out, err
		}

		out.{{.Name}} = v
	}
{{end}}
	return out, nil
}
{{end}}`))
