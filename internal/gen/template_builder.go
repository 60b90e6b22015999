package gen

import (
	"fmt"
	"sort"

	"mirrorgen/internal/analyze"
	"mirrorgen/internal/ir"
)

// importSpec is one import line of a generated file.
type importSpec struct {
	Alias string
	Path  string
}

// addImport records an import path. Empty paths (builtins, types local
// to the output package) are ignored.
func addImport(imports map[string]importSpec, path string) {
	if path == "" {
		return
	}

	imports[path] = importSpec{Path: path}
}

// qualify renders a type path for emitted code, recording the imports
// the rendering depends on.
func qualify(tp analyze.TypePath, extra []string, imports map[string]importSpec) string {
	addImport(imports, tp.PkgPath)

	for _, p := range extra {
		addImport(imports, p)
	}

	return tp.Qualified()
}

// sortedImports flattens the import set deterministically.
func sortedImports(imports map[string]importSpec) []importSpec {
	out := make([]importSpec, 0, len(imports))
	for _, imp := range imports {
		out = append(out, imp)
	}

	sort.Slice(out, func(i, j int) bool {
		return out[i].Path < out[j].Path
	})

	return out
}

// memberData is one member of the representation and resolver structs.
type memberData struct {
	Name         string
	ReprType     string
	ResolverType string
	Comment      string
}

// reprData feeds the representation/resolver template.
type reprData struct {
	PackageName  string
	Imports      []importSpec
	MirrorRef    string
	ReprName     string
	ResolverName string
	Members      []memberData
}

// buildReprData constructs the representation unit data for one mirror.
func (e *Emitter) buildReprData(table *ir.Table) *reprData {
	imports := make(map[string]importSpec)

	data := &reprData{
		PackageName:  e.config.PackageName,
		MirrorRef:    table.Mirror.String(),
		ReprName:     reprName(table.Mirror),
		ResolverName: resolverName(table.Mirror),
	}

	for i := range table.Fields {
		f := &table.Fields[i]
		m := memberData{Name: f.Name}

		switch f.Kind {
		case ir.ConverterIdentity:
			m.ReprType = qualify(f.MirrorType, f.TypeImports, imports)
			m.ResolverType = e.archiveAlias() + ".Resolver"
			addImport(imports, e.config.ArchiveImport)
		case ir.ConverterVia:
			m.ReprType = qualify(e.reg.ReprOf(*f.Via), nil, imports)
			m.ResolverType = e.archiveAlias() + ".Resolver"
			addImport(imports, e.config.ArchiveImport)

			if e.config.GenerateComments {
				m.Comment = "via " + f.Via.String()
			}
		case ir.ConverterSelf:
			// Nested mirror: its representation and resolver are the
			// sibling generated types in this package.
			m.ReprType = reprName(f.MirrorType)
			m.ResolverType = resolverName(f.MirrorType)

			if e.config.GenerateComments {
				m.Comment = "nested mirror " + f.MirrorType.String()
			}
		}

		data.Members = append(data.Members, m)
	}

	data.Imports = sortedImports(imports)

	return data
}

// fieldOp is one field's precomputed code fragments.
type fieldOp struct {
	Name            string
	Comment         string
	SourceType      string
	SourceExpr      string
	SerializeCall   string
	BuildCall       string
	DeserializeCall string
}

// pairData feeds the serialize/build template for one (mirror, remote) pair.
type pairData struct {
	PackageName   string
	Imports       []importSpec
	MirrorRef     string
	RemoteRef     string
	ReprName      string
	ResolverName  string
	SerializeFunc string
	BuildFunc     string
	ArchiveFunc   string
	ArchiveAlias  string
	Fields        []fieldOp
}

// buildPairData constructs the serialize/build unit data for one remote.
func (e *Emitter) buildPairData(table *ir.Table, remote analyze.TypePath) *pairData {
	imports := make(map[string]importSpec)
	addImport(imports, e.config.ArchiveImport)

	data := &pairData{
		PackageName:   e.config.PackageName,
		MirrorRef:     table.Mirror.String(),
		RemoteRef:     qualify(remote, nil, imports),
		ReprName:      reprName(table.Mirror),
		ResolverName:  resolverName(table.Mirror),
		SerializeFunc: serializeFuncName(remote, table.Mirror),
		BuildFunc:     buildFuncName(remote, table.Mirror),
		ArchiveFunc:   archiveFuncName(remote, table.Mirror),
		ArchiveAlias:  e.archiveAlias(),
	}

	if len(table.Fields) > 0 {
		addImport(imports, "unsafe")
	}

	for i := range table.Fields {
		f := &table.Fields[i]

		op := fieldOp{
			Name:       f.Name,
			SourceExpr: sourceExpr(f, imports),
			Comment:    e.fieldComment(f),
		}

		if f.FromType != nil {
			op.SourceType = qualify(*f.FromType, nil, imports)
		} else {
			op.SourceType = qualify(f.MirrorType, f.TypeImports, imports)
		}

		alias := e.archiveAlias()
		offset := fmt.Sprintf("pos+%s.Pos(unsafe.Offsetof(out.%s))", alias, f.Name)

		switch f.Kind {
		case ir.ConverterSelf:
			op.SerializeCall = fmt.Sprintf("%s(&v, s)",
				serializeFuncName(*f.FromType, f.MirrorType))
			op.BuildCall = fmt.Sprintf("%s(&v, %s, res.%s, &out.%s)",
				buildFuncName(*f.FromType, f.MirrorType), offset, f.Name, f.Name)
		default:
			conv := e.converterExpr(f, imports)
			op.SerializeCall = fmt.Sprintf("%s.Serialize(&v, s)", conv)
			op.BuildCall = fmt.Sprintf("%s.Build(&v, %s, res.%s, &out.%s)",
				conv, offset, f.Name, f.Name)
		}

		data.Fields = append(data.Fields, op)
	}

	data.Imports = sortedImports(imports)

	return data
}

// deserUnit is one remote's reconstruction function.
type deserUnit struct {
	DeserializeFunc string
	RemoteRef       string
}

// deserData feeds the deserialize template for one mirror.
type deserData struct {
	PackageName  string
	Imports      []importSpec
	MirrorRef    string
	ReprName     string
	ArchiveAlias string
	Units        []deserUnit
	Fields       []fieldOp
}

// buildDeserData constructs the deserialize unit data for one mirror.
func (e *Emitter) buildDeserData(table *ir.Table) *deserData {
	imports := make(map[string]importSpec)
	addImport(imports, e.config.ArchiveImport)

	data := &deserData{
		PackageName:  e.config.PackageName,
		MirrorRef:    table.Mirror.String(),
		ReprName:     reprName(table.Mirror),
		ArchiveAlias: e.archiveAlias(),
	}

	for _, remote := range table.Remotes {
		data.Units = append(data.Units, deserUnit{
			DeserializeFunc: deserializeFuncName(remote, table.Mirror),
			RemoteRef:       qualify(remote, nil, imports),
		})
	}

	for i := range table.Fields {
		f := &table.Fields[i]

		op := fieldOp{Name: f.Name}

		switch f.Kind {
		case ir.ConverterSelf:
			op.DeserializeCall = fmt.Sprintf("%s(&repr.%s, d)",
				deserializeFuncName(*f.FromType, f.MirrorType), f.Name)
		default:
			op.DeserializeCall = fmt.Sprintf("%s.Deserialize(&repr.%s, d)",
				e.converterExpr(f, imports), f.Name)
		}

		data.Fields = append(data.Fields, op)
	}

	data.Imports = sortedImports(imports)

	return data
}

// sourceExpr returns the expression reading one field's value out of the
// remote instance. An explicit getter always wins over the direct read;
// an owned getter receives a copy of the instance (the by-value call is
// the clone).
func sourceExpr(f *ir.FieldSpec, imports map[string]importSpec) string {
	if f.Getter == nil {
		return "src." + f.Name
	}

	addImport(imports, f.Getter.PkgPath)

	if f.GetterOwned {
		return f.Getter.Qualified() + "(*src)"
	}

	return f.Getter.Qualified() + "(src)"
}

// converterExpr renders the converter invocation target for identity and
// via fields. Converters are zero-value-constructible types.
func (e *Emitter) converterExpr(f *ir.FieldSpec, imports map[string]importSpec) string {
	if f.Kind == ir.ConverterVia {
		return qualify(*f.Via, nil, imports) + "{}"
	}

	addImport(imports, e.config.ArchiveImport)

	return fmt.Sprintf("%s.Identity[%s]{}",
		e.archiveAlias(), qualify(f.MirrorType, f.TypeImports, imports))
}

// fieldComment describes a non-default field rule for generated comments.
func (e *Emitter) fieldComment(f *ir.FieldSpec) string {
	if !e.config.GenerateComments {
		return ""
	}

	switch {
	case f.Getter != nil && f.GetterOwned:
		return fmt.Sprintf("%s: read via %s (owned)", f.Name, f.Getter)
	case f.Getter != nil:
		return fmt.Sprintf("%s: read via %s", f.Name, f.Getter)
	case f.Kind == ir.ConverterVia:
		return fmt.Sprintf("%s: converted via %s", f.Name, f.Via)
	case f.Kind == ir.ConverterSelf:
		return fmt.Sprintf("%s: nested mirror %s", f.Name, f.MirrorType)
	default:
		return ""
	}
}
