package analyze

import (
	"fmt"
	"go/types"
	"sort"

	"golang.org/x/tools/go/packages"
)

// LoadMode specifies what information to load from packages.
const LoadMode = packages.NeedName |
	packages.NeedFiles |
	packages.NeedSyntax |
	packages.NeedTypes |
	packages.NeedTypesInfo |
	packages.NeedImports

// Loader loads Go packages and extracts mirror struct declarations.
type Loader struct {
	decls map[TypePath]*MirrorDecl
}

// NewLoader creates a new Loader.
func NewLoader() *Loader {
	return &Loader{
		decls: make(map[TypePath]*MirrorDecl),
	}
}

// LoadPackages loads the specified packages and indexes every exported or
// unexported struct declaration found in them. Patterns are standard Go
// package patterns (e.g., "./mirrors", "mirrorgen/examples/mirrors").
func (l *Loader) LoadPackages(patterns ...string) error {
	cfg := &packages.Config{
		Mode: LoadMode,
	}

	pkgs, err := packages.Load(cfg, patterns...)
	if err != nil {
		return fmt.Errorf("failed to load packages: %w", err)
	}

	var errs []error
	for _, pkg := range pkgs {
		for _, e := range pkg.Errors {
			errs = append(errs, e)
		}
	}

	if len(errs) > 0 {
		return fmt.Errorf("package errors: %v", errs)
	}

	for _, pkg := range pkgs {
		if err := l.processPackage(pkg); err != nil {
			return fmt.Errorf("failed to process package %s: %w", pkg.PkgPath, err)
		}
	}

	return nil
}

// Decl returns the declaration for the given type path, if loaded.
func (l *Loader) Decl(path TypePath) (*MirrorDecl, bool) {
	d, ok := l.decls[path]
	return d, ok
}

// Add registers a declaration directly, bypassing package loading.
// Used by callers that construct declarations in memory.
func (l *Loader) Add(decl *MirrorDecl) {
	l.decls[decl.Path] = decl
}

// processPackage extracts struct declarations from a loaded package.
func (l *Loader) processPackage(pkg *packages.Package) error {
	scope := pkg.Types.Scope()
	for _, name := range scope.Names() {
		obj := scope.Lookup(name)

		typeName, ok := obj.(*types.TypeName)
		if !ok || typeName.IsAlias() {
			continue
		}

		st, ok := typeName.Type().Underlying().(*types.Struct)
		if !ok {
			continue
		}

		decl := &MirrorDecl{
			Path: TypePath{PkgPath: pkg.PkgPath, Name: name},
		}

		for i := range st.NumFields() {
			field := st.Field(i)

			imports := make(map[string]struct{})
			fd := FieldDecl{
				Name: field.Name(),
				Type: renderType(field.Type(), imports),
			}

			for path := range imports {
				if path != fd.Type.PkgPath {
					fd.TypeImports = append(fd.TypeImports, path)
				}
			}

			sort.Strings(fd.TypeImports)

			decl.Fields = append(decl.Fields, fd)
		}

		l.decls[decl.Path] = decl
	}

	return nil
}

// renderType converts a go/types type into a TypePath, recording every
// package the rendering depends on.
func renderType(t types.Type, imports map[string]struct{}) TypePath {
	switch tt := types.Unalias(t).(type) {
	case *types.Named:
		obj := tt.Obj()
		if obj.Pkg() == nil {
			return TypePath{Name: obj.Name()}
		}

		imports[obj.Pkg().Path()] = struct{}{}

		return TypePath{PkgPath: obj.Pkg().Path(), Name: obj.Name()}
	case *types.Basic:
		return TypePath{Name: tt.Name()}
	default:
		// Composite types (slices, maps, pointers) keep their textual
		// rendering with base-name qualifiers.
		text := types.TypeString(t, func(p *types.Package) string {
			imports[p.Path()] = struct{}{}
			return p.Name()
		})

		return TypePath{Name: text}
	}
}
