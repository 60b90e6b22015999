package analyze

import (
	"fmt"
	"strings"

	"mirrorgen/internal/common"
)

// TypePath identifies a type by its package import path and local name.
// Builtins and composite renderings (e.g. "[]byte") carry an empty PkgPath.
type TypePath struct {
	PkgPath string // e.g., "mirrorgen/examples/extfs"
	Name    string // e.g., "DirEntry", "string", "[]byte"
}

// IsZero returns true for the zero TypePath.
func (t TypePath) IsZero() bool {
	return t.PkgPath == "" && t.Name == ""
}

// String returns a human-readable representation of the TypePath.
func (t TypePath) String() string {
	if t.PkgPath == "" {
		return t.Name
	}

	return t.PkgPath + "." + t.Name
}

// Qualified returns the Go expression for this type as seen from another
// package, using the package alias (base of the import path).
func (t TypePath) Qualified() string {
	if t.PkgPath == "" {
		return t.Name
	}

	return common.PkgAlias(t.PkgPath) + "." + t.Name
}

// ParseTypePath parses a textual type reference of the form
// "import/path.Name" or a bare builtin such as "string".
func ParseTypePath(s string) (TypePath, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return TypePath{}, fmt.Errorf("empty type reference")
	}

	slash := strings.LastIndex(s, "/")
	dot := strings.LastIndex(s, ".")

	if dot < slash {
		return TypePath{}, fmt.Errorf("type reference %q has a path but no type name", s)
	}

	if dot == -1 {
		// Bare name: a builtin or a same-package type.
		return TypePath{Name: s}, nil
	}

	pkg, name := s[:dot], s[dot+1:]
	if pkg == "" || name == "" {
		return TypePath{}, fmt.Errorf("malformed type reference %q", s)
	}

	return TypePath{PkgPath: pkg, Name: name}, nil
}

// FuncPath identifies a package-level function by import path and name.
type FuncPath struct {
	PkgPath string
	Name    string
}

// String returns a human-readable representation of the FuncPath.
func (f FuncPath) String() string {
	if f.PkgPath == "" {
		return f.Name
	}

	return f.PkgPath + "." + f.Name
}

// Qualified returns the Go call target for this function as seen from
// another package.
func (f FuncPath) Qualified() string {
	if f.PkgPath == "" {
		return f.Name
	}

	return common.PkgAlias(f.PkgPath) + "." + f.Name
}

// ParseFuncPath parses a textual function reference of the form
// "import/path.Name".
func ParseFuncPath(s string) (FuncPath, error) {
	tp, err := ParseTypePath(s)
	if err != nil {
		return FuncPath{}, err
	}

	return FuncPath{PkgPath: tp.PkgPath, Name: tp.Name}, nil
}

// MirrorDecl describes one mirror struct declaration.
type MirrorDecl struct {
	// Path is the mirror type's identity.
	Path TypePath
	// Fields lists the struct fields in declaration order.
	Fields []FieldDecl
}

// Field returns the declaration of the named field, or nil.
func (d *MirrorDecl) Field(name string) *FieldDecl {
	for i := range d.Fields {
		if d.Fields[i].Name == name {
			return &d.Fields[i]
		}
	}

	return nil
}

// FieldDecl describes a single mirror struct field.
type FieldDecl struct {
	// Name is the Go field name, identical in mirror and remote type.
	Name string
	// Type is the field's declared type in the mirror struct.
	Type TypePath
	// TypeImports lists extra package paths a composite Type rendering
	// depends on (empty for named and builtin types).
	TypeImports []string
}
