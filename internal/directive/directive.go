package directive

import (
	"fmt"

	"mirrorgen/internal/analyze"
	"mirrorgen/internal/common"
	"mirrorgen/internal/diagnostic"
)

// Directive argument keys.
const (
	KeyRemotes     = "remotes"
	KeyFrom        = "from"
	KeyVia         = "via"
	KeyGetter      = "getter"
	KeyGetterOwned = "getter_owned"
)

// Arg is one already-tokenized directive argument: a key and its values.
// The textual front end that produces these is not this package's concern.
type Arg struct {
	Key  string
	Vals []string
}

// RawType is the unchecked directive list for one mirror type.
type RawType struct {
	// Mirror is the textual mirror type reference.
	Mirror string
	// Args are the type-level directive arguments.
	Args []Arg
	// Fields are the per-field directive lists, in declaration order.
	Fields []RawField
}

// RawField is the unchecked directive list for one field.
type RawField struct {
	Name string
	Args []Arg
}

// TypeDirectives is the checked directive model for one mirror type.
type TypeDirectives struct {
	Mirror  analyze.TypePath
	Remotes []analyze.TypePath
	Fields  []FieldDirectives
}

// Field returns the checked directives for the named field, or nil when
// the field carries no directives.
func (t *TypeDirectives) Field(name string) *FieldDirectives {
	for i := range t.Fields {
		if t.Fields[i].Name == name {
			return &t.Fields[i]
		}
	}

	return nil
}

// FieldDirectives is the checked directive model for one field.
type FieldDirectives struct {
	Name        string
	From        *analyze.TypePath
	Via         *analyze.TypePath
	Getter      *analyze.FuncPath
	GetterOwned bool
}

// Check performs syntax validation of a raw directive list and produces
// the checked model. Any returned error diagnostic means the enclosing
// mirror must not proceed to IR building.
func Check(raw *RawType) (*TypeDirectives, diagnostic.Diagnostics) {
	var diags diagnostic.Diagnostics

	mirror, err := analyze.ParseTypePath(raw.Mirror)
	if err != nil {
		diags.AddError(diagnostic.CodeSyntax, err.Error(), raw.Mirror, "")
		return nil, diags
	}

	checked := &TypeDirectives{Mirror: mirror}

	for _, arg := range raw.Args {
		switch arg.Key {
		case KeyRemotes:
			// Repeated remotes(...) arguments append, matching the
			// one-or-more semantics of the type-level directive.
			for _, val := range arg.Vals {
				tp, err := analyze.ParseTypePath(val)
				if err != nil {
					diags.AddError(diagnostic.CodeSyntax,
						fmt.Sprintf("remotes: %v", err), mirror.String(), "")
					continue
				}

				checked.Remotes = append(checked.Remotes, tp)
			}
		default:
			diags.AddError(diagnostic.CodeSyntax,
				fmt.Sprintf("unknown type-level directive %q", arg.Key),
				mirror.String(), "")
		}
	}

	for i := range raw.Fields {
		fd, ok := checkField(&raw.Fields[i], mirror.String(), &diags)
		if ok {
			checked.Fields = append(checked.Fields, fd)
		}
	}

	if diags.HasErrors() {
		return nil, diags
	}

	return checked, diags
}

// checkField validates one field's directive list.
func checkField(raw *RawField, mirror string, diags *diagnostic.Diagnostics) (FieldDirectives, bool) {
	fd := FieldDirectives{Name: raw.Name}

	if raw.Name == "" {
		diags.AddError(diagnostic.CodeSyntax, "field directive without a field name", mirror, "")
		return fd, false
	}

	seen := make(map[string]bool)
	ok := true

	fail := func(msg string) {
		diags.AddError(diagnostic.CodeSyntax, msg, mirror, raw.Name)
		ok = false
	}

	for _, arg := range raw.Args {
		if seen[arg.Key] {
			fail(fmt.Sprintf("duplicate directive %q", arg.Key))
			continue
		}

		seen[arg.Key] = true

		switch arg.Key {
		case KeyFrom:
			fd.From = parseSingleType(arg, fail)
		case KeyVia:
			fd.Via = parseSingleType(arg, fail)
		case KeyGetter:
			if !common.IsSingle(arg.Vals) {
				fail(fmt.Sprintf("getter expects exactly one function reference, got %d", len(arg.Vals)))
				continue
			}

			fp, err := analyze.ParseFuncPath(arg.Vals[0])
			if err != nil {
				fail(fmt.Sprintf("getter: %v", err))
				continue
			}

			fd.Getter = &fp
		case KeyGetterOwned:
			if !common.IsEmpty(arg.Vals) {
				fail("getter_owned is a flag and takes no value")
				continue
			}

			fd.GetterOwned = true
		default:
			fail(fmt.Sprintf("unknown field directive %q", arg.Key))
		}
	}

	return fd, ok
}

// parseSingleType parses a one-value type argument, reporting through fail.
func parseSingleType(arg Arg, fail func(string)) *analyze.TypePath {
	if !common.IsSingle(arg.Vals) {
		fail(fmt.Sprintf("%s expects exactly one type reference, got %d", arg.Key, len(arg.Vals)))
		return nil
	}

	tp, err := analyze.ParseTypePath(arg.Vals[0])
	if err != nil {
		fail(fmt.Sprintf("%s: %v", arg.Key, err))
		return nil
	}

	return &tp
}
