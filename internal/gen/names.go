package gen

import (
	"fmt"
	"strings"

	"mirrorgen/internal/analyze"
	"mirrorgen/internal/common"
)

// capitalize upper-cases the first byte of an identifier fragment.
func capitalize(s string) string {
	if s == "" {
		return s
	}

	return strings.ToUpper(s[:1]) + s[1:]
}

// typeIdent renders a type path as an exported identifier fragment,
// e.g. "mirrorgen/examples/mirrors.DirEntryMirror" -> "MirrorsDirEntryMirror".
// The package prefix keeps same-named types from distinct packages apart.
func typeIdent(tp analyze.TypePath) string {
	return capitalize(common.PkgAlias(tp.PkgPath)) + tp.Name
}

// reprName names the generated archived representation type for a mirror.
// The same convention resolves self-conversion members: a nested mirror's
// representation is its own generated repr in the output package.
func reprName(mirror analyze.TypePath) string {
	return typeIdent(mirror) + "Repr"
}

// resolverName names the generated resolver type for a mirror.
func resolverName(mirror analyze.TypePath) string {
	return typeIdent(mirror) + "Resolver"
}

func serializeFuncName(remote, mirror analyze.TypePath) string {
	return "Serialize" + typeIdent(remote) + "Via" + typeIdent(mirror)
}

func buildFuncName(remote, mirror analyze.TypePath) string {
	return "Build" + typeIdent(remote) + "Via" + typeIdent(mirror)
}

func archiveFuncName(remote, mirror analyze.TypePath) string {
	return "Archive" + typeIdent(remote) + "Via" + typeIdent(mirror)
}

func deserializeFuncName(remote, mirror analyze.TypePath) string {
	return "Deserialize" + typeIdent(remote) + "Via" + typeIdent(mirror)
}

// fileBase renders a type path as a filename fragment.
func fileBase(tp analyze.TypePath) string {
	alias := common.PkgAlias(tp.PkgPath)
	if alias == "" {
		return strings.ToLower(tp.Name)
	}

	return fmt.Sprintf("%s_%s", alias, strings.ToLower(tp.Name))
}

func reprFilename(mirror analyze.TypePath) string {
	return fileBase(mirror) + "_repr.go"
}

func pairFilename(remote, mirror analyze.TypePath) string {
	return fmt.Sprintf("%s_via_%s.go", fileBase(remote), fileBase(mirror))
}

func deserializeFilename(mirror analyze.TypePath) string {
	return fileBase(mirror) + "_deserialize.go"
}
